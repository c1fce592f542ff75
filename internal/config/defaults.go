package config

import "time"

const (
	DefaultSlidesModel = "meta-llama-3-70b-instruct"
	DefaultScriptModel = "wizardlm-2-8x22b"
	DefaultMaxTokens   = 3000
	DefaultTimeout     = 5 * time.Minute
	DefaultMaxBytes    = 1 << 20
	DefaultConfigFile  = ".slideai.yml"
	DefaultSessionTTL  = 2 * time.Hour
	DefaultMaxRequest  = 32 << 20

	// MaxRequestsPerMinute bounds endpoint.requests_per_minute.
	MaxRequestsPerMinute = 60_000
)

// DefaultAccept lists the upload patterns accepted when none are configured.
var DefaultAccept = []string{"*.txt", "*.py"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderEndpoint,
		Endpoint: EndpointConfig{
			Timeout: DefaultTimeout,
		},
		Models: ModelsConfig{
			Slides: DefaultSlidesModel,
			Script: DefaultScriptModel,
		},
		Generation: GenerationConfig{
			MaxTokens:       DefaultMaxTokens,
			Temperature:     0.7,
			TopP:            1,
			PresencePenalty: 0,
		},
		Server: ServerConfig{
			Port:            8080,
			DataDir:         ".slideai",
			SessionTTL:      DefaultSessionTTL,
			MaxRequestBytes: DefaultMaxRequest,
		},
		Upload: UploadConfig{
			Accept:   append([]string(nil), DefaultAccept...),
			MaxBytes: DefaultMaxBytes,
		},
		OutputDir: "out",
	}
}
