package config

import "time"

// ProviderType identifies how completion requests reach the model service.
type ProviderType string

const (
	// ProviderEndpoint posts raw chat-completion JSON to the configured URL.
	ProviderEndpoint ProviderType = "endpoint"
	// ProviderOpenAI talks to an OpenAI-compatible API through go-openai.
	ProviderOpenAI ProviderType = "openai"
)

// Config is the top-level slideai configuration, corresponding to .slideai.yml.
type Config struct {
	Provider   ProviderType     `yaml:"provider" koanf:"provider"`
	Endpoint   EndpointConfig   `yaml:"endpoint" koanf:"endpoint"`
	Models     ModelsConfig     `yaml:"models" koanf:"models"`
	Generation GenerationConfig `yaml:"generation" koanf:"generation"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Upload     UploadConfig     `yaml:"upload" koanf:"upload"`
	OutputDir  string           `yaml:"output_dir" koanf:"output_dir"`
}

// EndpointConfig locates the completion endpoint.
type EndpointConfig struct {
	URL               string        `yaml:"url" koanf:"url"`
	APIKey            string        `yaml:"api_key,omitempty" koanf:"api_key"`
	Timeout           time.Duration `yaml:"timeout" koanf:"timeout"`
	RequestsPerMinute int           `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// ModelsConfig names the model used by each call site.
type ModelsConfig struct {
	Slides string `yaml:"slides" koanf:"slides"`
	Script string `yaml:"script" koanf:"script"`
}

// GenerationConfig holds the sampling parameters sent with every request.
type GenerationConfig struct {
	MaxTokens       int     `yaml:"max_tokens" koanf:"max_tokens"`
	Temperature     float64 `yaml:"temperature" koanf:"temperature"`
	TopP            float64 `yaml:"top_p" koanf:"top_p"`
	PresencePenalty float64 `yaml:"presence_penalty" koanf:"presence_penalty"`
}

// ServerConfig controls the web surface.
type ServerConfig struct {
	Port            int    `yaml:"port" koanf:"port"`
	AllowAllOrigins bool   `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DataDir         string `yaml:"data_dir" koanf:"data_dir"`
	// SessionTTL evicts sessions idle for longer than this. Zero keeps
	// them until restart.
	SessionTTL time.Duration `yaml:"session_ttl" koanf:"session_ttl"`
	// MaxRequestBytes caps request bodies, uploads included.
	MaxRequestBytes int64 `yaml:"max_request_bytes" koanf:"max_request_bytes"`
}

// UploadConfig restricts which supplementary files are accepted.
type UploadConfig struct {
	Accept   []string `yaml:"accept" koanf:"accept"`
	MaxBytes int64    `yaml:"max_bytes" koanf:"max_bytes"`
}
