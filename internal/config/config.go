package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for environment overrides. A double underscore
// separates nesting levels: SLIDEAI_ENDPOINT__URL -> endpoint.url.
const EnvPrefix = "SLIDEAI_"

// legacyEnv maps the variables the hosted deployment already exports onto
// config keys.
var legacyEnv = map[string]string{
	"OCTO_API_URL": "endpoint.url",
	"OCTO_API_KEY": "endpoint.api_key",
}

// Load reads configuration from the given YAML file, then overlays a .env
// file from the working directory, the legacy OCTO_* variables and finally
// SLIDEAI_* overrides. It is called once at startup; the result is passed
// explicitly to everything that needs it.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// .env never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	if err := k.Load(env.ProviderWithValue("OCTO_", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return legacyEnv[key], value
	}), nil); err != nil {
		return nil, fmt.Errorf("loading OCTO_* variables: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Lists replace the defaults rather than merging element-wise.
	if k.Exists("upload.accept") {
		cfg.Upload.Accept = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path. The API key
// is left out so that it stays in the environment.
func (c *Config) Save(path string) error {
	out := *c
	out.Endpoint.APIKey = ""
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validProviders = map[ProviderType]bool{
	ProviderEndpoint: true,
	ProviderOpenAI:   true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of endpoint, openai", c.Provider)
	}

	if c.Endpoint.URL == "" {
		return fmt.Errorf("endpoint.url is required (set OCTO_API_URL or %sENDPOINT__URL)", EnvPrefix)
	}
	u, err := url.Parse(c.Endpoint.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("endpoint.url %q is not an absolute URL", c.Endpoint.URL)
	}
	if c.Endpoint.Timeout < 0 {
		return fmt.Errorf("endpoint.timeout must be non-negative")
	}
	if c.Endpoint.RequestsPerMinute < 0 || c.Endpoint.RequestsPerMinute > MaxRequestsPerMinute {
		return fmt.Errorf("endpoint.requests_per_minute must be within [0, %d]", MaxRequestsPerMinute)
	}

	if c.Models.Slides == "" || c.Models.Script == "" {
		return fmt.Errorf("models.slides and models.script are required")
	}

	g := c.Generation
	if g.MaxTokens <= 0 {
		return fmt.Errorf("generation.max_tokens must be positive")
	}
	if g.Temperature < 0 || g.Temperature > 2 {
		return fmt.Errorf("generation.temperature must be within [0, 2]")
	}
	if g.TopP <= 0 || g.TopP > 1 {
		return fmt.Errorf("generation.top_p must be within (0, 1]")
	}
	if g.PresencePenalty < -2 || g.PresencePenalty > 2 {
		return fmt.Errorf("generation.presence_penalty must be within [-2, 2]")
	}

	if c.Upload.MaxBytes < 0 {
		return fmt.Errorf("upload.max_bytes must be non-negative")
	}
	if c.Server.SessionTTL < 0 {
		return fmt.Errorf("server.session_ttl must be non-negative")
	}
	if c.Server.MaxRequestBytes < 0 {
		return fmt.Errorf("server.max_request_bytes must be non-negative")
	}

	return nil
}
