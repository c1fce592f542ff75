package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the values most deployments change and saves the
// result to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to slideai! Let's configure the completion endpoint.")
	fmt.Println()

	cfg := DefaultConfig()

	providerPrompt := promptui.Select{
		Label: "How should requests reach the model service",
		Items: []string{
			"endpoint: raw chat-completion POST to a full URL",
			"openai:   OpenAI-compatible API via base URL",
		},
	}
	idx, _, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = []ProviderType{ProviderEndpoint, ProviderOpenAI}[idx]

	urlPrompt := promptui.Prompt{
		Label:   "Completion endpoint URL",
		Default: os.Getenv("OCTO_API_URL"),
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("URL is required")
			}
			return nil
		},
	}
	cfg.Endpoint.URL, err = urlPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("endpoint url: %w", err)
	}

	slidesPrompt := promptui.Prompt{Label: "Model for slides", Default: DefaultSlidesModel}
	if cfg.Models.Slides, err = slidesPrompt.Run(); err != nil {
		return nil, fmt.Errorf("slides model: %w", err)
	}

	scriptPrompt := promptui.Prompt{Label: "Model for the script", Default: DefaultScriptModel}
	if cfg.Models.Script, err = scriptPrompt.Run(); err != nil {
		return nil, fmt.Errorf("script model: %w", err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Web server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 || n > 65535 {
				return fmt.Errorf("port must be 1-65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if os.Getenv("OCTO_API_KEY") == "" && os.Getenv(EnvPrefix+"ENDPOINT__API_KEY") == "" {
		fmt.Printf("\nNote: set OCTO_API_KEY (or put it in .env) before generating presentations.\n")
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
