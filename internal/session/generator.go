package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/ziadkadry99/slideai/internal/config"
	"github.com/ziadkadry99/slideai/internal/history"
	"github.com/ziadkadry99/slideai/internal/llm"
	"github.com/ziadkadry99/slideai/internal/prompts"
)

// Request is what the user asked for: a topic and optional text from
// uploaded files.
type Request struct {
	Topic         string `json:"topic"`
	Supplementary string `json:"supplementary,omitempty"`
}

// Settings are the model identifiers and sampling parameters sent with
// every completion call.
type Settings struct {
	SlidesModel     string
	ScriptModel     string
	MaxTokens       int
	Temperature     float64
	TopP            float64
	PresencePenalty float64
}

// SettingsFromConfig extracts generation settings from cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		SlidesModel:     cfg.Models.Slides,
		ScriptModel:     cfg.Models.Script,
		MaxTokens:       cfg.Generation.MaxTokens,
		Temperature:     cfg.Generation.Temperature,
		TopP:            cfg.Generation.TopP,
		PresencePenalty: cfg.Generation.PresencePenalty,
	}
}

// ErrEmptyOutput is returned when the model answers with no text.
var ErrEmptyOutput = errors.New("completion returned no content")

// Recorder stores metadata about completion attempts.
type Recorder interface {
	Record(ctx context.Context, ev history.Event) error
}

// Generator issues the two completion calls. It holds no per-user state and
// is shared by the web sessions, the CLI and the MCP server.
type Generator struct {
	provider llm.Provider
	settings Settings
	recorder Recorder
}

// NewGenerator creates a Generator. recorder may be nil.
func NewGenerator(provider llm.Provider, settings Settings, recorder Recorder) *Generator {
	return &Generator{provider: provider, settings: settings, recorder: recorder}
}

// Slides asks the model for the slide deck markup.
func (g *Generator) Slides(ctx context.Context, sessionID string, req Request) (string, error) {
	prompt := prompts.Slides(req.Topic, req.Supplementary)
	out, err := g.complete(ctx, sessionID, history.KindSlides, g.settings.SlidesModel, prompt)
	if err != nil {
		return "", fmt.Errorf("generating slides: %w", err)
	}
	return out, nil
}

// Script asks the model for narration covering slides.
func (g *Generator) Script(ctx context.Context, sessionID string, req Request, slides string) (string, error) {
	prompt := prompts.Script(req.Topic, slides, req.Supplementary)
	out, err := g.complete(ctx, sessionID, history.KindScript, g.settings.ScriptModel, prompt)
	if err != nil {
		return "", fmt.Errorf("generating script: %w", err)
	}
	return out, nil
}

func (g *Generator) complete(ctx context.Context, sessionID string, kind history.Kind, model, prompt string) (string, error) {
	req := llm.UserPrompt(model, prompt)
	req.MaxTokens = g.settings.MaxTokens
	req.Temperature = g.settings.Temperature
	req.TopP = g.settings.TopP
	req.PresencePenalty = g.settings.PresencePenalty

	promptTokens := llm.EstimateTokens(prompt)
	start := time.Now()
	resp, err := g.provider.Complete(ctx, req)
	elapsed := time.Since(start)
	if err == nil && resp.Content == "" {
		err = ErrEmptyOutput
	}

	ev := history.Event{
		SessionID:    sessionID,
		Kind:         kind,
		Model:        model,
		Status:       history.StatusSucceeded,
		PromptTokens: promptTokens,
		DurationMS:   elapsed.Milliseconds(),
	}
	if err != nil {
		ev.Status = history.StatusFailed
		ev.StatusCode = llm.StatusCode(err)
		ev.Error = err.Error()
		log.Printf("session: %s completion failed (model=%s, ~%d prompt tokens, %s): %v",
			kind, model, promptTokens, elapsed.Round(time.Millisecond), err)
	} else {
		ev.OutputChars = len(resp.Content)
		log.Printf("session: %s completion ok (model=%s, ~%d prompt tokens, %d chars, %s)",
			kind, model, promptTokens, len(resp.Content), elapsed.Round(time.Millisecond))
	}

	if g.recorder != nil {
		// The caller's context may already be cancelled; the record should
		// still land.
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		if recErr := g.recorder.Record(recordCtx, ev); recErr != nil {
			log.Printf("session: recording %s event: %v", kind, recErr)
		}
		cancel()
	}

	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
