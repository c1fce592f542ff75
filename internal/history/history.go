package history

import "time"

// Kind identifies which completion call an event describes.
type Kind string

const (
	KindSlides Kind = "slides"
	KindScript Kind = "script"
)

// Status is the outcome of a completion call.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Event records one completion attempt. It carries metadata only; the
// generated slides and script are never stored.
type Event struct {
	ID           string    `json:"id"`
	SessionID    string    `json:"session_id,omitempty"`
	Kind         Kind      `json:"kind"`
	Model        string    `json:"model"`
	Status       Status    `json:"status"`
	StatusCode   int       `json:"status_code,omitempty"`
	PromptTokens int       `json:"prompt_tokens"`
	OutputChars  int       `json:"output_chars"`
	DurationMS   int64     `json:"duration_ms"`
	Error        string    `json:"error,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// KindStats aggregates events of one kind.
type KindStats struct {
	Kind          Kind    `json:"kind"`
	Total         int     `json:"total"`
	Succeeded     int     `json:"succeeded"`
	Failed        int     `json:"failed"`
	AvgDurationMS float64 `json:"avg_duration_ms"`
}
