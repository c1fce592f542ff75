package session

import "time"

// ScriptView is what the presenter sees for one script block.
type ScriptView struct {
	Index      int    `json:"index"`
	Count      int    `json:"count"`
	Heading    string `json:"heading"`
	Header     string `json:"header"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	BodyHTML   string `json:"body_html,omitempty"`
	HasPrev    bool   `json:"has_prev"`
	HasNext    bool   `json:"has_next"`
	SlideCount int    `json:"slide_count"`
}

// EventType names a session state change.
type EventType string

const (
	EventSlidesStarted EventType = "slides_started"
	EventSlidesReady   EventType = "slides_ready"
	EventScriptStarted EventType = "script_started"
	EventScriptReady   EventType = "script_ready"
	EventFailed        EventType = "failed"
)

// Event is pushed to subscribers of a session.
type Event struct {
	SessionID string    `json:"session_id"`
	Type      EventType `json:"type"`
	Message   string    `json:"message"`
	Time      time.Time `json:"time"`
}
