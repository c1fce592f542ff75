package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ziadkadry99/slideai/internal/history"
	"github.com/ziadkadry99/slideai/internal/llm"
	"github.com/ziadkadry99/slideai/internal/markdown"
	"github.com/ziadkadry99/slideai/internal/script"
)

// mockProvider returns queued responses in order and records every request.
type mockProvider struct {
	mu        sync.Mutex
	calls     []llm.CompletionRequest
	responses []mockResponse
	entered   chan struct{}
	block     chan struct{}
}

type mockResponse struct {
	content string
	err     error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, req)
	if len(m.responses) == 0 {
		return nil, errors.New("no response queued")
	}
	r := m.responses[0]
	m.responses = m.responses[1:]
	if r.err != nil {
		return nil, r.err
	}
	return &llm.CompletionResponse{Content: r.content}, nil
}

func (m *mockProvider) queue(rs ...mockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, rs...)
}

type memRecorder struct {
	mu     sync.Mutex
	events []history.Event
}

func (r *memRecorder) Record(_ context.Context, ev history.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

var testSettings = Settings{
	SlidesModel:     "meta-llama-3-70b-instruct",
	ScriptModel:     "wizardlm-2-8x22b",
	MaxTokens:       3000,
	Temperature:     0.7,
	TopP:            1,
	PresencePenalty: 0,
}

func newTestSession(t *testing.T, rs ...mockResponse) (*Session, *mockProvider, *memRecorder) {
	t.Helper()
	p := &mockProvider{}
	p.queue(rs...)
	rec := &memRecorder{}
	s := New("test", NewGenerator(p, testSettings, rec), markdown.New(), nil)
	return s, p, rec
}

const photosynthesisScript = "[Slide 1: Intro]\nHello\n[Slide 2: Detail]\nWorld"

func TestEndToEndPhotosynthesis(t *testing.T) {
	ctx := context.Background()
	s, p, _ := newTestSession(t, mockResponse{content: "X"}, mockResponse{content: photosynthesisScript})

	slides, err := s.GenerateSlides(ctx, Request{Topic: "Photosynthesis"})
	if err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}
	if slides != "X" || s.Slides() != "X" {
		t.Fatalf("expected slides X, got %q", s.Slides())
	}

	if _, err := s.GenerateScript(ctx); err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}

	view, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view.Index != 0 || view.Title != "Intro" || view.Body != "Hello" {
		t.Errorf("unexpected first view: %+v", view)
	}
	if view.Heading != "Slide 1: Intro" {
		t.Errorf("unexpected heading %q", view.Heading)
	}

	view, _ = s.Next()
	if view.Index != 1 || view.Title != "Detail" || view.Body != "World" {
		t.Errorf("unexpected second view: %+v", view)
	}
	view, _ = s.Next()
	if view.Index != 1 {
		t.Errorf("next at the last block should be a no-op, got index %d", view.Index)
	}

	if len(p.calls) != 2 {
		t.Fatalf("expected 2 completion calls, got %d", len(p.calls))
	}
	if p.calls[0].Model != "meta-llama-3-70b-instruct" || p.calls[1].Model != "wizardlm-2-8x22b" {
		t.Errorf("unexpected models: %s, %s", p.calls[0].Model, p.calls[1].Model)
	}
	scriptPrompt := p.calls[1].Messages[0].Content
	if !strings.Contains(scriptPrompt, "Topic: Photosynthesis") || !strings.Contains(scriptPrompt, "Slides Content:\nX") {
		t.Errorf("script prompt should carry the stored request and slides: %s", scriptPrompt)
	}
}

func TestCompletionParameters(t *testing.T) {
	s, p, _ := newTestSession(t, mockResponse{content: "X"})
	if _, err := s.GenerateSlides(context.Background(), Request{Topic: "t", Supplementary: "a\n\n"}); err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}
	req := p.calls[0]
	if req.MaxTokens != 3000 || req.Temperature != 0.7 || req.TopP != 1 || req.PresencePenalty != 0 {
		t.Errorf("unexpected sampling parameters: %+v", req)
	}
	if len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Errorf("expected one user message, got %+v", req.Messages)
	}
}

func TestGenerateSlidesFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	s, _, rec := newTestSession(t,
		mockResponse{content: "first"},
		mockResponse{err: &llm.StatusError{StatusCode: 500, Body: "boom"}},
	)

	if _, err := s.GenerateSlides(ctx, Request{Topic: "A"}); err != nil {
		t.Fatalf("GenerateSlides: %v", err)
	}
	_, err := s.GenerateSlides(ctx, Request{Topic: "B"})
	if llm.StatusCode(err) != 500 {
		t.Fatalf("expected status 500, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should mention the status code: %v", err)
	}
	if s.Slides() != "first" || s.Request().Topic != "A" {
		t.Errorf("failed generation must not change state: slides=%q topic=%q", s.Slides(), s.Request().Topic)
	}

	if len(rec.events) != 2 {
		t.Fatalf("expected 2 recorded events, got %d", len(rec.events))
	}
	failed := rec.events[1]
	if failed.Status != history.StatusFailed || failed.StatusCode != 500 || failed.Kind != history.KindSlides {
		t.Errorf("unexpected failure record: %+v", failed)
	}
	if rec.events[0].OutputChars != len("first") || rec.events[0].SessionID != "test" {
		t.Errorf("unexpected success record: %+v", rec.events[0])
	}
}

func TestGenerateSlidesEmptyContent(t *testing.T) {
	s, _, _ := newTestSession(t, mockResponse{content: ""})
	_, err := s.GenerateSlides(context.Background(), Request{Topic: "A"})
	if !errors.Is(err, ErrEmptyOutput) {
		t.Errorf("expected ErrEmptyOutput, got %v", err)
	}
}

func TestGenerateScriptWithoutSlides(t *testing.T) {
	s, p, _ := newTestSession(t)
	_, err := s.GenerateScript(context.Background())
	if !errors.Is(err, ErrNoSlides) {
		t.Errorf("expected ErrNoSlides, got %v", err)
	}
	if len(p.calls) != 0 {
		t.Error("no completion call should be made without slides")
	}
}

func TestGenerateScriptUnparseable(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSession(t,
		mockResponse{content: "X"},
		mockResponse{content: photosynthesisScript},
		mockResponse{content: "Just talk freely about it."},
	)
	s.GenerateSlides(ctx, Request{Topic: "P"})
	s.GenerateScript(ctx)
	s.Next()

	_, err := s.GenerateScript(ctx)
	if !errors.Is(err, script.ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
	view, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view.Index != 1 || view.Title != "Detail" {
		t.Errorf("previous script and position should survive: %+v", view)
	}
}

func TestGenerateScriptResetsIndex(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestSession(t,
		mockResponse{content: "X"},
		mockResponse{content: photosynthesisScript},
		mockResponse{content: "[Slide 1: New]\nA\n[Slide 2: Newer]\nB"},
	)
	s.GenerateSlides(ctx, Request{Topic: "P"})
	s.GenerateScript(ctx)
	s.Next()

	if _, err := s.GenerateScript(ctx); err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	view, _ := s.Current()
	if view.Index != 0 || view.Title != "New" {
		t.Errorf("expected reset to 0 on the new script, got %+v", view)
	}
}

func TestNavigationWithoutScript(t *testing.T) {
	s, _, _ := newTestSession(t)
	for name, op := range map[string]func() (ScriptView, error){"current": s.Current, "next": s.Next, "prev": s.Prev} {
		if _, err := op(); !errors.Is(err, ErrNoScript) {
			t.Errorf("%s: expected ErrNoScript, got %v", name, err)
		}
	}
}

func TestPrevAtStartIsNoop(t *testing.T) {
	s, _, _ := newTestSession(t)
	if err := s.LoadScript(photosynthesisScript); err != nil {
		t.Fatalf("LoadScript: %v", err)
	}
	view, err := s.Prev()
	if err != nil {
		t.Fatalf("Prev: %v", err)
	}
	if view.Index != 0 || view.HasPrev || !view.HasNext {
		t.Errorf("unexpected view: %+v", view)
	}
}

func TestViewRendersMarkdown(t *testing.T) {
	s, _, _ := newTestSession(t)
	s.LoadScript("[Slide 1: Intro]\nSome **bold** words")
	view, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if !strings.Contains(view.BodyHTML, "<strong>bold</strong>") {
		t.Errorf("expected rendered markdown, got %q", view.BodyHTML)
	}
}

func TestGenerationIsExclusive(t *testing.T) {
	p := &mockProvider{entered: make(chan struct{}, 1), block: make(chan struct{})}
	p.queue(mockResponse{content: "X"})
	s := New("busy", NewGenerator(p, testSettings, nil), nil, nil)

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateSlides(context.Background(), Request{Topic: "A"})
		done <- err
	}()

	<-p.entered
	if _, err := s.GenerateSlides(context.Background(), Request{Topic: "B"}); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
	if _, err := s.GenerateScript(context.Background()); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy for script, got %v", err)
	}

	close(p.block)
	if err := <-done; err != nil {
		t.Fatalf("first generation: %v", err)
	}
	if s.Slides() != "X" {
		t.Errorf("expected slides from the first generation, got %q", s.Slides())
	}
}

func TestLoadScriptWaitsForGeneration(t *testing.T) {
	p := &mockProvider{entered: make(chan struct{}, 1), block: make(chan struct{})}
	p.queue(mockResponse{content: "[Slide 1: Generated]\nG"})
	s := New("load", NewGenerator(p, testSettings, nil), nil, nil)
	s.mu.Lock()
	s.slides = "<div class=\"slide\">X</div>"
	s.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		_, err := s.GenerateScript(context.Background())
		done <- err
	}()

	<-p.entered
	if err := s.LoadScript("[Slide 1: Loaded]\nL"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy while a script is generating, got %v", err)
	}

	close(p.block)
	if err := <-done; err != nil {
		t.Fatalf("GenerateScript: %v", err)
	}
	view, err := s.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if view.Title != "Generated" {
		t.Errorf("expected the generated script, got %q", view.Title)
	}

	if err := s.LoadScript("[Slide 1: Loaded]\nL"); err != nil {
		t.Fatalf("LoadScript after generation: %v", err)
	}
	if view, _ := s.Current(); view.Title != "Loaded" {
		t.Errorf("expected the loaded script, got %q", view.Title)
	}
}
