package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ziadkadry99/slideai/internal/markdown"
	"github.com/ziadkadry99/slideai/internal/script"
	"github.com/ziadkadry99/slideai/internal/slideshow"
)

// User-facing messages shown alongside the outcome of an action.
const (
	MsgNoSlides       = "Please generate slides first."
	MsgSlidesFailed   = "Failed to generate slides. Please try again."
	MsgScriptFailed   = "Failed to generate script. Please try again."
	MsgScriptReady    = "Script generated successfully!"
	MsgSlidesReady    = "Slides generated."
	MsgScriptUnusable = "The generated script could not be split into slides. Please try again."
)

var (
	// ErrNoSlides is returned when a script is requested before any slides exist.
	ErrNoSlides = errors.New("no slides have been generated")
	// ErrNoScript is returned when navigating before any script exists.
	ErrNoScript = errors.New("no script has been generated")
	// ErrBusy is returned when a generation is already running for the session.
	ErrBusy = errors.New("a generation is already in progress")
)

// Session is one user's presentation state. Generation actions run one at
// a time; reads and navigation never wait on a running generation.
type Session struct {
	ID        string
	CreatedAt time.Time

	gen      *Generator
	md       *markdown.Renderer
	publish  func(Event)
	inflight sync.Mutex

	mu         sync.RWMutex
	request    Request
	slides     string
	slideCount int
	script     *script.Script
	nav        *script.Navigator
	updatedAt  time.Time

	// lastActive is unix nanoseconds of the last lookup through a Manager.
	lastActive atomic.Int64
}

// New creates an empty session. publish may be nil.
func New(id string, gen *Generator, md *markdown.Renderer, publish func(Event)) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		CreatedAt: now,
		gen:       gen,
		md:        md,
		publish:   publish,
		nav:       script.NewNavigator(nil),
		updatedAt: now,
	}
	s.lastActive.Store(now.UnixNano())
	return s
}

func (s *Session) touch(now time.Time) {
	s.lastActive.Store(now.UnixNano())
}

func (s *Session) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, s.lastActive.Load()))
}

func (s *Session) emit(typ EventType, msg string) {
	if s.publish == nil {
		return
	}
	s.publish(Event{SessionID: s.ID, Type: typ, Message: msg, Time: time.Now()})
}

// GenerateSlides asks for a new deck. On success the request and slides
// replace the previous ones; on failure nothing changes.
func (s *Session) GenerateSlides(ctx context.Context, req Request) (string, error) {
	if !s.inflight.TryLock() {
		return "", ErrBusy
	}
	defer s.inflight.Unlock()

	s.emit(EventSlidesStarted, "Generating slides...")
	slides, err := s.gen.Slides(ctx, s.ID, req)
	if err != nil {
		s.emit(EventFailed, MsgSlidesFailed+" "+err.Error())
		return "", err
	}

	count := slideshow.CountSlides(slides)
	s.mu.Lock()
	s.request = req
	s.slides = slides
	s.slideCount = count
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.emit(EventSlidesReady, fmt.Sprintf("%s (%d slides)", MsgSlidesReady, count))
	return slides, nil
}

// GenerateScript asks for narration of the current slides, reusing the
// request they were generated from. A successful script replaces the
// previous one and resets navigation to the first block.
func (s *Session) GenerateScript(ctx context.Context) (*script.Script, error) {
	if !s.inflight.TryLock() {
		return nil, ErrBusy
	}
	defer s.inflight.Unlock()

	s.mu.RLock()
	req, slides, slideCount := s.request, s.slides, s.slideCount
	s.mu.RUnlock()

	if slides == "" {
		return nil, ErrNoSlides
	}

	s.emit(EventScriptStarted, "Generating script...")
	raw, err := s.gen.Script(ctx, s.ID, req, slides)
	if err != nil {
		s.emit(EventFailed, MsgScriptFailed+" "+err.Error())
		return nil, err
	}

	parsed, err := script.Parse(raw)
	if err != nil {
		s.emit(EventFailed, MsgScriptUnusable)
		return nil, fmt.Errorf("parsing generated script: %w", err)
	}
	if parsed.Len() != slideCount {
		log.Printf("session: %s: script has %d blocks for %d slides", s.ID, parsed.Len(), slideCount)
	}

	s.mu.Lock()
	s.script = parsed
	s.nav = script.NewNavigator(parsed)
	s.updatedAt = time.Now()
	s.mu.Unlock()

	s.emit(EventScriptReady, MsgScriptReady)
	return parsed, nil
}

// LoadScript installs a script generated earlier, such as one saved by the
// generate command, and resets navigation to its first block. Slides are
// not required. Like generation it fails with ErrBusy while another
// generation action is running.
func (s *Session) LoadScript(raw string) error {
	if !s.inflight.TryLock() {
		return ErrBusy
	}
	defer s.inflight.Unlock()

	parsed, err := script.Parse(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.script = parsed
	s.nav = script.NewNavigator(parsed)
	s.updatedAt = time.Now()
	s.mu.Unlock()
	return nil
}

// Slides returns the current slide markup, or "" if none was generated.
func (s *Session) Slides() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slides
}

// SlideCount returns the number of slides found in the current markup.
func (s *Session) SlideCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slideCount
}

// Request returns the request behind the current slides.
func (s *Session) Request() Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.request
}

// UpdatedAt returns when the session state last changed.
func (s *Session) UpdatedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updatedAt
}

// Current returns the block at the navigation index.
func (s *Session) Current() (ScriptView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewLocked()
}

// Next advances the script by one block, stopping at the last one.
func (s *Session) Next() (ScriptView, error) {
	return s.move((*script.Navigator).Next)
}

// Prev moves the script back by one block, stopping at the first one.
func (s *Session) Prev() (ScriptView, error) {
	return s.move((*script.Navigator).Prev)
}

func (s *Session) move(step func(*script.Navigator) int) (ScriptView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.script == nil {
		return ScriptView{}, ErrNoScript
	}
	step(s.nav)
	return s.viewLocked()
}

func (s *Session) viewLocked() (ScriptView, error) {
	if s.script == nil {
		return ScriptView{}, ErrNoScript
	}
	i := s.nav.Index()
	block := s.script.Blocks[i]

	view := ScriptView{
		Index:      i,
		Count:      s.script.Len(),
		Heading:    block.Heading(i),
		Header:     block.Header,
		Title:      block.Title,
		Body:       block.Body,
		HasPrev:    s.nav.HasPrev(),
		HasNext:    s.nav.HasNext(),
		SlideCount: s.slideCount,
	}
	if s.md != nil {
		html, err := s.md.Render(block.Body)
		if err != nil {
			return ScriptView{}, err
		}
		view.BodyHTML = html
	}
	return view, nil
}
