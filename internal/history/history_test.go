package history

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/ziadkadry99/slideai/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func seed(t *testing.T, store *Store, events ...Event) {
	t.Helper()
	for _, ev := range events {
		if err := store.Record(context.Background(), ev); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
}

func TestRecordAndQuery(t *testing.T) {
	store := setupStore(t)
	seed(t, store, Event{
		ID:           "ev-1",
		SessionID:    "s-1",
		Kind:         KindSlides,
		Model:        "meta-llama-3-70b-instruct",
		Status:       StatusFailed,
		StatusCode:   503,
		PromptTokens: 420,
		DurationMS:   1500,
		Error:        "Error: 503 - overloaded",
	})

	events, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	got := events[0]
	if got.ID != "ev-1" || got.SessionID != "s-1" || got.Kind != KindSlides {
		t.Errorf("unexpected identity fields: %+v", got)
	}
	if got.Status != StatusFailed || got.StatusCode != 503 || got.Error != "Error: 503 - overloaded" {
		t.Errorf("unexpected outcome fields: %+v", got)
	}
	if got.PromptTokens != 420 || got.DurationMS != 1500 {
		t.Errorf("unexpected metrics: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestRecordGeneratesUUID(t *testing.T) {
	store := setupStore(t)
	seed(t, store, Event{Kind: KindScript, Status: StatusSucceeded})

	events, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(events) != 1 || len(events[0].ID) != 36 {
		t.Errorf("expected a generated UUID, got %+v", events)
	}
}

func TestQueryFilters(t *testing.T) {
	store := setupStore(t)
	seed(t, store,
		Event{SessionID: "a", Kind: KindSlides, Status: StatusSucceeded},
		Event{SessionID: "a", Kind: KindScript, Status: StatusFailed},
		Event{SessionID: "b", Kind: KindSlides, Status: StatusSucceeded},
		Event{SessionID: "b", Kind: KindScript, Status: StatusSucceeded},
	)

	tests := []struct {
		name   string
		filter QueryFilter
		want   int
	}{
		{"all", QueryFilter{}, 4},
		{"session", QueryFilter{SessionID: "a"}, 2},
		{"kind", QueryFilter{Kind: KindScript}, 2},
		{"status", QueryFilter{Status: StatusFailed}, 1},
		{"combined", QueryFilter{SessionID: "b", Kind: KindSlides}, 1},
		{"limit", QueryFilter{Limit: 3}, 3},
		{"offset", QueryFilter{Offset: 3}, 1},
		{"limit and offset", QueryFilter{Limit: 2, Offset: 3}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := store.Query(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("Query: %v", err)
			}
			if len(events) != tt.want {
				t.Errorf("expected %d events, got %d", tt.want, len(events))
			}
		})
	}
}

func TestQueryNewestFirst(t *testing.T) {
	store := setupStore(t)
	seed(t, store,
		Event{ID: "first", Kind: KindSlides, Status: StatusSucceeded},
		Event{ID: "second", Kind: KindScript, Status: StatusSucceeded},
	)

	events, err := store.Query(context.Background(), QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if events[0].ID != "second" {
		t.Errorf("expected newest first, got %s", events[0].ID)
	}
}

func TestStats(t *testing.T) {
	store := setupStore(t)
	seed(t, store,
		Event{Kind: KindSlides, Status: StatusSucceeded, DurationMS: 100},
		Event{Kind: KindSlides, Status: StatusFailed, DurationMS: 300},
		Event{Kind: KindScript, Status: StatusSucceeded, DurationMS: 50},
	)

	stats, err := store.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 kinds, got %d", len(stats))
	}
	// Ordered by kind: script, slides.
	if stats[0].Kind != KindScript || stats[0].Total != 1 {
		t.Errorf("unexpected script stats: %+v", stats[0])
	}
	slides := stats[1]
	if slides.Total != 2 || slides.Succeeded != 1 || slides.Failed != 1 || slides.AvgDurationMS != 200 {
		t.Errorf("unexpected slides stats: %+v", slides)
	}
}

func TestDeleteBefore(t *testing.T) {
	store := setupStore(t)
	seed(t, store, Event{Kind: KindSlides, Status: StatusSucceeded})

	n, err := store.DeleteBefore(context.Background(), time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("DeleteBefore: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted, got %d", n)
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	seed(t, store,
		Event{SessionID: "a", Kind: KindSlides, Status: StatusSucceeded},
		Event{SessionID: "b", Kind: KindScript, Status: StatusFailed},
	)

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/history?session=a", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var events []Event
	if err := json.NewDecoder(w.Body).Decode(&events); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(events) != 1 || events[0].SessionID != "a" {
		t.Errorf("unexpected events: %+v", events)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/history/stats", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var stats []KindStats
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(stats) != 2 {
		t.Errorf("expected 2 kinds, got %+v", stats)
	}
}

func TestRoutesEmpty(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, setupStore(t))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if body := w.Body.String(); body != "[]\n" {
		t.Errorf("expected empty JSON array, got %q", body)
	}
}
