package session

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"code-assistant-be/internal/pkg/apperrors"
	"code-assistant-be/pkg/store"
)

// mapRepository is a plain map-backed Repository for tests.
type mapRepository struct {
	mu       sync.Mutex
	sessions map[string]*store.Session
}

func newMapRepository() *mapRepository {
	return &mapRepository{sessions: make(map[string]*store.Session)}
}

func (r *mapRepository) Get(id string) (*store.Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *mapRepository) Save(s *store.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
}

func (r *mapRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func newTestManager(idleTimeout time.Duration, historyCap int) (*Manager, *time.Time) {
	m := NewManager(newMapRepository(), idleTimeout, historyCap)
	now := time.Now()
	m.now = func() time.Time { return now }
	return m, &now
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)

	first := m.GetOrCreate("s1")
	second := m.GetOrCreate("s1")

	if !first.CreatedAt.Equal(second.CreatedAt) {
		t.Errorf("second access recreated the session")
	}
}

func TestLazyExpiryRecreatesSession(t *testing.T) {
	m, now := newTestManager(time.Hour, 10)

	m.RecordSearchTurn("s1", "find csv code", []string{"pandas.read_csv"})

	// Just inside the idle window: state survives.
	*now = now.Add(59 * time.Minute)
	if got := m.GetOrCreate("s1"); len(got.LastResults) != 1 {
		t.Fatalf("session expired early")
	}

	// Accessing bumps LastActiveAt, so the window restarts.
	*now = now.Add(59 * time.Minute)
	m.RecordTurn("s1", "still here", "unknown", nil)

	// Now exceed the window with no access in between.
	*now = now.Add(2 * time.Hour)
	got := m.GetOrCreate("s1")
	if len(got.LastResults) != 0 || len(got.History) != 0 {
		t.Errorf("expired session kept state: %+v", got)
	}
}

func TestRecordSearchTurnReplacesLastResults(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)

	m.RecordSearchTurn("s1", "first search", []string{"a", "b", "c"})
	m.RecordSearchTurn("s1", "second search", []string{"x"})

	got := m.GetOrCreate("s1")
	if len(got.LastResults) != 1 || got.LastResults[0] != "x" {
		t.Errorf("LastResults = %v, want [x]", got.LastResults)
	}

	// An empty search still replaces, clearing the stale set.
	m.RecordSearchTurn("s1", "no hits", []string{})
	if got := m.GetOrCreate("s1"); len(got.LastResults) != 0 {
		t.Errorf("empty search did not clear LastResults: %v", got.LastResults)
	}
}

func TestRecordTurnKeepsLastResults(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)

	m.RecordSearchTurn("s1", "search", []string{"a", "b"})
	m.RecordTurn("s1", "explain the first one", "function_explanation", []string{"a"})

	got := m.GetOrCreate("s1")
	if len(got.LastResults) != 2 {
		t.Errorf("explanation turn mutated LastResults: %v", got.LastResults)
	}
	if len(got.History) != 2 {
		t.Errorf("history length = %d, want 2", len(got.History))
	}
}

func TestHistoryCap(t *testing.T) {
	m, _ := newTestManager(time.Hour, 5)

	for i := 0; i < 12; i++ {
		m.RecordTurn("s1", fmt.Sprintf("turn %d", i), "unknown", nil)
	}

	got := m.GetOrCreate("s1")
	if len(got.History) != 5 {
		t.Fatalf("history length = %d, want 5", len(got.History))
	}
	// Oldest turns dropped, newest kept.
	if got.History[4].Utterance != "turn 11" {
		t.Errorf("newest turn = %q", got.History[4].Utterance)
	}
	if got.History[0].Utterance != "turn 7" {
		t.Errorf("oldest kept turn = %q", got.History[0].Utterance)
	}
}

func TestConcurrentTurnsOneSession(t *testing.T) {
	m, _ := newTestManager(time.Hour, 200)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.RecordTurn("s1", fmt.Sprintf("turn %d", n), "unknown", nil)
		}(i)
	}
	wg.Wait()

	got := m.GetOrCreate("s1")
	if len(got.History) != 50 {
		t.Errorf("history length = %d, want 50 (lost updates)", len(got.History))
	}
}

func TestCloneIsolation(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)

	m.RecordSearchTurn("s1", "search", []string{"a"})
	snapshot := m.GetOrCreate("s1")
	snapshot.LastResults[0] = "tampered"
	snapshot.History[0].Utterance = "tampered"

	fresh := m.GetOrCreate("s1")
	if fresh.LastResults[0] != "a" || fresh.History[0].Utterance != "search" {
		t.Errorf("mutating a snapshot leaked into stored state")
	}
}

func TestResolveReference(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)
	m.RecordSearchTurn("s1", "search", []string{"pandas.DataFrame", "pandas.Series", "numpy.array"})

	tests := []struct {
		name      string
		utterance string
		wantId    string
		wantErr   error
	}{
		{name: "first", utterance: "explain the first one", wantId: "pandas.DataFrame"},
		{name: "second", utterance: "explain the second one", wantId: "pandas.Series"},
		{name: "last", utterance: "what about the last one", wantId: "numpy.array"},
		{name: "number", utterance: "explain result 2", wantId: "pandas.Series"},
		{name: "pronoun", utterance: "explain that one", wantId: "pandas.DataFrame"},
		{name: "two ordinals, earliest wins", utterance: "the first or the second one?", wantId: "pandas.DataFrame"},
		{name: "out of range", utterance: "explain the fifth one", wantErr: apperrors.ErrNotFound},
		{name: "no reference", utterance: "explain something", wantErr: apperrors.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := m.ResolveReference("s1", tt.utterance)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("want %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveReference: %v", err)
			}
			if id != tt.wantId {
				t.Errorf("ResolveReference(%q) = %s, want %s", tt.utterance, id, tt.wantId)
			}
		})
	}
}

func TestResolveReferenceIsDeterministic(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)
	m.RecordSearchTurn("s1", "search", []string{"pandas.DataFrame", "pandas.Series", "numpy.array"})

	for n := 0; n < 20; n++ {
		id, err := m.ResolveReference("s1", "the second or maybe the third one")
		if err != nil {
			t.Fatalf("ResolveReference: %v", err)
		}
		if id != "pandas.Series" {
			t.Fatalf("run %d resolved %s, want pandas.Series every time", n, id)
		}
	}
}

func TestResolveReferenceNoPriorResult(t *testing.T) {
	m, _ := newTestManager(time.Hour, 10)

	_, err := m.ResolveReference("fresh", "explain the first one")
	if !errors.Is(err, apperrors.ErrNoPriorResult) {
		t.Fatalf("want ErrNoPriorResult, got %v", err)
	}
}

func TestRefersToPriorResult(t *testing.T) {
	tests := []struct {
		utterance string
		want      bool
	}{
		{"explain the first one", true},
		{"what about the last one", true},
		{"explain that one", true},
		{"explain result 3", true},
		{"explain pandas.read_csv()", false},
		{"find me sorting code", false},
	}
	for _, tt := range tests {
		if got := RefersToPriorResult(tt.utterance); got != tt.want {
			t.Errorf("RefersToPriorResult(%q) = %v, want %v", tt.utterance, got, tt.want)
		}
	}
}
