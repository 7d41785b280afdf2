package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yamanekazuki/hr-qa-assistant/internal/constant"
)

// Session is the active question-answer state for one user, from submit until
// all three requests settle. All transitions go through the methods below,
// which serialize writes with a mutex because the two secondary completions
// race on a multi-threaded runtime.
//
// Every search rotates Tag; secondary completions carry the tag of the search
// that issued them and are dropped when it no longer matches, so late results
// of a superseded search never leak into the current one.
type Session struct {
	mu sync.Mutex

	UserID string

	CurrentQueryText  string
	SearchedQuestion  *string
	Answer            *string
	InsightHints      []string // nil = absent/failed; non-nil empty is not used
	FollowUpQuestions []string // empty = none yet / none found

	MainInFlight        bool
	InsightInFlight     bool
	SuggestionsInFlight bool

	Granularity string

	Tag    uuid.UUID
	cancel context.CancelFunc
}

// Snapshot is an immutable copy of the session state for the presentation layer.
type Snapshot struct {
	CurrentQueryText  string
	SearchedQuestion  *string
	Answer            *string
	InsightHints      []string
	FollowUpQuestions []string

	MainInFlight        bool
	InsightInFlight     bool
	SuggestionsInFlight bool

	Granularity string
}

func NewSession(userID string) *Session {
	return &Session{
		UserID:            userID,
		FollowUpQuestions: []string{},
		Granularity:       constant.DefaultGranularity,
	}
}

// StartSearch enters the main-pending state: records the searched question,
// clears prior answer/insights/suggestions, rotates the supersession tag and
// cancels any in-flight secondary requests of the previous search. Returns
// the new tag and the granularity the search should use.
func (s *Session) StartSearch(query string) (uuid.UUID, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.Tag = uuid.New()
	s.CurrentQueryText = query
	s.SearchedQuestion = &query
	s.Answer = nil
	s.InsightHints = nil
	s.FollowUpQuestions = []string{}
	s.MainInFlight = true
	s.InsightInFlight = false
	s.SuggestionsInFlight = false

	return s.Tag, s.Granularity
}

// SettleMain commits the main answer (grounded text or the not-found
// sentinel). Dropped when the search has been superseded.
func (s *Session) SettleMain(tag uuid.UUID, answer string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tag != tag {
		return false
	}
	s.MainInFlight = false
	s.Answer = &answer
	return true
}

// SettleMainError commits a user-facing error sentinel and forces both
// secondary requests to their settled/absent state; they must not start.
func (s *Session) SettleMainError(tag uuid.UUID, message string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tag != tag {
		return false
	}
	s.MainInFlight = false
	s.Answer = &message
	s.InsightInFlight = false
	s.SuggestionsInFlight = false
	s.InsightHints = nil
	s.FollowUpQuestions = []string{}
	return true
}

// BeginSecondaries marks both dependent requests in flight and stores the
// cancel func covering their shared context. Only legal after SettleMain.
func (s *Session) BeginSecondaries(tag uuid.UUID, cancel context.CancelFunc) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tag != tag || s.Answer == nil {
		if cancel != nil {
			cancel()
		}
		return false
	}
	s.InsightInFlight = true
	s.SuggestionsInFlight = true
	s.cancel = cancel
	return true
}

// SettleInsights commits insight hints; nil means the feature is absent.
func (s *Session) SettleInsights(tag uuid.UUID, hints []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tag != tag {
		return false
	}
	s.InsightInFlight = false
	s.InsightHints = hints
	return true
}

// SettleSuggestions commits follow-up questions; an empty slice means none.
func (s *Session) SettleSuggestions(tag uuid.UUID, questions []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Tag != tag {
		return false
	}
	s.SuggestionsInFlight = false
	if questions == nil {
		questions = []string{}
	}
	s.FollowUpQuestions = questions
	return true
}

// SetGranularity changes the verbosity used by the NEXT search only; the
// displayed answer and derived features are untouched.
func (s *Session) SetGranularity(granularity string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Granularity = granularity
}

// SetQueryText tracks live text-box edits without affecting SearchedQuestion.
func (s *Session) SetQueryText(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CurrentQueryText = text
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		CurrentQueryText:    s.CurrentQueryText,
		MainInFlight:        s.MainInFlight,
		InsightInFlight:     s.InsightInFlight,
		SuggestionsInFlight: s.SuggestionsInFlight,
		Granularity:         s.Granularity,
	}
	if s.SearchedQuestion != nil {
		q := *s.SearchedQuestion
		snap.SearchedQuestion = &q
	}
	if s.Answer != nil {
		a := *s.Answer
		snap.Answer = &a
	}
	if s.InsightHints != nil {
		snap.InsightHints = append([]string{}, s.InsightHints...)
	}
	snap.FollowUpQuestions = append([]string{}, s.FollowUpQuestions...)
	return snap
}
