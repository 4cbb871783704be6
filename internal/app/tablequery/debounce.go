package tablequery

import (
	"sync"
	"time"
)

// DefaultSearchDebounce is the quiet period before a typed search value
// is committed to the store.
const DefaultSearchDebounce = 500 * time.Millisecond

// SearchInput is the two-stage search pipeline: Type updates an immediate
// local draft (keeps the input responsive), and one commit per quiet
// period pushes the value through the coordinator, which is what actually
// triggers a fetch. Typing "hello" as five keystrokes yields exactly one
// committed update.
type SearchInput struct {
	coord   *Coordinator
	pageKey string
	delay   time.Duration

	mu    sync.Mutex
	draft string
	timer *time.Timer
}

func NewSearchInput(coord *Coordinator, pageKey string, delay time.Duration) *SearchInput {
	if delay <= 0 {
		delay = DefaultSearchDebounce
	}
	return &SearchInput{coord: coord, pageKey: pageKey, delay: delay}
}

// Draft returns the uncommitted input value.
func (s *SearchInput) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Type records a keystroke and (re)arms the commit timer.
func (s *SearchInput) Type(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = value
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.delay, s.commit)
}

// Flush commits the draft immediately (e.g. on Enter).
func (s *SearchInput) Flush() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.commit()
}

// Stop cancels a pending commit without committing.
func (s *SearchInput) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *SearchInput) commit() {
	s.mu.Lock()
	value := s.draft
	s.timer = nil
	s.mu.Unlock()
	s.coord.SetSearch(s.pageKey, value)
}
