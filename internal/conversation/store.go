package conversation

import "sync"

// Store maps actor ids to their dialogue state. It is safe for concurrent use.
// Entries live until cleared or the process exits.
type Store struct {
	mu     sync.RWMutex
	states map[int64]State

	locksMu sync.Mutex
	locks   map[int64]*actorLock
}

// actorLock is dropped from the map once nobody holds or waits for it.
type actorLock struct {
	mu   sync.Mutex
	refs int
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		states: make(map[int64]State),
		locks:  make(map[int64]*actorLock),
	}
}

// Get returns the actor's state, if any.
func (s *Store) Get(actor int64) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.states[actor]
	if !ok {
		return State{}, false
	}

	return st.With(st.Step), true
}

// Set replaces the actor's state. Setting an idle state clears it.
func (s *Store) Set(actor int64, st State) {
	if st.Idle() {
		s.Clear(actor)

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[actor] = st.With(st.Step)
}

// Clear drops the actor's state, returning them to idle.
func (s *Store) Clear(actor int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, actor)
}

// Len returns the number of actors with an active dialogue.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.states)
}

// Lock serializes the handling of one actor's updates and returns the unlock func.
// Different actors never contend on the same lock.
func (s *Store) Lock(actor int64) func() {
	s.locksMu.Lock()

	l, ok := s.locks[actor]
	if !ok {
		l = &actorLock{}
		s.locks[actor] = l
	}

	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		defer s.locksMu.Unlock()

		l.refs--
		if l.refs == 0 {
			delete(s.locks, actor)
		}
	}
}
