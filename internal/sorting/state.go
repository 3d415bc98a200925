package sorting

// State remembers the sort direction chosen by each consumer, keyed by an
// opaque identifier such as a result key or a list id. Entries are independent:
// sorting one result never changes another.
type State struct {
	directions map[string]Direction
}

// NewState returns an empty State.
func NewState() *State {
	return &State{directions: make(map[string]Direction)}
}

// Get returns the direction recorded for key.
func (s *State) Get(key string) (Direction, bool) {
	if s == nil {
		return Asc, false
	}
	dir, ok := s.directions[key]
	return dir, ok
}

// Set records dir for key. It is a no-op on a nil State.
func (s *State) Set(key string, dir Direction) {
	if s == nil {
		return
	}
	if s.directions == nil {
		s.directions = make(map[string]Direction)
	}
	s.directions[key] = dir
}

// Toggle flips the direction for key, starting at ascending, and returns it.
// A nil State records nothing and always reports ascending.
func (s *State) Toggle(key string) Direction {
	if s == nil {
		return Asc
	}
	next := Asc
	if dir, ok := s.Get(key); ok && dir == Asc {
		next = Desc
	}
	s.Set(key, next)
	return next
}

// Clear forgets the direction for key.
func (s *State) Clear(key string) {
	if s == nil {
		return
	}
	delete(s.directions, key)
}
