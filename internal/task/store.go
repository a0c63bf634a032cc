package task

// Store is the ordered collection of tasks. Insertion order is display
// order, and every id in the collection is unique.
//
// Store is not safe for concurrent use; its owner serializes access.
type Store struct {
	tasks []Task
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDFunc overrides the id generator (used by tests for stable ids).
func WithIDFunc(fn func() string) Option {
	return func(s *Store) {
		s.newID = fn
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{newID: NewID}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends a new, not completed task with the trimmed text.
// Blank text is rejected: nothing changes and ok is false.
func (s *Store) Add(text string) (t Task, ok bool) {
	text = normalizeText(text)
	if text == "" {
		return Task{}, false
	}

	id := s.newID()
	for s.indexOf(id) >= 0 {
		id = s.newID()
	}

	t = Task{ID: id, Text: text}
	s.tasks = append(s.tasks, t)
	return t, true
}

// Toggle flips the completed flag of the task with the given id, keeping
// its position. It reports whether a task was found.
func (s *Store) Toggle(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	return true
}

// Delete removes the task with the given id. It reports whether a task
// was found; deleting an absent id changes nothing.
func (s *Store) Delete(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	return true
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// List returns a copy of the tasks in display order.
func (s *Store) List() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Replace swaps the whole collection, as done when stored tasks are loaded.
func (s *Store) Replace(tasks []Task) {
	s.tasks = make([]Task, len(tasks))
	copy(s.tasks, tasks)
}

func (s *Store) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
