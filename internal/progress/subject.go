package progress

import "sync"

// Subject fans snapshots out to registered observers in registration order.
// It is safe for concurrent use and itself implements Reporter.
type Subject struct {
	observers []Reporter
	mu        sync.RWMutex
}

// NewSubject returns an empty subject.
func NewSubject() *Subject {
	return &Subject{observers: make([]Reporter, 0)}
}

// Register adds an observer. Nil observers are ignored.
func (s *Subject) Register(observer Reporter) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// Unregister removes the first occurrence of observer. Observers passed to
// Unregister must be comparable; pointer observers are.
func (s *Subject) Unregister(observer Reporter) {
	if observer == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// OnSnapshot notifies all observers synchronously.
func (s *Subject) OnSnapshot(snap Snapshot) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnSnapshot(snap)
	}
}

// ObserverCount returns the number of registered observers.
func (s *Subject) ObserverCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.observers)
}

// Freeze returns a Reporter over a copy of the current observer list. The
// engine uses it for the duration of a run so notifications take no lock.
func (s *Subject) Freeze() Reporter {
	s.mu.RLock()
	frozen := make([]Reporter, len(s.observers))
	copy(frozen, s.observers)
	s.mu.RUnlock()
	return ReporterFunc(func(snap Snapshot) {
		for _, o := range frozen {
			o.OnSnapshot(snap)
		}
	})
}
