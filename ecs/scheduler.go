package ecs

// System runs once per frame against a world.
type System interface {
	Update(w *World)
}

// Scheduler is the frame host: it runs its systems in registration order and
// clears the frame's events afterwards.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if s == nil || system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Remove unregisters system. It reports whether the system was registered.
func (s *Scheduler) Remove(system System) bool {
	if s == nil || system == nil {
		return false
	}
	for i, existing := range s.systems {
		if existing == system {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) Update(w *World) {
	if s == nil || w == nil {
		return
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}
