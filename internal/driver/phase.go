package driver

// PhaseStatus marks the boundary of a compiler phase.
type PhaseStatus uint8

const (
	// PhaseStart is emitted when a phase begins.
	PhaseStart PhaseStatus = iota
	// PhaseEnd is emitted when a phase finishes.
	PhaseEnd
)

// PhaseEvent reports phase boundaries to an observer, usually a progress UI.
type PhaseEvent struct {
	Name   string
	Status PhaseStatus
}

// PhaseFunc consumes phase events. A nil PhaseFunc is silently skipped.
type PhaseFunc func(PhaseEvent)

func (f PhaseFunc) emit(name string, status PhaseStatus) {
	if f == nil {
		return
	}
	f(PhaseEvent{Name: name, Status: status})
}
