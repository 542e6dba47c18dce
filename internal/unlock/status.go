package unlock

// Status is a step's state relative to the learner.
type Status int

const (
	StatusLocked    Status = iota // Previous step not yet completed
	StatusAvailable               // First step, or previous step completed
	StatusCompleted               // Recorded in the learner's progress
)

// Icon returns the display icon for a status.
func (s Status) Icon() string {
	switch s {
	case StatusLocked:
		return "🔒"
	case StatusAvailable:
		return "🔓"
	case StatusCompleted:
		return "✅"
	default:
		return "?"
	}
}

// Label returns the display label for a status.
func (s Status) Label() string {
	switch s {
	case StatusLocked:
		return "Locked"
	case StatusAvailable:
		return "Available"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// String returns the wire name of a status.
func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "LOCKED"
	case StatusAvailable:
		return "AVAILABLE"
	case StatusCompleted:
		return "COMPLETED"
	default:
		return "UNKNOWN"
	}
}

// Playable reports whether a learner may open a session for the step.
func (s Status) Playable() bool {
	return s == StatusAvailable || s == StatusCompleted
}
