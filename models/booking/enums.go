package booking

// State is the booking-order lifecycle state. The model is deliberately
// two-state: an order is pending until the customer (or an admin) closes
// it, and the state only ever advances.
type State int

const (
	StatePending   State = 0
	StateCompleted State = 1
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s State) IsValid() bool {
	switch s {
	case StatePending, StateCompleted:
		return true
	default:
		return false
	}
}

// CanClose reports whether a close transition is allowed from s.
func (s State) CanClose() bool {
	return s == StatePending
}

// CanReview reports whether reviews may be submitted against an order in s.
func (s State) CanReview() bool {
	return s == StateCompleted
}

// CanTransitionTo enforces monotonic advancement: the only legal
// transition is Pending to Completed.
func (s State) CanTransitionTo(next State) bool {
	return s == StatePending && next == StateCompleted
}
