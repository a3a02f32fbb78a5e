package domain

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusFinalized OrderStatus = "finalized"
)

// validTransitions defines allowed status transitions.
// Key is current status, value is list of allowed next statuses.
// The lifecycle is strictly forward: pending -> preparing -> ready -> finalized.
var validTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:   {StatusPreparing},
	StatusPreparing: {StatusReady},
	StatusReady:     {StatusFinalized},
	StatusFinalized: {}, // Terminal state
}

// IsTerminal returns true if the status is terminal
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFinalized
}

// IsValid returns true if the status is a known order status
func (s OrderStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if transition to the target status is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	allowedStates, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, allowed := range allowedStates {
		if allowed == target {
			return true
		}
	}
	return false
}
