package domain

import "testing"

func TestOrderStatusIsTerminal(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		expected bool
	}{
		{StatusPending, false},
		{StatusPreparing, false},
		{StatusReady, false},
		{StatusFinalized, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOrderStatusIsValid(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		expected bool
	}{
		{StatusPending, true},
		{StatusPreparing, true},
		{StatusReady, true},
		{StatusFinalized, true},
		{OrderStatus("cancelled"), false},
		{OrderStatus(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.expected {
				t.Errorf("IsValid() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestOrderStatusCanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     OrderStatus
		to       OrderStatus
		expected bool
	}{
		// Forward path
		{"pending -> preparing", StatusPending, StatusPreparing, true},
		{"preparing -> ready", StatusPreparing, StatusReady, true},
		{"ready -> finalized", StatusReady, StatusFinalized, true},

		// No skipping
		{"pending -> ready", StatusPending, StatusReady, false},
		{"pending -> finalized", StatusPending, StatusFinalized, false},
		{"preparing -> finalized", StatusPreparing, StatusFinalized, false},

		// No backward transitions
		{"preparing -> pending", StatusPreparing, StatusPending, false},
		{"ready -> preparing", StatusReady, StatusPreparing, false},

		// Terminal state
		{"finalized -> pending", StatusFinalized, StatusPending, false},
		{"finalized -> ready", StatusFinalized, StatusReady, false},

		// Unknown statuses
		{"unknown from", OrderStatus("cancelled"), StatusPending, false},
		{"unknown to", StatusPending, OrderStatus("cancelled"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}
