package domain

import "errors"

var (
	// ErrRestaurantNotFound is returned when no restaurant matches
	ErrRestaurantNotFound = errors.New("restaurant not found")
	// ErrTableNotFound is returned when no table matches the id or token
	ErrTableNotFound = errors.New("table not found")
	// ErrTableNumberTaken is returned when the table number is already in use for the restaurant
	ErrTableNumberTaken = errors.New("table number already in use")
	// ErrMenuNotFound is returned when no menu matches
	ErrMenuNotFound = errors.New("menu not found")
	// ErrNoActiveMenu is returned when a restaurant has no active menu for the public flow
	ErrNoActiveMenu = errors.New("no active menu for restaurant")
	// ErrCategoryNotFound is returned when no category matches
	ErrCategoryNotFound = errors.New("category not found")
	// ErrMenuItemNotFound is returned when an order line references an unknown menu item
	ErrMenuItemNotFound = errors.New("menu item not found")
	// ErrOrderNotFound is returned when no order matches
	ErrOrderNotFound = errors.New("order not found")
	// ErrNotificationNotFound is returned when no notification matches
	ErrNotificationNotFound = errors.New("notification not found")
	// ErrProfileNotFound is returned when no mirrored profile matches
	ErrProfileNotFound = errors.New("profile not found")
	// ErrNotOwner is returned when the caller's restaurant does not own the resource
	ErrNotOwner = errors.New("resource belongs to a different restaurant")
	// ErrInvalidTransition is returned when an order status transition is not allowed
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOrderFinalized is returned when mutating a finalized order
	ErrOrderFinalized = errors.New("order is finalized and immutable")
)
