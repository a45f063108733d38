package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// AllStatuses is the authoritative ordering of the lifecycle, used in error
// payloads so clients see the accepted values.
var AllStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusOutForDelivery,
	models.StatusCompleted,
	models.StatusCancelled,
}

var validStatuses = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(AllStatuses))
	for _, s := range AllStatuses {
		m[s] = true
	}
	return m
}()

var terminalStatuses = map[models.OrderStatus]bool{
	models.StatusCompleted: true,
	models.StatusCancelled: true,
}

var ErrTerminalState = errors.New("order is in a terminal state")
var ErrUnknownStatus = errors.New("unknown order status")

// IsValid reports whether s is one of the six order statuses.
func IsValid(s models.OrderStatus) bool {
	return validStatuses[s]
}

// IsTerminal reports whether no further transition is permitted out of s.
func IsTerminal(s models.OrderStatus) bool {
	return terminalStatuses[s]
}

// CanTransition checks whether an order currently in from may move to to.
// Any non-terminal status may move to any status, including straight to a
// terminal one; Completed and Cancelled accept nothing, not even a repeat of
// the same value.
func CanTransition(from, to models.OrderStatus) error {
	if !validStatuses[to] {
		return ErrUnknownStatus
	}
	if terminalStatuses[from] {
		return ErrTerminalState
	}
	return nil
}
