// Package workflow holds the order status state machine and the list
// derivations the orders screens are built from. Everything here is pure:
// callers pass order values in and get new values back, and persistence and
// notifications stay with the caller.
package workflow

import (
	"errors"
	"fmt"

	"vendorhub/internal/model"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

// InvalidTransitionError reports a (from, to) pair that is not an edge of the
// status graph. It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	From model.Status
	To   model.Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s", e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Action is a vendor-facing button that moves an order to Target.
type Action struct {
	Label  string       `json:"label"`
	Target model.Status `json:"target"`
}

// actions is the edge table. The order of each slice is the order buttons
// are rendered in.
var actions = map[model.Status][]Action{
	model.StatusNew: {
		{Label: "Accept", Target: model.StatusProcessing},
		{Label: "Reject", Target: model.StatusCancelled},
	},
	model.StatusProcessing: {
		{Label: "Mark Ready", Target: model.StatusReady},
	},
	model.StatusReady: {
		{Label: "Complete Order", Target: model.StatusCompleted},
	},
}

// AvailableActions returns the actions offered for an order in status s.
// Terminal and unknown statuses get an empty, non-nil slice.
func AvailableActions(s model.Status) []Action {
	out := make([]Action, len(actions[s]))
	copy(out, actions[s])
	return out
}

func CanTransition(from, to model.Status) bool {
	for _, a := range actions[from] {
		if a.Target == to {
			return true
		}
	}
	return false
}

// ApplyTransition returns a copy of o moved to target. Only Status differs
// between o and the result.
func ApplyTransition(o model.Order, target model.Status) (model.Order, error) {
	if !CanTransition(o.Status, target) {
		return o, &InvalidTransitionError{From: o.Status, To: target}
	}
	o.Status = target
	return o, nil
}

// NotificationMessage is the toast text for an order that just reached
// target. ok is false for statuses no transition leads to.
func NotificationMessage(target model.Status) (msg string, ok bool) {
	switch target {
	case model.StatusProcessing:
		return "Order accepted and being processed", true
	case model.StatusReady:
		return "Order marked as ready for pickup", true
	case model.StatusCompleted:
		return "Order completed successfully", true
	case model.StatusCancelled:
		return "Order has been cancelled", true
	default:
		return "", false
	}
}

func NotificationDescription(orderID string) string {
	return fmt.Sprintf("Order #%s status updated.", orderID)
}
