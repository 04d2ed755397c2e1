// Package statemachine defines the order lifecycle: a fixed forward
// sequence from pending to delivered, plus cancellation while pending.
package statemachine

import (
	"uneaty-api/errs"
	"uneaty-api/models"
)

// sequence is the total order of progression. Each status may advance
// only to its immediate successor.
var sequence = []models.OrderStatus{
	models.StatusPending,
	models.StatusAccepted,
	models.StatusPickedUpCard,
	models.StatusOrderingFood,
	models.StatusPickedUpFood,
	models.StatusDelivering,
	models.StatusDelivered,
}

// transitionKey is used to look up valid transitions quickly
type transitionKey struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// Build the adjacency table: one step forward along the sequence, and
// cancelled reachable only from pending. Delivered and cancelled are
// terminal.
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for i := 0; i < len(sequence)-1; i++ {
		m[transitionKey{sequence[i], sequence[i+1]}] = true
	}
	m[transitionKey{models.StatusPending, models.StatusCancelled}] = true
	return m
}()

var validStatuses = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(sequence)+1)
	for _, s := range sequence {
		m[s] = true
	}
	m[models.StatusCancelled] = true
	return m
}()

// Parse validates a raw status string against the known states.
func Parse(raw string) (models.OrderStatus, error) {
	s := models.OrderStatus(raw)
	if !validStatuses[s] {
		return "", errs.InvalidTransition("'%s' is not a valid order status", raw)
	}
	return s, nil
}

// IsTerminal reports whether no transitions leave the given status.
func IsTerminal(status models.OrderStatus) bool {
	return status == models.StatusDelivered || status == models.StatusCancelled
}

// ValidNextStatuses returns all statuses reachable from the given one.
func ValidNextStatuses(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for i := 0; i < len(sequence)-1; i++ {
		if sequence[i] == status {
			nexts = append(nexts, sequence[i+1])
		}
	}
	if status == models.StatusPending {
		nexts = append(nexts, models.StatusCancelled)
	}
	return nexts
}

// CanTransition checks whether an order may move from one status to
// another. The target must be a valid state name and the pair must
// appear in the adjacency table.
func CanTransition(from, to models.OrderStatus) error {
	if !validStatuses[to] {
		return errs.InvalidTransition("'%s' is not a valid order status", to)
	}
	if IsTerminal(from) {
		return errs.InvalidTransition("%s is a terminal status", from)
	}
	if transitionMap[transitionKey{from, to}] {
		return nil
	}
	return errs.InvalidTransition(
		"%s to %s is not allowed; valid next statuses from %s are: %s",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidNextStatuses(status)
	if len(nexts) == 0 {
		return "none (terminal status)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// Sequence returns the forward progression for documentation endpoints.
func Sequence() []models.OrderStatus {
	out := make([]models.OrderStatus, len(sequence))
	copy(out, sequence)
	return out
}
