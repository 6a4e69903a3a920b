package statemachine

import (
	"errors"

	"taxi-booking-api/models"
)

// Transition defines a valid status change and who can perform it
type Transition struct {
	From  models.Status
	To    models.Status
	Actor string // "admin", "customer", "driver"
}

// validTransitions is the authoritative state machine definition
var validTransitions = []Transition{
	// Admin assigns an available driver to a pending booking
	{From: models.StatusPending, To: models.StatusAssigned, Actor: "admin"},
	// Customer can cancel any booking that is not finished yet
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "customer"},
	// Driver finishes the trip or backs out of it
	{From: models.StatusAssigned, To: models.StatusCompleted, Actor: "driver"},
	{From: models.StatusAssigned, To: models.StatusCancelled, Actor: "driver"},
}

type transitionKey struct {
	From  models.Status
	To    models.Status
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.Status) []models.Status {
	var nexts []models.Status
	seen := map[models.Status]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move a booking from one status
// to another
func CanTransition(from, to models.Status, actor string) error {
	key := transitionKey{From: from, To: to, Actor: actor}
	if transitionMap[key] {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " -> " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.Status) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
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

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
