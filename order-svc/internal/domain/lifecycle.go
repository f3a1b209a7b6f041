package domain

import "fmt"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

type Actor string

const (
	ActorStaff    Actor = "staff"
	ActorCustomer Actor = "customer"
)

type edge struct {
	to     Status
	actors []Actor
}

// transitions is the complete list of legal status moves. Anything not listed
// here is rejected. The backward edges are staff corrections.
var transitions = map[Status][]edge{
	StatusPending: {
		{to: StatusPreparing, actors: []Actor{ActorStaff}},
		{to: StatusCancelled, actors: []Actor{ActorStaff, ActorCustomer}},
	},
	StatusPreparing: {
		{to: StatusReady, actors: []Actor{ActorStaff}},
		{to: StatusPending, actors: []Actor{ActorStaff}},
		{to: StatusCancelled, actors: []Actor{ActorStaff}},
	},
	StatusReady: {
		{to: StatusDelivered, actors: []Actor{ActorStaff}},
		{to: StatusPreparing, actors: []Actor{ActorStaff}},
		{to: StatusCancelled, actors: []Actor{ActorStaff}},
	},
}

func ParseStatus(raw string) (Status, error) {
	status := Status(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return status, nil
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Active reports whether the order still occupies its table.
func (s Status) Active() bool {
	return s.Valid() && !s.IsTerminal()
}

func CanTransition(from, to Status, actor Actor) bool {
	for _, e := range transitions[from] {
		if e.to != to {
			continue
		}
		for _, a := range e.actors {
			if a == actor {
				return true
			}
		}
	}
	return false
}

// NextStatuses lists the statuses actor may move an order in from to, in
// display order.
func NextStatuses(from Status, actor Actor) []Status {
	var next []Status
	for _, e := range transitions[from] {
		if CanTransition(from, e.to, actor) {
			next = append(next, e.to)
		}
	}
	return next
}

type TransitionError struct {
	From  Status
	To    Status
	Actor Actor
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s as %s", e.From, e.To, e.Actor)
}

func ValidateTransition(from, to Status, actor Actor) error {
	if !CanTransition(from, to, actor) {
		return &TransitionError{From: from, To: to, Actor: actor}
	}
	return nil
}
