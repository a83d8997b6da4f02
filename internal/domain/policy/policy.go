// Package policy holds the role-gated action table for tickets. It is the
// only place that decides which lifecycle actions an actor may take; the
// ticket entity enforces it and the ticket view exposes it to clients.
package policy

import (
	"errors"
	"fmt"

	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
)

type Action string

const (
	ActionCancel             Action = "cancel"
	ActionClose              Action = "close"
	ActionReopen             Action = "reopen"
	ActionReassignToInternal Action = "reassign_to_internal"
	ActionCreateDevTask      Action = "create_dev_task"
	ActionMarkRebuttal       Action = "mark_rebuttal"
)

// ErrNotPermitted is wrapped by Authorize when an action is not offered.
var ErrNotPermitted = errors.New("action not permitted")

// canonical output order
var allActions = []Action{
	ActionCancel,
	ActionClose,
	ActionReopen,
	ActionReassignToInternal,
	ActionCreateDevTask,
	ActionMarkRebuttal,
}

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	for _, known := range allActions {
		if a == known {
			return true
		}
	}
	return false
}

// AvailableActions returns the actions role may take on a ticket in status.
// hasClient is whether the ticket belongs to a client.
func AvailableActions(status vo.TicketStatus, role authorization.UserRole, hasClient bool) []Action {
	if !role.IsValid() || !status.IsValid() || status == vo.StatusCancelled {
		return []Action{}
	}

	set := make(map[Action]bool, len(allActions))
	adminTier := role.IsAdminTier()

	switch status {
	case vo.StatusPendingInternalReview:
		if adminTier {
			set[ActionCancel] = true
		}
	case vo.StatusOpen, vo.StatusInProgress, vo.StatusWaitingForCustomer, vo.StatusRebuttal:
		set[ActionCancel] = true
	case vo.StatusResolved:
		set[ActionCancel] = true
		if adminTier {
			set[ActionClose] = true
			set[ActionReopen] = true
		}
	case vo.StatusClosed:
		set[ActionReopen] = true
	}

	switch status {
	case vo.StatusClosed, vo.StatusResolved:
	default:
		set[ActionCreateDevTask] = true
	}

	switch status {
	case vo.StatusRebuttal, vo.StatusClosed, vo.StatusResolved:
	default:
		set[ActionMarkRebuttal] = true
	}

	if hasClient && status != vo.StatusPendingInternalReview && status != vo.StatusClosed {
		set[ActionReassignToInternal] = true
	}

	out := make([]Action, 0, len(set))
	for _, a := range allActions {
		if set[a] {
			out = append(out, a)
		}
	}
	return out
}

// Can reports whether action is in AvailableActions.
func Can(status vo.TicketStatus, role authorization.UserRole, hasClient bool, action Action) bool {
	for _, a := range AvailableActions(status, role, hasClient) {
		if a == action {
			return true
		}
	}
	return false
}

// Authorize returns an error wrapping ErrNotPermitted when action is not
// available.
func Authorize(status vo.TicketStatus, role authorization.UserRole, hasClient bool, action Action) error {
	if Can(status, role, hasClient, action) {
		return nil
	}
	return fmt.Errorf("%w: %s is not allowed for role %s on a %s ticket", ErrNotPermitted, action, role, status)
}
