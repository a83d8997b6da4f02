package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusPendingInternalReview TicketStatus = "pending_internal_review"
	StatusOpen                  TicketStatus = "open"
	StatusInProgress            TicketStatus = "in_progress"
	StatusWaitingForCustomer    TicketStatus = "waiting_for_customer"
	StatusRebuttal              TicketStatus = "rebuttal"
	StatusReview                TicketStatus = "review"
	StatusBlocked               TicketStatus = "blocked"
	StatusResolved              TicketStatus = "resolved"
	StatusClosed                TicketStatus = "closed"
	StatusCancelled             TicketStatus = "cancelled"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusPendingInternalReview: true,
	StatusOpen:                  true,
	StatusInProgress:            true,
	StatusWaitingForCustomer:    true,
	StatusRebuttal:              true,
	StatusReview:                true,
	StatusBlocked:               true,
	StatusResolved:              true,
	StatusClosed:                true,
	StatusCancelled:             true,
}

// workflowStatuses are the plain progress moves an internal actor may make
// on a live ticket. Every other target needs a dedicated action.
var workflowStatuses = map[TicketStatus]bool{
	StatusOpen:               true,
	StatusInProgress:         true,
	StatusWaitingForCustomer: true,
	StatusReview:             true,
	StatusBlocked:            true,
	StatusResolved:           true,
}

// AllTicketStatuses lists every status in lifecycle order.
func AllTicketStatuses() []TicketStatus {
	return []TicketStatus{
		StatusPendingInternalReview, StatusOpen, StatusInProgress, StatusWaitingForCustomer,
		StatusRebuttal, StatusReview, StatusBlocked, StatusResolved, StatusClosed, StatusCancelled,
	}
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

// IsTerminal is true for closed and cancelled. A closed ticket can still be
// reopened; a cancelled one cannot.
func (ts TicketStatus) IsTerminal() bool {
	return ts == StatusClosed || ts == StatusCancelled
}

// IsWorkflow reports whether ts is a plain progress target.
func (ts TicketStatus) IsWorkflow() bool {
	return workflowStatuses[ts]
}

// IsReopenable is true for the statuses the reopen action leaves from.
func (ts TicketStatus) IsReopenable() bool {
	return ts == StatusClosed || ts == StatusResolved
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
