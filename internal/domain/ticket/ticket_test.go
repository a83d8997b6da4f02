package ticket

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/systech-labs/deskflow/internal/domain/policy"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/constants"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func uintPtr(v uint) *uint { return &v }

var (
	admin  = authorization.Actor{UserID: 1, Role: authorization.RoleAdmin}
	agent  = authorization.Actor{UserID: 2, Role: authorization.RoleAgent}
	client = authorization.Actor{UserID: 3, Role: authorization.RoleClient, ClientID: uintPtr(42)}
)

// persistedTicket builds a stored ticket in the given status. clientID may be nil.
func persistedTicket(t *testing.T, status vo.TicketStatus, clientID *uint) *Ticket {
	t.Helper()
	now := time.Now().UTC()
	tk, err := ReconstructTicket(ReconstructParams{
		ID:          7,
		IssueKey:    "CRM-B007",
		ProductID:   1,
		Title:       "Invoices do not export",
		Description: "Export button spins forever",
		Type:        vo.TypeBug,
		Status:      status,
		Channel:     vo.ChannelInternal,
		ClientID:    clientID,
		ReporterID:  3,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
	return tk
}

// ---------------------------------------------------------------------------
// Constructor
// ---------------------------------------------------------------------------

func TestNewTicket_InitialStatusFollowsChannel(t *testing.T) {
	internal, err := NewTicket(NewTicketParams{
		ProductID: 1, Title: "Nightly sync failed", Type: vo.TypeTask,
		Channel:   vo.ChannelInternal, ReporterID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusOpen, internal.Status())
	assert.Equal(t, 1, internal.Version())

	portal, err := NewTicket(NewTicketParams{
		ProductID: 1, Title: "Cannot log in", Type: vo.TypeSupport,
		Channel:   vo.ChannelClientPortal, ReporterID: 3, ClientID: uintPtr(42),
	})
	require.NoError(t, err)
	assert.Equal(t, vo.StatusPendingInternalReview, portal.Status())
}

func TestNewTicket_Validation(t *testing.T) {
	base := NewTicketParams{ProductID: 1, Title: "t", Type: vo.TypeBug, Channel: vo.ChannelInternal, ReporterID: 1}

	tests := []struct {
		name   string
		mutate func(p *NewTicketParams)
		errMsg string
	}{
		{"blank title", func(p *NewTicketParams) { p.Title = "   " }, "title is required"},
		{"no product", func(p *NewTicketParams) { p.ProductID = 0 }, "product ID is required"},
		{"bad type", func(p *NewTicketParams) { p.Type = "incident" }, "invalid ticket type"},
		{"portal without client", func(p *NewTicketParams) { p.Channel = vo.ChannelClientPortal }, "require a client ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := NewTicket(p)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewTicket_NormalizesLabels(t *testing.T) {
	tk, err := NewTicket(NewTicketParams{
		ProductID: 1, Title: "x", Type: vo.TypeNote, Channel: vo.ChannelInternal, ReporterID: 1,
		Labels:    []string{" billing ", "", "billing", constants.LabelCreatedBySystech},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", constants.LabelCreatedBySystech}, tk.Labels())
	assert.True(t, tk.CreatedBySystech())
	assert.Equal(t, []string{"billing"}, tk.FreeTags())
}

// ---------------------------------------------------------------------------
// Labels
// ---------------------------------------------------------------------------

func TestIsEscalated_DerivedFromLabels(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)
	assert.False(t, tk.IsEscalated())

	tk.AddLabel(constants.LabelEscalated)
	assert.True(t, tk.IsEscalated())
	assert.Equal(t, tk.HasLabel(constants.LabelEscalated), tk.IsEscalated())
}

// ---------------------------------------------------------------------------
// Status changes
// ---------------------------------------------------------------------------

func TestApplyStatusChange_UnknownStatus(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)
	err := tk.ApplyStatusChange(agent, StatusChange{Status: "archived"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ticket status")
}

func TestApplyStatusChange_SameStatusIsNoop(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)
	require.NoError(t, tk.ApplyStatusChange(client, StatusChange{Status: vo.StatusOpen}))
	assert.Equal(t, 1, tk.Version())
	assert.Empty(t, tk.GetEvents())
}

func TestApplyStatusChange_CancelRequiresReason(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)

	err := tk.ApplyStatusChange(agent, StatusChange{Status: vo.StatusCancelled, Reason: "  "})
	require.Error(t, err)
	assert.Equal(t, vo.StatusOpen, tk.Status())

	require.NoError(t, tk.ApplyStatusChange(agent, StatusChange{Status: vo.StatusCancelled, Reason: "duplicate"}))
	assert.Equal(t, vo.StatusCancelled, tk.Status())
	assert.Equal(t, "duplicate", tk.CancelReason())
}

func TestApplyStatusChange_CancelPendingReviewNeedsAdminTier(t *testing.T) {
	tk := persistedTicket(t, vo.StatusPendingInternalReview, uintPtr(42))

	err := tk.ApplyStatusChange(agent, StatusChange{Status: vo.StatusCancelled, Reason: "spam"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))

	require.NoError(t, tk.ApplyStatusChange(admin, StatusChange{Status: vo.StatusCancelled, Reason: "spam"}))
}

func TestApplyStatusChange_CloseOnlyFromResolvedByAdminTier(t *testing.T) {
	open := persistedTicket(t, vo.StatusOpen, nil)
	err := open.ApplyStatusChange(admin, StatusChange{Status: vo.StatusClosed})
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))

	resolved := persistedTicket(t, vo.StatusResolved, nil)
	err = resolved.ApplyStatusChange(agent, StatusChange{Status: vo.StatusClosed})
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))

	require.NoError(t, resolved.ApplyStatusChange(admin, StatusChange{Status: vo.StatusClosed}))
	assert.Equal(t, vo.StatusClosed, resolved.Status())
	assert.NotNil(t, resolved.ClosedAt())
}

func TestApplyStatusChange_Rebuttal(t *testing.T) {
	tk := persistedTicket(t, vo.StatusWaitingForCustomer, uintPtr(42))
	require.NoError(t, tk.ApplyStatusChange(client, StatusChange{Status: vo.StatusRebuttal}))
	assert.Equal(t, vo.StatusRebuttal, tk.Status())

	resolved := persistedTicket(t, vo.StatusResolved, nil)
	err := resolved.ApplyStatusChange(agent, StatusChange{Status: vo.StatusRebuttal})
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))
}

func TestApplyStatusChange_PendingReviewOnlyByReassign(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, uintPtr(42))
	err := tk.ApplyStatusChange(admin, StatusChange{Status: vo.StatusPendingInternalReview})
	require.Error(t, err)
	assert.False(t, errors.Is(err, policy.ErrNotPermitted))
}

func TestApplyStatusChange_WorkflowMoves(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, uintPtr(42))

	err := tk.ApplyStatusChange(client, StatusChange{Status: vo.StatusInProgress})
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))

	require.NoError(t, tk.ApplyStatusChange(agent, StatusChange{Status: vo.StatusInProgress}))
	require.NoError(t, tk.ApplyStatusChange(agent, StatusChange{
		Status: vo.StatusResolved, Resolution: "fixed", ResolutionNote: "patched exporter",
	}))
	assert.Equal(t, vo.StatusResolved, tk.Status())
	assert.Equal(t, "fixed", tk.Resolution())
	assert.Equal(t, "patched exporter", tk.ResolutionNote())
	assert.NotNil(t, tk.ResolvedAt())
	assert.Equal(t, 2, tk.Version())

	evts := tk.GetEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, EventTypeTicketStatusChanged, evts[1].GetEventType())
}

func TestApplyStatusChange_WorkflowFromTerminalIsValidationError(t *testing.T) {
	for _, status := range []vo.TicketStatus{vo.StatusClosed, vo.StatusCancelled, vo.StatusResolved} {
		tk := persistedTicket(t, status, nil)
		err := tk.ApplyStatusChange(admin, StatusChange{Status: vo.StatusInProgress})
		require.Error(t, err, string(status))
		assert.False(t, errors.Is(err, policy.ErrNotPermitted), string(status))
	}
}

func TestApplyStatusChange_CancelledCannotMove(t *testing.T) {
	tk := persistedTicket(t, vo.StatusCancelled, uintPtr(42))
	for _, target := range []vo.TicketStatus{vo.StatusOpen, vo.StatusClosed, vo.StatusRebuttal} {
		assert.Error(t, tk.ApplyStatusChange(admin, StatusChange{Status: target}), string(target))
	}
	assert.Equal(t, vo.StatusCancelled, tk.Status())
}

// ---------------------------------------------------------------------------
// Reopen
// ---------------------------------------------------------------------------

func TestReopen_FromClosedByAnyone(t *testing.T) {
	tk := persistedTicket(t, vo.StatusClosed, uintPtr(42))

	require.NoError(t, tk.ApplyStatusChange(client, StatusChange{Status: vo.StatusOpen}))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Nil(t, tk.ClosedAt())

	var types []string
	for _, e := range tk.GetEvents() {
		types = append(types, e.GetEventType())
	}
	assert.Equal(t, []string{EventTypeTicketStatusChanged, EventTypeTicketReopened}, types)
}

func TestReopen_FromResolvedNeedsAdminTier(t *testing.T) {
	tk := persistedTicket(t, vo.StatusResolved, nil)

	err := tk.Reopen(agent)
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))

	require.NoError(t, tk.Reopen(admin))
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Empty(t, tk.Resolution())
	assert.Nil(t, tk.ResolvedAt())
}

func TestReopen_RejectsLiveTicket(t *testing.T) {
	tk := persistedTicket(t, vo.StatusInProgress, nil)
	err := tk.Reopen(admin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only closed or resolved")
}

// ---------------------------------------------------------------------------
// Reassign to internal
// ---------------------------------------------------------------------------

func TestReassignToInternal_Success(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, uintPtr(42))

	note, err := tk.ReassignToInternal(client, "  needs client input ")
	require.NoError(t, err)

	assert.Equal(t, vo.StatusPendingInternalReview, tk.Status())
	require.NotNil(t, tk.PushedToSystechAt())
	require.NotNil(t, note)
	assert.Equal(t, "needs client input", note.Body())
	assert.False(t, note.IsInternal())
	assert.Equal(t, tk.ID(), note.TicketID())

	_, err = tk.ReassignToInternal(client, "again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending_internal_review")
}

func TestReassignToInternal_Validation(t *testing.T) {
	tests := []struct {
		name     string
		status   vo.TicketStatus
		clientID *uint
		comment  string
		errMsg   string
	}{
		{"empty comment", vo.StatusOpen, uintPtr(42), "", "comment is required"},
		{"whitespace comment", vo.StatusOpen, uintPtr(42), " \t\n", "comment is required"},
		{"internal ticket", vo.StatusOpen, nil, "please look", "only client tickets"},
		{"already pending", vo.StatusPendingInternalReview, uintPtr(42), "please look", "cannot reassign"},
		{"closed", vo.StatusClosed, uintPtr(42), "please look", "cannot reassign"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk := persistedTicket(t, tt.status, tt.clientID)
			_, err := tk.ReassignToInternal(agent, tt.comment)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.False(t, errors.Is(err, policy.ErrNotPermitted))
			assert.Equal(t, tt.status, tk.Status())
			assert.Nil(t, tk.PushedToSystechAt())
		})
	}
}

func TestReassignToInternal_CancelledIsNotPermitted(t *testing.T) {
	tk := persistedTicket(t, vo.StatusCancelled, uintPtr(42))
	_, err := tk.ReassignToInternal(admin, "please look")
	assert.True(t, errors.Is(err, policy.ErrNotPermitted))
}

// ---------------------------------------------------------------------------
// Escalation
// ---------------------------------------------------------------------------

func TestEscalate(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, uintPtr(42))

	require.NoError(t, tk.Escalate(client, vo.EscalationProductionDown, ""))
	assert.True(t, tk.IsEscalated())
	assert.Equal(t, vo.EscalationProductionDown, tk.EscalationReason())
	first := tk.PushedToSystechAt()
	require.NotNil(t, first)

	require.NoError(t, tk.Escalate(agent, vo.EscalationOther, "board meeting"))
	assert.Equal(t, *first, *tk.PushedToSystechAt())
	assert.Equal(t, []string{constants.LabelEscalated}, tk.Labels())
	assert.Equal(t, "board meeting", tk.EscalationNote())
}

func TestEscalate_Validation(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)
	assert.Error(t, tk.Escalate(agent, "urgent", ""))
	assert.Error(t, tk.Escalate(agent, vo.EscalationOther, " "))

	closed := persistedTicket(t, vo.StatusClosed, nil)
	assert.Error(t, closed.Escalate(admin, vo.EscalationCompliance, ""))
	assert.False(t, closed.IsEscalated())
}

// ---------------------------------------------------------------------------
// Assignment, work start and hierarchy
// ---------------------------------------------------------------------------

func TestAssignTo(t *testing.T) {
	tk := persistedTicket(t, vo.StatusOpen, nil)
	require.Error(t, tk.AssignTo(0, 1))

	require.NoError(t, tk.AssignTo(9, 1))
	require.NotNil(t, tk.AssigneeID())
	assert.Equal(t, uint(9), *tk.AssigneeID())

	version := tk.Version()
	require.NoError(t, tk.AssignTo(9, 1))
	assert.Equal(t, version, tk.Version())
}

func TestStartWork(t *testing.T) {
	tk := persistedTicket(t, vo.StatusPendingInternalReview, uintPtr(42))
	require.NoError(t, tk.StartWork(2))
	assert.Equal(t, vo.StatusInProgress, tk.Status())

	version := tk.Version()
	require.NoError(t, tk.StartWork(2))
	assert.Equal(t, version, tk.Version())

	assert.Error(t, persistedTicket(t, vo.StatusResolved, nil).StartWork(2))
}

func TestSetParent(t *testing.T) {
	child := persistedTicket(t, vo.StatusOpen, nil)
	parent, err := ReconstructTicket(ReconstructParams{
		ID: 8, IssueKey: "CRM-B008", Type: vo.TypeEpic, Status: vo.StatusOpen,
	})
	require.NoError(t, err)

	assert.Error(t, child.SetParent(child, false))
	assert.Error(t, child.SetParent(parent, true))

	require.NoError(t, child.SetParent(parent, false))
	require.NotNil(t, child.ParentID())
	assert.Equal(t, uint(8), *child.ParentID())

	assert.Error(t, parent.SetParent(child, false))

	child.ClearParent()
	assert.Nil(t, child.ParentID())
}

// ---------------------------------------------------------------------------
// Visibility
// ---------------------------------------------------------------------------

func TestVisibleTo(t *testing.T) {
	own := persistedTicket(t, vo.StatusOpen, uintPtr(42))
	other := persistedTicket(t, vo.StatusOpen, uintPtr(99))
	internal := persistedTicket(t, vo.StatusOpen, nil)

	assert.True(t, own.VisibleTo(client))
	assert.False(t, other.VisibleTo(client))
	assert.False(t, internal.VisibleTo(client))
	assert.True(t, other.VisibleTo(agent))
}
