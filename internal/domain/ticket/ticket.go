package ticket

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/policy"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/constants"
)

const (
	maxTitleLength       = 200
	maxDescriptionLength = 20000
)

type Ticket struct {
	id                uint
	issueKey          string
	productID         uint
	title             string
	description       string
	ticketType        vo.TicketType
	status            vo.TicketStatus
	channel           vo.Channel
	clientID          *uint
	reporterID        uint
	assigneeID        *uint
	priority          vo.Rating
	severity          vo.Rating
	labels            []string
	escalationReason  vo.EscalationReason
	escalationNote    string
	pushedToSystechAt *time.Time
	parentID          *uint
	resolution        string
	resolutionNote    string
	cancelReason      string
	version           int
	createdAt         time.Time
	updatedAt         time.Time
	resolvedAt        *time.Time
	closedAt          *time.Time
	dirty             bool

	events.Recorder
}

// NewTicketParams carries the fields a reporter supplies when filing a ticket.
type NewTicketParams struct {
	ProductID   uint
	Title       string
	Description string
	Type        vo.TicketType
	Channel     vo.Channel
	ReporterID  uint
	ClientID    *uint
	Priority    vo.Rating
	Severity    vo.Rating
	Labels      []string
}

func NewTicket(p NewTicketParams) (*Ticket, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if len(p.Description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if p.ProductID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if p.ReporterID == 0 {
		return nil, fmt.Errorf("reporter ID is required")
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %q", p.Type)
	}
	if !p.Channel.IsValid() {
		return nil, fmt.Errorf("invalid channel: %q", p.Channel)
	}
	if p.Channel == vo.ChannelClientPortal && p.ClientID == nil {
		return nil, fmt.Errorf("client portal tickets require a client ID")
	}

	now := biztime.NowUTC()
	return &Ticket{
		productID:   p.ProductID,
		title:       title,
		description: p.Description,
		ticketType:  p.Type,
		status:      p.Channel.InitialStatus(),
		channel:     p.Channel,
		clientID:    p.ClientID,
		reporterID:  p.ReporterID,
		priority:    p.Priority,
		severity:    p.Severity,
		labels:      normalizeLabels(p.Labels),
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructParams is the stored state of a ticket.
type ReconstructParams struct {
	ID                uint
	IssueKey          string
	ProductID         uint
	Title             string
	Description       string
	Type              vo.TicketType
	Status            vo.TicketStatus
	Channel           vo.Channel
	ClientID          *uint
	ReporterID        uint
	AssigneeID        *uint
	Priority          vo.Rating
	Severity          vo.Rating
	Labels            []string
	EscalationReason  vo.EscalationReason
	EscalationNote    string
	PushedToSystechAt *time.Time
	ParentID          *uint
	Resolution        string
	ResolutionNote    string
	CancelReason      string
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	ResolvedAt        *time.Time
	ClosedAt          *time.Time
}

func ReconstructTicket(p ReconstructParams) (*Ticket, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if p.IssueKey == "" {
		return nil, fmt.Errorf("issue key is required")
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid ticket type: %q", p.Type)
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid ticket status: %q", p.Status)
	}

	return &Ticket{
		id:                p.ID,
		issueKey:          p.IssueKey,
		productID:         p.ProductID,
		title:             p.Title,
		description:       p.Description,
		ticketType:        p.Type,
		status:            p.Status,
		channel:           p.Channel,
		clientID:          p.ClientID,
		reporterID:        p.ReporterID,
		assigneeID:        p.AssigneeID,
		priority:          p.Priority,
		severity:          p.Severity,
		labels:            normalizeLabels(p.Labels),
		escalationReason:  p.EscalationReason,
		escalationNote:    p.EscalationNote,
		pushedToSystechAt: p.PushedToSystechAt,
		parentID:          p.ParentID,
		resolution:        p.Resolution,
		resolutionNote:    p.ResolutionNote,
		cancelReason:      p.CancelReason,
		version:           p.Version,
		createdAt:         p.CreatedAt,
		updatedAt:         p.UpdatedAt,
		resolvedAt:        p.ResolvedAt,
		closedAt:          p.ClosedAt,
	}, nil
}

func (t *Ticket) ID() uint                              { return t.id }
func (t *Ticket) IssueKey() string                      { return t.issueKey }
func (t *Ticket) ProductID() uint                       { return t.productID }
func (t *Ticket) Title() string                         { return t.title }
func (t *Ticket) Description() string                   { return t.description }
func (t *Ticket) Type() vo.TicketType                   { return t.ticketType }
func (t *Ticket) Status() vo.TicketStatus               { return t.status }
func (t *Ticket) Channel() vo.Channel                   { return t.channel }
func (t *Ticket) ClientID() *uint                       { return t.clientID }
func (t *Ticket) ReporterID() uint                      { return t.reporterID }
func (t *Ticket) AssigneeID() *uint                     { return t.assigneeID }
func (t *Ticket) Priority() vo.Rating                   { return t.priority }
func (t *Ticket) Severity() vo.Rating                   { return t.severity }
func (t *Ticket) EscalationReason() vo.EscalationReason { return t.escalationReason }
func (t *Ticket) EscalationNote() string                { return t.escalationNote }
func (t *Ticket) PushedToSystechAt() *time.Time         { return t.pushedToSystechAt }
func (t *Ticket) ParentID() *uint                       { return t.parentID }
func (t *Ticket) Resolution() string                    { return t.resolution }
func (t *Ticket) ResolutionNote() string                { return t.resolutionNote }
func (t *Ticket) CancelReason() string                  { return t.cancelReason }
func (t *Ticket) Version() int                          { return t.version }
func (t *Ticket) CreatedAt() time.Time                  { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time                  { return t.updatedAt }
func (t *Ticket) ResolvedAt() *time.Time                { return t.resolvedAt }
func (t *Ticket) ClosedAt() *time.Time                  { return t.closedAt }

func (t *Ticket) HasClient() bool {
	return t.clientID != nil
}

func (t *Ticket) Labels() []string {
	return slices.Clone(t.labels)
}

func (t *Ticket) HasLabel(label string) bool {
	return slices.Contains(t.labels, label)
}

// IsEscalated is derived from the label set; there is no separate column.
func (t *Ticket) IsEscalated() bool {
	return t.HasLabel(constants.LabelEscalated)
}

func (t *Ticket) CreatedBySystech() bool {
	return t.HasLabel(constants.LabelCreatedBySystech)
}

// FreeTags returns the labels that are not reserved flags.
func (t *Ticket) FreeTags() []string {
	tags := make([]string, 0, len(t.labels))
	for _, l := range t.labels {
		if !isReservedLabel(l) {
			tags = append(tags, l)
		}
	}
	return tags
}

func (t *Ticket) AddLabel(label string) {
	label = strings.TrimSpace(label)
	if label == "" || t.HasLabel(label) {
		return
	}
	t.labels = append(t.labels, label)
	t.touch()
}

// AvailableActions is the policy table evaluated for this ticket.
func (t *Ticket) AvailableActions(role authorization.UserRole) []policy.Action {
	return policy.AvailableActions(t.status, role, t.HasClient())
}

// VisibleTo reports whether actor may see the ticket. Internal staff see
// everything; a client only sees tickets owned by its client account.
func (t *Ticket) VisibleTo(actor authorization.Actor) bool {
	if actor.IsInternal() {
		return true
	}
	return actor.ClientID != nil && t.clientID != nil && *actor.ClientID == *t.clientID
}

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetIssueKey(key string) error {
	if t.issueKey != "" {
		return fmt.Errorf("issue key is already set")
	}
	if key == "" {
		return fmt.Errorf("issue key cannot be empty")
	}
	t.issueKey = key
	return nil
}

// StatusChange is a requested status write plus the payload some targets need.
type StatusChange struct {
	Status         vo.TicketStatus
	Reason         string
	Resolution     string
	ResolutionNote string
}

// ApplyStatusChange maps the requested status to a lifecycle action and
// applies it when the action table allows it. Permission failures wrap
// policy.ErrNotPermitted; every other error is a validation failure.
func (t *Ticket) ApplyStatusChange(actor authorization.Actor, change StatusChange) error {
	target := change.Status
	if !target.IsValid() {
		return fmt.Errorf("invalid ticket status: %q", target)
	}
	if target == t.status {
		return nil
	}

	switch {
	case target == vo.StatusCancelled:
		return t.cancel(actor, change.Reason)
	case target == vo.StatusClosed:
		return t.close(actor)
	case target == vo.StatusRebuttal:
		return t.markRebuttal(actor)
	case target == vo.StatusPendingInternalReview:
		return fmt.Errorf("tickets enter pending_internal_review only by reassignment to internal")
	case target == vo.StatusOpen && t.status.IsReopenable():
		return t.Reopen(actor)
	}

	// remaining targets are workflow moves
	if t.status.IsTerminal() || t.status == vo.StatusResolved {
		return fmt.Errorf("cannot move a %s ticket to %s; reopen it first", t.status, target)
	}
	if !actor.IsInternal() {
		return fmt.Errorf("%w: only internal staff can move a ticket to %s", policy.ErrNotPermitted, target)
	}

	if target == vo.StatusResolved {
		now := biztime.NowUTC()
		t.resolution = strings.TrimSpace(change.Resolution)
		t.resolutionNote = strings.TrimSpace(change.ResolutionNote)
		t.resolvedAt = &now
	}
	t.transition(target, actor.UserID)
	return nil
}

func (t *Ticket) cancel(actor authorization.Actor, reason string) error {
	if err := t.authorize(actor, policy.ActionCancel); err != nil {
		return err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return fmt.Errorf("a cancellation reason is required")
	}
	t.cancelReason = reason
	t.transition(vo.StatusCancelled, actor.UserID)
	return nil
}

func (t *Ticket) close(actor authorization.Actor) error {
	if err := t.authorize(actor, policy.ActionClose); err != nil {
		return err
	}
	now := biztime.NowUTC()
	t.closedAt = &now
	t.transition(vo.StatusClosed, actor.UserID)
	return nil
}

func (t *Ticket) markRebuttal(actor authorization.Actor) error {
	if err := t.authorize(actor, policy.ActionMarkRebuttal); err != nil {
		return err
	}
	t.transition(vo.StatusRebuttal, actor.UserID)
	return nil
}

// Reopen moves a closed or resolved ticket back to open and clears its
// resolution.
func (t *Ticket) Reopen(actor authorization.Actor) error {
	if !t.status.IsReopenable() {
		return fmt.Errorf("only closed or resolved tickets can be reopened, ticket is %s", t.status)
	}
	if err := t.authorize(actor, policy.ActionReopen); err != nil {
		return err
	}

	from := t.status
	t.resolution = ""
	t.resolutionNote = ""
	t.resolvedAt = nil
	t.closedAt = nil
	t.transition(vo.StatusOpen, actor.UserID)
	t.Record(NewTicketReopenedEvent(t.id, t.issueKey, from, actor.UserID, t.updatedAt))
	return nil
}

// ReassignToInternal pushes a client ticket into the internal review queue
// and returns the client-visible comment that must be stored with it.
func (t *Ticket) ReassignToInternal(actor authorization.Actor, comment string) (*Comment, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return nil, fmt.Errorf("a comment is required to reassign a ticket to internal")
	}
	if t.clientID == nil {
		return nil, fmt.Errorf("only client tickets can be reassigned to internal")
	}
	if t.status == vo.StatusPendingInternalReview || t.status == vo.StatusClosed {
		return nil, fmt.Errorf("cannot reassign a %s ticket to internal", t.status)
	}
	if err := t.authorize(actor, policy.ActionReassignToInternal); err != nil {
		return nil, err
	}

	note, err := NewComment(t.id, actor.UserID, comment, false)
	if err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	t.pushedToSystechAt = &now
	t.transition(vo.StatusPendingInternalReview, actor.UserID)
	t.Record(NewTicketReassignedToInternalEvent(t.id, t.issueKey, *t.clientID, actor.UserID, now))
	return note, nil
}

// Escalate flags the ticket with the escalated label and records why.
func (t *Ticket) Escalate(actor authorization.Actor, reason vo.EscalationReason, note string) error {
	if !reason.IsValid() {
		return fmt.Errorf("invalid escalation reason: %q", reason)
	}
	note = strings.TrimSpace(note)
	if reason.RequiresNote() && note == "" {
		return fmt.Errorf("an escalation note is required when the reason is other")
	}
	if t.status.IsTerminal() {
		return fmt.Errorf("cannot escalate a %s ticket", t.status)
	}

	now := biztime.NowUTC()
	if !t.HasLabel(constants.LabelEscalated) {
		t.labels = append(t.labels, constants.LabelEscalated)
	}
	t.escalationReason = reason
	t.escalationNote = note
	if t.pushedToSystechAt == nil {
		t.pushedToSystechAt = &now
	}
	t.touch()
	t.Record(NewTicketEscalatedEvent(t.id, t.issueKey, t.title, reason, note, actor.UserID, now))
	return nil
}

// AssignTo sets the internal owner of the ticket.
func (t *Ticket) AssignTo(assigneeID uint, assignedBy uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	if t.assigneeID != nil && *t.assigneeID == assigneeID {
		return nil
	}
	t.assigneeID = &assigneeID
	t.touch()
	t.Record(NewTicketAssignedEvent(t.id, t.issueKey, assigneeID, assignedBy, t.updatedAt))
	return nil
}

// StartWork moves a live ticket to in_progress as part of dev task
// conversion. It is a no-op when the ticket is already in progress.
func (t *Ticket) StartWork(changedBy uint) error {
	if t.status == vo.StatusInProgress {
		return nil
	}
	if t.status.IsTerminal() || t.status == vo.StatusResolved {
		return fmt.Errorf("cannot start work on a %s ticket", t.status)
	}
	t.transition(vo.StatusInProgress, changedBy)
	return nil
}

// SetParent makes parent the parent of t. Hierarchies are one level deep,
// so the parent must not have a parent and t must not have children.
func (t *Ticket) SetParent(parent *Ticket, hasChildren bool) error {
	if parent == nil {
		return fmt.Errorf("parent ticket is required")
	}
	if parent.id == t.id {
		return fmt.Errorf("a ticket cannot be its own parent")
	}
	if parent.parentID != nil {
		return fmt.Errorf("ticket %s is already a child and cannot be a parent", parent.issueKey)
	}
	if hasChildren {
		return fmt.Errorf("ticket %s has children and cannot become a child", t.issueKey)
	}
	id := parent.id
	t.parentID = &id
	t.touch()
	return nil
}

func (t *Ticket) ClearParent() {
	if t.parentID == nil {
		return
	}
	t.parentID = nil
	t.touch()
}

func (t *Ticket) authorize(actor authorization.Actor, action policy.Action) error {
	return policy.Authorize(t.status, actor.Role, t.HasClient(), action)
}

func (t *Ticket) transition(to vo.TicketStatus, changedBy uint) {
	from := t.status
	t.status = to
	t.touch()
	t.Record(NewTicketStatusChangedEvent(t.id, t.issueKey, from, to, changedBy, t.updatedAt))
}

// Changed reports whether the ticket was mutated since it was loaded. An
// unchanged ticket must not be written: its version was never bumped.
func (t *Ticket) Changed() bool {
	return t.dirty
}

// touch bumps the version once per load so repositories can check the
// stored row against Version()-1.
func (t *Ticket) touch() {
	t.updatedAt = biztime.NowUTC()
	if !t.dirty {
		t.version++
		t.dirty = true
	}
}

func isReservedLabel(label string) bool {
	return label == constants.LabelEscalated || label == constants.LabelCreatedBySystech
}

func normalizeLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" || slices.Contains(out, l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
