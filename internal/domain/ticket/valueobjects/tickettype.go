package valueobjects

import "fmt"

type TicketType string

const (
	TypeSupport        TicketType = "support"
	TypeBug            TicketType = "bug"
	TypeTask           TicketType = "task"
	TypeFeature        TicketType = "feature"
	TypeFeatureRequest TicketType = "feature_request"
	TypeEpic           TicketType = "epic"
	TypeSpike          TicketType = "spike"
	TypeNote           TicketType = "note"
)

var validTicketTypes = map[TicketType]bool{
	TypeSupport:        true,
	TypeBug:            true,
	TypeTask:           true,
	TypeFeature:        true,
	TypeFeatureRequest: true,
	TypeEpic:           true,
	TypeSpike:          true,
	TypeNote:           true,
}

func (t TicketType) String() string { return string(t) }

func (t TicketType) IsValid() bool { return validTicketTypes[t] }

func NewTicketType(s string) (TicketType, error) {
	t := TicketType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid ticket type: %s", s)
	}
	return t, nil
}

// Channel records how a ticket entered the system and decides its initial
// status.
type Channel string

const (
	ChannelInternal     Channel = "internal"
	ChannelClientPortal Channel = "client_portal"
)

func (c Channel) IsValid() bool {
	return c == ChannelInternal || c == ChannelClientPortal
}

// InitialStatus is open for internally filed tickets and
// pending_internal_review for tickets raised from the client portal.
func (c Channel) InitialStatus() TicketStatus {
	if c == ChannelClientPortal {
		return StatusPendingInternalReview
	}
	return StatusOpen
}

type LinkType string

const (
	LinkRelatesTo  LinkType = "relates_to"
	LinkBlocks     LinkType = "blocks"
	LinkDuplicates LinkType = "duplicates"
	LinkCausedBy   LinkType = "caused_by"
)

func (l LinkType) IsValid() bool {
	switch l {
	case LinkRelatesTo, LinkBlocks, LinkDuplicates, LinkCausedBy:
		return true
	}
	return false
}

type EscalationReason string

const (
	EscalationExecutiveRequest EscalationReason = "executive_request"
	EscalationProductionDown   EscalationReason = "production_down"
	EscalationCompliance       EscalationReason = "compliance"
	EscalationCustomerImpact   EscalationReason = "customer_impact"
	EscalationOther            EscalationReason = "other"
)

func (r EscalationReason) String() string { return string(r) }

func (r EscalationReason) IsValid() bool {
	switch r {
	case EscalationExecutiveRequest, EscalationProductionDown, EscalationCompliance,
		EscalationCustomerImpact, EscalationOther:
		return true
	}
	return false
}

// RequiresNote is true for "other", whose meaning lives in the note.
func (r EscalationReason) RequiresNote() bool {
	return r == EscalationOther
}
