package devtask

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
)

// ErrMissingRoles is returned when any of the three role bindings is absent.
var ErrMissingRoles = errors.New("Please assign Implementor, Developer, and Tester")

// WarningBlockedWithoutReason flags a move to blocked that carried no reason.
const WarningBlockedWithoutReason = "blocked_without_reason"

const maxTitleLength = 200

// Roles binds the three internal users every dev task needs.
type Roles struct {
	ImplementorID uint
	DeveloperID   uint
	TesterID      uint
}

func (r Roles) Complete() bool {
	return r.ImplementorID != 0 && r.DeveloperID != 0 && r.TesterID != 0
}

// Structure is the optional product structure a task is filed under.
type Structure struct {
	ModuleID    *uint
	ComponentID *uint
	AddonID     *uint
	FeatureID   *uint
}

type DevTask struct {
	id              uint
	issueKey        string
	productID       uint
	title           string
	description     string
	taskType        Type
	status          Status
	roles           Roles
	structure       Structure
	supportTicketID *uint
	storyPoints     int
	sprintID        *uint
	blockedReason   string
	createdBy       uint
	completedAt     *time.Time
	version         int
	createdAt       time.Time
	updatedAt       time.Time
	dirty           bool

	events.Recorder
}

type NewDevTaskParams struct {
	ProductID       uint
	Title           string
	Description     string
	Type            Type
	Roles           Roles
	Structure       Structure
	SupportTicketID *uint
	StoryPoints     int
	CreatedBy       uint
}

// NewDevTask creates a task in todo. The role check runs first so callers
// get the role message even when other fields are also missing.
func NewDevTask(p NewDevTaskParams) (*DevTask, error) {
	if !p.Roles.Complete() {
		return nil, ErrMissingRoles
	}
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > maxTitleLength {
		return nil, fmt.Errorf("title exceeds maximum length of %d characters", maxTitleLength)
	}
	if p.ProductID == 0 {
		return nil, fmt.Errorf("product ID is required")
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid dev task type: %q", p.Type)
	}
	if p.StoryPoints < 0 {
		return nil, fmt.Errorf("story points cannot be negative")
	}
	if p.Structure.ComponentID != nil && p.Structure.ModuleID == nil {
		return nil, fmt.Errorf("a component requires its module")
	}

	now := biztime.NowUTC()
	return &DevTask{
		productID:       p.ProductID,
		title:           title,
		description:     p.Description,
		taskType:        p.Type,
		status:          StatusTodo,
		roles:           p.Roles,
		structure:       p.Structure,
		supportTicketID: p.SupportTicketID,
		storyPoints:     p.StoryPoints,
		createdBy:       p.CreatedBy,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

type ReconstructParams struct {
	ID              uint
	IssueKey        string
	ProductID       uint
	Title           string
	Description     string
	Type            Type
	Status          Status
	Roles           Roles
	Structure       Structure
	SupportTicketID *uint
	StoryPoints     int
	SprintID        *uint
	BlockedReason   string
	CreatedBy       uint
	CompletedAt     *time.Time
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func ReconstructDevTask(p ReconstructParams) (*DevTask, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("dev task ID cannot be zero")
	}
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("invalid dev task status: %q", p.Status)
	}
	if !p.Type.IsValid() {
		return nil, fmt.Errorf("invalid dev task type: %q", p.Type)
	}

	return &DevTask{
		id:              p.ID,
		issueKey:        p.IssueKey,
		productID:       p.ProductID,
		title:           p.Title,
		description:     p.Description,
		taskType:        p.Type,
		status:          p.Status,
		roles:           p.Roles,
		structure:       p.Structure,
		supportTicketID: p.SupportTicketID,
		storyPoints:     p.StoryPoints,
		sprintID:        p.SprintID,
		blockedReason:   p.BlockedReason,
		createdBy:       p.CreatedBy,
		completedAt:     p.CompletedAt,
		version:         p.Version,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (d *DevTask) ID() uint                { return d.id }
func (d *DevTask) IssueKey() string        { return d.issueKey }
func (d *DevTask) ProductID() uint         { return d.productID }
func (d *DevTask) Title() string           { return d.title }
func (d *DevTask) Description() string     { return d.description }
func (d *DevTask) Type() Type              { return d.taskType }
func (d *DevTask) Status() Status          { return d.status }
func (d *DevTask) Roles() Roles            { return d.roles }
func (d *DevTask) Structure() Structure    { return d.structure }
func (d *DevTask) SupportTicketID() *uint  { return d.supportTicketID }
func (d *DevTask) StoryPoints() int        { return d.storyPoints }
func (d *DevTask) SprintID() *uint         { return d.sprintID }
func (d *DevTask) BlockedReason() string   { return d.blockedReason }
func (d *DevTask) CreatedBy() uint         { return d.createdBy }
func (d *DevTask) CompletedAt() *time.Time { return d.completedAt }
func (d *DevTask) Version() int            { return d.version }
func (d *DevTask) CreatedAt() time.Time    { return d.createdAt }
func (d *DevTask) UpdatedAt() time.Time    { return d.updatedAt }

func (d *DevTask) IsDone() bool {
	return d.status == StatusDone
}

func (d *DevTask) SetID(id uint) error {
	if d.id != 0 {
		return fmt.Errorf("dev task ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("dev task ID cannot be zero")
	}
	d.id = id
	return nil
}

func (d *DevTask) SetIssueKey(key string) error {
	if d.issueKey != "" {
		return fmt.Errorf("issue key is already set")
	}
	if key == "" {
		return fmt.Errorf("issue key cannot be empty")
	}
	d.issueKey = key
	return nil
}

// ChangeStatus accepts any known status. The returned warnings are advisory
// and never block the change.
func (d *DevTask) ChangeStatus(newStatus Status, blockedReason string, changedBy uint) ([]string, error) {
	if !newStatus.IsValid() {
		return nil, fmt.Errorf("invalid dev task status: %q", newStatus)
	}

	var warnings []string
	blockedReason = strings.TrimSpace(blockedReason)
	if newStatus == StatusBlocked && blockedReason == "" && d.blockedReason == "" {
		warnings = append(warnings, WarningBlockedWithoutReason)
	}

	if newStatus == d.status {
		if newStatus == StatusBlocked && blockedReason != "" && blockedReason != d.blockedReason {
			d.blockedReason = blockedReason
			d.touch()
		}
		return warnings, nil
	}

	old := d.status
	d.status = newStatus

	if newStatus == StatusBlocked {
		d.blockedReason = blockedReason
	} else {
		d.blockedReason = ""
	}

	if newStatus == StatusDone {
		now := biztime.NowUTC()
		d.completedAt = &now
	} else {
		d.completedAt = nil
	}

	d.touch()
	d.Record(NewStatusChangedEvent(d, old, changedBy))
	return warnings, nil
}

func (d *DevTask) UpdateStoryPoints(points int) error {
	if points < 0 {
		return fmt.Errorf("story points cannot be negative")
	}
	if points == d.storyPoints {
		return nil
	}
	d.storyPoints = points
	d.touch()
	return nil
}

// AssignToSprint binds the task to sprintID; nil moves it to the backlog.
func (d *DevTask) AssignToSprint(sprintID *uint) {
	if sprintID == nil && d.sprintID == nil {
		return
	}
	if sprintID != nil && d.sprintID != nil && *sprintID == *d.sprintID {
		return
	}
	if sprintID != nil {
		id := *sprintID
		sprintID = &id
	}
	d.sprintID = sprintID
	d.touch()
}

func (d *DevTask) touch() {
	d.updatedAt = biztime.NowUTC()
	if !d.dirty {
		d.version++
		d.dirty = true
	}
}
