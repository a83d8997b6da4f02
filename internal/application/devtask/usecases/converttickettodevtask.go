package usecases

import (
	"context"
	"fmt"
	"strings"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	ticketdto "github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/policy"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type ConvertTicketCommand struct {
	Actor              authorization.Actor
	TicketID           uint
	Title              string
	Description        string
	Type               string
	Roles              RoleInput
	UseProductDefaults bool
	Structure          devtask.Structure
	StoryPoints        int
}

// ConvertTicketOptions carries the conversion settings from config.
type ConvertTicketOptions struct {
	// RejectDuplicateConversion refuses a second conversion while a task
	// that is not done still points at the ticket.
	RejectDuplicateConversion bool
}

type ConvertTicketToDevTaskUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	devTaskRepo devtask.Repository
	productRepo product.Repository
	keys        product.IssueKeyAllocator
	txManager   db.Transactor
	publisher   events.EventPublisher
	opts        ConvertTicketOptions
	logger      logger.Interface
}

func NewConvertTicketToDevTaskUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	devTaskRepo devtask.Repository,
	productRepo product.Repository,
	keys product.IssueKeyAllocator,
	txManager db.Transactor,
	publisher events.EventPublisher,
	opts ConvertTicketOptions,
	logger logger.Interface,
) *ConvertTicketToDevTaskUseCase {
	return &ConvertTicketToDevTaskUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		devTaskRepo: devTaskRepo,
		productRepo: productRepo,
		keys:        keys,
		txManager:   txManager,
		publisher:   publisher,
		opts:        opts,
		logger:      logger,
	}
}

func (uc *ConvertTicketToDevTaskUseCase) Execute(ctx context.Context, cmd ConvertTicketCommand) (*dto.ConversionResult, error) {
	uc.logger.WithContext(ctx).Infow("executing convert ticket to dev task use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	if err := requireInternal(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.TicketID == 0 {
		return nil, errors.NewValidationError("ticket ID is required")
	}

	var (
		t    *ticket.Ticket
		task *devtask.DevTask
		note *ticket.Comment
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		t, err = uc.ticketRepo.GetByID(txCtx, cmd.TicketID)
		if err != nil {
			return common.StorageError(err, "failed to load ticket")
		}

		task, err = uc.prepareTask(txCtx, t, cmd)
		if err != nil {
			return err
		}

		if err := t.AssignTo(task.Roles().ImplementorID, cmd.Actor.UserID); err != nil {
			return common.DomainError(err)
		}
		if err := t.StartWork(cmd.Actor.UserID); err != nil {
			return common.DomainError(err)
		}

		key, err := uc.keys.Next(txCtx, t.ProductID(), product.IssueKindDevTask)
		if err != nil {
			return common.StorageError(err, "failed to allocate issue key")
		}
		if err := task.SetIssueKey(key); err != nil {
			return common.DomainError(err)
		}
		if err := uc.devTaskRepo.Create(txCtx, task); err != nil {
			return common.StorageError(err, "failed to create dev task")
		}
		// Re-converting an in-progress ticket already owned by the
		// implementor leaves it untouched.
		if t.Changed() {
			if err := uc.ticketRepo.Update(txCtx, t); err != nil {
				return common.StorageError(err, "failed to update ticket")
			}
		}

		note, err = ticket.NewComment(t.ID(), cmd.Actor.UserID, conversionNote(task), true)
		if err != nil {
			return common.DomainError(err)
		}
		if err := uc.commentRepo.Create(txCtx, note); err != nil {
			return common.StorageError(err, "failed to save conversion comment")
		}
		return nil
	})
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to convert ticket to dev task", "ticket_id", cmd.TicketID, "error", err)
		return nil, err
	}

	evts := append([]events.DomainEvent{devtask.NewCreatedEvent(task)}, t.GetEvents()...)
	common.PublishEvents(uc.publisher, uc.logger, evts)

	uc.logger.WithContext(ctx).Infow("ticket converted to dev task",
		"ticket_id", t.ID(),
		"issue_key", t.IssueKey(),
		"dev_task_id", task.ID(),
		"dev_task_key", task.IssueKey(),
	)

	comment := ticketdto.ToCommentDTO(note)
	return &dto.ConversionResult{
		DevTask: dto.ToDevTaskDTO(task),
		Ticket:  ticketdto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()),
		Comment: &comment,
	}, nil
}

// prepareTask validates the request against the ticket and builds the task.
// The checks run roles, type, structure, policy, duplicates.
func (uc *ConvertTicketToDevTaskUseCase) prepareTask(ctx context.Context, t *ticket.Ticket, cmd ConvertTicketCommand) (*devtask.DevTask, error) {
	var p *product.Product
	if cmd.UseProductDefaults {
		var err error
		if p, err = uc.productRepo.GetByID(ctx, t.ProductID()); err != nil {
			return nil, common.StorageError(err, "failed to load product")
		}
	}

	title := strings.TrimSpace(cmd.Title)
	if title == "" {
		title = t.Title()
	}
	description := cmd.Description
	if description == "" {
		description = t.Description()
	}
	ticketID := t.ID()

	task, err := buildTask(devtask.NewDevTaskParams{
		ProductID:       t.ProductID(),
		Title:           title,
		Description:     description,
		Roles:           resolveRoles(cmd.Roles, p, cmd.UseProductDefaults),
		Structure:       cmd.Structure,
		SupportTicketID: &ticketID,
		StoryPoints:     cmd.StoryPoints,
		CreatedBy:       cmd.Actor.UserID,
	}, cmd.Type)
	if err != nil {
		return nil, err
	}

	if err := product.ValidateStructure(ctx, uc.productRepo, t.ProductID(), structureRefs(cmd.Structure)); err != nil {
		return nil, common.DomainError(err)
	}

	if err := policy.Authorize(t.Status(), cmd.Actor.Role, t.HasClient(), policy.ActionCreateDevTask); err != nil {
		return nil, common.DomainError(err)
	}

	if uc.opts.RejectDuplicateConversion {
		open, err := uc.devTaskRepo.HasOpenForTicket(ctx, t.ID())
		if err != nil {
			return nil, common.StorageError(err, "failed to check existing dev tasks")
		}
		if open {
			return nil, errors.NewConflictError(fmt.Sprintf("ticket %s already has an open dev task", t.IssueKey()))
		}
	}
	return task, nil
}

func conversionNote(task *devtask.DevTask) string {
	return fmt.Sprintf("Converted to dev task %s: %s", task.IssueKey(), task.Title())
}
