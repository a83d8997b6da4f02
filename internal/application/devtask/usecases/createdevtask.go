package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// CreateDevTaskCommand files a dev task that is not tied to a support
// ticket.
type CreateDevTaskCommand struct {
	Actor              authorization.Actor
	ProductID          uint
	Title              string
	Description        string
	Type               string
	Roles              RoleInput
	UseProductDefaults bool
	Structure          devtask.Structure
	StoryPoints        int
}

type CreateDevTaskUseCase struct {
	devTaskRepo devtask.Repository
	productRepo product.Repository
	keys        product.IssueKeyAllocator
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateDevTaskUseCase(
	devTaskRepo devtask.Repository,
	productRepo product.Repository,
	keys product.IssueKeyAllocator,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateDevTaskUseCase {
	return &CreateDevTaskUseCase{
		devTaskRepo: devTaskRepo,
		productRepo: productRepo,
		keys:        keys,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreateDevTaskUseCase) Execute(ctx context.Context, cmd CreateDevTaskCommand) (*dto.DevTaskDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing create dev task use case", "product_id", cmd.ProductID, "user_id", cmd.Actor.UserID)

	if err := requireInternal(cmd.Actor); err != nil {
		return nil, err
	}
	if cmd.ProductID == 0 {
		return nil, errors.NewValidationError("product ID is required")
	}

	p, err := uc.productRepo.GetByID(ctx, cmd.ProductID)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to load product", "product_id", cmd.ProductID, "error", err)
		return nil, common.StorageError(err, "failed to load product")
	}

	task, err := buildTask(devtask.NewDevTaskParams{
		ProductID:   p.ID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Roles:       resolveRoles(cmd.Roles, p, cmd.UseProductDefaults),
		Structure:   cmd.Structure,
		StoryPoints: cmd.StoryPoints,
		CreatedBy:   cmd.Actor.UserID,
	}, cmd.Type)
	if err != nil {
		return nil, err
	}

	if err := product.ValidateStructure(ctx, uc.productRepo, p.ID, structureRefs(cmd.Structure)); err != nil {
		return nil, common.DomainError(err)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		key, err := uc.keys.Next(txCtx, p.ID, product.IssueKindDevTask)
		if err != nil {
			return err
		}
		if err := task.SetIssueKey(key); err != nil {
			return err
		}
		return uc.devTaskRepo.Create(txCtx, task)
	})
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to persist dev task", "product_id", p.ID, "error", err)
		return nil, common.StorageError(err, "failed to create dev task")
	}

	common.PublishEvents(uc.publisher, uc.logger, []events.DomainEvent{devtask.NewCreatedEvent(task)})

	uc.logger.WithContext(ctx).Infow("dev task created", "dev_task_id", task.ID(), "issue_key", task.IssueKey())

	return dto.ToDevTaskDTO(task), nil
}
