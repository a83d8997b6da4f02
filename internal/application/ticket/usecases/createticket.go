package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/shared/events"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	vo "github.com/systech-labs/deskflow/internal/domain/ticket/valueobjects"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/constants"
	"github.com/systech-labs/deskflow/internal/shared/db"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type CreateTicketCommand struct {
	Actor       authorization.Actor
	ProductID   uint
	Title       string
	Description string
	Type        string
	// ClientID lets internal staff file a ticket on behalf of a client.
	// Client actors always file for their own account.
	ClientID         *uint
	Priority         *int
	Severity         *int
	InternalPriority *int
	InternalSeverity *int
	Labels           []string
}

type CreateTicketUseCase struct {
	ticketRepo  ticket.TicketRepository
	productRepo product.Repository
	keys        product.IssueKeyAllocator
	txManager   db.Transactor
	publisher   events.EventPublisher
	logger      logger.Interface
}

func NewCreateTicketUseCase(
	ticketRepo ticket.TicketRepository,
	productRepo product.Repository,
	keys product.IssueKeyAllocator,
	txManager db.Transactor,
	publisher events.EventPublisher,
	logger logger.Interface,
) *CreateTicketUseCase {
	return &CreateTicketUseCase{
		ticketRepo:  ticketRepo,
		productRepo: productRepo,
		keys:        keys,
		txManager:   txManager,
		publisher:   publisher,
		logger:      logger,
	}
}

func (uc *CreateTicketUseCase) Execute(ctx context.Context, cmd CreateTicketCommand) (*dto.TicketDTO, error) {
	uc.logger.WithContext(ctx).Infow("executing create ticket use case", "product_id", cmd.ProductID, "user_id", cmd.Actor.UserID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.WithContext(ctx).Errorw("invalid create ticket command", "error", err)
		return nil, err
	}

	if _, err := uc.productRepo.GetByID(ctx, cmd.ProductID); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to load product", "product_id", cmd.ProductID, "error", err)
		return nil, common.StorageError(err, "failed to load product")
	}

	params, err := uc.buildParams(cmd)
	if err != nil {
		return nil, err
	}

	t, err := ticket.NewTicket(params)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to create ticket entity", "error", err)
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		key, err := uc.keys.Next(txCtx, cmd.ProductID, product.IssueKindTicket)
		if err != nil {
			return err
		}
		if err := t.SetIssueKey(key); err != nil {
			return err
		}
		return uc.ticketRepo.Create(txCtx, t)
	})
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to persist ticket", "product_id", cmd.ProductID, "error", err)
		return nil, common.StorageError(err, "failed to create ticket")
	}

	common.PublishEvents(uc.publisher, uc.logger, []events.DomainEvent{ticket.NewTicketCreatedEvent(t)})

	uc.logger.WithContext(ctx).Infow("ticket created successfully", "ticket_id", t.ID(), "issue_key", t.IssueKey(), "status", t.Status())

	return dto.ToTicketDTO(t, t.AvailableActions(cmd.Actor.Role), biztime.NowUTC()), nil
}

func (uc *CreateTicketUseCase) buildParams(cmd CreateTicketCommand) (ticket.NewTicketParams, error) {
	ticketType := vo.TypeSupport
	if cmd.Type != "" {
		parsed, err := vo.NewTicketType(cmd.Type)
		if err != nil {
			return ticket.NewTicketParams{}, errors.NewValidationError(err.Error())
		}
		ticketType = parsed
	}

	priority, err := buildRating(cmd.Priority, cmd.InternalPriority, cmd.Actor)
	if err != nil {
		return ticket.NewTicketParams{}, errors.NewValidationError("invalid priority", err.Error())
	}
	severity, err := buildRating(cmd.Severity, cmd.InternalSeverity, cmd.Actor)
	if err != nil {
		return ticket.NewTicketParams{}, errors.NewValidationError("invalid severity", err.Error())
	}

	params := ticket.NewTicketParams{
		ProductID:   cmd.ProductID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Type:        ticketType,
		Channel:     vo.ChannelInternal,
		ReporterID:  cmd.Actor.UserID,
		ClientID:    cmd.ClientID,
		Priority:    priority,
		Severity:    severity,
		Labels:      withoutReservedLabels(cmd.Labels),
	}

	if cmd.Actor.IsInternal() {
		params.Labels = append(params.Labels, constants.LabelCreatedBySystech)
	} else {
		params.Channel = vo.ChannelClientPortal
		params.ClientID = cmd.Actor.ClientID
	}
	return params, nil
}

func (uc *CreateTicketUseCase) validateCommand(cmd CreateTicketCommand) error {
	if err := validateActor(cmd.Actor); err != nil {
		return err
	}
	if cmd.ProductID == 0 {
		return errors.NewValidationError("product ID is required")
	}
	if cmd.Title == "" {
		return errors.NewValidationError("title is required")
	}
	if !cmd.Actor.IsInternal() && (cmd.InternalPriority != nil || cmd.InternalSeverity != nil) {
		return errors.NewForbiddenError("only internal staff can override priority or severity")
	}
	return nil
}

// buildRating combines the reported and the internal value. Internal actors
// reporting without an override are recorded as the override.
func buildRating(reported, override *int, actor authorization.Actor) (vo.Rating, error) {
	var r vo.Rating
	var err error
	if reported != nil {
		if r, err = vo.ClientRating(*reported); err != nil {
			return r, err
		}
	}
	if override != nil {
		return r.Override(*override)
	}
	if reported != nil && actor.IsInternal() {
		return vo.Rating{}.Override(*reported)
	}
	return r, nil
}

// withoutReservedLabels drops the flag labels that only the engine sets.
func withoutReservedLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l == constants.LabelEscalated || l == constants.LabelCreatedBySystech {
			continue
		}
		out = append(out, l)
	}
	return out
}
