package usecases

import (
	"context"
	"time"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/escalation"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/utils"
)

type EscalationQueueQuery struct {
	Actor authorization.Actor
	// Page and PageSize select one page of the queue. Zero returns it whole.
	Page     int
	PageSize int
	// Now overrides the clock, mainly for tests.
	Now time.Time
}

// EscalationQueueUseCase lists tickets waiting in the internal queue with
// their SLA age computed at read time.
type EscalationQueueUseCase struct {
	ticketRepo ticket.TicketRepository
	logger     logger.Interface
}

func NewEscalationQueueUseCase(ticketRepo ticket.TicketRepository, logger logger.Interface) *EscalationQueueUseCase {
	return &EscalationQueueUseCase{
		ticketRepo: ticketRepo,
		logger:     logger,
	}
}

func (uc *EscalationQueueUseCase) Execute(ctx context.Context, query EscalationQueueQuery) (*dto.EscalationQueueDTO, error) {
	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if !query.Actor.IsInternal() {
		return nil, errors.NewForbiddenError("only internal staff can view the escalation queue")
	}

	now := query.Now
	if now.IsZero() {
		now = biztime.NowUTC()
	}

	tickets, err := uc.ticketRepo.ListEscalationQueue(ctx)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to list escalation queue", "error", err)
		return nil, common.StorageError(err, "failed to list escalations")
	}

	items := make([]dto.EscalationItemDTO, 0, len(tickets))
	for _, t := range tickets {
		pushed := t.PushedToSystechAt()
		if pushed == nil || t.Status().IsTerminal() {
			continue
		}
		items = append(items, dto.EscalationItemDTO{
			ID:                t.ID(),
			IssueKey:          t.IssueKey(),
			Title:             t.Title(),
			Status:            t.Status().String(),
			IsEscalated:       t.IsEscalated(),
			EscalationReason:  t.EscalationReason().String(),
			Priority:          t.Priority().Effective(),
			PushedToSystechAt: *pushed,
			SLA:               escalation.SLAAge(*pushed, now),
		})
	}

	total := len(items)
	if query.Page > 0 && query.PageSize > 0 {
		start, end := utils.ApplyPagination(total, query.Page, query.PageSize)
		items = items[start:end]
	}

	return &dto.EscalationQueueDTO{Items: items, Total: int64(total)}, nil
}
