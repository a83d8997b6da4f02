package usecases

import (
	"context"
	"fmt"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/ticket/dto"
	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/biztime"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
	"github.com/systech-labs/deskflow/internal/shared/services/markdown"
)

// GetTicketQuery looks a ticket up by issue key, or by ID when the key is
// empty.
type GetTicketQuery struct {
	Actor    authorization.Actor
	IssueKey string
	TicketID uint
}

type GetTicketUseCase struct {
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	linkRepo       ticket.LinkRepository
	devTaskRepo    devtask.Repository
	markdown       markdown.MarkdownService
	logger         logger.Interface
}

func NewGetTicketUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	attachmentRepo ticket.AttachmentRepository,
	linkRepo ticket.LinkRepository,
	devTaskRepo devtask.Repository,
	markdownService markdown.MarkdownService,
	logger logger.Interface,
) *GetTicketUseCase {
	return &GetTicketUseCase{
		ticketRepo:     ticketRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		linkRepo:       linkRepo,
		devTaskRepo:    devTaskRepo,
		markdown:       markdownService,
		logger:         logger,
	}
}

func (uc *GetTicketUseCase) Execute(ctx context.Context, query GetTicketQuery) (*dto.TicketView, error) {
	if err := validateActor(query.Actor); err != nil {
		return nil, err
	}
	if query.IssueKey == "" && query.TicketID == 0 {
		return nil, errors.NewValidationError("issue key or ticket ID is required")
	}

	t, err := uc.load(ctx, query)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to get ticket", "issue_key", query.IssueKey, "ticket_id", query.TicketID, "error", err)
		return nil, common.StorageError(err, "failed to load ticket")
	}
	if !t.VisibleTo(query.Actor) {
		return nil, errors.NewNotFoundError(fmt.Sprintf("ticket %s not found", t.IssueKey()))
	}

	view := &dto.TicketView{
		Ticket:      dto.ToTicketDTO(t, t.AvailableActions(query.Actor.Role), biztime.NowUTC()),
		Comments:    []dto.CommentDTO{},
		Attachments: []dto.AttachmentDTO{},
		Children:    []dto.TicketSummaryDTO{},
		Links:       []dto.LinkDTO{},
		DevTasks:    []dto.DevTaskSummaryDTO{},
	}
	view.Ticket.DescriptionHTML = uc.render(t.Description())

	if err := uc.fillRelations(ctx, t, query.Actor, view); err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to load ticket relations", "ticket_id", t.ID(), "error", err)
		return nil, common.StorageError(err, "failed to load ticket details")
	}

	return view, nil
}

func (uc *GetTicketUseCase) load(ctx context.Context, query GetTicketQuery) (*ticket.Ticket, error) {
	if query.IssueKey != "" {
		return uc.ticketRepo.GetByIssueKey(ctx, query.IssueKey)
	}
	return uc.ticketRepo.GetByID(ctx, query.TicketID)
}

func (uc *GetTicketUseCase) fillRelations(ctx context.Context, t *ticket.Ticket, actor authorization.Actor, view *dto.TicketView) error {
	comments, err := uc.commentRepo.ListByTicket(ctx, t.ID(), actor.IsInternal())
	if err != nil {
		return err
	}
	for _, c := range comments {
		cd := dto.ToCommentDTO(c)
		cd.BodyHTML = uc.render(c.Body())
		view.Comments = append(view.Comments, cd)
	}

	attachments, err := uc.attachmentRepo.ListByTicket(ctx, t.ID())
	if err != nil {
		return err
	}
	for _, a := range attachments {
		view.Attachments = append(view.Attachments, dto.ToAttachmentDTO(a))
	}

	if parentID := t.ParentID(); parentID != nil {
		parent, err := uc.ticketRepo.GetByID(ctx, *parentID)
		if err != nil {
			return err
		}
		if parent.VisibleTo(actor) {
			summary := dto.ToTicketSummaryDTO(parent)
			view.Parent = &summary
		}
	}

	children, err := uc.ticketRepo.GetChildren(ctx, t.ID())
	if err != nil {
		return err
	}
	for _, c := range children {
		if c.VisibleTo(actor) {
			view.Children = append(view.Children, dto.ToTicketSummaryDTO(c))
		}
	}

	links, err := uc.linkRepo.ListForTicket(ctx, t.ID())
	if err != nil {
		return err
	}
	for _, l := range links {
		view.Links = append(view.Links, dto.ToLinkDTO(l))
	}

	if actor.IsInternal() {
		tasks, err := uc.devTaskRepo.ListByTicket(ctx, t.ID())
		if err != nil {
			return err
		}
		for _, d := range tasks {
			view.DevTasks = append(view.DevTasks, dto.ToDevTaskSummaryDTO(d))
		}
	}
	return nil
}

func (uc *GetTicketUseCase) render(markdownText string) string {
	if markdownText == "" {
		return ""
	}
	html, err := uc.markdown.ToHTMLSanitized(markdownText)
	if err != nil {
		uc.logger.Warnw("failed to render markdown", "error", err)
		return ""
	}
	return html
}
