package http

import (
	"gorm.io/gorm"

	"github.com/systech-labs/deskflow/internal/domain/devtask"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/domain/ticket"
	"github.com/systech-labs/deskflow/internal/infrastructure/repository"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

// repositories holds every repository the use cases share.
type repositories struct {
	productRepo    product.Repository
	issueKeys      product.IssueKeyAllocator
	ticketRepo     ticket.TicketRepository
	commentRepo    ticket.CommentRepository
	attachmentRepo ticket.AttachmentRepository
	linkRepo       ticket.LinkRepository
	devTaskRepo    devtask.Repository
	sprintRepo     sprint.Repository
}

// newRepositories creates all repository instances from the database connection.
func newRepositories(db *gorm.DB, log logger.Interface) *repositories {
	productRepo := repository.NewProductRepository(db)

	return &repositories{
		productRepo:    productRepo,
		issueKeys:      repository.NewIssueKeyAllocator(db, productRepo),
		ticketRepo:     repository.NewTicketRepository(db, log),
		commentRepo:    repository.NewTicketCommentRepository(db),
		attachmentRepo: repository.NewTicketAttachmentRepository(db),
		linkRepo:       repository.NewTicketLinkRepository(db),
		devTaskRepo:    repository.NewDevTaskRepository(db, log),
		sprintRepo:     repository.NewSprintRepository(db, log),
	}
}
