package http

import (
	"context"

	"github.com/systech-labs/deskflow/internal/interfaces/http/handlers"
	devtaskHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/devtask"
	sprintHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/sprint"
	ticketHandlers "github.com/systech-labs/deskflow/internal/interfaces/http/handlers/ticket"
)

// initHandlers builds the HTTP handlers from the wired use cases.
func (c *Container) initHandlers() {
	c.ticketHandler = ticketHandlers.NewHandler(c.initTicketUseCases(), c.log)
	c.devTaskHandler = devtaskHandlers.NewHandler(c.initDevTaskUseCases(), c.log)
	c.sprintHandler = sprintHandlers.NewHandler(c.initSprintUseCases(), c.log)

	deps := []handlers.Pinger{handlers.PingFunc{
		Label: "database",
		Fn: func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if c.redis != nil {
		deps = append(deps, handlers.PingFunc{
			Label: "redis",
			Fn:    func(ctx context.Context) error { return c.redis.Ping(ctx).Err() },
		})
	}
	c.healthHandler = handlers.NewHealthHandler(c.log, deps...)
}
