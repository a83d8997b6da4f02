package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/domain/sprint"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type VelocityTrendQuery struct {
	Actor authorization.Actor
}

type VelocityTrendUseCase struct {
	sprintRepo sprint.Repository
	logger     logger.Interface
}

func NewVelocityTrendUseCase(sprintRepo sprint.Repository, logger logger.Interface) *VelocityTrendUseCase {
	return &VelocityTrendUseCase{
		sprintRepo: sprintRepo,
		logger:     logger,
	}
}

func (uc *VelocityTrendUseCase) Execute(ctx context.Context, query VelocityTrendQuery) (*sprint.VelocityReport, error) {
	if err := query.Actor.Validate(); err != nil {
		return nil, errors.NewUnauthorizedError(err.Error())
	}
	if !query.Actor.IsInternal() {
		return nil, errors.NewForbiddenError("only internal staff can view sprint velocity")
	}

	sprints, err := uc.sprintRepo.ListCompleted(ctx)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to list completed sprints", "error", err)
		return nil, common.StorageError(err, "failed to load sprints")
	}

	report := sprint.VelocityTrend(sprints)
	return &report, nil
}
