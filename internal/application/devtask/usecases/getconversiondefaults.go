package usecases

import (
	"context"

	"github.com/systech-labs/deskflow/internal/application/common"
	"github.com/systech-labs/deskflow/internal/application/devtask/dto"
	"github.com/systech-labs/deskflow/internal/domain/product"
	"github.com/systech-labs/deskflow/internal/shared/authorization"
	"github.com/systech-labs/deskflow/internal/shared/errors"
	"github.com/systech-labs/deskflow/internal/shared/logger"
)

type GetConversionDefaultsQuery struct {
	Actor     authorization.Actor
	ProductID uint
}

type GetConversionDefaultsUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewGetConversionDefaultsUseCase(productRepo product.Repository, logger logger.Interface) *GetConversionDefaultsUseCase {
	return &GetConversionDefaultsUseCase{
		productRepo: productRepo,
		logger:      logger,
	}
}

func (uc *GetConversionDefaultsUseCase) Execute(ctx context.Context, query GetConversionDefaultsQuery) (*dto.ConversionDefaults, error) {
	if err := requireInternal(query.Actor); err != nil {
		return nil, err
	}
	if query.ProductID == 0 {
		return nil, errors.NewValidationError("product ID is required")
	}

	p, err := uc.productRepo.GetByID(ctx, query.ProductID)
	if err != nil {
		uc.logger.WithContext(ctx).Errorw("failed to load product defaults", "product_id", query.ProductID, "error", err)
		return nil, common.StorageError(err, "failed to load product")
	}

	return &dto.ConversionDefaults{
		ProductID:     p.ID,
		ImplementorID: p.DefaultImplementorID,
		DeveloperID:   p.DefaultDeveloperID,
		TesterID:      p.DefaultTesterID,
	}, nil
}
