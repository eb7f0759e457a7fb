package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/domain/port"
)

// GetCalculationUseCase retrieves a stored calculation by ID.
type GetCalculationUseCase struct {
	repo port.CalculationRepository
}

// NewGetCalculationUseCase creates a new GetCalculationUseCase.
func NewGetCalculationUseCase(repo port.CalculationRepository) *GetCalculationUseCase {
	return &GetCalculationUseCase{repo: repo}
}

// Execute looks up the calculation. Unknown IDs yield an error wrapping
// model.ErrCalculationNotFound.
func (uc *GetCalculationUseCase) Execute(ctx context.Context, req dto.GetCalculationRequest) (dto.CalculationResponse, error) {
	if req.ID == "" {
		return dto.CalculationResponse{}, fmt.Errorf("%w: calculation ID is required", ErrInvalidInput)
	}

	calc, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return dto.CalculationResponse{}, fmt.Errorf("find calculation: %w", err)
	}

	return toCalculationResponse(calc, false), nil
}
