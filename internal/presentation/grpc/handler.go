package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/vaddi/internal/application/dto"
	"github.com/bibbank/vaddi/internal/application/usecase"
	"github.com/bibbank/vaddi/internal/domain/model"
)

// CalculatorHandler implements CalculatorServiceServer.
type CalculatorHandler struct {
	UnimplementedCalculatorServiceServer
	calculate      *usecase.CalculateInterestUseCase
	getCalculation *usecase.GetCalculationUseCase
}

// NewCalculatorHandler creates a new gRPC calculator handler.
func NewCalculatorHandler(
	calculate *usecase.CalculateInterestUseCase,
	getCalculation *usecase.GetCalculationUseCase,
) *CalculatorHandler {
	return &CalculatorHandler{
		calculate:      calculate,
		getCalculation: getCalculation,
	}
}

// Calculate handles the gRPC Calculate request.
func (h *CalculatorHandler) Calculate(ctx context.Context, req *CalculateRequest) (*CalculationMsg, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid amount: %v", err))
	}
	rate, err := decimal.NewFromString(req.InterestRate)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("invalid interest_rate: %v", err))
	}

	result, err := h.calculate.Execute(ctx, dto.CalculateInterestRequest{
		InterestType:            req.InterestType,
		RateType:                req.RateType,
		Amount:                  amount,
		InterestRate:            rate,
		DurationType:            req.DurationType,
		Years:                   int(req.Years),
		Months:                  int(req.Months),
		Days:                    int(req.Days),
		StartDate:               req.StartDate,
		EndDate:                 req.EndDate,
		CompoundFrequency:       req.CompoundFrequency,
		CompoundFrequencyMonths: int(req.CompoundFrequencyMonths),
		Currency:                req.Currency,
	})
	if err != nil {
		return nil, toStatus(err)
	}
	return toCalculationMsg(result), nil
}

// GetCalculation handles the gRPC GetCalculation request.
func (h *CalculatorHandler) GetCalculation(ctx context.Context, req *GetCalculationRequest) (*CalculationMsg, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.getCalculation.Execute(ctx, dto.GetCalculationRequest{ID: req.ID})
	if err != nil {
		return nil, toStatus(err)
	}
	return toCalculationMsg(result), nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrCalculationNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func toCalculationMsg(r dto.CalculationResponse) *CalculationMsg {
	return &CalculationMsg{
		ID:                      r.ID,
		InterestType:            r.InterestType,
		RateType:                r.RateType,
		Amount:                  r.Amount.String(),
		InterestRate:            r.InterestRate.String(),
		AnnualRate:              r.AnnualRate.String(),
		DurationType:            r.DurationType,
		Years:                   int32(r.Duration.Years),
		Months:                  int32(r.Duration.Months),
		Days:                    int32(r.Duration.Days),
		FractionalYears:         r.FractionalYears.String(),
		CompoundFrequencyMonths: int32(r.CompoundFrequencyMonths),
		Interest:                r.Interest.StringFixed(2),
		TotalPayable:            r.TotalPayable.StringFixed(2),
		Currency:                r.Currency,
		Cached:                  r.Cached,
		CreatedAt:               r.CreatedAt.Format(time.RFC3339),
	}
}
