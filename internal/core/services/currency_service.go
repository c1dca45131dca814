package services

import (
	"context"
	"fmt"
	"time"

	"github.com/LeaseFlowHQ/leaseflow_backend/internal/apperrors"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/core/domain"
	portsrepo "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/repositories"
	portssvc "github.com/LeaseFlowHQ/leaseflow_backend/internal/core/ports/services"
	"github.com/LeaseFlowHQ/leaseflow_backend/internal/dto"
)

// currencyService manages the currency reference data that drives Money
// precision.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryWithTx
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryWithTx) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency persists a new currency. Precision defaults to two minor-unit
// decimal places when omitted.
func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	precision := domain.DefaultMoneyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > 6 {
		return nil, fmt.Errorf("%w: currency precision must be 0..6", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	return &currency, nil
}

// GetCurrencyByCode retrieves a specific currency by its code.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get currency %s: %w", currencyCode, err)
	}
	return currency, nil
}

// ListCurrencies retrieves all available currencies.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}
