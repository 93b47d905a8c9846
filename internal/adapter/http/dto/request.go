package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmaia/saldo/internal/domain"
	"github.com/rmaia/saldo/internal/usecase"
)

// CreateExpenseRequest represents a request to create an expense.
// Supplying payment_source marks the expense paid; paid_at without a
// payment_source is rejected downstream.
type CreateExpenseRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	Company        string          `json:"company"`
	Category       string          `json:"category,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PaymentSource  *string         `json:"payment_source,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateExpenseRequest) ToUseCaseInput(owner string) (usecase.CreateExpenseInput, error) {
	source, err := parsePaymentSource(r.PaymentSource)
	if err != nil {
		return usecase.CreateExpenseInput{}, err
	}

	return usecase.CreateExpenseInput{
		Amount:         r.Amount,
		InterestAmount: r.InterestAmount,
		Company:        r.Company,
		Category:       r.Category,
		DueDate:        timeOrZero(r.DueDate),
		PaidAt:         r.PaidAt,
		PaymentSource:  source,
		Owner:          owner,
	}, nil
}

// UpdateExpenseRequest represents the full new state of an expense.
type UpdateExpenseRequest struct {
	Amount         decimal.Decimal `json:"amount"`
	InterestAmount decimal.Decimal `json:"interest_amount"`
	Company        string          `json:"company"`
	Category       string          `json:"category,omitempty"`
	DueDate        *time.Time      `json:"due_date,omitempty"`
	PaidAt         *time.Time      `json:"paid_at,omitempty"`
	PaymentSource  *string         `json:"payment_source,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateExpenseRequest) ToUseCaseInput() (usecase.UpdateExpenseInput, error) {
	source, err := parsePaymentSource(r.PaymentSource)
	if err != nil {
		return usecase.UpdateExpenseInput{}, err
	}

	return usecase.UpdateExpenseInput{
		Amount:         r.Amount,
		InterestAmount: r.InterestAmount,
		Company:        r.Company,
		Category:       r.Category,
		DueDate:        timeOrZero(r.DueDate),
		PaidAt:         r.PaidAt,
		PaymentSource:  source,
	}, nil
}

// CreateRevenueRequest represents a request to create a revenue.
type CreateRevenueRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Company     string          `json:"company"`
	Category    string          `json:"category,omitempty"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
	Destination string          `json:"destination"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateRevenueRequest) ToUseCaseInput(owner string) (usecase.CreateRevenueInput, error) {
	destination, err := domain.ParseDestination(r.Destination)
	if err != nil {
		return usecase.CreateRevenueInput{}, err
	}

	return usecase.CreateRevenueInput{
		Amount:      r.Amount,
		Company:     r.Company,
		Category:    r.Category,
		ReceivedAt:  r.ReceivedAt,
		Destination: destination,
		Owner:       owner,
	}, nil
}

// UpdateRevenueRequest represents the full new state of a revenue.
type UpdateRevenueRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Company     string          `json:"company"`
	Category    string          `json:"category,omitempty"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
	Destination string          `json:"destination"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateRevenueRequest) ToUseCaseInput() (usecase.UpdateRevenueInput, error) {
	destination, err := domain.ParseDestination(r.Destination)
	if err != nil {
		return usecase.UpdateRevenueInput{}, err
	}

	return usecase.UpdateRevenueInput{
		Amount:      r.Amount,
		Company:     r.Company,
		Category:    r.Category,
		ReceivedAt:  r.ReceivedAt,
		Destination: destination,
	}, nil
}

func parsePaymentSource(s *string) (*domain.Kind, error) {
	if s == nil {
		return nil, nil
	}

	kind, err := domain.ParseKind(*s)
	if err != nil {
		return nil, err
	}

	return &kind, nil
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}

	return *t
}
