// Package ledger is the read side of the loan book: pure projections over
// customers and their payment history, no mutation.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/benadictjacob/Inav-backend/internal/apperr"
	"github.com/benadictjacob/Inav-backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewService(db *gorm.DB, log *zap.Logger) *Service {
	return &Service{db: db, log: log}
}

// History is the payment-history summary for one account.
type History struct {
	AccountNumber string           `json:"accountNumber"`
	TotalPayments int              `json:"totalPayments"`
	Payments      []models.Payment `json:"payments"`
}

// ListCustomers returns every customer, newest first.
func (s *Service) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error; err != nil {
		s.log.Error("failed to list customers", zap.Error(err))
		return nil, apperr.FromStorage(err)
	}
	return customers, nil
}

// GetCustomer returns one customer with its full payment history, most
// recent payment first.
func (s *Service) GetCustomer(ctx context.Context, accountNumber string) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC")
		}).
		Where("account_number = ?", accountNumber).
		First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Customer with account number %q not found", accountNumber))
		}
		s.log.Error("failed to fetch customer", zap.String("account", accountNumber), zap.Error(err))
		return nil, apperr.FromStorage(err)
	}
	return &customer, nil
}

// GetPaymentHistory returns the history summary for one account.
func (s *Service) GetPaymentHistory(ctx context.Context, accountNumber string) (*History, error) {
	customer, err := s.GetCustomer(ctx, accountNumber)
	if err != nil {
		return nil, err
	}
	return &History{
		AccountNumber: customer.AccountNumber,
		TotalPayments: len(customer.Payments),
		Payments:      customer.Payments,
	}, nil
}
