// Package engine applies payments to loan accounts. It is the only writer
// of customer state; every apply commits the payment row and the account
// mutation as one transaction.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benadictjacob/Inav-backend/internal/apperr"
	"github.com/benadictjacob/Inav-backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxApplyAttempts bounds the optimistic-concurrency retry loop.
const maxApplyAttempts = 3

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)

	errStaleBalance = errors.New("balance changed concurrently")
)

type Engine struct {
	db  *gorm.DB
	log *zap.Logger
	now func() time.Time
}

func New(db *gorm.DB, log *zap.Logger) *Engine {
	return &Engine{db: db, log: log, now: time.Now}
}

// ApplyPayment validates the payment against the account, rolls the EMI into
// the next period and commits the payment record together with the account
// update. The returned payment embeds the post-payment customer state.
//
// Validation order: account exists, amount > 0, amount within the remaining
// total balance. Each failure is a distinct operational error.
//
// Concurrent payments against the same account are serialized with an
// optimistic check: the balance update is guarded on the balance that was
// read, and a lost race re-reads and retries. Payments against different
// accounts never contend.
func (e *Engine) ApplyPayment(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Payment, error) {
	for attempt := 1; attempt <= maxApplyAttempts; attempt++ {
		payment, err := e.applyOnce(ctx, accountNumber, amount)
		if errors.Is(err, errStaleBalance) {
			e.log.Warn("concurrent payment on account, retrying",
				zap.String("account", accountNumber),
				zap.Int("attempt", attempt))
			continue
		}
		return payment, err
	}
	return nil, apperr.Conflict("Account is being updated concurrently, please retry")
}

func (e *Engine) applyOnce(ctx context.Context, accountNumber string, amount decimal.Decimal) (*models.Payment, error) {
	now := e.now()

	var payment models.Payment
	var updated models.Customer

	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.Where("account_number = ?", accountNumber).First(&customer).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound(fmt.Sprintf("Customer with account number %q not found", accountNumber))
			}
			return apperr.FromStorage(err)
		}

		if !amount.IsPositive() {
			return apperr.BadRequest("Payment amount must be greater than 0")
		}
		if amount.GreaterThan(customer.TotalBalance) {
			return apperr.BadRequest(fmt.Sprintf(
				"Payment amount (%s) exceeds the total remaining balance (%s)",
				amount.StringFixed(2), customer.TotalBalance.StringFixed(2)))
		}

		newBalance := customer.TotalBalance.Sub(amount)
		nextEmi := nextEmiDue(customer.EmiDue, amount, customer.MonthlyInstallment, customer.InterestRate)
		nextDate := nextMonth(customer.NextDueDate)

		payment = models.Payment{
			CustomerID:    customer.ID,
			TransactionID: newTransactionID(now),
			Amount:        amount,
			Status:        models.PaymentStatusSuccess,
			PaymentDate:   now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperr.FromStorage(err)
		}

		// Guarded update: zero rows affected means another payment committed
		// between our read and this write. Roll back and retry from a fresh
		// read.
		res := tx.Model(&models.Customer{}).
			Where("id = ? AND total_balance = ?", customer.ID, customer.TotalBalance).
			Updates(map[string]any{
				"total_balance":      newBalance,
				"emi_due":            nextEmi,
				"next_due_date":      nextDate,
				"last_interest_calc": now,
			})
		if res.Error != nil {
			return apperr.FromStorage(res.Error)
		}
		if res.RowsAffected == 0 {
			return errStaleBalance
		}

		customer.TotalBalance = newBalance
		customer.EmiDue = nextEmi
		customer.NextDueDate = nextDate
		customer.LastInterestCalc = &now
		customer.UpdatedAt = now
		updated = customer
		return nil
	})
	if err != nil {
		return nil, err
	}

	e.log.Info("payment applied",
		zap.String("account", updated.AccountNumber),
		zap.String("transaction_id", payment.TransactionID),
		zap.String("amount", amount.StringFixed(2)),
		zap.String("balance", updated.TotalBalance.StringFixed(2)))

	payment.Customer = &updated
	return &payment, nil
}

// nextEmiDue rolls the current period into the next one. A shortfall accrues
// one month of simple interest and is added on top of the baseline
// installment; an excess offsets the baseline directly, floored at zero.
func nextEmiDue(emiDue, amount, monthlyInstallment, annualRate decimal.Decimal) decimal.Decimal {
	deficit := emiDue.Sub(amount)
	next := monthlyInstallment
	switch {
	case deficit.IsPositive():
		monthlyRate := annualRate.Div(hundred).Div(twelve)
		next = next.Add(deficit).Add(deficit.Mul(monthlyRate))
	case deficit.IsNegative():
		next = next.Add(deficit)
	}
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}

// nextMonth advances by one calendar month, clamping to the last day of the
// target month (Jan 31 -> Feb 28/29). time.AddDate would normalize the
// overflow into March and drift the due day.
func nextMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	hour, min, sec := t.Clock()

	lastDay := time.Date(year, month+2, 0, 0, 0, 0, 0, t.Location()).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month+1, day, hour, min, sec, t.Nanosecond(), t.Location())
}

// newTransactionID keeps the TXN-<date>- shape but takes its suffix from a
// v4 UUID; four hex chars per day would collide in practice. The uniqueness
// constraint on transaction_id backstops the generator.
func newTransactionID(now time.Time) string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return fmt.Sprintf("TXN-%s-%s", now.Format("20060102"), strings.ToUpper(raw[:12]))
}
