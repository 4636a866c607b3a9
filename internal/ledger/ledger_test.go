package ledger

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/benadictjacob/Inav-backend/internal/apperr"
	"github.com/benadictjacob/Inav-backend/internal/models"
	"github.com/benadictjacob/Inav-backend/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, store.Migrate(db))
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, accountNumber string, createdAt time.Time) *models.Customer {
	t.Helper()

	installment := decimal.RequireFromString("10000")
	c := &models.Customer{
		AccountNumber:      accountNumber,
		IssueDate:          time.Date(2024, 12, 15, 0, 0, 0, 0, time.UTC),
		InterestRate:       decimal.RequireFromString("8.5"),
		Tenure:             12,
		MonthlyInstallment: installment,
		EmiDue:             installment,
		TotalBalance:       decimal.RequireFromString("120000"),
		NextDueDate:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		CreatedAt:          createdAt,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func createPayment(t *testing.T, db *gorm.DB, customerID uint, txnID string, paidAt time.Time) {
	t.Helper()

	p := &models.Payment{
		CustomerID:    customerID,
		TransactionID: txnID,
		Amount:        decimal.RequireFromString("1000"),
		Status:        models.PaymentStatusSuccess,
		PaymentDate:   paidAt,
	}
	require.NoError(t, db.Create(p).Error)
}

func TestListCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := NewService(db, zap.NewNop())

	createCustomer(t, db, "ACC-10001", time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC))
	createCustomer(t, db, "ACC-10002", time.Date(2025, 1, 2, 10, 0, 0, 0, time.UTC))
	createCustomer(t, db, "ACC-10003", time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC))

	customers, err := svc.ListCustomers(context.Background())

	require.NoError(t, err)
	require.Len(t, customers, 3)
	// Newest first.
	assert.Equal(t, "ACC-10002", customers[0].AccountNumber)
	assert.Equal(t, "ACC-10003", customers[1].AccountNumber)
	assert.Equal(t, "ACC-10001", customers[2].AccountNumber)
}

func TestGetCustomer(t *testing.T) {
	t.Run("with_history_newest_first", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db, zap.NewNop())
		c := createCustomer(t, db, "ACC-10001", time.Now().UTC())
		createPayment(t, db, c.ID, "TXN-20250110-AAAAAAAAAAAA", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))
		createPayment(t, db, c.ID, "TXN-20250210-BBBBBBBBBBBB", time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC))

		got, err := svc.GetCustomer(context.Background(), "ACC-10001")

		require.NoError(t, err)
		require.Len(t, got.Payments, 2)
		assert.Equal(t, "TXN-20250210-BBBBBBBBBBBB", got.Payments[0].TransactionID)
		assert.Equal(t, "TXN-20250110-AAAAAAAAAAAA", got.Payments[1].TransactionID)
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db, zap.NewNop())

		_, err := svc.GetCustomer(context.Background(), "ACC-99999")

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, 404, ae.Code)
		assert.True(t, ae.Operational)
		assert.Contains(t, ae.Message, "ACC-99999")
	})
}

func TestGetPaymentHistory(t *testing.T) {
	t.Run("summary", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db, zap.NewNop())
		c := createCustomer(t, db, "ACC-10001", time.Now().UTC())
		createPayment(t, db, c.ID, "TXN-20250110-AAAAAAAAAAAA", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))

		history, err := svc.GetPaymentHistory(context.Background(), "ACC-10001")

		require.NoError(t, err)
		assert.Equal(t, "ACC-10001", history.AccountNumber)
		assert.Equal(t, 1, history.TotalPayments)
		require.Len(t, history.Payments, 1)
	})

	t.Run("empty_history", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db, zap.NewNop())
		createCustomer(t, db, "ACC-10001", time.Now().UTC())

		history, err := svc.GetPaymentHistory(context.Background(), "ACC-10001")

		require.NoError(t, err)
		assert.Equal(t, 0, history.TotalPayments)
		assert.Empty(t, history.Payments)
	})

	t.Run("unknown_account", func(t *testing.T) {
		db := newTestDB(t)
		svc := NewService(db, zap.NewNop())

		_, err := svc.GetPaymentHistory(context.Background(), "ACC-99999")

		var ae *apperr.Error
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, 404, ae.Code)
	})
}
