package seed

import (
	"time"

	"github.com/benadictjacob/Inav-backend/internal/logger"
	"github.com/benadictjacob/Inav-backend/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type seedCustomer struct {
	accountNumber      string
	issueDate          time.Time
	interestRate       string
	tenure             int
	monthlyInstallment string
	totalBalance       string
	nextDueDate        time.Time
}

var sampleCustomers = []seedCustomer{
	{"ACC-10001", date(2024, 12, 15), "8.5", 12, "10000.00", "120000.00", date(2025, 1, 15)},
	{"ACC-10002", date(2024, 12, 20), "9.0", 12, "15000.00", "180000.00", date(2025, 1, 20)},
	{"ACC-10003", date(2024, 12, 10), "7.5", 12, "5000.00", "60000.00", date(2025, 1, 10)},
	{"ACC-10004", date(2024, 12, 5), "10.0", 12, "20000.00", "240000.00", date(2025, 1, 5)},
	{"ACC-10005", date(2024, 12, 1), "8.0", 12, "12000.00", "144000.00", date(2025, 1, 1)},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Run provisions the sample loan book. Skips when any of the sample accounts
// already exist, so restarting the server never duplicates data.
func Run(db *gorm.DB) {
	numbers := make([]string, len(sampleCustomers))
	for i, c := range sampleCustomers {
		numbers[i] = c.accountNumber
	}

	var count int64
	if err := db.Model(&models.Customer{}).Where("account_number IN ?", numbers).Count(&count).Error; err != nil {
		logger.Log.Fatal("seed check failed", zap.Error(err))
	}
	if count > 0 {
		logger.Log.Info("seed already applied, skipping")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, c := range sampleCustomers {
			installment := decimal.RequireFromString(c.monthlyInstallment)
			customer := models.Customer{
				AccountNumber:      c.accountNumber,
				IssueDate:          c.issueDate,
				InterestRate:       decimal.RequireFromString(c.interestRate),
				Tenure:             c.tenure,
				MonthlyInstallment: installment,
				EmiDue:             installment,
				TotalBalance:       decimal.RequireFromString(c.totalBalance),
				NextDueDate:        c.nextDueDate,
			}
			if err := tx.Create(&customer).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		logger.Log.Fatal("seed failed", zap.Error(err))
	}
	logger.Log.Info("seeded sample customers", zap.Int("count", len(sampleCustomers)))
}
