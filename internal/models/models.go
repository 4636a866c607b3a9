package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const PaymentStatusSuccess = "success"

// Customer is a loan-style account. AccountNumber is immutable after
// creation; TotalBalance and EmiDue change only through payment application.
type Customer struct {
	ID                 uint            `gorm:"primaryKey" json:"id"`
	AccountNumber      string          `gorm:"uniqueIndex;size:32;not null" json:"accountNumber"`
	IssueDate          time.Time       `gorm:"not null" json:"issueDate"`
	InterestRate       decimal.Decimal `gorm:"type:numeric;not null" json:"interestRate"` // annual %, e.g. 8.5
	Tenure             int             `gorm:"not null" json:"tenure"`                    // total installments, informational
	MonthlyInstallment decimal.Decimal `gorm:"type:numeric;not null" json:"monthlyInstallment"`
	EmiDue             decimal.Decimal `gorm:"type:numeric;not null" json:"emiDue"`
	TotalBalance       decimal.Decimal `gorm:"type:numeric;not null" json:"totalBalance"`
	NextDueDate        time.Time       `gorm:"not null" json:"nextDueDate"`
	LastInterestCalc   *time.Time      `json:"lastInterestCalc,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`

	Payments []Payment `gorm:"foreignKey:CustomerID" json:"payments,omitempty"`
}

// Payment is immutable once created. It is only ever written together with
// the customer mutation it belongs to.
type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	CustomerID    uint            `gorm:"index;not null" json:"customerId"`
	TransactionID string          `gorm:"uniqueIndex;size:64;not null" json:"transactionId"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null" json:"amount"`
	Status        string          `gorm:"size:16;not null" json:"status"`
	PaymentDate   time.Time       `gorm:"index;not null" json:"paymentDate"`
	CreatedAt     time.Time       `json:"createdAt"`

	// Customer carries the post-payment account state on payment creation
	// responses. Not a stored column.
	Customer *Customer `gorm:"-" json:"customer,omitempty"`
}
