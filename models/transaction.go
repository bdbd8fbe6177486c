package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType classifies a money movement.
type TransactionType string

const (
	TxDeposit    TransactionType = "DEPOSIT"
	TxWithdrawal TransactionType = "WITHDRAWAL"
	TxInterest   TransactionType = "INTEREST"
)

// Transaction is an immutable record of a single balance-affecting operation.
// Records are append-only per account, in insertion order.
type Transaction struct {
	ID            string          `json:"id"`
	AccountNumber string          `json:"accountNumber"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Timestamp     time.Time       `json:"timestamp"`
}

// NewTransaction builds a record with a fresh TXN-prefixed id and the current
// time.
func NewTransaction(accountNumber string, t TransactionType, amount decimal.Decimal, description string) Transaction {
	return Transaction{
		ID:            "TXN" + uuid.New().String(),
		AccountNumber: accountNumber,
		Type:          t,
		Amount:        amount,
		Description:   description,
		Timestamp:     time.Now(),
	}
}
