package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType discriminates the account variants.
type AccountType string

const (
	Savings    AccountType = "Savings"
	Investment AccountType = "Investment"
	Cheque     AccountType = "Cheque"
)

// capability describes what a variant supports. Resolving behavior through
// this table replaces the runtime type checks of a class hierarchy.
type capability struct {
	withdrawable bool
	monthlyRate  decimal.Decimal // zero for non-interest-bearing variants
}

var capabilities = map[AccountType]capability{
	Savings:    {withdrawable: false, monthlyRate: SavingsMonthlyRate},
	Investment: {withdrawable: true, monthlyRate: InvestmentMonthlyRate},
	Cheque:     {withdrawable: true},
}

// ValidAccountType reports whether t names a known variant.
func ValidAccountType(t AccountType) bool {
	_, ok := capabilities[t]
	return ok
}

// Account represents a bank account of one of the three product variants.
// Balances are mutated only through Deposit and Withdraw; the bank
// orchestrator is the sole caller of those on the owned instance.
type Account struct {
	Number      string          `json:"number"`
	Type        AccountType     `json:"type"`
	Balance     decimal.Decimal `json:"balance"`
	Branch      string          `json:"branch"`
	CustomerID  string          `json:"customerId"`
	OpeningDate time.Time       `json:"openingDate"`
	Active      bool            `json:"active"`

	// Cheque accounts record the holder's employer; for company holders the
	// company itself is the employer of record.
	EmployerName    string `json:"employerName,omitempty"`
	EmployerAddress string `json:"employerAddress,omitempty"`
}

// Withdrawable reports whether this variant supports withdrawals at all.
func (a *Account) Withdrawable() bool {
	return capabilities[a.Type].withdrawable
}

// InterestBearing reports whether this variant accrues monthly interest.
func (a *Account) InterestBearing() bool {
	return !capabilities[a.Type].monthlyRate.IsZero()
}

// Deposit increases the balance by amount.
//
// A savings account additionally enforces its first-deposit floor: the first
// balance-increasing event must be at least MinOpeningBalance. Savings never
// allows withdrawals, so a zero balance means the account has never been
// funded and the floor still applies.
func (a *Account) Deposit(amount decimal.Decimal) error {
	if !a.Active {
		return ErrAccountInactive
	}
	if err := ValidAmount(amount); err != nil {
		return err
	}
	if a.Type == Savings && a.Balance.IsZero() && amount.LessThan(MinOpeningBalance) {
		return ErrBelowMinimumDeposit
	}
	a.Balance = a.Balance.Add(amount)
	return nil
}

// Withdraw decreases the balance by amount. The balance never goes negative.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	if !a.Active {
		return ErrAccountInactive
	}
	if !a.Withdrawable() {
		return ErrWithdrawalNotAllowed
	}
	if err := ValidAmount(amount); err != nil {
		return err
	}
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientFunds
	}
	a.Balance = a.Balance.Sub(amount)
	return nil
}

// MonthlyInterest returns one month of interest on the current balance,
// rounded to two decimals. Pure; the balance is not touched. Cheque accounts
// always return zero.
func (a *Account) MonthlyInterest() decimal.Decimal {
	return RoundAmount(a.Balance.Mul(capabilities[a.Type].monthlyRate))
}

// ApplyMonthlyInterest computes the month's interest and deposits it,
// returning the accrued amount. A zero accrual is a no-op.
func (a *Account) ApplyMonthlyInterest() (decimal.Decimal, error) {
	interest := a.MonthlyInterest()
	if interest.IsZero() {
		return decimal.Zero, nil
	}
	if err := a.Deposit(interest); err != nil {
		return decimal.Zero, err
	}
	return interest, nil
}
