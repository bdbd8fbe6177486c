package models

import "github.com/shopspring/decimal"

// Monetary constants shared by the account rules. Amounts are always
// shopspring decimals; float64 never touches a balance.
var (
	// MinOpeningBalance is the minimum opening balance for an investment
	// account and the minimum first deposit for a savings account.
	MinOpeningBalance = decimal.NewFromInt(500)

	// SavingsMonthlyRate is 0.05% per month.
	SavingsMonthlyRate = decimal.RequireFromString("0.0005")

	// InvestmentMonthlyRate is 5% per month.
	InvestmentMonthlyRate = decimal.RequireFromString("0.05")
)

// RoundAmount applies the system-wide two-decimal rounding policy.
func RoundAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// ValidAmount reports whether amount is usable for a deposit or withdrawal.
// Zero and negative amounts are rejected.
func ValidAmount(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
