package models

import "errors"

// Domain errors raised by the account and customer rules. The HTTP layer
// maps these to status codes; the bank orchestrator adds its own set for
// lookup and duplication failures.
var (
	// ErrValidation marks any missing or malformed required field. Specific
	// field errors wrap it so callers can match the whole class at once.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount rejects zero or negative deposit/withdrawal amounts.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientFunds rejects withdrawals larger than the balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrWithdrawalNotAllowed rejects any withdrawal from a savings account.
	ErrWithdrawalNotAllowed = errors.New("withdrawals not allowed from savings accounts")

	// ErrBelowMinimumDeposit rejects a savings account's first funding event
	// when it is under the 500.00 floor.
	ErrBelowMinimumDeposit = errors.New("first deposit below savings account minimum")

	// ErrAccountInactive rejects every operation on a closed account.
	ErrAccountInactive = errors.New("account is closed")
)
