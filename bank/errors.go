package bank

import "errors"

// Orchestrator-level errors. Rule-level errors (invalid amount, insufficient
// funds, withdrawal capability, savings floor) live in the models package.
var (
	// ErrCustomerNotFound means no customer has the given id.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrAccountNotFound means no account has the given number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateCustomer means the customer id is already registered.
	// Cannot happen under generated ids; checked defensively.
	ErrDuplicateCustomer = errors.New("customer already exists")

	// ErrDuplicateAccount means the account number is already in use.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrUnknownAccountType rejects an account type outside
	// Savings/Investment/Cheque.
	ErrUnknownAccountType = errors.New("unknown account type")

	// ErrInvalidOpeningBalance rejects a negative opening balance, or an
	// investment opening balance under the 500.00 minimum.
	ErrInvalidOpeningBalance = errors.New("invalid opening balance")

	// ErrEmploymentRequired rejects a cheque account for an individual
	// without employment on record.
	ErrEmploymentRequired = errors.New("customer must be employed to open a cheque account")

	// ErrAccountAlreadyClosed rejects closing an inactive account twice.
	ErrAccountAlreadyClosed = errors.New("account already closed")
)
