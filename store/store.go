// Package store provides the persistence collaborator the bank reads from at
// startup and writes through on every successful mutation. Implementations
// are synchronous; every failure wraps ErrPersistence.
package store

import (
	"errors"

	"pula-banking/models"
)

// ErrPersistence marks any failure of the persistence collaborator. The
// bank's in-memory state is not rolled back when a save fails; callers must
// treat the change as applied but of unconfirmed durability.
var ErrPersistence = errors.New("persistence failure")

// Repository is the contract between the bank and its persistence backend.
type Repository interface {
	LoadCustomers() ([]models.Customer, error)
	LoadAccounts() ([]models.Account, error)
	LoadTransactions() ([]models.Transaction, error)
	SaveCustomer(models.Customer) error
	SaveAccount(models.Account) error
	SaveTransaction(models.Transaction) error
}
