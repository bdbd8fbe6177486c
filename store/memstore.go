package store

import (
	"sort"
	"sync"

	"pula-banking/models"
)

// MemStore holds customers, accounts, and transactions in memory. It backs
// tests and serves as the null backend when no data file is configured.
type MemStore struct {
	mutex        sync.RWMutex
	customers    map[string]models.Customer
	accounts     map[string]models.Account
	transactions []models.Transaction
}

// NewMemStore returns an empty in-memory repository.
func NewMemStore() *MemStore {
	return &MemStore{
		customers: make(map[string]models.Customer),
		accounts:  make(map[string]models.Account),
	}
}

// LoadCustomers returns all stored customers, ordered by id.
func (s *MemStore) LoadCustomers() ([]models.Customer, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadAccounts returns all stored accounts, ordered by account number.
func (s *MemStore) LoadAccounts() ([]models.Account, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// LoadTransactions returns all stored transactions in the order they were
// saved.
func (s *MemStore) LoadTransactions() ([]models.Transaction, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// SaveCustomer inserts or replaces a customer record.
func (s *MemStore) SaveCustomer(c models.Customer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.customers[c.ID] = c
	return nil
}

// SaveAccount inserts or replaces an account record.
func (s *MemStore) SaveAccount(a models.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.accounts[a.Number] = a
	return nil
}

// SaveTransaction appends a transaction record.
func (s *MemStore) SaveTransaction(t models.Transaction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.transactions = append(s.transactions, t)
	return nil
}
