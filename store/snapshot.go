package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"pula-banking/models"
)

// meta records how and when a snapshot was written, for debugging and future
// schema migration.
type meta struct {
	Storage   string    `json:"storage"`
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// snapshot is the on-disk shape: the full ledger state in one JSON document.
type snapshot struct {
	Meta         meta                 `json:"_meta"`
	Customers    []models.Customer    `json:"customers"`
	Accounts     []models.Account     `json:"accounts"`
	Transactions []models.Transaction `json:"transactions"`
}

// SnapshotStore persists the ledger as a single JSON file. Every save
// rewrites the file atomically: the snapshot is written to a .tmp sibling
// first and then renamed over the original, so a crash mid-write never
// corrupts the previous state.
type SnapshotStore struct {
	mutex sync.Mutex
	path  string

	customers    map[string]models.Customer
	accounts     map[string]models.Account
	transactions []models.Transaction
}

// NewSnapshotStore opens or creates the snapshot file at path. A missing
// file yields an empty store; a present but unreadable one is an error.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	s := &SnapshotStore{
		path:      path,
		customers: make(map[string]models.Customer),
		accounts:  make(map[string]models.Account),
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("%w: open snapshot %s: %v", ErrPersistence, path, err)
	}
	defer f.Close()

	var snap snapshot
	if err := json.NewDecoder(f).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: decode snapshot %s: %v", ErrPersistence, path, err)
	}
	for _, c := range snap.Customers {
		s.customers[c.ID] = c
	}
	for _, a := range snap.Accounts {
		s.accounts[a.Number] = a
	}
	s.transactions = snap.Transactions
	return s, nil
}

// LoadCustomers returns all persisted customers, ordered by id.
func (s *SnapshotStore) LoadCustomers() ([]models.Customer, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LoadAccounts returns all persisted accounts, ordered by account number.
func (s *SnapshotStore) LoadAccounts() ([]models.Account, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out, nil
}

// LoadTransactions returns all persisted transactions in save order.
func (s *SnapshotStore) LoadTransactions() ([]models.Transaction, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

// SaveCustomer upserts the customer and rewrites the snapshot file.
func (s *SnapshotStore) SaveCustomer(c models.Customer) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.customers[c.ID] = c
	return s.flush()
}

// SaveAccount upserts the account and rewrites the snapshot file.
func (s *SnapshotStore) SaveAccount(a models.Account) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.accounts[a.Number] = a
	return s.flush()
}

// SaveTransaction appends the transaction and rewrites the snapshot file.
func (s *SnapshotStore) SaveTransaction(t models.Transaction) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.transactions = append(s.transactions, t)
	return s.flush()
}

// flush writes the current state atomically. Callers hold the mutex.
func (s *SnapshotStore) flush() error {
	snap := snapshot{
		Meta: meta{Storage: "json_snapshot", Version: 1, Timestamp: time.Now()},
	}
	for _, c := range s.customers {
		snap.Customers = append(snap.Customers, c)
	}
	sort.Slice(snap.Customers, func(i, j int) bool { return snap.Customers[i].ID < snap.Customers[j].ID })
	for _, a := range s.accounts {
		snap.Accounts = append(snap.Accounts, a)
	}
	sort.Slice(snap.Accounts, func(i, j int) bool { return snap.Accounts[i].Number < snap.Accounts[j].Number })
	snap.Transactions = s.transactions

	tmp := s.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersistence, tmp, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snap); err != nil {
		f.Close()
		return fmt.Errorf("%w: encode snapshot: %v", ErrPersistence, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrPersistence, tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrPersistence, tmp, err)
	}
	return nil
}
