package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"pula-banking/models"
)

func TestSnapshotStoreMissingFile(t *testing.T) {
	s, err := NewSnapshotStore(filepath.Join(t.TempDir(), "bank.json"))
	if err != nil {
		t.Fatal(err)
	}
	customers, err := s.LoadCustomers()
	if err != nil {
		t.Fatal(err)
	}
	if len(customers) != 0 {
		t.Fatalf("customers len=%d want=0", len(customers))
	}
}

func TestSnapshotStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	s, err := NewSnapshotStore(path)
	if err != nil {
		t.Fatal(err)
	}

	customer := models.Customer{
		ID:           "CUST1",
		Kind:         models.KindIndividual,
		Address:      "Plot 123",
		FirstName:    "John",
		Surname:      "Doe",
		IDNumber:     "123",
		RegisteredAt: time.Now(),
	}
	account := models.Account{
		Number:      "ACC1",
		Type:        models.Investment,
		Balance:     decimal.RequireFromString("512.34"),
		Branch:      "Main",
		CustomerID:  "CUST1",
		OpeningDate: time.Now(),
		Active:      true,
	}
	if err := s.SaveCustomer(customer); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveAccount(account); err != nil {
		t.Fatal(err)
	}
	first := models.NewTransaction("ACC1", models.TxDeposit, decimal.RequireFromString("512.34"), "Opening deposit")
	second := models.NewTransaction("ACC1", models.TxWithdrawal, decimal.RequireFromString("12.34"), "Withdrawal from account")
	if err := s.SaveTransaction(first); err != nil {
		t.Fatal(err)
	}
	if err := s.SaveTransaction(second); err != nil {
		t.Fatal(err)
	}

	// A fresh store reading the same file must see identical state.
	reopened, err := NewSnapshotStore(path)
	if err != nil {
		t.Fatal(err)
	}
	customers, err := reopened.LoadCustomers()
	if err != nil {
		t.Fatal(err)
	}
	if len(customers) != 1 || customers[0].ID != "CUST1" || customers[0].FullName() != "John Doe" {
		t.Fatalf("customers=%+v", customers)
	}
	accounts, err := reopened.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || !accounts[0].Balance.Equal(decimal.RequireFromString("512.34")) {
		t.Fatalf("accounts=%+v", accounts)
	}
	transactions, err := reopened.LoadTransactions()
	if err != nil {
		t.Fatal(err)
	}
	if len(transactions) != 2 || transactions[0].ID != first.ID || transactions[1].ID != second.ID {
		t.Fatalf("transactions out of order: %+v", transactions)
	}
}

func TestSnapshotStoreUpsert(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	s, err := NewSnapshotStore(path)
	if err != nil {
		t.Fatal(err)
	}
	account := models.Account{Number: "ACC1", Type: models.Cheque, Balance: decimal.Zero, CustomerID: "CUST1", Active: true}
	if err := s.SaveAccount(account); err != nil {
		t.Fatal(err)
	}
	account.Balance = decimal.RequireFromString("99.00")
	if err := s.SaveAccount(account); err != nil {
		t.Fatal(err)
	}

	accounts, err := s.LoadAccounts()
	if err != nil {
		t.Fatal(err)
	}
	if len(accounts) != 1 || !accounts[0].Balance.Equal(decimal.RequireFromString("99.00")) {
		t.Fatalf("accounts=%+v want single ACC1 at 99.00", accounts)
	}
}

func TestSnapshotStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewSnapshotStore(path); !errors.Is(err, ErrPersistence) {
		t.Fatalf("err=%v want ErrPersistence", err)
	}
}
