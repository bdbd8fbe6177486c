// Package bank implements the ledger orchestrator. A Bank owns every
// customer, account, and transaction history, and is the only component that
// mutates account balances. Rule checks that span entities (eligibility,
// opening minimums) happen here; per-account rules live on the models.
package bank

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"pula-banking/models"
	"pula-banking/store"
)

const (
	customerIDPrefix    = "CUST"
	accountNumberPrefix = "ACC"
)

// Bank is the aggregate root of the ledger. One RWMutex serializes every
// mutation: a balance change and its transaction append always land together,
// and id issuance order matches insertion order.
type Bank struct {
	mu   sync.RWMutex
	log  zerolog.Logger
	repo store.Repository

	customers map[string]models.Customer
	accounts  map[string]*models.Account
	history   map[string][]models.Transaction

	customerCounter int
	accountCounter  int
}

// New loads the ledger state from repo and re-derives the id counters from
// the highest numeric suffix already present, so restored data never collides
// with newly issued ids.
func New(repo store.Repository, log zerolog.Logger) (*Bank, error) {
	b := &Bank{
		log:       log,
		repo:      repo,
		customers: make(map[string]models.Customer),
		accounts:  make(map[string]*models.Account),
		history:   make(map[string][]models.Transaction),
	}

	customers, err := repo.LoadCustomers()
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	for _, c := range customers {
		b.customers[c.ID] = c
		if n, ok := numericSuffix(c.ID, customerIDPrefix); ok && n > b.customerCounter {
			b.customerCounter = n
		}
	}

	accounts, err := repo.LoadAccounts()
	if err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	for _, a := range accounts {
		if _, ok := b.customers[a.CustomerID]; !ok {
			log.Warn().Str("account", a.Number).Str("customer", a.CustomerID).
				Msg("skipping account with unknown owner")
			continue
		}
		acct := a
		b.accounts[acct.Number] = &acct
		if n, ok := numericSuffix(acct.Number, accountNumberPrefix); ok && n > b.accountCounter {
			b.accountCounter = n
		}
	}

	transactions, err := repo.LoadTransactions()
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	for _, t := range transactions {
		b.history[t.AccountNumber] = append(b.history[t.AccountNumber], t)
	}

	log.Info().Int("customers", len(b.customers)).Int("accounts", len(b.accounts)).
		Msg("ledger loaded")
	return b, nil
}

// numericSuffix parses the counter part of a generated id. Ids with a foreign
// format are ignored for counter purposes.
func numericSuffix(id, prefix string) (int, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(id[len(prefix):])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// nextCustomerID issues a fresh customer id. Callers hold the write lock.
func (b *Bank) nextCustomerID() string {
	b.customerCounter++
	return fmt.Sprintf("%s%d", customerIDPrefix, b.customerCounter)
}

// nextAccountNumber issues a fresh account number. Callers hold the write lock.
func (b *Bank) nextAccountNumber() string {
	b.accountCounter++
	return fmt.Sprintf("%s%d", accountNumberPrefix, b.accountCounter)
}

// AddCustomer registers a customer built by the models constructors, assigns
// its id, and persists it. A customer arriving with an id already in use is
// rejected with ErrDuplicateCustomer.
func (b *Bank) AddCustomer(c models.Customer) (models.Customer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if c.ID == "" {
		c.ID = b.nextCustomerID()
	}
	if _, exists := b.customers[c.ID]; exists {
		return models.Customer{}, ErrDuplicateCustomer
	}
	b.customers[c.ID] = c

	b.log.Info().Str("customer", c.ID).Str("name", c.FullName()).Msg("customer added")
	if err := b.repo.SaveCustomer(c); err != nil {
		return c, fmt.Errorf("save customer %s: %w", c.ID, err)
	}
	return c, nil
}

// OpenAccount validates eligibility and opening-balance rules for the given
// product, creates the account, and records a nonzero opening balance as the
// account's first DEPOSIT transaction. Nothing is mutated on a rule failure.
func (b *Bank) OpenAccount(customerID string, accountType models.AccountType, initialBalance decimal.Decimal, branch string) (models.Account, error) {
	if !models.ValidAccountType(accountType) {
		return models.Account{}, ErrUnknownAccountType
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	customer, ok := b.customers[customerID]
	if !ok {
		return models.Account{}, ErrCustomerNotFound
	}
	if initialBalance.Sign() < 0 {
		return models.Account{}, ErrInvalidOpeningBalance
	}

	acct := &models.Account{
		Type:        accountType,
		Balance:     decimal.Zero,
		Branch:      branch,
		CustomerID:  customerID,
		OpeningDate: time.Now(),
		Active:      true,
	}
	switch accountType {
	case models.Investment:
		if initialBalance.LessThan(models.MinOpeningBalance) {
			return models.Account{}, ErrInvalidOpeningBalance
		}
	case models.Savings:
		// The first-deposit floor is checked by Deposit below; a zero
		// opening balance defers it to the first real deposit.
	case models.Cheque:
		if !customer.CanOpenAccount(models.Cheque) {
			return models.Account{}, ErrEmploymentRequired
		}
		if customer.Kind == models.KindCompany {
			acct.EmployerName = customer.CompanyName
			acct.EmployerAddress = customer.Address
		} else {
			acct.EmployerName = customer.EmployerName
			acct.EmployerAddress = customer.EmployerAddress
		}
	}

	acct.Number = b.nextAccountNumber()
	if _, exists := b.accounts[acct.Number]; exists {
		return models.Account{}, ErrDuplicateAccount
	}

	var openingTx *models.Transaction
	if initialBalance.Sign() > 0 {
		if err := acct.Deposit(initialBalance); err != nil {
			// Roll back the issued number so a failed open leaves no gap.
			b.accountCounter--
			return models.Account{}, err
		}
		tx := models.NewTransaction(acct.Number, models.TxDeposit, initialBalance, "Opening deposit")
		openingTx = &tx
	}

	b.accounts[acct.Number] = acct
	if openingTx != nil {
		b.history[acct.Number] = append(b.history[acct.Number], *openingTx)
	}

	b.log.Info().Str("account", acct.Number).Str("type", string(accountType)).
		Str("customer", customerID).Str("balance", acct.Balance.StringFixed(2)).
		Msg("account opened")

	if err := b.repo.SaveAccount(*acct); err != nil {
		return *acct, fmt.Errorf("save account %s: %w", acct.Number, err)
	}
	if openingTx != nil {
		if err := b.repo.SaveTransaction(*openingTx); err != nil {
			return *acct, fmt.Errorf("save transaction %s: %w", openingTx.ID, err)
		}
	}
	return *acct, nil
}

// Deposit adds amount to the account and records a DEPOSIT transaction.
// On any rule failure the balance is untouched and nothing is recorded.
func (b *Bank) Deposit(accountNumber string, amount decimal.Decimal) (models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[accountNumber]
	if !ok {
		return models.Transaction{}, ErrAccountNotFound
	}
	if err := acct.Deposit(amount); err != nil {
		return models.Transaction{}, err
	}
	return b.record(acct, models.TxDeposit, amount, "Deposit to account")
}

// Withdraw removes amount from the account and records a WITHDRAWAL
// transaction. Savings accounts reject every withdrawal outright.
func (b *Bank) Withdraw(accountNumber string, amount decimal.Decimal) (models.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[accountNumber]
	if !ok {
		return models.Transaction{}, ErrAccountNotFound
	}
	if err := acct.Withdraw(amount); err != nil {
		return models.Transaction{}, err
	}
	return b.record(acct, models.TxWithdrawal, amount, "Withdrawal from account")
}

// ApplyMonthlyInterest accrues one month of interest on every active
// interest-bearing account, recording one INTEREST transaction per account
// that accrued a nonzero amount. A failure on one account is logged and does
// not block the rest.
func (b *Bank) ApplyMonthlyInterest() []models.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()

	applied := make([]models.Transaction, 0)
	for _, acct := range b.sortedAccounts() {
		if !acct.Active || !acct.InterestBearing() {
			continue
		}
		interest, err := acct.ApplyMonthlyInterest()
		if err != nil {
			b.log.Warn().Err(err).Str("account", acct.Number).Msg("interest accrual failed")
			continue
		}
		if interest.IsZero() {
			continue
		}
		tx, err := b.record(acct, models.TxInterest, interest, "Monthly interest")
		if err != nil {
			b.log.Warn().Err(err).Str("account", acct.Number).Msg("interest persistence failed")
		}
		applied = append(applied, tx)
	}
	b.log.Info().Int("accounts", len(applied)).Msg("monthly interest applied")
	return applied
}

// CloseAccount deactivates an account. Closed accounts accept no further
// operations.
func (b *Bank) CloseAccount(accountNumber string) (models.Account, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	acct, ok := b.accounts[accountNumber]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	if !acct.Active {
		return models.Account{}, ErrAccountAlreadyClosed
	}
	acct.Active = false

	b.log.Info().Str("account", acct.Number).Msg("account closed")
	if err := b.repo.SaveAccount(*acct); err != nil {
		return *acct, fmt.Errorf("save account %s: %w", acct.Number, err)
	}
	return *acct, nil
}

// record appends a transaction for acct and writes both through the
// repository. Callers hold the write lock and have already mutated the
// balance; a persistence failure is surfaced alongside the transaction.
func (b *Bank) record(acct *models.Account, t models.TransactionType, amount decimal.Decimal, description string) (models.Transaction, error) {
	tx := models.NewTransaction(acct.Number, t, amount, description)
	b.history[acct.Number] = append(b.history[acct.Number], tx)

	b.log.Info().Str("account", acct.Number).Str("type", string(t)).
		Str("amount", amount.StringFixed(2)).Str("balance", acct.Balance.StringFixed(2)).
		Msg("transaction recorded")

	if err := b.repo.SaveAccount(*acct); err != nil {
		return tx, fmt.Errorf("save account %s: %w", acct.Number, err)
	}
	if err := b.repo.SaveTransaction(tx); err != nil {
		return tx, fmt.Errorf("save transaction %s: %w", tx.ID, err)
	}
	return tx, nil
}

// Customer returns a snapshot of the customer with the given id.
func (b *Bank) Customer(id string) (models.Customer, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	c, ok := b.customers[id]
	if !ok {
		return models.Customer{}, ErrCustomerNotFound
	}
	return c, nil
}

// Account returns a snapshot of the account with the given number.
func (b *Bank) Account(accountNumber string) (models.Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	acct, ok := b.accounts[accountNumber]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}
	return *acct, nil
}

// CustomerAccounts returns snapshots of the customer's accounts in the order
// they were opened.
func (b *Bank) CustomerAccounts(customerID string) ([]models.Account, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := b.customers[customerID]; !ok {
		return nil, ErrCustomerNotFound
	}
	out := make([]models.Account, 0)
	for _, acct := range b.sortedAccounts() {
		if acct.CustomerID == customerID {
			out = append(out, *acct)
		}
	}
	return out, nil
}

// AccountTransactions returns the account's transaction history in insertion
// order. An account with no recorded transactions yields an empty slice.
func (b *Bank) AccountTransactions(accountNumber string) ([]models.Transaction, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if _, ok := b.accounts[accountNumber]; !ok {
		return nil, ErrAccountNotFound
	}
	history := b.history[accountNumber]
	out := make([]models.Transaction, len(history))
	copy(out, history)
	return out, nil
}

// sortedAccounts returns the owned account pointers ordered by issuance:
// numeric suffix for generated numbers, then any foreign-format numbers
// lexically. Callers hold at least the read lock.
func (b *Bank) sortedAccounts() []*models.Account {
	out := make([]*models.Account, 0, len(b.accounts))
	for _, acct := range b.accounts {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool {
		ni, iok := numericSuffix(out[i].Number, accountNumberPrefix)
		nj, jok := numericSuffix(out[j].Number, accountNumberPrefix)
		if iok && jok {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return out[i].Number < out[j].Number
	})
	return out
}
