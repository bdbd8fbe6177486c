package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pula-banking/bank"
	"pula-banking/models"
	"pula-banking/store"
)

type CustomerRequest struct {
	Kind            string `json:"kind"` // "individual" or "company"
	Address         string `json:"address"`
	Phone           string `json:"phone"`
	Email           string `json:"email"`
	FirstName       string `json:"firstName"`
	Surname         string `json:"surname"`
	IDNumber        string `json:"idNumber"`
	DateOfBirth     string `json:"dateOfBirth"` // YYYY-MM-DD
	Employed        bool   `json:"employed"`
	EmployerName    string `json:"employerName"`
	EmployerAddress string `json:"employerAddress"`

	CompanyName        string `json:"companyName"`
	RegistrationNumber string `json:"registrationNumber"`
	ContactPerson      string `json:"contactPerson"`
}

type OpenAccountRequest struct {
	Type           string  `json:"type"` // "Savings", "Investment" or "Cheque"
	InitialBalance float64 `json:"initialBalance"`
	Branch         string  `json:"branch"`
}

type AmountRequest struct {
	Amount float64 `json:"amount"`
}

type AccountResponse struct {
	Number          string `json:"number"`
	Type            string `json:"type"`
	Balance         string `json:"balance"`
	Branch          string `json:"branch"`
	CustomerID      string `json:"customerId"`
	OpeningDate     string `json:"openingDate"`
	Active          bool   `json:"active"`
	EmployerName    string `json:"employerName,omitempty"`
	EmployerAddress string `json:"employerAddress,omitempty"`
}

type TransactionResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"accountNumber"`
	Type          string `json:"type"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
	Timestamp     string `json:"timestamp"`
}

func toAccountResponse(a models.Account) AccountResponse {
	return AccountResponse{
		Number:          a.Number,
		Type:            string(a.Type),
		Balance:         a.Balance.StringFixed(2),
		Branch:          a.Branch,
		CustomerID:      a.CustomerID,
		OpeningDate:     a.OpeningDate.Format(time.RFC3339),
		Active:          a.Active,
		EmployerName:    a.EmployerName,
		EmployerAddress: a.EmployerAddress,
	}
}

func toTransactionResponse(t models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		AccountNumber: t.AccountNumber,
		Type:          string(t.Type),
		Amount:        t.Amount.StringFixed(2),
		Description:   t.Description,
		Timestamp:     t.Timestamp.Format(time.RFC3339),
	}
}

// statusFor maps domain errors onto HTTP status codes: bad input 400,
// missing entities 404, business-rule rejections 422 (409 for insufficient
// funds), persistence trouble 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidAmount),
		errors.Is(err, bank.ErrUnknownAccountType):
		return http.StatusBadRequest
	case errors.Is(err, bank.ErrCustomerNotFound),
		errors.Is(err, bank.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrInsufficientFunds):
		return http.StatusConflict
	case errors.Is(err, bank.ErrInvalidOpeningBalance),
		errors.Is(err, bank.ErrEmploymentRequired),
		errors.Is(err, bank.ErrDuplicateCustomer),
		errors.Is(err, bank.ErrDuplicateAccount),
		errors.Is(err, bank.ErrAccountAlreadyClosed),
		errors.Is(err, models.ErrWithdrawalNotAllowed),
		errors.Is(err, models.ErrBelowMinimumDeposit),
		errors.Is(err, models.ErrAccountInactive):
		return http.StatusUnprocessableEntity
	case errors.Is(err, store.ErrPersistence):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

type api struct {
	bank *bank.Bank
}

// newRouter wires every route of the customer-facing API.
func newRouter(b *bank.Bank) *gin.Engine {
	r := gin.Default()
	a := &api{bank: b}

	r.POST("/api/customers", a.createCustomer)
	r.GET("/api/customers/:customerId/accounts", a.listCustomerAccounts)
	r.POST("/api/customers/:customerId/accounts", a.openAccount)
	r.POST("/api/accounts/:accountNumber/deposits", a.deposit)
	r.POST("/api/accounts/:accountNumber/withdrawals", a.withdraw)
	r.POST("/api/accounts/:accountNumber/close", a.closeAccount)
	r.GET("/api/accounts/:accountNumber/transactions", a.listAccountTransactions)
	r.POST("/api/interest", a.applyInterest)

	return r
}

func (a *api) createCustomer(c *gin.Context) {
	var req CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		customer models.Customer
		err      error
	)
	switch models.CustomerKind(req.Kind) {
	case models.KindIndividual:
		var dob time.Time
		if req.DateOfBirth != "" {
			dob, err = time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dateOfBirth must be YYYY-MM-DD"})
				return
			}
		}
		customer, err = models.NewIndividual(models.IndividualParams{
			FirstName:       req.FirstName,
			Surname:         req.Surname,
			Address:         req.Address,
			Phone:           req.Phone,
			Email:           req.Email,
			IDNumber:        req.IDNumber,
			DateOfBirth:     dob,
			Employed:        req.Employed,
			EmployerName:    req.EmployerName,
			EmployerAddress: req.EmployerAddress,
		})
	case models.KindCompany:
		customer, err = models.NewCompany(models.CompanyParams{
			CompanyName:        req.CompanyName,
			RegistrationNumber: req.RegistrationNumber,
			Address:            req.Address,
			Phone:              req.Phone,
			Email:              req.Email,
			ContactPerson:      req.ContactPerson,
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be individual or company"})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	customer, err = a.bank.AddCustomer(customer)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (a *api) openAccount(c *gin.Context) {
	customerID := c.Param("customerId")
	var req OpenAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	account, err := a.bank.OpenAccount(customerID, models.AccountType(req.Type),
		decimal.NewFromFloat(req.InitialBalance), req.Branch)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toAccountResponse(account))
}

func (a *api) listCustomerAccounts(c *gin.Context) {
	customerID := c.Param("customerId")
	accounts, err := a.bank.CustomerAccounts(customerID)
	if err != nil {
		fail(c, err)
		return
	}
	resp := make([]AccountResponse, len(accounts))
	for i, acct := range accounts {
		resp[i] = toAccountResponse(acct)
	}
	c.JSON(http.StatusOK, gin.H{"customerId": customerID, "accounts": resp})
}

func (a *api) deposit(c *gin.Context) {
	a.transact(c, a.bank.Deposit)
}

func (a *api) withdraw(c *gin.Context) {
	a.transact(c, a.bank.Withdraw)
}

// transact handles the shared deposit/withdraw request shape.
func (a *api) transact(c *gin.Context, op func(string, decimal.Decimal) (models.Transaction, error)) {
	accountNumber := c.Param("accountNumber")
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tx, err := op(accountNumber, decimal.NewFromFloat(req.Amount))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTransactionResponse(tx))
}

func (a *api) closeAccount(c *gin.Context) {
	account, err := a.bank.CloseAccount(c.Param("accountNumber"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toAccountResponse(account))
}

func (a *api) listAccountTransactions(c *gin.Context) {
	accountNumber := c.Param("accountNumber")
	transactions, err := a.bank.AccountTransactions(accountNumber)
	if err != nil {
		fail(c, err)
		return
	}
	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"accountNumber": accountNumber, "transactions": resp})
}

func (a *api) applyInterest(c *gin.Context) {
	applied := a.bank.ApplyMonthlyInterest()
	resp := make([]TransactionResponse, len(applied))
	for i, t := range applied {
		resp[i] = toTransactionResponse(t)
	}
	c.JSON(http.StatusOK, gin.H{"transactions": resp})
}
