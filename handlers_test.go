package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"pula-banking/bank"
	"pula-banking/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b, err := bank.New(store.NewMemStore(), zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return newRouter(b)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func createIndividual(t *testing.T, r *gin.Engine, employed bool) string {
	t.Helper()
	req := CustomerRequest{
		Kind:        "individual",
		FirstName:   "John",
		Surname:     "Doe",
		Address:     "Plot 123, Gaborone",
		IDNumber:    "123456789",
		DateOfBirth: "1990-05-01",
	}
	if employed {
		req.Employed = true
		req.EmployerName = "Debswana"
		req.EmployerAddress = "Jwaneng Mine"
	}
	w := doJSON(t, r, http.MethodPost, "/api/customers", req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create customer status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		ID string `json:"id"`
	}
	decode(t, w, &resp)
	if resp.ID == "" {
		t.Fatal("customer id missing in response")
	}
	return resp.ID
}

func TestCreateCustomerValidation(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/customers", CustomerRequest{Kind: "partnership"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/customers", CustomerRequest{Kind: "individual", FirstName: "John"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400 body=%s", w.Code, w.Body.String())
	}
}

func TestOpenAccountAndTransact(t *testing.T) {
	r := newTestRouter(t)
	customerID := createIndividual(t, r, false)

	w := doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Savings", InitialBalance: 600, Branch: "Main"})
	if w.Code != http.StatusCreated {
		t.Fatalf("open status=%d body=%s", w.Code, w.Body.String())
	}
	var account AccountResponse
	decode(t, w, &account)
	if account.Balance != "600.00" {
		t.Fatalf("balance=%s want=600.00", account.Balance)
	}

	w = doJSON(t, r, http.MethodPost, "/api/accounts/"+account.Number+"/deposits", AmountRequest{Amount: 1})
	if w.Code != http.StatusCreated {
		t.Fatalf("deposit status=%d body=%s", w.Code, w.Body.String())
	}

	// Savings never pays out.
	w = doJSON(t, r, http.MethodPost, "/api/accounts/"+account.Number+"/withdrawals", AmountRequest{Amount: 1})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("withdraw status=%d want=422", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/accounts/"+account.Number+"/transactions", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("transactions status=%d", w.Code)
	}
	var list struct {
		Transactions []TransactionResponse `json:"transactions"`
	}
	decode(t, w, &list)
	if len(list.Transactions) != 2 {
		t.Fatalf("transactions len=%d want=2 body=%s", len(list.Transactions), w.Body.String())
	}
}

func TestOpenChequeUnemployed(t *testing.T) {
	r := newTestRouter(t)
	customerID := createIndividual(t, r, false)

	w := doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Cheque", Branch: "Main"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want=422 body=%s", w.Code, w.Body.String())
	}

	// The customer keeps no accounts after the rejection.
	w = doJSON(t, r, http.MethodGet, "/api/customers/"+customerID+"/accounts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list struct {
		Accounts []AccountResponse `json:"accounts"`
	}
	decode(t, w, &list)
	if len(list.Accounts) != 0 {
		t.Fatalf("accounts len=%d want=0", len(list.Accounts))
	}
}

func TestNotFoundAndBadTypeStatuses(t *testing.T) {
	r := newTestRouter(t)
	customerID := createIndividual(t, r, false)

	w := doJSON(t, r, http.MethodPost, "/api/accounts/ACC999/deposits", AmountRequest{Amount: 10})
	if w.Code != http.StatusNotFound {
		t.Fatalf("deposit status=%d want=404", w.Code)
	}
	w = doJSON(t, r, http.MethodGet, "/api/customers/CUST999/accounts", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("list status=%d want=404", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Current", Branch: "Main"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("open status=%d want=400", w.Code)
	}
	w = doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Investment", InitialBalance: 100, Branch: "Main"})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("open status=%d want=422", w.Code)
	}
}

func TestInterestEndpoint(t *testing.T) {
	r := newTestRouter(t)
	customerID := createIndividual(t, r, false)

	w := doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Investment", InitialBalance: 1000, Branch: "Main"})
	if w.Code != http.StatusCreated {
		t.Fatalf("open status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/interest", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("interest status=%d", w.Code)
	}
	var resp struct {
		Transactions []TransactionResponse `json:"transactions"`
	}
	decode(t, w, &resp)
	if len(resp.Transactions) != 1 || resp.Transactions[0].Amount != "50.00" {
		t.Fatalf("interest response=%+v want one 50.00 accrual", resp.Transactions)
	}
}

func TestCloseAccountEndpoint(t *testing.T) {
	r := newTestRouter(t)
	customerID := createIndividual(t, r, true)

	w := doJSON(t, r, http.MethodPost, "/api/customers/"+customerID+"/accounts",
		OpenAccountRequest{Type: "Cheque", Branch: "Main"})
	if w.Code != http.StatusCreated {
		t.Fatalf("open status=%d body=%s", w.Code, w.Body.String())
	}
	var account AccountResponse
	decode(t, w, &account)

	w = doJSON(t, r, http.MethodPost, "/api/accounts/"+account.Number+"/close", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("close status=%d body=%s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/accounts/"+account.Number+"/deposits", AmountRequest{Amount: 10})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("deposit status=%d want=422", w.Code)
	}
}
