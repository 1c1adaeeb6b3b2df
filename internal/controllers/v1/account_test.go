package v1_test

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	v1 "github.com/fintrack/backend/internal/controllers/v1"
	"github.com/fintrack/backend/internal/models"
	"github.com/fintrack/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAccountsDBClosed verifies that errors are processed correctly when
// the database is closed.
func (suite *TestSuiteStandard) TestAccountsDBClosed() {
	tests := []struct {
		name string
		test func(t *testing.T)
	}{
		{
			"Creation fails",
			func(t *testing.T) {
				suite.createTestAccount(t, v1.AccountEditable{}, http.StatusInternalServerError)
			},
		},
		{
			"GET fails",
			func(t *testing.T) {
				r := suite.request(t, http.MethodGet, "http://example.com/v1/accounts", "")
				test.AssertHTTPStatus(t, &r, http.StatusInternalServerError)

				var response v1.AccountListResponse
				test.DecodeResponse(t, &r, &response)
				assert.Contains(t, *response.Error, models.ErrGeneral.Error())
			},
		},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			suite.CloseDB()

			tt.test(t)
		})
	}
}

// TestAccountsOptions verifies that OPTIONS requests are handled correctly.
func (suite *TestSuiteStandard) TestAccountsOptions() {
	foreign := uuid.New()

	tests := []struct {
		name   string
		id     string
		owner  uuid.UUID
		status int
	}{
		{"No account with this ID", uuid.New().String(), suite.owner, http.StatusNotFound},
		{"Not a valid UUID", "NotParseableAsUUID", suite.owner, http.StatusBadRequest},
		{"Account exists", suite.createTestAccount(suite.T(), v1.AccountEditable{}).ID.String(), suite.owner, http.StatusNoContent},
		{"Account of other owner", suite.createTestAccount(suite.T(), v1.AccountEditable{}).ID.String(), foreign, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			path := fmt.Sprintf("%s/%s", "http://example.com/v1/accounts", tt.id)
			r := suite.requestAs(t, tt.owner, http.MethodOptions, path, "")
			test.AssertHTTPStatus(t, &r, tt.status)

			if tt.status == http.StatusNoContent {
				assert.Equal(t, "OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
			}
		})
	}

	r := suite.request(suite.T(), http.MethodOptions, "http://example.com/v1/accounts", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET, POST", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestAccountsCreate() {
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{
		Name:           "  Checking ",
		Type:           models.AccountChecking,
		InitialBalance: decimal.RequireFromString("120.50"),
		Currency:       "eur",
		Description:    "Daily spending",
	})

	assert.Equal(suite.T(), "Checking", account.Name)
	assert.Equal(suite.T(), "EUR", account.Currency)
	assert.True(suite.T(), account.Active, "Accounts must be active by default")
	assert.True(suite.T(), account.Balance.Equal(decimal.RequireFromString("120.50")), "Balance must start at the initial balance, is %s", account.Balance)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/accounts/%s", account.ID), account.Links.Self)
	assert.Equal(suite.T(), fmt.Sprintf("http://example.com/v1/transactions?account=%s", account.ID), account.Links.Transactions)

	defaults := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	assert.Equal(suite.T(), "USD", defaults.Currency)
	assert.True(suite.T(), defaults.Balance.IsZero())
}

// TestAccountsCreateInactive verifies that accounts created as inactive
// are stored that way and cannot receive transactions.
func (suite *TestSuiteStandard) TestAccountsCreateInactive() {
	inactive := false
	account := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Closed", Active: &inactive})
	assert.False(suite.T(), account.Active)
	assert.False(suite.T(), suite.getAccount(suite.T(), account.ID).Active, "Stored account must be inactive")

	r := suite.request(suite.T(), http.MethodGet, "http://example.com/v1/accounts?active=true", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Len(suite.T(), response.Data, 0)

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: account.ID}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsCreateInvalid() {
	tests := []struct {
		name     string
		account  v1.AccountEditable
		expected string
	}{
		{"Name too long", v1.AccountEditable{Name: strings.Repeat("a", 101), Type: models.AccountCash}, models.ErrNameLength.Error()},
		{"Invalid type", v1.AccountEditable{Name: "Pocket", Type: "piggybank"}, models.ErrAccountTypeInvalid.Error()},
		{"Invalid currency", v1.AccountEditable{Name: "Pocket", Type: models.AccountCash, Currency: "XYZW"}, models.ErrCurrencyInvalid.Error()},
		{"Unknown currency", v1.AccountEditable{Name: "Pocket", Type: models.AccountCash, Currency: "ABC"}, models.ErrCurrencyInvalid.Error()},
		{"Negative initial balance", v1.AccountEditable{Name: "Pocket", Type: models.AccountCash, InitialBalance: decimal.NewFromInt(-5)}, models.ErrInitialBalanceInvalid.Error()},
		{"Initial balance precision", v1.AccountEditable{Name: "Pocket", Type: models.AccountCash, InitialBalance: decimal.RequireFromString("1.001")}, models.ErrInitialBalanceInvalid.Error()},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{tt.account})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.AccountCreateResponse
			test.DecodeResponse(t, &r, &response)
			require.Len(t, response.Data, 1)
			assert.Equal(t, tt.expected, *response.Data[0].Error)
		})
	}
}

// TestAccountsCreateMixed verifies that the status of a batch creation is
// the highest status of the single creations.
func (suite *TestSuiteStandard) TestAccountsCreateMixed() {
	body := []v1.AccountEditable{
		{Name: "Valid", Type: models.AccountSavings},
		{Name: "Invalid", Type: "nope"},
	}

	r := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	var response v1.AccountCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	require.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Valid", response.Data[0].Data.Name)
	assert.Nil(suite.T(), response.Data[1].Data)
	assert.NotNil(suite.T(), response.Data[1].Error)
}

func (suite *TestSuiteStandard) TestAccountsCreateBrokenBody() {
	r := suite.request(suite.T(), http.MethodPost, "http://example.com/v1/accounts", `[{ "name": 2 }]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsList() {
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Wallet", Type: models.AccountCash, Description: "Coins and notes"})
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Checking", Type: models.AccountChecking, Currency: "EUR"})
	suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Savings", Type: models.AccountSavings, Active: new(bool)})

	// Accounts of other owners are never listed
	suite.requestAs(suite.T(), uuid.New(), http.MethodPost, "http://example.com/v1/accounts", []v1.AccountEditable{{Name: "Foreign", Type: models.AccountCash}})

	tests := []struct {
		name  string
		query string
		names []string
		total int64
	}{
		{"All, ordered by name", "", []string{"Checking", "Savings", "Wallet"}, 3},
		{"Name", "name=Wallet", []string{"Wallet"}, 1},
		{"Type", "type=savings", []string{"Savings"}, 1},
		{"Currency, case insensitive", "currency=eur", []string{"Checking"}, 1},
		{"Active", "active=true", []string{"Checking", "Wallet"}, 2},
		{"Inactive", "active=false", []string{"Savings"}, 1},
		{"Search in description", "search=coins", []string{"Wallet"}, 1},
		{"Search in name", "search=SAV", []string{"Savings"}, 1},
		{"Limit", "limit=2", []string{"Checking", "Savings"}, 3},
		{"Offset", "offset=2", []string{"Wallet"}, 3},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.AccountListResponse
			test.DecodeResponse(t, &r, &response)

			names := make([]string, 0, len(response.Data))
			for _, a := range response.Data {
				names = append(names, a.Name)
			}

			assert.Equal(t, tt.names, names)
			assert.Equal(t, tt.total, response.Pagination.Total)
			assert.Equal(t, len(tt.names), response.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsListInvalidQuery() {
	for _, query := range []string{"active=maybe", "limit=0", "limit=101", "limit=-1"} {
		suite.T().Run(query, func(t *testing.T) {
			r := suite.request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts?%s", query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsGetSingle() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		owner  uuid.UUID
		status int
	}{
		{"GET Existing Account", a.ID.String(), suite.owner, http.StatusOK},
		{"GET ID nil", uuid.Nil.String(), suite.owner, http.StatusNotFound},
		{"GET No account with this ID", uuid.New().String(), suite.owner, http.StatusNotFound},
		{"GET Invalid ID (negative number)", "-56", suite.owner, http.StatusBadRequest},
		{"GET Invalid ID (string)", "notaUUID", suite.owner, http.StatusBadRequest},
		{"GET Account of other owner", a.ID.String(), uuid.New(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(t, tt.owner, http.MethodGet, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestAccountsUpdate() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{Name: "Old", Description: "Keep me"})

	r := suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/accounts/%s", a.ID), map[string]any{
		"name": "New",
		"type": "savings",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.AccountResponse
	test.DecodeResponse(suite.T(), &r, &response)
	assert.Equal(suite.T(), "New", response.Data.Name)
	assert.Equal(suite.T(), models.AccountSavings, response.Data.Type)
	assert.Equal(suite.T(), "Keep me", response.Data.Description, "Fields not in the body must not be changed")

	stored := suite.getAccount(suite.T(), a.ID)
	assert.Equal(suite.T(), "New", stored.Name)
}

// TestAccountsUpdateInitialBalance verifies that changing the initial
// balance moves the balance by the difference.
func (suite *TestSuiteStandard) TestAccountsUpdateInitialBalance() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{InitialBalance: decimal.NewFromInt(100)})
	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.ID, Kind: models.KindExpense, Amount: decimal.NewFromInt(30)})

	r := suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/accounts/%s", a.ID), map[string]any{
		"initialBalance": "50",
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	stored := suite.getAccount(suite.T(), a.ID)
	assert.True(suite.T(), stored.InitialBalance.Equal(decimal.NewFromInt(50)), "Initial balance is %s", stored.InitialBalance)
	assert.True(suite.T(), stored.Balance.Equal(decimal.NewFromInt(20)), "Balance is %s", stored.Balance)
}

func (suite *TestSuiteStandard) TestAccountsUpdateFails() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		body   any
		status int
	}{
		{"Invalid type", a.ID.String(), map[string]any{"type": "piggybank"}, http.StatusBadRequest},
		{"Empty name", a.ID.String(), map[string]any{"name": ""}, http.StatusBadRequest},
		{"Negative initial balance", a.ID.String(), map[string]any{"initialBalance": "-1"}, http.StatusBadRequest},
		{"Broken body", a.ID.String(), `{ "name": 2 }`, http.StatusBadRequest},
		{"Not a JSON object", a.ID.String(), `[]`, http.StatusBadRequest},
		{"Non-existing account", uuid.New().String(), map[string]any{"name": "Nope"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(t, http.MethodPatch, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}
}

// TestAccountsDelete verifies that accounts are deactivated, not removed.
func (suite *TestSuiteStandard) TestAccountsDelete() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})
	tr := suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.ID})

	r := suite.request(suite.T(), http.MethodDelete, fmt.Sprintf("http://example.com/v1/accounts/%s", a.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	stored := suite.getAccount(suite.T(), a.ID)
	assert.False(suite.T(), stored.Active)

	// The transactions of the account still exist
	r = suite.request(suite.T(), http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions/%s", tr.ID), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	// but can not be changed anymore
	r = suite.request(suite.T(), http.MethodPatch, fmt.Sprintf("http://example.com/v1/transactions/%s", tr.ID), map[string]any{"amount": "12"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)

	suite.createTestTransaction(suite.T(), v1.TransactionEditable{AccountID: a.ID}, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestAccountsDeleteFails() {
	a := suite.createTestAccount(suite.T(), v1.AccountEditable{})

	tests := []struct {
		name   string
		id     string
		owner  uuid.UUID
		status int
	}{
		{"Invalid ID", "nope", suite.owner, http.StatusBadRequest},
		{"Non-existing account", uuid.New().String(), suite.owner, http.StatusNotFound},
		{"Account of other owner", a.ID.String(), uuid.New(), http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.requestAs(t, tt.owner, http.MethodDelete, fmt.Sprintf("http://example.com/v1/accounts/%s", tt.id), "")
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	assert.True(suite.T(), suite.getAccount(suite.T(), a.ID).Active)
}
