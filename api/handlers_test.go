/*
handlers_test.go - HTTP-level tests for the register API

Tests run against the real router with an in-memory store: auth
boundaries, the tendered-sale round trip, report shapes, and the
close/restore lifecycle.
*/
package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampos/pos-engine/api"
	"github.com/ampos/pos-engine/auth"
	"github.com/ampos/pos-engine/pos"
	"github.com/ampos/pos-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

type testEnv struct {
	router  http.Handler
	store   *sqlite.Store
	tokens  *auth.TokenManager
	admin   *pos.Employee
	cashier *pos.Employee
}

// noon keeps handler tests clear of the midnight guard.
var noon = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.Local)

func newTestEnv(t *testing.T) *testEnv {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	handler := api.NewHandler(store, tokens, pos.FixedClock{At: noon})

	env := &testEnv{
		router: api.NewRouter(handler, tokens),
		store:  store,
		tokens: tokens,
	}

	hash, err := auth.HashPassword("pass-admin")
	require.NoError(t, err)
	env.admin = &pos.Employee{Name: "Ada", EmployeeNumber: "0001", PasswordHash: hash, Role: pos.RoleAdmin}
	require.NoError(t, store.CreateEmployee(context.Background(), env.admin))

	hash, err = auth.HashPassword("pass-cashier")
	require.NoError(t, err)
	env.cashier = &pos.Employee{Name: "Cas", EmployeeNumber: "0002", PasswordHash: hash, Role: pos.RoleCashier}
	require.NoError(t, store.CreateEmployee(context.Background(), env.cashier))

	return env
}

func (env *testEnv) tokenFor(t *testing.T, e *pos.Employee) string {
	token, err := env.tokens.Issue(*e)
	require.NoError(t, err)
	return token
}

func (env *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("x-access-token", token)
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// =============================================================================
// AUTH TESTS
// =============================================================================

func TestLogin_Success(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "",
		api.LoginRequest{EmployeeNumber: "0001", Password: "pass-admin"})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[api.LoginResponse](t, rec)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Equal(t, "/admin.html", resp.Redirect)

	// The issued token actually works.
	check := env.do(t, http.MethodGet, "/api/auth/check", resp.Token, nil)
	assert.Equal(t, http.StatusOK, check.Code)
}

func TestLogin_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/login", "",
		api.LoginRequest{EmployeeNumber: "0001", Password: "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCheckEmployee(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/auth/check-employee", "",
		api.CheckEmployeeRequest{EmployeeNumber: "0002"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/auth/check-employee", "",
		api.CheckEmployeeRequest{EmployeeNumber: "9999"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutes_RequireToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/daily-sales", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/daily-sales", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutes_RejectCashier(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.cashier)

	rec := env.do(t, http.MethodPost, "/api/close-day", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/employees", token, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// But cashier routes still work.
	rec = env.do(t, http.MethodGet, "/api/products", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =============================================================================
// SALES TESTS
// =============================================================================

func TestProcessPayment_RoundTrip(t *testing.T) {
	// GIVEN: A cashier ringing up 2x10 + 1x5 paid 20 cash + 5 card
	// THEN: The invoice lands with daily number 1 and the mixed split,
	//       and shows up in the day's report

	env := newTestEnv(t)
	token := env.tokenFor(t, env.cashier)

	rec := env.do(t, http.MethodPost, "/api/process-payment", token,
		api.ProcessPaymentRequest{
			Items: []api.ItemInput{
				{ProductID: 1, Quantity: 2, Price: 10.00},
				{ProductID: 2, Quantity: 1, Price: 5.00},
			},
			Payments: []api.TenderInput{
				{Method: "cash", Amount: 20.00},
				{Method: "card", Amount: 5.00},
			},
		})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decode[api.ProcessPaymentResponse](t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, int64(1), resp.DailyNumber)
	assert.InDelta(t, 25.00, resp.TotalAmount, 0.001)
	assert.InDelta(t, 20.00, resp.CashAmount, 0.001)
	assert.InDelta(t, 5.00, resp.CardAmount, 0.001)

	report := decode[api.DailyReportDTO](t, env.do(t, http.MethodGet, "/api/daily-sales", token, nil))
	assert.Equal(t, int64(1), report.TotalInvoices)
	assert.InDelta(t, 25.00, report.TotalSales, 0.001)
	assert.InDelta(t, report.TotalSales, report.CashSales+report.CardSales, 0.001)
}

func TestProcessPayment_TenderMismatch(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.cashier)

	rec := env.do(t, http.MethodPost, "/api/process-payment", token,
		api.ProcessPaymentRequest{
			Items:    []api.ItemInput{{ProductID: 1, Quantity: 1, Price: 25.00}},
			Payments: []api.TenderInput{{Method: "cash", Amount: 24.50}},
		})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, "tender_mismatch", resp.Code)
	assert.NotNil(t, resp.Details)
}

func TestSalesByDate_RequiresValidDate(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, env.cashier)

	rec := env.do(t, http.MethodGet, "/api/sales-by-date", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/sales-by-date?date=10-03-2026", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/sales-by-date?date=2026-03-10", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// =============================================================================
// CLOSURE TESTS
// =============================================================================

func TestCloseDay_AndRestore(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, env.admin)
	cashier := env.tokenFor(t, env.cashier)

	rec := env.do(t, http.MethodPost, "/api/process-payment", cashier,
		api.ProcessPaymentRequest{
			Items:    []api.ItemInput{{ProductID: 1, Quantity: 1, Price: 40.00}},
			Payments: []api.TenderInput{{Method: "cash", Amount: 40.00}},
		})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/close-day", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	closed := decode[api.CloseDayResponse](t, rec)
	assert.True(t, closed.Success)
	assert.InDelta(t, 40.00, closed.Data.TotalSales, 0.001)
	assert.Equal(t, int64(1), closed.Data.TotalInvoices)

	// Second close conflicts.
	rec = env.do(t, http.MethodPost, "/api/close-day", admin, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "already_closed", decode[api.ErrorResponse](t, rec).Code)

	// Restore returns the snapshot plus invoices with items.
	rec = env.do(t, http.MethodPost, "/api/restore-day", admin,
		api.RestoreDayRequest{Date: "2026-03-10"})
	require.Equal(t, http.StatusOK, rec.Code)
	restored := decode[api.RestoreDayResponse](t, rec)
	assert.InDelta(t, 40.00, restored.Closure.TotalSales, 0.001)
	require.Len(t, restored.Invoices, 1)
	assert.Equal(t, int64(1), restored.Invoices[0].DailyNumber)
	require.Len(t, restored.Invoices[0].Items, 1)
}

func TestRestoreDay_NeverClosed(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, env.admin)

	rec := env.do(t, http.MethodPost, "/api/restore-day", admin,
		api.RestoreDayRequest{Date: "2020-01-01"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// =============================================================================
// CRUD TESTS
// =============================================================================

func TestProductLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, env.admin)

	rec := env.do(t, http.MethodPost, "/api/products", admin,
		api.ProductRequest{Name: "Espresso", Price: 2.50, Category: "drinks", SortOrder: 1})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[api.ProductDTO](t, rec)
	require.NotZero(t, created.ID)

	// Missing category rejected.
	rec = env.do(t, http.MethodPost, "/api/products", admin,
		api.ProductRequest{Name: "Nameless", Price: 1.00})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	list := decode[[]api.ProductDTO](t, env.do(t, http.MethodGet, "/api/products", admin, nil))
	require.Len(t, list, 1)
	assert.Equal(t, "Espresso", list[0].Name)

	rec = env.do(t, http.MethodDelete, "/api/products/1", admin, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = env.do(t, http.MethodDelete, "/api/products/1", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEmployeeLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, env.admin)

	rec := env.do(t, http.MethodPost, "/api/employees", admin,
		api.EmployeeRequest{Name: "New", EmployeeNumber: "0003", Password: "secret", Role: "cashier"})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate number rejected.
	rec = env.do(t, http.MethodPost, "/api/employees", admin,
		api.EmployeeRequest{Name: "Clone", EmployeeNumber: "0003", Password: "secret", Role: "cashier"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "duplicate_employee_number", decode[api.ErrorResponse](t, rec).Code)

	// Unknown role rejected.
	rec = env.do(t, http.MethodPost, "/api/employees", admin,
		api.EmployeeRequest{Name: "Odd", EmployeeNumber: "0004", Password: "secret", Role: "owner"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// The new cashier can sign in.
	rec = env.do(t, http.MethodPost, "/api/auth/login", "",
		api.LoginRequest{EmployeeNumber: "0003", Password: "secret"})
	assert.Equal(t, http.StatusOK, rec.Code)
}
