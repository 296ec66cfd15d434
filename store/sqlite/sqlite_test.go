package sqlite_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampos/pos-engine/pos"
	"github.com/ampos/pos-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newStore(t *testing.T) *sqlite.Store {
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testInvoice(date pos.Date, employeeID int64, total float64) *pos.Invoice {
	amount := decimal.NewFromFloat(total)
	return &pos.Invoice{
		Date:          date,
		CreatedAt:     time.Now(),
		EmployeeID:    employeeID,
		TotalAmount:   amount,
		PaymentMethod: pos.PayCash,
		CashAmount:    amount,
		CardAmount:    decimal.Zero,
		Tenders:       []pos.Tender{{Method: pos.TenderCash, Amount: amount}},
		Items: []pos.InvoiceItem{
			{ProductID: 1, Quantity: 1, Price: amount},
		},
	}
}

// =============================================================================
// DAILY NUMBER ASSIGNMENT TESTS
// =============================================================================

func TestCreateInvoice_ConcurrentSameDate(t *testing.T) {
	// GIVEN: 20 goroutines recording sales on the same date at once
	// THEN: Daily numbers come out exactly {1..20}, no gaps or duplicates

	store := newStore(t)
	ctx := context.Background()
	date := pos.Date("2026-03-10")

	const n = 20
	invoices := make([]*pos.Invoice, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			inv := testInvoice(date, 1, 10.00)
			if err := store.CreateInvoice(ctx, inv); err != nil {
				t.Errorf("create invoice %d: %v", i, err)
				return
			}
			invoices[i] = inv
		}(i)
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for _, inv := range invoices {
		if inv == nil {
			continue
		}
		assert.False(t, seen[inv.DailyNumber], "duplicate daily number %d", inv.DailyNumber)
		seen[inv.DailyNumber] = true
		assert.GreaterOrEqual(t, inv.DailyNumber, int64(1))
		assert.LessOrEqual(t, inv.DailyNumber, int64(n))
	}

	count, err := store.CountInvoices(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestCreateInvoice_IndependentDates(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	inv1 := testInvoice("2026-03-10", 1, 10.00)
	inv2 := testInvoice("2026-03-11", 1, 10.00)
	require.NoError(t, store.CreateInvoice(ctx, inv1))
	require.NoError(t, store.CreateInvoice(ctx, inv2))

	assert.Equal(t, int64(1), inv1.DailyNumber)
	assert.Equal(t, int64(1), inv2.DailyNumber)
}

func TestCreateInvoice_PersistsItemsAndTenders(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	date := pos.Date("2026-03-10")

	inv := testInvoice(date, 1, 10.00)
	inv.Items = append(inv.Items, pos.InvoiceItem{ProductID: 2, Quantity: 3, Price: decimal.NewFromFloat(2.50)})
	require.NoError(t, store.CreateInvoice(ctx, inv))
	assert.NotZero(t, inv.ID)

	items, err := store.ItemsByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, inv.ID, items[0].InvoiceID)
	assert.Equal(t, int64(3), items[1].Quantity)
	assert.True(t, items[1].Price.Equal(decimal.NewFromFloat(2.50)))

	stored, err := store.InvoicesByDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Len(t, stored[0].Tenders, 1)
	assert.True(t, stored[0].Tenders[0].Amount.Equal(decimal.NewFromFloat(10.00)))
}

// =============================================================================
// CATALOG TESTS
// =============================================================================

func TestProductCRUD(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	p := &pos.Product{Name: "Espresso", Price: decimal.NewFromFloat(2.50), Category: "drinks", SortOrder: 1}
	require.NoError(t, store.CreateProduct(ctx, p))
	require.NotZero(t, p.ID)

	got, err := store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Espresso", got.Name)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(2.50)))

	p.Price = decimal.NewFromFloat(2.80)
	require.NoError(t, store.UpdateProduct(ctx, p))
	got, err = store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, got.Price.Equal(decimal.NewFromFloat(2.80)))

	require.NoError(t, store.DeleteProduct(ctx, p.ID))
	got, err = store.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.ErrorIs(t, store.DeleteProduct(ctx, p.ID), pos.ErrNotFound)
	assert.ErrorIs(t, store.UpdateProduct(ctx, p), pos.ErrNotFound)
}

// =============================================================================
// STAFF TESTS
// =============================================================================

func TestEmployeeCRUD(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	e := &pos.Employee{Name: "Alice", EmployeeNumber: "1001", PasswordHash: "hash-a", Role: pos.RoleCashier}
	require.NoError(t, store.CreateEmployee(ctx, e))
	require.NotZero(t, e.ID)

	got, err := store.GetEmployeeByNumber(ctx, "1001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "hash-a", got.PasswordHash)

	// Empty PasswordHash on update keeps the stored credential.
	e.Name = "Alice B"
	e.PasswordHash = ""
	require.NoError(t, store.UpdateEmployee(ctx, e))
	got, err = store.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice B", got.Name)
	assert.Equal(t, "hash-a", got.PasswordHash)

	require.NoError(t, store.DeleteEmployee(ctx, e.ID))
	got, err = store.GetEmployee(ctx, e.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCreateEmployee_DuplicateNumber(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first := &pos.Employee{Name: "Alice", EmployeeNumber: "1001", PasswordHash: "x", Role: pos.RoleCashier}
	require.NoError(t, store.CreateEmployee(ctx, first))

	dup := &pos.Employee{Name: "Bob", EmployeeNumber: "1001", PasswordHash: "y", Role: pos.RoleCashier}
	assert.ErrorIs(t, store.CreateEmployee(ctx, dup), pos.ErrDuplicateEmployeeNumber)

	second := &pos.Employee{Name: "Bob", EmployeeNumber: "1002", PasswordHash: "y", Role: pos.RoleCashier}
	require.NoError(t, store.CreateEmployee(ctx, second))

	// Renumbering onto a taken number fails the same way.
	second.EmployeeNumber = "1001"
	assert.ErrorIs(t, store.UpdateEmployee(ctx, second), pos.ErrDuplicateEmployeeNumber)
}

// =============================================================================
// CLOSURE TESTS
// =============================================================================

func TestCreateClosure_OncePerDate(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	c := &pos.DailyClosure{
		Date:          "2026-03-10",
		TotalSales:    decimal.NewFromFloat(100.00),
		TotalTax:      decimal.NewFromFloat(15.00),
		NetSales:      decimal.NewFromFloat(85.00),
		TotalInvoices: 3,
		ClosedBy:      1,
	}
	require.NoError(t, store.CreateClosure(ctx, c))
	require.NotZero(t, c.ID)

	again := &pos.DailyClosure{Date: "2026-03-10", ClosedBy: 2,
		TotalSales: decimal.Zero, TotalTax: decimal.Zero, NetSales: decimal.Zero}
	assert.ErrorIs(t, store.CreateClosure(ctx, again), pos.ErrAlreadyClosed)

	got, err := store.GetClosure(ctx, "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.TotalSales.Equal(decimal.NewFromFloat(100.00)))
	assert.Equal(t, int64(1), got.ClosedBy, "first closure wins")
}

func TestGetClosure_OpenDate(t *testing.T) {
	store := newStore(t)

	got, err := store.GetClosure(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSeedCounter_Idempotent(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	require.NoError(t, store.SeedCounter(ctx, "2026-03-11"))
	require.NoError(t, store.SeedCounter(ctx, "2026-03-11"))
}
