package pos_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ampos/pos-engine/pos"
)

// =============================================================================
// CLOSURE LIFECYCLE TESTS
// =============================================================================

func TestCloser_CloseSnapshotsAggregates(t *testing.T) {
	// GIVEN: Two sales on the current date
	// WHEN: An admin closes the day
	// THEN: The closure carries the date's totals and the day reads Closed

	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)

	recordSale(t, store, noon, alice.ID,
		[]pos.LineItem{item(1, 1, 40.00)}, []pos.Tender{cash(40.00)})
	recordSale(t, store, noon, alice.ID,
		[]pos.LineItem{item(2, 1, 60.00)}, []pos.Tender{card(60.00)})

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	closure, err := closer.Close(context.Background(), alice.ID)
	require.NoError(t, err)

	assert.Equal(t, pos.DateOf(noon), closure.Date)
	assert.True(t, closure.TotalSales.Equal(decimal.NewFromFloat(100.00)))
	assert.True(t, closure.TotalTax.Equal(decimal.NewFromFloat(15.00)))
	assert.True(t, closure.NetSales.Equal(decimal.NewFromFloat(85.00)))
	assert.Equal(t, int64(2), closure.TotalInvoices)
	assert.Equal(t, alice.ID, closure.ClosedBy)

	state, err := closer.StateOf(context.Background(), pos.DateOf(noon))
	require.NoError(t, err)
	assert.True(t, state.Closed)
	require.NotNil(t, state.Closure)
	assert.Equal(t, closure.ID, state.Closure.ID)
}

func TestCloser_DoubleCloseRejected(t *testing.T) {
	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	_, err := closer.Close(context.Background(), alice.ID)
	require.NoError(t, err)

	_, err = closer.Close(context.Background(), alice.ID)
	assert.ErrorIs(t, err, pos.ErrAlreadyClosed)
}

func TestCloser_SnapshotImmutableAfterLaterInsert(t *testing.T) {
	// GIVEN: A closed day
	// WHEN: Another invoice lands on the same date afterwards
	// THEN: The stored closure still shows the totals as of close time

	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)
	ctx := context.Background()

	recordSale(t, store, noon, alice.ID,
		[]pos.LineItem{item(1, 1, 50.00)}, []pos.Tender{cash(50.00)})

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	closure, err := closer.Close(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, closure.TotalSales.Equal(decimal.NewFromFloat(50.00)))

	// A late insert for the closed date (should be rejected upstream,
	// but the snapshot must not drift even if one slips through).
	recordSale(t, store, noon.Add(time.Hour), alice.ID,
		[]pos.LineItem{item(1, 1, 99.00)}, []pos.Tender{cash(99.00)})

	stored, err := store.GetClosure(ctx, pos.DateOf(noon))
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.TotalSales.Equal(decimal.NewFromFloat(50.00)))
	assert.Equal(t, int64(1), stored.TotalInvoices)
}

func TestCloser_CloseEmptyDay(t *testing.T) {
	// A day with no sales can still be closed; all sums are zero.
	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	closure, err := closer.Close(context.Background(), alice.ID)
	require.NoError(t, err)

	assert.True(t, closure.TotalSales.IsZero())
	assert.Equal(t, int64(0), closure.TotalInvoices)
}

// =============================================================================
// RESTORE TESTS
// =============================================================================

func TestCloser_RestoreReturnsSnapshotAndInvoices(t *testing.T) {
	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)
	ctx := context.Background()

	first := recordSale(t, store, noon, alice.ID,
		[]pos.LineItem{item(1, 2, 5.00)}, []pos.Tender{cash(10.00)})
	second := recordSale(t, store, noon, alice.ID,
		[]pos.LineItem{item(2, 1, 7.00)}, []pos.Tender{card(7.00)})

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	_, err := closer.Close(ctx, alice.ID)
	require.NoError(t, err)

	closure, invoices, err := closer.Restore(ctx, pos.DateOf(noon))
	require.NoError(t, err)
	require.NotNil(t, closure)

	require.Len(t, invoices, 2)
	assert.Equal(t, first.ID, invoices[0].ID, "ordered by daily number")
	assert.Equal(t, second.ID, invoices[1].ID)
	assert.Equal(t, int64(1), invoices[0].DailyNumber)
	assert.Equal(t, int64(2), invoices[1].DailyNumber)
	require.Len(t, invoices[0].Items, 1)
	assert.Equal(t, int64(2), invoices[0].Items[0].Quantity)
}

func TestCloser_RestoreNeverClosedDate(t *testing.T) {
	store := newTestStore(t)
	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})

	_, _, err := closer.Restore(context.Background(), pos.Date("2026-01-01"))
	assert.ErrorIs(t, err, pos.ErrNotFound)
}

func TestCloser_RestoreIsReadOnly(t *testing.T) {
	// Restoring must not reopen the day.
	store := newTestStore(t)
	alice := seedEmployee(t, store, "Alice", "1001", pos.RoleAdmin)
	ctx := context.Background()

	closer := pos.NewCloser(store, store, pos.FixedClock{At: noon})
	_, err := closer.Close(ctx, alice.ID)
	require.NoError(t, err)

	_, _, err = closer.Restore(ctx, pos.DateOf(noon))
	require.NoError(t, err)

	state, err := closer.StateOf(ctx, pos.DateOf(noon))
	require.NoError(t, err)
	assert.True(t, state.Closed)
}
