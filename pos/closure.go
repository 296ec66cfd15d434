/*
closure.go - The day-closure state machine

PURPOSE:
  Finalizes a date's accounting. Every date is implicitly Open until an
  admin closes it, which snapshots the live aggregates into an immutable
  DailyClosure row. Closed is terminal: there is no reopen transition,
  only a read-only restore that returns the snapshot plus the date's
  invoices for audit.

STATE MACHINE:
  Open --Close--> Closed
  Closed is backed by presence of a closure row; DayState makes the
  variant explicit instead of leaving it implied by query results.

ATOMICITY:
  Close is a check-then-insert. The store's unique date constraint makes
  the insert the authoritative check, so two concurrent closes cannot
  both succeed; the loser gets ErrAlreadyClosed.

COUNTER SEED:
  Closing a day writes a zeroed counter hint for the next date. The hint
  is never read: daily numbers are always derived by counting, so a
  failed seed is ignored.

SEE ALSO:
  - report.go: The aggregates being snapshotted
  - store.go: CreateClosure/GetClosure contract
*/
package pos

import (
	"context"
)

// Closer manages the per-date closure lifecycle.
type Closer struct {
	invoices InvoiceStore
	closures ClosureStore
	clock    Clock
}

// NewCloser creates a closure manager. A nil clock defaults to the
// system clock.
func NewCloser(invoices InvoiceStore, closures ClosureStore, clock Clock) *Closer {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Closer{invoices: invoices, closures: closures, clock: clock}
}

// StateOf returns the explicit state of a date.
func (c *Closer) StateOf(ctx context.Context, date Date) (DayState, error) {
	closure, err := c.closures.GetClosure(ctx, date)
	if err != nil {
		return DayState{}, err
	}
	if closure == nil {
		return DayState{Date: date}, nil
	}
	return DayState{Date: date, Closed: true, Closure: closure}, nil
}

// Close finalizes the current server-local date on behalf of closedBy.
// Fails with ErrAlreadyClosed if the date already has a closure. The
// snapshot captures the aggregates as of close time and never changes,
// even if invoices are later inserted for the date.
func (c *Closer) Close(ctx context.Context, closedBy int64) (*DailyClosure, error) {
	date := Today(c.clock)

	state, err := c.StateOf(ctx, date)
	if err != nil {
		return nil, err
	}
	if state.Closed {
		return nil, ErrAlreadyClosed
	}

	invoices, err := c.invoices.InvoicesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	report := BuildReport(date, invoices, nil)

	closure := &DailyClosure{
		Date:          date,
		TotalSales:    report.TotalSales,
		TotalTax:      report.TaxAmount,
		NetSales:      report.NetSales,
		TotalInvoices: report.TotalInvoices,
		ClosedBy:      closedBy,
		ClosedAt:      c.clock.Now(),
	}
	if err := c.closures.CreateClosure(ctx, closure); err != nil {
		return nil, err
	}

	// Best effort: the counter hint is cosmetic and never consulted.
	_ = c.closures.SeedCounter(ctx, date.Next())

	return closure, nil
}

// Restore returns a closed date's snapshot plus its invoices with items,
// ordered by daily number ascending. Read-only: neither the ledger nor
// the closure is mutated. Fails with ErrNotFound if the date was never
// closed.
func (c *Closer) Restore(ctx context.Context, date Date) (*DailyClosure, []Invoice, error) {
	closure, err := c.closures.GetClosure(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	if closure == nil {
		return nil, nil, ErrNotFound
	}

	invoices, err := c.invoices.InvoicesByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}
	items, err := c.invoices.ItemsByDate(ctx, date)
	if err != nil {
		return nil, nil, err
	}

	byInvoice := make(map[int64][]InvoiceItem)
	for _, item := range items {
		byInvoice[item.InvoiceID] = append(byInvoice[item.InvoiceID], item)
	}
	for i := range invoices {
		invoices[i].Items = byInvoice[invoices[i].ID]
	}

	return closure, invoices, nil
}
