/*
ledger.go - Sale recording on top of the invoice store

PURPOSE:
  SaleLedger turns a reconciled sale into a persisted invoice with a
  per-day sequence number. It is a thin layer: reconciliation is pure
  (payment.go) and the atomic count-then-insert lives in the store.

DAILY NUMBERING:
  Invoice numbers restart at 1 every server-local calendar day and are
  derived, not stored as a counter: the store counts the date's existing
  invoices inside the same transaction as the insert and assigns
  count+1. The store serializes concurrent inserts for the same date so
  the numbers for date D are always exactly {1..count(D)}.

SEE ALSO:
  - payment.go: Tender validation and classification
  - store.go: CreateInvoice atomicity contract
  - store/sqlite/sqlite.go: The serialized implementation
*/
package pos

import (
	"context"
)

// SaleLedger records tendered sales as invoices.
type SaleLedger struct {
	store InvoiceStore
	clock Clock
}

// NewSaleLedger creates a ledger over the given store. A nil clock
// defaults to the system clock.
func NewSaleLedger(store InvoiceStore, clock Clock) *SaleLedger {
	if clock == nil {
		clock = SystemClock{}
	}
	return &SaleLedger{store: store, clock: clock}
}

// RecordSale validates the proposed sale and persists it attributed to
// employeeID. On success the returned invoice carries its assigned ID
// and daily number. Validation failures happen before any write; store
// failures leave no partial invoice.
func (l *SaleLedger) RecordSale(ctx context.Context, employeeID int64, items []LineItem, tenders []Tender) (*Invoice, error) {
	totals, err := ReconcileSale(items, tenders)
	if err != nil {
		return nil, err
	}

	now := l.clock.Now()
	inv := &Invoice{
		Date:          DateOf(now),
		CreatedAt:     now,
		EmployeeID:    employeeID,
		TotalAmount:   totals.Total,
		PaymentMethod: totals.PaymentMethod,
		CashAmount:    totals.CashSubtotal,
		CardAmount:    totals.CardSubtotal,
		Tenders:       tenders,
	}
	for _, item := range items {
		inv.Items = append(inv.Items, InvoiceItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := l.store.CreateInvoice(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}
