/*
store.go - Ledger store interfaces

PURPOSE:
  Defines the persistence contract the accounting engine depends on.
  The engine is written against these interfaces; store/sqlite provides
  the durable implementation.

INTERFACES:
  CatalogStore: Product CRUD
  StaffStore:   Employee CRUD and credential lookup
  InvoiceStore: Append-only invoice + item persistence and date queries
  ClosureStore: Once-per-date closure snapshots
  Store:        All of the above

ATOMICITY CONTRACT:
  CreateInvoice MUST atomically: count the date's existing invoices,
  assign daily number count+1, and insert the header plus all items.
  Either the whole invoice lands or none of it does. Concurrent calls
  for the same date must serialize so daily numbers stay gap-free.

  CreateClosure MUST be an atomic check-then-insert keyed by date and
  return ErrAlreadyClosed when a closure for the date already exists.

SEE ALSO:
  - store/sqlite/sqlite.go: SQLite implementation
  - ledger.go: Sale recording on top of InvoiceStore
  - closure.go: Day closure on top of ClosureStore
*/
package pos

import (
	"context"
)

// CatalogStore persists products. Plain CRUD; deleting a product leaves
// historical invoice items referencing it (reports show a null-name bucket).
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id int64) (*Product, error)
	CreateProduct(ctx context.Context, p *Product) error
	UpdateProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id int64) error
}

// StaffStore persists employees. Employee numbers are unique; creation
// and updates surface ErrDuplicateEmployeeNumber on collision.
type StaffStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	GetEmployeeByNumber(ctx context.Context, number string) (*Employee, error)
	CreateEmployee(ctx context.Context, e *Employee) error
	UpdateEmployee(ctx context.Context, e *Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// InvoiceStore is the append-only sales ledger.
type InvoiceStore interface {
	// CreateInvoice atomically assigns inv.DailyNumber (count for the
	// date + 1), inserts the header and all items, and fills inv.ID.
	CreateInvoice(ctx context.Context, inv *Invoice) error

	// InvoicesByDate returns the date's invoices ordered by daily number
	// ascending, with EmployeeName joined (empty if the employee was deleted).
	InvoicesByDate(ctx context.Context, date Date) ([]Invoice, error)

	// ItemsByDate returns every item sold on the date with ProductName
	// joined (empty if the product was deleted).
	ItemsByDate(ctx context.Context, date Date) ([]InvoiceItem, error)

	// ItemsByInvoice returns one invoice's items with product names joined.
	ItemsByInvoice(ctx context.Context, invoiceID int64) ([]InvoiceItem, error)

	// CountInvoices returns how many invoices exist for the date.
	CountInvoices(ctx context.Context, date Date) (int64, error)
}

// ClosureStore persists end-of-day snapshots.
type ClosureStore interface {
	// GetClosure returns the date's closure, or nil if the day is open.
	GetClosure(ctx context.Context, date Date) (*DailyClosure, error)

	// CreateClosure inserts the closure, failing with ErrAlreadyClosed if
	// one already exists for the date. Fills c.ID.
	CreateClosure(ctx context.Context, c *DailyClosure) error

	// SeedCounter writes a zeroed daily counter hint for the date. The
	// hint is never read back; daily numbers are always derived by
	// counting.
	SeedCounter(ctx context.Context, date Date) error
}

// Store is the full ledger store contract.
type Store interface {
	CatalogStore
	StaffStore
	InvoiceStore
	ClosureStore
}
