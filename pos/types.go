/*
Package pos provides the core daily sales accounting engine.

PURPOSE:
  This package contains the domain types and rules for a single-outlet
  point of sale: recording tendered sales, assigning per-day invoice
  numbers, aggregating a calendar date into a report, and closing a day
  into an immutable snapshot.

KEY CONCEPTS IN THIS FILE (types.go):
  - Date: A server-local calendar day (the unit of all accounting)
  - Invoice/InvoiceItem: A recorded sale and its line items
  - Tender: A single payment contribution (method + amount)
  - DailyClosure: The immutable end-of-day snapshot

DESIGN PRINCIPLES:
  1. Precision: Uses decimal.Decimal for all currency math
  2. Immutability: Invoices and closures are append-only records
  3. Daily numbering: Invoice numbers restart at 1 each calendar day
  4. Captured prices: Line items keep the unit price at time of sale;
     later product edits never change historical totals

SEE ALSO:
  - payment.go: Tender validation and cash/card classification
  - report.go: Daily aggregation and the midnight guard
  - closure.go: The day-closure state machine
*/
package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PAYMENT METHODS AND ROLES
// =============================================================================

// PaymentMethod classifies how an invoice was settled overall.
type PaymentMethod string

const (
	PayCash  PaymentMethod = "cash"
	PayCard  PaymentMethod = "card"
	PayMixed PaymentMethod = "mixed" // both cash and card tenders > 0
)

// TenderMethod is the method of a single tender entry. Only cash and card
// exist at the tender level; "mixed" is derived, never tendered.
type TenderMethod string

const (
	TenderCash TenderMethod = "cash"
	TenderCard TenderMethod = "card"
)

// Role is an employee's access level.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCashier Role = "cashier"
)

// ValidRole reports whether r is a recognized role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleCashier
}

// =============================================================================
// MONEY
// =============================================================================

// TaxRate is the fixed sales tax applied to gross sales (15%).
var TaxRate = decimal.NewFromFloat(0.15)

// Epsilon is the currency tolerance used when comparing tendered amounts
// against computed totals. Differences strictly greater than Epsilon are
// rejected; a difference of exactly Epsilon is accepted.
var Epsilon = decimal.NewFromFloat(0.01)

// MustDecimal parses a decimal string, returning zero on failure.
// Used when reading trusted stored values.
func MustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// =============================================================================
// CALENDAR DATES
// =============================================================================

// Date is a server-local calendar day in YYYY-MM-DD form. All daily
// numbering, aggregation, and closures are keyed by Date.
type Date string

const dateLayout = "2006-01-02"

// DateOf truncates an instant to its calendar day in the instant's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", ErrInvalidInput
	}
	return DateOf(t), nil
}

// Next returns the following calendar day.
func (d Date) Next() Date {
	t, err := time.Parse(dateLayout, string(d))
	if err != nil {
		return d
	}
	return DateOf(t.AddDate(0, 0, 1))
}

func (d Date) String() string { return string(d) }

// =============================================================================
// CATALOG AND STAFF
// =============================================================================

// Product is a sellable catalog entry. Pure CRUD; invoices capture the
// price at time of sale independently of later edits.
type Product struct {
	ID        int64
	Name      string
	Price     decimal.Decimal
	Category  string
	ImageURL  string
	SortOrder int
	CreatedAt time.Time
}

// Employee is a staff member who can sign in and ring up sales.
// PasswordHash is a bcrypt hash; it never leaves the store layer in
// API responses.
type Employee struct {
	ID             int64
	Name           string
	EmployeeNumber string // short numeric string, unique
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
}

// =============================================================================
// INVOICES
// =============================================================================

// Tender is a single payment contribution toward an invoice. An invoice
// may carry several tenders, including more than one per method (two
// card swipes, cash in two handfuls).
type Tender struct {
	Method TenderMethod    `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// LineItem is one line of a proposed sale: a product at a captured unit
// price and a positive quantity.
type LineItem struct {
	ProductID int64           `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Invoice is a recorded sale. DailyNumber is unique per Date, assigned
// at creation, never reused or renumbered. CashAmount/CardAmount hold
// the tender split; Tenders keeps the raw entries for audit (the split
// alone cannot reconstruct multiple swipes).
type Invoice struct {
	ID            int64
	Date          Date
	CreatedAt     time.Time
	EmployeeID    int64
	EmployeeName  string // joined at read time; empty if employee deleted
	TotalAmount   decimal.Decimal
	PaymentMethod PaymentMethod
	CashAmount    decimal.Decimal
	CardAmount    decimal.Decimal
	Tenders       []Tender
	DailyNumber   int64
	Items         []InvoiceItem
}

// InvoiceItem is a persisted line of an invoice. Price is the unit
// price at time of sale.
type InvoiceItem struct {
	ID          int64
	InvoiceID   int64
	ProductID   int64
	ProductName string // joined at read time; empty if product deleted
	Quantity    int64
	Price       decimal.Decimal
}

// =============================================================================
// DAILY CLOSURES
// =============================================================================

// DailyClosure is the immutable once-per-date snapshot written by the
// close-day action. It captures point-in-time aggregates, not a live
// view: later (invalid) inserts for the date do not change it.
type DailyClosure struct {
	ID            int64
	Date          Date
	TotalSales    decimal.Decimal
	TotalTax      decimal.Decimal
	NetSales      decimal.Decimal
	TotalInvoices int64
	ClosedBy      int64
	ClosedAt      time.Time
}

// DayState is the explicit form of the per-date state machine: a date is
// Open until a closure row exists, then Closed forever.
type DayState struct {
	Date    Date
	Closed  bool
	Closure *DailyClosure // set when Closed
}
