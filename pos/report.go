/*
report.go - Daily sales aggregation and the midnight guard

PURPOSE:
  Folds a calendar date's invoices and items into a sales report:
  gross/tax/net totals, invoice count, cash/card decomposition, and
  per-employee and per-product break-downs.

CASH/CARD RULE:
  cash_sales = sum(total_amount of pure-cash invoices)
             + sum(cash_amount of mixed invoices)
  and symmetrically for card_sales. Pure invoices contribute their full
  total; mixed invoices contribute only their split component. For any
  date: cash_sales + card_sales == total_sales.

ORPHANED REFERENCES:
  Deleting an employee or product leaves historical invoices pointing at
  a missing row. The store's outer joins yield an empty name; all such
  rows share a single nil-name bucket so no revenue is silently dropped.

MIDNIGHT GUARD:
  A "today" report requested during server-local hour 0 returns a zeroed
  report flagged reset_at_midnight without querying the store. Display
  behavior only: no data is deleted or excluded, and explicit by-date
  queries are exempt.

SEE ALSO:
  - closure.go: Snapshots these aggregates at end of day
  - clock.go: The server-local time source
*/
package pos

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// REPORT TYPES
// =============================================================================

// EmployeeSales is one employee's share of a date's sales.
// EmployeeName is nil when the employee was deleted.
type EmployeeSales struct {
	EmployeeName  *string
	TotalSales    decimal.Decimal
	TotalInvoices int64
}

// ProductSales is one product's movement on a date.
// ProductName is nil when the product was deleted.
type ProductSales struct {
	ProductName   *string
	TotalQuantity int64
	TotalRevenue  decimal.Decimal
}

// DailyReport is the full aggregation of one calendar date.
type DailyReport struct {
	Date            Date
	TotalSales      decimal.Decimal
	TaxAmount       decimal.Decimal
	NetSales        decimal.Decimal
	TotalInvoices   int64
	CashSales       decimal.Decimal
	CardSales       decimal.Decimal
	ResetAtMidnight bool
	EmployeeSales   []EmployeeSales
	ProductSales    []ProductSales
	Invoices        []Invoice // ascending by daily number
}

// ZeroReport is the report the midnight guard serves: all sums zero,
// empty lists, flagged.
func ZeroReport(date Date) *DailyReport {
	return &DailyReport{
		Date:            date,
		TotalSales:      decimal.Zero,
		TaxAmount:       decimal.Zero,
		NetSales:        decimal.Zero,
		CashSales:       decimal.Zero,
		CardSales:       decimal.Zero,
		ResetAtMidnight: true,
		EmployeeSales:   []EmployeeSales{},
		ProductSales:    []ProductSales{},
		Invoices:        []Invoice{},
	}
}

// =============================================================================
// AGGREGATOR
// =============================================================================

// Aggregator computes daily reports from the invoice ledger.
type Aggregator struct {
	store InvoiceStore
	clock Clock
}

// NewAggregator creates an aggregator. A nil clock defaults to the
// system clock.
func NewAggregator(store InvoiceStore, clock Clock) *Aggregator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Aggregator{store: store, clock: clock}
}

// TodayReport returns the report for the current server-local date,
// applying the midnight guard.
func (a *Aggregator) TodayReport(ctx context.Context) (*DailyReport, error) {
	today := Today(a.clock)
	if InMidnightHour(a.clock) {
		return ZeroReport(today), nil
	}
	return a.ReportFor(ctx, today)
}

// ReportFor returns the report for an explicit date. Never guarded:
// historical queries see real data regardless of the hour.
func (a *Aggregator) ReportFor(ctx context.Context, date Date) (*DailyReport, error) {
	invoices, err := a.store.InvoicesByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	items, err := a.store.ItemsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return BuildReport(date, invoices, items), nil
}

// BuildReport folds invoices and items into a report. Pure computation;
// exported so the closure manager and tests can aggregate without a store.
func BuildReport(date Date, invoices []Invoice, items []InvoiceItem) *DailyReport {
	report := &DailyReport{
		Date:          date,
		TotalSales:    decimal.Zero,
		CashSales:     decimal.Zero,
		CardSales:     decimal.Zero,
		TotalInvoices: int64(len(invoices)),
		EmployeeSales: []EmployeeSales{},
		ProductSales:  []ProductSales{},
		Invoices:      invoices,
	}

	// Orphaned references share one bucket, keyed below the valid id range.
	const orphanKey = int64(-1)

	type empBucket struct {
		name     *string
		total    decimal.Decimal
		invoices int64
	}
	employees := make(map[int64]*empBucket)

	for i := range invoices {
		inv := &invoices[i]
		report.TotalSales = report.TotalSales.Add(inv.TotalAmount)

		switch inv.PaymentMethod {
		case PayCash:
			report.CashSales = report.CashSales.Add(inv.TotalAmount)
		case PayCard:
			report.CardSales = report.CardSales.Add(inv.TotalAmount)
		case PayMixed:
			report.CashSales = report.CashSales.Add(inv.CashAmount)
			report.CardSales = report.CardSales.Add(inv.CardAmount)
		}

		key := inv.EmployeeID
		var name *string
		if inv.EmployeeName == "" {
			key = orphanKey
		} else {
			n := inv.EmployeeName
			name = &n
		}
		bucket, ok := employees[key]
		if !ok {
			bucket = &empBucket{name: name, total: decimal.Zero}
			employees[key] = bucket
		}
		bucket.total = bucket.total.Add(inv.TotalAmount)
		bucket.invoices++
	}

	report.TaxAmount = report.TotalSales.Mul(TaxRate)
	report.NetSales = report.TotalSales.Sub(report.TaxAmount)

	type prodBucket struct {
		name     *string
		quantity int64
		revenue  decimal.Decimal
	}
	products := make(map[int64]*prodBucket)

	for _, item := range items {
		key := item.ProductID
		var name *string
		if item.ProductName == "" {
			key = orphanKey
		} else {
			n := item.ProductName
			name = &n
		}
		bucket, ok := products[key]
		if !ok {
			bucket = &prodBucket{name: name, revenue: decimal.Zero}
			products[key] = bucket
		}
		bucket.quantity += item.Quantity
		bucket.revenue = bucket.revenue.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	for _, b := range employees {
		report.EmployeeSales = append(report.EmployeeSales, EmployeeSales{
			EmployeeName:  b.name,
			TotalSales:    b.total,
			TotalInvoices: b.invoices,
		})
	}
	sort.Slice(report.EmployeeSales, func(i, j int) bool {
		return report.EmployeeSales[i].TotalSales.GreaterThan(report.EmployeeSales[j].TotalSales)
	})

	for _, b := range products {
		report.ProductSales = append(report.ProductSales, ProductSales{
			ProductName:   b.name,
			TotalQuantity: b.quantity,
			TotalRevenue:  b.revenue,
		})
	}
	sort.Slice(report.ProductSales, func(i, j int) bool {
		return report.ProductSales[i].TotalRevenue.GreaterThan(report.ProductSales[j].TotalRevenue)
	})

	return report
}
