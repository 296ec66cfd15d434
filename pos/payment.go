/*
payment.go - Payment reconciliation for tendered sales

PURPOSE:
  Validates a proposed sale's tenders against its computed total, splits
  the tender set into cash and card subtotals, and classifies the overall
  payment method. Pure computation: no I/O, no side effects. The caller
  (ledger.go) persists the result.

RULES:
  1. Items and tenders must both be non-empty and well formed
  2. total = sum(price * quantity) over items
  3. tendered = sum(amount) over tenders
  4. |tendered - total| > 0.01 fails with a tender mismatch; a difference
     of exactly 0.01 is accepted (deliberate rounding tolerance)
  5. method: cash when card subtotal is zero, card when cash subtotal is
     zero, mixed otherwise

SEE ALSO:
  - ledger.go: Persists reconciled sales
  - errors.go: TenderMismatchError carries total/tendered/difference
*/
package pos

import (
	"github.com/shopspring/decimal"
)

// SaleTotals is the result of reconciling a proposed sale.
type SaleTotals struct {
	Total         decimal.Decimal
	CashSubtotal  decimal.Decimal
	CardSubtotal  decimal.Decimal
	PaymentMethod PaymentMethod
}

// ReconcileSale validates items and tenders and computes the sale's
// totals and payment classification.
func ReconcileSale(items []LineItem, tenders []Tender) (SaleTotals, error) {
	if len(items) == 0 || len(tenders) == 0 {
		return SaleTotals{}, ErrInvalidInput
	}

	total := decimal.Zero
	for _, item := range items {
		if item.Quantity <= 0 || item.Price.IsNegative() {
			return SaleTotals{}, ErrInvalidInput
		}
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}

	cash := decimal.Zero
	card := decimal.Zero
	for _, t := range tenders {
		if !t.Amount.IsPositive() {
			return SaleTotals{}, ErrInvalidInput
		}
		switch t.Method {
		case TenderCash:
			cash = cash.Add(t.Amount)
		case TenderCard:
			card = card.Add(t.Amount)
		default:
			return SaleTotals{}, ErrInvalidInput
		}
	}

	tendered := cash.Add(card)
	if tendered.Sub(total).Abs().GreaterThan(Epsilon) {
		return SaleTotals{}, &TenderMismatchError{
			Total:      total,
			Tendered:   tendered,
			Difference: tendered.Sub(total),
		}
	}

	totals := SaleTotals{
		Total:        total,
		CashSubtotal: cash,
		CardSubtotal: card,
	}
	switch {
	case card.IsZero():
		totals.PaymentMethod = PayCash
	case cash.IsZero():
		totals.PaymentMethod = PayCard
	default:
		totals.PaymentMethod = PayMixed
	}
	return totals, nil
}
