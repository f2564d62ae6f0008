package accounting

import (
	"fmt"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SettlementSide returns the side an offset must sit on to settle an
// original on the given side. For receivable/payable accounts an offset
// is always on the opposite side of its original.
func SettlementSide(originalSide domain.Side) domain.Side {
	return originalSide.Opposite()
}

// OffsetTotal sums the amounts already settled against an original by
// its linked offsets, polarity-adjusted toward the original's side: an
// offset on the settlement side adds, one on the original's own side
// subtracts. The same-side case is structurally unreachable for valid
// data and handled here so a corrupt row surfaces as a negative total
// rather than an inflated one.
func OffsetTotal(original domain.JournalEntryLineItem, offsets []domain.JournalEntryLineItem) decimal.Decimal {
	settlementSide := SettlementSide(original.Side)
	total := decimal.Zero
	for _, off := range offsets {
		if off.Side == settlementSide {
			total = total.Add(off.Amount)
		} else {
			total = total.Sub(off.Amount)
		}
	}
	return total
}

// NetBalance computes the remaining open amount of an original item:
//
//	net = original.Amount − OffsetTotal(linked) − Σ(pending)
//
// where pending holds in-session candidate offset amounts not yet
// persisted. Callers validating an edit must have already excluded the
// edit session's own stored offsets from the linked slice.
func NetBalance(original domain.JournalEntryLineItem, offsets []domain.JournalEntryLineItem, pending []decimal.Decimal) decimal.Decimal {
	net := original.Amount.Sub(OffsetTotal(original, offsets))
	for _, p := range pending {
		net = net.Sub(p)
	}
	return net
}

// SumSide totals the amounts of the given side and currency.
func SumSide(items []domain.JournalEntryLineItem, side domain.Side, currencyCode string) decimal.Decimal {
	sum := decimal.Zero
	for _, li := range items {
		if li.Side == side && li.CurrencyCode == currencyCode {
			sum = sum.Add(li.Amount)
		}
	}
	return sum
}

// ValidateEntryBalance checks the double-entry invariant per currency:
// every amount strictly positive and, for each currency present,
// Σdebit == Σcredit.
func ValidateEntryBalance(items []domain.JournalEntryLineItem) error {
	if len(items) < 2 {
		return fmt.Errorf("journal entry must have at least two line items")
	}

	seen := make(map[string]bool)
	currencies := make([]string, 0, 2)
	for _, li := range items {
		if li.Amount.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("line item amount must be positive for line item %s", li.LineItemID)
		}
		if !seen[li.CurrencyCode] {
			seen[li.CurrencyCode] = true
			currencies = append(currencies, li.CurrencyCode)
		}
	}

	for _, code := range currencies {
		debits := SumSide(items, domain.Debit, code)
		credits := SumSide(items, domain.Credit, code)
		if !debits.Equal(credits) {
			return fmt.Errorf("journal entry does not balance for currency %s: debits %s, credits %s",
				code, debits.String(), credits.String())
		}
	}
	return nil
}
