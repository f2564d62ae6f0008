package accounting

import (
	"testing"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(side domain.Side, currency, amount string) domain.JournalEntryLineItem {
	return domain.JournalEntryLineItem{
		LineItemID:   "li-" + string(side) + "-" + amount,
		Side:         side,
		CurrencyCode: currency,
		Amount:       decimal.RequireFromString(amount),
	}
}

func TestSettlementSide(t *testing.T) {
	assert.Equal(t, domain.Credit, SettlementSide(domain.Debit), "a debit original settles with a credit")
	assert.Equal(t, domain.Debit, SettlementSide(domain.Credit), "a credit original settles with a debit")
}

func TestValidateEntryBalance_Balanced(t *testing.T) {
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "60.00"),
		item(domain.Debit, "USD", "40.00"),
		item(domain.Credit, "USD", "100.00"),
	}
	assert.NoError(t, ValidateEntryBalance(items))
}

func TestValidateEntryBalance_OffByOneCent(t *testing.T) {
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "100.01"),
		item(domain.Credit, "USD", "100.00"),
	}
	err := ValidateEntryBalance(items)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not balance")
}

func TestValidateEntryBalance_PerCurrency(t *testing.T) {
	// Each currency group must balance independently.
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "100.00"),
		item(domain.Credit, "USD", "100.00"),
		item(domain.Debit, "EUR", "50.00"),
		item(domain.Credit, "EUR", "49.99"),
	}
	err := ValidateEntryBalance(items)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "EUR")
}

func TestValidateEntryBalance_RejectsNonPositive(t *testing.T) {
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "0"),
		item(domain.Credit, "USD", "0"),
	}
	err := ValidateEntryBalance(items)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "positive")
}

func TestValidateEntryBalance_RequiresTwoItems(t *testing.T) {
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "100.00"),
	}
	assert.Error(t, ValidateEntryBalance(items))
}

func TestOffsetTotal_Polarity(t *testing.T) {
	original := item(domain.Debit, "USD", "100.00")

	offsets := []domain.JournalEntryLineItem{
		item(domain.Credit, "USD", "40.00"), // settlement side: adds
		item(domain.Credit, "USD", "10.00"), // settlement side: adds
		item(domain.Debit, "USD", "5.00"),   // original's own side: subtracts
	}

	total := OffsetTotal(original, offsets)
	assert.True(t, total.Equal(decimal.RequireFromString("45.00")), "got %s", total)
}

func TestNetBalance(t *testing.T) {
	original := item(domain.Debit, "USD", "100.00")
	offsets := []domain.JournalEntryLineItem{
		item(domain.Credit, "USD", "30.00"),
	}
	pending := []decimal.Decimal{decimal.RequireFromString("20.00")}

	net := NetBalance(original, offsets, pending)
	assert.True(t, net.Equal(decimal.RequireFromString("50.00")), "got %s", net)

	// Fully settled.
	net = NetBalance(original, offsets, []decimal.Decimal{decimal.RequireFromString("70.00")})
	assert.True(t, net.IsZero(), "got %s", net)
}

func TestSumSide(t *testing.T) {
	items := []domain.JournalEntryLineItem{
		item(domain.Debit, "USD", "10.00"),
		item(domain.Debit, "EUR", "99.00"),
		item(domain.Credit, "USD", "10.00"),
		item(domain.Debit, "USD", "2.50"),
	}
	sum := SumSide(items, domain.Debit, "USD")
	assert.True(t, sum.Equal(decimal.RequireFromString("12.50")), "got %s", sum)
}
