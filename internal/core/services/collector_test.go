package services

import (
	"testing"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var collectorOpCtx = domain.NewOperationContext("user-1", time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC), "en")

func collectorItem(amount string) collectItem {
	return collectItem{
		Account: domain.Account{AccountID: "acc-sales", CodeBase: 401},
		Amount:  decimal.RequireFromString(amount),
	}
}

func sideItems(items []domain.JournalEntryLineItem, side domain.Side) []domain.JournalEntryLineItem {
	var out []domain.JournalEntryLineItem
	for _, li := range items {
		if li.Side == side {
			out = append(out, li)
		}
	}
	return out
}

func TestCollectLineItems_DensePerSideNumbering(t *testing.T) {
	req := collectRequest{
		Kind: domain.Transfer,
		Groups: []collectGroup{
			{
				CurrencyCode: "USD",
				Debits:       []collectItem{collectorItem("60.00"), collectorItem("40.00")},
				Credits:      []collectItem{collectorItem("100.00")},
			},
			{
				CurrencyCode: "EUR",
				Debits:       []collectItem{collectorItem("10.00")},
				Credits:      []collectItem{collectorItem("10.00")},
			},
		},
	}

	result := collectLineItems("entry-1", req, nil, domain.Account{}, collectorOpCtx)

	require.Len(t, result.Items, 5)
	debits := sideItems(result.Items, domain.Debit)
	credits := sideItems(result.Items, domain.Credit)

	// Positions run 1..N per side across currency groups.
	require.Len(t, debits, 3)
	for i, li := range debits {
		assert.Equal(t, i+1, li.No)
	}
	require.Len(t, credits, 2)
	for i, li := range credits {
		assert.Equal(t, i+1, li.No)
	}

	assert.True(t, result.Modified, "all items are new")
	assert.Len(t, result.NewItemIDs, 5)
	assert.Len(t, result.IDsToKeep, 5)
	for _, li := range result.Items {
		assert.Equal(t, "entry-1", li.EntryID)
		assert.NotEmpty(t, li.LineItemID)
	}
}

func TestCollectLineItems_OrderingTriple(t *testing.T) {
	hinted := collectorItem("10.00")
	hinted.NoHint = func() *int { v := 1; return &v }()

	priorItem := domain.JournalEntryLineItem{
		LineItemID:   "li-prior",
		EntryID:      "entry-1",
		Side:         domain.Debit,
		No:           2,
		CurrencyCode: "USD",
		AccountID:    "acc-sales",
		Amount:       decimal.RequireFromString("20.00"),
	}
	resubmitted := collectorItem("20.00")
	resubmitted.LineItemID = "li-prior"

	// Submitted order: unhinted new row first, then the resubmitted prior
	// row, then the hinted row. Expected: hint, then prior position, then
	// submission order.
	unhinted := collectorItem("30.00")

	req := collectRequest{
		Kind: domain.Transfer,
		Groups: []collectGroup{{
			CurrencyCode: "USD",
			Debits:       []collectItem{unhinted, resubmitted, hinted},
			Credits:      []collectItem{collectorItem("60.00")},
		}},
	}

	result := collectLineItems("entry-1", req, []domain.JournalEntryLineItem{priorItem}, domain.Account{}, collectorOpCtx)

	debits := sideItems(result.Items, domain.Debit)
	require.Len(t, debits, 3)
	assert.True(t, debits[0].Amount.Equal(decimal.RequireFromString("10.00")), "explicit hint sorts first")
	assert.Equal(t, "li-prior", debits[1].LineItemID, "prior position sorts next")
	assert.True(t, debits[2].Amount.Equal(decimal.RequireFromString("30.00")), "unhinted new row sorts last")
	for i, li := range debits {
		assert.Equal(t, i+1, li.No)
	}
}

func TestCollectLineItems_UnchangedResubmissionIsNotModified(t *testing.T) {
	prior := []domain.JournalEntryLineItem{
		{
			LineItemID: "li-d", EntryID: "entry-1", Side: domain.Debit, No: 1,
			CurrencyCode: "USD", AccountID: "acc-sales",
			Amount: decimal.RequireFromString("25.00"),
		},
		{
			LineItemID: "li-c", EntryID: "entry-1", Side: domain.Credit, No: 1,
			CurrencyCode: "USD", AccountID: "acc-sales",
			Amount: decimal.RequireFromString("25.00"),
		},
	}

	same := func(id string) collectItem {
		it := collectorItem("25.00")
		it.LineItemID = id
		return it
	}
	req := collectRequest{
		Kind: domain.Transfer,
		Groups: []collectGroup{{
			CurrencyCode: "USD",
			Debits:       []collectItem{same("li-d")},
			Credits:      []collectItem{same("li-c")},
		}},
	}

	result := collectLineItems("entry-1", req, prior, domain.Account{}, collectorOpCtx)

	assert.False(t, result.Modified, "identical resubmission changes nothing")
	assert.Empty(t, result.NewItemIDs)
	assert.True(t, result.IDsToKeep["li-d"])
	assert.True(t, result.IDsToKeep["li-c"])
}

func TestCollectLineItems_DroppedPriorItemIsModification(t *testing.T) {
	prior := []domain.JournalEntryLineItem{
		{
			LineItemID: "li-gone", EntryID: "entry-1", Side: domain.Debit, No: 1,
			CurrencyCode: "USD", AccountID: "acc-sales",
			Amount: decimal.RequireFromString("5.00"),
		},
	}
	req := collectRequest{
		Kind: domain.Transfer,
		Groups: []collectGroup{{
			CurrencyCode: "USD",
			Debits:       []collectItem{collectorItem("25.00")},
			Credits:      []collectItem{collectorItem("25.00")},
		}},
	}

	result := collectLineItems("entry-1", req, prior, domain.Account{}, collectorOpCtx)

	assert.True(t, result.Modified)
	assert.False(t, result.IDsToKeep["li-gone"], "dropped item is not kept")
}

func TestCollectLineItems_CashReceiptSynthesis(t *testing.T) {
	cash := domain.Account{AccountID: "acc-cash", CodeBase: 101}
	req := collectRequest{
		Kind: domain.CashReceipt,
		Groups: []collectGroup{
			{
				CurrencyCode: "USD",
				Credits:      []collectItem{collectorItem("70.00"), collectorItem("30.00")},
			},
			{
				CurrencyCode: "EUR",
				Credits:      []collectItem{collectorItem("15.00")},
			},
		},
	}

	result := collectLineItems("entry-1", req, nil, cash, collectorOpCtx)

	debits := sideItems(result.Items, domain.Debit)
	require.Len(t, debits, 2, "one cash leg per currency")

	assert.Equal(t, "acc-cash", debits[0].AccountID)
	assert.Equal(t, "USD", debits[0].CurrencyCode)
	assert.True(t, debits[0].Amount.Equal(decimal.RequireFromString("100.00")), "cash leg totals the explicit side")
	assert.Nil(t, debits[0].Description)
	assert.Nil(t, debits[0].OriginalLineItemID)
	assert.Equal(t, 1, debits[0].No)

	assert.Equal(t, "EUR", debits[1].CurrencyCode)
	assert.True(t, debits[1].Amount.Equal(decimal.RequireFromString("15.00")))
	assert.Equal(t, 2, debits[1].No)
}

func TestCollectLineItems_CashLegReuse(t *testing.T) {
	cash := domain.Account{AccountID: "acc-cash", CodeBase: 101}
	prior := []domain.JournalEntryLineItem{
		{
			LineItemID: "li-cash-late", EntryID: "entry-1", Side: domain.Debit, No: 3,
			CurrencyCode: "USD", AccountID: "acc-cash",
			Amount: decimal.RequireFromString("80.00"),
		},
		{
			LineItemID: "li-cash-early", EntryID: "entry-1", Side: domain.Debit, No: 1,
			CurrencyCode: "USD", AccountID: "acc-cash",
			Amount: decimal.RequireFromString("20.00"),
		},
	}

	req := collectRequest{
		Kind: domain.CashReceipt,
		Groups: []collectGroup{{
			CurrencyCode: "USD",
			Credits:      []collectItem{collectorItem("100.00")},
		}},
	}

	result := collectLineItems("entry-1", req, prior, cash, collectorOpCtx)

	debits := sideItems(result.Items, domain.Debit)
	require.Len(t, debits, 1)
	assert.Equal(t, "li-cash-early", debits[0].LineItemID, "earliest prior cash leg is reused")
	assert.True(t, debits[0].Amount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, result.Modified, "the late duplicate leg is dropped")
	assert.False(t, result.IDsToKeep["li-cash-late"])
}

func TestCollectLineItems_CashDisbursementSynthesizesCredits(t *testing.T) {
	cash := domain.Account{AccountID: "acc-cash", CodeBase: 101}
	req := collectRequest{
		Kind: domain.CashDisbursement,
		Groups: []collectGroup{{
			CurrencyCode: "USD",
			Debits:       []collectItem{collectorItem("42.00")},
		}},
	}

	result := collectLineItems("entry-1", req, nil, cash, collectorOpCtx)

	credits := sideItems(result.Items, domain.Credit)
	require.Len(t, credits, 1)
	assert.Equal(t, "acc-cash", credits[0].AccountID)
	assert.True(t, credits[0].Amount.Equal(decimal.RequireFromString("42.00")))
}
