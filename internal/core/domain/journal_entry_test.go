package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, Debit, Credit.Opposite())
}

func TestIsOffset(t *testing.T) {
	assert.False(t, JournalEntryLineItem{}.IsOffset())

	empty := ""
	assert.False(t, JournalEntryLineItem{OriginalLineItemID: &empty}.IsOffset())

	id := "li-1"
	assert.True(t, JournalEntryLineItem{OriginalLineItemID: &id}.IsOffset())
}

func TestPostedLineItemBefore(t *testing.T) {
	day1 := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	a := PostedLineItem{EntryDate: day1, EntryNo: 2}
	b := PostedLineItem{EntryDate: day2, EntryNo: 1}
	c := PostedLineItem{EntryDate: day1, EntryNo: 3}

	assert.True(t, a.Before(b), "earlier date wins")
	assert.True(t, a.Before(c), "same date falls back to entry no")
	assert.False(t, c.Before(a))
	assert.False(t, a.Before(a), "an item is not before itself")
}

func TestSameDescription(t *testing.T) {
	inv := "INV-42"
	other := "INV-43"

	assert.True(t, SameDescription(nil, nil), "nil equals only nil")
	assert.False(t, SameDescription(&inv, nil))
	assert.False(t, SameDescription(nil, &inv))
	assert.True(t, SameDescription(&inv, &inv))
	assert.False(t, SameDescription(&inv, &other))
}

func TestDateOnly(t *testing.T) {
	stamped := time.Date(2024, 3, 1, 17, 45, 12, 999, time.FixedZone("JST", 9*3600))
	got := DateOnly(stamped)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), got)

	// A late evening local time can land on the next UTC date.
	late := time.Date(2024, 3, 1, 22, 0, 0, 0, time.FixedZone("BRT", -3*3600))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), DateOnly(late))
}
