package services

import (
	"sort"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// collectItem is one submitted row with its account already resolved by
// the registry. Field-level validation has happened upstream; collection
// itself is total and never rejects input.
type collectItem struct {
	LineItemID         string // empty for new rows
	NoHint             *int
	Account            domain.Account
	Description        *string
	Amount             decimal.Decimal
	OriginalLineItemID *string
}

// collectGroup is the submitted debit/credit rows of one currency.
type collectGroup struct {
	CurrencyCode string
	Debits       []collectItem
	Credits      []collectItem
}

// collectRequest is a full submission: the entry kind plus its currency groups.
type collectRequest struct {
	Kind   domain.EntryKind
	Groups []collectGroup
}

// CollectResult is the collector's proposed final line-item state.
// The caller deletes every previously persisted ID absent from IDsToKeep
// and treats that as a structural modification.
type CollectResult struct {
	Items      []domain.JournalEntryLineItem
	IDsToKeep  map[string]bool
	NewItemIDs map[string]bool
	Modified   bool
}

// sentinel sorts rows without an explicit hint (or prior position) after
// every row that has one.
const orderSentinel = 1 << 30

// implicitSide returns the side the collector synthesizes for cash
// entries, and whether synthesis applies at all.
func implicitSide(kind domain.EntryKind) (domain.Side, bool) {
	switch kind {
	case domain.CashReceipt:
		return domain.Debit, true
	case domain.CashDisbursement:
		return domain.Credit, true
	default:
		return "", false
	}
}

// collectLineItems merges one submission against the entry's prior
// persisted line items. Per side it orders rows by (explicit no hint,
// prior persisted position, submission order), assigns dense positions
// starting at 1 across all currencies, upserts against prior state, and
// for cash entries synthesizes the implicit cash legs per currency.
func collectLineItems(entryID string, req collectRequest, prior []domain.JournalEntryLineItem, cashAccount domain.Account, opCtx domain.OperationContext) CollectResult {
	priorByID := make(map[string]domain.JournalEntryLineItem, len(prior))
	for _, li := range prior {
		priorByID[li.LineItemID] = li
	}

	result := CollectResult{
		IDsToKeep:  make(map[string]bool),
		NewItemIDs: make(map[string]bool),
	}

	synthSide, hasSynth := implicitSide(req.Kind)

	for _, side := range []domain.Side{domain.Debit, domain.Credit} {
		if hasSynth && side == synthSide {
			result.Items = append(result.Items, synthesizeCashLegs(entryID, req, prior, side, cashAccount, opCtx, &result)...)
			continue
		}
		result.Items = append(result.Items, collectSide(entryID, req, priorByID, side, opCtx, &result)...)
	}

	for _, li := range prior {
		if !result.IDsToKeep[li.LineItemID] {
			result.Modified = true
			break
		}
	}

	return result
}

// collectSide orders, sequences and upserts the explicit rows of one side.
func collectSide(entryID string, req collectRequest, priorByID map[string]domain.JournalEntryLineItem, side domain.Side, opCtx domain.OperationContext, result *CollectResult) []domain.JournalEntryLineItem {
	type row struct {
		item      collectItem
		currency  string
		hintKey   int
		priorKey  int
		submitIdx int
	}

	var rows []row
	idx := 0
	for _, group := range req.Groups {
		submitted := group.Debits
		if side == domain.Credit {
			submitted = group.Credits
		}
		for _, item := range submitted {
			r := row{item: item, currency: group.CurrencyCode, hintKey: orderSentinel, priorKey: orderSentinel, submitIdx: idx}
			if item.NoHint != nil {
				r.hintKey = *item.NoHint
			}
			if pli, ok := priorByID[item.LineItemID]; ok && item.LineItemID != "" {
				r.priorKey = pli.No
			}
			rows = append(rows, r)
			idx++
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].hintKey != rows[j].hintKey {
			return rows[i].hintKey < rows[j].hintKey
		}
		if rows[i].priorKey != rows[j].priorKey {
			return rows[i].priorKey < rows[j].priorKey
		}
		return rows[i].submitIdx < rows[j].submitIdx
	})

	items := make([]domain.JournalEntryLineItem, 0, len(rows))
	for i, r := range rows {
		no := i + 1
		if pli, ok := priorByID[r.item.LineItemID]; ok && r.item.LineItemID != "" {
			updated := pli
			updated.Side = side
			updated.No = no
			updated.CurrencyCode = r.currency
			updated.AccountID = r.item.Account.AccountID
			updated.Description = r.item.Description
			updated.Amount = r.item.Amount
			updated.OriginalLineItemID = r.item.OriginalLineItemID
			if lineItemChanged(pli, updated) {
				updated.Touch(opCtx)
				result.Modified = true
			}
			result.IDsToKeep[updated.LineItemID] = true
			items = append(items, updated)
			continue
		}

		created := domain.JournalEntryLineItem{
			LineItemID:         uuid.NewString(),
			EntryID:            entryID,
			Side:               side,
			No:                 no,
			CurrencyCode:       r.currency,
			AccountID:          r.item.Account.AccountID,
			Description:        r.item.Description,
			Amount:             r.item.Amount,
			OriginalLineItemID: r.item.OriginalLineItemID,
			AuditFields:        domain.NewAuditFields(opCtx),
		}
		result.IDsToKeep[created.LineItemID] = true
		result.NewItemIDs[created.LineItemID] = true
		result.Modified = true
		items = append(items, created)
	}
	return items
}

// synthesizeCashLegs builds the implicit cash side of a cash receipt or
// disbursement: one leg per currency, amount equal to the explicit
// side's total. A pre-existing cash leg for that currency is overwritten
// in place (earliest prior position wins) instead of creating duplicates.
func synthesizeCashLegs(entryID string, req collectRequest, prior []domain.JournalEntryLineItem, side domain.Side, cashAccount domain.Account, opCtx domain.OperationContext, result *CollectResult) []domain.JournalEntryLineItem {
	usedPrior := make(map[string]bool)

	var legs []domain.JournalEntryLineItem
	no := 0
	for _, group := range req.Groups {
		explicit := group.Debits
		if side == domain.Debit {
			explicit = group.Credits
		}
		total := decimal.Zero
		for _, item := range explicit {
			total = total.Add(item.Amount)
		}
		if total.IsZero() {
			continue
		}
		no++

		// Earliest pre-existing cash leg on this side and currency.
		var reuse *domain.JournalEntryLineItem
		for i := range prior {
			pli := prior[i]
			if pli.Side != side || pli.CurrencyCode != group.CurrencyCode || pli.AccountID != cashAccount.AccountID || usedPrior[pli.LineItemID] {
				continue
			}
			if reuse == nil || pli.No < reuse.No {
				reuse = &prior[i]
			}
		}

		if reuse != nil {
			usedPrior[reuse.LineItemID] = true
			updated := *reuse
			updated.No = no
			updated.AccountID = cashAccount.AccountID
			updated.Description = nil
			updated.Amount = total
			updated.OriginalLineItemID = nil
			if lineItemChanged(*reuse, updated) {
				updated.Touch(opCtx)
				result.Modified = true
			}
			result.IDsToKeep[updated.LineItemID] = true
			legs = append(legs, updated)
			continue
		}

		created := domain.JournalEntryLineItem{
			LineItemID:   uuid.NewString(),
			EntryID:      entryID,
			Side:         side,
			No:           no,
			CurrencyCode: group.CurrencyCode,
			AccountID:    cashAccount.AccountID,
			Amount:       total,
			AuditFields:  domain.NewAuditFields(opCtx),
		}
		result.IDsToKeep[created.LineItemID] = true
		result.NewItemIDs[created.LineItemID] = true
		result.Modified = true
		legs = append(legs, created)
	}
	return legs
}

// lineItemChanged is the dirty check backing the collector's upserts.
func lineItemChanged(before, after domain.JournalEntryLineItem) bool {
	return before.Side != after.Side ||
		before.No != after.No ||
		before.CurrencyCode != after.CurrencyCode ||
		before.AccountID != after.AccountID ||
		!domain.SameDescription(before.Description, after.Description) ||
		!before.Amount.Equal(after.Amount) ||
		!samePointerValue(before.OriginalLineItemID, after.OriginalLineItemID)
}

func samePointerValue(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
