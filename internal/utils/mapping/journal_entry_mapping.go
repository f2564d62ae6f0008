package mapping

import (
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	"github.com/daybookhq/bookkeeping_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:     d.EntryID,
		EntryDate:   domain.DateOnly(d.EntryDate),
		No:          d.No,
		Note:        d.Note,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:     m.EntryID,
		EntryDate:   domain.DateOnly(m.EntryDate),
		No:          m.No,
		Note:        m.Note,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalEntrySlice converts a slice of model JournalEntries to domain ones
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}

// ToModelLineItem converts a domain JournalEntryLineItem to a model one
func ToModelLineItem(d domain.JournalEntryLineItem) models.JournalEntryLineItem {
	return models.JournalEntryLineItem{
		LineItemID:         d.LineItemID,
		EntryID:            d.EntryID,
		IsDebit:            d.Side == domain.Debit,
		No:                 d.No,
		CurrencyCode:       d.CurrencyCode,
		AccountID:          d.AccountID,
		Description:        d.Description,
		Amount:             d.Amount,
		OriginalLineItemID: d.OriginalLineItemID,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLineItem converts a model JournalEntryLineItem to a domain one
func ToDomainLineItem(m models.JournalEntryLineItem) domain.JournalEntryLineItem {
	side := domain.Credit
	if m.IsDebit {
		side = domain.Debit
	}
	return domain.JournalEntryLineItem{
		LineItemID:         m.LineItemID,
		EntryID:            m.EntryID,
		Side:               side,
		No:                 m.No,
		CurrencyCode:       m.CurrencyCode,
		AccountID:          m.AccountID,
		Description:        m.Description,
		Amount:             m.Amount,
		OriginalLineItemID: m.OriginalLineItemID,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainLineItemSlice converts a slice of model line items to domain ones
func ToDomainLineItemSlice(ms []models.JournalEntryLineItem) []domain.JournalEntryLineItem {
	ds := make([]domain.JournalEntryLineItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainLineItem(m)
	}
	return ds
}
