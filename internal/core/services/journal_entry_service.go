package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/dto"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/daybookhq/bookkeeping_app/internal/utils/accounting"
)

var (
	ErrEntryUnbalanced        = errors.New("journal entry debits and credits do not balance")
	ErrAccountInactive        = errors.New("account is inactive")
	ErrCurrencyUnknown        = errors.New("currency is not registered")
	ErrOriginalNotFound       = errors.New("original line item not found")
	ErrOffsetOfOffset         = errors.New("an offset cannot reference another offset")
	ErrNotNeedOffsetAccount   = errors.New("original line item is not on a needs-offset account")
	ErrOffsetCurrencyMismatch = errors.New("offset currency does not match its original")
	ErrOffsetSideInvalid      = errors.New("offset must sit on the settlement side of its original")
	ErrOffsetSameEntry        = errors.New("offset cannot settle an item of its own entry")
	ErrNetBalanceExceeded     = errors.New("offset amount exceeds the original's net balance")
	ErrAmountBelowSettled     = errors.New("original amount cannot drop below the sum already settled")
	ErrOriginalLocked         = errors.New("account and currency are locked while offsets reference this item")
	ErrDatePrecedesOriginal   = errors.New("entry date precedes the date of a referenced original")
	ErrOffsetPrecedesOriginal = errors.New("entry precedes a same-date original it settles")
	ErrDateFollowsOffset      = errors.New("entry date follows the date of an entry holding its offsets")
	ErrImplicitSideRows       = errors.New("cash entries take line items only on their explicit side")
	ErrEntryHasOffsets        = errors.New("entry has line items referenced by offsets and cannot be deleted")
)

// journalEntryService owns the journal-entry lifecycle: collecting
// submissions into line items, validating the settlement and ordering
// invariants, positioning the entry within its date, and persisting the
// whole edit atomically.
type journalEntryService struct {
	accountSvc  portssvc.AccountSvcFacade
	currencySvc portssvc.CurrencySvcFacade
	entryRepo   portsrepo.JournalEntryRepositoryFacade
}

// NewJournalEntryService creates a new journal entry service.
func NewJournalEntryService(entryRepo portsrepo.JournalEntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.JournalEntrySvcFacade {
	return &journalEntryService{
		accountSvc:  accountSvc,
		currencySvc: currencySvc,
		entryRepo:   entryRepo,
	}
}

var _ portssvc.JournalEntrySvcFacade = (*journalEntryService)(nil)

// CreateEntry collects a submission into a new entry and persists it.
func (s *journalEntryService) CreateEntry(ctx context.Context, opCtx domain.OperationContext, req dto.SaveJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	collectReq, err := s.resolveSubmission(ctx, req)
	if err != nil {
		return nil, err
	}
	cashAccount, err := s.cashAccountFor(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	collected := collectLineItems(entryID, *collectReq, nil, cashAccount, opCtx)

	entryDate := domain.DateOnly(req.Date)
	originals, err := s.validateCollected(ctx, entryID, entryDate, collected.Items, nil)
	if err != nil {
		return nil, err
	}

	existing, err := s.entryRepo.FindEntriesByDate(ctx, entryDate, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries for placement: %w", err)
	}
	// A new entry has no offsets against it yet, so it always appends.
	no, renumberOps := planPlacement(existing, false)
	if err := validateSameDateOrder(entryDate, no, collected.Items, originals, renumberOps); err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:     entryID,
		EntryDate:   entryDate,
		No:          no,
		Note:        req.Note,
		AuditFields: domain.NewAuditFields(opCtx),
	}

	if err := s.entryRepo.SaveEntry(ctx, portsrepo.SaveEntryParams{
		Entry:       entry,
		IsNewEntry:  true,
		Items:       collected.Items,
		NewItemIDs:  collected.NewItemIDs,
		RenumberOps: renumberOps,
	}); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entryID), slog.String("date", entryDate.Format("2006-01-02")), slog.Int("no", no))
	entry.LineItems = collected.Items
	return &entry, nil
}

// UpdateEntry reconciles a submission against the entry's persisted
// state, relocates the entry if the date changed, and persists the edit.
func (s *journalEntryService) UpdateEntry(ctx context.Context, opCtx domain.OperationContext, entryID string, req dto.SaveJournalEntryRequest) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prior, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	priorItems, err := s.entryRepo.FindLineItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items of %s: %w", entryID, err)
	}

	collectReq, err := s.resolveSubmission(ctx, req)
	if err != nil {
		return nil, err
	}
	cashAccount, err := s.cashAccountFor(ctx, req.Kind)
	if err != nil {
		return nil, err
	}

	collected := collectLineItems(entryID, *collectReq, priorItems, cashAccount, opCtx)
	entryDate := domain.DateOnly(req.Date)

	originals, err := s.validateCollected(ctx, entryID, entryDate, collected.Items, priorItems)
	if err != nil {
		return nil, err
	}

	var deleteIDs []string
	for _, pli := range priorItems {
		if !collected.IDsToKeep[pli.LineItemID] {
			deleteIDs = append(deleteIDs, pli.LineItemID)
		}
	}
	if err := s.validateRemovals(ctx, deleteIDs); err != nil {
		return nil, err
	}
	if err := s.validateLockedOriginals(ctx, priorItems, collected); err != nil {
		return nil, err
	}

	holderDates, err := s.entryRepo.FindOffsetHolderDates(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load offset holder dates: %w", err)
	}
	if len(holderDates) > 0 && entryDate.After(holderDates[0]) {
		return nil, fmt.Errorf("%w: latest permitted date is %s", ErrDateFollowsOffset, holderDates[0].Format("2006-01-02"))
	}

	entry := *prior
	entry.EntryDate = entryDate
	entry.Note = req.Note
	dateChanged := !domain.DateOnly(prior.EntryDate).Equal(entryDate)
	if dateChanged || collected.Modified || !samePointerValue(prior.Note, req.Note) {
		entry.Touch(opCtx)
	}

	var renumberOps []portsrepo.EntryNumberUpdate
	if dateChanged {
		// Close the gap on the old date, then position on the new one:
		// first when the new date is the latest permitted (so the entry
		// still precedes every holder of its offsets), last otherwise.
		oldDateEntries, err := s.entryRepo.FindEntriesByDate(ctx, domain.DateOnly(prior.EntryDate), &entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load old-date entries: %w", err)
		}
		renumberOps = append(renumberOps, renumberDense(oldDateEntries)...)

		newDateEntries, err := s.entryRepo.FindEntriesByDate(ctx, entryDate, &entryID)
		if err != nil {
			return nil, fmt.Errorf("failed to load new-date entries: %w", err)
		}
		placeFirst := len(holderDates) > 0 && entryDate.Equal(holderDates[0])
		no, ops := planPlacement(newDateEntries, placeFirst)
		entry.No = no
		renumberOps = append(renumberOps, ops...)
	}

	if err := validateSameDateOrder(entryDate, entry.No, collected.Items, originals, renumberOps); err != nil {
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, portsrepo.SaveEntryParams{
		Entry:             entry,
		Items:             collected.Items,
		NewItemIDs:        collected.NewItemIDs,
		DeleteLineItemIDs: deleteIDs,
		RenumberOps:       renumberOps,
	}); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	logger.Info("Journal entry updated",
		slog.String("entry_id", entryID),
		slog.Bool("modified", collected.Modified),
		slog.Int("deleted_items", len(deleteIDs)),
	)
	entry.LineItems = collected.Items
	return &entry, nil
}

// DeleteEntry removes an entry unless offsets elsewhere reference its items.
func (s *journalEntryService) DeleteEntry(ctx context.Context, opCtx domain.OperationContext, entryID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	referenced, err := s.entryRepo.CountOffsetsReferencingEntry(ctx, entryID)
	if err != nil {
		return fmt.Errorf("failed to count referencing offsets: %w", err)
	}
	if referenced > 0 {
		return fmt.Errorf("%w: %d offsets", ErrEntryHasOffsets, referenced)
	}

	remaining, err := s.entryRepo.FindEntriesByDate(ctx, domain.DateOnly(entry.EntryDate), &entryID)
	if err != nil {
		return fmt.Errorf("failed to load entries for renumber: %w", err)
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID, renumberDense(remaining), opCtx.ActingUserID, opCtx.Now()); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// GetEntryByID retrieves an entry with its line items.
func (s *journalEntryService) GetEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}
	items, err := s.entryRepo.FindLineItemsByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to load line items of %s: %w", entryID, err)
	}
	entry.LineItems = items
	return entry, nil
}

// ListEntries retrieves a paginated entry list.
func (s *journalEntryService) ListEntries(ctx context.Context, from *time.Time, to *time.Time, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	return s.entryRepo.ListEntries(ctx, from, to, limit, nextToken)
}

// NetBalance computes the remaining open amount of an original item.
// excludeOffsetIDs removes stored offsets belonging to the edit session
// being validated; pending holds in-session candidate amounts.
func (s *journalEntryService) NetBalance(ctx context.Context, originalLineItemID string, excludeOffsetIDs []string, pending []decimal.Decimal) (decimal.Decimal, error) {
	posted, err := s.entryRepo.FindPostedLineItemsByIDs(ctx, []string{originalLineItemID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load original %s: %w", originalLineItemID, err)
	}
	original, ok := posted[originalLineItemID]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrOriginalNotFound, originalLineItemID)
	}

	offsets, err := s.loadOffsets(ctx, originalLineItemID, excludeOffsetIDs)
	if err != nil {
		return decimal.Zero, err
	}
	return accounting.NetBalance(original.JournalEntryLineItem, offsets, pending), nil
}

// resolveSubmission turns a DTO submission into a collect request with
// accounts resolved and currencies verified.
func (s *journalEntryService) resolveSubmission(ctx context.Context, req dto.SaveJournalEntryRequest) (*collectRequest, error) {
	out := collectRequest{Kind: req.Kind, Groups: make([]collectGroup, 0, len(req.Groups))}
	for _, group := range req.Groups {
		if side, ok := implicitSide(req.Kind); ok {
			rows := group.Credits
			if side == domain.Debit {
				rows = group.Debits
			}
			if len(rows) > 0 {
				return nil, fmt.Errorf("%w: %s rows on the %s side", ErrImplicitSideRows, group.CurrencyCode, side)
			}
		}
		if _, err := s.currencySvc.GetCurrencyByCode(ctx, group.CurrencyCode); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrCurrencyUnknown, group.CurrencyCode)
			}
			return nil, err
		}
		debits, err := s.resolveItems(ctx, group.Debits)
		if err != nil {
			return nil, err
		}
		credits, err := s.resolveItems(ctx, group.Credits)
		if err != nil {
			return nil, err
		}
		out.Groups = append(out.Groups, collectGroup{
			CurrencyCode: group.CurrencyCode,
			Debits:       debits,
			Credits:      credits,
		})
	}
	return &out, nil
}

func (s *journalEntryService) resolveItems(ctx context.Context, submitted []dto.SubmittedLineItem) ([]collectItem, error) {
	items := make([]collectItem, 0, len(submitted))
	for _, row := range submitted {
		account, err := s.accountSvc.FindByCode(ctx, row.AccountCode)
		if err != nil {
			return nil, err
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: %s", ErrAccountInactive, account.Code())
		}
		items = append(items, collectItem{
			LineItemID:         row.LineItemID,
			NoHint:             row.No,
			Account:            *account,
			Description:        row.Description,
			Amount:             row.Amount,
			OriginalLineItemID: row.OriginalLineItemID,
		})
	}
	return items, nil
}

func (s *journalEntryService) cashAccountFor(ctx context.Context, kind domain.EntryKind) (domain.Account, error) {
	if kind == domain.Transfer {
		return domain.Account{}, nil
	}
	cash, err := s.accountSvc.CashAccount(ctx)
	if err != nil {
		return domain.Account{}, err
	}
	return *cash, nil
}

// validateCollected enforces every post-condition the collector itself
// assumes: per-currency balance, offset structure, net balances, and the
// lower date bound against referenced originals. Returns the referenced
// originals so the caller can check within-date ordering once the
// entry's position is known.
func (s *journalEntryService) validateCollected(ctx context.Context, entryID string, entryDate time.Time, items []domain.JournalEntryLineItem, priorItems []domain.JournalEntryLineItem) (map[string]domain.PostedLineItem, error) {
	if err := accounting.ValidateEntryBalance(items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEntryUnbalanced, err)
	}

	offsetItems := make([]domain.JournalEntryLineItem, 0)
	originalIDs := make([]string, 0)
	seen := make(map[string]bool)
	for _, li := range items {
		if !li.IsOffset() {
			continue
		}
		offsetItems = append(offsetItems, li)
		if !seen[*li.OriginalLineItemID] {
			seen[*li.OriginalLineItemID] = true
			originalIDs = append(originalIDs, *li.OriginalLineItemID)
		}
	}
	if len(offsetItems) == 0 {
		return nil, s.validateOwnAmounts(ctx, items, priorItems)
	}

	originals, err := s.entryRepo.FindPostedLineItemsByIDs(ctx, originalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load originals: %w", err)
	}

	accountIDs := make([]string, 0, len(originals))
	for _, o := range originals {
		accountIDs = append(accountIDs, o.AccountID)
	}
	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load original accounts: %w", err)
	}

	// In-session candidate totals per original, so several offsets in one
	// submission cannot jointly exceed a net balance.
	pendingByOriginal := make(map[string]decimal.Decimal)

	for _, off := range offsetItems {
		originalID := *off.OriginalLineItemID
		original, ok := originals[originalID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrOriginalNotFound, originalID)
		}
		if original.EntryID == entryID {
			return nil, fmt.Errorf("%w: original %s", ErrOffsetSameEntry, originalID)
		}
		if original.IsOffset() {
			return nil, fmt.Errorf("%w: original %s is itself an offset", ErrOffsetOfOffset, originalID)
		}
		account, ok := accounts[original.AccountID]
		if !ok || !account.IsNeedOffset {
			return nil, fmt.Errorf("%w: original %s", ErrNotNeedOffsetAccount, originalID)
		}
		if off.CurrencyCode != original.CurrencyCode {
			return nil, fmt.Errorf("%w: original %s is %s", ErrOffsetCurrencyMismatch, originalID, original.CurrencyCode)
		}
		if off.Side != accounting.SettlementSide(original.Side) {
			return nil, fmt.Errorf("%w: original %s sits on %s", ErrOffsetSideInvalid, originalID, original.Side)
		}
		if entryDate.Before(domain.DateOnly(original.EntryDate)) {
			return nil, fmt.Errorf("%w: original %s is dated %s", ErrDatePrecedesOriginal, originalID, domain.DateOnly(original.EntryDate).Format("2006-01-02"))
		}

		// Stored offsets minus this entry's own (they are superseded by
		// the collected state), plus candidates already seen this session.
		stored, err := s.loadOffsetsExcludingEntry(ctx, originalID, entryID)
		if err != nil {
			return nil, err
		}
		pending := []decimal.Decimal{pendingByOriginal[originalID]}
		net := accounting.NetBalance(original.JournalEntryLineItem, stored, pending)
		if off.Amount.GreaterThan(net) {
			return nil, fmt.Errorf("%w: net balance of %s is %s, offset is %s", ErrNetBalanceExceeded, originalID, net.String(), off.Amount.String())
		}
		pendingByOriginal[originalID] = pendingByOriginal[originalID].Add(off.Amount)
	}

	return originals, s.validateOwnAmounts(ctx, items, priorItems)
}

// validateSameDateOrder enforces the within-date ordering against
// referenced originals: an original sharing the entry's date must hold a
// strictly smaller position. renumberOps carries positions the pending
// edit reassigns to other entries on that date.
func validateSameDateOrder(entryDate time.Time, entryNo int, items []domain.JournalEntryLineItem, originals map[string]domain.PostedLineItem, renumberOps []portsrepo.EntryNumberUpdate) error {
	if len(originals) == 0 {
		return nil
	}
	noByEntry := make(map[string]int, len(renumberOps))
	for _, op := range renumberOps {
		noByEntry[op.EntryID] = op.No
	}
	for _, li := range items {
		if !li.IsOffset() {
			continue
		}
		original, ok := originals[*li.OriginalLineItemID]
		if !ok || !domain.DateOnly(original.EntryDate).Equal(entryDate) {
			continue
		}
		originalNo := original.EntryNo
		if no, ok := noByEntry[original.EntryID]; ok {
			originalNo = no
		}
		if originalNo >= entryNo {
			return fmt.Errorf("%w: original %s holds position %d, entry holds %d", ErrOffsetPrecedesOriginal, original.LineItemID, originalNo, entryNo)
		}
	}
	return nil
}

// validateOwnAmounts rejects edits that shrink an original below what
// its posted offsets have already settled.
func (s *journalEntryService) validateOwnAmounts(ctx context.Context, items []domain.JournalEntryLineItem, priorItems []domain.JournalEntryLineItem) error {
	if len(priorItems) == 0 {
		return nil
	}
	priorIDs := make([]string, 0, len(priorItems))
	for _, pli := range priorItems {
		priorIDs = append(priorIDs, pli.LineItemID)
	}
	offsetsByOriginal, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, priorIDs)
	if err != nil {
		return fmt.Errorf("failed to load offsets of prior items: %w", err)
	}
	if len(offsetsByOriginal) == 0 {
		return nil
	}

	priorByID := make(map[string]domain.JournalEntryLineItem, len(priorItems))
	for _, pli := range priorItems {
		priorByID[pli.LineItemID] = pli
	}

	for _, li := range items {
		offsets := offsetsByOriginal[li.LineItemID]
		if len(offsets) == 0 {
			continue
		}
		prior := priorByID[li.LineItemID]
		settled := accounting.OffsetTotal(prior, offsets)
		if li.Amount.LessThan(settled) {
			return fmt.Errorf("%w: settled %s, new amount %s", ErrAmountBelowSettled, settled.String(), li.Amount.String())
		}
	}
	return nil
}

// validateLockedOriginals rejects account/currency changes on items that
// offsets already reference.
func (s *journalEntryService) validateLockedOriginals(ctx context.Context, priorItems []domain.JournalEntryLineItem, collected CollectResult) error {
	priorIDs := make([]string, 0, len(priorItems))
	for _, pli := range priorItems {
		priorIDs = append(priorIDs, pli.LineItemID)
	}
	offsetsByOriginal, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, priorIDs)
	if err != nil {
		return fmt.Errorf("failed to load offsets of prior items: %w", err)
	}
	if len(offsetsByOriginal) == 0 {
		return nil
	}

	priorByID := make(map[string]domain.JournalEntryLineItem, len(priorItems))
	for _, pli := range priorItems {
		priorByID[pli.LineItemID] = pli
	}
	for _, li := range collected.Items {
		if len(offsetsByOriginal[li.LineItemID]) == 0 {
			continue
		}
		prior := priorByID[li.LineItemID]
		if li.AccountID != prior.AccountID || li.CurrencyCode != prior.CurrencyCode {
			return fmt.Errorf("%w: line item %s", ErrOriginalLocked, li.LineItemID)
		}
	}
	return nil
}

// validateRemovals rejects deleting items that offsets still reference.
func (s *journalEntryService) validateRemovals(ctx context.Context, deleteIDs []string) error {
	if len(deleteIDs) == 0 {
		return nil
	}
	offsetsByOriginal, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, deleteIDs)
	if err != nil {
		return fmt.Errorf("failed to load offsets of removed items: %w", err)
	}
	for id, offsets := range offsetsByOriginal {
		if len(offsets) > 0 {
			return fmt.Errorf("%w: line item %s", ErrEntryHasOffsets, id)
		}
	}
	return nil
}

func (s *journalEntryService) loadOffsets(ctx context.Context, originalID string, excludeIDs []string) ([]domain.JournalEntryLineItem, error) {
	byOriginal, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, []string{originalID})
	if err != nil {
		return nil, fmt.Errorf("failed to load offsets of %s: %w", originalID, err)
	}
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	var offsets []domain.JournalEntryLineItem
	for _, off := range byOriginal[originalID] {
		if !excluded[off.LineItemID] {
			offsets = append(offsets, off)
		}
	}
	return offsets, nil
}

// loadOffsetsExcludingEntry loads the stored offsets of an original,
// dropping those held by the entry being edited (the collected state
// replaces them).
func (s *journalEntryService) loadOffsetsExcludingEntry(ctx context.Context, originalID string, entryID string) ([]domain.JournalEntryLineItem, error) {
	byOriginal, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, []string{originalID})
	if err != nil {
		return nil, fmt.Errorf("failed to load offsets of %s: %w", originalID, err)
	}
	var offsets []domain.JournalEntryLineItem
	for _, off := range byOriginal[originalID] {
		if off.EntryID != entryID {
			offsets = append(offsets, off)
		}
	}
	return offsets, nil
}
