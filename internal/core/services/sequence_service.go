package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
)

// sequenceService maintains the dense 1..N numbering of journal entries
// within each calendar date.
type sequenceService struct {
	entryRepo portsrepo.JournalEntryRepositoryFacade
}

// NewSequenceService creates a new sequence service.
func NewSequenceService(entryRepo portsrepo.JournalEntryRepositoryFacade) portssvc.SequenceSvcFacade {
	return &sequenceService{entryRepo: entryRepo}
}

var _ portssvc.SequenceSvcFacade = (*sequenceService)(nil)

// SortEntriesIn reloads the entries of a date, sorted by their current
// position, and renumbers them densely. No writes happen when the
// numbering is already dense.
func (s *sequenceService) SortEntriesIn(ctx context.Context, opCtx domain.OperationContext, date time.Time, excludeEntryID *string) error {
	entries, err := s.entryRepo.FindEntriesByDate(ctx, domain.DateOnly(date), excludeEntryID)
	if err != nil {
		return fmt.Errorf("failed to load entries for %s: %w", domain.DateOnly(date).Format("2006-01-02"), err)
	}

	updates := renumberDense(entries)
	if len(updates) == 0 {
		return nil
	}
	return s.entryRepo.UpdateEntryNumbers(ctx, updates, opCtx.ActingUserID, opCtx.Now())
}

// Reorder applies a manual per-date ranking. Entries with a missing or
// unparsable rank keep their relative order after the ranked entries.
func (s *sequenceService) Reorder(ctx context.Context, opCtx domain.OperationContext, date time.Time, rankByID map[string]string) (bool, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	entries, err := s.entryRepo.FindEntriesByDate(ctx, domain.DateOnly(date), nil)
	if err != nil {
		return false, fmt.Errorf("failed to load entries for reorder: %w", err)
	}

	ordered := applyRanking(entries, rankByID)
	updates := renumberDense(ordered)
	if len(updates) == 0 {
		return false, nil
	}

	if err := s.entryRepo.UpdateEntryNumbers(ctx, updates, opCtx.ActingUserID, opCtx.Now()); err != nil {
		return false, err
	}
	logger.Info("Entries reordered",
		slog.String("date", domain.DateOnly(date).Format("2006-01-02")),
		slog.Int("moved", len(updates)),
	)
	return true, nil
}

// applyRanking sorts entries by (parsed rank, previous no). Unranked
// entries get a rank past every parsable value, which appends them after
// the ranked ones while (previous no) keeps their relative order.
func applyRanking(entries []domain.JournalEntry, rankByID map[string]string) []domain.JournalEntry {
	type rankedEntry struct {
		entry domain.JournalEntry
		rank  int
	}

	ranked := make([]rankedEntry, len(entries))
	for i, e := range entries {
		rank := orderSentinel
		if raw, ok := rankByID[e.EntryID]; ok {
			if parsed, err := strconv.Atoi(raw); err == nil {
				rank = parsed
			}
		}
		ranked[i] = rankedEntry{entry: e, rank: rank}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].rank != ranked[j].rank {
			return ranked[i].rank < ranked[j].rank
		}
		return ranked[i].entry.No < ranked[j].entry.No
	})

	ordered := make([]domain.JournalEntry, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.entry
	}
	return ordered
}

// renumberDense assigns consecutive positions 1..N in slice order and
// returns only the assignments that differ from the current values.
func renumberDense(entries []domain.JournalEntry) []portsrepo.EntryNumberUpdate {
	var updates []portsrepo.EntryNumberUpdate
	for i, e := range entries {
		if want := i + 1; e.No != want {
			updates = append(updates, portsrepo.EntryNumberUpdate{EntryID: e.EntryID, No: want})
		}
	}
	return updates
}

// planPlacement positions an entry within the entries already on a date
// (the entry itself excluded from the slice). placeFirst puts it ahead
// of every existing entry, shifting them; otherwise it is appended last.
// Returns the entry's own position and the renumber ops for the rest.
func planPlacement(existing []domain.JournalEntry, placeFirst bool) (int, []portsrepo.EntryNumberUpdate) {
	if !placeFirst {
		return len(existing) + 1, nil
	}
	var updates []portsrepo.EntryNumberUpdate
	for i, e := range existing {
		if want := i + 2; e.No != want {
			updates = append(updates, portsrepo.EntryNumberUpdate{EntryID: e.EntryID, No: want})
		}
	}
	return 1, updates
}
