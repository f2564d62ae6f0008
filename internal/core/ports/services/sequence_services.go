package services

import (
	"context"
	"time"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
)

// SequenceSvcFacade maintains the dense 1..N numbering of journal
// entries within each calendar date.
type SequenceSvcFacade interface {
	// SortEntriesIn renumbers the entries of a date densely by their current
	// position, optionally ignoring one entry being relocated away.
	// Idempotent: performs no writes when numbering is already dense.
	SortEntriesIn(ctx context.Context, opCtx domain.OperationContext, date time.Time, excludeEntryID *string) error

	// Reorder applies a manual ranking to the entries of one date. Entries
	// missing a rank, or carrying an unparsable one, are appended after the
	// ranked entries preserving relative order. Reports whether anything moved.
	Reorder(ctx context.Context, opCtx domain.OperationContext, date time.Time, rankByID map[string]string) (bool, error)
}
