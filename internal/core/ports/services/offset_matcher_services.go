package services

import (
	"context"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
)

// OffsetMatcherSvcFacade pairs open original items with unmatched
// settlement candidates, one account at a time.
type OffsetMatcherSvcFacade interface {
	// Unapplied lists original items on the account that still have a
	// nonzero net balance or no linked offsets at all.
	Unapplied(ctx context.Context, accountID string) ([]domain.PostedLineItem, error)

	// UnmatchedOffsets lists settlement-side items on the account whose
	// original reference is still unset.
	UnmatchedOffsets(ctx context.Context, accountID string) ([]domain.PostedLineItem, error)

	// Run computes settlement pairs without mutating storage.
	Run(ctx context.Context, accountID string) (*domain.MatchRun, error)

	// Commit persists the run's pairs, never overwriting an existing link.
	// Returns the number of links written.
	Commit(ctx context.Context, opCtx domain.OperationContext, run *domain.MatchRun) (int, error)
}
