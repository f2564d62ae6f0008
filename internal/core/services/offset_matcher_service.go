package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/daybookhq/bookkeeping_app/internal/core/ports/services"
	"github.com/daybookhq/bookkeeping_app/internal/middleware"
	"github.com/daybookhq/bookkeeping_app/internal/utils/accounting"
)

var ErrAccountNotOffsettable = errors.New("account does not track receivable/payable offsets")

// offsetMatcherService pairs open original items with unmatched
// settlement candidates, one account at a time. Runs are pure; only
// Commit writes links.
type offsetMatcherService struct {
	accountSvc portssvc.AccountSvcFacade
	entryRepo  portsrepo.JournalEntryRepositoryFacade
}

// NewOffsetMatcherService creates a new offset matcher service.
func NewOffsetMatcherService(entryRepo portsrepo.JournalEntryRepositoryFacade, accountSvc portssvc.AccountSvcFacade) portssvc.OffsetMatcherSvcFacade {
	return &offsetMatcherService{
		accountSvc: accountSvc,
		entryRepo:  entryRepo,
	}
}

var _ portssvc.OffsetMatcherSvcFacade = (*offsetMatcherService)(nil)

// Unapplied lists the account's original items whose net balance is
// nonzero, or which have no linked offsets at all, in stored order.
func (s *offsetMatcherService) Unapplied(ctx context.Context, accountID string) ([]domain.PostedLineItem, error) {
	account, err := s.offsettableAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	originals, err := s.entryRepo.FindOriginalLineItems(ctx, accountID, account.Nature())
	if err != nil {
		return nil, fmt.Errorf("failed to load originals for account %s: %w", accountID, err)
	}
	offsetsByOriginal, err := s.offsetsFor(ctx, originals)
	if err != nil {
		return nil, err
	}

	unapplied := make([]domain.PostedLineItem, 0, len(originals))
	for _, o := range originals {
		offsets := offsetsByOriginal[o.LineItemID]
		net := accounting.NetBalance(o.JournalEntryLineItem, offsets, nil)
		if !net.IsZero() || len(offsets) == 0 {
			unapplied = append(unapplied, o)
		}
	}
	return unapplied, nil
}

// UnmatchedOffsets lists settlement-side items on the account whose
// original reference is still unset, in (date, entry no, side, item no) order.
func (s *offsetMatcherService) UnmatchedOffsets(ctx context.Context, accountID string) ([]domain.PostedLineItem, error) {
	account, err := s.offsettableAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.entryRepo.FindUnmatchedSettlements(ctx, accountID, accounting.SettlementSide(account.Nature()))
}

// Run computes settlement pairs greedily: for each unapplied original in
// stored order, the first remaining candidate strictly later in
// (date, entry no) with the same currency, the same description, and an
// amount exactly equal to the original's net balance. Never mutates.
func (s *offsetMatcherService) Run(ctx context.Context, accountID string) (*domain.MatchRun, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.offsettableAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	originals, err := s.entryRepo.FindOriginalLineItems(ctx, accountID, account.Nature())
	if err != nil {
		return nil, fmt.Errorf("failed to load originals for account %s: %w", accountID, err)
	}
	offsetsByOriginal, err := s.offsetsFor(ctx, originals)
	if err != nil {
		return nil, err
	}
	pool, err := s.entryRepo.FindUnmatchedSettlements(ctx, accountID, accounting.SettlementSide(account.Nature()))
	if err != nil {
		return nil, fmt.Errorf("failed to load unmatched settlements: %w", err)
	}

	run := &domain.MatchRun{AccountID: accountID}
	taken := make(map[string]bool, len(pool))

	for _, original := range originals {
		offsets := offsetsByOriginal[original.LineItemID]
		net := accounting.NetBalance(original.JournalEntryLineItem, offsets, nil)
		if net.IsZero() && len(offsets) > 0 {
			continue
		}
		run.TotalUnapplied++

		for _, candidate := range pool {
			if taken[candidate.LineItemID] {
				continue
			}
			if !original.Before(candidate) {
				continue
			}
			if candidate.CurrencyCode != original.CurrencyCode {
				continue
			}
			if !domain.SameDescription(candidate.Description, original.Description) {
				continue
			}
			if !candidate.Amount.Equal(net) {
				continue
			}
			taken[candidate.LineItemID] = true
			run.Pairs = append(run.Pairs, domain.MatchPair{
				OriginalLineItemID: original.LineItemID,
				OffsetLineItemID:   candidate.LineItemID,
				Amount:             candidate.Amount,
			})
			break
		}
	}

	logger.Info("Offset match run computed",
		slog.String("account_id", accountID),
		slog.Int("unapplied", run.TotalUnapplied),
		slog.Int("pairs", len(run.Pairs)),
	)
	return run, nil
}

// Commit persists the run's pairs. Links are written with a guard that
// never overwrites an existing original reference; the returned count is
// the number of rows actually linked.
func (s *offsetMatcherService) Commit(ctx context.Context, opCtx domain.OperationContext, run *domain.MatchRun) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if run == nil || len(run.Pairs) == 0 {
		return 0, nil
	}
	linked, err := s.entryRepo.LinkOffsets(ctx, run.Pairs, opCtx.ActingUserID, opCtx.Now())
	if err != nil {
		logger.Error("Failed to commit offset matches", slog.String("error", err.Error()), slog.String("account_id", run.AccountID))
		return 0, fmt.Errorf("failed to commit offset matches: %w", err)
	}

	logger.Info("Offset matches committed",
		slog.String("account_id", run.AccountID),
		slog.Int("linked", linked),
	)
	return linked, nil
}

func (s *offsetMatcherService) offsettableAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountSvc.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if s.accountSvc.Classify(*account) == domain.ClassNone {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotOffsettable, account.Code())
	}
	return account, nil
}

func (s *offsetMatcherService) offsetsFor(ctx context.Context, originals []domain.PostedLineItem) (map[string][]domain.JournalEntryLineItem, error) {
	if len(originals) == 0 {
		return nil, nil
	}
	ids := make([]string, len(originals))
	for i, o := range originals {
		ids[i] = o.LineItemID
	}
	offsets, err := s.entryRepo.FindOffsetsByOriginalIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load linked offsets: %w", err)
	}
	return offsets, nil
}
