package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/daybookhq/bookkeeping_app/internal/apperrors"
	"github.com/daybookhq/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/daybookhq/bookkeeping_app/internal/core/ports/repositories"
	"github.com/daybookhq/bookkeeping_app/internal/models"
	"github.com/daybookhq/bookkeeping_app/internal/utils/mapping"
	"github.com/daybookhq/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, code_base, code_seq, name, is_need_offset, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CodeBase,
		&m.CodeSeq,
		&m.Name,
		&m.IsNeedOffset,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveAccount persists a new account row.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID, m.CodeBase, m.CodeSeq, m.Name, m.IsNeedOffset, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts[m.AccountID] = mapping.ToDomainAccount(*m)
	}
	return accounts, rows.Err()
}

// FindAccountByCode retrieves an account by its (base, seq) code pair.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, codeBase int, codeSeq int) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE code_base = $1 AND code_seq = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, codeBase, codeSeq))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by code %d-%d: %w", codeBase, codeSeq, err)
	}
	account := mapping.ToDomainAccount(*m)
	return &account, nil
}

// ListAccounts retrieves a code-ordered page of accounts using token pagination.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, nextToken *string) ([]domain.Account, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	afterBase, afterSeq := 0, 0
	if nextToken != nil && *nextToken != "" {
		fields, err := pagination.DecodeMultiFieldToken(*nextToken)
		if err != nil || len(fields) != 2 {
			return nil, nil, fmt.Errorf("%w: invalid accounts page token", apperrors.ErrValidation)
		}
		if afterBase, err = strconv.Atoi(fields[0]); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid accounts page token", apperrors.ErrValidation)
		}
		if afterSeq, err = strconv.Atoi(fields[1]); err != nil {
			return nil, nil, fmt.Errorf("%w: invalid accounts page token", apperrors.ErrValidation)
		}
	}

	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE (code_base, code_seq) > ($1, $2)
		ORDER BY code_base, code_seq
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, afterBase, afterSeq, limit+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan account: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var token *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		t := pagination.EncodeMultiFieldToken(strconv.Itoa(last.CodeBase), strconv.Itoa(last.CodeSeq))
		token = &t
	}
	return mapping.ToDomainAccountSlice(ms), token, nil
}
