package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/akimovdo/accountd/internal/common"
	"github.com/akimovdo/accountd/internal/dbx"
	"github.com/akimovdo/accountd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (name, email, password_hash, verified)
         VALUES ($1, $2, $3, FALSE)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Name, account.Email, account.PasswordHash).Scan(&account.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, common.ErrAccountExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *PostgresRepository) SetPendingCode(ctx context.Context, email string, code string) error {

	query :=
		`UPDATE accounts SET verification_code = $1
		 WHERE email = $2
		 `

	res, err := r.db.ExecContext(ctx, query, code, email)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// ConsumeCodeIfMatches is a single compare-and-clear UPDATE so two attempts
// racing on the same email can consume the code at most once.
func (r *PostgresRepository) ConsumeCodeIfMatches(ctx context.Context, email string, code string) (bool, error) {

	query :=
		`UPDATE accounts SET verified = TRUE, verification_code = NULL
		 WHERE email = $1 AND verification_code = $2
		 `

	res, err := r.db.ExecContext(ctx, query, email, code)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected == 1, nil
}

func (r *PostgresRepository) GetCredentials(ctx context.Context, email string) (*models.Credentials, error) {

	query :=
		`SELECT password_hash, verified FROM accounts
		 WHERE email = $1
		 `

	creds := &models.Credentials{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&creds.PasswordHash, &creds.Verified)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return creds, nil
}
