package users

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// Repository defines the profile mutation queries.
type Repository interface {
	// UpdateEmail sets a new email, guarded by the uniqueness
	// constraint. Returns shared.ErrEmailTaken on conflict with the
	// stored email left unchanged.
	UpdateEmail(ctx context.Context, userID int64, email string) error
	// UpdatePasswordHash replaces the stored password hash.
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
}

type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	db dbtx
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{db: pool}
}

// UpdateEmail updates the user's email. The unique index on email is
// the sole arbiter of conflicts; which account holds the address is
// never surfaced.
func (r *PGRepository) UpdateEmail(ctx context.Context, userID int64, email string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET email = $1, updated_at = NOW() WHERE id = $2`,
		email, userID,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return shared.ErrEmailTaken
	}
	return err
}

// UpdatePasswordHash updates the user's password hash.
func (r *PGRepository) UpdatePasswordHash(ctx context.Context, userID int64, hash string) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		hash, userID,
	)
	return err
}

var _ Repository = (*PGRepository)(nil)
