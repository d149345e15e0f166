package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// Repository defines persistence operations for the auth module, one
// method per logical query.
type Repository interface {
	// FindUserByEmail returns the user and its stored password hash.
	FindUserByEmail(ctx context.Context, email string) (*shared.User, string, error)
	// FindUser returns the user by id.
	FindUser(ctx context.Context, id int64) (*shared.User, error)
	// CreateSession inserts a session row and returns the store-assigned id.
	CreateSession(ctx context.Context, token, userID int64) (int64, error)
	// FindSessionUser resolves the owning user of a live session.
	// Both id and token must match.
	FindSessionUser(ctx context.Context, sessionID, token int64) (*shared.User, error)
	// DeleteSession removes the session matching id, token and owner.
	// Returns the number of rows deleted (0 or 1).
	DeleteSession(ctx context.Context, sessionID, token, ownerID int64) (int64, error)
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

// FindUserByEmail fetches a user row including the password hash.
func (r *PGRepository) FindUserByEmail(ctx context.Context, email string) (*shared.User, string, error) {
	var (
		user shared.User
		hash string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash FROM users WHERE email = $1`,
		email,
	).Scan(&user.ID, &user.Email, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", shared.ErrNotFound
		}
		return nil, "", err
	}
	return &user, hash, nil
}

// FindUser fetches a user row by id.
func (r *PGRepository) FindUser(ctx context.Context, id int64) (*shared.User, error) {
	var user shared.User
	err := r.db.QueryRow(ctx,
		`SELECT id, email FROM users WHERE id = $1`,
		id,
	).Scan(&user.ID, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// CreateSession inserts a session row bound to the user.
func (r *PGRepository) CreateSession(ctx context.Context, token, userID int64) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO sessions (token, user_id) VALUES ($1, $2) RETURNING id`,
		token, userID,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// FindSessionUser joins sessions to users on the id/token pair.
// The uniqueness of session ids guarantees at most one row.
func (r *PGRepository) FindSessionUser(ctx context.Context, sessionID, token int64) (*shared.User, error) {
	var user shared.User
	err := r.db.QueryRow(ctx,
		`SELECT users.id, users.email FROM sessions
		 INNER JOIN users ON users.id = sessions.user_id
		 WHERE sessions.id = $1 AND sessions.token = $2`,
		sessionID, token,
	).Scan(&user.ID, &user.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// DeleteSession hard-deletes the session matching all three fields,
// so a caller can never remove another user's session.
func (r *PGRepository) DeleteSession(ctx context.Context, sessionID, token, ownerID int64) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM sessions WHERE id = $1 AND token = $2 AND user_id = $3`,
		sessionID, token, ownerID,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ Repository = (*PGRepository)(nil)
