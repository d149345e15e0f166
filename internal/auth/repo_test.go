package auth

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

func newMockPGRepo(t *testing.T) (*PGRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return &PGRepository{db: mock}, mock
}

func TestPGFindUserByEmail(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectQuery(`SELECT id, email, password_hash FROM users WHERE email = \$1`).
		WithArgs("a@example.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash"}).
			AddRow(int64(7), "a@example.com", "$2a$10$hash"))

	user, hash, err := repo.FindUserByEmail(context.Background(), "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, shared.User{ID: 7, Email: "a@example.com"}, *user)
	assert.Equal(t, "$2a$10$hash", hash)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindUserByEmailNotFound(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectQuery(`SELECT id, email, password_hash FROM users`).
		WithArgs("nobody@example.com").
		WillReturnError(pgx.ErrNoRows)

	_, _, err := repo.FindUserByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGCreateSessionReturnsAssignedID(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectQuery(`INSERT INTO sessions \(token, user_id\) VALUES \(\$1, \$2\) RETURNING id`).
		WithArgs(int64(98765), int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(3)))

	id, err := repo.CreateSession(context.Background(), 98765, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindSessionUserJoinsOnPair(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectQuery(`SELECT users.id, users.email FROM sessions`).
		WithArgs(int64(3), int64(98765)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email"}).AddRow(int64(7), "a@example.com"))

	user, err := repo.FindSessionUser(context.Background(), 3, 98765)
	require.NoError(t, err)
	assert.Equal(t, shared.User{ID: 7, Email: "a@example.com"}, *user)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGFindSessionUserNoRow(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectQuery(`SELECT users.id, users.email FROM sessions`).
		WithArgs(int64(3), int64(1)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.FindSessionUser(context.Background(), 3, 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPGDeleteSessionReportsRowsAffected(t *testing.T) {
	repo, mock := newMockPGRepo(t)

	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1 AND token = \$2 AND user_id = \$3`).
		WithArgs(int64(3), int64(98765), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec(`DELETE FROM sessions WHERE id = \$1 AND token = \$2 AND user_id = \$3`).
		WithArgs(int64(3), int64(98765), int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err := repo.DeleteSession(context.Background(), 3, 98765, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	deleted, err = repo.DeleteSession(context.Background(), 3, 98765, 7)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}
