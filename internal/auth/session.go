package auth

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

// SessionManager creates, resolves and deletes sessions and builds the
// cookie directives that carry them.
type SessionManager struct {
	repo      Repository
	audit     shared.Auditor
	logger    *slog.Logger
	cookieTTL time.Duration
	secure    bool
}

// NewSessionManager constructs a SessionManager. The secure flag is a
// deployment-time switch applied to every issued cookie.
func NewSessionManager(repo Repository, audit shared.Auditor, logger *slog.Logger, cookieTTL time.Duration, secure bool) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		repo:      repo,
		audit:     audit,
		logger:    logger,
		cookieTTL: cookieTTL,
		secure:    secure,
	}
}

// NewToken draws a session token from the CSPRNG. Tokens are positive
// int64 values so they round-trip through the cookie pair unchanged.
func NewToken() (int64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, err
	}
	token := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	return token, nil
}

// Create inserts a new session for the user and reads back the
// store-assigned id. Either statement failing fails the request.
func (m *SessionManager) Create(ctx context.Context, user *shared.User) (Session, error) {
	token, err := NewToken()
	if err != nil {
		return Session{}, err
	}
	id, err := m.repo.CreateSession(ctx, token, user.ID)
	if err != nil {
		return Session{}, err
	}
	m.recordAudit(ctx, user.Email, "new session", nil)
	m.logger.Info("new session", slog.String("actor", user.Email), slog.Int64("session_id", id))
	return Session{ID: id, Token: token, UserID: user.ID}, nil
}

// Resolve returns the user owning the session identified by the
// id/token pair, or nil when there is none. An absent pair
// short-circuits without touching the store.
func (m *SessionManager) Resolve(ctx context.Context, sessionID, token int64) (*shared.User, error) {
	if sessionID == NoSession || token == NoSession {
		return nil, nil
	}
	user, err := m.repo.FindSessionUser(ctx, sessionID, token)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// Delete removes the session matching id, token and owner. Deleting a
// session that no longer exists is not an error.
func (m *SessionManager) Delete(ctx context.Context, sessionID, token int64, owner *shared.User) error {
	deleted, err := m.repo.DeleteSession(ctx, sessionID, token, owner.ID)
	if err != nil {
		return err
	}
	if deleted > 0 {
		m.recordAudit(ctx, owner.Email, "session deleted", nil)
		m.logger.Info("session deleted", slog.String("actor", owner.Email), slog.Int64("session_id", sessionID))
	}
	return nil
}

func (m *SessionManager) recordAudit(ctx context.Context, actor, action string, meta map[string]any) {
	if m.audit == nil {
		return
	}
	if err := m.audit.Record(ctx, shared.AuditRecord{Actor: actor, Action: action, Meta: meta}); err != nil {
		m.logger.Warn("audit record", slog.String("action", action), slog.Any("error", err))
	}
}
