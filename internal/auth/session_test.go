package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouse-api/gatehouse/internal/shared"
)

type recordingAuditor struct {
	records []shared.AuditRecord
}

func (a *recordingAuditor) Record(ctx context.Context, rec shared.AuditRecord) error {
	a.records = append(a.records, rec)
	return nil
}

func newTestSessionManager(repo Repository, audit shared.Auditor) *SessionManager {
	return NewSessionManager(repo, audit, nil, 365*24*time.Hour, false)
}

func TestNewTokenIsPositiveAndVaries(t *testing.T) {
	seen := make(map[int64]bool)
	for i := 0; i < 64; i++ {
		token, err := NewToken()
		require.NoError(t, err)
		assert.GreaterOrEqual(t, token, int64(0))
		seen[token] = true
	}
	// 64 CSPRNG draws over 63 bits never collide in practice.
	assert.Len(t, seen, 64)
}

func TestCreateRecordsAudit(t *testing.T) {
	repo := newMockRepo()
	user := repo.addUser(1, "a@example.com", "pw")
	audit := &recordingAuditor{}
	manager := newTestSessionManager(repo, audit)

	sess, err := manager.Create(context.Background(), &user)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)
	assert.NotZero(t, sess.ID)

	require.Len(t, audit.records, 1)
	assert.Equal(t, "a@example.com", audit.records[0].Actor)
	assert.Equal(t, "new session", audit.records[0].Action)
}

func TestResolveShortCircuitsOnAbsentPair(t *testing.T) {
	repo := newMockRepo()
	manager := newTestSessionManager(repo, nil)

	for _, pair := range [][2]int64{{NoSession, 42}, {42, NoSession}, {NoSession, NoSession}} {
		user, err := manager.Resolve(context.Background(), pair[0], pair[1])
		require.NoError(t, err)
		assert.Nil(t, user)
	}
	assert.Zero(t, repo.resolveCalls, "absent cookie pair must not reach the store")
}

func TestResolveUnknownSessionReturnsNoUser(t *testing.T) {
	repo := newMockRepo()
	manager := newTestSessionManager(repo, nil)

	user, err := manager.Resolve(context.Background(), 99, 12345)
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.Equal(t, 1, repo.resolveCalls)
}

func TestResolveRoundTrip(t *testing.T) {
	repo := newMockRepo()
	owner := repo.addUser(1, "a@example.com", "pw")
	manager := newTestSessionManager(repo, nil)

	sess, err := manager.Create(context.Background(), &owner)
	require.NoError(t, err)

	user, err := manager.Resolve(context.Background(), sess.ID, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, owner, *user)

	// Wrong token on the right id must not resolve.
	user, err = manager.Resolve(context.Background(), sess.ID, sess.Token+1)
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestDeleteIsIdempotent(t *testing.T) {
	repo := newMockRepo()
	owner := repo.addUser(1, "a@example.com", "pw")
	manager := newTestSessionManager(repo, nil)

	sess, err := manager.Create(context.Background(), &owner)
	require.NoError(t, err)

	require.NoError(t, manager.Delete(context.Background(), sess.ID, sess.Token, &owner))
	require.NoError(t, manager.Delete(context.Background(), sess.ID, sess.Token, &owner))
}

func TestDeleteRequiresOwnership(t *testing.T) {
	repo := newMockRepo()
	owner := repo.addUser(1, "a@example.com", "pw")
	other := repo.addUser(2, "b@example.com", "pw")
	audit := &recordingAuditor{}
	manager := newTestSessionManager(repo, audit)

	sess, err := manager.Create(context.Background(), &owner)
	require.NoError(t, err)
	audit.records = nil

	// A different user asserting the same id/token deletes nothing.
	require.NoError(t, manager.Delete(context.Background(), sess.ID, sess.Token, &other))
	assert.Empty(t, audit.records, "no-op delete must not be audited")

	user, err := manager.Resolve(context.Background(), sess.ID, sess.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, owner, *user)
}

func TestConcurrentSessionsAreIndependent(t *testing.T) {
	repo := newMockRepo()
	owner := repo.addUser(1, "a@example.com", "pw")
	manager := newTestSessionManager(repo, nil)

	first, err := manager.Create(context.Background(), &owner)
	require.NoError(t, err)
	second, err := manager.Create(context.Background(), &owner)
	require.NoError(t, err)

	require.NoError(t, manager.Delete(context.Background(), first.ID, first.Token, &owner))

	user, err := manager.Resolve(context.Background(), second.ID, second.Token)
	require.NoError(t, err)
	require.NotNil(t, user)
}
