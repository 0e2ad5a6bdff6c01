package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Richyi/promosophia/pkg/config"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.values, key)
	}
	return nil
}

func (f *fakeStore) AccessSessionKey(accessID string) string {
	return "session:access:" + accessID
}

func newTestManager() (*Manager, *fakeStore) {
	store := newFakeStore()
	return &Manager{store: store, keyer: store, ttl: time.Hour}, store
}

func TestGenerateStoresRefreshToken(t *testing.T) {
	m, _ := newTestManager()

	accessID := NewAccessID()
	token, err := m.Generate(context.Background(), accessID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	ok, err := m.HasSession(context.Background(), accessID)
	require.NoError(t, err)
	assert.True(t, ok)

	stored, err := m.RefreshToken(context.Background(), accessID)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestGenerateRequiresAccessID(t *testing.T) {
	m, _ := newTestManager()
	_, err := m.Generate(context.Background(), "  ")
	assert.Error(t, err)
}

func TestRotateIssuesNewPair(t *testing.T) {
	m, _ := newTestManager()

	oldAccessID := NewAccessID()
	oldToken, err := m.Generate(context.Background(), oldAccessID)
	require.NoError(t, err)

	newAccessID, newToken, err := m.Rotate(context.Background(), oldAccessID, oldToken)
	require.NoError(t, err)
	assert.NotEqual(t, oldAccessID, newAccessID)
	assert.NotEqual(t, oldToken, newToken)

	ok, err := m.HasSession(context.Background(), oldAccessID)
	require.NoError(t, err)
	assert.False(t, ok, "rotation revokes the old session")

	ok, err = m.HasSession(context.Background(), newAccessID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRotateRejectsMismatchedToken(t *testing.T) {
	m, _ := newTestManager()

	accessID := NewAccessID()
	_, err := m.Generate(context.Background(), accessID)
	require.NoError(t, err)

	_, _, err = m.Rotate(context.Background(), accessID, "forged-token")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)

	ok, err := m.HasSession(context.Background(), accessID)
	require.NoError(t, err)
	assert.True(t, ok, "a failed rotation keeps the session intact")
}

func TestRotateUnknownSession(t *testing.T) {
	m, _ := newTestManager()
	_, _, err := m.Rotate(context.Background(), NewAccessID(), "whatever")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestRevoke(t *testing.T) {
	m, _ := newTestManager()

	accessID := NewAccessID()
	_, err := m.Generate(context.Background(), accessID)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(context.Background(), accessID))

	ok, err := m.HasSession(context.Background(), accessID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewManagerValidation(t *testing.T) {
	cfg := config.JWTConfig{ExpirationMinutes: 30, RefreshTokenTTLMinutes: 60}
	_, err := NewManager(nil, cfg)
	assert.Error(t, err)
}
