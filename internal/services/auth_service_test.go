package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"cafe_pos/internal/models"
	"cafe_pos/internal/redis"
	"cafe_pos/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeSessionStore is an in-memory SessionStore for tests.
type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*redis.SessionData
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*redis.SessionData)}
}

func (f *fakeSessionStore) SetSession(_ context.Context, tokenID string, data *redis.SessionData, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[tokenID] = data
	return nil
}

func (f *fakeSessionStore) GetSession(_ context.Context, tokenID string) (*redis.SessionData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[tokenID]; ok {
		return session, nil
	}
	return nil, redis.ErrSessionNotFound
}

func (f *fakeSessionStore) DeleteSession(_ context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenID)
	return nil
}

func newTestAuthService(t *testing.T) (AuthService, *fakeSessionStore) {
	t.Helper()

	db := setupTestDB(t)
	sessions := newFakeSessionStore()
	svc := NewAuthService(repository.NewUserRepository(db), sessions, "test-secret", time.Hour)
	return svc, sessions
}

func TestRegister_HashesPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register("Kasir User", "kasir@example.com", "kasir123", string(models.RoleKasir))
	require.NoError(t, err)

	assert.NotEqual(t, "kasir123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("kasir123")))
	assert.Equal(t, string(models.RoleKasir), user.Role)
}

func TestRegister_DefaultsToKasirRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	user, err := svc.Register("Someone", "someone@example.com", "secret1", "")
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleKasir), user.Role)
}

func TestRegister_RejectsUnknownRole(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("Someone", "someone@example.com", "secret1", "OWNER")
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("First", "dup@example.com", "secret1", "")
	require.NoError(t, err)

	_, err = svc.Register("Second", "dup@example.com", "secret2", "")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_IssuesTokenAndCachesSession(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	_, err := svc.Register("Kasir User", "kasir@example.com", "kasir123", string(models.RoleKasir))
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "kasir@example.com", "kasir123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "kasir@example.com", user.Email)
	assert.Len(t, sessions.sessions, 1)

	identity, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "Kasir User", identity.Name)
	assert.Equal(t, string(models.RoleKasir), identity.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Register("Kasir User", "kasir@example.com", "kasir123", "")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "kasir@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_FallsBackToStoreOnCacheMiss(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	_, err := svc.Register("Kasir User", "kasir@example.com", "kasir123", "")
	require.NoError(t, err)

	token, user, err := svc.Login(context.Background(), "kasir@example.com", "kasir123")
	require.NoError(t, err)

	// Simulate a cache wipe while the token is still valid.
	sessions.mu.Lock()
	sessions.sessions = make(map[string]*redis.SessionData)
	sessions.mu.Unlock()

	identity, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestAuthenticate_RejectsGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Authenticate(context.Background(), "not-a-token")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_RejectsTokenSignedWithOtherSecret(t *testing.T) {
	svc, _ := newTestAuthService(t)

	db := setupTestDB(t)
	other := NewAuthService(repository.NewUserRepository(db), newFakeSessionStore(), "other-secret", time.Hour)
	_, err := other.Register("Kasir User", "kasir@example.com", "kasir123", "")
	require.NoError(t, err)
	token, _, err := other.Login(context.Background(), "kasir@example.com", "kasir123")
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), token)
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogout_DropsSession(t *testing.T) {
	svc, sessions := newTestAuthService(t)

	_, err := svc.Register("Kasir User", "kasir@example.com", "kasir123", "")
	require.NoError(t, err)

	token, _, err := svc.Login(context.Background(), "kasir@example.com", "kasir123")
	require.NoError(t, err)

	identity, err := svc.Authenticate(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), identity.TokenID))
	assert.Len(t, sessions.sessions, 0)
}
