package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cafe_pos/internal/models"
	"cafe_pos/internal/redis"
	"cafe_pos/internal/repository"
	"cafe_pos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*redis.SessionData
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

func setupAuthTest(t *testing.T) (*gin.Engine, services.AuthService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		&fakeSessionStore{sessions: make(map[string]*redis.SessionData)},
		"test-secret",
		time.Hour,
	)

	router := gin.New()
	router.GET("/admin-only", Authenticate(authService), Authorize(string(models.RoleAdmin)), func(c *gin.Context) {
		identity, _ := GetIdentity(c)
		c.JSON(http.StatusOK, gin.H{"name": identity.Name, "role": identity.Role})
	})

	return router, authService
}

func loginAs(t *testing.T, authService services.AuthService, name, email, role string) string {
	t.Helper()

	_, err := authService.Register(name, email, "secret123", role)
	require.NoError(t, err)
	token, _, err := authService.Login(context.Background(), email, "secret123")
	require.NoError(t, err)
	return token
}

func TestAuthenticate_MissingToken(t *testing.T) {
	router, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	router, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	router, _ := setupAuthTest(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthorize_WrongRole(t *testing.T) {
	router, authService := setupAuthTest(t)
	token := loginAs(t, authService, "Kasir User", "kasir@example.com", string(models.RoleKasir))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthorize_AllowedRole(t *testing.T) {
	router, authService := setupAuthTest(t)
	token := loginAs(t, authService, "Admin User", "admin@example.com", string(models.RoleAdmin))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Admin User")
}
