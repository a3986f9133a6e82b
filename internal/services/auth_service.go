package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cafe_pos/internal/models"
	"cafe_pos/internal/redis"
	"cafe_pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SessionStore caches authenticated identities for the lifetime of a token.
// Implemented by the redis client; tests substitute an in-memory fake.
type SessionStore interface {
	SetSession(ctx context.Context, tokenID string, data *redis.SessionData, ttl time.Duration) error
	GetSession(ctx context.Context, tokenID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, tokenID string) error
}

// Identity is the resolved caller attached to each authenticated request.
type Identity struct {
	UserID  uint
	Name    string
	Role    string
	TokenID string
}

type AuthService interface {
	Register(name, email, password, role string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	Logout(ctx context.Context, tokenID string) error
	Authenticate(ctx context.Context, token string) (*Identity, error)
}

type authService struct {
	userRepo repository.UserRepository
	sessions SessionStore
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(userRepo repository.UserRepository, sessions SessionStore, jwtSecret string, tokenTTL time.Duration) AuthService {
	return &authService{
		userRepo: userRepo,
		sessions: sessions,
		secret:   []byte(jwtSecret),
		tokenTTL: tokenTTL,
	}
}

type tokenClaims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) Register(name, email, password, role string) (*models.User, error) {
	if role == "" {
		role = string(models.RoleKasir)
	}
	if !models.ValidRole(role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	tokenID := fmt.Sprintf("%d-%d", user.ID, now.UnixNano())
	claims := tokenClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	session := &redis.SessionData{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: now,
	}
	if err := s.sessions.SetSession(ctx, tokenID, session, s.tokenTTL); err != nil {
		return "", nil, fmt.Errorf("failed to cache session: %w", err)
	}

	return token, user, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	return s.sessions.DeleteSession(ctx, tokenID)
}

func (s *authService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidCredentials
	}

	// Fast path: cached session. Fall back to the user store when the cache
	// has no entry (e.g. Redis restarted while tokens were still live).
	if session, err := s.sessions.GetSession(ctx, claims.ID); err == nil {
		return &Identity{
			UserID:  session.UserID,
			Name:    session.Name,
			Role:    session.Role,
			TokenID: claims.ID,
		}, nil
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		UserID:  user.ID,
		Name:    user.Name,
		Role:    user.Role,
		TokenID: claims.ID,
	}, nil
}
