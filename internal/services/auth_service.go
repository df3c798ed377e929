package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"boardsuite/internal/caching"
	"boardsuite/internal/common"
	"boardsuite/internal/middleware"
	"boardsuite/internal/models"
	"boardsuite/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// TokenResponse carries a signed access token plus a rotating refresh token.
type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthService interface {
	Register(ctx context.Context, username, password, fullName string) (*models.User, error)
	Login(ctx context.Context, username, password string) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
}

type authService struct {
	userRepo   repositories.UserRepository
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func NewAuthService(userRepo repositories.UserRepository, cacheSvc caching.CacheService, jwtSecret string) AuthService {
	return &authService{
		userRepo:   userRepo,
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   24 * time.Hour,
		refreshTTL: 7 * 24 * time.Hour,
	}
}

func (s *authService) Register(ctx context.Context, username, password, fullName string) (*models.User, error) {
	if username == "" || password == "" || fullName == "" {
		return nil, &common.ValidationError{Message: "Username, password, and full name are required."}
	}

	exists, err := s.userRepo.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &common.ConflictError{Message: "This username is already taken."}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, &common.ConflictError{Message: "This username is already taken."}
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	if username == "" || password == "" {
		return nil, &common.ValidationError{Message: "Username and password are required."}
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &common.AuthenticationError{Message: "Invalid username or password."}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, &common.AuthenticationError{Message: "Invalid username or password."}
	}

	return s.issueTokens(ctx, user)
}

// Refresh exchanges a valid refresh token for a new token pair. The old
// refresh token is consumed; reuse fails.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	if refreshToken == "" {
		return nil, &common.ValidationError{Message: "Refresh token is required."}
	}

	tokenHash := hashToken(refreshToken)
	userIDStr, err := s.cacheSvc.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, err
	}
	if userIDStr == "" {
		return nil, &common.AuthenticationError{Message: "Invalid or expired refresh token."}
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, &common.AuthenticationError{Message: "Invalid or expired refresh token."}
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, &common.AuthenticationError{Message: "Invalid or expired refresh token."}
	}

	if err := s.cacheSvc.DeleteRefreshToken(ctx, tokenHash); err != nil {
		log.Printf("failed to consume refresh token: %v", err)
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenResponse, error) {
	now := time.Now()
	claims := middleware.AccessClaims{
		Username: user.Username,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetRefreshToken(ctx, hashToken(refreshToken), user.ID.String(), s.refreshTTL); err != nil {
		return nil, err
	}

	return &TokenResponse{
		Token:        accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokenTTL.Seconds()),
	}, nil
}

func generateSecureToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
