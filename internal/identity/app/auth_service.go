package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/netpc/contacts-api/internal/identity/domain"
)

const tokenIssuer = "contacts-api"

// PasswordHasher is the KDF dependency; the bcrypt implementation from
// platform/hashing satisfies it.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// AuthConfig holds token signing parameters.
type AuthConfig struct {
	JWTAccessSecret    string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// TokenPair is what login and refresh hand back to the client.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// Claims carries the verified identity extracted from an access token.
type Claims struct {
	AccountID uuid.UUID
	Email     string
}

// AuthService implements register, login and refresh-rotation over bearer
// JWT access tokens and opaque stored refresh tokens.
type AuthService struct {
	accountRepo      domain.AccountRepository
	refreshTokenRepo domain.RefreshTokenRepository
	hasher           PasswordHasher
	config           AuthConfig
	logger           *slog.Logger
}

func NewAuthService(
	accountRepo domain.AccountRepository,
	refreshTokenRepo domain.RefreshTokenRepository,
	hasher PasswordHasher,
	config AuthConfig,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		accountRepo:      accountRepo,
		refreshTokenRepo: refreshTokenRepo,
		hasher:           hasher,
		config:           config,
		logger:           logger,
	}
}

// Register creates a new account. Email uniqueness is rechecked by the
// store's unique index; either detection surfaces as ErrEmailExists.
func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.Account, error) {
	existing, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, domain.ErrAccountNotFound) {
		s.logger.ErrorContext(ctx, "Error checking account email existence", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to hash account password", "error", err)
		return nil, err
	}

	account := &domain.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, domain.ErrEmailExists
		}
		s.logger.ErrorContext(ctx, "Failed to create account", "error", err)
		return nil, err
	}

	s.logger.InfoContext(ctx, "Account registered", "account_id", account.ID)
	return account, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return TokenPair{}, domain.ErrInvalidCredentials
		}
		s.logger.ErrorContext(ctx, "Error fetching account by email", "error", err)
		return TokenPair{}, err
	}

	if !s.hasher.Verify(password, account.PasswordHash) {
		s.logger.WarnContext(ctx, "Failed login attempt", "account_id", account.ID)
		return TokenPair{}, domain.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, account)
}

// Refresh rotates a refresh token: the presented token is invalidated and a
// new pair is issued. A token that is unknown, expired or already used yields
// ErrTokenInvalid.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	tokenID, err := uuid.Parse(refreshToken)
	if err != nil {
		return TokenPair{}, domain.ErrTokenInvalid
	}

	stored, err := s.refreshTokenRepo.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenInvalid) {
			s.logger.WarnContext(ctx, "Unknown refresh token presented")
			return TokenPair{}, domain.ErrTokenInvalid
		}
		s.logger.ErrorContext(ctx, "Error fetching refresh token", "error", err)
		return TokenPair{}, err
	}

	if time.Now().After(stored.ExpiresAt) {
		// Expired tokens invalidate the whole family for the account.
		if err := s.refreshTokenRepo.DeleteByAccountID(ctx, stored.AccountID); err != nil {
			s.logger.ErrorContext(ctx, "Failed to delete token family", "error", err, "account_id", stored.AccountID)
		}
		return TokenPair{}, domain.ErrTokenInvalid
	}

	if err := s.refreshTokenRepo.Delete(ctx, stored.ID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete rotated refresh token", "error", err)
		return TokenPair{}, err
	}

	account, err := s.accountRepo.GetByID(ctx, stored.AccountID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Account not found during token refresh", "error", err, "account_id", stored.AccountID)
		return TokenPair{}, domain.ErrTokenInvalid
	}

	return s.issueTokens(ctx, account)
}

// ValidateAccessToken parses and verifies a bearer access token.
func (s *AuthService) ValidateAccessToken(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.config.JWTAccessSecret), nil
	})
	if err != nil || !token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, domain.ErrTokenInvalid
	}

	sub, _ := mapClaims["sub"].(string)
	email, _ := mapClaims["eml"].(string)
	accountID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, domain.ErrTokenInvalid
	}
	return Claims{AccountID: accountID, Email: email}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, account *domain.Account) (TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": account.ID.String(),
		"eml": account.Email,
		"jti": uuid.NewString(),
		"exp": now.Add(s.config.AccessTokenExpiry).Unix(),
		"iat": now.Unix(),
		"iss": tokenIssuer,
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTAccessSecret))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to sign access token", "error", err, "account_id", account.ID)
		return TokenPair{}, errors.New("token generation error")
	}

	refresh := &domain.RefreshToken{
		ID:        uuid.New(),
		AccountID: account.ID,
		ExpiresAt: now.Add(s.config.RefreshTokenExpiry).UTC(),
		CreatedAt: now.UTC(),
	}
	if err := s.refreshTokenRepo.Create(ctx, refresh); err != nil {
		s.logger.ErrorContext(ctx, "Failed to store refresh token", "error", err, "account_id", account.ID)
		return TokenPair{}, errors.New("session persistence error")
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refresh.ID.String(),
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}
