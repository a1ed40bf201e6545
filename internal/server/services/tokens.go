// Package services implements the development token authority: it checks
// credentials, issues access and refresh tokens, rotates refresh tokens, and
// revokes them.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokenkeeper/internal/common"
	"github.com/dmitrijs2005/tokenkeeper/internal/cryptox"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/auth"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/config"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/models"
	"github.com/dmitrijs2005/tokenkeeper/internal/server/repositories/repomanager"
)

const refreshTokenSize = 32

// ErrRefreshTokenExpired matches both common.ErrRefreshTokenExpired and
// common.ErrorUnauthorized.
var ErrRefreshTokenExpired = fmt.Errorf("%w: %w", common.ErrorUnauthorized, common.ErrRefreshTokenExpired)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

type TokenService struct {
	repos                        repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
	now                          func() time.Time
}

func NewTokenService(repos repomanager.RepositoryManager, cfg *config.Config) *TokenService {
	return &TokenService{
		repos:                        repos,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
		now:                          time.Now,
	}
}

// SeedUsers creates or updates one account per entry of users.
func (s *TokenService) SeedUsers(ctx context.Context, users map[string]string) error {
	for name, password := range users {
		pw := []byte(password)
		salt, verifier := cryptox.NewVerifier(pw)
		common.WipeByteArray(pw)

		if _, err := s.repos.Repositories().Users.Upsert(ctx, &models.User{
			UserName: name,
			Salt:     salt,
			Verifier: verifier,
		}); err != nil {
			return fmt.Errorf("seed user %q: %w", name, err)
		}
	}
	return nil
}

// Create checks the credentials and issues a fresh token pair.
func (s *TokenService) Create(ctx context.Context, username string, password []byte) (*TokenPair, error) {
	user, err := s.repos.Repositories().Users.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if !cryptox.CheckPassword(password, user.Salt, user.Verifier) {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(ctx, s.repos.Repositories(), user.ID)
}

// Refresh consumes refreshToken and issues a new pair for the same user.
// A refresh token can be used once. When userID is not empty it must match
// the owner of the refresh token.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string, userID string) (*TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorUnauthorized
	}

	var pair *TokenPair
	err := s.repos.WithTx(ctx, func(ctx context.Context, r repomanager.Repositories) error {
		stored, err := r.RefreshTokens.Consume(ctx, refreshToken)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}

		if s.now().After(stored.Expires) {
			return ErrRefreshTokenExpired
		}

		if userID != "" && userID != stored.UserID {
			return common.ErrorUnauthorized
		}

		pair, err = s.issue(ctx, r, stored.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pair, nil
}

// Invalidate revokes refreshToken. Unknown or empty tokens are ignored.
func (s *TokenService) Invalidate(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := s.repos.Repositories().RefreshTokens.Delete(ctx, refreshToken); err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return nil
}

func (s *TokenService) issue(ctx context.Context, r repomanager.Repositories, userID string) (*TokenPair, error) {
	accessToken, expiresAt, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	refreshToken, err := common.MakeRandHexString(refreshTokenSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if err := r.RefreshTokens.Create(ctx, userID, refreshToken, s.now().Add(s.refreshTokenValidityDuration)); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken, ExpiresAt: expiresAt}, nil
}
