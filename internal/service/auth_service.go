package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/config"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthService is the identity provider: it owns accounts, passwords and
// session tokens, and knows nothing about marketplace profiles.
type AuthService struct {
	accounts   repository.AccountRepository
	resets     repository.PasswordResetRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	resetTTL   time.Duration
	now        func() time.Time
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	AccountRepo       repository.AccountRepository
	PasswordResetRepo repository.PasswordResetRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		accounts:   deps.AccountRepo,
		resets:     deps.PasswordResetRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
		resetTTL:   time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
		now:        time.Now,
	}
}

// SignUp creates an account. An email already on file is a conflict.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*domain.Account, error) {
	if err := auth.ValidatePassword(password); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("An account with this email already exists")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{Email: email, PasswordHash: hash}
	if err := s.accounts.Create(ctx, account); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("An account with this email already exists")
		}
		return nil, err
	}
	return account, nil
}

// SignIn verifies credentials without revealing which part was wrong.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
		}
		return nil, err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	return account, nil
}

// DeleteAccount removes an account. Deleting a missing account is not an error.
func (s *AuthService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// IssueSession signs an access token for the account.
func (s *AuthService) IssueSession(accountID string, role domain.Role) (*domain.Session, error) {
	token, exp, err := s.tokenMgr.GenerateToken(accountID, role)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return &domain.Session{AccountID: accountID, Token: token, ExpiresAt: exp}, nil
}

// RequestPasswordReset persists a reset token. Unknown emails return (nil, nil)
// so callers cannot learn which addresses are registered.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*domain.PasswordResetToken, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	token := &domain.PasswordResetToken{
		AccountID: account.ID,
		Token:     uuid.NewString(),
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewValidationError("Reset token is invalid or expired")
		}
		return err
	}
	if token.UsedAt != nil || s.now().After(token.ExpiresAt) {
		return apperrors.NewValidationError("Reset token is invalid or expired")
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	// The token is only spent once the new password is stored, so a failed
	// write leaves it usable for a retry.
	if err := s.accounts.UpdatePassword(ctx, token.AccountID, hash); err != nil {
		return err
	}
	if err := s.resets.MarkUsed(ctx, token.ID); err != nil && !apperrors.IsNotFound(err) {
		return err
	}
	return nil
}

// ChangePassword verifies current password before updating to new hash.
func (s *AuthService) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	if err := auth.ValidatePassword(newPassword); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, currentPassword); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return apperrors.NewValidationError("Current password is incorrect")
		}
		return err
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return s.accounts.UpdatePassword(ctx, account.ID, hash)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
