package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/observability"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// Authenticator is the Auth Service contract registration and login depend on.
type Authenticator interface {
	SignUp(ctx context.Context, email, password string) (*domain.Account, error)
	SignIn(ctx context.Context, email, password string) (*domain.Account, error)
	DeleteAccount(ctx context.Context, id string) error
	IssueSession(accountID string, role domain.Role) (*domain.Session, error)
}

// AccountService ties Auth Service accounts to marketplace profiles.
type AccountService struct {
	auth      Authenticator
	profiles  repository.ProfileRepository
	providers repository.ProviderRepository
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// AccountDependencies bundles collaborators for the account service.
type AccountDependencies struct {
	Auth         Authenticator
	ProfileRepo  repository.ProfileRepository
	ProviderRepo repository.ProviderRepository
	Logger       *zap.Logger
	Metrics      *observability.Metrics
}

// NewAccountService constructs the service.
func NewAccountService(deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		auth:      deps.Auth,
		profiles:  deps.ProfileRepo,
		providers: deps.ProviderRepo,
		logger:    logger,
		metrics:   deps.Metrics,
	}
}

// RegisterInput describes a sign-up request.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Role     domain.Role
	Phone    *string
	Location *string
	Provider *ProviderInput
}

// ProviderInput carries the business fields of a provider.
type ProviderInput struct {
	BusinessName *string
	Description  *string
	CategoryID   *string
	HourlyRate   *float64
	Services     []string
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Profile  *domain.Profile
	Provider *domain.Provider
	Session  *domain.Session
}

// Register creates the Auth Service account and the profile rows. If the
// profile write fails the account is deleted again so no orphan remains.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		return nil, apperrors.NewValidationError("A valid email address is required")
	}
	email := strings.ToLower(addr.Address)
	if !in.Role.Valid() {
		return nil, apperrors.NewValidationError("role must be client or provider")
	}
	fullName := strings.TrimSpace(in.FullName)
	if fullName == "" {
		return nil, apperrors.NewValidationError("fullName is required")
	}
	if in.Provider != nil {
		if in.Provider.HourlyRate != nil && *in.Provider.HourlyRate < 0 {
			return nil, apperrors.NewValidationError("hourlyRate must not be negative")
		}
		if _, err := optionalID(in.Provider.CategoryID, "categoryId"); err != nil {
			return nil, err
		}
	}

	account, err := s.auth.SignUp(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{
		ID:       account.ID,
		Email:    account.Email,
		FullName: fullName,
		Role:     in.Role,
		Phone:    trimmedOrNil(in.Phone),
		Location: trimmedOrNil(in.Location),
	}

	var provider *domain.Provider
	if in.Role == domain.RoleProvider {
		provider = newProvider(fullName, in.Provider)
		err = s.CreateProviderWithRollback(ctx, account, profile, provider)
	} else {
		err = s.createProfileWithRollback(ctx, account, profile)
	}
	if err != nil {
		return nil, err
	}

	session, err := s.auth.IssueSession(account.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Profile: profile, Provider: provider, Session: session}, nil
}

// CreateProviderWithRollback writes the profile and provider rows in one
// transaction and, if that fails, deletes the Auth Service account. The
// account lives outside the transaction, so this is best effort.
func (s *AccountService) CreateProviderWithRollback(ctx context.Context, account *domain.Account, profile *domain.Profile, provider *domain.Provider) error {
	if err := s.profiles.CreateWithProvider(ctx, profile, provider); err != nil {
		s.compensate(ctx, account, err)
		return mapProfileWriteError(err)
	}
	return nil
}

func (s *AccountService) createProfileWithRollback(ctx context.Context, account *domain.Account, profile *domain.Profile) error {
	if err := s.profiles.Create(ctx, profile); err != nil {
		s.compensate(ctx, account, err)
		return mapProfileWriteError(err)
	}
	return nil
}

func (s *AccountService) compensate(ctx context.Context, account *domain.Account, cause error) {
	// The request context may already be cancelled; the cleanup still has to run.
	cleanupCtx := context.WithoutCancel(ctx)
	if err := s.auth.DeleteAccount(cleanupCtx, account.ID); err != nil {
		s.metrics.RecordCompensation("failed")
		s.logger.Error("compensating account delete failed; orphaned account remains",
			zap.String("account_id", account.ID),
			zap.NamedError("cause", cause),
			zap.Error(err))
		return
	}
	s.metrics.RecordCompensation("ok")
	s.logger.Warn("profile write failed; account rolled back",
		zap.String("account_id", account.ID),
		zap.Error(cause))
}

func mapProfileWriteError(err error) error {
	de := apperrors.ToDomainError(err)
	if de.HTTPStatus == 409 {
		return apperrors.NewConflict("An account with this email already exists")
	}
	if de.HTTPStatus == 400 {
		return apperrors.NewValidationError("Unknown category")
	}
	return apperrors.NewInternalError(fmt.Errorf("create profile: %w", err))
}

func newProvider(fullName string, in *ProviderInput) *domain.Provider {
	provider := &domain.Provider{BusinessName: fullName, Services: []string{}}
	if in == nil {
		return provider
	}
	if name := trimmedOrNil(in.BusinessName); name != nil {
		provider.BusinessName = *name
	}
	if in.Description != nil {
		provider.Description = strings.TrimSpace(*in.Description)
	}
	provider.CategoryID = trimmedOrNil(in.CategoryID)
	provider.HourlyRate = in.HourlyRate
	provider.Services = cleanServices(in.Services)
	return provider
}

// Login signs the caller in and returns their profile with a fresh session.
func (s *AccountService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	account, err := s.auth.SignIn(ctx, strings.ToLower(strings.TrimSpace(email)), password)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByID(ctx, account.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			s.logger.Error("account has no profile", zap.String("account_id", account.ID))
			return nil, apperrors.NewInternalError(err)
		}
		return nil, err
	}
	provider, err := s.providerFor(ctx, profile)
	if err != nil {
		return nil, err
	}
	session, err := s.auth.IssueSession(account.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Profile: profile, Provider: provider, Session: session}, nil
}

// Session returns the caller's profile.
func (s *AccountService) Session(ctx context.Context, caller auth.Identity) (*domain.Profile, *domain.Provider, error) {
	profile, err := s.getProfile(ctx, caller.SubjectID)
	if err != nil {
		return nil, nil, err
	}
	provider, err := s.providerFor(ctx, profile)
	if err != nil {
		return nil, nil, err
	}
	return profile, provider, nil
}

// GetUser loads a profile by id.
func (s *AccountService) GetUser(ctx context.Context, id string) (*domain.Profile, error) {
	return s.getProfile(ctx, id)
}

// ProfileUpdateInput lists the editable profile fields; nil means unchanged.
type ProfileUpdateInput struct {
	FullName  *string
	Phone     *string
	Location  *string
	Bio       *string
	AvatarURL *string
}

// UpdateUser lets a caller edit their own profile only.
func (s *AccountService) UpdateUser(ctx context.Context, caller auth.Identity, id string, in ProfileUpdateInput) (*domain.Profile, error) {
	if caller.SubjectID != id {
		return nil, apperrors.NewForbidden("You can only update your own profile")
	}
	profile, err := s.getProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, apperrors.NewValidationError("fullName must not be empty")
		}
		profile.FullName = name
	}
	if in.Phone != nil {
		profile.Phone = trimmedOrNil(in.Phone)
	}
	if in.Location != nil {
		profile.Location = trimmedOrNil(in.Location)
	}
	if in.Bio != nil {
		profile.Bio = trimmedOrNil(in.Bio)
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = trimmedOrNil(in.AvatarURL)
	}
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *AccountService) getProfile(ctx context.Context, id string) (*domain.Profile, error) {
	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("User")
		}
		return nil, err
	}
	return profile, nil
}

func (s *AccountService) providerFor(ctx context.Context, profile *domain.Profile) (*domain.Provider, error) {
	if !profile.IsProvider() {
		return nil, nil
	}
	provider, err := s.providers.GetByProfileID(ctx, profile.ID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return provider, nil
}
