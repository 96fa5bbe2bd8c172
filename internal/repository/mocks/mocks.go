// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository"
)

// AccountRepository mocks repository.AccountRepository.
type AccountRepository struct{ mock.Mock }

func (m *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *AccountRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *AccountRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	args := m.Called(ctx, email)
	if v := args.Get(0); v != nil {
		return v.(*domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// PasswordResetRepository mocks repository.PasswordResetRepository.
type PasswordResetRepository struct{ mock.Mock }

func (m *PasswordResetRepository) Create(ctx context.Context, token *domain.PasswordResetToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *PasswordResetRepository) GetByToken(ctx context.Context, token string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, token)
	if v := args.Get(0); v != nil {
		return v.(*domain.PasswordResetToken), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// ProfileRepository mocks repository.ProfileRepository.
type ProfileRepository struct{ mock.Mock }

func (m *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) CreateWithProvider(ctx context.Context, profile *domain.Profile, provider *domain.Provider) error {
	return m.Called(ctx, profile, provider).Error(0)
}

func (m *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Profile), args.Error(1)
	}
	return nil, args.Error(1)
}

// ProviderRepository mocks repository.ProviderRepository.
type ProviderRepository struct{ mock.Mock }

func (m *ProviderRepository) Update(ctx context.Context, provider *domain.Provider) error {
	return m.Called(ctx, provider).Error(0)
}

func (m *ProviderRepository) GetByID(ctx context.Context, id string) (*domain.Provider, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderRepository) GetByProfileID(ctx context.Context, profileID string) (*domain.Provider, error) {
	args := m.Called(ctx, profileID)
	if v := args.Get(0); v != nil {
		return v.(*domain.Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProviderRepository) List(ctx context.Context, filter repository.ProviderFilter) ([]domain.Provider, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository mocks repository.ProjectRepository.
type ProjectRepository struct{ mock.Mock }

func (m *ProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *ProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	return m.Called(ctx, project).Error(0)
}

func (m *ProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context, filter repository.ProjectFilter) ([]domain.Project, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Project), args.Error(1)
	}
	return nil, args.Error(1)
}

// MessageRepository mocks repository.MessageRepository.
type MessageRepository struct{ mock.Mock }

func (m *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MessageRepository) GetByID(ctx context.Context, id string) (*domain.Message, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) List(ctx context.Context, filter repository.MessageFilter) ([]domain.Message, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MessageRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// NotificationRepository mocks repository.NotificationRepository.
type NotificationRepository struct{ mock.Mock }

func (m *NotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *NotificationRepository) GetByID(ctx context.Context, id string) (*domain.Notification, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) List(ctx context.Context, filter repository.NotificationFilter) ([]domain.Notification, error) {
	args := m.Called(ctx, filter)
	if v := args.Get(0); v != nil {
		return v.([]domain.Notification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// CategoryRepository mocks repository.CategoryRepository.
type CategoryRepository struct{ mock.Mock }

func (m *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]domain.Category), args.Error(1)
	}
	return nil, args.Error(1)
}

// CertificationRepository mocks repository.CertificationRepository.
type CertificationRepository struct{ mock.Mock }

func (m *CertificationRepository) Create(ctx context.Context, cert *domain.Certification) error {
	return m.Called(ctx, cert).Error(0)
}

func (m *CertificationRepository) GetByID(ctx context.Context, id string) (*domain.Certification, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*domain.Certification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CertificationRepository) ListByProvider(ctx context.Context, providerID string) ([]domain.Certification, error) {
	args := m.Called(ctx, providerID)
	if v := args.Get(0); v != nil {
		return v.([]domain.Certification), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CertificationRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

var (
	_ repository.AccountRepository       = (*AccountRepository)(nil)
	_ repository.PasswordResetRepository = (*PasswordResetRepository)(nil)
	_ repository.ProfileRepository       = (*ProfileRepository)(nil)
	_ repository.ProviderRepository      = (*ProviderRepository)(nil)
	_ repository.ProjectRepository       = (*ProjectRepository)(nil)
	_ repository.MessageRepository       = (*MessageRepository)(nil)
	_ repository.NotificationRepository  = (*NotificationRepository)(nil)
	_ repository.CategoryRepository      = (*CategoryRepository)(nil)
	_ repository.CertificationRepository = (*CertificationRepository)(nil)
)
