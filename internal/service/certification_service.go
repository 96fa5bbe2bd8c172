package service

import (
	"context"
	"strings"
	"time"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// CertificationService manages the caller's certifications.
type CertificationService struct {
	certifications repository.CertificationRepository
	providers      repository.ProviderRepository
}

// NewCertificationService constructs the service.
func NewCertificationService(certs repository.CertificationRepository, providers repository.ProviderRepository) *CertificationService {
	return &CertificationService{certifications: certs, providers: providers}
}

// CertificationInput describes a new certification.
type CertificationInput struct {
	Name          string
	Issuer        string
	IssuedAt      *time.Time
	ExpiresAt     *time.Time
	CredentialURL *string
}

// ListMine returns the calling provider's certifications.
func (s *CertificationService) ListMine(ctx context.Context, caller auth.Identity) ([]domain.Certification, error) {
	provider, err := s.callerProvider(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.certifications.ListByProvider(ctx, provider.ID)
}

// Create adds a certification to the calling provider.
func (s *CertificationService) Create(ctx context.Context, caller auth.Identity, in CertificationInput) (*domain.Certification, error) {
	name := strings.TrimSpace(in.Name)
	issuer := strings.TrimSpace(in.Issuer)
	if name == "" || issuer == "" {
		return nil, apperrors.NewValidationError("name and issuer are required")
	}
	if in.IssuedAt != nil && in.ExpiresAt != nil && in.ExpiresAt.Before(*in.IssuedAt) {
		return nil, apperrors.NewValidationError("expiresAt must not be before issuedAt")
	}
	provider, err := s.callerProvider(ctx, caller)
	if err != nil {
		return nil, err
	}
	cert := &domain.Certification{
		ProviderID:    provider.ID,
		Name:          name,
		Issuer:        issuer,
		IssuedAt:      in.IssuedAt,
		ExpiresAt:     in.ExpiresAt,
		CredentialURL: trimmedOrNil(in.CredentialURL),
	}
	if err := s.certifications.Create(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

// Delete removes one of the caller's certifications.
func (s *CertificationService) Delete(ctx context.Context, caller auth.Identity, id string) error {
	cert, err := s.certifications.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return apperrors.NewNotFound("Certification")
		}
		return err
	}
	provider, err := s.callerProvider(ctx, caller)
	if err != nil {
		return err
	}
	if cert.ProviderID != provider.ID {
		return apperrors.NewForbidden("You can only delete your own certifications")
	}
	return s.certifications.Delete(ctx, id)
}

func (s *CertificationService) callerProvider(ctx context.Context, caller auth.Identity) (*domain.Provider, error) {
	if !caller.IsProvider() {
		return nil, apperrors.NewForbidden("Only providers have certifications")
	}
	provider, err := s.providers.GetByProfileID(ctx, caller.SubjectID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Provider")
		}
		return nil, err
	}
	return provider, nil
}
