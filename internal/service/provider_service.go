package service

import (
	"context"
	"strings"

	"github.com/serviceconnect/api/internal/auth"
	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// ProviderService exposes the provider directory.
type ProviderService struct {
	providers      repository.ProviderRepository
	categories     repository.CategoryRepository
	certifications repository.CertificationRepository
}

// ProviderDependencies bundles repositories for the provider service.
type ProviderDependencies struct {
	ProviderRepo      repository.ProviderRepository
	CategoryRepo      repository.CategoryRepository
	CertificationRepo repository.CertificationRepository
}

// NewProviderService constructs the service.
func NewProviderService(deps ProviderDependencies) *ProviderService {
	return &ProviderService{
		providers:      deps.ProviderRepo,
		categories:     deps.CategoryRepo,
		certifications: deps.CertificationRepo,
	}
}

// ProviderListFilter describes directory search filters.
type ProviderListFilter struct {
	CategoryID *string
	Search     string
	Verified   *bool
	Limit      int
	Offset     int
}

// ProviderUpdateInput lists editable business fields; nil means unchanged.
type ProviderUpdateInput struct {
	BusinessName *string
	Description  *string
	CategoryID   *string
	HourlyRate   *float64
	Services     []string
}

// List searches the directory.
func (s *ProviderService) List(ctx context.Context, filter ProviderListFilter) ([]domain.Provider, error) {
	categoryID, err := optionalID(filter.CategoryID, "category")
	if err != nil {
		return nil, err
	}
	return s.providers.List(ctx, repository.ProviderFilter{
		CategoryID: categoryID,
		Search:     strings.TrimSpace(filter.Search),
		Verified:   filter.Verified,
		Page:       repository.Page{Limit: filter.Limit, Offset: filter.Offset},
	})
}

// Get returns one provider.
func (s *ProviderService) Get(ctx context.Context, id string) (*domain.Provider, error) {
	provider, err := s.providers.GetByID(ctx, id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Provider")
		}
		return nil, err
	}
	return provider, nil
}

// GetByProfile returns the provider row for a provider profile.
func (s *ProviderService) GetByProfile(ctx context.Context, profileID string) (*domain.Provider, error) {
	provider, err := s.providers.GetByProfileID(ctx, profileID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewNotFound("Provider")
		}
		return nil, err
	}
	return provider, nil
}

// Update edits business details. Only the provider's own profile may do so.
func (s *ProviderService) Update(ctx context.Context, caller auth.Identity, id string, in ProviderUpdateInput) (*domain.Provider, error) {
	provider, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if provider.ProfileID != caller.SubjectID {
		return nil, apperrors.NewForbidden("You can only update your own provider profile")
	}

	if in.BusinessName != nil {
		name := strings.TrimSpace(*in.BusinessName)
		if name == "" {
			return nil, apperrors.NewValidationError("businessName must not be empty")
		}
		provider.BusinessName = name
	}
	if in.Description != nil {
		provider.Description = strings.TrimSpace(*in.Description)
	}
	if in.CategoryID != nil {
		categoryID, err := optionalID(in.CategoryID, "categoryId")
		if err != nil {
			return nil, err
		}
		if categoryID != nil {
			if _, err := s.categories.GetByID(ctx, *categoryID); err != nil {
				if apperrors.IsNotFound(err) {
					return nil, apperrors.NewValidationError("Unknown category")
				}
				return nil, err
			}
		}
		provider.CategoryID = categoryID
	}
	if in.HourlyRate != nil {
		if *in.HourlyRate < 0 {
			return nil, apperrors.NewValidationError("hourlyRate must not be negative")
		}
		provider.HourlyRate = in.HourlyRate
	}
	if in.Services != nil {
		provider.Services = cleanServices(in.Services)
	}

	if err := s.providers.Update(ctx, provider); err != nil {
		return nil, err
	}
	return provider, nil
}

// ListCertifications returns the certifications of a provider.
func (s *ProviderService) ListCertifications(ctx context.Context, id string) ([]domain.Certification, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.certifications.ListByProvider(ctx, id)
}
