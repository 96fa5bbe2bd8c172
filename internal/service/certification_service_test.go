package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/serviceconnect/api/internal/domain"
	"github.com/serviceconnect/api/internal/repository/mocks"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

func newCertificationFixture() (*CertificationService, *mocks.CertificationRepository, *mocks.ProviderRepository) {
	certs := &mocks.CertificationRepository{}
	providers := &mocks.ProviderRepository{}
	return NewCertificationService(certs, providers), certs, providers
}

func TestCreateCertificationRequiresNameAndIssuer(t *testing.T) {
	svc, certs, providers := newCertificationFixture()

	for _, in := range []CertificationInput{
		{Issuer: "City Guild"},
		{Name: "Master Plumber", Issuer: "  "},
	} {
		_, err := svc.Create(context.Background(), providerCaller, in)
		require.Error(t, err)
		de := apperrors.ToDomainError(err)
		assert.Equal(t, 400, de.HTTPStatus)
		assert.Equal(t, "name and issuer are required", de.Message)
	}

	issued := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	expires := issued.AddDate(0, -1, 0)
	_, err := svc.Create(context.Background(), providerCaller, CertificationInput{
		Name: "Master Plumber", Issuer: "City Guild", IssuedAt: &issued, ExpiresAt: &expires,
	})
	assert.Equal(t, 400, statusOf(t, err))

	providers.AssertNotCalled(t, "GetByProfileID", mock.Anything, mock.Anything)
	certs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCertificationProvidersOnly(t *testing.T) {
	svc, certs, _ := newCertificationFixture()

	_, err := svc.Create(context.Background(), clientCaller, CertificationInput{Name: "n", Issuer: "i"})

	assert.Equal(t, 403, statusOf(t, err))
	certs.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateCertificationAttachesCallerProvider(t *testing.T) {
	svc, certs, providers := newCertificationFixture()
	providers.On("GetByProfileID", mock.Anything, "provider-1").
		Return(&domain.Provider{ID: "prov-1", ProfileID: "provider-1"}, nil)
	certs.On("Create", mock.Anything, mock.MatchedBy(func(c *domain.Certification) bool {
		return c.ProviderID == "prov-1" && c.Name == "Master Plumber"
	})).Return(nil)

	cert, err := svc.Create(context.Background(), providerCaller, CertificationInput{
		Name: " Master Plumber ", Issuer: "City Guild",
	})
	require.NoError(t, err)

	assert.Equal(t, "City Guild", cert.Issuer)
	certs.AssertExpectations(t)
}

func TestDeleteCertificationOfAnotherProvider(t *testing.T) {
	svc, certs, providers := newCertificationFixture()
	certs.On("GetByID", mock.Anything, "cert-9").
		Return(&domain.Certification{ID: "cert-9", ProviderID: "prov-2"}, nil)
	providers.On("GetByProfileID", mock.Anything, "provider-1").
		Return(&domain.Provider{ID: "prov-1", ProfileID: "provider-1"}, nil)

	err := svc.Delete(context.Background(), providerCaller, "cert-9")

	require.Error(t, err)
	de := apperrors.ToDomainError(err)
	assert.Equal(t, 403, de.HTTPStatus)
	assert.Equal(t, "You can only delete your own certifications", de.Message)
	certs.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteCertification(t *testing.T) {
	svc, certs, providers := newCertificationFixture()
	certs.On("GetByID", mock.Anything, "missing").Return(nil, pgx.ErrNoRows)

	err := svc.Delete(context.Background(), providerCaller, "missing")
	require.Error(t, err)
	assert.Equal(t, "Certification not found", apperrors.ToDomainError(err).Message)

	certs.On("GetByID", mock.Anything, "cert-1").
		Return(&domain.Certification{ID: "cert-1", ProviderID: "prov-1"}, nil)
	providers.On("GetByProfileID", mock.Anything, "provider-1").
		Return(&domain.Provider{ID: "prov-1", ProfileID: "provider-1"}, nil)
	certs.On("Delete", mock.Anything, "cert-1").Return(nil)

	require.NoError(t, svc.Delete(context.Background(), providerCaller, "cert-1"))
	certs.AssertCalled(t, "Delete", mock.Anything, "cert-1")
}
