package dto

import "time"

// ProviderRequest carries provider business fields on register and update.
type ProviderRequest struct {
	BusinessName *string  `json:"businessName"`
	Description  *string  `json:"description"`
	CategoryID   *string  `json:"categoryId"`
	HourlyRate   *float64 `json:"hourlyRate"`
	Services     []string `json:"services"`
}

// ProviderResponse is a provider directory entry.
type ProviderResponse struct {
	ID           string                 `json:"id"`
	ProfileID    string                 `json:"profileId"`
	BusinessName string                 `json:"businessName"`
	Description  string                 `json:"description"`
	CategoryID   *string                `json:"categoryId"`
	HourlyRate   *float64               `json:"hourlyRate"`
	Services     []string               `json:"services"`
	Rating       float64                `json:"rating"`
	ReviewCount  int                    `json:"reviewCount"`
	IsVerified   bool                   `json:"isVerified"`
	Profile      *PublicProfileResponse `json:"profile,omitempty"`
	CreatedAt    time.Time              `json:"createdAt"`
	UpdatedAt    time.Time              `json:"updatedAt"`
}

// CertificationRequest payload for POST /api/certifications.
type CertificationRequest struct {
	Name          string     `json:"name"`
	Issuer        string     `json:"issuer"`
	IssuedAt      *time.Time `json:"issuedAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	CredentialURL *string    `json:"credentialUrl"`
}

// CertificationResponse describes one certification.
type CertificationResponse struct {
	ID            string     `json:"id"`
	ProviderID    string     `json:"providerId"`
	Name          string     `json:"name"`
	Issuer        string     `json:"issuer"`
	IssuedAt      *time.Time `json:"issuedAt"`
	ExpiresAt     *time.Time `json:"expiresAt"`
	CredentialURL *string    `json:"credentialUrl"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CategoryResponse describes a service category.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}
