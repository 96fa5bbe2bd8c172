package domain

import "time"

// Certification is a credential a provider lists on their profile.
type Certification struct {
	ID            string
	ProviderID    string
	Name          string
	Issuer        string
	IssuedAt      *time.Time
	ExpiresAt     *time.Time
	CredentialURL *string
	CreatedAt     time.Time
}
