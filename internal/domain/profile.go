package domain

import "time"

// Profile is the public-facing record of a marketplace user.
type Profile struct {
	ID        string
	Email     string
	FullName  string
	Role      Role
	Phone     *string
	Location  *string
	Bio       *string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsProvider reports whether the profile belongs to a service provider.
func (p *Profile) IsProvider() bool {
	return p != nil && p.Role == RoleProvider
}
