package dto

import (
	"time"

	"github.com/serviceconnect/api/internal/domain"
)

// RegisterRequest payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string           `json:"email"`
	Password string           `json:"password"`
	FullName string           `json:"fullName"`
	Role     domain.Role      `json:"role"`
	Phone    *string          `json:"phone"`
	Location *string          `json:"location"`
	Provider *ProviderRequest `json:"provider"`
}

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordResetRequest payload for POST /api/auth/password/reset.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetConfirmRequest payload for POST /api/auth/password/confirm.
type PasswordResetConfirmRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

// ChangePasswordRequest payload for PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string            `json:"token"`
	ExpiresAt time.Time         `json:"expiresAt"`
	User      ProfileResponse   `json:"user"`
	Provider  *ProviderResponse `json:"provider,omitempty"`
}

// SessionResponse describes the signed-in caller.
type SessionResponse struct {
	User     ProfileResponse   `json:"user"`
	Provider *ProviderResponse `json:"provider,omitempty"`
}

// UpdateProfileRequest payload for PUT /api/users/:id.
type UpdateProfileRequest struct {
	FullName  *string `json:"fullName"`
	Phone     *string `json:"phone"`
	Location  *string `json:"location"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatarUrl"`
}

// ProfileResponse is the full profile, shown to its owner.
type ProfileResponse struct {
	ID        string      `json:"id"`
	Email     string      `json:"email"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	Phone     *string     `json:"phone"`
	Location  *string     `json:"location"`
	Bio       *string     `json:"bio"`
	AvatarURL *string     `json:"avatarUrl"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// PublicProfileResponse omits contact details.
type PublicProfileResponse struct {
	ID        string      `json:"id"`
	FullName  string      `json:"fullName"`
	Role      domain.Role `json:"role"`
	Location  *string     `json:"location"`
	Bio       *string     `json:"bio"`
	AvatarURL *string     `json:"avatarUrl"`
	CreatedAt time.Time   `json:"createdAt"`
}
