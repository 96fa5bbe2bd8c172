package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

const msgPasswordResetSent = "If an account exists for that email, a reset link has been sent"

// AuthHandler exposes the /api/auth endpoints.
type AuthHandler struct {
	accounts *service.AccountService
	auth     *service.AuthService
	logger   *zap.Logger
}

// NewAuthHandler constructs handler.
func NewAuthHandler(accounts *service.AccountService, authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandler{accounts: accounts, auth: authService, logger: logger}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" || strings.TrimSpace(req.FullName) == "" || req.Role == "" {
		return apperrors.NewValidationError("email, password, fullName and role are required")
	}

	input := service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
		Phone:    req.Phone,
		Location: req.Location,
	}
	if req.Provider != nil {
		input.Provider = &service.ProviderInput{
			BusinessName: req.Provider.BusinessName,
			Description:  req.Provider.Description,
			CategoryID:   req.Provider.CategoryID,
			HourlyRate:   req.Provider.HourlyRate,
			Services:     req.Provider.Services,
		}
	}

	result, err := h.accounts.Register(c.UserContext(), input)
	if err != nil {
		return err
	}
	return response.Created(c, authResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password are required")
	}

	result, err := h.accounts.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return response.Success(c, authResponse(result))
}

// Logout handles POST /api/auth/logout. Tokens are stateless, so the client
// simply discards its copy.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return response.Message(c, "Logged out")
}

// RequestPasswordReset handles POST /api/auth/password/reset.
func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return apperrors.NewValidationError("email is required")
	}

	token, err := h.auth.RequestPasswordReset(c.UserContext(), email)
	if err != nil {
		return err
	}
	if token != nil {
		h.logger.Info("password reset issued",
			zap.String("account_id", token.AccountID),
			zap.Time("expires_at", token.ExpiresAt))
	}
	return response.Message(c, msgPasswordResetSent)
}

// ConfirmPasswordReset handles POST /api/auth/password/confirm.
func (h *AuthHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req dto.PasswordResetConfirmRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if strings.TrimSpace(req.Token) == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword are required")
	}
	if err := h.auth.ConfirmPasswordReset(c.UserContext(), strings.TrimSpace(req.Token), req.NewPassword); err != nil {
		return err
	}
	return response.Message(c, "Password updated")
}

// Session handles GET /api/auth/session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	profile, provider, err := h.accounts.Session(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return response.Success(c, dto.SessionResponse{
		User:     profileResponse(profile),
		Provider: optionalProviderResponse(provider),
	})
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req dto.ChangePasswordRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("currentPassword and newPassword are required")
	}
	if err := h.auth.ChangePassword(c.UserContext(), caller.SubjectID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return response.Message(c, "Password updated")
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		Token:     result.Session.Token,
		ExpiresAt: result.Session.ExpiresAt,
		User:      profileResponse(result.Profile),
		Provider:  optionalProviderResponse(result.Provider),
	}
}
