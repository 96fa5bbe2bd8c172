package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
)

// UsersHandler exposes profile endpoints.
type UsersHandler struct {
	accounts *service.AccountService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(accounts *service.AccountService) *UsersHandler {
	return &UsersHandler{accounts: accounts}
}

// GetUser handles GET /api/users/:id. Callers see their own full profile and
// a public subset of anyone else's.
func (h *UsersHandler) GetUser(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}
	profile, err := h.accounts.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}
	if caller.SubjectID == profile.ID {
		return response.Success(c, profileResponse(profile))
	}
	return response.Success(c, publicProfileResponse(profile))
}

// UpdateUser handles PUT /api/users/:id.
func (h *UsersHandler) UpdateUser(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "User")
	if err != nil {
		return err
	}
	var req dto.UpdateProfileRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	profile, err := h.accounts.UpdateUser(c.UserContext(), caller, id, service.ProfileUpdateInput{
		FullName:  req.FullName,
		Phone:     req.Phone,
		Location:  req.Location,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		return err
	}
	return response.Success(c, profileResponse(profile))
}
