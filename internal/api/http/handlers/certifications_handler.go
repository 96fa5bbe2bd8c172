package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// CertificationsHandler manages the calling provider's certifications.
type CertificationsHandler struct {
	certifications *service.CertificationService
}

// NewCertificationsHandler constructs handler.
func NewCertificationsHandler(certs *service.CertificationService) *CertificationsHandler {
	return &CertificationsHandler{certifications: certs}
}

// List handles GET /api/certifications.
func (h *CertificationsHandler) List(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	certs, err := h.certifications.ListMine(c.UserContext(), caller)
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(certs, certificationResponse))
}

// Create handles POST /api/certifications.
func (h *CertificationsHandler) Create(c *fiber.Ctx) error {
	var req dto.CertificationRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.Name == "" || req.Issuer == "" {
		return apperrors.NewValidationError("name and issuer are required")
	}
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	cert, err := h.certifications.Create(c.UserContext(), caller, service.CertificationInput{
		Name:          req.Name,
		Issuer:        req.Issuer,
		IssuedAt:      req.IssuedAt,
		ExpiresAt:     req.ExpiresAt,
		CredentialURL: req.CredentialURL,
	})
	if err != nil {
		return err
	}
	return response.Created(c, certificationResponse(cert))
}

// Delete handles DELETE /api/certifications/:id.
func (h *CertificationsHandler) Delete(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Certification")
	if err != nil {
		return err
	}
	if err := h.certifications.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}
	return response.Message(c, "Certification deleted")
}
