package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/api/response"
	"github.com/serviceconnect/api/internal/service"
)

// ProvidersHandler exposes the provider directory.
type ProvidersHandler struct {
	providers *service.ProviderService
}

// NewProvidersHandler constructs handler.
func NewProvidersHandler(providers *service.ProviderService) *ProvidersHandler {
	return &ProvidersHandler{providers: providers}
}

// List handles GET /api/providers.
func (h *ProvidersHandler) List(c *fiber.Ctx) error {
	limit, offset := parsePage(c)
	providers, err := h.providers.List(c.UserContext(), service.ProviderListFilter{
		CategoryID: optionalQuery(c, "category"),
		Search:     c.Query("search"),
		Verified:   parseBoolQuery(c, "verified"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(providers, providerResponse))
}

// Get handles GET /api/providers/:id.
func (h *ProvidersHandler) Get(c *fiber.Ctx) error {
	id, err := pathID(c, "Provider")
	if err != nil {
		return err
	}
	provider, err := h.providers.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, providerResponse(provider))
}

// Update handles PUT /api/providers/:id.
func (h *ProvidersHandler) Update(c *fiber.Ctx) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "Provider")
	if err != nil {
		return err
	}
	var req dto.ProviderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	provider, err := h.providers.Update(c.UserContext(), caller, id, service.ProviderUpdateInput{
		BusinessName: req.BusinessName,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		HourlyRate:   req.HourlyRate,
		Services:     req.Services,
	})
	if err != nil {
		return err
	}
	return response.Success(c, providerResponse(provider))
}

// ListCertifications handles GET /api/providers/:id/certifications.
func (h *ProvidersHandler) ListCertifications(c *fiber.Ctx) error {
	id, err := pathID(c, "Provider")
	if err != nil {
		return err
	}
	certs, err := h.providers.ListCertifications(c.UserContext(), id)
	if err != nil {
		return err
	}
	return response.Success(c, mapSlice(certs, certificationResponse))
}
