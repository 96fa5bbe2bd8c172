package handlers

import (
	"github.com/serviceconnect/api/internal/api/dto"
	"github.com/serviceconnect/api/internal/domain"
)

func profileResponse(p *domain.Profile) dto.ProfileResponse {
	return dto.ProfileResponse{
		ID:        p.ID,
		Email:     p.Email,
		FullName:  p.FullName,
		Role:      p.Role,
		Phone:     p.Phone,
		Location:  p.Location,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func publicProfileResponse(p *domain.Profile) dto.PublicProfileResponse {
	return dto.PublicProfileResponse{
		ID:        p.ID,
		FullName:  p.FullName,
		Role:      p.Role,
		Location:  p.Location,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		CreatedAt: p.CreatedAt,
	}
}

func providerResponse(p *domain.Provider) dto.ProviderResponse {
	resp := dto.ProviderResponse{
		ID:           p.ID,
		ProfileID:    p.ProfileID,
		BusinessName: p.BusinessName,
		Description:  p.Description,
		CategoryID:   p.CategoryID,
		HourlyRate:   p.HourlyRate,
		Services:     p.Services,
		Rating:       p.Rating,
		ReviewCount:  p.ReviewCount,
		IsVerified:   p.IsVerified,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if resp.Services == nil {
		resp.Services = []string{}
	}
	if p.Profile != nil {
		profile := publicProfileResponse(p.Profile)
		resp.Profile = &profile
	}
	return resp
}

func optionalProviderResponse(p *domain.Provider) *dto.ProviderResponse {
	if p == nil {
		return nil
	}
	resp := providerResponse(p)
	return &resp
}

func projectResponse(p *domain.Project) dto.ProjectResponse {
	return dto.ProjectResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		CategoryID:  p.CategoryID,
		Title:       p.Title,
		Description: p.Description,
		BudgetMin:   p.BudgetMin,
		BudgetMax:   p.BudgetMax,
		Location:    p.Location,
		Deadline:    p.Deadline,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func messageResponse(m *domain.Message) dto.MessageResponse {
	return dto.MessageResponse{
		ID:          m.ID,
		SenderID:    m.SenderID,
		RecipientID: m.RecipientID,
		ProjectID:   m.ProjectID,
		Content:     m.Content,
		IsRead:      m.IsRead,
		CreatedAt:   m.CreatedAt,
	}
}

func notificationResponse(n *domain.Notification) dto.NotificationResponse {
	return dto.NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func certificationResponse(c *domain.Certification) dto.CertificationResponse {
	return dto.CertificationResponse{
		ID:            c.ID,
		ProviderID:    c.ProviderID,
		Name:          c.Name,
		Issuer:        c.Issuer,
		IssuedAt:      c.IssuedAt,
		ExpiresAt:     c.ExpiresAt,
		CredentialURL: c.CredentialURL,
		CreatedAt:     c.CreatedAt,
	}
}

func categoryResponse(c *domain.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, Slug: c.Slug, Description: c.Description}
}

func mapSlice[T any, R any](items []T, fn func(*T) R) []R {
	out := make([]R, 0, len(items))
	for i := range items {
		out = append(out, fn(&items[i]))
	}
	return out
}
