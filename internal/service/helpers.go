package service

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/serviceconnect/api/pkg/util"
)

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

// optionalID trims s and rejects values that are not UUIDs, naming field in the error.
func optionalID(s *string, field string) (*string, error) {
	v := trimmedOrNil(s)
	if v == nil {
		return nil, nil
	}
	if _, err := uuid.Parse(*v); err != nil {
		return nil, apperrors.NewValidationError(field + " must be a valid id")
	}
	return v, nil
}

// cleanServices trims, drops empties and de-duplicates case-insensitively, keeping first spelling.
func cleanServices(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}

func preview(s string, max int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "…"
}
