package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/serviceconnect/api/internal/auth"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// callerIdentity returns the verified caller or a 401.
func callerIdentity(c *fiber.Ctx) (auth.Identity, error) {
	identity, ok := auth.CurrentIdentity(c)
	if !ok {
		return auth.Identity{}, apperrors.NewUnauthorized(auth.MsgAuthenticationRequired)
	}
	return identity, nil
}

// pathID reads a UUID path parameter. Anything that is not a UUID cannot
// name an existing row, so it is reported as a missing resource.
func pathID(c *fiber.Ctx, resource string) (string, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return "", apperrors.NewNotFound(resource)
	}
	return id.String(), nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	return nil
}

// parsePage turns page/pageSize query values into limit and offset.
func parsePage(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	if page < 1 {
		page = 1
	}
	size := parseInt(c.Query("pageSize"), defaultPageSize)
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return size, (page - 1) * size
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return def
	}
	return parsed
}

func parseBoolQuery(c *fiber.Ctx, key string) *bool {
	val := c.Query(key)
	if val == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}
	return &parsed
}

func optionalQuery(c *fiber.Ctx, key string) *string {
	val := strings.TrimSpace(c.Query(key))
	if val == "" {
		return nil
	}
	return &val
}

func splitCSV(val string) []string {
	if val == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
