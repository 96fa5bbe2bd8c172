package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/serviceconnect/api/internal/observability"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

// Messages returned to callers that fail the access policy.
const (
	MsgAuthenticationRequired = "Authentication required"
	MsgInvalidToken           = "Invalid or expired token"
)

// AccessPolicy gates every API request before it reaches a handler.
type AccessPolicy struct {
	tokens  TokenVerifier
	policy  Policy
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewAccessPolicy constructs middleware.
func NewAccessPolicy(tokens TokenVerifier, policy Policy, logger *zap.Logger, metrics *observability.Metrics) *AccessPolicy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccessPolicy{tokens: tokens, policy: policy, logger: logger, metrics: metrics}
}

// Handle enforces the policy table and attaches the caller's Identity.
func (m *AccessPolicy) Handle(c *fiber.Ctx) error {
	rule := m.policy.Decide(c.Method(), c.Path())
	if rule == RulePublic {
		return c.Next()
	}

	claims, err := m.tokens.ParseToken(bearerToken(c.Get(fiber.HeaderAuthorization)))
	if err != nil {
		if rule == RuleOptional {
			return c.Next()
		}
		reason := "invalid_token"
		message := MsgInvalidToken
		if errors.Is(err, ErrMissingToken) {
			reason = "missing_token"
			message = MsgAuthenticationRequired
		}
		m.metrics.RecordAuthFailure(reason)
		m.logger.Debug("access denied",
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("reason", reason))
		return apperrors.NewUnauthorized(message)
	}

	attachIdentity(c, IdentityFromClaims(claims))
	return c.Next()
}

// bearerToken extracts the credential from an Authorization header. A header
// with another scheme yields a non-empty garbage token so it fails as invalid
// rather than missing.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	if header == "" || strings.EqualFold(header, "Bearer") {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return header
	}
	return strings.TrimSpace(parts[1])
}
