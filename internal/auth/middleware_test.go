package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/serviceconnect/api/internal/domain"
	apperrors "github.com/serviceconnect/api/pkg/util"
)

type AccessPolicyTestSuite struct {
	suite.Suite
	tokens   *TokenManager
	app      *fiber.App
	calls    int
	identity Identity
	hasID    bool
}

func TestAccessPolicySuite(t *testing.T) {
	suite.Run(t, new(AccessPolicyTestSuite))
}

func (s *AccessPolicyTestSuite) SetupTest() {
	s.tokens = NewTokenManager("test-secret", 15)
	s.calls = 0
	s.identity = Identity{}
	s.hasID = false

	s.app = fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).JSON(fiber.Map{"success": false, "message": de.Message})
	}})
	api := s.app.Group("/api", NewAccessPolicy(s.tokens, DefaultPolicy(), nil, nil).Handle)

	handler := func(c *fiber.Ctx) error {
		s.calls++
		s.identity, s.hasID = IdentityFromContext(c.UserContext())
		return c.JSON(fiber.Map{"success": true})
	}
	api.Get("/projects", handler)
	api.Post("/projects", handler)
	api.Post("/auth/login", handler)
	api.Get("/auth/session", handler)
	api.Get("/messages", handler)
	api.Post("/certifications", RequireProvider(), handler)
}

func (s *AccessPolicyTestSuite) do(method, path, authHeader string) (*http.Response, map[string]any) {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := s.app.Test(req)
	require.NoError(s.T(), err)
	var body map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp, body
}

func (s *AccessPolicyTestSuite) token(sub string, role domain.Role) string {
	tok, _, err := s.tokens.GenerateToken(sub, role)
	require.NoError(s.T(), err)
	return "Bearer " + tok
}

func (s *AccessPolicyTestSuite) TestProtectedWithoutCredential() {
	for _, path := range []string{"/api/messages", "/api/auth/session"} {
		resp, body := s.do(http.MethodGet, path, "")
		assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(s.T(), MsgAuthenticationRequired, body["message"])
	}
	resp, _ := s.do(http.MethodPost, "/api/projects", "")
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(s.T(), s.calls, "handler must not run")
}

func (s *AccessPolicyTestSuite) TestExpiredCredential() {
	issued := time.Now().Add(-time.Hour)
	s.tokens.now = fixedClock(issued)
	expired := s.token("user-1", domain.RoleClient)
	s.tokens.now = time.Now

	resp, body := s.do(http.MethodGet, "/api/messages", expired)
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(s.T(), MsgInvalidToken, body["message"])
	assert.Zero(s.T(), s.calls)
}

func (s *AccessPolicyTestSuite) TestBadSignatureCredential() {
	other, _, err := NewTokenManager("other-secret", 15).GenerateToken("user-1", domain.RoleClient)
	require.NoError(s.T(), err)

	resp, body := s.do(http.MethodGet, "/api/messages", "Bearer "+other)
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(s.T(), MsgInvalidToken, body["message"])
	assert.Zero(s.T(), s.calls)
}

func (s *AccessPolicyTestSuite) TestNonBearerSchemeIsInvalid() {
	resp, body := s.do(http.MethodGet, "/api/messages", "Basic dXNlcjpwYXNz")
	assert.Equal(s.T(), http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(s.T(), MsgInvalidToken, body["message"])
}

func (s *AccessPolicyTestSuite) TestValidCredentialAttachesIdentity() {
	resp, _ := s.do(http.MethodGet, "/api/messages", s.token("user-7", domain.RoleProvider))
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), 1, s.calls)
	require.True(s.T(), s.hasID)
	assert.Equal(s.T(), "user-7", s.identity.SubjectID)
	assert.True(s.T(), s.identity.IsProvider())
}

func (s *AccessPolicyTestSuite) TestPublicGETWithoutCredential() {
	resp, _ := s.do(http.MethodGet, "/api/projects", "")
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), 1, s.calls)
	assert.False(s.T(), s.hasID)
}

func (s *AccessPolicyTestSuite) TestPublicGETIgnoresInvalidCredential() {
	resp, _ := s.do(http.MethodGet, "/api/projects", "Bearer garbage")
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.False(s.T(), s.hasID)
}

func (s *AccessPolicyTestSuite) TestPublicGETAttachesValidCredential() {
	s.do(http.MethodGet, "/api/projects", s.token("user-3", domain.RoleClient))
	require.True(s.T(), s.hasID)
	assert.Equal(s.T(), "user-3", s.identity.SubjectID)
}

func (s *AccessPolicyTestSuite) TestAuthPOSTNeedsNoCredential() {
	resp, _ := s.do(http.MethodPost, "/api/auth/login", "")
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), 1, s.calls)
}

func (s *AccessPolicyTestSuite) TestRoleGuard() {
	resp, _ := s.do(http.MethodPost, "/api/certifications", s.token("user-1", domain.RoleClient))
	assert.Equal(s.T(), http.StatusForbidden, resp.StatusCode)
	assert.Zero(s.T(), s.calls)

	resp, _ = s.do(http.MethodPost, "/api/certifications", s.token("user-2", domain.RoleProvider))
	assert.Equal(s.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(s.T(), 1, s.calls)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "", bearerToken(""))
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer   abc "))
	assert.Equal(t, "", bearerToken("Bearer "))
	assert.Equal(t, "Token abc", bearerToken("Token abc"))
}

type stubVerifier struct{ err error }

func (s stubVerifier) ParseToken(string) (*Claims, error) { return nil, s.err }

func TestAccessPolicyNeverSurfacesVerifierErrorsAs500(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus)
	}})
	app.Use(NewAccessPolicy(stubVerifier{err: errors.New("boom")}, DefaultPolicy(), nil, nil).Handle)
	app.Get("/api/messages", func(c *fiber.Ctx) error { return nil })

	req := httptest.NewRequest(http.MethodGet, "/api/messages", nil)
	req.Header.Set("Authorization", "Bearer x")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
