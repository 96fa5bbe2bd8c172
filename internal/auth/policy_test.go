package auth

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPolicyDecide(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		method string
		path   string
		want   Rule
	}{
		{http.MethodPost, "/api/auth/login", RulePublic},
		{http.MethodPost, "/api/auth/register", RulePublic},
		{http.MethodGet, "/api/auth/session", RuleProtected},
		{http.MethodPut, "/api/auth/password", RuleProtected},
		{http.MethodGet, "/api/categories", RuleOptional},
		{http.MethodGet, "/api/providers", RuleOptional},
		{http.MethodGet, "/api/providers/abc", RuleOptional},
		{http.MethodGet, "/api/providers/abc/certifications", RuleOptional},
		{http.MethodHead, "/api/projects", RuleOptional},
		{http.MethodGet, "/api/projects/", RuleOptional},
		{http.MethodPost, "/api/projects", RuleProtected},
		{http.MethodPut, "/api/providers/abc", RuleProtected},
		{http.MethodGet, "/api/projectsx", RuleProtected},
		{http.MethodGet, "/api/messages", RuleProtected},
		{http.MethodGet, "/api/notifications", RuleProtected},
		{http.MethodGet, "/api/users/abc", RuleProtected},
		{http.MethodGet, "/api/authz", RuleProtected},
		{"get", "/api/categories", RuleOptional},
		{http.MethodPost, "/api/auth/LOGIN", RulePublic},
		{http.MethodPost, "/API/Auth/Login/", RulePublic},
		{http.MethodGet, "/API/Providers", RuleOptional},
		{http.MethodPost, "/API/Projects", RuleProtected},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Decide(tc.method, tc.path))
		})
	}
}

func TestRuleString(t *testing.T) {
	assert.Equal(t, "public", RulePublic.String())
	assert.Equal(t, "optional", RuleOptional.String())
	assert.Equal(t, "protected", RuleProtected.String())
}
