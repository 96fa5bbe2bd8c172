package auth

import (
	"net/http"
	"strings"
)

// Rule is the access decision for one request shape.
type Rule int

const (
	// RuleProtected requires a present, valid credential.
	RuleProtected Rule = iota
	// RulePublic skips credential handling entirely.
	RulePublic
	// RuleOptional verifies a credential when one is presented but never denies.
	RuleOptional
)

func (r Rule) String() string {
	switch r {
	case RulePublic:
		return "public"
	case RuleOptional:
		return "optional"
	default:
		return "protected"
	}
}

// Policy maps request method and path to a Rule.
//
// Only POST is public under the auth namespace; other methods there (the
// session lookup, password change) need a credential like any other path.
type Policy struct {
	AuthPrefix string
	PublicGET  []string
}

// DefaultPolicy is the API's access table.
func DefaultPolicy() Policy {
	return Policy{
		AuthPrefix: "/api/auth",
		PublicGET: []string{
			"/api/categories",
			"/api/providers",
			"/api/projects",
		},
	}
}

// Decide returns the rule for method and path.
func (p Policy) Decide(method, path string) Rule {
	path = normalizePath(path)
	method = strings.ToUpper(method)

	if hasPathPrefix(path, p.AuthPrefix) {
		if method == http.MethodPost {
			return RulePublic
		}
		return RuleProtected
	}

	if method == http.MethodGet || method == http.MethodHead {
		for _, prefix := range p.PublicGET {
			if hasPathPrefix(path, prefix) {
				return RuleOptional
			}
		}
	}
	return RuleProtected
}

// hasPathPrefix matches whole segments: "/api/projects" matches
// "/api/projects/1" but not "/api/projectsx".
func hasPathPrefix(path, prefix string) bool {
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// normalizePath folds case and trailing slashes the same way the router does.
func normalizePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	path = strings.ToLower(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return path
}
