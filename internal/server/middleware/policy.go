package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mytodoapp/todo/internal/apperrors"
	"github.com/mytodoapp/todo/internal/auth/authctx"
	"github.com/mytodoapp/todo/internal/domain"
)

// PolicyRule maps a route prefix to its role requirement.
type PolicyRule struct {
	// Prefix is matched against the request path with strings.HasPrefix.
	Prefix string
	// Public allows the route without a principal.
	Public bool
	// Roles is the set of roles allowed. Empty with Public false means any
	// authenticated principal.
	Roles []domain.Role
}

// AccessPolicy is an ordered rule table evaluated top to bottom; the first
// prefix match wins. Requests that match no rule fall through to the
// catch-all requirement: any authenticated principal.
type AccessPolicy struct {
	rules []PolicyRule
}

// NewAccessPolicy creates a policy from an ordered rule list.
func NewAccessPolicy(rules []PolicyRule) *AccessPolicy {
	return &AccessPolicy{rules: rules}
}

// DefaultAccessPolicy is the route table of the todo service.
func DefaultAccessPolicy() *AccessPolicy {
	return NewAccessPolicy([]PolicyRule{
		{Prefix: "/api/auth", Public: true},
		{Prefix: "/api/health", Public: true},
		{Prefix: "/api/users", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/tasks", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}},
	})
}

// Middleware returns the Gin middleware enforcing the policy. Decision:
// no principal on a non-public route rejects 401; a principal whose role
// is outside the requirement set rejects 403; everything else passes.
func (p *AccessPolicy) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rule, matched := p.match(c.Request.URL.Path)
		if matched && rule.Public {
			c.Next()
			return
		}

		principal, ok := authctx.Get(c.Request.Context())
		if !ok {
			abortWith(c, apperrors.Unauthorized(""))
			return
		}

		// Catch-all and prefix rules without roles admit any principal.
		if !matched || len(rule.Roles) == 0 {
			c.Next()
			return
		}

		for _, r := range rule.Roles {
			if principal.Role == r {
				c.Next()
				return
			}
		}
		abortWith(c, apperrors.Forbidden(""))
	}
}

// Allows reports the policy decision for a path and an optional role.
// A nil role means anonymous.
func (p *AccessPolicy) Allows(path string, role *domain.Role) bool {
	rule, matched := p.match(path)
	if matched && rule.Public {
		return true
	}
	if role == nil {
		return false
	}
	if !matched || len(rule.Roles) == 0 {
		return true
	}
	for _, r := range rule.Roles {
		if *role == r {
			return true
		}
	}
	return false
}

func (p *AccessPolicy) match(path string) (PolicyRule, bool) {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule, true
		}
	}
	return PolicyRule{}, false
}

func abortWith(c *gin.Context, err *apperrors.AppError) {
	c.AbortWithStatusJSON(err.HTTPStatus, err.ToResponse())
}
