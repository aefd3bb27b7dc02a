package http

import (
	"context"
	"net/http"
	"strings"

	"exsys/internal/domain"
	"exsys/internal/infra/auth/access"

	"github.com/gin-gonic/gin"
)

const principalContextKey = "principal"

const (
	msgInvalidToken    = "Access denied. Invalid token."
	msgUnconfigured    = "Endpoint not configured for authentication"
	msgAgentsOnly      = "Access denied. Only agents can access this resource."
	msgAdminsOnly      = "Access denied. Only administrators can access this resource."
	msgAgentsAndAdmins = "Access denied. Only agents and administrators can access this resource."
)

// gate is the single authorization chokepoint. It runs as engine-level
// middleware so it also covers requests that match no registered route;
// an API path nobody classified is denied, not passed through.
func (s *Server) gate(c *gin.Context) {
	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	class := s.classifier.Classify(c.Request.Method, c.Request.URL.Path)
	switch class {
	case access.Public:
		c.Next()
		return
	case access.Unclassified:
		if !strings.HasPrefix(c.Request.URL.Path, access.APIRoot) {
			c.Next()
			return
		}
		c.Abort()
		writeDenial(c, msgUnconfigured)
		return
	}

	principal, ok := s.authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if !ok {
		c.Abort()
		writeDenial(c, msgInvalidToken)
		return
	}

	switch class {
	case access.AgentOnly:
		if !principal.IsAgent() {
			c.Abort()
			writeDenial(c, msgAgentsOnly)
			return
		}
	case access.AdminOnly:
		if !principal.IsAdmin() {
			c.Abort()
			writeDenial(c, msgAdminsOnly)
			return
		}
	case access.AgentOrAdmin:
		if !principal.IsAgent() && !principal.IsAdmin() {
			c.Abort()
			writeDenial(c, msgAgentsAndAdmins)
			return
		}
	}

	c.Set(principalContextKey, *principal)
	c.Next()
}

// authenticate resolves the caller from the Authorization header. Every
// failure mode collapses to a single "no": the response never reveals
// whether the token was malformed, the account unknown, or disabled.
func (s *Server) authenticate(ctx context.Context, authorization string) (*domain.Principal, bool) {
	if s.verifier == nil || s.directory == nil {
		return nil, false
	}
	subject, ok := s.verifier.Subject(authorization)
	if !ok {
		return nil, false
	}
	principal, err := s.directory.FindByEmail(ctx, subject)
	if err != nil || principal == nil {
		return nil, false
	}
	if principal.Status != domain.StatusActive {
		return nil, false
	}
	return principal, true
}

func getPrincipal(c *gin.Context) (domain.Principal, bool) {
	raw, ok := c.Get(principalContextKey)
	if !ok {
		return domain.Principal{}, false
	}
	principal, ok := raw.(domain.Principal)
	return principal, ok
}
