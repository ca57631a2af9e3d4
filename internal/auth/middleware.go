package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shelfwise/catalog-api/internal/model"
	"github.com/shelfwise/catalog-api/internal/validation"
)

const principalKey = "auth.principal"

// FailureMode says how a denied request is answered: a JSON error or a
// redirect to the login page. It is route-group configuration, not
// handler logic.
type FailureMode struct {
	redirect bool
	location string
}

func Forbid() FailureMode { return FailureMode{} }

func RedirectTo(location string) FailureMode {
	return FailureMode{redirect: true, location: location}
}

// Authenticate resolves the bearer token into a principal. A missing
// header leaves the request anonymous; a malformed or bad token is a
// hard 401.
func Authenticate(tokens *Tokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Set(principalKey, Principal{})
			c.Next()
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			unauthorized(c, "authorization header must be a bearer token")
			return
		}

		p, err := tokens.Verify(raw)
		if err != nil {
			unauthorized(c, "invalid or expired token")
			return
		}

		c.Set(principalKey, p)
		c.Next()
	}
}

// PrincipalFrom returns the request principal, anonymous if the
// authentication middleware did not run.
func PrincipalFrom(c *gin.Context) Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}

// Require authorizes the action before the handler body runs.
func Require(policy Policy, action Action, resource Resource, mode FailureMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)

		switch d := policy.Authorize(p, action, resource); d.Effect {
		case Allow:
			c.Next()
		case DenyUnauthorized:
			deny(c, http.StatusUnauthorized, d.Reason, mode)
		case DenyForbidden:
			deny(c, http.StatusForbidden, d.Reason, mode)
		}
	}
}

// RequireRole gates an area behind a role. Admins pass the librarian
// gate; any assigned role passes the member gate.
func RequireRole(required model.Role, mode FailureMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := PrincipalFrom(c)

		if !p.Authenticated {
			deny(c, http.StatusUnauthorized, "authentication required", mode)
			return
		}
		if !HasRole(p, required) {
			deny(c, http.StatusForbidden, "role "+string(required)+" required", mode)
			return
		}

		c.Next()
	}
}

func deny(c *gin.Context, status int, reason string, mode FailureMode) {
	if mode.redirect {
		c.Redirect(http.StatusFound, mode.location)
		c.Abort()
		return
	}

	code := "FORBIDDEN"
	if status == http.StatusUnauthorized {
		code = "UNAUTHORIZED"
	}

	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: reason,
	})
}

func unauthorized(c *gin.Context, reason string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, validation.ErrorResponse{
		Code:    "UNAUTHORIZED",
		Message: reason,
	})
}
