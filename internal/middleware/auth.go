package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"yen-network/internal/auth"
	"yen-network/internal/domain"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID = "user_id"
	ContextRole   = "user_role"
)

var (
	// ErrMissingAuthHeader means no Authorization header was sent.
	ErrMissingAuthHeader = errors.New("missing Authorization header")
	// ErrMalformedAuthHeader means the header is not "Bearer <token>".
	ErrMalformedAuthHeader = errors.New("malformed Authorization header")
)

// Auth rejects requests without a valid bearer token and stores the
// token's user id and role in the context.
func Auth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return authenticate(tokens, false)
}

// QueryTokenAuth is Auth that also accepts the token as a "token" query
// parameter, for WebSocket clients that cannot set headers.
func QueryTokenAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return authenticate(tokens, true)
}

func authenticate(tokens *auth.TokenIssuer, allowQuery bool) gin.HandlerFunc {
	if tokens == nil {
		panic("TokenIssuer cannot be nil for Auth middleware")
	}

	return func(c *gin.Context) {
		tokenStr, err := extractToken(c)
		if err != nil && allowQuery {
			if q := c.Query("token"); q != "" {
				tokenStr, err = q, nil
			}
		}
		if err != nil {
			logrus.WithError(err).WithField("path", c.FullPath()).Debug("Auth middleware: no usable token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided or invalid format"})
			return
		}

		claims, err := tokens.Verify(tokenStr)
		if err != nil {
			logCtx := logrus.WithError(err)
			if errors.Is(err, auth.ErrTokenExpired) {
				logCtx.Warn("Auth middleware: token expired")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired. Please login again."})
				return
			}
			logCtx.Warn("Auth middleware: invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token. Please login again."})
			return
		}

		setIdentity(c, claims)
		logrus.WithField("user_id", claims.UserID).Debug("Auth middleware: user authenticated via JWT")
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and lets
// every request through regardless.
func OptionalAuth(tokens *auth.TokenIssuer) gin.HandlerFunc {
	if tokens == nil {
		panic("TokenIssuer cannot be nil for OptionalAuth middleware")
	}

	return func(c *gin.Context) {
		if tokenStr, err := extractToken(c); err == nil {
			if claims, err := tokens.Verify(tokenStr); err == nil {
				setIdentity(c, claims)
			}
		}
		c.Next()
	}
}

// RequireCapability must run after Auth. It rejects roles lacking capability.
func RequireCapability(capability domain.Capability) gin.HandlerFunc {
	return requireCapability(capability, "Forbidden")
}

// RequireAdmin must run after Auth. It admits admins only.
func RequireAdmin() gin.HandlerFunc {
	return requireCapability(domain.CapViewAdmin, "Admins only")
}

func requireCapability(capability domain.Capability, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok || !role.Can(capability) {
			logrus.WithFields(logrus.Fields{
				"user_id":    c.GetString(ContextUserID),
				"role":       role,
				"capability": capability,
			}).Warn("Access denied: missing capability")
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": message})
			return
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(ContextUserID, claims.UserID)
	c.Set(ContextRole, claims.Role)
}

// CurrentUserID returns the authenticated user id, if any.
func CurrentUserID(c *gin.Context) (string, bool) {
	id := c.GetString(ContextUserID)
	return id, id != ""
}

// CurrentRole returns the authenticated role, if any.
func CurrentRole(c *gin.Context) (domain.Role, bool) {
	v, ok := c.Get(ContextRole)
	if !ok {
		return "", false
	}
	role, ok := v.(domain.Role)
	return role, ok
}

// extractToken pulls the token out of an "Authorization: Bearer <token>" header.
func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
		return "", ErrMalformedAuthHeader
	}
	return strings.TrimSpace(parts[1]), nil
}
