package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/model"
	authService "github.com/vitalrec/health-api/internal/service/auth"
)

const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type AuthMiddleware struct {
	authSvc *authService.Service
}

func NewAuthMiddleware(authSvc *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{authSvc: authSvc}
}

// Authenticate verifies the Bearer token and sets the caller's identity in
// the request context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authSvc.ValidateToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID.String())
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// RequireRole rejects callers whose token carries a different role. The
// response does not say which role the route expects.
func (m *AuthMiddleware) RequireRole(role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if model.Role(c.GetString(ContextRole)) != role {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("access denied"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID extracts the authenticated caller's user ID from the context.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(ContextUserID))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// Role extracts the authenticated caller's role from the context.
func Role(c *gin.Context) model.Role {
	return model.Role(c.GetString(ContextRole))
}
