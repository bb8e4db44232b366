package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"quoteflow/internal/domain/actor"
	"quoteflow/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
)

const ctxActorKey = "actor"

type AuthMiddleware struct {
	tokens *jwt.Service
}

func NewAuthMiddleware(tokens *jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		role, err := actor.NewRole(claims.Role)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxActorKey, actor.New(claims.UserID, role))
		c.Set("jwt_claims", map[string]any{
			"user_id": claims.UserID.String(),
			"role":    claims.Role,
		})
		c.Next()
	}
}

// RequireRole is route-level gating only; commands re-check the acting role
// against the transition table.
func (m *AuthMiddleware) RequireRole(roles ...actor.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		a, ok := GetActor(c)
		if !ok {
			// Should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		for _, r := range roles {
			if a.Is(r) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
		c.Abort()
	}
}

func GetActor(c *gin.Context) (actor.Actor, bool) {
	v, exists := c.Get(ctxActorKey)
	if !exists {
		return actor.Actor{}, false
	}
	a, ok := v.(actor.Actor)
	return a, ok
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
