package handlers

import (
	"net/http"
	"strings"

	"machine_maintenance/internal/models"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	ctxUserID   = "userId"
	ctxUserRole = "userRole"
)

func (h *Handler) userIdMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	userId, role, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(ctxUserID, userId)
	c.Set(ctxUserRole, role)
	c.Next()
}

// requireManager aborts with 403 unless the token carries the Manager role.
// Returns false when the request was already handled.
func (h *Handler) requireManager(c *gin.Context) bool {
	role := c.GetString(ctxUserRole)
	if role != models.RoleManager {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "only managers can update configuration",
		})
		return false
	}
	return true
}
