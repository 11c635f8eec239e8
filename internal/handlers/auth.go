package handlers

import (
	"errors"
	"net/http"

	"machine_maintenance/internal/models"
	"machine_maintenance/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required"` // Operator | Engineer | Manager
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// userPayload shapes the public user fields for token responses.
func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":        u.ID,
		"email":     u.Email,
		"full_name": u.FullName,
		"role":      u.Role,
	}
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "Registration payload"
// @Success      200   {object}  map[string]interface{}  "access_token, token_type, user"
// @Failure      400   {object}  map[string]string
// @Router       /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	id, err := h.services.SignUp(service.SignUpParams{
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
		Role:     input.Role,
	})
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_register_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.services.GenerateToken(input.Email, input.Password)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to issue token", "auth_token_failed", err)
		return
	}

	user, err := h.services.GetUser(id)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load user", "auth_get_user_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userPayload(user),
	})
}

// @Summary      Log in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  loginRequest  true  "Credentials"
// @Success      200   {object}  map[string]interface{}  "access_token, token_type, user"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var input loginRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.GenerateToken(input.Email, input.Password)
	if err != nil {
		if h.log != nil {
			h.log.Infow("auth_login_failed", "email", input.Email, "err", err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	userID, _, err := h.services.ParseToken(token)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to issue token", "auth_parse_own_token_failed", err)
		return
	}
	user, err := h.services.GetUser(userID)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load user", "auth_get_user_failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         userPayload(user),
	})
}

// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *Handler) me(c *gin.Context) {
	userID := c.GetInt(ctxUserID)

	user, err := h.services.GetUser(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to load user", "auth_me_failed", err)
		return
	}

	c.JSON(http.StatusOK, userPayload(user))
}
