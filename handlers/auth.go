package handlers

import (
	"net/http"

	"marketplace/middleware"
	"marketplace/models"
	"marketplace/services/user"
	"marketplace/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves sign-up, sign-in and password endpoints.
type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(us user.UserService) *AuthHandler {
	return &AuthHandler{UserService: us}
}

// RegisterHandler handles POST /api/auth/register.
func (h *AuthHandler) RegisterHandler(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, "Registration failed", err)
		return
	}
	getLogger(c).Info("User registered", zap.String("userID", resp.ID))
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /api/auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.UserService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, "Login failed", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PasswordCheckHandler handles POST /api/auth/password/check and returns the
// rule checklist for a candidate password.
func (h *AuthHandler) PasswordCheckHandler(c *gin.Context) {
	var req struct {
		Password string `json:"password"`
	}
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, user.ValidatePassword(req.Password))
}

// LogoutHandler handles POST /api/auth/logout.
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	if err := h.UserService.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		utils.RespondError(c, "Logout failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// ChangePasswordHandler handles PUT /api/auth/password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	var req models.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)
	if err := h.UserService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.RespondError(c, "Failed to change password", err)
		return
	}
	getLogger(c).Info("Password changed", zap.String("userID", userID))
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// MeHandler handles GET /api/auth/me.
func (h *AuthHandler) MeHandler(c *gin.Context) {
	u, err := h.UserService.GetUserByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, "Failed to load account", err)
		return
	}
	c.JSON(http.StatusOK, u)
}
