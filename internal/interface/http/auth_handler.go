package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/internal/interface/middleware"
	"github.com/kumawatvinit/ShopSpot/pkg/response"
	"github.com/kumawatvinit/ShopSpot/pkg/validation"
)

// AuthHandler exposes the account flows. Field presence for these flows is
// checked in the service in a fixed order (first failure wins), so the
// request structs carry no binding tags.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Answer   string `json:"answer"`
}

// Register POST /register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		Answer:   req.Answer,
	})
	if err != nil {
		fail(c, err, "Error in registering user")
		return
	}
	response.Success(c, http.StatusCreated, u, "User registered successfully", nil)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err, "Error in logging user")
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"name":    u.Name,
			"email":   u.Email,
			"phone":   u.Phone,
			"address": u.Address,
			"role":    u.Role,
		},
		"token": token,
	}, "Login successful", nil)
}

type forgotPasswordRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Answer   string `json:"answer"`
}

// ForgotPassword POST /forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	if err := h.Svc.ForgotPassword(c.Request.Context(), req.Email, req.Password, req.Answer); err != nil {
		fail(c, err, "Error in resetting password")
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Password reset successful", nil)
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

// UpdateProfile PUT /update-profile (signed in)
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		fail(c, err, "Error in updating profile")
		return
	}
	response.Success(c, http.StatusOK, u, "Profile updated successfully", nil)
}

// UserAuth GET /userauth (signed in)
func (h *AuthHandler) UserAuth(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"ok": true}, "User authenticated successfully", nil)
}

// AdminAuth GET /adminauth (admin)
func (h *AuthHandler) AdminAuth(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"ok": true}, "Admin authenticated successfully", nil)
}

// AllUsers GET /all-users (admin)
func (h *AuthHandler) AllUsers(c *gin.Context) {
	users, err := h.Svc.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err, "Error in getting all users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": users}, "Get all users successfully", nil)
}

type changeRoleRequest struct {
	Role string `json:"role"`
}

// ChangeRole PUT /change-role/:id (admin)
func (h *AuthHandler) ChangeRole(c *gin.Context) {
	var req changeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	u, err := h.Svc.ChangeRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		fail(c, err, "Error in changing role")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": u}, "Role changed successfully", nil)
}

// SearchUsers GET /users/search?q=&size= (admin)
func (h *AuthHandler) SearchUsers(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchUsers(c.Request.Context(), q, size)
	if err != nil {
		fail(c, err, "Error in searching users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": hits}, "Users search", nil)
}

// caller id is available for handlers that need it; UpdateProfile
// deliberately does not use it (see service).
func callerID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
