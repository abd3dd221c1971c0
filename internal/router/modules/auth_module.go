package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kumawatvinit/ShopSpot/internal/container"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	handlers "github.com/kumawatvinit/ShopSpot/internal/interface/http"
	"github.com/kumawatvinit/ShopSpot/internal/interface/middleware"
	"github.com/kumawatvinit/ShopSpot/pkg/helpers"
)

// AuthModule wires the account flows.
// Public: POST /auth/register, POST /auth/login, POST /auth/forgot-password
// Signed in: PUT /auth/profile, GET /auth/user-auth
// Admin: GET /auth/admin-auth, GET /auth/all-users, GET /auth/search-users,
// PUT /auth/change-role/:id
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager, users repository.UserRepository) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt, Users: users}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential endpoints get tight per-IP limits; local traffic bypasses.
	registerLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.POST("/auth/register", registerLimiter, m.Handler.Register)
	rg.POST("/auth/login", loginLimiter, m.Handler.Login)
	rg.POST("/auth/forgot-password", forgotLimiter, m.Handler.ForgotPassword)

	signed := rg.Group("/")
	signed.Use(middleware.RequireSignin(m.JWT))
	signed.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		signed.PUT("/auth/profile", m.Handler.UpdateProfile)
		signed.GET("/auth/user-auth", m.Handler.UserAuth)
	}

	admin := rg.Group("/")
	admin.Use(middleware.RequireSignin(m.JWT), middleware.RequireAdmin(m.Users))
	{
		admin.GET("/auth/admin-auth", m.Handler.AdminAuth)
		admin.GET("/auth/all-users", m.Handler.AllUsers)
		admin.GET("/auth/search-users", m.Handler.SearchUsers)
		admin.PUT("/auth/change-role/:id", m.Handler.ChangeRole)
	}
}
