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

// OrderModule wires payment and order tracking. Everything here requires a
// signed-in user; status updates and the full order list require an admin.
type OrderModule struct {
	Handler *handlers.OrderHandler
	JWT     *helpers.JWTManager
	Users   repository.UserRepository
}

func NewOrderModule(h *handlers.OrderHandler, jwt *helpers.JWTManager, users repository.UserRepository) *OrderModule {
	return &OrderModule{Handler: h, JWT: jwt, Users: users}
}

func (m *OrderModule) Register(rg *gin.RouterGroup) {
	signed := rg.Group("/")
	signed.Use(middleware.RequireSignin(m.JWT))
	signed.Use(middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUserID(), nil))
	{
		signed.GET("/product/braintree/token", m.Handler.ClientToken)
		signed.POST("/product/braintree/payment", m.Handler.Checkout)
		signed.GET("/auth/orders", m.Handler.Orders)
	}

	admin := rg.Group("/")
	admin.Use(middleware.RequireSignin(m.JWT), middleware.RequireAdmin(m.Users))
	{
		admin.GET("/auth/all-orders", m.Handler.AllOrders)
		admin.PUT("/auth/order-status/:id", m.Handler.UpdateStatus)
	}
}
