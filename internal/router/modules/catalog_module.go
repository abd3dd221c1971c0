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

// CatalogModule wires category and product management. Reads are public;
// writes require an admin.
type CatalogModule struct {
	Categories *handlers.CategoryHandler
	Products   *handlers.ProductHandler
	JWT        *helpers.JWTManager
	Users      repository.UserRepository
}

func NewCatalogModule(ch *handlers.CategoryHandler, ph *handlers.ProductHandler, jwt *helpers.JWTManager, users repository.UserRepository) *CatalogModule {
	return &CatalogModule{Categories: ch, Products: ph, JWT: jwt, Users: users}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())

	rg.GET("/category/categories", readLimiter, m.Categories.List)
	rg.GET("/category/single-category/:slug", readLimiter, m.Categories.Get)
	rg.GET("/product/products", readLimiter, m.Products.List)
	rg.GET("/product/single-product/:slug", readLimiter, m.Products.Get)

	admin := rg.Group("/")
	admin.Use(middleware.RequireSignin(m.JWT), middleware.RequireAdmin(m.Users))
	{
		admin.POST("/category/create-category", m.Categories.Create)
		admin.PUT("/category/update-category/:id", m.Categories.Update)
		admin.DELETE("/category/delete-category/:id", m.Categories.Delete)

		admin.POST("/product/create-product", m.Products.Create)
		admin.PUT("/product/update-product/:pid", m.Products.Update)
		admin.DELETE("/product/delete-product/:pid", m.Products.Delete)
	}
}
