package router

import (
	"github.com/kumawatvinit/ShopSpot/internal/application"
	"github.com/kumawatvinit/ShopSpot/internal/container"
	"github.com/kumawatvinit/ShopSpot/internal/domain/repository"
	pginfra "github.com/kumawatvinit/ShopSpot/internal/infrastructure/postgres"
	handlers "github.com/kumawatvinit/ShopSpot/internal/interface/http"
	"github.com/kumawatvinit/ShopSpot/internal/router/modules"
)

type Deps struct {
	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Orders     repository.OrderRepository

	Auth    *application.AuthService
	Catalog *application.CatalogService
	Order   *application.OrderService
}

func buildDeps() Deps {
	cfg := container.GetConfig()
	pool := container.GetPGPool()

	users := pginfra.NewUserRepository(pool)
	categories := pginfra.NewCategoryRepository(pool)
	products := pginfra.NewProductRepository(pool)
	orders := pginfra.NewOrderRepository(pool)

	auth := application.NewAuthService(users, container.GetJWT(), cfg.BcryptCost, container.GetLogger())
	auth.Pub = container.GetRabbitPub()
	auth.MailEnabled = cfg.MailSendEnabled
	auth.ES = container.GetES()
	auth.ESUsersIndex = cfg.ESUsersIndex

	catalog := application.NewCatalogService(
		categories,
		products,
		container.GetRedis(),
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetLogger(),
	)

	order := application.NewOrderService(orders, products, users, container.GetPaymentGateway(), container.GetLogger())
	order.Pub = container.GetRabbitPub()
	order.MailEnabled = cfg.MailSendEnabled

	return Deps{
		Users:      users,
		Categories: categories,
		Products:   products,
		Orders:     orders,
		Auth:       auth,
		Catalog:    catalog,
		Order:      order,
	}
}

// InitModules builds all feature modules and registers them with the registry.
// Called once during startup.
func InitModules(r *Registry) {
	deps := buildDeps()
	logger := container.GetLogger()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(deps.Auth, logger), container.GetJWT(), deps.Users))
	r.Add(modules.NewCatalogModule(
		handlers.NewCategoryHandler(deps.Catalog, logger),
		handlers.NewProductHandler(deps.Catalog, logger),
		container.GetJWT(),
		deps.Users,
	))
	r.Add(modules.NewOrderModule(handlers.NewOrderHandler(deps.Order, logger), container.GetJWT(), deps.Users))
}
