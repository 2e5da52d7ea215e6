package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopkartio/shopkart-backend/api/controllers"
	"github.com/shopkartio/shopkart-backend/api/middleware"
	authsvc "github.com/shopkartio/shopkart-backend/internal/auth"
	"github.com/shopkartio/shopkart-backend/internal/cart"
	"github.com/shopkartio/shopkart-backend/internal/catalog"
	checkoutsvc "github.com/shopkartio/shopkart-backend/internal/checkout"
	"github.com/shopkartio/shopkart-backend/internal/orders"
	"github.com/shopkartio/shopkart-backend/internal/reviews"
	"github.com/shopkartio/shopkart-backend/internal/users"
	"github.com/shopkartio/shopkart-backend/pkg/auth/session"
	"github.com/shopkartio/shopkart-backend/pkg/config"
	"github.com/shopkartio/shopkart-backend/pkg/db"
	"github.com/shopkartio/shopkart-backend/pkg/logger"
	"github.com/shopkartio/shopkart-backend/pkg/redis"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	DB             *db.Client
	Redis          *redis.Client
	SessionChecker session.AccessSessionChecker
	MetricsHandler http.Handler

	AuthService     authsvc.Service
	RegisterService authsvc.RegisterService
	UsersService    users.Service
	CatalogService  catalog.Service
	ReviewsService  reviews.Service
	CartStore       *cart.Store
	CheckoutService checkoutsvc.Service
	OrdersService   orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readinessChecks(deps)))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Public storefront reads.
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(deps.CatalogService, logg))
			r.Get("/{productId}/reviews", controllers.ReviewList(deps.ReviewsService, logg))
			r.With(middleware.Auth(cfg.JWT, deps.SessionChecker, logg)).
				Post("/{productId}/reviews", controllers.ReviewAdd(deps.ReviewsService, logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
				Post("/login", controllers.AuthLogin(deps.AuthService, logg))
			r.Post("/register", controllers.AuthRegister(deps.RegisterService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))
				r.Post("/logout", controllers.AuthLogout(deps.AuthService, logg))
				r.Get("/me", controllers.AuthMe(deps.UsersService, logg))
			})
		})

		// Everything below requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(deps.CartStore, logg))
				r.Delete("/", controllers.CartClear(deps.CartStore, logg))
				r.Post("/items", controllers.CartAddItem(deps.CartStore, deps.CatalogService, logg))
				r.Delete("/items/{productId}", controllers.CartRemoveItem(deps.CartStore, logg))
			})

			r.Post("/checkout", controllers.Checkout(deps.CheckoutService, deps.CartStore, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.BuyerOrders(deps.OrdersService, logg))
				r.Get("/{orderId}", controllers.OrderDetail(deps.OrdersService, logg))
			})

			r.Route("/seller", func(r chi.Router) {
				r.Use(middleware.RequireAnyRole(logg, "seller", "admin"))
				r.Route("/products", func(r chi.Router) {
					r.Get("/", controllers.SellerProductList(deps.CatalogService, logg))
					r.Post("/", controllers.SellerCreateProduct(deps.CatalogService, logg))
					r.Patch("/{productId}", controllers.SellerUpdateProduct(deps.CatalogService, logg))
					r.Delete("/{productId}", controllers.SellerDeleteProduct(deps.CatalogService, logg))
				})
				r.Route("/orders", func(r chi.Router) {
					r.Get("/", controllers.SellerOrders(deps.OrdersService, logg))
					r.Patch("/{orderId}/status", controllers.OrderUpdateStatus(deps.OrdersService, logg))
				})
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireRole("admin", logg))
				r.Route("/users", func(r chi.Router) {
					r.Get("/", controllers.AdminUserList(deps.UsersService, logg))
					r.Delete("/{userId}", controllers.AdminUserDelete(deps.UsersService, logg))
				})
			})
		})
	})

	return r
}

func readinessChecks(deps Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if deps.DB != nil {
		checks["postgres"] = deps.DB
	}
	if deps.Redis != nil {
		checks["redis"] = deps.Redis
	}
	return checks
}
