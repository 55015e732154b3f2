// Package routes wires repositories, services, controllers and middleware
// into the API router.
package routes

import (
	"net/http"
	"strconv"
	"time"

	"github.com/freshmart/api/app/controllers"
	"github.com/freshmart/api/app/models"
	"github.com/freshmart/api/app/repositories"
	"github.com/freshmart/api/app/services"
	"github.com/freshmart/api/config"
	"github.com/freshmart/api/pkg/database"
	"github.com/freshmart/api/pkg/metrics"
	"github.com/freshmart/api/pkg/middleware"
	"github.com/freshmart/api/pkg/reqid"
	"github.com/freshmart/api/pkg/response"
	"github.com/freshmart/api/pkg/router"
)

// New builds the fully wired API router on the given database handle.
func New(db *database.DB) *router.Router {
	users := repositories.NewUserRepository(db)
	categories := repositories.NewCategoryRepository(db)
	products := repositories.NewProductRepository(db)
	orders := repositories.NewOrderRepository(db)

	authService := services.NewAuthService(users, services.NewSMTPMailer())
	userService := services.NewUserService(users)
	catalogService := services.NewCatalogService(categories, products)
	orderService := services.NewOrderService(products, orders, users, db)

	authCtl := controllers.NewAuthController(authService)
	userCtl := controllers.NewUserController(userService)
	categoryCtl := controllers.NewCategoryController(catalogService)
	productCtl := controllers.NewProductController(catalogService)
	orderCtl := controllers.NewOrderController(orderService)

	r := router.New()
	r.Use(
		reqid.Middleware(),
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(middleware.DefaultCORSOptions()),
		metrics.Middleware(),
		middleware.RateLimit(rateLimit()),
	)

	authenticated := middleware.Authenticate(users)
	adminOnly := middleware.RequireRole(models.RoleAdmin)
	userOnly := middleware.RequireRole(models.RoleUser)

	r.Get("/health", "health", func(w http.ResponseWriter, _ *http.Request) {
		response.Message(w, http.StatusOK, "OK")
	})
	r.Get("/metrics", "metrics", metrics.Handler())

	// Public auth routes.
	r.Post("/register", "register", authCtl.Register, middleware.ValidateRegister)
	r.Post("/login", "login", authCtl.Login)
	r.Post("/forgot-password", "forgot-password", authCtl.ForgotPassword)
	r.Patch("/reset-password", "reset-password", authCtl.ResetPassword)

	// Admin routes.
	admin := r.Group("/", authenticated, adminOnly)
	admin.Get("/all-users", "all-users", userCtl.All)
	admin.Post("/create-category", "create-category", categoryCtl.Create)
	admin.Post("/create-product", "create-product", productCtl.Create)
	admin.Patch("/modify-product/{id}", "modify-product", productCtl.Modify)
	admin.Patch("/restock-product/{id}", "restock-product", productCtl.Restock)
	admin.Delete("/delete-product/{id}", "delete-product", productCtl.Delete)

	// Authenticated catalog browsing.
	r.Get("/browse-products", "browse-products", productCtl.Browse, authenticated)
	r.Get("/browse-products/{id}", "product-detail", productCtl.Detail, authenticated)

	// Customer order routes.
	r.Post("/place-order", "place-order", orderCtl.Place, authenticated, userOnly, middleware.ValidateOrder)
	r.Get("/view-my-orders", "view-my-orders", orderCtl.MyOrders, authenticated, userOnly)

	return r
}

// rateLimit reads RATE_LIMIT (requests) and RATE_WINDOW (seconds).
func rateLimit() (int, time.Duration) {
	max, err := strconv.Atoi(config.Get("RATE_LIMIT", "300"))
	if err != nil || max <= 0 {
		max = 300
	}
	window, err := strconv.Atoi(config.Get("RATE_WINDOW", "60"))
	if err != nil || window <= 0 {
		window = 60
	}
	return max, time.Duration(window) * time.Second
}
