package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendafacil/ventas-api/internal/application/analytics"
	"github.com/tiendafacil/ventas-api/internal/application/auth"
	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/application/usecase"
	"github.com/tiendafacil/ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	LocalUC     *usecase.LocalUseCase
	UserUC      *usecase.UserUseCase
	CustomerUC  *usecase.CustomerUseCase
	RecordSale  *sales.RecordSaleUseCase
	SaleQueries *sales.SaleQueryUseCase
	ReceiptUC   *sales.ReceiptUseCase
	DashboardUC *analytics.DashboardUseCase
	Feed        SaleFeedSubscriber
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Sesión: rol persistido → vista efectiva (con simulación para admins)
	protected.Get("/session", authHandler.Session)

	// Products: lectura para todos, escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin), productHandler.Update)
	products.Put("/:id/stock", RequireRole(entity.RoleAdmin), productHandler.AdjustStock)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	// Locals (solo admin)
	locals := protected.Group("/locals", RequireRole(entity.RoleAdmin))
	localHandler := NewLocalHandler(deps.LocalUC)
	locals.Post("/", localHandler.Create)
	locals.Get("/", localHandler.List)
	locals.Get("/:id", localHandler.GetByID)
	locals.Put("/:id", localHandler.Update)
	locals.Put("/:id/user", localHandler.ReassignUser)
	locals.Delete("/:id", localHandler.Delete)

	// Users (solo admin; el alta va por /auth/register)
	users := protected.Group("/users", RequireRole(entity.RoleAdmin))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Delete("/:id", userHandler.Delete)

	// Sales (protegido; el scope por local lo aplica el caso de uso)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.RecordSale, deps.SaleQueries, deps.ReceiptUC)
	salesGroup.Post("/", saleHandler.Record)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/summary/today", saleHandler.DailySummary)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Customers (protegido)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)

	// Dashboard admin: agregados globales + feed SSE
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	streamHandler := NewStreamHandler(deps.Feed)
	dashboard.Get("/summary", RequireRole(entity.RoleAdmin), dashboardHandler.Summary)
	dashboard.Get("/sales/stream", streamHandler.SalesFeed)
}
