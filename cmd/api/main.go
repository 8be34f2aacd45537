package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appanalytics "github.com/tiendafacil/ventas-api/internal/application/analytics"
	"github.com/tiendafacil/ventas-api/internal/application/auth"
	"github.com/tiendafacil/ventas-api/internal/application/sales"
	"github.com/tiendafacil/ventas-api/internal/application/usecase"
	"github.com/tiendafacil/ventas-api/internal/infrastructure/feed"
	infrapdf "github.com/tiendafacil/ventas-api/internal/infrastructure/pdf"
	"github.com/tiendafacil/ventas-api/internal/infrastructure/postgres"
	httpRouter "github.com/tiendafacil/ventas-api/internal/interfaces/http"
	"github.com/tiendafacil/ventas-api/pkg/config"
	"github.com/tiendafacil/ventas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	localRepo := postgres.NewLocalRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Feed de ventas en tiempo real: Redis pub/sub si está configurado,
	// si no un publicador no-op (los dashboards no reciben eventos).
	var saleFeed interface {
		sales.SaleFeed
		httpRouter.SaleFeedSubscriber
		Close() error
	}
	if cfg.Redis.Addr != "" {
		redisFeed, err := feed.NewRedisFeed(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		saleFeed = redisFeed
		log.Info().Str("addr", cfg.Redis.Addr).Msg("feed de ventas por Redis habilitado")
	} else {
		saleFeed = feed.NewNopFeed()
		log.Warn().Msg("REDIS_ADDR vacío: feed de ventas en tiempo real desactivado")
	}
	defer saleFeed.Close()

	authUC := auth.NewAuthUseCase(userRepo, localRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo)
	localUC := usecase.NewLocalUseCase(localRepo, userRepo, txRunner)
	userUC := usecase.NewUserUseCase(userRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	recordSaleUC := sales.NewRecordSaleUseCase(txRunner, localRepo, saleRepo, saleFeed)
	saleQueryUC := sales.NewSaleQueryUseCase(saleRepo)
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	receiptUC := sales.NewReceiptUseCase(saleRepo, localRepo, pdfGenerator)
	dashboardUC := appanalytics.NewDashboardUseCase(analyticsRepo, userRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "TiendaFácil API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		LocalUC:     localUC,
		UserUC:      userUC,
		CustomerUC:  customerUC,
		RecordSale:  recordSaleUC,
		SaleQueries: saleQueryUC,
		ReceiptUC:   receiptUC,
		DashboardUC: dashboardUC,
		Feed:        saleFeed,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
