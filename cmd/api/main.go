package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Suscripciones-api/internal/application/auth"
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	infrakafka "github.com/jhoicas/Suscripciones-api/internal/infrastructure/kafka"
	infrapdf "github.com/jhoicas/Suscripciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Suscripciones-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Suscripciones-api/internal/interfaces/http"
	"github.com/jhoicas/Suscripciones-api/internal/metrics"
	"github.com/jhoicas/Suscripciones-api/pkg/config"
	"github.com/jhoicas/Suscripciones-api/pkg/logger"
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

	companyRepo := postgres.NewCompanyRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	moduleRepo := postgres.NewModuleRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	subscriptionRepo := postgres.NewSubscriptionRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificador de aprovisionamiento: Kafka si hay brokers, si no solo-log.
	var notifier ordering.ProvisioningNotifier
	if cfg.Provisioning.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer, err := infrakafka.NewSyncProducer(cfg.Kafka.Brokers)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Kafka")
		}
		kafkaNotifier := infrakafka.NewProvisioningNotifier(producer, cfg.Kafka.Topic, log)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	} else {
		notifier = infrakafka.NewLogNotifier(log)
	}

	// Métricas Prometheus
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	orderMetrics := metrics.NewOrderMetrics(registry)

	ledgerUC := subscription.NewLedgerUseCase(txRunner, log, nil)
	entitlementsUC := subscription.NewEntitlementsUseCase(subscriptionRepo, nil)
	subscriptionUC := subscription.NewSubscriptionUseCase(subscriptionRepo)

	createOrderUC := ordering.NewCreateOrderUseCase(
		txRunner, moduleRepo, orderRepo, userRepo,
		ledgerUC, notifier, orderMetrics, log, nil,
	)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	orderPDFUC := ordering.NewPDFUseCase(orderRepo, companyRepo, moduleRepo, pdfGenerator)

	companyUC := usecase.NewCompanyUseCase(companyRepo)
	moduleUC := usecase.NewModuleService(moduleRepo)
	authUC := auth.NewAuthUseCase(userRepo, companyRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Suscripciones API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CompanyUC:      companyUC,
		ModuleUC:       moduleUC,
		CreateOrder:    createOrderUC,
		OrderPDF:       orderPDFUC,
		SubscriptionUC: subscriptionUC,
		Entitlements:   entitlementsUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
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
