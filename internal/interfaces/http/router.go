package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/auth"
	"github.com/jhoicas/Suscripciones-api/internal/application/ordering"
	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC      *usecase.CompanyUseCase
	ModuleUC       *usecase.ModuleService
	CreateOrder    *ordering.CreateOrderUseCase
	OrderPDF       *ordering.PDFUseCase
	SubscriptionUC *subscription.SubscriptionUseCase
	Entitlements   *subscription.EntitlementsUseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo de módulos (protegido)
	modules := protected.Group("/modules")
	moduleHandler := NewModuleHandler(deps.ModuleUC)
	modules.Get("/", moduleHandler.List)
	modules.Get("/:type", moduleHandler.GetByType)

	// Orders (protegido)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderPDF)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	// El comprobante PDF es una funcionalidad del módulo básico: solo empresas
	// con el módulo vigente pueden descargarlo.
	orders.Get("/:id/pdf", RequireModule(entity.ModuleTypeBasic, deps.Entitlements), orderHandler.DownloadPDF)

	// Subscriptions (protegido)
	subs := protected.Group("/subscriptions")
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC, deps.Entitlements)
	subs.Get("/valid", subHandler.ListValid)
	subs.Get("/active-modules", subHandler.ActiveModules)
	subs.Get("/", subHandler.List)
	subs.Get("/:id", subHandler.GetByID)
	subs.Delete("/:id", RequireRole("admin"), subHandler.Cancel)
}
