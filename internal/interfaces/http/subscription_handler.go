package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/subscription"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
)

// SubscriptionHandler maneja lecturas y cancelación de suscripciones (protegido).
type SubscriptionHandler struct {
	uc           *subscription.SubscriptionUseCase
	entitlements *subscription.EntitlementsUseCase
}

// NewSubscriptionHandler construye el handler.
func NewSubscriptionHandler(uc *subscription.SubscriptionUseCase, entitlements *subscription.EntitlementsUseCase) *SubscriptionHandler {
	return &SubscriptionHandler{uc: uc, entitlements: entitlements}
}

// ListValid godoc
// @Summary      Suscripciones vigentes de la empresa
// @Description  Ids de suscripciones con estado activo y ventana de vigencia que contiene el momento actual.
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  dto.ValidSubscriptionsResponse
// @Router       /api/subscriptions/valid [get]
func (h *SubscriptionHandler) ListValid(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	ids, err := h.entitlements.GetValidSubscriptions(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if ids == nil {
		ids = []string{}
	}
	return c.JSON(dto.ValidSubscriptionsResponse{SubscriptionIDs: ids})
}

// ActiveModules godoc
// @Summary      Tipos de módulo habilitados ahora
// @Description  Tipos de módulo con crédito vigente bajo suscripción vigente, deduplicados por tipo.
// @Tags         subscriptions
// @Produce      json
// @Success      200  {object}  dto.ActiveModuleTypesResponse
// @Router       /api/subscriptions/active-modules [get]
func (h *SubscriptionHandler) ActiveModules(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	types, err := h.entitlements.GetActiveModuleTypes(c.Context(), companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ActiveModuleTypesResponse{ModuleTypes: types})
}

// GetByID godoc
// @Summary      Obtener suscripción
// @Tags         subscriptions
// @Produce      json
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      200  {object}  dto.SubscriptionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/{id} [get]
func (h *SubscriptionHandler) GetByID(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), companyID, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suscripción no encontrada"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar suscripciones de la empresa
// @Tags         subscriptions
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.SubscriptionListResponse
// @Router       /api/subscriptions [get]
func (h *SubscriptionHandler) List(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	out, err := h.uc.List(c.Context(), companyID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar suscripción
// @Description  Marca la suscripción como inactiva; los créditos dejan de ser visibles para el resolutor.
// @Tags         subscriptions
// @Param        id   path  string  true  "ID de la suscripción"
// @Success      204  "cancelada"
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subscriptions/{id} [delete]
func (h *SubscriptionHandler) Cancel(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if companyID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	if err := h.uc.Cancel(c.Context(), companyID, id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "suscripción no encontrada"})
		}
		if err == domain.ErrForbidden {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "acceso denegado"})
		}
		if err == domain.ErrConflict {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_INACTIVE", Message: "la suscripción ya estaba inactiva"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
