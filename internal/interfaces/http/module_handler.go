package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Suscripciones-api/internal/application/dto"
	"github.com/jhoicas/Suscripciones-api/internal/application/usecase"
	"github.com/jhoicas/Suscripciones-api/internal/domain"
)

// ModuleHandler expone el catálogo de módulos vendibles (protegido).
type ModuleHandler struct {
	uc *usecase.ModuleService
}

// NewModuleHandler construye el handler de catálogo.
func NewModuleHandler(uc *usecase.ModuleService) *ModuleHandler {
	return &ModuleHandler{uc: uc}
}

// List godoc
// @Summary      Listar el catálogo de módulos
// @Tags         modules
// @Produce      json
// @Success      200  {object}  dto.ModuleListResponse
// @Router       /api/modules [get]
func (h *ModuleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByType godoc
// @Summary      Obtener módulo por tipo
// @Tags         modules
// @Produce      json
// @Param        type  path  string  true  "Tipo de módulo (basic, accounting, hr, ecommerce, pos, contracts)"
// @Success      200   {object}  dto.ModuleResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/modules/{type} [get]
func (h *ModuleHandler) GetByType(c *fiber.Ctx) error {
	moduleType := c.Params("type")
	if moduleType == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "type es requerido"})
	}
	out, err := h.uc.GetByType(c.Context(), moduleType)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "módulo no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo inválido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
