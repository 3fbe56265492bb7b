package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/stockmaster/warehouse-api/internal/application/analytics"
	"github.com/stockmaster/warehouse-api/internal/application/dto"
)

// DashboardHandler maneja el endpoint del dashboard de almacén.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve las tarjetas del dashboard: inventario (productos
// totales y bajo mínimo), recepciones y entregas activas.
// GET /api/dashboard
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: err.Error(),
		})
	}
	return c.JSON(stats)
}
