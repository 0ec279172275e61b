package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/accupos-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve las métricas del día, el acumulado histórico, los más vendidos,
// el desglose por medio de pago, las alertas de stock bajo, las últimas ventas
// y las ventas de los últimos 7 días.
// GET /api/dashboard
//
// "Hoy" se calcula en la zona horaria configurada (APP_TIMEZONE).
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
