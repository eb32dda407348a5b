package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/reports"
)

// ReportHandler maneja las consultas de reportes (solo lectura).
type ReportHandler struct {
	aggregator *reports.Aggregator
}

// NewReportHandler construye el handler.
func NewReportHandler(aggregator *reports.Aggregator) *ReportHandler {
	return &ReportHandler{aggregator: aggregator}
}

// SalesBetween ventas del rango ?start=YYYY-MM-DD&end=YYYY-MM-DD
// (ampliado a días completos). Sin parámetros usa el día de hoy.
func (h *ReportHandler) SalesBetween(c *fiber.Ctx) error {
	now := time.Now()
	start, end := now, now
	if s := c.Query("start"); s != "" {
		t, err := time.ParseInLocation(dto.DateFormat, s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "start debe ser YYYY-MM-DD"})
		}
		start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.ParseInLocation(dto.DateFormat, s, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "end debe ser YYYY-MM-DD"})
		}
		end = t
	}
	if end.Before(start) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RANGE", Message: "end es anterior a start"})
	}
	out, err := h.aggregator.SalesBetween(c.Context(), start, end)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesTrend total vendido por día de los últimos ?days= días (default 7).
func (h *ReportHandler) SalesTrend(c *fiber.Ctx) error {
	out, err := h.aggregator.SalesTrend(c.Context(), daysParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockLevels foto del stock actual de los productos activos.
func (h *ReportHandler) StockLevels(c *fiber.Ctx) error {
	out, err := h.aggregator.StockLevels(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockTrend promedio de stock actual como punto único (aproximación).
func (h *ReportHandler) StockTrend(c *fiber.Ctx) error {
	out, err := h.aggregator.StockTrend(c.Context(), daysParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesDetails líneas de venta individuales de los últimos ?days= días.
func (h *ReportHandler) SalesDetails(c *fiber.Ctx) error {
	out, err := h.aggregator.SalesDetails(c.Context(), daysParam(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func daysParam(c *fiber.Ctx) int {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}
	if days > 365 {
		days = 365
	}
	return days
}
