package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/application/sales"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// SalesHandler maneja el flujo de venta: confirmación de facturas,
// verificación de disponibilidad y reposición de stock.
type SalesHandler struct {
	commitUC *sales.CommitInvoiceUseCase
	ledger   *inventory.Ledger
	advisor  *inventory.RestockAdvisor
	log      *logger.Logger
}

// NewSalesHandler construye el handler.
func NewSalesHandler(
	commitUC *sales.CommitInvoiceUseCase,
	ledger *inventory.Ledger,
	advisor *inventory.RestockAdvisor,
	log *logger.Logger,
) *SalesHandler {
	return &SalesHandler{commitUC: commitUC, ledger: ledger, advisor: advisor, log: log}
}

// CommitInvoice confirma una venta: débito de stock más factura persistida en
// una sola transacción. La respuesta incluye las alertas de reposición de los
// productos que quedaron bajos tras el débito.
func (h *SalesHandler) CommitInvoice(c *fiber.Ctx) error {
	var in dto.CommitInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	invoice, err := h.commitUC.Commit(c.Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	// Scan post-commit: si falla no invalida la venta ya confirmada.
	seen := make(map[string]bool, len(invoice.Lines))
	ids := make([]string, 0, len(invoice.Lines))
	for _, l := range invoice.Lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	alerts, err := h.advisor.ScanAfter(c.Context(), ids)
	if err != nil {
		h.log.Warn().Err(err).Str("invoice_id", invoice.ID).Msg("scan de reposición post-venta falló")
		alerts = nil
	}
	filtered := make([]dto.RestockAlert, 0, len(alerts))
	for _, a := range alerts {
		if a.Status != dto.StockStatusNormal || a.BelowAbsoluteThreshold {
			filtered = append(filtered, a)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(dto.CommitInvoiceResponse{
		Invoice:       *invoice,
		RestockAlerts: filtered,
	})
}

// GetInvoice obtiene una factura confirmada con sus líneas.
func (h *SalesHandler) GetInvoice(c *fiber.Ctx) error {
	out, err := h.commitUC.GetInvoice(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CheckStock verifica disponibilidad del carrito sin modificar nada.
func (h *SalesHandler) CheckStock(c *fiber.Ctx) error {
	var in []dto.CartLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	items := make([]inventory.Item, 0, len(in))
	for _, l := range in {
		items = append(items, inventory.Item{ProductID: l.ProductID, Quantity: l.Quantity})
	}
	report, err := h.ledger.CheckAvailability(c.Context(), items)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(report)
}

// Restock aplica un lote de reposición manual (atómico, todo-o-nada).
func (h *SalesHandler) Restock(c *fiber.Ctx) error {
	var in dto.RestockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.advisor.ApplyRestock(c.Context(), in.Additions); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
