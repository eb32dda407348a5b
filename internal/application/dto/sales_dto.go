package dto

import "github.com/shopspring/decimal"

// CartLineRequest una línea del carrito: producto y cantidad.
type CartLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CommitInvoiceRequest solicitud para confirmar una venta.
type CommitInvoiceRequest struct {
	CustomerID            *string           `json:"customer_id"`
	Lines                 []CartLineRequest `json:"lines"`
	GlobalDiscountPercent decimal.Decimal   `json:"global_discount_percent"`
	PaymentMethod         string            `json:"payment_method"`
	PaidAmount            decimal.Decimal   `json:"paid_amount"`
	Notes                 string            `json:"notes"`
}

// InvoiceLineResponse línea persistida con su snapshot congelado.
type InvoiceLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// InvoiceResponse factura confirmada con sus totales (redondeados a 2 decimales).
type InvoiceResponse struct {
	ID            string                `json:"id"`
	Datetime      string                `json:"datetime"`
	CustomerID    *string               `json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal       `json:"subtotal"`
	DiscountTotal decimal.Decimal       `json:"discount_total"`
	TaxTotal      decimal.Decimal       `json:"tax_total"`
	GrandTotal    decimal.Decimal       `json:"grand_total"`
	PaymentMethod string                `json:"payment_method"`
	PaidAmount    decimal.Decimal       `json:"paid_amount"`
	ChangeDue     decimal.Decimal       `json:"change_due"`
	Notes         string                `json:"notes,omitempty"`
	Lines         []InvoiceLineResponse `json:"lines"`
}

// CommitInvoiceResponse factura más las alertas de reposición detectadas
// inmediatamente después del commit.
type CommitInvoiceResponse struct {
	Invoice       InvoiceResponse `json:"invoice"`
	RestockAlerts []RestockAlert  `json:"restock_alerts,omitempty"`
}

// AvailabilityItem disponibilidad de un producto frente a lo solicitado.
type AvailabilityItem struct {
	ProductID   string          `json:"product_id"`
	ProductCode string          `json:"product_code"`
	ProductName string          `json:"product_name"`
	Requested   decimal.Decimal `json:"requested"`
	Available   decimal.Decimal `json:"available"`
	Sufficient  bool            `json:"sufficient"`
}

// AvailabilityReport resultado de la verificación de stock (solo lectura).
type AvailabilityReport struct {
	OK    bool               `json:"ok"`
	Items []AvailabilityItem `json:"items"`
}

// RestockRequest lote de reposición manual: producto → cantidad a agregar.
type RestockRequest struct {
	Additions map[string]decimal.Decimal `json:"additions"`
}

// Clasificación de stock de un producto tras una venta.
const (
	StockStatusOut    = "OUT_OF_STOCK"
	StockStatusLow    = "LOW_STOCK"
	StockStatusNormal = "NORMAL"
)

// RestockAlert clasificación post-commit de un producto tocado por la venta.
// BelowAbsoluteThreshold es el segundo nivel de alerta (umbral fijo global,
// independiente del restock_level del producto); ambos pueden dispararse a la vez.
type RestockAlert struct {
	ProductID              string          `json:"product_id"`
	ProductCode            string          `json:"product_code"`
	ProductName            string          `json:"product_name"`
	Stock                  decimal.Decimal `json:"stock"`
	RestockLevel           decimal.Decimal `json:"restock_level"`
	Status                 string          `json:"status"`
	BelowAbsoluteThreshold bool            `json:"below_absolute_threshold"`
}
