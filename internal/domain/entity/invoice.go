package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados por el punto de venta.
const (
	PaymentCash = "Cash"
	PaymentCard = "Card"
	PaymentUPI  = "UPI"
)

// Invoice representa la cabecera de una factura de venta.
// Es inmutable una vez confirmada: no existe edición, anulación ni reembolso;
// una devolución se modela como transacción compensatoria nueva.
// Invariante: GrandTotal = Subtotal - DiscountTotal + TaxTotal y PaidAmount >= GrandTotal.
type Invoice struct {
	ID            string
	Datetime      time.Time
	CustomerID    *string // nil = venta sin cliente
	Subtotal      decimal.Decimal
	DiscountTotal decimal.Decimal
	TaxTotal      decimal.Decimal
	GrandTotal    decimal.Decimal
	PaymentMethod string
	PaidAmount    decimal.Decimal
	ChangeDue     decimal.Decimal
	Notes         string
	CreatedAt     time.Time
}
