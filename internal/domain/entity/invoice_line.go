package entity

import "github.com/shopspring/decimal"

// InvoiceLine representa una línea de una factura con snapshot del producto
// al momento de la venta (código, nombre, precio y tasa de impuesto congelados:
// ediciones posteriores del producto no la afectan).
type InvoiceLine struct {
	ID          string
	InvoiceID   string
	ProductID   string
	ProductCode string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TaxRate     decimal.Decimal
	LineTotal   decimal.Decimal
}
