package dto

import "github.com/shopspring/decimal"

// TrendPoint valor agregado para un día calendario.
type TrendPoint struct {
	Day   string          `json:"day"`
	Value decimal.Decimal `json:"value"`
}

// InvoiceSummary fila de factura para el listado por rango de fechas.
type InvoiceSummary struct {
	ID            string          `json:"id"`
	Datetime      string          `json:"datetime"`
	CustomerID    *string         `json:"customer_id,omitempty"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DiscountTotal decimal.Decimal `json:"discount_total"`
	TaxTotal      decimal.Decimal `json:"tax_total"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	PaymentMethod string          `json:"payment_method"`
}

// SalesSummary ventas de un rango [start, end] ampliado a días completos.
type SalesSummary struct {
	Start    string           `json:"start"`
	End      string           `json:"end"`
	ByDay    []TrendPoint     `json:"by_day"`
	Total    decimal.Decimal  `json:"total"`
	Invoices []InvoiceSummary `json:"invoices"`
}

// StockLevel stock actual y umbral de reposición de un producto activo.
type StockLevel struct {
	ProductID    string          `json:"product_id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Stock        decimal.Decimal `json:"stock"`
	RestockLevel decimal.Decimal `json:"restock_level"`
}

// SalesDetail línea de venta individual de los últimos N días.
type SalesDetail struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity"`
	Day      string          `json:"day"`
}
