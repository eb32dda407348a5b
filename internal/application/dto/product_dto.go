package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Stock        decimal.Decimal `json:"stock"`
	RestockLevel decimal.Decimal `json:"restock_level"`
}

// UpdateProductRequest edición de producto. No toca el stock: el stock solo
// cambia por venta o reposición.
type UpdateProductRequest struct {
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	RestockLevel decimal.Decimal `json:"restock_level"`
	Active       bool            `json:"active"`
}

// ProductResponse producto expuesto por la API.
type ProductResponse struct {
	ID           string          `json:"id"`
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Price        decimal.Decimal `json:"price"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	Stock        decimal.Decimal `json:"stock"`
	RestockLevel decimal.Decimal `json:"restock_level"`
	Active       bool            `json:"active"`
}
