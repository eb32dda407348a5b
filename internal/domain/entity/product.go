package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock autoritativo.
// Stock solo cambia por débito de una venta confirmada o por crédito de reposición;
// nunca puede quedar negativo (CHECK en la tabla y verificación en el ledger).
type Product struct {
	ID           string
	Code         string // código único (escaneable)
	Name         string
	Category     string
	Price        decimal.Decimal // precio de venta, >= 0
	TaxRate      decimal.Decimal // porcentaje [0,100]
	Stock        decimal.Decimal // cantidad actual (admite fracciones: kg, litros)
	RestockLevel decimal.Decimal // umbral de reposición propio del producto
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
