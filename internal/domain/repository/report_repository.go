package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DailySalesResult total de ventas de un día calendario.
type DailySalesResult struct {
	Day   time.Time
	Total decimal.Decimal
}

// StockLevelResult foto del stock actual de un producto activo.
type StockLevelResult struct {
	ProductID    string
	Code         string
	Name         string
	Category     string
	Stock        decimal.Decimal
	RestockLevel decimal.Decimal
}

// SalesDetailResult línea de venta individual (producto, cantidad, día).
type SalesDetailResult struct {
	ProductName string
	Quantity    decimal.Decimal
	Day         time.Time
}

// ReportRepository consultas de solo lectura sobre el estado persistido.
// Corren bajo read-committed/snapshot y no bloquean a los escritores.
type ReportRepository interface {
	// SalesByDay suma grand_total por día calendario dentro de [start, end].
	SalesByDay(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)
	StockLevels(ctx context.Context) ([]StockLevelResult, error)
	// AverageActiveStock promedio de stock de los productos activos
	// (aproximación usada por la tendencia de stock).
	AverageActiveStock(ctx context.Context) (decimal.Decimal, error)
	SalesDetails(ctx context.Context, since time.Time) ([]SalesDetailResult, error)
}
