package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
)

// StockRepository puerto del ledger de inventario sobre la fila del producto.
// GetForUpdate debe bloquear la fila (SELECT ... FOR UPDATE) para que la ventana
// verificar-luego-debitar sea segura frente a commits concurrentes.
type StockRepository interface {
	GetForUpdate(productID string) (*entity.Product, error)
	SetStock(productID string, stock decimal.Decimal) error
}
