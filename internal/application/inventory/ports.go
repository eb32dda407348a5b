package inventory

import (
	"context"

	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// StockRepository atado a esa tx. Garantiza atomicidad para las operaciones
// del ledger (reposición en lote).
type TxRunner interface {
	Run(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
