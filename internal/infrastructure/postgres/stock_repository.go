package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo ledger de stock sobre la fila del producto (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
// El bloqueo cubre la ventana verificar-luego-debitar: dos commits
// concurrentes sobre el mismo producto se serializan acá.
func (r *StockRepo) GetForUpdate(productID string) (*entity.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products WHERE id = $1
		FOR UPDATE`
	p, err := scanProduct(r.q.QueryRow(context.Background(), query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product for update: %w", err)
	}
	return p, nil
}

// SetStock fija el stock del producto (la fila ya debe estar bloqueada por el caller).
func (r *StockRepo) SetStock(productID string, stock decimal.Decimal) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = $2, updated_at = now() WHERE id = $1`,
		productID, stock)
	if err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("set stock: producto %s no existe", productID)
	}
	return nil
}
