package sales

import (
	"context"

	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de venta atados a esa tx. La cabecera, las líneas y los débitos
// de stock de un commit comparten una única transacción: o todo queda visible
// de forma durable, o nada.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		invoiceRepo repository.InvoiceRepository,
	) error) error
}
