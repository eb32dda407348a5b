package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// Item una partida del lote: producto y cantidad.
type Item struct {
	ProductID string
	Quantity  decimal.Decimal
}

// Ledger es la autoridad sobre el stock por producto: débito multi-ítem
// todo-o-nada bajo bloqueo de fila, crédito de reposición y verificación de
// disponibilidad de solo lectura. El stock nunca queda negativo.
type Ledger struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	log         *logger.Logger
}

// NewLedger construye el ledger de inventario.
func NewLedger(txRunner TxRunner, productRepo repository.ProductRepository, log *logger.Logger) *Ledger {
	return &Ledger{txRunner: txRunner, productRepo: productRepo, log: log}
}

// aggregate consolida partidas repetidas del mismo producto en una sola
// cantidad y devuelve los IDs en orden estable. El orden estable de bloqueo
// evita deadlocks entre commits concurrentes; la consolidación evita que dos
// líneas del mismo producto pasen la verificación por separado y dejen el
// stock negativo al debitar.
func aggregate(items []Item) ([]string, map[string]decimal.Decimal, error) {
	totals := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		if it.ProductID == "" {
			return nil, nil, domain.ErrInvalidInput
		}
		if !it.Quantity.IsPositive() {
			return nil, nil, domain.ErrNonPositiveQuantity
		}
		totals[it.ProductID] = totals[it.ProductID].Add(it.Quantity)
	}
	ids := make([]string, 0, len(totals))
	for id := range totals {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, totals, nil
}

// CheckAvailability verifica disponibilidad sin bloquear filas ni modificar nada.
// Reporta por producto lo solicitado contra lo disponible.
func (l *Ledger) CheckAvailability(ctx context.Context, items []Item) (*dto.AvailabilityReport, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}
	ids, totals, err := aggregate(items)
	if err != nil {
		return nil, err
	}

	products, err := l.productRepo.GetByIDs(ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	report := &dto.AvailabilityReport{OK: true}
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		item := dto.AvailabilityItem{
			ProductID:   p.ID,
			ProductCode: p.Code,
			ProductName: p.Name,
			Requested:   totals[id],
			Available:   p.Stock,
			Sufficient:  p.Stock.GreaterThanOrEqual(totals[id]),
		}
		if !item.Sufficient {
			report.OK = false
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// DebitInTx debita el stock de todas las partidas dentro de la transacción del
// caller: bloquea cada fila (SELECT FOR UPDATE) en orden estable, verifica que
// todas alcancen y recién entonces descuenta. Si alguna no alcanza retorna
// InsufficientStockError y no descuenta ninguna (el rollback del caller
// garantiza todo-o-nada). Devuelve los productos bloqueados con su stock ya
// debitado, indexados por ID.
func (l *Ledger) DebitInTx(stockRepo repository.StockRepository, items []Item) (map[string]*entity.Product, error) {
	ids, totals, err := aggregate(items)
	if err != nil {
		return nil, err
	}

	locked := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		p, err := stockRepo.GetForUpdate(id)
		if err != nil {
			return nil, err
		}
		if p == nil || !p.Active {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		if p.Stock.LessThan(totals[id]) {
			return nil, &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductCode: p.Code,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   totals[id],
			}
		}
		locked[id] = p
	}

	for _, id := range ids {
		p := locked[id]
		p.Stock = p.Stock.Sub(totals[id])
		if err := stockRepo.SetStock(id, p.Stock); err != nil {
			return nil, err
		}
	}
	return locked, nil
}

// ApplyRestock acredita stock a cada producto del lote en una sola transacción
// (todo-o-nada). Las entradas con cantidad <= 0 se ignoran; un lote que queda
// vacío es un no-op. Serializa con los débitos concurrentes vía el mismo
// bloqueo de fila.
func (l *Ledger) ApplyRestock(ctx context.Context, additions map[string]decimal.Decimal) error {
	ids := make([]string, 0, len(additions))
	for id, qty := range additions {
		if qty.IsPositive() {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	sort.Strings(ids)

	err := l.txRunner.Run(ctx, func(stockRepo repository.StockRepository) error {
		for _, id := range ids {
			p, err := stockRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if p == nil {
				return &domain.ProductNotFoundError{ProductID: id}
			}
			if err := stockRepo.SetStock(id, p.Stock.Add(additions[id])); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	l.log.Info().Int("products", len(ids)).Msg("reposición de stock aplicada")
	return nil
}
