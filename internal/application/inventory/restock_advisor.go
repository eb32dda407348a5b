package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// RestockAdvisor clasifica el stock de los productos tocados por una venta
// recién confirmada y canaliza las reposiciones manuales hacia el ledger.
// Maneja dos niveles de alerta independientes: el restock_level propio de cada
// producto y un umbral absoluto global; ambos pueden dispararse sobre el mismo
// producto.
type RestockAdvisor struct {
	productRepo       repository.ProductRepository
	ledger            *Ledger
	absoluteThreshold decimal.Decimal
	log               *logger.Logger
}

// NewRestockAdvisor construye el advisor. absoluteThreshold es el umbral fijo
// del segundo nivel de alerta (configuración, no dato del producto).
func NewRestockAdvisor(productRepo repository.ProductRepository, ledger *Ledger, absoluteThreshold decimal.Decimal, log *logger.Logger) *RestockAdvisor {
	return &RestockAdvisor{
		productRepo:       productRepo,
		ledger:            ledger,
		absoluteThreshold: absoluteThreshold,
		log:               log,
	}
}

// ScanAfter clasifica cada producto: OUT_OF_STOCK (stock <= 0), LOW_STOCK
// (0 < stock <= restock_level) o NORMAL, y evalúa además el umbral absoluto.
// Es una lectura post-commit: corre fuera de la transacción de la venta.
func (a *RestockAdvisor) ScanAfter(ctx context.Context, productIDs []string) ([]dto.RestockAlert, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	products, err := a.productRepo.GetByIDs(productIDs)
	if err != nil {
		return nil, err
	}

	alerts := make([]dto.RestockAlert, 0, len(products))
	for _, p := range products {
		status := dto.StockStatusNormal
		switch {
		case !p.Stock.IsPositive():
			status = dto.StockStatusOut
		case p.Stock.LessThanOrEqual(p.RestockLevel):
			status = dto.StockStatusLow
		}
		alert := dto.RestockAlert{
			ProductID:              p.ID,
			ProductCode:            p.Code,
			ProductName:            p.Name,
			Stock:                  p.Stock,
			RestockLevel:           p.RestockLevel,
			Status:                 status,
			BelowAbsoluteThreshold: p.Stock.LessThanOrEqual(a.absoluteThreshold),
		}
		if alert.Status != dto.StockStatusNormal || alert.BelowAbsoluteThreshold {
			a.log.Warn().
				Str("product", p.Code).
				Str("stock", p.Stock.String()).
				Str("status", alert.Status).
				Msg("stock bajo detectado tras la venta")
		}
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// ApplyRestock aplica un lote de reposición manual (delegado al ledger,
// atómico, entradas <= 0 ignoradas).
func (a *RestockAdvisor) ApplyRestock(ctx context.Context, additions map[string]decimal.Decimal) error {
	return a.ledger.ApplyRestock(ctx, additions)
}
