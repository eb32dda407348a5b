package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

// TTL de las entradas de cache de tendencias.
const trendCacheTTL = 30 * time.Second

// Aggregator rollups de solo lectura sobre facturas y stock persistidos.
// Sin efectos de escritura; corre concurrente con los commits sin bloquearlos.
type Aggregator struct {
	reportRepo  repository.ReportRepository
	invoiceRepo repository.InvoiceRepository
	cache       cache.ReportCache
	log         *logger.Logger
}

// NewAggregator construye el agregador de reportes.
func NewAggregator(
	reportRepo repository.ReportRepository,
	invoiceRepo repository.InvoiceRepository,
	c cache.ReportCache,
	log *logger.Logger,
) *Aggregator {
	return &Aggregator{reportRepo: reportRepo, invoiceRepo: invoiceRepo, cache: c, log: log}
}

// SalesBetween ventas del rango [start, end] ampliado a días completos
// ([start 00:00:00, end 23:59:59], hora local): sumas por día, total del rango
// y el listado de facturas.
func (a *Aggregator) SalesBetween(ctx context.Context, start, end time.Time) (*dto.SalesSummary, error) {
	startDT := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.Local)
	endDT := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 0, time.Local)

	byDay, err := a.reportRepo.SalesByDay(ctx, startDT, endDT)
	if err != nil {
		return nil, err
	}
	invoices, err := a.invoiceRepo.ListBetween(startDT, endDT)
	if err != nil {
		return nil, err
	}

	summary := &dto.SalesSummary{
		Start:    startDT.Format(dto.DateFormat),
		End:      endDT.Format(dto.DateFormat),
		ByDay:    make([]dto.TrendPoint, 0, len(byDay)),
		Invoices: make([]dto.InvoiceSummary, 0, len(invoices)),
	}
	for _, d := range byDay {
		summary.ByDay = append(summary.ByDay, dto.TrendPoint{
			Day:   d.Day.Format(dto.DateFormat),
			Value: d.Total.Round(2),
		})
		summary.Total = summary.Total.Add(d.Total)
	}
	summary.Total = summary.Total.Round(2)
	for _, inv := range invoices {
		summary.Invoices = append(summary.Invoices, dto.InvoiceSummary{
			ID:            inv.ID,
			Datetime:      inv.Datetime.Format(dto.DateTimeFormat),
			CustomerID:    inv.CustomerID,
			Subtotal:      inv.Subtotal.Round(2),
			DiscountTotal: inv.DiscountTotal.Round(2),
			TaxTotal:      inv.TaxTotal.Round(2),
			GrandTotal:    inv.GrandTotal.Round(2),
			PaymentMethod: inv.PaymentMethod,
		})
	}
	return summary, nil
}

// SalesTrend grand_total por día calendario de los últimos N días (cacheado).
func (a *Aggregator) SalesTrend(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	key := fmt.Sprintf("reports:sales_trend:%d", days)
	var cached []dto.TrendPoint
	if hit, err := a.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local).AddDate(0, 0, -days)
	byDay, err := a.reportRepo.SalesByDay(ctx, start, now)
	if err != nil {
		return nil, err
	}
	points := make([]dto.TrendPoint, 0, len(byDay))
	for _, d := range byDay {
		points = append(points, dto.TrendPoint{Day: d.Day.Format(dto.DateFormat), Value: d.Total.Round(2)})
	}

	if err := a.cache.Set(ctx, key, points, trendCacheTTL); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la tendencia de ventas")
	}
	return points, nil
}

// StockLevels foto del stock actual y restock_level de cada producto activo.
func (a *Aggregator) StockLevels(ctx context.Context) ([]dto.StockLevel, error) {
	rows, err := a.reportRepo.StockLevels(ctx)
	if err != nil {
		return nil, err
	}
	levels := make([]dto.StockLevel, 0, len(rows))
	for _, r := range rows {
		levels = append(levels, dto.StockLevel{
			ProductID:    r.ProductID,
			Code:         r.Code,
			Name:         r.Name,
			Category:     r.Category,
			Stock:        r.Stock,
			RestockLevel: r.RestockLevel,
		})
	}
	return levels, nil
}

// StockTrend devuelve el promedio de stock actual de los productos activos con
// la fecha de hoy. Es una aproximación documentada, no una serie histórica
// real: no existe tabla de snapshots de stock, así que el valor actual se
// reporta como único punto cualquiera sea el rango pedido.
func (a *Aggregator) StockTrend(ctx context.Context, days int) ([]dto.TrendPoint, error) {
	key := fmt.Sprintf("reports:stock_trend:%d", days)
	var cached []dto.TrendPoint
	if hit, err := a.cache.Get(ctx, key, &cached); err == nil && hit {
		return cached, nil
	}

	avg, err := a.reportRepo.AverageActiveStock(ctx)
	if err != nil {
		return nil, err
	}
	points := []dto.TrendPoint{{
		Day:   time.Now().Format(dto.DateFormat),
		Value: avg.Round(2),
	}}

	if err := a.cache.Set(ctx, key, points, trendCacheTTL); err != nil {
		a.log.Warn().Err(err).Str("key", key).Msg("no se pudo cachear la tendencia de stock")
	}
	return points, nil
}

// SalesDetails líneas de venta individuales de los últimos N días
// (alimenta analítica externa).
func (a *Aggregator) SalesDetails(ctx context.Context, days int) ([]dto.SalesDetail, error) {
	since := time.Now().AddDate(0, 0, -days)
	rows, err := a.reportRepo.SalesDetails(ctx, since)
	if err != nil {
		return nil, err
	}
	details := make([]dto.SalesDetail, 0, len(rows))
	for _, r := range rows {
		details = append(details, dto.SalesDetail{
			Product:  r.ProductName,
			Quantity: r.Quantity,
			Day:      r.Day.Format(dto.DateFormat),
		})
	}
	return details, nil
}
