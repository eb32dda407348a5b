package reports_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermercado-pos/internal/application/reports"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/cache"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

func seedInvoice(t *testing.T, store *memory.Store, id string, when time.Time, total int64) {
	t.Helper()
	repo := memory.NewInvoiceRepository(store)
	require.NoError(t, repo.Create(&entity.Invoice{
		ID:            id,
		Datetime:      when,
		Subtotal:      decimal.NewFromInt(total),
		GrandTotal:    decimal.NewFromInt(total),
		PaidAmount:    decimal.NewFromInt(total),
		PaymentMethod: entity.PaymentCash,
		CreatedAt:     when,
	}))
	require.NoError(t, repo.CreateLine(&entity.InvoiceLine{
		ID:          id + "-l1",
		InvoiceID:   id,
		ProductID:   "p1",
		ProductCode: "P001",
		ProductName: "Arroz 1kg",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(total),
		LineTotal:   decimal.NewFromInt(total),
	}))
}

func newAggregator(store *memory.Store) *reports.Aggregator {
	return reports.NewAggregator(
		memory.NewReportRepository(store),
		memory.NewInvoiceRepository(store),
		cache.Noop{},
		logger.Nop(),
	)
}

func TestSalesBetween(t *testing.T) {
	store := memory.NewStore()
	today := time.Date(2026, 8, 20, 14, 30, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	lastMonth := today.AddDate(0, -1, 0)

	seedInvoice(t, store, "f1", today, 100)
	seedInvoice(t, store, "f2", today.Add(2*time.Hour), 50)
	seedInvoice(t, store, "f3", yesterday, 30)
	seedInvoice(t, store, "f4", lastMonth, 999) // fuera de rango

	agg := newAggregator(store)
	summary, err := agg.SalesBetween(context.Background(), yesterday, today)
	require.NoError(t, err)

	assert.True(t, summary.Total.Equal(decimal.NewFromInt(180)), "total: %s", summary.Total)
	require.Len(t, summary.ByDay, 2)
	assert.True(t, summary.ByDay[0].Value.Equal(decimal.NewFromInt(30)))
	assert.True(t, summary.ByDay[1].Value.Equal(decimal.NewFromInt(150)))
	assert.Len(t, summary.Invoices, 3)
	// más reciente primero
	assert.Equal(t, "f2", summary.Invoices[0].ID)
}

func TestSalesBetweenRangoAmpliadoADiasCompletos(t *testing.T) {
	store := memory.NewStore()
	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.Local)
	// factura a las 23:50: cae dentro del rango aunque start == end == day
	seedInvoice(t, store, "f1", day.Add(23*time.Hour+50*time.Minute), 70)

	agg := newAggregator(store)
	summary, err := agg.SalesBetween(context.Background(), day.Add(10*time.Hour), day.Add(10*time.Hour))
	require.NoError(t, err)
	assert.True(t, summary.Total.Equal(decimal.NewFromInt(70)))
	assert.Len(t, summary.Invoices, 1)
}

func TestStockLevels(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	store.SeedProduct(&entity.Product{
		ID: "p1", Code: "P001", Name: "Arroz 1kg", Category: "Almacén",
		Price: decimal.NewFromInt(80), Stock: decimal.NewFromInt(10),
		RestockLevel: decimal.NewFromInt(5), Active: true, CreatedAt: now, UpdatedAt: now,
	})
	store.SeedProduct(&entity.Product{
		ID: "p2", Code: "P002", Name: "Descontinuado",
		Price: decimal.NewFromInt(10), Stock: decimal.NewFromInt(99),
		Active: false, CreatedAt: now, UpdatedAt: now,
	})

	agg := newAggregator(store)
	levels, err := agg.StockLevels(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 1, "los inactivos no se reportan")
	assert.Equal(t, "P001", levels[0].Code)
	assert.True(t, levels[0].Stock.Equal(decimal.NewFromInt(10)))
}

func TestStockTrendEsPuntoUnicoPromedio(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	store.SeedProduct(&entity.Product{
		ID: "p1", Code: "P001", Name: "A", Price: decimal.NewFromInt(1),
		Stock: decimal.NewFromInt(10), Active: true, CreatedAt: now, UpdatedAt: now,
	})
	store.SeedProduct(&entity.Product{
		ID: "p2", Code: "P002", Name: "B", Price: decimal.NewFromInt(1),
		Stock: decimal.NewFromInt(20), Active: true, CreatedAt: now, UpdatedAt: now,
	})

	agg := newAggregator(store)
	points, err := agg.StockTrend(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Value.Equal(decimal.NewFromInt(15)), "promedio: %s", points[0].Value)
	assert.Equal(t, time.Now().Format("2006-01-02"), points[0].Day)
}

// mapCache cache en memoria mínimo para verificar el camino de hit.
type mapCache struct {
	data map[string][]byte
	sets int
}

func (m *mapCache) Get(ctx context.Context, key string, v any) (bool, error) {
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, v)
}

func (m *mapCache) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.data[key] = raw
	m.sets++
	return nil
}

func TestSalesTrendUsaCache(t *testing.T) {
	store := memory.NewStore()
	seedInvoice(t, store, "f1", time.Now().Add(-time.Hour), 100)

	c := &mapCache{data: make(map[string][]byte)}
	agg := reports.NewAggregator(
		memory.NewReportRepository(store),
		memory.NewInvoiceRepository(store),
		c,
		logger.Nop(),
	)
	ctx := context.Background()

	first, err := agg.SalesTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, c.sets)

	// segunda factura: mientras la entrada no expire, la tendencia sale del cache
	seedInvoice(t, store, "f2", time.Now().Add(-time.Minute), 999)
	second, err := agg.SalesTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Value.Equal(first[0].Value))
	assert.Equal(t, 1, c.sets, "el hit no vuelve a escribir")
}

func TestSalesDetails(t *testing.T) {
	store := memory.NewStore()
	now := time.Now()
	seedInvoice(t, store, "f1", now.Add(-time.Hour), 100)
	seedInvoice(t, store, "f2", now.AddDate(0, 0, -30), 50) // fuera de la ventana

	agg := newAggregator(store)
	details, err := agg.SalesDetails(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Arroz 1kg", details[0].Product)
	assert.True(t, details[0].Quantity.Equal(decimal.NewFromInt(1)))
}
