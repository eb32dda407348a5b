package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

func seedWithStock(store *memory.Store, id, code string, stock, restockLevel int64) {
	now := time.Now()
	store.SeedProduct(&entity.Product{
		ID: id, Code: code, Name: "Producto " + code,
		Price: decimal.NewFromInt(10), TaxRate: decimal.Zero,
		Stock: decimal.NewFromInt(stock), RestockLevel: decimal.NewFromInt(restockLevel),
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
}

func TestScanAfter(t *testing.T) {
	store := memory.NewStore()
	seedWithStock(store, "p-out", "A001", 0, 10)
	seedWithStock(store, "p-low", "A002", 10, 10) // en el límite: LOW_STOCK
	seedWithStock(store, "p-ok", "A003", 50, 10)
	seedWithStock(store, "p-abs", "A004", 4, 2) // sobre su restock_level pero bajo el umbral absoluto

	ledger := inventory.NewLedger(memory.NewTxRunner(store), memory.NewProductRepository(store), logger.Nop())
	advisor := inventory.NewRestockAdvisor(
		memory.NewProductRepository(store), ledger, decimal.NewFromInt(5), logger.Nop(),
	)

	alerts, err := advisor.ScanAfter(context.Background(), []string{"p-out", "p-low", "p-ok", "p-abs"})
	require.NoError(t, err)
	require.Len(t, alerts, 4)

	byID := make(map[string]dto.RestockAlert, len(alerts))
	for _, a := range alerts {
		byID[a.ProductID] = a
	}

	assert.Equal(t, dto.StockStatusOut, byID["p-out"].Status)
	assert.True(t, byID["p-out"].BelowAbsoluteThreshold)

	assert.Equal(t, dto.StockStatusLow, byID["p-low"].Status)
	assert.False(t, byID["p-low"].BelowAbsoluteThreshold)

	assert.Equal(t, dto.StockStatusNormal, byID["p-ok"].Status)
	assert.False(t, byID["p-ok"].BelowAbsoluteThreshold)

	// Los dos niveles de alerta son independientes: NORMAL por restock_level
	// pero bajo el umbral absoluto global
	assert.Equal(t, dto.StockStatusNormal, byID["p-abs"].Status)
	assert.True(t, byID["p-abs"].BelowAbsoluteThreshold)
}

func TestScanAfterSinProductos(t *testing.T) {
	store := memory.NewStore()
	ledger := inventory.NewLedger(memory.NewTxRunner(store), memory.NewProductRepository(store), logger.Nop())
	advisor := inventory.NewRestockAdvisor(
		memory.NewProductRepository(store), ledger, decimal.NewFromInt(5), logger.Nop(),
	)

	alerts, err := advisor.ScanAfter(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}
