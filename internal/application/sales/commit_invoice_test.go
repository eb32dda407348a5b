package sales_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/inventory"
	"github.com/tu-usuario/supermercado-pos/internal/application/sales"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/memory"
	"github.com/tu-usuario/supermercado-pos/pkg/logger"
)

const (
	prodArroz = "00000000-0000-0000-0000-00000000000a"
	prodLeche = "00000000-0000-0000-0000-00000000000b"
	cliAna    = "00000000-0000-0000-0000-0000000000c1"
)

type fixture struct {
	store *memory.Store
	uc    *sales.CommitInvoiceUseCase
}

// newFixture arma el caso de uso completo sobre el store en memoria:
// arroz a 80 sin impuesto (stock 10), leche a 55 con 10% (stock 3) y una
// clienta activa.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	store.SeedProduct(&entity.Product{
		ID: prodArroz, Code: "P001", Name: "Arroz 1kg",
		Price: decimal.NewFromInt(80), TaxRate: decimal.Zero,
		Stock: decimal.NewFromInt(10), RestockLevel: decimal.NewFromInt(5),
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
	store.SeedProduct(&entity.Product{
		ID: prodLeche, Code: "P002", Name: "Leche 1L",
		Price: decimal.NewFromInt(55), TaxRate: decimal.NewFromInt(10),
		Stock: decimal.NewFromInt(3), RestockLevel: decimal.NewFromInt(5),
		Active: true, CreatedAt: now, UpdatedAt: now,
	})
	store.SeedCustomer(&entity.Customer{
		ID: cliAna, Name: "Ana Gómez", Active: true, CreatedAt: now, UpdatedAt: now,
	})

	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedger(runner, memory.NewProductRepository(store), logger.Nop())
	uc := sales.NewCommitInvoiceUseCase(
		runner, ledger,
		memory.NewCustomerRepository(store),
		memory.NewInvoiceRepository(store),
		logger.Nop(),
	)
	return &fixture{store: store, uc: uc}
}

func TestCommitConDescuentoGlobal(t *testing.T) {
	f := newFixture(t)

	// 2 x 80 = 160; 10% de descuento -> 144; sin impuesto
	inv, err := f.uc.Commit(context.Background(), dto.CommitInvoiceRequest{
		Lines: []dto.CartLineRequest{
			{ProductID: prodArroz, Quantity: decimal.NewFromInt(2)},
		},
		GlobalDiscountPercent: decimal.NewFromInt(10),
		PaymentMethod:         entity.PaymentCash,
		PaidAmount:            decimal.NewFromInt(150),
	})
	require.NoError(t, err)

	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(160)), "subtotal: %s", inv.Subtotal)
	assert.True(t, inv.DiscountTotal.Equal(decimal.NewFromInt(16)), "descuento: %s", inv.DiscountTotal)
	assert.True(t, inv.TaxTotal.Equal(decimal.Zero), "impuesto: %s", inv.TaxTotal)
	assert.True(t, inv.GrandTotal.Equal(decimal.NewFromInt(144)), "total: %s", inv.GrandTotal)
	assert.True(t, inv.ChangeDue.Equal(decimal.NewFromInt(6)), "vuelto: %s", inv.ChangeDue)

	assert.True(t, f.store.ProductStock(prodArroz).Equal(decimal.NewFromInt(8)))
	assert.Equal(t, 1, f.store.InvoiceCount())
}

func TestCommitImpuestoSobreBaseDescontada(t *testing.T) {
	f := newFixture(t)

	// 1 x 55 con 10% de impuesto, sin descuento -> 60.5
	inv, err := f.uc.Commit(context.Background(), dto.CommitInvoiceRequest{
		Lines: []dto.CartLineRequest{
			{ProductID: prodLeche, Quantity: decimal.NewFromInt(1)},
		},
		PaymentMethod: entity.PaymentCard,
		PaidAmount:    decimal.NewFromFloat(60.5),
	})
	require.NoError(t, err)

	assert.True(t, inv.GrandTotal.Equal(decimal.RequireFromString("60.5")), "total: %s", inv.GrandTotal)
	assert.True(t, inv.TaxTotal.Equal(decimal.RequireFromString("5.5")), "impuesto: %s", inv.TaxTotal)
	assert.True(t, inv.ChangeDue.Equal(decimal.Zero))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, "P002", inv.Lines[0].ProductCode)
	assert.True(t, inv.Lines[0].LineTotal.Equal(decimal.RequireFromString("60.5")))
}

func TestCommitConCliente(t *testing.T) {
	f := newFixture(t)

	cust := cliAna
	inv, err := f.uc.Commit(context.Background(), dto.CommitInvoiceRequest{
		CustomerID: &cust,
		Lines: []dto.CartLineRequest{
			{ProductID: prodArroz, Quantity: decimal.NewFromInt(1)},
		},
		PaymentMethod: entity.PaymentUPI,
		PaidAmount:    decimal.NewFromInt(80),
	})
	require.NoError(t, err)
	require.NotNil(t, inv.CustomerID)
	assert.Equal(t, cliAna, *inv.CustomerID)
}

func TestCommitValidaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("carrito vacio", func(t *testing.T) {
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			PaymentMethod: entity.PaymentCash,
		})
		assert.ErrorIs(t, err, domain.ErrEmptyCart)
	})

	t.Run("descuento fuera de rango", func(t *testing.T) {
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			Lines:                 []dto.CartLineRequest{{ProductID: prodArroz, Quantity: decimal.NewFromInt(1)}},
			GlobalDiscountPercent: decimal.NewFromInt(101),
			PaymentMethod:         entity.PaymentCash,
			PaidAmount:            decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPercent)
	})

	t.Run("medio de pago vacio", func(t *testing.T) {
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			Lines:      []dto.CartLineRequest{{ProductID: prodArroz, Quantity: decimal.NewFromInt(1)}},
			PaidAmount: decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("cantidad no positiva", func(t *testing.T) {
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			Lines:         []dto.CartLineRequest{{ProductID: prodArroz, Quantity: decimal.NewFromInt(-1)}},
			PaymentMethod: entity.PaymentCash,
			PaidAmount:    decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, domain.ErrNonPositiveQuantity)
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		unknown := "no-existe"
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			CustomerID:    &unknown,
			Lines:         []dto.CartLineRequest{{ProductID: prodArroz, Quantity: decimal.NewFromInt(1)}},
			PaymentMethod: entity.PaymentCash,
			PaidAmount:    decimal.NewFromInt(100),
		})
		assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	})

	// Ninguna validación fallida debe haber tocado el estado
	assert.Equal(t, 0, f.store.InvoiceCount())
	assert.True(t, f.store.ProductStock(prodArroz).Equal(decimal.NewFromInt(10)))
}

func TestCommitStockInsuficienteNoDejaRastro(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Commit(context.Background(), dto.CommitInvoiceRequest{
		Lines: []dto.CartLineRequest{
			{ProductID: prodArroz, Quantity: decimal.NewFromInt(2)},
			{ProductID: prodLeche, Quantity: decimal.NewFromInt(5)}, // stock 3
		},
		PaymentMethod: entity.PaymentCash,
		PaidAmount:    decimal.NewFromInt(1000),
	})
	var insufficient *domain.InsufficientStockError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, "P002", insufficient.ProductCode)

	assert.Equal(t, 0, f.store.InvoiceCount())
	assert.True(t, f.store.ProductStock(prodArroz).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.store.ProductStock(prodLeche).Equal(decimal.NewFromInt(3)))
}

func TestCommitPagoInsuficienteRevierteDebito(t *testing.T) {
	f := newFixture(t)

	// total 160, pagan 100: el débito ya hecho dentro de la tx debe revertirse
	_, err := f.uc.Commit(context.Background(), dto.CommitInvoiceRequest{
		Lines: []dto.CartLineRequest{
			{ProductID: prodArroz, Quantity: decimal.NewFromInt(2)},
		},
		PaymentMethod: entity.PaymentCash,
		PaidAmount:    decimal.NewFromInt(100),
	})
	var underpayment *domain.UnderpaymentError
	require.ErrorAs(t, err, &underpayment)
	assert.ErrorIs(t, err, domain.ErrUnderpayment)
	assert.True(t, underpayment.Shortfall.Equal(decimal.NewFromInt(60)))

	assert.Equal(t, 0, f.store.InvoiceCount())
	assert.True(t, f.store.ProductStock(prodArroz).Equal(decimal.NewFromInt(10)))
}

func TestCommitConcurrenteSerializaElDebito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Dos ventas de 6 unidades contra stock 10: exactamente una debe
	// confirmarse y el stock final es 4
	commit := func() error {
		_, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
			Lines: []dto.CartLineRequest{
				{ProductID: prodArroz, Quantity: decimal.NewFromInt(6)},
			},
			PaymentMethod: entity.PaymentCash,
			PaidAmount:    decimal.NewFromInt(480),
		})
		return err
	}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = commit()
		}(i)
	}
	wg.Wait()

	failures := 0
	for _, err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			failures++
		}
	}
	assert.Equal(t, 1, failures, "exactamente una venta debe fallar")
	assert.Equal(t, 1, f.store.InvoiceCount())
	assert.True(t, f.store.ProductStock(prodArroz).Equal(decimal.NewFromInt(4)))
}

func TestGetInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.uc.Commit(ctx, dto.CommitInvoiceRequest{
		Lines: []dto.CartLineRequest{
			{ProductID: prodArroz, Quantity: decimal.NewFromInt(1)},
			{ProductID: prodLeche, Quantity: decimal.NewFromInt(2)},
		},
		PaymentMethod: entity.PaymentCash,
		PaidAmount:    decimal.NewFromInt(500),
		Notes:         "caja 3",
	})
	require.NoError(t, err)

	got, err := f.uc.GetInvoice(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "caja 3", got.Notes)
	assert.Len(t, got.Lines, 2)
	assert.True(t, got.GrandTotal.Equal(created.GrandTotal))

	_, err = f.uc.GetInvoice(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
