package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/application/usecase"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/infrastructure/memory"
)

func TestProductCreateYUpdate(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(memory.NewProductRepository(store))
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateProductRequest{
		Code: "P001", Name: "Arroz 1kg", Category: "Almacén",
		Price: decimal.NewFromInt(80), TaxRate: decimal.Zero,
		Stock: decimal.NewFromInt(10), RestockLevel: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	t.Run("codigo duplicado", func(t *testing.T) {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			Code: "P001", Name: "Otro", Price: decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateCode)
	})

	t.Run("precio negativo", func(t *testing.T) {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			Code: "P002", Name: "Inválido", Price: decimal.NewFromInt(-1),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("tasa de impuesto fuera de rango", func(t *testing.T) {
		_, err := uc.Create(ctx, dto.CreateProductRequest{
			Code: "P003", Name: "Inválido", Price: decimal.NewFromInt(1),
			TaxRate: decimal.NewFromInt(150),
		})
		assert.ErrorIs(t, err, domain.ErrInvalidPercent)
	})

	t.Run("update no toca el stock", func(t *testing.T) {
		updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{
			Name: "Arroz premium 1kg", Category: "Almacén",
			Price: decimal.NewFromInt(95), TaxRate: decimal.Zero,
			RestockLevel: decimal.NewFromInt(8), Active: true,
		})
		require.NoError(t, err)
		assert.Equal(t, "Arroz premium 1kg", updated.Name)
		assert.True(t, updated.Price.Equal(decimal.NewFromInt(95)))
		assert.True(t, store.ProductStock(created.ID).Equal(decimal.NewFromInt(10)))
	})

	t.Run("busqueda por codigo", func(t *testing.T) {
		got, err := uc.GetByCode(ctx, "P001")
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
	})

	t.Run("baja logica", func(t *testing.T) {
		require.NoError(t, uc.Deactivate(ctx, created.ID))
		list, err := uc.List(ctx, true, "")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
