package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/application/usecase"
	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/infrastructure/memory"
	"github.com/jhoicas/accupos-api/internal/infrastructure/seed"
)

func newCatalog() *usecase.ProductUseCase {
	store := memory.NewStore()
	store.Load(seed.Products(), seed.Customers())
	return usecase.NewProductUseCase(store.Products())
}

func ptr[T any](v T) *T { return &v }

func TestProductUseCase_Create(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{
		Name:    " Stapler ",
		SKU:     "OFF-006",
		Price:   decimal.RequireFromString("9.99"),
		Cost:    decimal.RequireFromString("4"),
		Stock:   12,
		TaxRate: decimal.NewFromInt(15),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), out.ID)
	assert.Equal(t, "Stapler", out.Name)
	assert.Equal(t, usecase.DefaultCategory, out.Category)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Copia", SKU: "OFF-006"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUseCase_CreateValidaciones(t *testing.T) {
	uc := newCatalog()
	cases := map[string]dto.CreateProductRequest{
		"sin nombre":      {SKU: "X-1"},
		"sin sku":         {Name: "X"},
		"precio negativo": {Name: "X", SKU: "X-1", Price: decimal.NewFromInt(-1)},
		"costo negativo":  {Name: "X", SKU: "X-1", Cost: decimal.NewFromInt(-1)},
		"stock negativo":  {Name: "X", SKU: "X-1", Stock: -1},
		"tasa negativa":   {Name: "X", SKU: "X-1", TaxRate: decimal.NewFromInt(-5)},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	out, err := uc.Update(ctx, 3, dto.UpdateProductRequest{Stock: ptr(100)})
	require.NoError(t, err)
	assert.Equal(t, 100, out.Stock)
	assert.Equal(t, "Desk Calculator", out.Name)
	assert.True(t, out.Price.Equal(decimal.NewFromInt(45)))

	_, err = uc.Update(ctx, 3, dto.UpdateProductRequest{SKU: ptr("OFF-001")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// Mismo SKU con otra capitalización: no es conflicto consigo mismo.
	_, err = uc.Update(ctx, 3, dto.UpdateProductRequest{SKU: ptr("elc-001")})
	assert.NoError(t, err)

	_, err = uc.Update(ctx, 404, dto.UpdateProductRequest{Name: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Update(ctx, 3, dto.UpdateProductRequest{Name: ptr("  ")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUseCase_ListYCategorias(t *testing.T) {
	uc := newCatalog()
	ctx := context.Background()

	list, err := uc.List(ctx, dto.ProductQuery{Search: "usb"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ELC-002", list[0].SKU)

	list, err = uc.List(ctx, dto.ProductQuery{Category: "All"})
	require.NoError(t, err)
	assert.Len(t, list, 8)

	cats, err := uc.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Electronics", "Office Supplies"}, cats)
}

func TestCustomerUseCase(t *testing.T) {
	store := memory.NewStore()
	store.Load(nil, seed.Customers())
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Nuevo Cliente", Email: "n@c.sa"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), c.ID)

	list, err := uc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "Walk-in Customer", list[0].Name)

	_, err = uc.GetByID(ctx, 77)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
