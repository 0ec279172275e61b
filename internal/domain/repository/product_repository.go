package repository

import (
	"context"

	"github.com/jhoicas/accupos-api/internal/domain/catalog"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// GetByID y GetBySKU devuelven nil, nil cuando no existe el producto.
type ProductRepository interface {
	// Create asigna el siguiente ID y persiste el producto.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update lee el producto con la fila bloqueada, aplica apply sobre esa lectura y
	// escribe el resultado antes de soltar el bloqueo: una venta concurrente espera o
	// termina antes de la lectura, nunca entre lectura y escritura.
	// Devuelve domain.ErrNotFound si el producto no existe; un error de apply aborta sin escribir.
	Update(ctx context.Context, id int64, apply func(p *entity.Product) error) (*entity.Product, error)
	// List devuelve los productos que cumplen el filtro, ordenados por ID ascendente.
	List(ctx context.Context, filter catalog.Filter) ([]*entity.Product, error)
	// ListLowStock devuelve los productos con stock < threshold, de menor a mayor stock.
	ListLowStock(ctx context.Context, threshold int) ([]*entity.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}
