package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/accupos-api/internal/application/dto"
	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/catalog"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

// DefaultCategory se asigna cuando el producto llega sin categoría.
const DefaultCategory = "General"

// ProductUseCase casos de uso del catálogo. El stock solo baja vía checkout;
// aquí se edita como dato maestro (reposición manual).
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// Create crea un nuevo producto. El SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	product := &entity.Product{
		Name:      strings.TrimSpace(in.Name),
		SKU:       strings.TrimSpace(in.SKU),
		Price:     in.Price,
		Cost:      in.Cost,
		Stock:     in.Stock,
		Category:  strings.TrimSpace(in.Category),
		TaxRate:   in.TaxRate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if product.Category == "" {
		product.Category = DefaultCategory
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, product.SKU)
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// GetByID obtiene un producto por ID o domain.ErrNotFound.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

// Update aplica un merge parcial: solo cambian los campos presentes en la petición.
// El merge se hace sobre la lectura bloqueada del repositorio, así el stock que
// descuenta un checkout concurrente no se pisa con un valor viejo.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.Update(ctx, id, func(p *entity.Product) error {
		return uc.merge(ctx, p, in)
	})
	if err != nil {
		return nil, err
	}
	out := dto.NewProductResponse(product)
	return &out, nil
}

func (uc *ProductUseCase) merge(ctx context.Context, product *entity.Product, in dto.UpdateProductRequest) error {
	skuChanged := false
	if in.Name != nil {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.SKU != nil {
		sku := strings.TrimSpace(*in.SKU)
		skuChanged = !strings.EqualFold(sku, product.SKU)
		product.SKU = sku
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
		if product.Category == "" {
			product.Category = DefaultCategory
		}
	}
	if in.TaxRate != nil {
		product.TaxRate = *in.TaxRate
	}
	if err := validateProduct(product); err != nil {
		return err
	}
	if skuChanged {
		existing, err := uc.repo.GetBySKU(ctx, product.SKU)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != product.ID {
			return fmt.Errorf("%w: el SKU %s ya existe", domain.ErrDuplicate, product.SKU)
		}
	}
	product.UpdatedAt = uc.now()
	return nil
}

// List busca en el catálogo por texto y categoría ("All" = todas).
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx, catalog.Filter{Search: q.Search, Category: q.Category}.Normalize())
	if err != nil {
		return nil, err
	}
	return dto.NewProductList(list), nil
}

// Categories devuelve las categorías distintas en orden alfabético.
func (uc *ProductUseCase) Categories(ctx context.Context) ([]string, error) {
	return uc.repo.ListCategories(ctx)
}

func (uc *ProductUseCase) get(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}
	return product, nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name es obligatorio", domain.ErrInvalidInput)
	case p.SKU == "":
		return fmt.Errorf("%w: sku es obligatorio", domain.ErrInvalidInput)
	case p.Price.LessThan(decimal.Zero):
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	case p.Cost.LessThan(decimal.Zero):
		return fmt.Errorf("%w: cost no puede ser negativo", domain.ErrInvalidInput)
	case p.Stock < 0:
		return fmt.Errorf("%w: stock no puede ser negativo", domain.ErrInvalidInput)
	case p.TaxRate.LessThan(decimal.Zero):
		return fmt.Errorf("%w: tax no puede ser negativo", domain.ErrInvalidInput)
	}
	return nil
}
