package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/catalog"
	"github.com/jhoicas/accupos-api/internal/domain/entity"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepository)(nil)

// ProductRepository catálogo en memoria.
type ProductRepository struct {
	s *Store
}

// Create asigna el siguiente ID. El SKU es único (sin distinguir mayúsculas).
func (r *ProductRepository) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTakenLocked(p.SKU, 0) {
		return fmt.Errorf("%w: sku %s", domain.ErrDuplicate, p.SKU)
	}
	p.ID = r.s.nextProductID
	r.s.nextProductID++
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *ProductRepository) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *ProductRepository) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if strings.EqualFold(p.SKU, sku) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

// Update mantiene el bloqueo de la fila desde la lectura hasta la escritura, igual que
// un SELECT ... FOR UPDATE seguido de UPDATE en PostgreSQL.
func (r *ProductRepository) Update(ctx context.Context, id int64, apply func(p *entity.Product) error) (*entity.Product, error) {
	lock := r.s.rowLock(id)
	if err := acquire(ctx, lock); err != nil {
		return nil, err
	}
	defer release(lock)

	r.s.mu.RLock()
	current, ok := r.s.products[id]
	var cp entity.Product
	if ok {
		cp = *current
	}
	r.s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: producto %d", domain.ErrNotFound, id)
	}

	// apply corre sin r.s.mu: puede consultar el catálogo (p. ej. GetBySKU).
	if err := apply(&cp); err != nil {
		return nil, err
	}
	cp.ID = id

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.skuTakenLocked(cp.SKU, id) {
		return nil, fmt.Errorf("%w: sku %s", domain.ErrDuplicate, cp.SKU)
	}
	stored := cp
	r.s.products[id] = &stored
	return &cp, nil
}

func (r *ProductRepository) List(_ context.Context, filter catalog.Filter) ([]*entity.Product, error) {
	filter = filter.Normalize()
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if filter.Matches(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *ProductRepository) ListLowStock(_ context.Context, threshold int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0)
	for _, p := range r.s.products {
		if p.Stock < threshold {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Stock != out[j].Stock {
			return out[i].Stock < out[j].Stock
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ProductRepository) ListCategories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, p := range r.s.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	sort.Strings(out)
	return out, nil
}

// skuTakenLocked requiere r.s.mu tomado.
func (r *ProductRepository) skuTakenLocked(sku string, exceptID int64) bool {
	for id, p := range r.s.products {
		if id != exceptID && strings.EqualFold(p.SKU, sku) {
			return true
		}
	}
	return false
}
