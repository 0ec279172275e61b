// Package catalog contiene las reglas de búsqueda del catálogo compartidas por
// todas las implementaciones de ProductRepository.
package catalog

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// AllCategories es el valor centinela que desactiva el filtro por categoría.
const AllCategories = "All"

// Filter criterios de búsqueda del catálogo.
type Filter struct {
	Search   string // subcadena en nombre o SKU, sin distinguir mayúsculas
	Category string // coincidencia exacta; "" o "All" = todas
}

// Normalize recorta espacios y convierte el centinela "All" en vacío.
func (f Filter) Normalize() Filter {
	f.Search = strings.TrimSpace(f.Search)
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == AllCategories {
		f.Category = ""
	}
	return f
}

// Matches indica si el producto cumple el filtro.
// La comparación usa case folding Unicode (no solo ASCII).
func (f Filter) Matches(p *entity.Product) bool {
	f = f.Normalize()
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Search == "" {
		return true
	}
	folder := cases.Fold()
	q := folder.String(f.Search)
	return strings.Contains(folder.String(p.Name), q) || strings.Contains(folder.String(p.SKU), q)
}
