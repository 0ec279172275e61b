package invoice

import (
	"context"

	"github.com/jhoicas/accupos-api/internal/domain/entity"
)

// StoreInfo datos del comercio impresos en el encabezado de la factura.
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// PDFGenerator renderiza una venta registrada como documento PDF.
type PDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, store StoreInfo, tx *entity.Transaction) ([]byte, error)
}
