// Package invoice genera la representación imprimible (PDF) de una venta ya registrada.
package invoice

import (
	"context"
	"fmt"

	"github.com/jhoicas/accupos-api/internal/domain"
	"github.com/jhoicas/accupos-api/internal/domain/repository"
)

// PDFUseCase arma la factura PDF a partir del ledger. No modifica nada.
type PDFUseCase struct {
	txRepo    repository.TransactionRepository
	generator PDFGenerator
	store     StoreInfo
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(txRepo repository.TransactionRepository, generator PDFGenerator, store StoreInfo) *PDFUseCase {
	return &PDFUseCase{txRepo: txRepo, generator: generator, store: store}
}

// DownloadInvoicePDF devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna domain.ErrNotFound si la venta no existe.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, id int64) (pdfBytes []byte, filename string, err error) {
	tx, err := uc.txRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if tx == nil {
		return nil, "", fmt.Errorf("%w: venta %d", domain.ErrNotFound, id)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, uc.store, tx)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, tx.InvoiceNumber + ".pdf", nil
}
