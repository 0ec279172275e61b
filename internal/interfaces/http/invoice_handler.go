package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/accupos-api/internal/application/invoice"
)

// InvoiceHandler entrega la factura imprimible de una venta.
type InvoiceHandler struct {
	uc *invoice.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *invoice.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc}
}

// DownloadPDF godoc
// @Summary      Descargar factura PDF
// @Tags         transactions
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id}/invoice.pdf [get]
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c, "venta no encontrada")
	}
	pdfBytes, filename, err := h.uc.DownloadInvoicePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
