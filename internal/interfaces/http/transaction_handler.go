package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/accupos-api/internal/application/checkout"
	"github.com/jhoicas/accupos-api/internal/application/dto"
)

// TransactionHandler registra ventas y expone el ledger.
type TransactionHandler struct {
	uc      *checkout.UseCase
	timeout time.Duration
}

// NewTransactionHandler construye el handler. timeout <= 0 deja el checkout sin límite propio.
func NewTransactionHandler(uc *checkout.UseCase, timeout time.Duration) *TransactionHandler {
	return &TransactionHandler{uc: uc, timeout: timeout}
}

// Checkout godoc
// @Summary      Registrar venta
// @Description  Valida el carrito, descuenta stock, calcula totales y asigna el consecutivo en una sola transacción.
// @Description  En efectivo amountPaid es obligatorio y debe cubrir el total; en otros medios se ignora.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito y pago"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/transactions [post]
func (h *TransactionHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "cuerpo inválido")
	}

	ctx := c.UserContext()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	out, err := h.uc.Checkout(ctx, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas
// @Tags         transactions
// @Produce      json
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         transactions
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *TransactionHandler) GetByID(c *fiber.Ctx) error {
	id, ok := paramID(c)
	if !ok {
		return notFound(c, "venta no encontrada")
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
