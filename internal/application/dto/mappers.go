package dto

import "github.com/jhoicas/accupos-api/internal/domain/entity"

// NewProductResponse mapea la entidad a su representación HTTP.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Price:    p.Price,
		Cost:     p.Cost,
		Stock:    p.Stock,
		Category: p.Category,
		TaxRate:  p.TaxRate,
	}
}

// NewProductList mapea una lista; nunca devuelve nil para que el JSON sea [] y no null.
func NewProductList(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewProductResponse(p))
	}
	return out
}

// NewCustomerResponse mapea un cliente.
func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{ID: c.ID, Name: c.Name, Phone: c.Phone, Email: c.Email}
}

// NewTransactionResponse mapea una venta registrada con sus líneas.
func NewTransactionResponse(tx *entity.Transaction) TransactionResponse {
	items := make([]TransactionItemResponse, 0, len(tx.Items))
	for _, it := range tx.Items {
		items = append(items, TransactionItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			TaxRate:   it.TaxRate,
			TaxAmount: it.TaxAmount,
			LineTotal: it.LineTotal,
			Total:     it.Total,
		})
	}
	return TransactionResponse{
		ID:            tx.ID,
		InvoiceNumber: tx.InvoiceNumber,
		Date:          tx.Date,
		Customer:      CustomerRef{ID: tx.CustomerID, Name: tx.CustomerName},
		Items:         items,
		Subtotal:      tx.Subtotal,
		TaxTotal:      tx.TaxTotal,
		GrandTotal:    tx.GrandTotal,
		PaymentMethod: tx.PaymentMethod,
		AmountPaid:    tx.AmountPaid,
		Change:        tx.Change,
		Status:        tx.Status,
	}
}

// NewTransactionList mapea una lista de ventas conservando el orden.
func NewTransactionList(list []*entity.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(list))
	for _, tx := range list {
		out = append(out, NewTransactionResponse(tx))
	}
	return out
}
