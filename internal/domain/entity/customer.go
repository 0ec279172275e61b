package entity

import "time"

// WalkInCustomerID es el cliente por defecto cuando la venta no indica cliente
// o indica uno inexistente. Lo crea la migración inicial.
const WalkInCustomerID int64 = 1

// WalkInCustomerName nombre del cliente de mostrador.
const WalkInCustomerName = "Walk-in Customer"

// Customer representa un cliente del punto de venta.
type Customer struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
}
