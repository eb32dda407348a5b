package entity

import "time"

// Customer representa un cliente del punto de venta.
// Name es único a nivel de tabla (constraint UNIQUE); LoyaltyPoints se administra
// desde el CRUD de clientes, la venta no los modifica.
type Customer struct {
	ID            string
	Name          string
	Phone         string
	Email         string
	LoyaltyPoints int
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
