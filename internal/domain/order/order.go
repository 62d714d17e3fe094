package order

import (
	"context"
	"time"
)

// Required field names of an order submission, in reporting order.
const (
	FieldCliente  = "cliente"
	FieldProducto = "producto"
	FieldCantidad = "cantidad"
	FieldCiudad   = "ciudad"
)

// requiredFields lists the keys a submission must carry.
var requiredFields = [...]string{FieldCliente, FieldProducto, FieldCantidad, FieldCiudad}

// Request is a submission that passed validation.
type Request struct {
	Cliente  string
	Producto string
	Cantidad int64
	Ciudad   string
}

// Order is an admitted order. Once appended to a Store it is never mutated.
type Order struct {
	ID         string
	Cliente    string
	Producto   string
	Cantidad   int64
	Ciudad     string
	ReceivedAt time.Time
}

// Store holds admitted orders in submission order.
type Store interface {
	Append(ctx context.Context, o Order) error
	Len() int
}
