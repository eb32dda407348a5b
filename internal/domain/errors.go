package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
// Los errores con detalle estructurado (stock insuficiente, pago insuficiente)
// se modelan como tipos que hacen Unwrap hacia estos centinelas, de modo que
// los callers pueden seguir usando errors.Is y a la vez extraer el detalle
// con errors.As sin re-derivar nada.
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrCustomerNotFound    = errors.New("cliente no encontrado")
	ErrEmptyCart           = errors.New("el carrito está vacío")
	ErrNonPositiveQuantity = errors.New("la cantidad debe ser mayor que cero")
	ErrInvalidPercent      = errors.New("porcentaje fuera del rango [0,100]")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrUnderpayment        = errors.New("pago insuficiente")
	ErrDuplicateName       = errors.New("nombre duplicado")
	ErrDuplicateCode       = errors.New("código duplicado")
)

// InsufficientStockError detalla qué producto no alcanza y por cuánto.
type InsufficientStockError struct {
	ProductID   string
	ProductCode string
	ProductName string
	Available   decimal.Decimal
	Requested   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s (disponible %s, solicitado %s)",
		e.ProductName, e.Available.String(), e.Requested.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// UnderpaymentError detalla el faltante cuando lo pagado no cubre el total.
type UnderpaymentError struct {
	GrandTotal decimal.Decimal
	PaidAmount decimal.Decimal
	Shortfall  decimal.Decimal
}

func (e *UnderpaymentError) Error() string {
	return fmt.Sprintf("el monto pagado (%s) es menor que el total (%s)",
		e.PaidAmount.StringFixed(2), e.GrandTotal.StringFixed(2))
}

func (e *UnderpaymentError) Unwrap() error { return ErrUnderpayment }

// ProductNotFoundError identifica el producto faltante dentro de un lote.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto no encontrado (id=%s)", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrProductNotFound }
