package repository

import (
	"time"

	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
)

// InvoiceRepository puerto de persistencia de facturas.
// Las facturas son de solo inserción: no existe Update ni Delete.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateLine(line *entity.InvoiceLine) error
	GetByID(id string) (*entity.Invoice, error)
	GetLines(invoiceID string) ([]*entity.InvoiceLine, error)
	ListBetween(start, end time.Time) ([]*entity.Invoice, error)
}
