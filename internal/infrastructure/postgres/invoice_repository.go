package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, datetime, customer_id, subtotal, discount, tax_total, grand_total, payment_method, paid_amount, change_due, notes, created_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
// Las facturas se insertan siempre dentro de la transacción de venta.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.Datetime, &inv.CustomerID, &inv.Subtotal, &inv.DiscountTotal,
		&inv.TaxTotal, &inv.GrandTotal, &inv.PaymentMethod, &inv.PaidAmount,
		&inv.ChangeDue, &inv.Notes, &inv.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

// Create inserta la cabecera de la factura.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Datetime, invoice.CustomerID, invoice.Subtotal,
		invoice.DiscountTotal, invoice.TaxTotal, invoice.GrandTotal,
		invoice.PaymentMethod, invoice.PaidAmount, invoice.ChangeDue,
		invoice.Notes, invoice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de la factura con la foto del producto al
// momento de la venta (código, nombre, precio y tasa congelados).
func (r *InvoiceRepo) CreateLine(line *entity.InvoiceLine) error {
	query := `
		INSERT INTO invoice_items
			(id, invoice_id, product_id, product_code, product_name, quantity, unit_price, tax_rate, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.InvoiceID, line.ProductID, line.ProductCode, line.ProductName,
		line.Quantity, line.UnitPrice, line.TaxRate, line.LineTotal,
	)
	if err != nil {
		return fmt.Errorf("insert invoice line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una factura.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetLines obtiene las líneas de una factura.
func (r *InvoiceRepo) GetLines(invoiceID string) ([]*entity.InvoiceLine, error) {
	query := `
		SELECT id, invoice_id, product_id, product_code, product_name, quantity, unit_price, tax_rate, line_total
		FROM invoice_items WHERE invoice_id = $1
		ORDER BY product_name`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.InvoiceLine
	for rows.Next() {
		var l entity.InvoiceLine
		err := rows.Scan(
			&l.ID, &l.InvoiceID, &l.ProductID, &l.ProductCode, &l.ProductName,
			&l.Quantity, &l.UnitPrice, &l.TaxRate, &l.LineTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

// ListBetween lista facturas con datetime en [start, end], más recientes primero.
func (r *InvoiceRepo) ListBetween(start, end time.Time) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE datetime BETWEEN $1 AND $2
		ORDER BY datetime DESC`
	rows, err := r.q.Query(context.Background(), query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}
