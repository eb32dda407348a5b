package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DDL del esquema. Los montos y cantidades son NUMERIC (mapeados a
// shopspring/decimal por el codec del pool). El CHECK de stock >= 0 es la
// última línea de defensa; el ledger verifica antes bajo bloqueo de fila.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS products (
    id            UUID PRIMARY KEY,
    code          TEXT UNIQUE NOT NULL,
    name          TEXT NOT NULL,
    category      TEXT NOT NULL DEFAULT '',
    price         NUMERIC NOT NULL CHECK (price >= 0),
    tax_rate      NUMERIC NOT NULL DEFAULT 0 CHECK (tax_rate >= 0 AND tax_rate <= 100),
    stock         NUMERIC NOT NULL DEFAULT 0 CHECK (stock >= 0),
    restock_level NUMERIC NOT NULL DEFAULT 5 CHECK (restock_level >= 0),
    active        BOOLEAN NOT NULL DEFAULT TRUE,
    created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS customers (
    id             UUID PRIMARY KEY,
    name           TEXT UNIQUE NOT NULL,
    phone          TEXT NOT NULL DEFAULT '',
    email          TEXT NOT NULL DEFAULT '',
    loyalty_points INTEGER NOT NULL DEFAULT 0 CHECK (loyalty_points >= 0),
    active         BOOLEAN NOT NULL DEFAULT TRUE,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS invoices (
    id             UUID PRIMARY KEY,
    datetime       TIMESTAMPTZ NOT NULL,
    customer_id    UUID REFERENCES customers(id),
    subtotal       NUMERIC NOT NULL,
    discount       NUMERIC NOT NULL,
    tax_total      NUMERIC NOT NULL,
    grand_total    NUMERIC NOT NULL,
    payment_method TEXT NOT NULL,
    paid_amount    NUMERIC NOT NULL,
    change_due     NUMERIC NOT NULL CHECK (change_due >= 0),
    notes          TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_invoices_datetime ON invoices (datetime);

CREATE TABLE IF NOT EXISTS invoice_items (
    id           UUID PRIMARY KEY,
    invoice_id   UUID NOT NULL REFERENCES invoices(id),
    product_id   UUID NOT NULL REFERENCES products(id),
    product_code TEXT NOT NULL,
    product_name TEXT NOT NULL,
    quantity     NUMERIC NOT NULL CHECK (quantity > 0),
    unit_price   NUMERIC NOT NULL,
    tax_rate     NUMERIC NOT NULL,
    line_total   NUMERIC NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_invoice_items_invoice ON invoice_items (invoice_id);
`

// EnsureSchema crea las tablas si no existen (equivalente a una migración
// inicial embebida).
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("crear esquema: %w", err)
	}
	return nil
}
