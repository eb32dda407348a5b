package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación de solo lectura. Va siempre contra el
// pool: los reportes no participan de transacciones de escritura.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesByDay suma grand_total por día calendario dentro de [start, end].
func (r *ReportRepo) SalesByDay(ctx context.Context, start, end time.Time) ([]repository.DailySalesResult, error) {
	query := `
		SELECT date_trunc('day', datetime) AS day, SUM(grand_total) AS total
		FROM invoices
		WHERE datetime BETWEEN $1 AND $2
		GROUP BY day
		ORDER BY day`
	rows, err := r.pool.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var results []repository.DailySalesResult
	for rows.Next() {
		var res repository.DailySalesResult
		if err := rows.Scan(&res.Day, &res.Total); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// StockLevels foto del stock actual de los productos activos.
func (r *ReportRepo) StockLevels(ctx context.Context) ([]repository.StockLevelResult, error) {
	query := `
		SELECT id, code, name, category, stock, restock_level
		FROM products
		WHERE active
		ORDER BY category, name`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stock levels: %w", err)
	}
	defer rows.Close()
	var results []repository.StockLevelResult
	for rows.Next() {
		var res repository.StockLevelResult
		err := rows.Scan(&res.ProductID, &res.Code, &res.Name, &res.Category,
			&res.Stock, &res.RestockLevel)
		if err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// AverageActiveStock promedio de stock de los productos activos. Sin
// productos activos devuelve cero.
func (r *ReportRepo) AverageActiveStock(ctx context.Context) (decimal.Decimal, error) {
	var avg decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(AVG(stock), 0) FROM products WHERE active`,
	).Scan(&avg)
	if err != nil {
		return decimal.Zero, fmt.Errorf("average active stock: %w", err)
	}
	return avg, nil
}

// SalesDetails líneas de venta individuales desde `since` (para análisis de
// movimiento por producto).
func (r *ReportRepo) SalesDetails(ctx context.Context, since time.Time) ([]repository.SalesDetailResult, error) {
	query := `
		SELECT ii.product_name, ii.quantity, date_trunc('day', i.datetime) AS day
		FROM invoice_items ii
		JOIN invoices i ON i.id = ii.invoice_id
		WHERE i.datetime >= $1
		ORDER BY i.datetime`
	rows, err := r.pool.Query(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("sales details: %w", err)
	}
	defer rows.Close()
	var results []repository.SalesDetailResult
	for rows.Next() {
		var res repository.SalesDetailResult
		if err := rows.Scan(&res.ProductName, &res.Quantity, &res.Day); err != nil {
			return nil, fmt.Errorf("scan sales detail: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}
