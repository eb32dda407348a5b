package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, phone, email, loyalty_points, active, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.LoyaltyPoints,
		&c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente. Nombre duplicado -> ErrDuplicateName
// (constraint UNIQUE global, sin distinción de scope activo/inactivo).
func (r *CustomerRepo) Create(customer *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.LoyaltyPoints, customer.Active, customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return c, nil
}

// List lista clientes ordenados por nombre; search filtra por nombre.
func (r *CustomerRepo) List(activeOnly bool, search string) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE ($1 = FALSE OR active)`
	args := []any{activeOnly}
	if search != "" {
		query += ` AND name ILIKE $2`
		args = append(args, "%"+search+"%")
	}
	query += ` ORDER BY name`

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza un cliente existente.
func (r *CustomerRepo) Update(customer *entity.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, phone = $3, email = $4, loyalty_points = $5, active = $6, updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		customer.ID, customer.Name, customer.Phone, customer.Email,
		customer.LoyaltyPoints, customer.Active, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

// Deactivate baja lógica del cliente.
func (r *CustomerRepo) Deactivate(id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE customers SET active = FALSE, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate customer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
