package repository

import "github.com/tu-usuario/supermercado-pos/internal/domain/entity"

// ProductRepository puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	// List devuelve productos ordenados por categoría y nombre. Con activeOnly
	// solo los activos; search filtra por código o nombre (subcadena).
	List(activeOnly bool, search string) ([]*entity.Product, error)
	GetByIDs(ids []string) ([]*entity.Product, error)
	// Update no modifica Stock: el stock solo cambia vía StockRepository.
	Update(product *entity.Product) error
	Deactivate(id string) error
}
