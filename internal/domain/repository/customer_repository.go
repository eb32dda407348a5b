package repository

import "github.com/tu-usuario/supermercado-pos/internal/domain/entity"

// CustomerRepository puerto de persistencia de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(activeOnly bool, search string) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Deactivate(id string) error
}
