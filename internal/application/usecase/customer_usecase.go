package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

// CustomerUseCase CRUD de clientes. El nombre es único a nivel global
// (constraint UNIQUE en la tabla); la colisión sale como ErrDuplicateName.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create da de alta un cliente activo.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.LoyaltyPoints < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	c := &entity.Customer{
		ID:            uuid.New().String(),
		Name:          name,
		Phone:         strings.TrimSpace(in.Phone),
		Email:         strings.TrimSpace(in.Email),
		LoyaltyPoints: in.LoyaltyPoints,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// GetByID obtiene un cliente por ID.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	return toCustomerResponse(c), nil
}

// List lista clientes; activeOnly limita a los activos, search filtra por nombre.
func (uc *CustomerUseCase) List(ctx context.Context, activeOnly bool, search string) ([]dto.CustomerResponse, error) {
	customers, err := uc.repo.List(activeOnly, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update edita los datos del cliente (incluye puntos de fidelidad: la venta
// no los modifica, se administran acá).
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCustomerNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.LoyaltyPoints < 0 {
		return nil, domain.ErrInvalidInput
	}

	c.Name = name
	c.Phone = strings.TrimSpace(in.Phone)
	c.Email = strings.TrimSpace(in.Email)
	c.LoyaltyPoints = in.LoyaltyPoints
	c.Active = in.Active
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// Deactivate baja lógica del cliente; sus facturas históricas no se tocan.
func (uc *CustomerUseCase) Deactivate(ctx context.Context, id string) error {
	c, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCustomerNotFound
	}
	return uc.repo.Deactivate(id)
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		LoyaltyPoints: c.LoyaltyPoints,
		Active:        c.Active,
	}
}
