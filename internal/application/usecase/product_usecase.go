package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/supermercado-pos/internal/application/dto"
	"github.com/tu-usuario/supermercado-pos/internal/domain"
	"github.com/tu-usuario/supermercado-pos/internal/domain/entity"
	"github.com/tu-usuario/supermercado-pos/internal/domain/pricing"
	"github.com/tu-usuario/supermercado-pos/internal/domain/repository"
)

// ProductUseCase CRUD del catálogo de productos. El stock inicial se fija en el
// alta; después solo cambia vía ventas o reposición, nunca por Update.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create da de alta un producto activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	code := strings.TrimSpace(in.Code)
	name := strings.TrimSpace(in.Name)
	if code == "" || name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.Stock.IsNegative() || in.RestockLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := pricing.ValidatePercent(in.TaxRate); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Code:         code,
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Price:        in.Price,
		TaxRate:      in.TaxRate,
		Stock:        in.Stock,
		RestockLevel: in.RestockLevel,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p), nil
}

// GetByCode obtiene un producto por su código (escaneo de código de barras).
func (uc *ProductUseCase) GetByCode(ctx context.Context, code string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByCode(strings.TrimSpace(code))
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(p), nil
}

// List lista productos; activeOnly limita a los activos, search filtra por
// código o nombre.
func (uc *ProductUseCase) List(ctx context.Context, activeOnly bool, search string) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(activeOnly, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update edita los datos del producto (sin tocar stock ni código).
// Las líneas de facturas ya confirmadas no se ven afectadas: llevan snapshot.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Price.IsNegative() || in.RestockLevel.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := pricing.ValidatePercent(in.TaxRate); err != nil {
		return nil, err
	}

	p.Name = name
	p.Category = strings.TrimSpace(in.Category)
	p.Price = in.Price
	p.TaxRate = in.TaxRate
	p.RestockLevel = in.RestockLevel
	p.Active = in.Active
	p.UpdatedAt = time.Now()
	if err := uc.repo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Deactivate baja lógica: el producto deja de ser vendible pero su historial
// de facturas queda intacto.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Deactivate(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Code:         p.Code,
		Name:         p.Name,
		Category:     p.Category,
		Price:        p.Price,
		TaxRate:      p.TaxRate,
		Stock:        p.Stock,
		RestockLevel: p.RestockLevel,
		Active:       p.Active,
	}
}
