package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// ProductUseCase CRUD de insumos consumibles.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un insumo con su stock inicial y punto de reposición.
func (uc *ProductUseCase) Create(tenantID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.LessThan(decimal.Zero) || in.ReorderPoint.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Name:         in.Name,
		Quantity:     in.Quantity,
		ReorderPoint: in.ReorderPoint,
		Unit:         in.Unit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un insumo del tenant.
func (uc *ProductUseCase) GetByID(tenantID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// List insumos del tenant.
func (uc *ProductUseCase) List(tenantID string, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.repo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

// Update edita nombre, unidad y punto de reposición. La cantidad no se asigna
// directo: se ajusta con Adjust (delta atómico).
func (uc *ProductUseCase) Update(tenantID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.ReorderPoint != nil {
		if in.ReorderPoint.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderPoint = *in.ReorderPoint
	}
	if in.Unit != nil {
		product.Unit = *in.Unit
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Adjust ajuste manual de stock (reposición positiva, merma negativa).
func (uc *ProductUseCase) Adjust(tenantID, id string, in dto.AdjustProductRequest) (*dto.ProductResponse, error) {
	if in.Delta.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	newQty, err := uc.repo.AdjustQuantity(tenantID, id, in.Delta)
	if err != nil {
		return nil, err
	}
	product.Quantity = newQty
	return toProductResponse(product), nil
}

// Delete elimina el insumo; ErrConflict si alguna receta lo referencia.
func (uc *ProductUseCase) Delete(tenantID, id string) error {
	product, err := uc.repo.GetByID(tenantID, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(tenantID, id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Name:         p.Name,
		Quantity:     p.Quantity,
		ReorderPoint: p.ReorderPoint,
		Unit:         p.Unit,
	}
}
