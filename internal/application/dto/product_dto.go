package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de insumo.
type CreateProductRequest struct {
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Unit         string          `json:"unit"`
}

// UpdateProductRequest edición de insumo. La cantidad se ajusta con delta
// atómico, no con asignación directa.
type UpdateProductRequest struct {
	Name         *string          `json:"name"`
	ReorderPoint *decimal.Decimal `json:"reorder_point"`
	Unit         *string          `json:"unit"`
}

// AdjustProductRequest ajuste manual de stock (reposición o merma).
type AdjustProductRequest struct {
	Delta decimal.Decimal `json:"delta"`
}

// ProductResponse insumo.
type ProductResponse struct {
	ID           string          `json:"id"`
	TenantID     string          `json:"tenant_id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	Unit         string          `json:"unit"`
}
