package usecase

import (
	"context"

	"github.com/lavapro/lavapro-api/internal/application/dto"
	"github.com/lavapro/lavapro-api/internal/domain"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// ReceiptGenerator puerto para la comanda de la orden en PDF.
type ReceiptGenerator interface {
	GenerateReceipt(
		ctx context.Context,
		tenant *entity.Tenant,
		customer *entity.Customer,
		vehicle *entity.Vehicle,
		order *entity.ServiceOrder,
		items []entity.OrderItem,
	) ([]byte, error)
}

// OrderQueryUseCase lecturas de órdenes: detalle, listado y comanda PDF.
// Las mutaciones viven en internal/application/fulfillment.
type OrderQueryUseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	tenantRepo   repository.TenantRepository
	receipts     ReceiptGenerator
}

// NewOrderQueryUseCase construye el caso de uso.
func NewOrderQueryUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	tenantRepo repository.TenantRepository,
	receipts ReceiptGenerator,
) *OrderQueryUseCase {
	return &OrderQueryUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		tenantRepo:   tenantRepo,
		receipts:     receipts,
	}
}

// GetByID detalle de la orden con sus ítems.
func (uc *OrderQueryUseCase) GetByID(tenantID, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

// List órdenes del tenant con filtro opcional por estado.
func (uc *OrderQueryUseCase) List(tenantID, status string, limit, offset int) (*dto.OrderListResponse, error) {
	var st entity.OrderStatus
	if status != "" {
		parsed, ok := entity.ParseOrderStatus(status)
		if !ok {
			return nil, domain.ErrInvalidStatus
		}
		st = parsed
	}
	orders, err := uc.orderRepo.ListByTenant(tenantID, st, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]*dto.OrderResponse, 0, len(orders)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, o := range orders {
		out.Items = append(out.Items, toOrderResponse(o, nil))
	}
	return out, nil
}

// Receipt genera la comanda de la orden en PDF.
func (uc *OrderQueryUseCase) Receipt(ctx context.Context, tenantID, id string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(tenantID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.ItemsByOrder(order.ID)
	if err != nil {
		return nil, err
	}
	tenant, err := uc.tenantRepo.GetByID(tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := uc.customerRepo.GetByID(tenantID, order.CustomerID)
	if err != nil {
		return nil, err
	}
	vehicle, err := uc.vehicleRepo.GetByID(tenantID, order.VehicleID)
	if err != nil {
		return nil, err
	}
	if tenant == nil || customer == nil || vehicle == nil {
		return nil, domain.ErrNotFound
	}
	return uc.receipts.GenerateReceipt(ctx, tenant, customer, vehicle, order, items)
}

// toOrderResponse mapea la entidad al DTO (variante de lectura).
func toOrderResponse(o *entity.ServiceOrder, items []entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:                  o.ID,
		TenantID:            o.TenantID,
		SequentialCode:      o.SequentialCode,
		CustomerID:          o.CustomerID,
		VehicleID:           o.VehicleID,
		Status:              string(o.Status),
		Observations:        o.Observations,
		Total:               o.Total,
		EnteredAt:           o.EnteredAt,
		EstimatedReadyAt:    o.EstimatedReadyAt,
		CompletedAt:         o.CompletedAt,
		LinkedAppointmentID: o.LinkedAppointmentID,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ServiceID:     it.ServiceID,
			ServiceName:   it.ServiceName,
			PriceSnapshot: it.PriceSnapshot,
		})
	}
	return resp
}
