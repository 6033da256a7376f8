package fulfillment

import (
	"github.com/shopspring/decimal"

	"github.com/lavapro/lavapro-api/internal/domain/entity"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
)

// applyConsumption descuenta el consumo agregado de la orden: por cada ítem se
// lee la receta VIGENTE del servicio (dato operativo, no de precio: el snapshot
// de la orden congela precios, no recetas) y se acumulan los descuentos por
// producto antes de aplicarlos en un UPDATE atómico cada uno.
//
// No hay reserva ni chequeo previo: el stock puede quedar negativo y eso es
// señal operativa, no error. Se registra en el log y lo recoge el barrido
// diario de reposición.
func (uc *UpdateOrderStatusUseCase) applyConsumption(
	tenantID string,
	items []entity.OrderItem,
	serviceRepo repository.ServiceRepository,
	productRepo repository.ProductRepository,
) error {
	totals := make(map[string]decimal.Decimal)
	for _, item := range items {
		lines, err := serviceRepo.ConsumptionByService(item.ServiceID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			totals[line.ProductID] = totals[line.ProductID].Add(line.Quantity)
		}
	}

	for productID, qty := range totals {
		remaining, err := productRepo.AdjustQuantity(tenantID, productID, qty.Neg())
		if err != nil {
			return err
		}
		if !remaining.GreaterThan(decimal.Zero) {
			uc.log.Warn().
				Str("tenant_id", tenantID).
				Str("product_id", productID).
				Str("remaining", remaining.String()).
				Msg("insumo agotado tras descuento de consumo")
		}
	}
	return nil
}
