// Package scheduler ejecuta tareas periódicas del backend.
package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/domain/repository"
	"github.com/lavapro/lavapro-api/pkg/logger"
)

// LowStockSweeper recorre los talleres activos una vez al día y avisa por
// cada producto que quedó en o por debajo de su punto de reposición. El
// consumo de inventario permite saldo negativo, así que este barrido es la
// alerta operativa que cierra ese ciclo.
type LowStockSweeper struct {
	tenants    repository.TenantRepository
	products   repository.ProductRepository
	dispatcher fulfillment.NotificationDispatcher
	log        *logger.Logger
	cron       *cron.Cron
}

func NewLowStockSweeper(
	tenants repository.TenantRepository,
	products repository.ProductRepository,
	dispatcher fulfillment.NotificationDispatcher,
	log *logger.Logger,
) *LowStockSweeper {
	return &LowStockSweeper{
		tenants:    tenants,
		products:   products,
		dispatcher: dispatcher,
		log:        log,
		cron:       cron.New(),
	}
}

// Start programa el barrido diario a las 08:00.
func (s *LowStockSweeper) Start() error {
	if _, err := s.cron.AddFunc("0 8 * * *", s.Sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info().Msg("Barrido diario de stock bajo programado (08:00)")
	return nil
}

// Stop detiene el scheduler y espera los jobs en curso.
func (s *LowStockSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// Sweep una pasada completa. Exportado para poder dispararlo a mano.
func (s *LowStockSweeper) Sweep() {
	ctx := context.Background()
	tenants, err := s.tenants.ListActive()
	if err != nil {
		s.log.Error().Err(err).Msg("Barrido de stock: no se pudieron listar talleres")
		return
	}
	for _, t := range tenants {
		low, err := s.products.ListBelowReorderPoint(t.ID)
		if err != nil {
			s.log.Error().Err(err).Str("tenant_id", t.ID).Msg("Barrido de stock: consulta fallida")
			continue
		}
		for _, p := range low {
			s.log.Warn().
				Str("tenant_id", t.ID).
				Str("product_id", p.ID).
				Str("product", p.Name).
				Str("quantity", p.Quantity.String()).
				Msg("Producto en o por debajo del punto de reposición")

			if t.Phone == "" {
				continue
			}
			err := s.dispatcher.Send(ctx, t.Phone, fulfillment.TemplateLowStock, map[string]string{
				"product":  p.Name,
				"quantity": p.Quantity.String(),
				"unit":     p.Unit,
				"reorder":  p.ReorderPoint.String(),
			})
			if err != nil {
				s.log.Error().Err(err).Str("product_id", p.ID).Msg("Barrido de stock: aviso no enviado")
			}
		}
	}
}
