package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

func TestParseOrderStatus(t *testing.T) {
	st, ok := entity.ParseOrderStatus("WASHING")
	assert.True(t, ok)
	assert.Equal(t, entity.OrderStatusWashing, st)

	_, ok = entity.ParseOrderStatus("washing")
	assert.False(t, ok, "los estados son sensibles a mayúsculas")

	_, ok = entity.ParseOrderStatus("FLYING")
	assert.False(t, ok)
}

func TestEntersCheckpoint_PrimeraEntrada(t *testing.T) {
	cases := []struct {
		name       string
		prev, next entity.OrderStatus
		checkpoint entity.OrderStatus
		want       bool
	}{
		{"avance nominal a FINISHING", entity.OrderStatusWashing, entity.OrderStatusFinishing, entity.OrderStatusFinishing, true},
		{"salto directo AWAITING a FINISHING", entity.OrderStatusAwaiting, entity.OrderStatusFinishing, entity.OrderStatusFinishing, true},
		{"reenviar el mismo estado no dispara", entity.OrderStatusFinishing, entity.OrderStatusFinishing, entity.OrderStatusFinishing, false},
		{"retroceso desde READY no dispara", entity.OrderStatusReady, entity.OrderStatusFinishing, entity.OrderStatusFinishing, false},
		{"flujo nominal FINISHING a READY", entity.OrderStatusFinishing, entity.OrderStatusReady, entity.OrderStatusReady, true},
		{"retroceso DELIVERED a READY no dispara", entity.OrderStatusDelivered, entity.OrderStatusReady, entity.OrderStatusReady, false},
		{"salto AWAITING a DELIVERED dispara DELIVERED", entity.OrderStatusAwaiting, entity.OrderStatusDelivered, entity.OrderStatusDelivered, true},
		{"destino distinto del checkpoint no dispara", entity.OrderStatusWashing, entity.OrderStatusReady, entity.OrderStatusFinishing, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, entity.EntersCheckpoint(tc.prev, tc.next, tc.checkpoint))
		})
	}
}

func TestAppointmentStatusFor_TablaCompleta(t *testing.T) {
	// Los estados activos mapean a IN_PROGRESS; los finales a COMPLETED.
	cases := map[entity.OrderStatus]entity.AppointmentStatus{
		entity.OrderStatusAwaiting:  entity.AppointmentStatusInProgress,
		entity.OrderStatusWashing:   entity.AppointmentStatusInProgress,
		entity.OrderStatusFinishing: entity.AppointmentStatusInProgress,
		entity.OrderStatusReady:     entity.AppointmentStatusCompleted,
		entity.OrderStatusDelivered: entity.AppointmentStatusCompleted,
	}
	for orderSt, want := range cases {
		got, ok := entity.AppointmentStatusFor(orderSt)
		assert.True(t, ok, "todo estado de orden debe tener mapeo")
		assert.Equal(t, want, got, "mapeo de %s", orderSt)
	}

	_, ok := entity.AppointmentStatusFor("FLYING")
	assert.False(t, ok, "estado desconocido no propaga")
}

func TestParseAppointmentStatus(t *testing.T) {
	st, ok := entity.ParseAppointmentStatus("CANCELED")
	assert.True(t, ok)
	assert.Equal(t, entity.AppointmentStatusCanceled, st)

	_, ok = entity.ParseAppointmentStatus("DONE")
	assert.False(t, ok)
}
