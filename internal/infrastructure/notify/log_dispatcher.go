package notify

import (
	"context"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/pkg/logger"
)

var _ fulfillment.NotificationDispatcher = (*LogDispatcher)(nil)

// LogDispatcher registra la notificación en el log en lugar de enviarla.
// Se usa en desarrollo cuando Twilio no está configurado.
type LogDispatcher struct {
	log *logger.Logger
}

func NewLogDispatcher(log *logger.Logger) *LogDispatcher {
	return &LogDispatcher{log: log}
}

func (d *LogDispatcher) Send(_ context.Context, toPhone string, template fulfillment.NotificationTemplate, vars map[string]string) error {
	body, err := renderTemplate(template, vars)
	if err != nil {
		return err
	}
	d.log.Info().Str("to", toPhone).Str("template", string(template)).Str("body", body).Msg("notificación simulada")
	return nil
}
