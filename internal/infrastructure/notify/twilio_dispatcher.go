package notify

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/pkg/config"
	"github.com/lavapro/lavapro-api/pkg/logger"
)

var _ fulfillment.NotificationDispatcher = (*TwilioDispatcher)(nil)

// TwilioDispatcher envía SMS al cliente a través de Twilio.
type TwilioDispatcher struct {
	client *twilio.RestClient
	from   string
	log    *logger.Logger
}

func NewTwilioDispatcher(cfg config.TwilioConfig, log *logger.Logger) *TwilioDispatcher {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return &TwilioDispatcher{client: client, from: cfg.FromNumber, log: log}
}

// Send arma el cuerpo según la plantilla y lo envía. El caller decide qué
// hacer con el error; el flujo de órdenes lo registra y continúa.
func (d *TwilioDispatcher) Send(ctx context.Context, toPhone string, template fulfillment.NotificationTemplate, vars map[string]string) error {
	body, err := renderTemplate(template, vars)
	if err != nil {
		return err
	}
	params := &openapi.CreateMessageParams{}
	params.SetTo(toPhone)
	params.SetFrom(d.from)
	params.SetBody(body)

	resp, err := d.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("twilio create message: %w", err)
	}
	sid := ""
	if resp.Sid != nil {
		sid = *resp.Sid
	}
	d.log.Info().Str("to", toPhone).Str("template", string(template)).Str("sid", sid).Msg("SMS enviado")
	return nil
}

func renderTemplate(template fulfillment.NotificationTemplate, vars map[string]string) (string, error) {
	switch template {
	case fulfillment.TemplateOrderReady:
		return fmt.Sprintf("Hola %s, tu vehículo está listo para retirar. Orden #%s.", vars["name"], vars["code"]), nil
	case fulfillment.TemplateOrderDelivered:
		return fmt.Sprintf("Gracias %s. Ganaste %s puntos de fidelidad, ya acumulas %s.", vars["name"], vars["earned"], vars["points"]), nil
	case fulfillment.TemplateLowStock:
		return fmt.Sprintf("Alerta de stock: %s quedó en %s %s (mínimo %s).", vars["product"], vars["quantity"], vars["unit"], vars["reorder"]), nil
	default:
		return "", fmt.Errorf("plantilla desconocida: %s", template)
	}
}
