package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lavapro/lavapro-api/internal/application/booking"
	"github.com/lavapro/lavapro-api/internal/application/dto"
)

// BookingHandler maneja la página pública de reservas. Sin autenticación;
// el taller se resuelve por el slug de la URL.
type BookingHandler struct {
	uc *booking.PublicBookingUseCase
}

// NewBookingHandler construye el handler.
func NewBookingHandler(uc *booking.PublicBookingUseCase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

// ListServices godoc
// @Summary      Catálogo público de servicios del taller
// @Tags         public
// @Produce      json
// @Param        slug  path  string  true  "Slug del taller"
// @Success      200   {array}  dto.PublicServiceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/{slug}/services [get]
func (h *BookingHandler) ListServices(c *fiber.Ctx) error {
	slug := c.Params("slug")
	out, err := h.uc.ListServices(slug)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// CreateAppointment godoc
// @Summary      Reservar una cita
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug  path  string  true  "Slug del taller"
// @Param        body  body  dto.CreateAppointmentRequest  true  "Datos de la reserva"
// @Success      201   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/public/{slug}/appointments [post]
func (h *BookingHandler) CreateAppointment(c *fiber.Ctx) error {
	slug := c.Params("slug")
	var in dto.CreateAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateAppointment(c.Context(), slug, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
