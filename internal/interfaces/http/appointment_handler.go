package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lavapro/lavapro-api/internal/application/booking"
	"github.com/lavapro/lavapro-api/internal/application/dto"
)

// AppointmentHandler maneja la agenda de citas del taller (protegido).
type AppointmentHandler struct {
	uc *booking.AppointmentUseCase
}

// NewAppointmentHandler construye el handler.
func NewAppointmentHandler(uc *booking.AppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{uc: uc}
}

// List godoc
// @Summary      Listar citas
// @Tags         appointments
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtro por estado"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.AppointmentListResponse
// @Router       /api/appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant_id requerido"})
	}
	status := c.Query("status")
	limit, offset := pageParams(c)
	out, err := h.uc.List(tenantID, status, limit, offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// PatchStatus godoc
// @Summary      Cambiar el estado de una cita
// @Description  Pasar a IN_PROGRESS convierte la cita en orden de lavado.
// @Tags         appointments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la cita"
// @Param        body  body  dto.PatchAppointmentRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.AppointmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/appointments/{id} [patch]
func (h *AppointmentHandler) PatchStatus(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	id := c.Params("id")
	var in dto.PatchAppointmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status es requerido"})
	}
	out, err := h.uc.PatchStatus(c.Context(), tenantID, id, in)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
