package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lavapro/lavapro-api/internal/application/auth"
	"github.com/lavapro/lavapro-api/internal/application/booking"
	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/application/usecase"
	"github.com/lavapro/lavapro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	TenantUC      *usecase.TenantUseCase
	CustomerUC    *usecase.CustomerUseCase
	VehicleUC     *usecase.VehicleUseCase
	ServiceUC     *usecase.ServiceUseCase
	ProductUC     *usecase.ProductUseCase
	OrderQueryUC  *usecase.OrderQueryUseCase
	CreateOrder   *fulfillment.CreateOrderUseCase
	UpdateStatus  *fulfillment.UpdateOrderStatusUseCase
	LoyaltyUC     *fulfillment.LoyaltyUseCase
	AppointmentUC *booking.AppointmentUseCase
	BookingUC     *booking.PublicBookingUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Alta de taller (público, signup)
	tenantHandler := NewTenantHandler(deps.TenantUC)
	api.Post("/tenants", tenantHandler.Create)

	// Página pública de reservas (sin token, resuelta por slug)
	public := api.Group("/public/:slug")
	bookingHandler := NewBookingHandler(deps.BookingUC)
	public.Get("/services", bookingHandler.ListServices)
	public.Post("/appointments", bookingHandler.CreateAppointment)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Configuración del taller; la escritura es solo para el dueño
	protected.Get("/tenants/me", tenantHandler.Me)
	protected.Put("/tenants/me", RequireRole(entity.RoleOwner), tenantHandler.Update)

	// Customers (protegido, incluye fidelidad)
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.LoyaltyUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/loyalty", customerHandler.Loyalty)

	// Vehicles (protegido)
	vehicles := protected.Group("/vehicles")
	vehicleHandler := NewVehicleHandler(deps.VehicleUC)
	vehicles.Post("/", vehicleHandler.Create)
	vehicles.Get("/", vehicleHandler.ListByCustomer)
	vehicles.Put("/:id", vehicleHandler.Update)
	vehicles.Delete("/:id", vehicleHandler.Delete)

	// Services (protegido)
	services := protected.Group("/services")
	serviceHandler := NewServiceHandler(deps.ServiceUC)
	services.Post("/", serviceHandler.Create)
	services.Get("/", serviceHandler.List)
	services.Get("/:id", serviceHandler.GetByID)
	services.Put("/:id", serviceHandler.Update)
	services.Delete("/:id", serviceHandler.Delete)

	// Products (protegido, insumos)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/adjust", productHandler.Adjust)
	products.Delete("/:id", productHandler.Delete)

	// Orders (protegido, flujo principal del taller)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.UpdateStatus, deps.OrderQueryUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Patch("/:id", orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)

	// Appointments (protegido, agenda interna)
	appointments := protected.Group("/appointments")
	appointmentHandler := NewAppointmentHandler(deps.AppointmentUC)
	appointments.Get("/", appointmentHandler.List)
	appointments.Patch("/:id", appointmentHandler.PatchStatus)
}
