package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lavapro/lavapro-api/internal/application/auth"
	"github.com/lavapro/lavapro-api/internal/application/booking"
	"github.com/lavapro/lavapro-api/internal/application/fulfillment"
	"github.com/lavapro/lavapro-api/internal/application/usecase"
	"github.com/lavapro/lavapro-api/internal/infrastructure/notify"
	infrapdf "github.com/lavapro/lavapro-api/internal/infrastructure/pdf"
	"github.com/lavapro/lavapro-api/internal/infrastructure/postgres"
	"github.com/lavapro/lavapro-api/internal/infrastructure/scheduler"
	httpRouter "github.com/lavapro/lavapro-api/internal/interfaces/http"
	"github.com/lavapro/lavapro-api/pkg/config"
	"github.com/lavapro/lavapro-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	vehicleRepo := postgres.NewVehicleRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones: Twilio si hay credenciales, si no solo log (modo dev)
	var dispatcher fulfillment.NotificationDispatcher
	if cfg.Twilio.AccountSID != "" {
		dispatcher = notify.NewTwilioDispatcher(cfg.Twilio, log)
	} else {
		dispatcher = notify.NewLogDispatcher(log)
	}

	convertUC := fulfillment.NewConvertAppointmentUseCase(txRunner, tenantRepo)
	createOrderUC := fulfillment.NewCreateOrderUseCase(txRunner)
	updateStatusUC := fulfillment.NewUpdateOrderStatusUseCase(txRunner, dispatcher, log)
	loyaltyUC := fulfillment.NewLoyaltyUseCase(customerRepo, tenantRepo, cfg.Loyalty.DefaultCycle)

	// PDF: comanda imprimible de la orden
	receiptGen := infrapdf.NewMarotoReceiptGenerator(cfg.App.BookingBaseURL)
	orderQueryUC := usecase.NewOrderQueryUseCase(orderRepo, customerRepo, vehicleRepo, tenantRepo, receiptGen)

	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo, tenantRepo)
	vehicleUC := usecase.NewVehicleUseCase(vehicleRepo, customerRepo)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, productRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	bookingUC := booking.NewPublicBookingUseCase(tenantRepo, appointmentRepo, serviceRepo)
	appointmentUC := booking.NewAppointmentUseCase(appointmentRepo, convertUC)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// Barrido diario de insumos bajo el punto de reposición
	sweeper := scheduler.NewLowStockSweeper(tenantRepo, productRepo, dispatcher, log)
	if err := sweeper.Start(); err != nil {
		log.Fatal().Err(err).Msg("programar barrido de stock")
	}
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "LavaPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		TenantUC:      tenantUC,
		CustomerUC:    customerUC,
		VehicleUC:     vehicleUC,
		ServiceUC:     serviceUC,
		ProductUC:     productUC,
		OrderQueryUC:  orderQueryUC,
		CreateOrder:   createOrderUC,
		UpdateStatus:  updateStatusUC,
		LoyaltyUC:     loyaltyUC,
		AppointmentUC: appointmentUC,
		BookingUC:     bookingUC,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
