package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/lulabtechnology/saas-clinicas/internal/config"
	"github.com/lulabtechnology/saas-clinicas/internal/database"
	"github.com/lulabtechnology/saas-clinicas/internal/middleware"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/auth"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/availability"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/booking"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/catalog"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/events"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/messaging"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/payment"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/stats"
	jwtsvc "github.com/lulabtechnology/saas-clinicas/internal/pkg/jwt"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	tenantRepo := repository.NewTenantRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	staffRepo := repository.NewStaffRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	paymentProvider, err := payment.NewProvider(cfg.PaymentsProvider, paymentRepo, bookingRepo, bookingRepo, cfg.PaymentWebhookSecret)
	if err != nil {
		log.Fatalf("payments: %v", err)
	}
	messenger, err := messaging.NewProvider(cfg.MessagingProvider, messageRepo, bookingRepo, log.Printf)
	if err != nil {
		log.Fatalf("messaging: %v", err)
	}
	dispatcher := messaging.NewDispatcher(messageRepo, messenger, cfg.DispatchBatchSize, log.Printf)

	hub := events.NewHub()

	authService := auth.NewService(staffRepo, j)
	authHandler := auth.NewHandler(authService)

	availabilityService := availability.NewService(tenantRepo, catalogRepo, availabilityRepo, bookingRepo)
	availabilityHandler := availability.NewHandler(availabilityService)

	catalogService := catalog.NewService(tenantRepo, catalogRepo, availabilityRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(tenantRepo, catalogRepo, bookingRepo, paymentProvider, messenger, hub, log.Printf)
	bookingHandler := booking.NewHandler(bookingService)

	paymentHandler := payment.NewHandler(paymentProvider, paymentRepo)
	messagingHandler := messaging.NewHandler(dispatcher, cfg.CronSecret)

	statsService := stats.NewService(tenantRepo, bookingRepo, paymentRepo)
	statsHandler := stats.NewHandler(statsService)

	eventsHandler := events.NewHandler(hub, j)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public: patient-facing widget
		authHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		bookingHandler.RegisterPublicRoutes(v1)
		paymentHandler.RegisterPublicRoutes(v1)

		// external schedulers hit this with CRON_SECRET
		messagingHandler.RegisterRoutes(v1)

		// authenticates via ?token=, not the Authorization header
		eventsHandler.RegisterRoutes(v1)

		// staff dashboard, tenant-scoped via JWT claims
		staff := v1.Group("/staff")
		staff.Use(middleware.JWTAuth(j))
		{
			bookingHandler.RegisterStaffRoutes(staff)
			statsHandler.RegisterStaffRoutes(staff)
			paymentHandler.RegisterStaffRoutes(staff)

			admin := staff.Group("/")
			admin.Use(middleware.AdminOnly())
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	log.Printf("level=info msg=api listening port=%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
