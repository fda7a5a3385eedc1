package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rentwheels/fleet-api/internal/audit"
	"github.com/rentwheels/fleet-api/internal/auth"
	"github.com/rentwheels/fleet-api/internal/config"
	"github.com/rentwheels/fleet-api/internal/handlers"
	infraRepo "github.com/rentwheels/fleet-api/internal/infra/repository"
	"github.com/rentwheels/fleet-api/internal/logger"
	"github.com/rentwheels/fleet-api/internal/middleware"
	"github.com/rentwheels/fleet-api/internal/models"
	"github.com/rentwheels/fleet-api/internal/storage"
	ucBooking "github.com/rentwheels/fleet-api/internal/usecase/booking"
	ucReport "github.com/rentwheels/fleet-api/internal/usecase/report"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	log logger.ILogger,
	denylist auth.TokenDenylist,
	store storage.Storage,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	// ======================================================
	// USE CASES
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(bookingRepo, auditDispatcher)
	transitionBookingUC := ucBooking.NewTransitionBooking(bookingRepo, auditDispatcher)
	cancelBookingUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	assignDriverUC := ucBooking.NewAssignDriver(bookingRepo, auditDispatcher)
	submitPaymentUC := ucBooking.NewSubmitPayment(bookingRepo, auditDispatcher)

	reportService := ucReport.NewService(db)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, denylist)
	carHandler := handlers.NewCarHandler(db, bookingRepo)
	bookingHandler := handlers.NewBookingHandler(
		db,
		createBookingUC,
		transitionBookingUC,
		cancelBookingUC,
		assignDriverUC,
	)
	packageHandler := handlers.NewPackageHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, submitPaymentUC)
	maintenanceHandler := handlers.NewMaintenanceHandler(db)
	reportHandler := handlers.NewReportHandler(reportService)
	uploadHandler := handlers.NewUploadHandler(store, cfg.ImageMaxWidth)
	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	if cfg.StorageBackend == "local" {
		r.Static("/uploads", cfg.UploadDir)
	}

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/cars", carHandler.List)
		api.GET("/cars/:id", carHandler.Get)
		api.GET("/cars/:id/availability", carHandler.Availability)

		api.GET("/packages", packageHandler.List)
		api.GET("/packages/:id", packageHandler.Get)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, denylist))
		{
			secured.POST("/auth/logout", authHandler.Logout)
			secured.GET("/auth/profile", authHandler.GetProfile)
			secured.PATCH("/auth/profile", authHandler.UpdateProfile)

			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings/my", bookingHandler.ListMy)
			secured.GET("/bookings/:id", bookingHandler.Get)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)
			secured.POST("/bookings/:id/payments", paymentHandler.Submit)

			secured.POST("/upload/document", uploadHandler.Document)

			// ------------------------------
			// STAFF
			// ------------------------------
			staff := secured.Group("/")
			staff.Use(middleware.RequireRoles(models.RoleEmployee, models.RoleAdmin))
			{
				staff.GET("/bookings", bookingHandler.List)
				staff.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
				staff.PATCH("/bookings/:id/assign-driver", bookingHandler.AssignDriver)

				staff.POST("/cars", carHandler.Create)
				staff.PATCH("/cars/:id", carHandler.Update)

				staff.GET("/maintenance", maintenanceHandler.List)
				staff.POST("/maintenance", maintenanceHandler.Create)
				staff.PATCH("/maintenance/:id", maintenanceHandler.Update)

				staff.GET("/payments", paymentHandler.List)

				staff.GET("/reports/financials", reportHandler.Financials)
				staff.GET("/reports/transactions", reportHandler.Transactions)

				staff.GET("/users", userHandler.List)
				staff.GET("/users/:id", userHandler.Get)

				staff.GET("/audit-logs", auditLogsHandler.List)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/")
			admin.Use(middleware.RequireRoles(models.RoleAdmin))
			{
				admin.DELETE("/cars/:id", carHandler.Delete)

				admin.POST("/packages", packageHandler.Create)
				admin.PATCH("/packages/:id", packageHandler.Update)
				admin.DELETE("/packages/:id", packageHandler.Delete)

				admin.PATCH("/users/:id/role", userHandler.UpdateRole)
			}
		}
	}
}
