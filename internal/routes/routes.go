package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mediassist/internal/clinic"
	"mediassist/internal/config"
	"mediassist/internal/handlers"
	"mediassist/internal/metrics"
	"mediassist/internal/middleware"
	"mediassist/internal/models"
	"mediassist/internal/store"
)

// NewRouter builds the development API engine with its middleware and routes.
func NewRouter(cfg config.ServerConfig, stores *store.Set, log *zap.Logger, m *metrics.Collector) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log), middleware.Metrics(m))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	router.Use(cors.New(corsConfig))

	SetupRoutes(router, cfg, stores, log, m)
	return router
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, cfg config.ServerConfig, stores *store.Set, log *zap.Logger, m *metrics.Collector) {
	ttl := time.Duration(cfg.JWTExpirationMinutes) * time.Minute
	authHandler := handlers.NewAuthHandler(stores.Users, cfg.SigningSecret(), ttl, log)

	// Public routes (no authentication required)
	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/signup", authHandler.Signup)
		authRoutes.POST("/login", authHandler.Login)
	}

	resources := router.Group("/")
	if cfg.RequireAuth {
		resources.Use(middleware.AuthMiddleware(cfg.SigningSecret()))
	}
	{
		resources.POST(clinic.KindPatient.Endpoint(),
			handlers.NewDetailsHandler[models.Patient](clinic.KindPatient, stores.Patients, log).Handle)
		resources.POST(clinic.KindDoctor.Endpoint(),
			handlers.NewDetailsHandler[models.Doctor](clinic.KindDoctor, stores.Doctors, log).Handle)
		resources.POST(clinic.KindAppointment.Endpoint(),
			handlers.NewAppointmentHandler(stores, log).Handle)
		resources.POST(clinic.KindBilling.Endpoint(),
			handlers.NewDetailsHandler[models.Billing](clinic.KindBilling, stores.Billing, log).Handle)
		resources.POST(clinic.KindPrescription.Endpoint(),
			handlers.NewDetailsHandler[models.Prescription](clinic.KindPrescription, stores.Prescriptions, log).Handle)
		resources.POST(clinic.KindMedicalRecord.Endpoint(),
			handlers.NewDetailsHandler[models.MedicalRecord](clinic.KindMedicalRecord, stores.MedicalRecords, log).Handle)
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))
}
