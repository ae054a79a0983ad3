package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"facilityhub/internal/config"
	"facilityhub/internal/database"
	"facilityhub/internal/middleware"
	"facilityhub/internal/modules/booking"
	"facilityhub/internal/modules/maintenance"
	"facilityhub/internal/modules/notification"
	"facilityhub/internal/pkg/jwt"
	"facilityhub/internal/pkg/logger"
	"facilityhub/internal/realtime"
	"facilityhub/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.LogLevel)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.WithError(err).Fatal("database connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("migration failed")
	}

	userRepo := repository.NewUserRepository(db)
	facilityRepo := repository.NewFacilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	jwtService := jwt.New(cfg.JWTSecret, 24*time.Hour)

	// The hub is constructed once here and injected everywhere that pushes;
	// nothing holds a package-level instance.
	hub := realtime.NewHub(log)
	wsHandler := realtime.NewHandler(hub, jwtService, log)

	dispatcher := notification.NewDispatcher(notificationRepo, userRepo, hub, log)
	notificationHandler := notification.NewHandler(notificationRepo, log)

	bookingService := booking.NewService(bookingRepo, facilityRepo, dispatcher)
	bookingHandler := booking.NewHandler(bookingService, log)

	maintenanceService := maintenance.NewService(requestRepo, userRepo, dispatcher, hub, log)
	maintenanceHandler := maintenance.NewHandler(maintenanceService, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		wsHandler.RegisterRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(jwtService))
		{
			bookingHandler.RegisterRoutes(protected)
			maintenanceHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)
		}
	}

	log.WithField("port", cfg.Port).Info("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
