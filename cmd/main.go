package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/events"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/handler"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/notification"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/repository"
	"github.com/Zaffira-Jewels/Zaffira-Backend/internal/service"
	"github.com/Zaffira-Jewels/Zaffira-Backend/pkg/config"
	"github.com/Zaffira-Jewels/Zaffira-Backend/pkg/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("Service configuration",
		zap.String("port", cfg.Port),
		zap.String("smtp_host", cfg.SMTPHost),
		zap.String("business_email", cfg.BusinessEmail),
		zap.Bool("events_enabled", cfg.KafkaBrokers != ""))

	// Initialize components
	appointmentRepo := repository.NewAppointmentRepository()
	mailer := notification.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailUser, cfg.EmailPass)

	var producer events.Producer = events.NopProducer{}
	if cfg.KafkaBrokers != "" {
		kafkaProducer := events.NewKafkaProducer(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		defer kafkaProducer.Close()
		producer = kafkaProducer
	}

	appointmentService := service.NewAppointmentService(appointmentRepo, mailer, producer, logger, cfg.BusinessEmail)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, logger)

	// Setup Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	// Routes
	api := router.Group("/api")
	{
		api.POST("/book-appointment", appointmentHandler.BookAppointment)
		api.GET("/appointments", appointmentHandler.ListAppointments)
		api.PUT("/appointments/:id", appointmentHandler.UpdateAppointmentStatus)
		api.DELETE("/appointments/:id", appointmentHandler.DeleteAppointment)
		api.GET("/health", appointmentHandler.HealthCheck)
	}

	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("port", cfg.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func newLogger(level string) *zap.Logger {
	zapCfg := zap.NewProductionConfig()
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		zapCfg.Level = zap.NewAtomicLevelAt(parsed)
	}
	logger, err := zapCfg.Build()
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	return logger
}

func corsConfig(allowedOrigins string) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader}
	if allowedOrigins == "*" || allowedOrigins == "" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(allowedOrigins, ",")
	}
	return corsCfg
}
