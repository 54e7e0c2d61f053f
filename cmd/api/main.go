package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/vitalrec/health-api/internal/config"
	"github.com/vitalrec/health-api/internal/email"
	appointmentHandler "github.com/vitalrec/health-api/internal/handler/appointment"
	authHandler "github.com/vitalrec/health-api/internal/handler/auth"
	doctorHandler "github.com/vitalrec/health-api/internal/handler/doctor"
	healthHandler "github.com/vitalrec/health-api/internal/handler/health"
	patientHandler "github.com/vitalrec/health-api/internal/handler/patient"
	reportHandler "github.com/vitalrec/health-api/internal/handler/report"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/repository/postgres"
	redisRepo "github.com/vitalrec/health-api/internal/repository/redis"
	"github.com/vitalrec/health-api/internal/router"
	appointmentService "github.com/vitalrec/health-api/internal/service/appointment"
	authService "github.com/vitalrec/health-api/internal/service/auth"
	dashboardService "github.com/vitalrec/health-api/internal/service/dashboard"
	doctorService "github.com/vitalrec/health-api/internal/service/doctor"
	medicationService "github.com/vitalrec/health-api/internal/service/medication"
	patientService "github.com/vitalrec/health-api/internal/service/patient"
	reportService "github.com/vitalrec/health-api/internal/service/report"
	"github.com/vitalrec/health-api/pkg/auth"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	tokenRepo, err := redisRepo.NewTokenRepository(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}

	userRepo := postgres.NewUserRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	doctorRepo := postgres.NewDoctorRepository(db)
	recordRepo := postgres.NewMedicalRecordRepository(db)
	medicationRepo := postgres.NewMedicationRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)

	accessTTL := time.Duration(cfg.JWT.ExpiryHours) * time.Hour
	refreshTTL := time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour
	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        accessTTL,
		RefreshExpiry: refreshTTL,
	})

	var emailSvc email.Service = email.Noop{}
	if cfg.SMTP.Enabled {
		emailSvc = email.NewSMTPService(email.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
	}

	authSvc := authService.NewService(userRepo, patientRepo, doctorRepo, tokenRepo, jwtSvc, authService.Config{
		AccessTokenTTL:  accessTTL,
		RefreshTokenTTL: refreshTTL,
	})
	patientSvc := patientService.NewService(patientRepo, recordRepo)
	doctorSvc := doctorService.NewService(doctorRepo, patientRepo, recordRepo, appointmentRepo)
	medicationSvc := medicationService.NewService(medicationRepo)
	dashboardSvc := dashboardService.NewService(patientRepo, recordRepo, appointmentRepo, medicationSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, userRepo, emailSvc)
	reportSvc := reportService.NewService(patientRepo, recordRepo, appointmentRepo, cfg.Server.BaseURL)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	registry := prometheus.NewRegistry()

	authH := authHandler.NewHandler(authSvc)
	healthH := healthHandler.NewHandler(db, registry)
	patientH := patientHandler.NewHandler(patientSvc, dashboardSvc, medicationSvc, reportSvc)
	doctorH := doctorHandler.NewHandler(doctorSvc)
	appointmentH := appointmentHandler.NewHandler(appointmentSvc, patientSvc)
	reportH := reportHandler.NewHandler(reportSvc)

	r := router.NewRouter(
		authMiddleware,
		authH,
		healthH,
		reportH,
		patientH,
		doctorH,
		appointmentH,
		registry,
		router.Config{
			RateLimitRPS:   cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst: cfg.RateLimit.Burst,
			Timeout:        time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			CORS:           middleware.DefaultCORSConfig(),
			MetricsPrefix:  "health_api",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
