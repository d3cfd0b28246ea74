package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"see-a-doctor/config"
	deliveryHttp "see-a-doctor/internal/delivery/http"
	"see-a-doctor/internal/delivery/http/handler"
	"see-a-doctor/internal/delivery/http/middleware"
	"see-a-doctor/internal/infrastructure/cache"
	"see-a-doctor/internal/infrastructure/database"
	"see-a-doctor/internal/infrastructure/metrics"
	"see-a-doctor/internal/repository"
	"see-a-doctor/internal/service"
	"see-a-doctor/internal/usecase"
	"see-a-doctor/pkg/jwt"
	"see-a-doctor/pkg/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server

	claimService *service.RedisSlotClaimService
}

// New loads configuration and connects to PostgreSQL and Redis
func New() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	app := &App{
		Config: cfg,
		Log:    NewLogger(cfg.App),
	}
	app.Log.Info("Configuration loaded successfully")

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env, app.Log)
	if err != nil {
		return nil, err
	}
	app.DB = db

	redisClient, err := cache.NewRedisClient(cfg.Redis, app.Log)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.RedisClient = redisClient

	return app, nil
}

// NewLogger builds the JSON logrus logger used by every layer
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}

// Settings converts the booking configuration for the usecases
func Settings(cfg *config.Config) usecase.BookingSettings {
	return usecase.BookingSettings{
		Location:           cfg.App.Location(),
		DefaultSlotMinutes: cfg.Booking.DefaultSlotMinutes,
		ScheduleDays:       cfg.Booking.ScheduleDays,
		MaxScheduleDays:    cfg.Booking.MaxScheduleDays,
	}
}

// Migrate applies pending migrations when DB_AUTO_MIGRATE is set
func (app *App) Migrate() error {
	if !app.Config.DB.AutoMigrate {
		return nil
	}

	migrator, err := database.NewMigrator(app.Config.DB, app.Log)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}

// Build wires every layer and prepares the HTTP server
func (app *App) Build() {
	cfg := app.Config
	log := app.Log
	db := app.DB

	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()
	settings := Settings(cfg)

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		collector = metrics.NewCollector(reg)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	doctorProfileRepo := repository.NewDoctorProfileRepository(db)
	chamberRepo := repository.NewChamberRepository(db)
	dayScheduleRepo := repository.NewDayScheduleRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	auditLogRepo := repository.NewAuditLogRepository(db)

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)

	// The claimer stays a nil interface when claims are off
	var claimer service.SlotClaimer
	if cfg.Booking.SlotClaims {
		app.claimService = service.NewRedisSlotClaimService(app.RedisClient, appointmentRepo, settings.Location, log)
		claimer = app.claimService
	}

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(log, userRepo, roleRepo, jwtService, app.RedisClient, auditService)
	hospitalUsecase := usecase.NewHospitalUsecase(log, hospitalRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(log, userRepo, doctorProfileRepo, auditService)
	chamberUsecase := usecase.NewChamberUsecase(log, chamberRepo, doctorProfileRepo, auditService, settings)
	scheduleUsecase := usecase.NewScheduleUsecase(log, dayScheduleRepo, doctorProfileRepo, chamberRepo, appointmentRepo, auditService, settings)
	appointmentUsecase := usecase.NewAppointmentUsecase(log, appointmentRepo, doctorProfileRepo, chamberRepo, dayScheduleRepo, claimer, collector, auditService, settings)
	reviewUsecase := usecase.NewReviewUsecase(log, reviewRepo, doctorProfileRepo, appointmentRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(log, auditLogRepo)

	// Initialize handlers
	handlers := deliveryHttp.Handlers{
		Auth:        handler.NewAuthHandler(authUsecase, customValidator, jwtService),
		Hospital:    handler.NewHospitalHandler(hospitalUsecase, customValidator),
		Doctor:      handler.NewDoctorHandler(doctorUsecase, customValidator),
		Chamber:     handler.NewChamberHandler(chamberUsecase, customValidator),
		Schedule:    handler.NewScheduleHandler(scheduleUsecase, customValidator),
		Appointment: handler.NewAppointmentHandler(appointmentUsecase, customValidator),
		Review:      handler.NewReviewHandler(reviewUsecase, customValidator),
		AuditLog:    handler.NewAuditLogHandler(auditLogUsecase),
		Health:      handler.NewHealthHandler(log, app.databasePinger(), app.cachePinger()),
	}

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, app.RedisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	router := deliveryHttp.NewRouter(log, handlers, authMiddleware, corsMiddleware, collector)

	app.Server = &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (app *App) databasePinger() handler.Pinger {
	return handler.PingerFunc(func(ctx context.Context) error {
		sqlDB, err := app.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
}

func (app *App) cachePinger() handler.Pinger {
	if app.RedisClient == nil {
		return nil
	}
	return handler.PingerFunc(func(ctx context.Context) error {
		return app.RedisClient.Ping(ctx).Err()
	})
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() error {
	if app.claimService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		// A failed sync is logged and the server starts anyway
		if err := app.claimService.SyncOnStartup(ctx); err != nil {
			app.Log.Warnf("Slot claim sync failed: %+v", err)
		}
		cancel()
	}

	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		if sqlDB, err := app.DB.DB(); err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
