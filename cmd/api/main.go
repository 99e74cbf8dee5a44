package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventadmission/config"
	_ "eventadmission/docs"
	"eventadmission/internal/adapters/auth"
	"eventadmission/internal/adapters/broker"
	deliveryhttp "eventadmission/internal/delivery/http"
	"eventadmission/internal/delivery/http/controllers"
	"eventadmission/internal/delivery/http/middleware"
	"eventadmission/internal/domain"
	"eventadmission/internal/repository/postgres"
	"eventadmission/internal/services"
)

const shutdownTimeout = 10 * time.Second

// @title           Event Admission API
// @version         1.0
// @description     Event moderation lifecycle and capacity-bounded participation requests.
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := config.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped with error", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	db, err := postgres.Connect(ctx, cfg.DBUrl, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.RunMigrations(ctx, db, logger); err != nil {
		return err
	}

	publisher, closePublisher, err := newPublisher(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	requestRepo := postgres.NewRequestRepository(db)
	userRepo := postgres.NewUserRepository(db)
	categoryRepo := postgres.NewCategoryRepository(db)
	locationRepo := postgres.NewLocationRepository(db)
	tx := postgres.NewTransactor(db, cfg.AdmissionLockTimeout)

	// Services share one locker so event updates and admissions serialize per event.
	locker := services.NewEventLocker(cfg.AdmissionLockTimeout)
	eventService := services.NewEventService(eventRepo, requestRepo, userRepo, categoryRepo, locationRepo,
		tx, locker, publisher, logger, cfg.ContextTimeout)
	requestService := services.NewRequestService(eventRepo, requestRepo, userRepo,
		tx, locker, publisher, logger, cfg.ContextTimeout)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Admin:      controllers.NewAdminEventController(logger, eventService),
		UserEvents: controllers.NewUserEventController(logger, eventService),
		Public:     controllers.NewPublicEventController(logger, eventService),
		Requests:   controllers.NewRequestController(logger, requestService),
	}, auth.NewJWTVerifier(cfg.JWTSecret), logger)

	var handler http.Handler = router
	handler = middleware.LoggingMiddleware(logger, handler)
	handler = middleware.Correlation(handler)
	handler = middleware.CORS(cfg.AllowedOrigins, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited gracefully")
	return nil
}

// newPublisher connects to RabbitMQ when RABBITMQ_URL is set and falls back to
// logging lifecycle messages otherwise.
func newPublisher(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.LifecyclePublisher, func(), error) {
	if cfg.RabbitMQURL == "" {
		logger.Warn("RABBITMQ_URL not set, lifecycle messages will only be logged")
		return broker.LogPublisher{Logger: logger}, func() {}, nil
	}
	conn, err := broker.Dial(ctx, cfg.RabbitMQURL, logger)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	publisher, err := broker.NewPublisher(ch, logger)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return publisher, func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("close rabbitmq channel", "err", err)
		}
		if err := conn.Close(); err != nil {
			logger.Warn("close rabbitmq connection", "err", err)
		}
	}, nil
}
