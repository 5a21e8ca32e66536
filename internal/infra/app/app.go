package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/manish9869/onehealth-api/internal/core/port"
	"github.com/manish9869/onehealth-api/internal/infra/config"
	"github.com/manish9869/onehealth-api/internal/infra/database"
	"github.com/manish9869/onehealth-api/internal/infra/kafka"
	"github.com/manish9869/onehealth-api/internal/infra/logger"
	appRedis "github.com/manish9869/onehealth-api/internal/infra/redis"
	"github.com/manish9869/onehealth-api/internal/infra/security"
	"github.com/manish9869/onehealth-api/internal/infra/telemetry"
	"github.com/manish9869/onehealth-api/internal/repository/postgres"
	redisRepo "github.com/manish9869/onehealth-api/internal/repository/redis"
	"github.com/manish9869/onehealth-api/internal/transport/http/handlers"
	"github.com/manish9869/onehealth-api/internal/transport/http/middleware"
	"github.com/manish9869/onehealth-api/internal/transport/http/routes"
	"github.com/manish9869/onehealth-api/internal/usecase"
)

// App owns every long-lived dependency and the HTTP server.
type App struct {
	cfg      *config.AppConfig
	log      *zap.Logger
	pool     *pgxpool.Pool
	redis    *appRedis.Client
	producer *kafka.Producer
	server   *http.Server
}

// New assembles the application: configuration, infrastructure clients,
// repositories, use cases and the router.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	log, err := logger.New(cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	pool, err := database.NewPostgresPool(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, err
	}

	redisClient, err := appRedis.NewClient(cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := telemetry.Attach(ctx, cfg); err != nil {
		log.Warn("telemetry attach failed", zap.Error(err))
	}

	var (
		producer  *kafka.Producer
		publisher port.EventPublisher
	)
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewProducer(cfg.Kafka, log)
		if err != nil {
			pool.Close()
			redisClient.Close()
			return nil, err
		}
		publisher = kafka.NewEventPublisher(producer, cfg.App, log)
	} else {
		// No brokers configured: events go to the log so the rest of
		// the stack keeps working in development.
		publisher = kafka.NewStubPublisher(log)
	}

	keyProvider, err := security.NewFileKeyProvider(cfg.JWT.KeyDirectory)
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("load signing keys: %w", err)
	}
	tokens, err := security.NewTokenGenerator(keyProvider, keyProvider.SigningKID())
	if err != nil {
		pool.Close()
		redisClient.Close()
		return nil, fmt.Errorf("init token generator: %w", err)
	}

	repos := postgres.NewRepositories(pool)

	sessions := redisRepo.NewSessionStore(redisClient.Client(), cfg.Redis.SessionPrefix)
	resetTokens := redisRepo.NewSessionStore(redisClient.Client(), cfg.Redis.SessionPrefix+":reset")
	permissionCache := redisRepo.NewPermissionCache(redisClient.Client(), cfg.Redis.PermissionPrefix, cfg.Redis.PermissionTTL)
	loginLimiter := redisRepo.NewSlidingWindowLimiter(redisClient.Client(), redisRepo.SlidingWindowConfig{
		Prefix:      "onehealth:ratelimit:login",
		Window:      cfg.RateLimit.WindowDuration,
		MaxAttempts: cfg.RateLimit.LoginMaxAttempts,
	})
	resetLimiter := redisRepo.NewSlidingWindowLimiter(redisClient.Client(), redisRepo.SlidingWindowConfig{
		Prefix:      "onehealth:ratelimit:reset",
		Window:      cfg.RateLimit.WindowDuration,
		MaxAttempts: cfg.RateLimit.ResetMaxAttempts,
	})

	passwordRules := security.DefaultPasswordValidator()

	authService := usecase.NewAuthService(usecase.AuthServiceOptions{
		Users:         repos.Users,
		Sessions:      sessions,
		ResetTokens:   resetTokens,
		Publisher:     publisher,
		Tokens:        tokens,
		PasswordRules: passwordRules,
		LoginLimiter:  loginLimiter,
		ResetLimiter:  resetLimiter,
		Logger:        log,
		Issuer:        cfg.App.Name,
		SessionTTL:    cfg.Redis.SessionTTL,
	})

	guard := usecase.NewAccessGuard(sessions, log)
	navigationService := usecase.NewNavigationService(repos.FeaturePermissions, permissionCache, log)
	patientService := usecase.NewPatientService(repos.Patients, log)
	caseService := usecase.NewCaseHistoryService(repos.CaseHistories, repos.Patients, log)
	billingService := usecase.NewBillingService(repos.Invoices, repos.CaseHistories, publisher, log)
	appointmentService := usecase.NewAppointmentService(repos.Appointments, publisher, log)
	staffService := usecase.NewStaffService(repos.Staff, log)
	catalogService := usecase.NewCatalogService(repos.Medicines, repos.Treatments, repos.MedicalConditions, log)
	reminderService := usecase.NewReminderService(repos.Reminders, publisher, log)
	expenseService := usecase.NewExpenseService(repos.Expenses, log)
	userService := usecase.NewUserService(repos.Users, repos.FeaturePermissions, permissionCache, passwordRules, log)
	dashboardService := usecase.NewDashboardService(repos.Patients, repos.Appointments, repos.Reminders, repos.Expenses, log)

	metrics, err := middleware.NewHTTPMetrics(middleware.HTTPMetricsOptions{})
	if err != nil {
		log.Warn("http metrics registration failed", zap.Error(err))
	}

	notifier := handlers.NewLoggingNotificationDispatcher(log)

	router := routes.NewRouter(routes.Dependencies{
		Config:   cfg,
		Logger:   log,
		Guard:    guard,
		Sessions: sessions,

		AuthHandler:        handlers.NewAuthHandler(authService, notifier, log),
		NavigationHandler:  handlers.NewNavigationHandler(navigationService, log),
		PatientHandler:     handlers.NewPatientHandler(patientService, log),
		CaseHistoryHandler: handlers.NewCaseHistoryHandler(caseService, log),
		InvoiceHandler:     handlers.NewInvoiceHandler(billingService, log),
		AppointmentHandler: handlers.NewAppointmentHandler(appointmentService, patientService, staffService, notifier, log),
		StaffHandler:       handlers.NewStaffHandler(staffService, log),
		CatalogHandler:     handlers.NewCatalogHandler(catalogService, log),
		ReminderHandler:    handlers.NewReminderHandler(reminderService, log),
		ExpenseHandler:     handlers.NewExpenseHandler(expenseService, log),
		UserHandler:        handlers.NewUserHandler(userService, log),
		DashboardHandler:   handlers.NewDashboardHandler(dashboardService, log),
		HealthHandler:      handlers.NewHealthHandler(pool, redisClient),

		Metrics:      metrics,
		LoginLimiter: loginLimiter,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:      cfg,
		log:      log,
		pool:     pool,
		redis:    redisClient,
		producer: producer,
		server:   server,
	}, nil
}

// Run serves HTTP until the context is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("http server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("http shutdown failed", zap.Error(err))
	}

	a.close()
	return nil
}

func (a *App) close() {
	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Error("kafka producer close failed", zap.Error(err))
		}
	}
	if err := a.redis.Close(); err != nil {
		a.log.Error("redis close failed", zap.Error(err))
	}
	a.pool.Close()
}
