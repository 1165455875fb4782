// Package dependency provides dependency injection for the application.
package dependency

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/playbookTV/Kora/config"
	"github.com/playbookTV/Kora/internal/application/adapter"
	"github.com/playbookTV/Kora/internal/application/usecase/advisor"
	"github.com/playbookTV/Kora/internal/application/usecase/alert"
	"github.com/playbookTV/Kora/internal/application/usecase/auth"
	"github.com/playbookTV/Kora/internal/application/usecase/insight"
	"github.com/playbookTV/Kora/internal/application/usecase/pattern"
	"github.com/playbookTV/Kora/internal/application/usecase/profile"
	"github.com/playbookTV/Kora/internal/application/usecase/transaction"
	enginealert "github.com/playbookTV/Kora/internal/domain/engine/alert"
	"github.com/playbookTV/Kora/internal/infra/scheduler"
	"github.com/playbookTV/Kora/internal/infra/server/router"
	"github.com/playbookTV/Kora/internal/integration/adapters"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/controller"
	"github.com/playbookTV/Kora/internal/integration/entrypoint/middleware"
	"github.com/playbookTV/Kora/internal/integration/notification"
	"github.com/playbookTV/Kora/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config    *config.Config
	DB        *gorm.DB
	Router    *router.Router
	Worker    *notification.Worker
	Scheduler *scheduler.Scheduler
}

// NewInjector creates a new dependency injector with all dependencies wired.
// A nil Redis client disables alert debouncing but nothing else.
func NewInjector(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Injector, error) {
	// Repositories
	userRepo := persistence.NewUserRepository(db)
	tokenRepo := persistence.NewTokenRepository(db)
	profileRepo := persistence.NewProfileRepository(db)
	transactionRepo := persistence.NewTransactionRepository(db)
	patternRepo := persistence.NewPatternRepository(db)
	queueRepo := persistence.NewAlertQueueRepository(db)

	// Adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, tokenRepo)
	advisorService := adapters.NewGeminiAdvisor(cfg.AI.GeminiAPIKey)

	var debouncer adapter.AlertDebouncer
	if redisClient != nil {
		debouncer = notification.NewRedisDebouncer(redisClient)
	} else {
		debouncer = notification.NewNoopDebouncer()
	}

	alertConfig := enginealert.DefaultConfig()
	alertConfig.DangerZoneThreshold = decimal.NewFromFloat(cfg.Alerts.DangerZoneThreshold)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, profileRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)

	// Profile use cases
	getProfileUseCase := profile.NewGetProfileUseCase(profileRepo)
	updateProfileUseCase := profile.NewUpdateProfileUseCase(profileRepo)
	addExpenseUseCase := profile.NewAddFixedExpenseUseCase(profileRepo)
	updateExpenseUseCase := profile.NewUpdateFixedExpenseUseCase(profileRepo)
	deleteExpenseUseCase := profile.NewDeleteFixedExpenseUseCase(profileRepo)

	// Transaction use cases
	logSpendUseCase := transaction.NewLogSpendUseCase(transactionRepo, profileRepo)
	listTransactionsUseCase := transaction.NewListTransactionsUseCase(transactionRepo)
	deleteTransactionUseCase := transaction.NewDeleteTransactionUseCase(transactionRepo, profileRepo)

	// Engine use cases
	stateUseCase := insight.NewGetFinancialStateUseCase(profileRepo, transactionRepo, patternRepo)
	getPatternUseCase := pattern.NewGetPatternUseCase(patternRepo)
	refreshPatternsUseCase := pattern.NewRefreshPatternsUseCase(profileRepo, transactionRepo, patternRepo)
	closeDayUseCase := pattern.NewCloseDayUseCase(profileRepo, transactionRepo, patternRepo)
	evaluateAlertsUseCase := alert.NewEvaluateAlertsUseCase(profileRepo, transactionRepo, patternRepo, queueRepo, debouncer, alertConfig)
	sweepAlertsUseCase := alert.NewSweepAlertsUseCase(userRepo, evaluateAlertsUseCase, slog.Default())
	followUpUseCase := alert.NewFollowUpLimitUseCase(transactionRepo, queueRepo)
	askAdvisorUseCase := advisor.NewAskAdvisorUseCase(profileRepo, transactionRepo, patternRepo, advisorService)

	// Controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := db.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	})

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
	)

	profileController := controller.NewProfileController(
		getProfileUseCase,
		updateProfileUseCase,
		addExpenseUseCase,
		updateExpenseUseCase,
		deleteExpenseUseCase,
	)

	transactionController := controller.NewTransactionController(
		logSpendUseCase,
		listTransactionsUseCase,
		deleteTransactionUseCase,
	)

	insightController := controller.NewInsightController(stateUseCase)
	patternController := controller.NewPatternController(getPatternUseCase, refreshPatternsUseCase, closeDayUseCase)
	alertController := controller.NewAlertController(evaluateAlertsUseCase, followUpUseCase, queueRepo)
	advisorController := controller.NewAdvisorController(askAdvisorUseCase)

	// Middleware
	// Use higher rate limits for test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Router
	r := router.NewRouter(
		healthController,
		authController,
		profileController,
		transactionController,
		insightController,
		patternController,
		alertController,
		advisorController,
		loginRateLimiter,
		authMiddleware,
	)

	// Alert delivery worker
	sender := notification.NewResendClient(cfg.Alerts.ResendAPIKey, cfg.Alerts.FromName, cfg.Alerts.FromEmail)
	worker := notification.NewWorker(queueRepo, userRepo, sender, notification.WorkerConfig{
		PollInterval: cfg.Alerts.PollInterval,
		BatchSize:    cfg.Alerts.BatchSize,
	})

	// Scheduler
	sched, err := scheduler.New(
		&cfg.Scheduler,
		userRepo,
		queueRepo,
		sweepAlertsUseCase,
		closeDayUseCase,
		refreshPatternsUseCase,
		cfg.Alerts.RetentionDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build scheduler: %w", err)
	}

	return &Injector{
		Config:    cfg,
		DB:        db,
		Router:    r,
		Worker:    worker,
		Scheduler: sched,
	}, nil
}
