// Package dependency provides dependency injection for the application.
package dependency

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/expense-tracker/backend/config"
	"github.com/expense-tracker/backend/internal/application/adapter"
	"github.com/expense-tracker/backend/internal/application/usecase/auth"
	"github.com/expense-tracker/backend/internal/application/usecase/dashboard"
	"github.com/expense-tracker/backend/internal/application/usecase/expense"
	"github.com/expense-tracker/backend/internal/application/usecase/note"
	"github.com/expense-tracker/backend/internal/application/usecase/reminder"
	"github.com/expense-tracker/backend/internal/application/usecase/report"
	"github.com/expense-tracker/backend/internal/application/usecase/settings"
	"github.com/expense-tracker/backend/internal/infra/db"
	"github.com/expense-tracker/backend/internal/infra/server/router"
	"github.com/expense-tracker/backend/internal/integration/adapters"
	"github.com/expense-tracker/backend/internal/integration/cache"
	"github.com/expense-tracker/backend/internal/integration/email"
	"github.com/expense-tracker/backend/internal/integration/email/templates"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/expense-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/expense-tracker/backend/internal/integration/events"
	"github.com/expense-tracker/backend/internal/integration/persistence"
)

// Options carries the external clients built by the caller. Every field
// is optional.
type Options struct {
	// Redis enables the expense snapshot cache.
	Redis *redis.Client
	// Publisher receives domain events. Nil publishes nowhere.
	Publisher adapter.EventPublisher
	// EmailSender overrides the sender chosen from the configuration.
	EmailSender adapter.EmailSender
	// Now overrides the clock.
	Now func() time.Time
}

// Injector holds all application dependencies.
type Injector struct {
	Config      *config.Config
	DB          *db.Database
	Router      *router.Router
	RateLimiter *middleware.RateLimiter

	// EmailWorker is nil when no sender is configured or the worker is
	// disabled.
	EmailWorker *email.Worker
	// Consumer is nil when events or the cache are disabled.
	Consumer *events.Consumer
	// SnapshotCache is nil without redis.
	SnapshotCache adapter.ExpenseSnapshotCache
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, database *db.Database, opts Options) (*Injector, error) {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	publisher := opts.Publisher
	if publisher == nil {
		publisher = events.NewNoopPublisher()
	}
	gormDB := database.DB()

	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	tokenRepo := persistence.NewTokenRepository(gormDB)
	settingsRepo := persistence.NewSettingsRepository(gormDB)
	noteRepo := persistence.NewQuickNoteRepository(gormDB)
	reminderRepo := persistence.NewWaterReminderRepository(gormDB)
	emailQueueRepo := persistence.NewEmailQueueRepository(gormDB)

	var expenseRepo adapter.ExpenseRepository = persistence.NewExpenseRepository(gormDB)
	var snapshotCache adapter.ExpenseSnapshotCache
	if opts.Redis != nil {
		snapshotCache = cache.NewExpenseSnapshotCache(opts.Redis, cfg.Redis.SnapshotTTL)
		expenseRepo = cache.NewCachedExpenseRepository(expenseRepo, snapshotCache)
	}

	// Create adapters/services
	passwordService := adapters.NewPasswordService(cfg.JWT.BcryptCost)
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry, tokenRepo)
	resetTokenService := adapters.NewPasswordResetTokenService(tokenRepo)
	emailService := email.NewService(emailQueueRepo)

	parsers := []adapter.ExpenseParser{adapters.NewVoiceParser()}
	if cfg.AI.GeminiAPIKey != "" {
		parsers = append(parsers, adapters.NewGeminiExpenseParser(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel))
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService).
		WithCurrency(cfg.Dashboard.DefaultCurrency)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)
	refreshTokenUseCase := auth.NewRefreshTokenUseCase(tokenService)
	logoutUseCase := auth.NewLogoutUserUseCase(tokenService)
	forgotPasswordUseCase := auth.NewForgotPasswordUseCase(userRepo, resetTokenService, emailService, cfg.Server.AppBaseURL)
	resetPasswordUseCase := auth.NewResetPasswordUseCase(userRepo, passwordService, resetTokenService, tokenService)
	deleteAccountUseCase := auth.NewDeleteAccountUseCase(userRepo, passwordService, tokenService, auth.AccountData{
		Expenses:  expenseRepo,
		Settings:  settingsRepo,
		Notes:     noteRepo,
		Reminders: reminderRepo,
	})

	// Create expense use cases
	createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, publisher)
	listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo)
	voiceExpenseUseCase := expense.NewCreateVoiceExpenseUseCase(createExpenseUseCase, now, parsers...)
	deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, publisher)

	// Create settings use cases
	getSettingsUseCase := settings.NewGetSettingsUseCase(settingsRepo)
	updateSettingsUseCase := settings.NewUpdateSettingsUseCase(settingsRepo, publisher)
	addFixedUseCase := settings.NewAddFixedExpenseUseCase(settingsRepo, publisher)
	updateFixedUseCase := settings.NewUpdateFixedExpenseUseCase(settingsRepo, publisher)
	removeFixedUseCase := settings.NewRemoveFixedExpenseUseCase(settingsRepo, publisher)

	// Create dashboard use cases
	loader := dashboard.NewSnapshotLoader(expenseRepo, settingsRepo)
	breakdownUseCase := dashboard.NewGetCategoryBreakdownUseCase(loader)
	summaryUseCase := dashboard.NewGetPeriodSummaryUseCase(loader)
	yearlyUseCase := dashboard.NewGetYearlyOverviewUseCase(loader, now)
	yearsUseCase := dashboard.NewGetSelectableYearsUseCase(cfg.Dashboard.SelectableYears, now)
	monthlySummaryUseCase := report.NewSendMonthlySummaryUseCase(summaryUseCase, userRepo, emailService)

	// Create companion feature use cases
	listNotesUseCase := note.NewListNotesUseCase(noteRepo)
	createNoteUseCase := note.NewCreateNoteUseCase(noteRepo)
	updateNoteUseCase := note.NewUpdateNoteUseCase(noteRepo)
	deleteNoteUseCase := note.NewDeleteNoteUseCase(noteRepo)
	getReminderUseCase := reminder.NewGetReminderUseCase(reminderRepo)
	updateReminderUseCase := reminder.NewUpdateReminderUseCase(reminderRepo)
	reminderStatusUseCase := reminder.NewGetReminderStatusUseCase(reminderRepo, now)

	// Create controllers
	var redisCheck controller.HealthCheck
	if opts.Redis != nil {
		redisCheck = func(ctx context.Context) error {
			return opts.Redis.Ping(ctx).Err()
		}
	}
	healthController := controller.NewHealthController(database.Ping, redisCheck)

	authController := controller.NewAuthController(
		registerUseCase,
		loginUseCase,
		refreshTokenUseCase,
		logoutUseCase,
		forgotPasswordUseCase,
		resetPasswordUseCase,
	)
	userController := controller.NewUserController(deleteAccountUseCase)
	categoryController := controller.NewCategoryController()
	expenseController := controller.NewExpenseController(
		listExpensesUseCase,
		createExpenseUseCase,
		voiceExpenseUseCase,
		deleteExpenseUseCase,
	)
	settingsController := controller.NewSettingsController(
		getSettingsUseCase,
		updateSettingsUseCase,
		addFixedUseCase,
		updateFixedUseCase,
		removeFixedUseCase,
	)
	dashboardController := controller.NewDashboardController(
		breakdownUseCase,
		summaryUseCase,
		yearlyUseCase,
		yearsUseCase,
		now,
	)
	reportController := controller.NewReportController(monthlySummaryUseCase, now)
	noteController := controller.NewNoteController(
		listNotesUseCase,
		createNoteUseCase,
		updateNoteUseCase,
		deleteNoteUseCase,
	)
	reminderController := controller.NewReminderController(
		getReminderUseCase,
		updateReminderUseCase,
		reminderStatusUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var authRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
		authRateLimiter = middleware.NewRateLimiter(1000, cfg.RateLimit.Window)
	} else {
		authRateLimiter = middleware.NewRateLimiter(cfg.RateLimit.MaxAttempts, cfg.RateLimit.Window)
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(router.Controllers{
		Health:    healthController,
		Auth:      authController,
		User:      userController,
		Category:  categoryController,
		Expense:   expenseController,
		Settings:  settingsController,
		Dashboard: dashboardController,
		Report:    reportController,
		Note:      noteController,
		Reminder:  reminderController,
	}, authRateLimiter, authMiddleware)

	injector := &Injector{
		Config:        cfg,
		DB:            database,
		Router:        r,
		RateLimiter:   authRateLimiter,
		SnapshotCache: snapshotCache,
	}

	// Create background workers
	sender := opts.EmailSender
	if sender == nil && cfg.Email.SendingEnabled() {
		sender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	if sender != nil && cfg.Email.WorkerEnabled {
		renderer, err := templates.NewRenderer()
		if err != nil {
			return nil, fmt.Errorf("failed to load email templates: %w", err)
		}
		injector.EmailWorker = email.NewWorker(emailQueueRepo, sender, renderer, email.WorkerConfig{
			PollInterval: cfg.Email.PollInterval,
			BatchSize:    cfg.Email.BatchSize,
		})
	} else {
		slog.Warn("Email worker disabled, emails stay queued",
			"senderConfigured", sender != nil,
			"workerEnabled", cfg.Email.WorkerEnabled,
		)
	}

	if cfg.Events.Enabled() && snapshotCache != nil {
		injector.Consumer = events.NewConsumer(
			cfg.Events.AMQPURL,
			cfg.Events.Exchange,
			cfg.Events.Queue,
			events.InvalidateSnapshotHandler(snapshotCache),
		)
	}

	return injector, nil
}
