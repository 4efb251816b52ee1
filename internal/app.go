package internal

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	logger_adapter "crm-service/internal/adapters/logger"
	postgres_adapter "crm-service/internal/adapters/postgres"
	"crm-service/internal/adapters/rest"
	"crm-service/internal/configs"
	"crm-service/internal/core/port"
	"crm-service/internal/core/usecase"
	"crm-service/pkg/fluentlogger"
	"crm-service/pkg/postgres"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	slogCfg := logger_adapter.SlogConfig{
		Level:    parseLogLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	}
	stdoutLogger := logger_adapter.NewSlogAdapter(slogCfg)
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	// --- 2. ПОДКЛЮЧЕНИЕ К БАЗЕ И МИГРАЦИЯ СХЕМЫ ---
	dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Database.URL})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if err := postgres_adapter.Migrate(context.Background(), dbPool); err != nil {
		appLogger.Error("Failed to apply database schema", err, nil)
		dbPool.Close()
		return nil, fmt.Errorf("failed to apply database schema: %w", err)
	}
	appLogger.Info("Database schema is up to date.", nil)

	// --- 3. РЕПОЗИТОРИИ ---
	// Конструкторы падают только на nil-пуле, поэтому ошибки собираем скопом.
	propertyRepo, err1 := postgres_adapter.NewPropertyRepository(dbPool)
	buyerRepo, err2 := postgres_adapter.NewBuyerRepository(dbPool)
	sellerRepo, err3 := postgres_adapter.NewSellerRepository(dbPool)
	tenantRepo, err4 := postgres_adapter.NewTenantRepository(dbPool)
	taskRepo, err5 := postgres_adapter.NewTaskRepository(dbPool)
	userRepo, err6 := postgres_adapter.NewUserRepository(dbPool)
	searchRepo, err7 := postgres_adapter.NewSearchRepository(dbPool)
	analyticsRepo, err8 := postgres_adapter.NewAnalyticsRepository(dbPool)
	for _, repoErr := range []error{err1, err2, err3, err4, err5, err6, err7, err8} {
		if repoErr != nil {
			appLogger.Error("Failed to create postgres repository", repoErr, nil)
			dbPool.Close()
			return nil, fmt.Errorf("failed to create postgres repository: %w", repoErr)
		}
	}
	appLogger.Info("Postgres repositories initialized.", nil)

	// --- 4. USE CASES ---
	propertiesUC := usecase.NewPropertyUseCase(propertyRepo)
	buyersUC := usecase.NewBuyerUseCase(buyerRepo)
	sellersUC := usecase.NewSellerUseCase(sellerRepo)
	tenantsUC := usecase.NewTenantUseCase(tenantRepo)
	tasksUC := usecase.NewTaskUseCase(taskRepo)
	searchUC := usecase.NewSearchUseCase(searchRepo, propertyRepo, buyerRepo, sellerRepo, taskRepo)
	analyticsUC := usecase.NewAnalyticsUseCase(analyticsRepo)
	authUC := usecase.NewAuthUseCase(userRepo, appConfig.Auth.JWTSecret, appConfig.Auth.TokenTTL)
	appLogger.Info("All use cases initialized.", nil)

	// --- 5. REST API ---
	handlers := rest.Handlers{
		Auth:       rest.NewAuthHandler(authUC),
		Properties: rest.NewPropertyHandler(propertiesUC),
		Buyers:     rest.NewBuyerHandler(buyersUC),
		Sellers:    rest.NewSellerHandler(sellersUC),
		Tenants:    rest.NewTenantHandler(tenantsUC),
		Tasks:      rest.NewTaskHandler(tasksUC),
		Search:     rest.NewSearchHandler(searchUC),
		Analytics:  rest.NewAnalyticsHandler(analyticsUC),
	}
	apiServer := rest.NewServer(appConfig, handlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return &App{
		config:       appConfig,
		dbPool:       dbPool,
		apiServer:    apiServer,
		fluentClient: fluentClient,
		logger:       appLogger,
	}, nil
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if a.apiServer != nil {
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		if a.dbPool != nil {
			a.dbPool.Close()
			a.logger.Info("PostgreSQL pool closed.", nil)
		}

		a.logger.Info("Application shut down gracefully.", nil)

		if a.fluentClient != nil {
			if err := a.fluentClient.Close(); err != nil {
				// Логируем в stdout, так как fluent может быть уже недоступен
				fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
			}
		}
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от одного из компонентов
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
	}

	return nil
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
