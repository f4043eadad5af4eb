package setup

import (
	"log"

	"github.com/vouchtally/vouchtally/internal/database"
	"github.com/vouchtally/vouchtally/internal/setup/config"
	"github.com/vouchtally/vouchtally/internal/setup/telemetry"
	"go.uber.org/zap"
)

// App bundles all core dependencies and services needed by the
// application. Each field represents a subsystem that needs
// initialization and cleanup.
type App struct {
	Config   *config.Config    // Application configuration
	Logger   *zap.Logger       // Main application logger
	DBLogger *zap.Logger       // Database-specific logger
	Stores   *database.Manager // Per-community ledger store manager
}

// InitializeApp bootstraps all application dependencies in the correct
// order, ensuring each component has its required dependencies available.
func InitializeApp(serviceType telemetry.ServiceType, logDir string) (*App, error) {
	// Load app configuration
	cfg, _, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	// Logging system is initialized next to capture setup issues
	logManager := telemetry.NewManager(serviceType, logDir, &cfg.Common.Debug)

	logger, dbLogger, err := logManager.GetLoggers()
	if err != nil {
		return nil, err
	}

	// Ledger stores open lazily per community; the manager only prepares
	// the storage directory here.
	stores, err := database.NewManager(cfg.Common.Storage.Directory, dbLogger.Named("database"))
	if err != nil {
		return nil, err
	}

	logger.Info("Initialized application",
		zap.String("instance_id", logManager.GetInstanceID()),
		zap.String("storage_dir", cfg.Common.Storage.Directory))

	return &App{
		Config:   cfg,
		Logger:   logger,
		DBLogger: dbLogger,
		Stores:   stores,
	}, nil
}

// Cleanup ensures graceful shutdown of all components in reverse
// initialization order. Logs but does not fail on cleanup errors.
func (s *App) Cleanup() {
	// Close all open community ledgers
	s.Stores.Close()

	// Sync buffered logs before shutdown
	if err := s.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	if err := s.DBLogger.Sync(); err != nil {
		log.Printf("Failed to sync DB logger: %v", err)
	}
}
