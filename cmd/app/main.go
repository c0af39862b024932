package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"aidmatch/cmd"
	httpin "aidmatch/internal/adapters/in/http"
	"aidmatch/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	configs, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := newLogger(configs.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, configs, logger); err != nil {
		log.Fatalf("Service stopped with error: %v", err)
	}
}

func newLogger(format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func run(ctx context.Context, configs cmd.Config, logger *slog.Logger) error {
	gormDB, err := openDatabase(configs)
	if err != nil {
		return err
	}
	if gormDB == nil {
		logger.Warn("Using the in-process store; data is lost on exit")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Closing outbound clients failed", "error", closeErr)
		}
	}()

	seeded, err := app.SeedProfiles(ctx)
	if err != nil {
		return err
	}
	switch {
	case seeded > 0:
		logger.Info("Seeded profiles", "count", seeded, "file", configs.ProfileSeedFile)
	case gormDB == nil:
		logger.Warn("PROFILE_SEED_FILE not set, the in-process store has no profiles")
	}

	contract, err := httpin.LoadContract(ctx)
	if err != nil {
		return err
	}
	e, err := httpin.NewEcho(app.CreateHTTPServer(), contract)
	if err != nil {
		return err
	}

	jobManager, err := app.CreateJobManager()
	if err != nil {
		return err
	}

	lifecycle := cmd.Lifecycle{
		Addr:            fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort),
		ShutdownTimeout: cmd.DefaultShutdownTimeout,
		Server:          e,
		Jobs:            jobManager,
		Dispatcher:      app.Dispatcher(),
		Logger:          logger,
	}
	return lifecycle.Run(ctx)
}

func openDatabase(configs cmd.Config) (*gorm.DB, error) {
	if configs.StoreDriver != cmd.StoreDriverPostgres {
		return nil, nil
	}

	db, err := gorm.Open(gormpostgres.Open(configs.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := postgres.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
