package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"cryptotracker.io/internal/application/usecase"
	"cryptotracker.io/internal/infrastructure/config"
	"cryptotracker.io/internal/infrastructure/explorer"
	"cryptotracker.io/internal/infrastructure/logger"
	"cryptotracker.io/internal/infrastructure/validator"
)

// app is the wiring shared by every command
type app struct {
	cfg              *config.Config
	logger           logger.Logger
	getBalance       *usecase.GetBalanceUseCase
	listTransactions *usecase.ListTransactionsUseCase
}

// newApp loads configuration and builds the use cases. Logs go to logOutput.
func newApp(logOutput io.Writer) (*app, error) {
	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		bootstrap := logger.NewLogger(logger.Options{Output: os.Stderr})
		bootstrap.LogError(context.TODO(), "Failed to load config", err, "config_dir", configDir)
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	appLogger := logger.NewLogger(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: logOutput,
	}).With("run_id", uuid.New().String())

	client := explorer.NewClient(cfg.Explorer.BaseURL, cfg.Explorer.Timeout, appLogger)
	addressValidator := validator.NewChainAddressValidator(appLogger)

	return &app{
		cfg:              cfg,
		logger:           appLogger,
		getBalance:       usecase.NewGetBalanceUseCase(client, addressValidator),
		listTransactions: usecase.NewListTransactionsUseCase(client, addressValidator),
	}, nil
}
