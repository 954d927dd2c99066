package main

import (
	"context"
	"fmt"
	"os"

	"pfm/internal/cli"
	"pfm/internal/ledger"
	"pfm/internal/log"
	"pfm/internal/menu"
	"pfm/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pfm:", err)
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}

	logger, closer, err := cli.SetupLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := context.Background()

	logger.Info("Starting personal finance manager",
		log.FieldBackend, cfg.DataBackend, log.FieldPath, cfg.DataDir)

	res, err := cli.InitStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize record store", log.FieldError, err)
		return err
	}
	cleanup := func() {
		if res.Cleanup != nil {
			if err := res.Cleanup(); err != nil {
				logger.Error("Cleanup failed", log.FieldError, err)
			}
		}
	}
	defer cleanup()
	defer cli.OnInterrupt(logger, cleanup)()

	store := res.Store
	expenses := ledger.NewExpenses(store, logger)
	budgets := ledger.NewBudgets(store, logger)
	deps := menu.Deps{
		Auth: services.NewAuthService(
			ledger.NewCredentials(store, logger), ledger.NewProfiles(store), logger),
		Spending: services.NewExpenseService(expenses, budgets, logger),
		Expenses: expenses,
		Budgets:  budgets,
		Savings:  ledger.NewSavings(store, logger),
	}

	opts := []menu.Option{
		menu.WithCurrency(cfg.CurrencySymbol),
		menu.WithExportDir(cfg.DataDir),
		menu.WithLogger(logger),
	}
	if pw := menu.TerminalPassword(os.Stdin, os.Stdout); pw != nil {
		opts = append(opts, menu.WithPasswordReader(pw))
	}

	err = menu.New(deps, os.Stdin, os.Stdout, opts...).Run(ctx)
	logger.Info("Stopped", log.FieldOperation, log.OpShutdown)
	return err
}
