// Package main implements the userbook entry point: an interactive console
// for managing user records stored in PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/userbook/userbook/internal/config"
	"github.com/userbook/userbook/internal/platform/logger"
	"github.com/userbook/userbook/internal/platform/postgres"
	"github.com/userbook/userbook/internal/service"
	"github.com/userbook/userbook/internal/shell"
	"github.com/userbook/userbook/internal/validation"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error during startup/run", "error", err)
		os.Exit(1)
	}
}

// run wires the application together: configuration, logging, database,
// migrations, stores, service, and finally the interactive shell. A fatal
// error here terminates the process before any operation is attempted.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("configuration loaded", "log_level", cfg.Server.LogLevel)

	db, err := openDatabase(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Warn("error closing database", "error", err)
		}
		log.Info("shutdown complete")
	}()

	if err := runMigrations(db, log); err != nil {
		return err
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	users := service.NewUserService(userStore, validation.NewUserFieldValidator(), log)
	sh := shell.New(users, os.Stdin, os.Stdout, log)

	if err := sh.Run(context.Background()); err != nil {
		return fmt.Errorf("shell terminated abnormally: %w", err)
	}

	log.Info("exiting normally")
	return nil
}
