package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/jrconcha-strat/taskboard/internal/cli"
	"github.com/jrconcha-strat/taskboard/internal/config"
	"github.com/jrconcha-strat/taskboard/internal/db"
	"github.com/jrconcha-strat/taskboard/internal/logger"
	"github.com/jrconcha-strat/taskboard/internal/repository/postgres"
	"github.com/jrconcha-strat/taskboard/internal/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log)

	flush, err := logger.InitSentry(cfg.SentryDSN, cfg.Environment)
	if err != nil {
		log.WithError(err).Warn("sentry is disabled")
		flush = func() {}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	root := cli.NewRootCommand(connector(cfg, log))
	err = root.ExecuteContext(ctx)

	stop()
	flush()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.GetExitCode(err))
	}
}

func connector(cfg *config.Config, log *logrus.Logger) cli.Connector {
	return func(ctx context.Context) (*cli.Runtime, func(), error) {
		database, err := db.NewPostgres(cfg)
		if err != nil {
			return nil, nil, err
		}
		log.WithFields(logrus.Fields{
			"host":     cfg.Database.Host,
			"database": cfg.Database.DBName,
		}).Debug("connected to database")

		store := postgres.NewStore(database)
		rt := &cli.Runtime{
			Services: service.New(store, log),
			Migrate: func(ctx context.Context) error {
				return db.Migrate(ctx, database)
			},
			Log: log,
		}
		return rt, func() { database.Close() }, nil
	}
}
