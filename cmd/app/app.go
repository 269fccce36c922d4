package app

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/eventsync/eventsync-api/internal/api"
	"github.com/eventsync/eventsync-api/internal/config"
	"github.com/eventsync/eventsync-api/internal/db"
	"github.com/eventsync/eventsync-api/internal/logger"
	"github.com/eventsync/eventsync-api/internal/notifier"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	dbURL := os.Getenv("DATABASE_URL")
	var postgresDB *gorm.DB
	if dbURL != "" {
		postgresDB, err = db.OpenPostgresWithURL(dbURL)
	} else {
		postgresDB, err = db.OpenPostgres(conf.Postgres)
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database -> %w", err)
	}

	rmq, err := notifier.NewRabbitClient(conf.RabbitMQ.URL, conf.RabbitMQ.Queue)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq -> %w", err)
	}
	defer rmq.Close()

	mailer := notifier.NewMailer(*conf.SMTP)
	worker := notifier.NewWorker(rmq, mailer, zap.L())
	if err = worker.Start(context.Background()); err != nil {
		return fmt.Errorf("failed to start mail worker -> %w", err)
	}
	defer worker.Stop()

	publisher := notifier.NewPublisher(rmq)

	s := api.NewServer(conf, postgresDB, publisher)

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
