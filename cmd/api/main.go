package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
	apporg "github.com/orgstack/orgstack/internal/application/org"
	"github.com/orgstack/orgstack/internal/bootstrap"
	"github.com/orgstack/orgstack/internal/config"
	"github.com/orgstack/orgstack/internal/infrastructure/db/models"
	"github.com/orgstack/orgstack/internal/infrastructure/file"
	"github.com/orgstack/orgstack/internal/infrastructure/mailer"
	"github.com/orgstack/orgstack/internal/infrastructure/queue"
	"github.com/orgstack/orgstack/internal/infrastructure/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "api",
	})

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Fatal("connect database", "err", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.SessionToken{},
		&models.Organization{},
		&models.OrganizationMembership{},
		&models.Event{},
		&models.Notification{},
		&models.MemberImportJob{},
	); err != nil {
		logger.Fatal("migrate database", "err", err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("create pgx pool", "err", err)
	}
	defer pool.Close()

	broker, err := queue.NewClient(cfg.AMQPURL)
	if err != nil {
		logger.Fatal("connect broker", "err", err)
	}
	defer broker.Close()
	if err := broker.DeclareQueue(mailer.EmailQueue); err != nil {
		logger.Fatal("declare email queue", "err", err)
	}

	mail := mailer.NewPublisher(broker)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	mailWorker := mailer.NewWorker(broker, &mailer.SMTPSender{
		Addr:     cfg.SMTPAddr,
		From:     cfg.SMTPFrom,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}, logger.WithPrefix("mailer"))
	if err := mailWorker.Start(workerCtx); err != nil {
		logger.Fatal("start email worker", "err", err)
	}

	importJobs := repository.NewMemberImportJobRepository(db)
	importStore := repository.NewMemberImportStore(pool)
	sourceFiles := file.NewMediaRoot(cfg.MediaRoot)

	importWorker := apporg.NewImportWorker(importJobs, sourceFiles, importStore, apporg.ImportWorkerConfig{
		Workers:       cfg.ImportWorkers,
		ChunkSize:     cfg.ImportChunkSize,
		LeaseDuration: time.Duration(cfg.ImportLeaseSecs) * time.Second,
	}, logger.WithPrefix("import"))
	importWorker.Start(workerCtx)

	server := bootstrap.NewHTTPServer(cfg, db, mail, logger)

	go func() {
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("graceful shutdown failed", "err", err)
	}
}
