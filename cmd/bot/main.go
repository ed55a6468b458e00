package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"question_qc_bot/internal/app"
	"question_qc_bot/internal/infra/config"
	"question_qc_bot/internal/infra/logger"
	"question_qc_bot/internal/infra/retry"
	"question_qc_bot/internal/infra/scheduler"
	"question_qc_bot/internal/infra/sheets"
	islack "question_qc_bot/internal/infra/slack"
	"question_qc_bot/internal/infra/throttle"
)

func main() {
	fmt.Println("Question QC Bot starting...")

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("FATAL: could not load application configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Component("main")
	for _, warning := range cfg.Warnings() {
		log.Warn(warning)
	}
	log.Infof("configuration loaded, log level %s, environment %s", cfg.LogLevel, cfg.Environment)

	// Row store: resolve the worksheet header once; a schema change
	// requires a restart.
	ctx := context.Background()
	api, err := sheets.NewAPI(ctx, cfg.CredentialsFile, cfg.SheetID, cfg.Worksheet)
	if err != nil {
		log.Fatalf("FATAL: could not create sheets client: %v", err)
	}
	repo, err := sheets.NewRepository(ctx, api, retry.New(cfg.StoreRetryAttempts), logger.Component("sheets"))
	if err != nil {
		log.Fatalf("FATAL: could not initialize row store: %v", err)
	}
	log.Info("row store initialized")

	// Messaging.
	webAPI := slackapi.New(cfg.SlackBotToken, slackapi.OptionAppLevelToken(cfg.SlackAppToken))
	socket := socketmode.New(webAPI)
	msgClient := islack.NewAdapter(webAPI)

	// Application services.
	dispatcher := app.NewDispatchService(repo, msgClient, throttle.New(cfg.DispatchPacing), cfg.QCChannel, logger.Component("dispatch"))
	decisions := app.NewDecisionService(repo, msgClient, logger.Component("decision"))

	handler := islack.NewInteractionHandler(socket, msgClient, decisions, logger.Component("slack"))
	handlerCtx, stopHandler := context.WithCancel(ctx)
	go func() {
		if err := handler.Run(handlerCtx); err != nil && handlerCtx.Err() == nil {
			log.WithError(err).Error("socket-mode listener stopped")
		}
	}()

	scanScheduler := scheduler.NewScanScheduler(dispatcher, cfg.PollInterval, logger.Component("scheduler"))
	scanScheduler.Start()
	log.Info("application setup complete")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	stopHandler()
	scanScheduler.Stop()
	log.Info("shut down gracefully")
}
