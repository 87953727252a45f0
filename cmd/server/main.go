package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/suraksha/internal/config"
	"github.com/mamadbah2/suraksha/internal/repository"
	"github.com/mamadbah2/suraksha/internal/repository/sheets"
	"github.com/mamadbah2/suraksha/internal/scheduler"
	"github.com/mamadbah2/suraksha/internal/server/handlers"
	"github.com/mamadbah2/suraksha/internal/server/router"
	commandsvc "github.com/mamadbah2/suraksha/internal/service/commands"
	"github.com/mamadbah2/suraksha/internal/service/notify"
	"github.com/mamadbah2/suraksha/internal/service/records"
	reportingsvc "github.com/mamadbah2/suraksha/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/suraksha/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/suraksha/pkg/clients/whatsapp"
	"github.com/mamadbah2/suraksha/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Log.Level))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, closeStorage, err := repository.Open(ctx, *cfg, baseLogger.Named("repo"))
	if err != nil {
		baseLogger.Fatal("failed to open storage", zap.String("driver", cfg.Storage.Driver), zap.Error(err))
	}
	defer func() {
		if err := closeStorage(context.Background()); err != nil {
			baseLogger.Error("failed to close storage", zap.Error(err))
		}
	}()

	var whatsClient whatsappclient.Client
	notifiers := notify.Multi{notify.NewLogNotifier(baseLogger.Named("notify.log"))}
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(cfg.WhatsApp)
		if cfg.WhatsApp.OwnerID != "" {
			ownerNotifier := notify.NewWhatsAppNotifier(whatsClient, cfg.WhatsApp.OwnerID, baseLogger.Named("notify.whatsapp"))
			defer ownerNotifier.Wait()
			notifiers = append(notifiers, ownerNotifier)
		}
		baseLogger.Info("whatsapp client enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, owner messaging disabled")
	}

	recordStore := records.NewStore(storage, notifiers, baseLogger.Named("svc.records"), records.WithKey(cfg.Storage.Key))
	recordStore.Load(ctx)

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(ctx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
	}

	loc := cfg.Reporting.Location()
	reportingSvc := reportingsvc.NewService(recordStore, sheetsRepo, baseLogger.Named("svc.reporting"))
	commandDispatcher := commandsvc.NewService(recordStore, loc, baseLogger.Named("svc.commands"))
	messagingSvc := whatsappsvc.NewMetaWhatsAppService(cfg.WhatsApp, whatsClient, commandDispatcher, baseLogger.Named("svc.whatsapp"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, messagingSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	gin.SetMode(gin.ReleaseMode)
	engine := router.New(router.Handlers{
		Records: handlers.NewRecordsHandler(recordStore, loc, baseLogger.Named("handlers.records")),
		Webhook: handlers.NewWebhookHandler(messagingSvc, baseLogger.Named("handlers.whatsapp")),
		Reports: handlers.NewReportsHandler(sched, baseLogger.Named("handlers.reports")),
		Ready:   recordStore.Ready,
	}, baseLogger.Named("router"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
