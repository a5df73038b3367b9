package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SergioM098/Monitoring-proyect/internal/api/handlers"
	"github.com/SergioM098/Monitoring-proyect/internal/api/router"
	"github.com/SergioM098/Monitoring-proyect/internal/config"
	"github.com/SergioM098/Monitoring-proyect/internal/domain/notification"
	"github.com/SergioM098/Monitoring-proyect/internal/events"
	"github.com/SergioM098/Monitoring-proyect/internal/notifier"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/logger"
	"github.com/SergioM098/Monitoring-proyect/internal/pkg/validator"
	"github.com/SergioM098/Monitoring-proyect/internal/probe"
	"github.com/SergioM098/Monitoring-proyect/internal/repository/postgres"
	"github.com/SergioM098/Monitoring-proyect/internal/services"
	"github.com/SergioM098/Monitoring-proyect/internal/worker"
	"github.com/SergioM098/Monitoring-proyect/migrations"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	log.With("version", version).With("driver", cfg.Database.Driver).Info("starting monitoring server")

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	targetRepo := postgres.NewTargetRepository(db)
	checkRepo := postgres.NewCheckRepository(db)
	incidentRepo := postgres.NewIncidentRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	hub := events.NewHub(log)

	notifiers := []notification.Notifier{
		notifier.NewEmailNotifier(cfg.SMTP),
		notifier.NewWhatsAppNotifier(cfg.WhatsApp),
	}

	registry := probe.NewRegistry(cfg.Monitor.ProbeTimeout)
	targetService := services.NewTargetService(targetRepo, log)
	incidentService := services.NewIncidentService(incidentRepo, hub, log)
	alertService := services.NewAlertService(notificationRepo, notifiers, cfg.Monitor.AlertThrottle, log)
	monitorService := services.NewMonitorService(registry, targetRepo, checkRepo, incidentService, alertService, hub, log)

	scheduler := worker.NewScheduler(cfg.Monitor.TickSpec, targetRepo, checkRepo, monitorService, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := scheduler.Start(ctx); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}

	val := validator.New()
	handler := router.New(log, &router.Handlers{
		Health:       handlers.NewHealthHandler(db, version),
		Target:       handlers.NewTargetHandler(targetService, checkRepo, monitorService, log, val),
		Incident:     handlers.NewIncidentHandler(incidentService, log),
		Notification: handlers.NewNotificationHandler(alertService, log, val),
		Status:       handlers.NewStatusHandler(targetRepo, checkRepo, incidentService, log),
		Events:       hub,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.With("addr", srv.Addr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	cancel()
	scheduler.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}

	log.Info("server stopped")
}
