// File: medsync/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medsync/config"
	"medsync/cron"
	"medsync/handlers"
	"medsync/middleware"
	"medsync/remote"
	"medsync/routes"
	"medsync/services/notification"
	scheduleSvc "medsync/services/schedule"
	"medsync/services/session"
	"medsync/services/tasks"
	"medsync/storage"
	"medsync/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitStore()
	utils.FirebaseInit()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Persistent key-value store and session identity.
	store := storage.NewRedisStore(utils.GetStoreClient(), "medsync")
	sessions := session.NewManager(store)

	// Remote schedule service clients.
	api := remote.NewHTTPScheduleAPI(
		config.AppConfig.ScheduleAPIURL,
		time.Duration(config.AppConfig.RemoteTimeoutSecs)*time.Second,
		config.AppConfig.RemoteRatePerMin,
		func() string { return sessions.Token(context.Background()) },
	)
	push := remote.NewPushClient(config.AppConfig.ScheduleWSURL)

	// Core services.
	synchronizer := scheduleSvc.NewDefaultSynchronizer(api, push, store)
	builder := scheduleSvc.NewShiftBuilder()

	reminderQueue := tasks.NewAsynqReminderQueue(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	reminders := tasks.NewReminderScheduler(reminderQueue, store)
	taskService := tasks.NewTaskService(store, reminders)

	notificationService := notification.NewFCMNotificationService(store)
	cron.InitReminderWorker(notificationService)

	// Restore persisted state.
	if err := synchronizer.Hydrate(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to hydrate schedule: %v", err)
	}
	if err := taskService.Load(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to load tasks: %v", err)
	}
	if err := reminders.LoadHandles(ctx); err != nil {
		logger.Sugar().Warnf("main: failed to load reminder handles: %v", err)
	}

	// If a professional is already signed in, synchronize and follow pushes.
	if professionalID, err := sessions.ProfessionalID(ctx); err == nil {
		go func() {
			if _, err := synchronizer.Fetch(ctx, professionalID); err != nil {
				logger.Sugar().Warnf("main: initial schedule fetch failed: %v", err)
			}
			if err := synchronizer.Subscribe(ctx, professionalID); err != nil && !errors.Is(err, context.Canceled) {
				logger.Sugar().Warnf("main: schedule push subscription ended: %v", err)
			}
		}()
	}

	taskService.StartPruneLoop(ctx)
	utils.StartHealthMonitor(utils.GetStoreClient(), api.Ping)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	scheduleHandler := handlers.NewScheduleHandler(synchronizer, builder, sessions)
	taskHandler := handlers.NewTaskHandler(taskService)
	sessionHandler := handlers.NewSessionHandler(sessions, store)

	routes.RegisterRoutes(router, scheduleHandler, taskHandler, sessionHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting agent on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: agent is shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: agent stopped gracefully")
}
