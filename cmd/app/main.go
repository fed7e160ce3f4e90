package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bagdasarian/task-balancer/internal/config"
	"github.com/bagdasarian/task-balancer/internal/db"
	"github.com/bagdasarian/task-balancer/internal/handler"
	"github.com/bagdasarian/task-balancer/internal/handler/server"
	"github.com/bagdasarian/task-balancer/internal/logging"
	"github.com/bagdasarian/task-balancer/internal/repository/postgres"
	"github.com/bagdasarian/task-balancer/internal/service"
)

func main() {
	cfg := config.Load()

	logger := logging.NewLogger(cfg.Env)
	logger.Info("starting service", "env", cfg.Env)

	database := db.MustLoad(cfg)
	logger.Info("connected to database", "host", cfg.Database.Host, "db", cfg.Database.DBName)
	defer database.Close()

	teamRepo := postgres.NewTeamRepository(database)
	taskRepo := postgres.NewTaskRepository(database)
	projectRepo := postgres.NewProjectRepository(database)
	activityRepo := postgres.NewActivityRepository(database)

	workloadService := service.NewWorkloadService(teamRepo, taskRepo, activityRepo, cfg.Workload, logger.With("component", "workload"))
	dashboardService := service.NewDashboardService(teamRepo, projectRepo, taskRepo, activityRepo, cfg.Workload)

	h := handler.NewHandler(workloadService, dashboardService, logger)
	srv := server.NewServer(h, cfg.HTTP, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}
}
