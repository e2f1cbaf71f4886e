package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/efs/todoapp/internal/api"
	"github.com/efs/todoapp/internal/config"
	"github.com/efs/todoapp/internal/repository"
	"github.com/efs/todoapp/internal/service"
)

func main() {
	// A .env file is optional; a plain environment works the same.
	_ = godotenv.Load()

	cfg, err := config.Load(os.Getenv("TODOAPP_CONFIG"))
	if err != nil {
		log.Fatal("loading config", "err", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           parseLevel(cfg.LogLevel),
		ReportTimestamp: true,
		Prefix:          "todoapp",
	})

	users, tasks, cleanup, err := buildStores(cfg)
	if err != nil {
		logger.Fatal("initializing stores", "err", err)
	}
	defer cleanup()

	todoService := service.NewToDoService(users, tasks)
	router := api.SetupRouter(todoService, logger)

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	go func() {
		logger.Info("listening", "addr", cfg.Addr, "store", cfg.StoreBackend)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", "err", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}

func buildStores(cfg *config.Config) (repository.UserRepository, repository.TaskRepository, func(), error) {
	if cfg.StoreBackend == "sqlite" {
		db, err := repository.InitDB(cfg.SQLitePath)
		if err != nil {
			return nil, nil, nil, err
		}
		return repository.NewSQLiteUserRepository(db), repository.NewSQLiteTaskRepository(db), func() { db.Close() }, nil
	}
	return repository.NewMemoryUserRepository(), repository.NewMemoryTaskRepository(), func() {}, nil
}

func parseLevel(s string) log.Level {
	level, err := log.ParseLevel(s)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
