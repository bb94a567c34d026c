// Command web serves the task list as a local web page and JSON API.
// It uses the same todo.Service as the desktop app, so the task lists and
// the storage backend are shared without duplication.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/MihkelHunter/mkTasks/internal/config"
	"github.com/MihkelHunter/mkTasks/internal/httpapi"
	"github.com/MihkelHunter/mkTasks/internal/log"
	"github.com/MihkelHunter/mkTasks/internal/store"
	"github.com/MihkelHunter/mkTasks/internal/todo"
	"github.com/MihkelHunter/mkTasks/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	log.Init(cfg.Log)
	logger := log.NewModuleLogger("main", "web")
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := store.Open(cfg.Storage)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	svc, err := todo.NewService(repo)
	if err != nil {
		repo.Close()
		return err
	}
	defer svc.Close()
	logger.Info("storage ready", "driver", cfg.Storage.Driver)

	srv := httpapi.NewServer(cfg.Server.Addr, view.NewModel(svc))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
