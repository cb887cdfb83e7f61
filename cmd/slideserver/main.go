package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/christineastoria/custom-slide-annotation/builder"
	"github.com/christineastoria/custom-slide-annotation/config"
	"github.com/christineastoria/custom-slide-annotation/i18n"
	"github.com/christineastoria/custom-slide-annotation/logger"
	"github.com/christineastoria/custom-slide-annotation/server"
)

func main() {
	configPath := flag.String("config", "slideserver.json", "Path to JSON config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	if err := log.Init(cfg.LogDir); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init log file: %v\n", err)
	}
	defer log.Close()
	i18n.SyncLanguageFromConfig(&cfg)

	store := builder.NewStore(log.Log)
	handler := server.SetupRoutes(server.NewHandler(cfg, store, log.Log))

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Logf("[SERVER] listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Logf("[SERVER] failed: %v", err)
			quit <- syscall.SIGTERM
		}
	}()

	<-quit
	log.Log("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Logf("[SERVER] shutdown error: %v", err)
	}
	log.Log("Server stopped")
}
