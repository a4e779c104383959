package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/ascend-lambda/internal/config"
	"github.com/saulo-duarte/ascend-lambda/internal/container"
)

func main() {
	c := container.New()

	server := &http.Server{
		Addr:         ":" + config.Getenv("PORT", "8080"),
		Handler:      c.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		config.Logger.Infof("Starting server on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("Server failed")
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	config.Logger.Infof("Got signal %s, shutting down", <-sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		config.Logger.WithError(err).Error("Server shutdown error")
	}
	config.Logger.Info("Server shutdown complete")
}
