package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/yamanekazuki/hr-qa-assistant/internal/bootstrap"
	"github.com/yamanekazuki/hr-qa-assistant/internal/server"
	"github.com/yamanekazuki/hr-qa-assistant/internal/tracer"
)

func main() {
	shutdownTracer := tracer.InitTracer()

	container := bootstrap.NewContainer()
	defer container.Shutdown()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := container.Start(ctx); err != nil {
		log.Fatalf("Failed to start background workers: %v", err)
	}

	app := server.New(container)

	go func() {
		if err := app.Listen(":" + container.Config.App.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	container.Logger.Info("Main", "Shutting down", nil)
	cancel()
	if err := app.Shutdown(); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	if err := shutdownTracer(context.Background()); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}
}
