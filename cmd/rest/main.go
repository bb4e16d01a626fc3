package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agrisense-be/internal/bootstrap"
	"agrisense-be/internal/config"
	"agrisense-be/internal/server"
	"agrisense-be/internal/tracer"
	"agrisense-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, cfg.Database.LogLevel)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(gormDB, cfg)
	if err != nil {
		log.Panicf("Unable to bootstrap dependencies: %v", err)
	}
	defer container.Close()

	// 4. Tracing
	shutdownTracer := tracer.InitTracer(cfg.Telemetry, container.Logger)

	// 5. Start Background Services
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := container.ConsumerService.Consume(ctx); err != nil {
			container.Logger.Error("CONSUMER", "Index consumer stopped", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// 6. Run Server until a signal arrives
	srv := server.New(cfg, container)
	go func() {
		if err := srv.Run(); err != nil {
			container.Logger.Error("SERVER", "Listener stopped", map[string]interface{}{
				"error": err.Error(),
			})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Warn("SERVER", "Graceful shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		container.Logger.Warn("TRACER", "Tracer shutdown failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
