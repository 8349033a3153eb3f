package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/lulabtechnology/saas-clinicas/internal/config"
	"github.com/lulabtechnology/saas-clinicas/internal/database"
	"github.com/lulabtechnology/saas-clinicas/internal/modules/messaging"
	"github.com/lulabtechnology/saas-clinicas/internal/repository"
)

// Standalone reminder dispatcher. Deployments with an external cron scheduler
// can use POST /api/v1/cron/messages/dispatch instead of running this.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	messageRepo := repository.NewMessageRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	messenger, err := messaging.NewProvider(cfg.MessagingProvider, messageRepo, bookingRepo, log.Printf)
	if err != nil {
		log.Fatalf("messaging: %v", err)
	}
	dispatcher := messaging.NewDispatcher(messageRepo, messenger, cfg.DispatchBatchSize, log.Printf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("level=info msg=dispatcher started interval=%s batch=%d", cfg.DispatchInterval, cfg.DispatchBatchSize)
	dispatcher.Run(ctx, cfg.DispatchInterval)
	log.Print("level=info msg=dispatcher stopped")
}
