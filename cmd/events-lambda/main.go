// Command events-lambda serves GET and POST /api/events from AWS Lambda
// behind API Gateway, backed by the Postgres events table.
package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/lambda"

	emailPkg "treetroopers/internal/adapters/email"
	"treetroopers/internal/adapters/serverless"
	calendarStorePkg "treetroopers/internal/adapters/storage/calendar"
	"treetroopers/internal/config"
)

func main() {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, err := calendarStorePkg.OpenPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("%v", err)
	}
	store := calendarStorePkg.NewPostgresStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to prepare events table: %v", err)
	}

	h := &serverless.Handlers{
		EventStore: store,
		AnnounceTo: cfg.Email.AnnounceTo,
		Location:   cfg.Location(),
	}
	if cfg.Email.ResendKey != "" {
		h.Sender = emailPkg.NewResendSender(cfg.Email.ResendKey, cfg.Email.From)
	}

	lambda.Start(h.Route)
}
