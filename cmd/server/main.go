package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	emailPkg "treetroopers/internal/adapters/email"
	web "treetroopers/internal/adapters/http"
	"treetroopers/internal/adapters/http/perf"
	"treetroopers/internal/adapters/storage"
	accountStore "treetroopers/internal/adapters/storage/account"
	calendarStorePkg "treetroopers/internal/adapters/storage/calendar"
	"treetroopers/internal/adapters/storage/kv"
	"treetroopers/internal/application/editsession"
	"treetroopers/internal/application/orchestrators"
	"treetroopers/internal/config"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	csrfKey, err := cfg.CSRFKeyBytes()
	if err != nil {
		log.Fatalf("invalid csrf key: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rawDB, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer rawDB.Close()
	if err := storage.MigrateDB(rawDB, cfg.DBPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}
	log.Println("Database initialized successfully!")

	// Statements from here on are timed into the perf collector.
	collector := perf.NewCollector(perf.DefaultRingSize)
	db := storage.NewTimedDB(rawDB, collector, cfg.SlowQuery())

	var eventStore calendarStorePkg.Store = calendarStorePkg.NewSQLiteStore(db)
	if cfg.DatabaseURL != "" {
		pool, err := calendarStorePkg.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to events database: %v", err)
		}
		defer pool.Close()
		pg := calendarStorePkg.NewPostgresStore(pool)
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare events table: %v", err)
		}
		eventStore = pg
		log.Println("Events stored in Postgres (DATABASE_URL)")
	}

	devStore := accountStore.NewSQLiteStore(db)
	devDeps := orchestrators.DeveloperDeps{DeveloperStore: devStore}
	if err := orchestrators.ExecuteSeedDeveloper(ctx, devDeps, cfg.Developer.Email, cfg.Developer.Password); err != nil {
		log.Fatalf("failed to seed developer: %v", err)
	}

	contentDeps := orchestrators.ContentDeps{Store: kv.NewSQLiteStore(db)}
	session := editsession.New(
		orchestrators.ExecuteLoadContent(ctx, contentDeps),
		orchestrators.ExecuteLoadTheme(ctx, contentDeps),
		orchestrators.ContentPersister{Deps: contentDeps},
	)

	stores := &web.Stores{
		Session:        session,
		EventStore:     eventStore,
		DeveloperStore: devStore,
		AnnounceTo:     cfg.Email.AnnounceTo,
		Location:       cfg.Location(),
	}
	if cfg.Email.ResendKey != "" {
		stores.EmailSender = emailPkg.NewResendSender(cfg.Email.ResendKey, cfg.Email.From)
		log.Println("Email sender configured (Resend)")
	} else {
		stores.EmailSender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: CLUB_RESEND_KEY is not set, event announcements are DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set CLUB_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux(ctx, stores, web.Options{
		StaticDir:      cfg.StaticDir,
		CSRFKey:        csrfKey,
		Production:     cfg.IsProduction(),
		TrustedOrigins: cfg.TrustedOrigins,
		SlowRequest:    cfg.SlowRequest(),
		Collector:      collector,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Tree Troopers %s starting on %s (env=%s, schema=%d)", version, cfg.Addr, cfg.Env, storage.LatestSchemaVersion())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}
