package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/meetup-poll/cliparse"
	"github.com/danielhkuo/meetup-poll/clock"
	"github.com/danielhkuo/meetup-poll/db"
	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/livesync"
	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/router"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/store"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "postgres"
	if cfg.DatabaseType == "sqlite" {
		driver = "sqlite"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// sqlite needs foreign keys switched on for the vote cascade
	if cfg.DatabaseType == "sqlite" {
		if _, err := dbConn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			slog.Error("failed to enable foreign keys", "error", err)
			os.Exit(1)
		}
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Change feed and live view
	hub := feed.NewHub()
	go hub.Run(ctx)

	st := store.New(dbConn, hub)

	reconciler := livesync.New(st, hub)
	go reconciler.Run(ctx)

	// Deadline clock (no-op gate when no deadline is configured)
	deadlineClock := clock.New(cfg.VotingDeadline)
	go deadlineClock.Run(ctx)

	sessions := session.NewManager(cfg.SessionSecret)

	// Create router
	mux := router.NewRouter(router.Deps{
		Store:      st,
		Hub:        hub,
		Reconciler: reconciler,
		Clock:      deadlineClock,
		Sessions:   sessions,
		Config:     cfg,
	})

	// Create server; the widget is served from another origin
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "deadline_enforced", cfg.DeadlineEnforced())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
