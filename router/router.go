// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/meetup-poll/cliparse"
	"github.com/danielhkuo/meetup-poll/clock"
	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/handlers"
	"github.com/danielhkuo/meetup-poll/livesync"
	"github.com/danielhkuo/meetup-poll/middleware"
	"github.com/danielhkuo/meetup-poll/session"
	"github.com/danielhkuo/meetup-poll/store"
)

// Deps carries everything the routes need.
type Deps struct {
	Store      *store.Store
	Hub        *feed.Hub
	Reconciler *livesync.Reconciler
	Clock      *clock.Clock
	Sessions   *session.Manager
	Config     cliparse.Config
}

func NewRouter(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	optionsHandler := handlers.NewOptionsHandler(d.Store, d.Config)
	votesHandler := handlers.NewVotesHandler(d.Store, d.Clock)
	pollHandler := handlers.NewPollHandler(d.Reconciler, d.Clock)
	feedHandler := handlers.NewFeedHandler(d.Hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Composed poll view (anonymous OK, personalized when signed in)
	mux.HandleFunc("GET /poll", middleware.WithLogging(d.Sessions.OptionalUser(pollHandler.GetPoll)))

	// Raw table reads
	mux.HandleFunc("GET /options", middleware.WithLogging(optionsHandler.List))
	mux.HandleFunc("GET /votes", middleware.WithLogging(votesHandler.List))

	// Mutations (authenticated)
	mux.HandleFunc("POST /options", middleware.WithLogging(d.Sessions.RequireUser(optionsHandler.Propose)))
	mux.HandleFunc("DELETE /options/{id}", middleware.WithLogging(d.Sessions.RequireUser(optionsHandler.Delete)))
	mux.HandleFunc("POST /options/{id}/vote", middleware.WithLogging(d.Sessions.RequireUser(votesHandler.Cast)))
	mux.HandleFunc("DELETE /options/{id}/vote", middleware.WithLogging(d.Sessions.RequireUser(votesHandler.Retract)))

	// Live change feed
	mux.HandleFunc("GET /changes", feedHandler.Changes)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("meetup-poll API v1"))
	})

	return mux
}
