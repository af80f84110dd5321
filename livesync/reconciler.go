// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package livesync

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/danielhkuo/meetup-poll/feed"
	"github.com/danielhkuo/meetup-poll/models"
)

// State of one table's live subscription.
type State int

const (
	Disconnected State = iota
	Subscribing
	Subscribed
)

func (s State) String() string {
	switch s {
	case Subscribing:
		return "subscribing"
	case Subscribed:
		return "subscribed"
	default:
		return "disconnected"
	}
}

// Loader loads full table contents. Satisfied by *store.Store.
type Loader interface {
	ListOptions() ([]models.Option, error)
	ListVotes() ([]models.Vote, error)
}

// Snapshot is the reconciler's current view of both tables. Slices are
// shared with the reconciler; callers must treat them as read-only.
type Snapshot struct {
	Options []models.Option
	Votes   []models.Vote

	// VotesLoaded is false until the first successful votes load. While
	// false, tallies lean on the cached counters.
	VotesLoaded bool
	LoadedAt    time.Time
}

// Reconciler keeps an in-memory replica of the option and vote tables
// consistent with storage by full reload: any change notification on
// either table reloads both. No differential merging ever happens, so a
// reload that overlaps another simply replaces its result wholesale and
// the last one to land wins.
type Reconciler struct {
	loader Loader
	hub    *feed.Hub

	mu     sync.RWMutex
	snap   Snapshot
	states map[string]State

	reloads atomic.Int64
}

func New(loader Loader, hub *feed.Hub) *Reconciler {
	return &Reconciler{
		loader: loader,
		hub:    hub,
		states: map[string]State{
			models.TableOptions: Disconnected,
			models.TableVotes:   Disconnected,
		},
	}
}

// Run subscribes to both table feeds, performs the initial load, and
// reloads on every change notification until ctx is cancelled. Teardown
// unsubscribes each table exactly once; a reload in flight at that point
// has its result discarded rather than applied.
func (r *Reconciler) Run(ctx context.Context) {
	r.setState(models.TableOptions, Subscribing)
	optionsSub := r.hub.Subscribe(models.TableOptions)
	r.setState(models.TableOptions, Subscribed)

	r.setState(models.TableVotes, Subscribing)
	votesSub := r.hub.Subscribe(models.TableVotes)
	r.setState(models.TableVotes, Subscribed)

	defer func() {
		optionsSub.Unsubscribe()
		votesSub.Unsubscribe()
		r.setState(models.TableOptions, Disconnected)
		r.setState(models.TableVotes, Disconnected)
	}()

	// Load immediately on subscribe; a poll with no traffic would
	// otherwise never have data.
	r.reload(ctx)

	for {
		select {
		case _, ok := <-optionsSub.C:
			if !ok {
				return
			}
			r.reload(ctx)
		case _, ok := <-votesSub.C:
			if !ok {
				return
			}
			r.reload(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// reload replaces the snapshot with fresh table contents. On failure the
// previous snapshot stays; the view keeps reflecting the last state it
// loaded successfully.
func (r *Reconciler) reload(ctx context.Context) {
	r.reloads.Add(1)

	options, err := r.loader.ListOptions()
	if err != nil {
		slog.Error("options reload failed", "error", err)
		return
	}
	votes, err := r.loader.ListVotes()
	if err != nil {
		slog.Error("votes reload failed", "error", err)
		return
	}

	// The view is gone once ctx is cancelled; applying this result
	// would write into torn-down state.
	if ctx.Err() != nil {
		return
	}

	r.mu.Lock()
	r.snap = Snapshot{
		Options:     options,
		Votes:       votes,
		VotesLoaded: true,
		LoadedAt:    time.Now(),
	}
	r.mu.Unlock()
}

// Current returns the latest snapshot.
func (r *Reconciler) Current() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// State reports the subscription state for a table.
func (r *Reconciler) State(table string) State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.states[table]
}

// ReloadCount returns how many reload cycles have run.
func (r *Reconciler) ReloadCount() int64 {
	return r.reloads.Load()
}

func (r *Reconciler) setState(table string, s State) {
	r.mu.Lock()
	r.states[table] = s
	r.mu.Unlock()
}
