// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the meetup poll API server.

Meetup Poll is a small real-time group voting service: signed-in users
propose meetup locations, cast or retract one vote per option, and every
client sees tallies update live over a WebSocket change feed.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=postgres://... SESSION_SECRET=... go run main.go

Or with flags:

	go run main.go -p 3318 -d poll.db -t sqlite -session-secret dev

# Configuration

Required settings:

  - DATABASE_URL (-d): database location (postgres URL or sqlite path)
  - SESSION_SECRET (-session-secret): HMAC secret shared with the
    identity provider's session tokens

Optional settings:

  - PORT (-p): server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - VOTING_DEADLINE (-deadline): RFC3339 cutoff for vote mutations
  - OWNER_DELETE (-owner-delete): allow creators to delete options

# Architecture

	 handlers → store → database
	     ↑        ↓ (publish)
	 livesync ← feed hub → WebSocket clients

The store publishes a change event after every successful mutation. The
livesync reconciler reloads both tables on any event and the tally
engine derives counts, the leading option, and the roster from the
snapshot on every /poll request. See package documentation for each
component.
*/
package main
