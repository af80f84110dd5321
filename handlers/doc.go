// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the meetup poll API.

# Handler Types

Each handler is a struct created via a constructor that accepts its
dependencies:

  - OptionsHandler: option listing, proposal, owner delete
  - VotesHandler: vote cast/retract with the deadline gate
  - PollHandler: the composed live poll view model
  - FeedHandler: the WebSocket change feed

# Voting Flow

	GET  /poll                 → composed view (tally, leading, roster)
	POST /options              → propose a location (auth)
	POST /options/{id}/vote    → cast (auth; 409 once voting closes)
	DELETE /options/{id}/vote  → retract (auth; idempotent)
	DELETE /options/{id}       → owner delete (auth; feature-gated)
	GET  /changes              → WebSocket change events

Vote casting is idempotent in intent: a duplicate (option, voter) pair
hits the storage unique constraint and comes back 200 with
created=false rather than an error.

Storage failures on mutations answer 502 with a JSON body; nothing is
retried automatically and no failure is fatal to the process.
*/
package handlers
