// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the typed data access layer over the poll_option and
vote tables.

# Operations

	opts, err := s.ListOptions()              // cached-count order
	votes, err := s.ListVotes()               // whole table
	created, err := s.CastVote(optID, uid, email, name)
	removed, err := s.RetractVote(optID, uid)
	opt, err := s.ProposeOption(name, loc, mapURL, uid)
	err := s.DeleteOption(optID)

# Error taxonomy

  - *ValidationError: a locally rejected field; never reaches the
    database
  - ErrOptionNotFound: mutation against an unknown option id
  - duplicate vote: NOT an error - CastVote returns created=false
  - anything else: a wrapped driver/network failure

# Counter cache

CastVote and RetractVote maintain poll_option.vote_count inside the same
transaction as the vote row. The counter is advisory; readers prefer the
live count derived from vote rows and fall back to the cache only before
votes have loaded.

Every successful mutation publishes a change event on the feed hub.
*/
package store
