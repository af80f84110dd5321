// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

The schema has two tables:

  - poll_option: proposed meetup locations with a cached vote counter
  - vote: (option, voter) endorsements with a UNIQUE(option_id, voter_id)
    constraint and ON DELETE CASCADE back to poll_option

The unique constraint is the only concurrency-correctness mechanism
against duplicate votes; the store treats a violation as a benign no-op.
Works with both the postgres (lib/pq) and sqlite (modernc.org/sqlite)
drivers. On sqlite, main enables foreign_keys so the cascade applies.
*/
package db
