// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags and environment
variables.

A .env file is loaded first (godotenv), then flags, then the environment.
Startup fails hard when DATABASE_URL or SESSION_SECRET is missing - there
are no silent defaults for either.

Feature flags select the poll behavior:

  - -deadline / VOTING_DEADLINE: an RFC3339 timestamp after which vote
    mutations are rejected; empty disables deadline enforcement entirely
  - -owner-delete / OWNER_DELETE: whether option creators may delete
    their own options (default on)
*/
package cliparse
