// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain types and HTTP request/response types
for the meetup poll API.

Two rows are persisted: Option (a proposed meetup location, with a cached
vote counter) and Vote (a voter's endorsement of one option, unique per
(option, voter) pair). User is the external identity provider's session
payload and is never stored.

PollViewResponse is the composed view model served by GET /poll: the
option list with live counts, the derived tally numbers, the leading
option, the voter roster, and the deadline state.
*/
package models
