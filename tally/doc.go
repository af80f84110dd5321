// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package tally derives aggregate poll numbers from raw option and vote
rows.

Compute is pure and deterministic: no I/O, no clocks (the caller passes
now), no mutation of its inputs. Callers rerun it in full whenever either
input set changes; at this data scale an O(votes) recompute per change is
cheaper than maintaining incremental state correctly.

Outputs: per-option derived counts (cached-counter fallback for options
with no observed votes), total votes, unique voter count, the current
user's voted-option set, the leading option (first-max-wins on ties),
and the voter roster with display-name fallback.
*/
package tally
