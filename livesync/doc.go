// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package livesync keeps an in-memory replica of the poll tables
consistent with storage.

The strategy is invalidate-and-refetch: each table subscription moves
Disconnected → Subscribing → Subscribed, an initial full load runs as
soon as both subscriptions are up, and every change notification on
either table triggers a full reload of both. Reloads are idempotent
whole-state replacements, so overlapping or redundant reloads converge
on the same result; under bursty change traffic some reloads are
redundant, which is accepted at this data scale.

A failed reload keeps the previous snapshot - the view continues to
reflect the last state it loaded successfully. After teardown begins,
in-flight reload results are discarded instead of applied.
*/
package livesync
