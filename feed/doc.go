// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package feed implements the row-change feed.

The Hub fans out table change events to two kinds of listeners:

  - in-process subscriptions (the livesync reconciler), one per table,
    created with Subscribe and torn down with Unsubscribe
  - WebSocket clients attached via Attach, which receive every event as
    a JSON frame

Events carry only the table name and action. Listeners are expected to
treat any event as a cue to reload, never as an incremental patch, so a
dropped event on a full listener buffer is harmless: a reload cue is
already pending there.

The store publishes an event after every successful mutation, which makes
the hub the equivalent of a database's change-notification channel for
this single-process deployment.
*/
package feed
