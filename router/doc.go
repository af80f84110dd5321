// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ method patterns.

Routes split into reads (open to anonymous viewers), authenticated
mutations wrapped in session.RequireUser, and the WebSocket change feed.
Request logging wraps everything except /health, / and the feed.
*/
package router
