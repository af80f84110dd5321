// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session verifies identity tokens and exposes the authenticated
user to handlers.

Identity itself is external: users sign in against an identity provider
which issues an HS256 JWT carrying id/email/name claims. This service
only verifies the signature with the shared SESSION_SECRET and never
persists user records.

	user, err := mgr.Parse(token)

Handlers get the user through middleware:

	mux.HandleFunc("POST /options", mgr.RequireUser(h.Propose))
	user, ok := session.UserFrom(r.Context())

RequireUser answers 401 with error "auth_required" for missing or bad
tokens. OptionalUser is for read endpoints that personalize when a user
is present but serve anonymous viewers too.
*/
package session
