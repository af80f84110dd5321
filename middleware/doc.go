// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP cross-cutting helpers: request logging,
CORS, and JSON request/response plumbing.

FieldErrorResponse exists for form validation failures - the body names
the offending field so the client can render the error inline next to
the input instead of as a page-level banner.
*/
package middleware
