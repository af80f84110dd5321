// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package clock implements the voting deadline gate and countdown.

The gate is advisory: handlers reject vote mutations once the deadline
passes, but nothing stops a caller holding database credentials from
writing rows directly. Real enforcement would need to live in the
persistence layer.

ClosedAt and Countdown are pure functions of (deadline, now) so the
bucketing rules are testable without a running ticker.
*/
package clock
