// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package auth provides HS256 bearer-token authentication.
//
// With AUTH_MODE=none every request passes and per-user routes are open.
// With AUTH_MODE=jwt requests need "Authorization: Bearer <token>"; tokens
// carry a username and role, and per-user routes only admit the named user
// or an admin.
package auth
