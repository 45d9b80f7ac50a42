// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package barclient fetches user bars from the upstream bar API.
//
// Calls go through a token-bucket rate limiter and a circuit breaker
// (3 trial requests when half-open, 1 minute counting interval, 2 minute open
// timeout, trips at 60% failures over at least 10 requests). An unknown
// user is not counted as a breaker failure.
//
// The upstream answers GET {base}/bar/user/{username} with either
//
//	{"bottles": [{"bottle_id": "...", "rating": 4.5, ...}], "wishlist": [{"bottle_id": "..."}]}
//
// or a bare array of bottles, in which case the wishlist is empty.
package barclient
