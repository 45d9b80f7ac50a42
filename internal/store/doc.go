// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package store persists bars (owned bottles, ratings and wishlists) and
// recommendation history in BadgerDB.
//
// Key layout:
//
//	bar:<username>                          JSON Bar
//	history:<username>:<unix nanos>:<seq>   JSON HistoryEntry
//
// Usernames are slugs, so the separator never appears inside a key part.
// History is capped per user; the oldest entries are trimmed on append.
package store
