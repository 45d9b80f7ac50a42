// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/barclient"
	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
	"github.com/tomtom215/barkeep/internal/validation"
)

// Error codes.
const (
	CodeValidation          = validation.ErrorCode
	CodeNotFound            = "NOT_FOUND"
	CodeForbidden           = "FORBIDDEN"
	CodeCatalogError        = "CATALOG_ERROR"
	CodeCatalogUnavailable  = "CATALOG_UNAVAILABLE"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// APIResponse is the envelope of every JSON response.
type APIResponse struct {
	Status   string    `json:"status"`
	Data     any       `json:"data,omitempty"`
	Metadata Metadata  `json:"metadata"`
	Error    *APIError `json:"error,omitempty"`
}

// Metadata accompanies every response.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
}

// APIError is the error body.
type APIError struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, response *APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope around data.
func respondData(w http.ResponseWriter, r *http.Request, status int, data any) {
	respondJSON(w, status, &APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: metadataFor(r),
	})
}

func respondError(w http.ResponseWriter, r *http.Request, status int, apiErr *APIError) {
	respondJSON(w, status, &APIResponse{
		Status:   "error",
		Metadata: metadataFor(r),
		Error:    apiErr,
	})
}

func metadataFor(r *http.Request) Metadata {
	return Metadata{
		Timestamp: time.Now().UTC(),
		RequestID: logging.RequestIDFromContext(r.Context()),
	}
}

// respondValidation writes a 400 for a failed struct validation.
func respondValidation(w http.ResponseWriter, r *http.Request, verr *validation.RequestValidationError) {
	apiErr := verr.ToAPIError()
	respondError(w, r, http.StatusBadRequest, &APIError{
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Details: apiErr.Details,
	})
}

// badRequest writes a 400 VALIDATION_ERROR with a plain message.
func badRequest(w http.ResponseWriter, r *http.Request, format string, args ...any) {
	respondError(w, r, http.StatusBadRequest, &APIError{
		Code:    CodeValidation,
		Message: fmt.Sprintf(format, args...),
	})
}

// respondServiceError maps errors from the engine, catalog, store and bar
// client onto HTTP statuses. Messages of 5xx responses never include the
// underlying error.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr      *validation.RequestValidationError
		integrity *recommend.DataIntegrityError
	)

	switch {
	case errors.As(err, &verr):
		respondValidation(w, r, verr)
	case errors.Is(err, recommend.ErrInvalidArgument), errors.Is(err, store.ErrInvalidUsername):
		respondError(w, r, http.StatusBadRequest, &APIError{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, barclient.ErrUserNotFound):
		respondError(w, r, http.StatusNotFound, &APIError{Code: CodeNotFound, Message: notFoundMessage(err)})
	case errors.As(err, &integrity):
		logging.Ctx(r.Context()).Error().Err(err).Msg("catalog integrity failure")
		respondError(w, r, http.StatusInternalServerError, &APIError{
			Code:    CodeCatalogError,
			Message: "Catalog data failed integrity checks",
			Details: map[string]any{"bottle_id": integrity.BottleID, "field": integrity.Field},
		})
	case errors.Is(err, catalog.ErrNotLoaded):
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    CodeCatalogUnavailable,
			Message: "Catalog not loaded yet",
		})
	case errors.Is(err, barclient.ErrUnavailable):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("bar API unavailable")
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    CodeUpstreamUnavailable,
			Message: "Bar API temporarily unavailable",
		})
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Msg("request canceled by client")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("request failed")
		respondError(w, r, http.StatusInternalServerError, &APIError{
			Code:    CodeInternal,
			Message: "Internal server error",
		})
	}
}

func notFoundMessage(err error) string {
	if errors.Is(err, barclient.ErrUserNotFound) {
		return "User not found in bar API"
	}
	return "No bar stored for this user"
}

// decodeJSON reads a size-limited JSON body into v and validates it.
// It writes the error response itself and reports whether to continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, http.StatusRequestEntityTooLarge, &APIError{
				Code:    CodeValidation,
				Message: fmt.Sprintf("Request body exceeds %d bytes", tooLarge.Limit),
			})
			return false
		}
		badRequest(w, r, "Failed to read request body")
		return false
	}
	if len(body) == 0 {
		badRequest(w, r, "Request body is required")
		return false
	}

	if err := json.Unmarshal(body, v); err != nil {
		badRequest(w, r, "Invalid JSON body: %v", err)
		return false
	}
	if verr := validation.ValidateStruct(v); verr != nil {
		respondValidation(w, r, verr)
		return false
	}
	return true
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &v, nil
}

// queryFloat parses an optional number query parameter.
func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", key)
	}
	return &v, nil
}
