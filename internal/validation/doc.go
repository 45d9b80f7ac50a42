// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package validation wraps go-playground/validator with a shared instance
// and error messages suitable for API responses.
//
// Catalog records and request bodies are validated the same way:
//
//	type recommendRequest struct {
//	    Username string `json:"username" validate:"required,slug"`
//	    K        int    `json:"k" validate:"min=1,max=50"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    ...
//	}
//
// Besides the built-in tags the validator knows "slug": 1 to 64 characters
// of letters, digits, dot, underscore or hyphen, starting with a letter or
// digit. Usernames and bottle ids use it.
package validation
