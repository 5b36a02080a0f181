// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/samber/oops"

	"github.com/freightdesk/freightdesk/internal/auth"
	"github.com/freightdesk/freightdesk/internal/shipping"
)

// maxBodyBytes caps request bodies well above any legitimate payload.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.ErrorContext(r.Context(), "response encode failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads a JSON request body into dst. Unknown fields are
// tolerated so clients can send extra keys without breaking.
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return oops.Code("API_BAD_REQUEST_BODY").Wrap(err)
	}
	return nil
}

// badRequestMessages maps caller-fixable validation codes to the
// message shown in the 400 body. Codes absent here map to 500.
var badRequestMessages = map[string]string{
	"AUTH_MISSING_FIELD":       "Username, password, and role are required",
	"AUTH_INVALID_USERNAME":    "Invalid username",
	"AUTH_INVALID_ROLE":        "Role must be one of Employee, Manager, Supervisor",
	"AUTH_EMPTY_PASSWORD":      "Password cannot be empty",
	"CLIENT_MISSING_FIELD":     "Client full name and address are required",
	"RECIPIENT_MISSING_FIELD":  "Recipient full name is required",
	"PACKAGE_MISSING_FIELD":    "Package description is required",
	"PACKAGE_INVALID_QUANTITY": "Quantity must be a positive number",
	"LOCATION_MISSING_FIELD":   "Location name and address are required",
	"SEARCH_CRITERIA_MISSING":  "At least one search parameter is required",
	"API_BAD_REQUEST_BODY":     "Invalid request body",
}

// errorCode extracts the structured code from the outermost oops error.
func errorCode(err error) string {
	if oopsErr, ok := oops.AsOops(err); ok {
		if code, isString := oopsErr.Code().(string); isString {
			return code
		}
	}
	return ""
}

// badRequestMessage walks the error chain for a caller-fixable
// validation code and returns its message. Services wrap validation
// failures with outer operation codes, so inner causes are checked too.
func badRequestMessage(err error) (string, bool) {
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		if msg, ok := badRequestMessages[errorCode(cause)]; ok {
			return msg, true
		}
	}
	return "", false
}

// serviceError converts a service failure into an HTTP response.
// Sentinels are checked first since services wrap them with outer
// operation codes; unrecognized errors become an opaque 500.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, shipping.ErrHasPackages) {
		writeError(w, r, http.StatusConflict, "Recipient still has packages")
		return
	}
	if errors.Is(err, shipping.ErrNotFound) || errors.Is(err, auth.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, "Resource not found")
		return
	}
	if msg, ok := badRequestMessage(err); ok {
		writeError(w, r, http.StatusBadRequest, msg)
		return
	}
	slog.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"code", errorCode(err),
		"error", err,
	)
	writeError(w, r, http.StatusInternalServerError, "Internal server error")
}
