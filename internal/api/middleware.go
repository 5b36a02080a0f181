// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/freightdesk/freightdesk/internal/auth"
	"github.com/freightdesk/freightdesk/internal/observability"
)

// Identity is the authenticated caller attached to the request context.
type Identity struct {
	User    *auth.User
	Session *auth.Session
}

type identityKey struct{}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(*Identity)
	return id, ok
}

// statusWriter captures the final HTTP status code and number of bytes
// written, distinguishing "handler returned 200" from "client received
// a response".
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Record implicit 200 responses when handlers write without calling WriteHeader.
func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// instrument logs every request and feeds the request counter. The
// metric route label is the mux pattern, not the raw path, to keep
// cardinality bounded.
func instrument(metrics *observability.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		if metrics != nil {
			metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		}

		slog.InfoContext(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"route", route,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// bearerToken extracts the token from an Authorization: Bearer header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return header[len(prefix):]
	}
	return ""
}

// authenticate resolves the bearer token to a staff identity and
// attaches it to the request context. Requests without a valid session
// are rejected before reaching the handler.
func authenticate(svc AuthService, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}

		user, session, err := svc.CurrentIdentity(r.Context(), token)
		if err != nil {
			if errorCode(err) == "AUTH_UNAUTHENTICATED" {
				writeError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			serviceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey{}, &Identity{
			User:    user,
			Session: session,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Authorizer decides whether a role may perform a permission.
type Authorizer interface {
	Allowed(role auth.Role, permission string) bool
}

// requirePermission gates a handler on one or more permission strings,
// answering 403 with denyMsg unless the caller's role grants all of
// them. Route groups pass their membership permission alongside the
// action so holding the action alone does not open another group's
// routes.
func requirePermission(guard Authorizer, denyMsg string, next http.HandlerFunc, permissions ...string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			writeError(w, r, http.StatusUnauthorized, "Authentication required")
			return
		}
		for _, permission := range permissions {
			if !guard.Allowed(identity.User.Role, permission) {
				writeError(w, r, http.StatusForbidden, denyMsg)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
