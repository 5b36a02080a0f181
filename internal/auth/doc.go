// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

// Package auth provides authentication primitives for FreightDesk.
//
// # Domain Types
//
// Domain types (User, Session) should be created using their respective
// constructors:
//   - NewUser - creates a User with validated username, role, and password hash
//   - NewSession - creates a Session with validated user and expiry
//
// Direct struct initialization bypasses validation and may create invalid state.
// Repository implementations receive pre-validated types from these constructors.
//
// # Service
//
// Service coordinates registration, login, logout, and current-identity
// lookup. It never stores plaintext passwords (argon2id digests only) and
// never reveals whether a failed login was due to an unknown username or a
// wrong password.
package auth
