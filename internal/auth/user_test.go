// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freightdesk/freightdesk/internal/auth"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with underscore", "alice_w", false},
		{"valid with digits", "alice99", false},
		{"valid minimum length", "abc", false},
		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", "a234567890123456789012345678901", true},
		{"starts with digit", "9alice", true},
		{"starts with underscore", "_alice", true},
		{"contains space", "ali ce", true},
		{"contains dash", "ali-ce", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := auth.ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRole(t *testing.T) {
	for _, role := range []auth.Role{auth.RoleEmployee, auth.RoleManager, auth.RoleSupervisor} {
		t.Run(string(role), func(t *testing.T) {
			assert.NoError(t, auth.ValidateRole(role))
		})
	}

	t.Run("unknown role rejected", func(t *testing.T) {
		assert.Error(t, auth.ValidateRole(auth.Role("Admin")))
	})

	t.Run("empty role rejected", func(t *testing.T) {
		assert.Error(t, auth.ValidateRole(auth.Role("")))
	})

	t.Run("role comparison is case-sensitive", func(t *testing.T) {
		assert.Error(t, auth.ValidateRole(auth.Role("manager")))
	})
}

func TestNewUser(t *testing.T) {
	t.Run("creates valid user", func(t *testing.T) {
		user, err := auth.NewUser("alice", "$argon2id$fakehash", auth.RoleManager)
		require.NoError(t, err)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, auth.RoleManager, user.Role)
		assert.False(t, user.ID.IsZero())
		assert.Zero(t, user.FailedAttempts)
		assert.Nil(t, user.LockedUntil)
	})

	t.Run("rejects invalid username", func(t *testing.T) {
		_, err := auth.NewUser("x", "$argon2id$fakehash", auth.RoleEmployee)
		assert.Error(t, err)
	})

	t.Run("rejects empty password hash", func(t *testing.T) {
		_, err := auth.NewUser("alice", "", auth.RoleEmployee)
		assert.Error(t, err)
	})

	t.Run("rejects invalid role", func(t *testing.T) {
		_, err := auth.NewUser("alice", "$argon2id$fakehash", auth.Role("Boss"))
		assert.Error(t, err)
	})
}

func TestUser_Lockout(t *testing.T) {
	t.Run("lockout after threshold failures", func(t *testing.T) {
		user, err := auth.NewUser("bob", "$argon2id$fakehash", auth.RoleEmployee)
		require.NoError(t, err)

		for range auth.LockoutThreshold - 1 {
			user.RecordFailure()
		}
		assert.False(t, user.IsLocked())

		user.RecordFailure()
		assert.True(t, user.IsLocked())
	})

	t.Run("success resets failures and lockout", func(t *testing.T) {
		user, err := auth.NewUser("carol", "$argon2id$fakehash", auth.RoleEmployee)
		require.NoError(t, err)

		for range auth.LockoutThreshold {
			user.RecordFailure()
		}
		require.True(t, user.IsLocked())

		user.RecordSuccess()
		assert.False(t, user.IsLocked())
		assert.Zero(t, user.FailedAttempts)
		assert.Nil(t, user.LockedUntil)
	})
}

func TestIsLockedOut(t *testing.T) {
	t.Run("nil is not locked", func(t *testing.T) {
		assert.False(t, auth.IsLockedOut(nil))
	})

	t.Run("past time is not locked", func(t *testing.T) {
		past := time.Now().Add(-time.Minute)
		assert.False(t, auth.IsLockedOut(&past))
	})

	t.Run("future time is locked", func(t *testing.T) {
		future := time.Now().Add(time.Minute)
		assert.True(t, auth.IsLockedOut(&future))
	})
}

func TestComputeLockoutTime(t *testing.T) {
	t.Run("below threshold returns nil", func(t *testing.T) {
		assert.Nil(t, auth.ComputeLockoutTime(auth.LockoutThreshold-1))
	})

	t.Run("at threshold returns future time", func(t *testing.T) {
		lockout := auth.ComputeLockoutTime(auth.LockoutThreshold)
		require.NotNil(t, lockout)
		assert.True(t, lockout.After(time.Now()))
	})
}
