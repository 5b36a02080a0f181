// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

//go:build integration

package auth_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/samber/oops"

	"github.com/freightdesk/freightdesk/internal/auth"
)

var _ = Describe("Authentication flows", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		truncateUsers(ctx, env.pool)
	})

	Describe("Register", func() {
		It("stores a hashed password, never the plaintext", func() {
			user, err := env.Service.Register(ctx, "edith", "hunter2", auth.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.Users.GetByID(ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.PasswordHash).To(HavePrefix("$argon2id$"))
			Expect(got.PasswordHash).NotTo(ContainSubstring("hunter2"))
		})

		It("rejects an exact duplicate username", func() {
			_, err := env.Service.Register(ctx, "edith", "hunter2", auth.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Service.Register(ctx, "edith", "hunter2", auth.RoleManager)
			Expect(err).To(HaveOccurred())
			oopsErr, ok := oops.AsOops(err)
			Expect(ok).To(BeTrue())
			Expect(oopsErr.Code()).To(Equal("AUTH_DUPLICATE_USERNAME"))
		})

		It("treats usernames differing in case as distinct accounts", func() {
			_, err := env.Service.Register(ctx, "edith", "hunter2", auth.RoleEmployee)
			Expect(err).NotTo(HaveOccurred())

			upper, err := env.Service.Register(ctx, "Edith", "hunter2", auth.RoleManager)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.Users.GetByUsername(ctx, "Edith")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ID).To(Equal(upper.ID))
			Expect(got.Role).To(Equal(auth.RoleManager))
		})
	})

	Describe("Login and CurrentIdentity", func() {
		It("round-trips a session token", func() {
			registered, err := env.Service.Register(ctx, "marco", "hunter2", auth.RoleManager)
			Expect(err).NotTo(HaveOccurred())

			_, token, err := env.Service.Login(ctx, "marco", "hunter2")
			Expect(err).NotTo(HaveOccurred())
			Expect(token).NotTo(BeEmpty())

			user, session, err := env.Service.CurrentIdentity(ctx, token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(registered.ID))
			Expect(user.Role).To(Equal(auth.RoleManager))
			Expect(session.UserID).To(Equal(registered.ID))
		})

		It("rejects a wrong password", func() {
			_, err := env.Service.Register(ctx, "marco", "hunter2", auth.RoleManager)
			Expect(err).NotTo(HaveOccurred())

			_, _, err = env.Service.Login(ctx, "marco", "wrong")
			Expect(err).To(HaveOccurred())
			oopsErr, ok := oops.AsOops(err)
			Expect(ok).To(BeTrue())
			Expect(oopsErr.Code()).To(Equal("AUTH_INVALID_CREDENTIALS"))
		})

		It("locks the account after repeated failures", func() {
			_, err := env.Service.Register(ctx, "marco", "hunter2", auth.RoleManager)
			Expect(err).NotTo(HaveOccurred())

			for range auth.LockoutThreshold {
				_, _, _ = env.Service.Login(ctx, "marco", "wrong")
			}

			_, _, err = env.Service.Login(ctx, "marco", "hunter2")
			Expect(err).To(HaveOccurred())
			oopsErr, ok := oops.AsOops(err)
			Expect(ok).To(BeTrue())
			Expect(oopsErr.Code()).To(Equal("AUTH_ACCOUNT_LOCKED"))
		})
	})

	Describe("Logout", func() {
		It("invalidates the session and is idempotent", func() {
			_, err := env.Service.Register(ctx, "sofia", "hunter2", auth.RoleSupervisor)
			Expect(err).NotTo(HaveOccurred())

			session, token, err := env.Service.Login(ctx, "sofia", "hunter2")
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Service.Logout(ctx, session.ID)).To(Succeed())

			_, _, err = env.Service.CurrentIdentity(ctx, token)
			Expect(err).To(HaveOccurred())

			Expect(env.Service.Logout(ctx, session.ID)).To(Succeed(), "repeated logout is not an error")
		})
	})

	Describe("DeleteExpired", func() {
		It("removes only expired sessions", func() {
			user, err := env.Service.Register(ctx, "sofia", "hunter2", auth.RoleSupervisor)
			Expect(err).NotTo(HaveOccurred())

			_, expiredHash, err := auth.GenerateSessionToken()
			Expect(err).NotTo(HaveOccurred())
			expired, err := auth.NewSession(user.ID, expiredHash, time.Now().Add(time.Minute))
			Expect(err).NotTo(HaveOccurred())
			expired.ExpiresAt = time.Now().Add(-time.Hour)
			Expect(env.Sessions.Create(ctx, expired)).To(Succeed())

			live, _, err := env.Service.Login(ctx, "sofia", "hunter2")
			Expect(err).NotTo(HaveOccurred())

			removed, err := env.Sessions.DeleteExpired(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(Equal(int64(1)))

			_, err = env.Sessions.GetByTokenHash(ctx, live.TokenHash)
			Expect(err).NotTo(HaveOccurred())

			_, err = env.Sessions.GetByTokenHash(ctx, expiredHash)
			Expect(errors.Is(err, auth.ErrNotFound)).To(BeTrue())
		})
	})
})
