// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

//go:build integration

package shipping_test

import (
	"context"
	"errors"
	"time"

	"github.com/oklog/ulid/v2"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/freightdesk/freightdesk/internal/shipping"
)

func createTestClient(fullName, address string) *shipping.Client {
	client, err := shipping.NewClient(fullName, address)
	Expect(err).NotTo(HaveOccurred())
	return client
}

var _ = Describe("ClientRepository", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		truncateAll(ctx, env.pool)
	})

	Describe("Create", func() {
		It("persists all client fields", func() {
			dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)
			client := createTestClient("Ana Rios", "12 Harbor Way")
			client.DateOfBirth = &dob
			client.ContactNumber = "555-0101"
			client.ZipCode = "10400"
			client.Email = "ana@example.com"

			Expect(env.Clients.Create(ctx, client)).To(Succeed())

			got, err := env.Clients.Get(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FullName).To(Equal("Ana Rios"))
			Expect(got.Address).To(Equal("12 Harbor Way"))
			Expect(got.ContactNumber).To(Equal("555-0101"))
			Expect(got.ZipCode).To(Equal("10400"))
			Expect(got.Email).To(Equal("ana@example.com"))
			Expect(got.DateOfBirth).NotTo(BeNil())
			Expect(*got.DateOfBirth).To(BeTemporally("==", dob))
		})

		It("handles nil date of birth", func() {
			client := createTestClient("Ben Okafor", "9 Main Avenue")

			Expect(env.Clients.Create(ctx, client)).To(Succeed())

			got, err := env.Clients.Get(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.DateOfBirth).To(BeNil())
		})
	})

	Describe("Get", func() {
		It("returns ErrNotFound for an unknown ID", func() {
			_, err := env.Clients.Get(ctx, ulid.Make())
			Expect(errors.Is(err, shipping.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("overwrites stored fields", func() {
			client := createTestClient("Ana Rios", "12 Harbor Way")
			Expect(env.Clients.Create(ctx, client)).To(Succeed())

			client.Address = "99 Dock Street"
			client.Email = "ana@freight.example"
			Expect(env.Clients.Update(ctx, client)).To(Succeed())

			got, err := env.Clients.Get(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Address).To(Equal("99 Dock Street"))
			Expect(got.Email).To(Equal("ana@freight.example"))
		})

		It("returns ErrNotFound for an unknown ID", func() {
			client := createTestClient("Ghost", "Nowhere")
			err := env.Clients.Update(ctx, client)
			Expect(errors.Is(err, shipping.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("Search", func() {
		BeforeEach(func() {
			for _, seed := range []struct{ name, address, email string }{
				{"Ana Rios", "12 Main Street", "ana@example.com"},
				{"Ben Okafor", "9 MAIN Avenue", "ben@other.org"},
				{"Cora Lindt", "4 Elm Road", "cora@example.com"},
			} {
				client := createTestClient(seed.name, seed.address)
				client.Email = seed.email
				Expect(env.Clients.Create(ctx, client)).To(Succeed())
			}
		})

		It("matches substrings case-insensitively", func() {
			got, err := env.Clients.Search(ctx, shipping.ClientSearch{Address: "main"})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(2))
		})

		It("intersects multiple criteria", func() {
			got, err := env.Clients.Search(ctx, shipping.ClientSearch{
				Address: "main",
				Email:   "example.com",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(HaveLen(1))
			Expect(got[0].FullName).To(Equal("Ana Rios"))
		})

		It("returns empty for no matches", func() {
			got, err := env.Clients.Search(ctx, shipping.ClientSearch{FullName: "zzz"})
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(BeEmpty())
		})
	})

	Describe("Count", func() {
		It("counts all clients", func() {
			Expect(env.Clients.Create(ctx, createTestClient("Ana Rios", "12 Main Street"))).To(Succeed())
			Expect(env.Clients.Create(ctx, createTestClient("Ben Okafor", "9 Main Avenue"))).To(Succeed())

			count, err := env.Clients.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(int64(2)))
		})
	})
})
