// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

//go:build integration

package shipping_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/freightdesk/freightdesk/internal/shipping"
)

var _ = Describe("Service", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
		truncateAll(ctx, env.pool)
	})

	Describe("UpdateClient", func() {
		It("applies a merge patch and records an audit entry", func() {
			client, err := env.Service.CreateClient(ctx, shipping.ClientInput{
				FullName: "Ana Rios",
				Address:  "12 Harbor Way",
				Email:    "ana@example.com",
			})
			Expect(err).NotTo(HaveOccurred())

			newAddress := "99 Dock Street"
			updated, err := env.Service.UpdateClient(ctx, client.ID, shipping.ClientPatch{
				Address: &newAddress,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Address).To(Equal("99 Dock Street"))
			Expect(updated.Email).To(Equal("ana@example.com"), "omitted fields keep their values")

			trail, err := env.Service.ClientAuditTrail(ctx, client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(1))
			Expect(trail[0].ChangeDetails).To(ContainSubstring("address"))
		})
	})

	Describe("DeleteClient", func() {
		It("removes the client and its packages but keeps the audit trail", func() {
			shipment, err := env.Service.CreateShipment(ctx,
				shipping.ClientInput{FullName: "Ana Rios", Address: "12 Harbor Way"},
				shipping.RecipientInput{FullName: "Luis Vega"},
				shipping.PackageInput{Description: "Spare parts", Quantity: 2},
			)
			Expect(err).NotTo(HaveOccurred())

			Expect(env.Service.DeleteClient(ctx, shipment.Client.ID)).To(Succeed())

			_, err = env.Clients.Get(ctx, shipment.Client.ID)
			Expect(errors.Is(err, shipping.ErrNotFound)).To(BeTrue())

			_, err = env.Packages.Get(ctx, shipment.Package.ID)
			Expect(errors.Is(err, shipping.ErrNotFound)).To(BeTrue())

			trail, err := env.History.ListByClient(ctx, shipment.Client.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(trail).To(HaveLen(1))
			Expect(trail[0].ChangeDetails).To(ContainSubstring("deleted client"))
		})
	})

	Describe("CreateShipment", func() {
		It("persists client, recipient, and package together", func() {
			shipment, err := env.Service.CreateShipment(ctx,
				shipping.ClientInput{FullName: "Ana Rios", Address: "12 Harbor Way"},
				shipping.RecipientInput{FullName: "Luis Vega", Municipality: "Plaza"},
				shipping.PackageInput{Description: "Spare parts", Quantity: 3},
			)
			Expect(err).NotTo(HaveOccurred())

			got, err := env.Packages.Get(ctx, shipment.Package.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.ClientID).To(Equal(shipment.Client.ID))
			Expect(got.RecipientID).To(Equal(shipment.Recipient.ID))
		})

		It("persists nothing when the package is invalid", func() {
			_, err := env.Service.CreateShipment(ctx,
				shipping.ClientInput{FullName: "Ana Rios", Address: "12 Harbor Way"},
				shipping.RecipientInput{FullName: "Luis Vega"},
				shipping.PackageInput{Description: "Spare parts", Quantity: 0},
			)
			Expect(err).To(HaveOccurred())

			clients, listErr := env.Clients.List(ctx)
			Expect(listErr).NotTo(HaveOccurred())
			Expect(clients).To(BeEmpty())

			recipients, listErr := env.Recipients.List(ctx)
			Expect(listErr).NotTo(HaveOccurred())
			Expect(recipients).To(BeEmpty())
		})
	})

	Describe("DeleteRecipient", func() {
		It("refuses while packages reference the recipient", func() {
			shipment, err := env.Service.CreateShipment(ctx,
				shipping.ClientInput{FullName: "Ana Rios", Address: "12 Harbor Way"},
				shipping.RecipientInput{FullName: "Luis Vega"},
				shipping.PackageInput{Description: "Spare parts", Quantity: 1},
			)
			Expect(err).NotTo(HaveOccurred())

			err = env.Service.DeleteRecipient(ctx, shipment.Recipient.ID)
			Expect(errors.Is(err, shipping.ErrHasPackages)).To(BeTrue())

			Expect(env.Service.DeletePackage(ctx, shipment.Package.ID)).To(Succeed())
			Expect(env.Service.DeleteRecipient(ctx, shipment.Recipient.ID)).To(Succeed())
		})
	})

	Describe("Metrics", func() {
		It("reports the client total", func() {
			_, err := env.Service.CreateClient(ctx, shipping.ClientInput{
				FullName: "Ana Rios", Address: "12 Harbor Way",
			})
			Expect(err).NotTo(HaveOccurred())

			metrics, err := env.Service.Metrics(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(metrics.TotalClients).To(Equal(int64(1)))
		})
	})
})
