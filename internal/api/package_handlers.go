// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"net/http"

	"github.com/freightdesk/freightdesk/internal/shipping"
)

type packageView struct {
	ID                 string   `json:"id"`
	Description        string   `json:"description"`
	Quantity           int      `json:"quantity"`
	Weight             *float64 `json:"weight"`
	Category           string   `json:"category"`
	CustomsDeclaration string   `json:"customs_declaration"`
	AdditionalServices string   `json:"additional_services"`
	Miscellaneous      string   `json:"miscellaneous"`
	ClientID           string   `json:"client_id"`
	RecipientID        string   `json:"recipient_id"`
}

// viewPackages lists all packages.
func (h *handler) viewPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.shipping.ListPackages(r.Context())
	if err != nil {
		serviceError(w, r, err)
		return
	}

	views := make([]packageView, 0, len(packages))
	for _, p := range packages {
		views = append(views, packageView{
			ID:                 p.ID.String(),
			Description:        p.Description,
			Quantity:           p.Quantity,
			Weight:             p.Weight,
			Category:           p.Category,
			CustomsDeclaration: p.CustomsDeclaration,
			AdditionalServices: p.AdditionalServices,
			Miscellaneous:      p.Miscellaneous,
			ClientID:           p.ClientID.String(),
			RecipientID:        p.RecipientID.String(),
		})
	}

	writeJSON(w, r, http.StatusOK, map[string]any{"packages": views})
}

type addClientAndPackageRequest struct {
	// Client fields.
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`

	// Recipient fields.
	RecipientName  string `json:"recipient_name"`
	Neighborhood   string `json:"neighborhood"`
	Municipality   string `json:"municipality"`
	Province       string `json:"province"`
	ContactDetails string `json:"contact_details"`

	// Package fields.
	Description        string   `json:"description"`
	Quantity           int      `json:"quantity"`
	Weight             *float64 `json:"weight"`
	Category           string   `json:"category"`
	CustomsDeclaration string   `json:"customs_declaration"`
	AdditionalServices string   `json:"additional_services"`
	Miscellaneous      string   `json:"miscellaneous"`
}

// addClientAndPackage creates a client, a recipient, and a package
// linking them in one transaction. Nothing persists if any part fails.
func (h *handler) addClientAndPackage(w http.ResponseWriter, r *http.Request) {
	var req addClientAndPackageRequest
	if err := decodeJSON(r, &req); err != nil {
		serviceError(w, r, err)
		return
	}

	shipment, err := h.shipping.CreateShipment(r.Context(),
		shipping.ClientInput{
			FullName:      req.FullName,
			Address:       req.Address,
			ContactNumber: req.ContactNumber,
			Email:         req.Email,
		},
		shipping.RecipientInput{
			FullName:       req.RecipientName,
			Neighborhood:   req.Neighborhood,
			Municipality:   req.Municipality,
			Province:       req.Province,
			ContactDetails: req.ContactDetails,
		},
		shipping.PackageInput{
			Description:        req.Description,
			Quantity:           req.Quantity,
			Weight:             req.Weight,
			Category:           req.Category,
			CustomsDeclaration: req.CustomsDeclaration,
			AdditionalServices: req.AdditionalServices,
			Miscellaneous:      req.Miscellaneous,
		},
	)
	if err != nil {
		serviceError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, map[string]string{
		"message":      "Client, recipient, and package added successfully!",
		"client_id":    shipment.Client.ID.String(),
		"recipient_id": shipment.Recipient.ID.String(),
		"package_id":   shipment.Package.ID.String(),
	})
}
