// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Package is a shipment item linking a client to a recipient.
type Package struct {
	ID                 ulid.ULID
	Description        string
	Quantity           int
	Weight             *float64
	Category           string
	CustomsDeclaration string
	AdditionalServices string
	Miscellaneous      string
	ClientID           ulid.ULID
	RecipientID        ulid.ULID
	CreatedAt          time.Time
}

// NewPackage creates a package with a fresh ULID. Description is
// required and quantity must be positive.
func NewPackage(description string, quantity int, clientID, recipientID ulid.ULID) (*Package, error) {
	if description == "" {
		return nil, oops.Code("PACKAGE_MISSING_FIELD").
			With("field", "description").
			New("description is required")
	}
	if quantity <= 0 {
		return nil, oops.Code("PACKAGE_INVALID_QUANTITY").
			With("quantity", quantity).
			New("quantity must be positive")
	}
	return &Package{
		ID:          ulid.Make(),
		Description: description,
		Quantity:    quantity,
		ClientID:    clientID,
		RecipientID: recipientID,
		CreatedAt:   time.Now().UTC(),
	}, nil
}

// PackageRepository persists packages.
type PackageRepository interface {
	// Create stores a new package.
	Create(ctx context.Context, pkg *Package) error

	// Get retrieves a package by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id ulid.ULID) (*Package, error)

	// List returns all packages ordered by ID ascending.
	List(ctx context.Context) ([]*Package, error)

	// Delete removes a package by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id ulid.ULID) error

	// DeleteByClient removes all packages belonging to a client and
	// returns the number removed.
	DeleteByClient(ctx context.Context, clientID ulid.ULID) (int64, error)

	// CountByRecipient returns how many packages reference a recipient.
	CountByRecipient(ctx context.Context, recipientID ulid.ULID) (int64, error)
}
