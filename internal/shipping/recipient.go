// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Recipient is the destination party for packages.
type Recipient struct {
	ID             ulid.ULID
	FullName       string
	DateOfBirth    *time.Time
	ContactDetails string
	Neighborhood   string
	Municipality   string
	Province       string
	ProvinceCode   string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRecipient creates a recipient with a fresh ULID and timestamps.
// FullName is required.
func NewRecipient(fullName string) (*Recipient, error) {
	if fullName == "" {
		return nil, oops.Code("RECIPIENT_MISSING_FIELD").
			With("field", "full_name").
			New("full name is required")
	}
	now := time.Now().UTC()
	return &Recipient{
		ID:        ulid.Make(),
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RecipientPatch carries a partial recipient update. Nil fields are
// left unchanged.
type RecipientPatch struct {
	FullName       *string
	DateOfBirth    *time.Time
	ContactDetails *string
	Neighborhood   *string
	Municipality   *string
	Province       *string
	ProvinceCode   *string
}

// IsZero reports whether the patch changes nothing.
func (p RecipientPatch) IsZero() bool {
	return p.FullName == nil && p.DateOfBirth == nil && p.ContactDetails == nil &&
		p.Neighborhood == nil && p.Municipality == nil && p.Province == nil &&
		p.ProvinceCode == nil
}

// Apply overwrites the recipient's fields with the patch's non-nil values.
func (p RecipientPatch) Apply(r *Recipient) {
	if p.FullName != nil {
		r.FullName = *p.FullName
	}
	if p.DateOfBirth != nil {
		r.DateOfBirth = p.DateOfBirth
	}
	if p.ContactDetails != nil {
		r.ContactDetails = *p.ContactDetails
	}
	if p.Neighborhood != nil {
		r.Neighborhood = *p.Neighborhood
	}
	if p.Municipality != nil {
		r.Municipality = *p.Municipality
	}
	if p.Province != nil {
		r.Province = *p.Province
	}
	if p.ProvinceCode != nil {
		r.ProvinceCode = *p.ProvinceCode
	}
}

// RecipientRepository persists recipients.
type RecipientRepository interface {
	// Create stores a new recipient.
	Create(ctx context.Context, recipient *Recipient) error

	// Get retrieves a recipient by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id ulid.ULID) (*Recipient, error)

	// List returns all recipients ordered by ID ascending.
	List(ctx context.Context) ([]*Recipient, error)

	// Update overwrites an existing recipient. Returns ErrNotFound if
	// absent.
	Update(ctx context.Context, recipient *Recipient) error

	// Delete removes a recipient by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id ulid.ULID) error
}
