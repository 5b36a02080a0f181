// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Client is a sender registered with the agency.
type Client struct {
	ID            ulid.ULID
	FullName      string
	DateOfBirth   *time.Time
	ContactNumber string
	Address       string
	ZipCode       string
	Email         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewClient creates a client with a fresh ULID and timestamps.
// FullName and Address are required.
func NewClient(fullName, address string) (*Client, error) {
	if fullName == "" {
		return nil, oops.Code("CLIENT_MISSING_FIELD").
			With("field", "full_name").
			New("full name is required")
	}
	if address == "" {
		return nil, oops.Code("CLIENT_MISSING_FIELD").
			With("field", "address").
			New("address is required")
	}
	now := time.Now().UTC()
	return &Client{
		ID:        ulid.Make(),
		FullName:  fullName,
		Address:   address,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ClientPatch carries a partial client update. Nil fields are left
// unchanged by UpdateClient.
type ClientPatch struct {
	FullName      *string
	DateOfBirth   *time.Time
	ContactNumber *string
	Address       *string
	ZipCode       *string
	Email         *string
}

// IsZero reports whether the patch changes nothing.
func (p ClientPatch) IsZero() bool {
	return p.FullName == nil && p.DateOfBirth == nil && p.ContactNumber == nil &&
		p.Address == nil && p.ZipCode == nil && p.Email == nil
}

// Apply overwrites the client's fields with the patch's non-nil values.
func (p ClientPatch) Apply(c *Client) {
	if p.FullName != nil {
		c.FullName = *p.FullName
	}
	if p.DateOfBirth != nil {
		c.DateOfBirth = p.DateOfBirth
	}
	if p.ContactNumber != nil {
		c.ContactNumber = *p.ContactNumber
	}
	if p.Address != nil {
		c.Address = *p.Address
	}
	if p.ZipCode != nil {
		c.ZipCode = *p.ZipCode
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
}

// ClientSearch holds case-insensitive substring criteria. Empty fields
// are ignored; supplied fields are ANDed together.
type ClientSearch struct {
	FullName      string
	Address       string
	Email         string
	ContactNumber string
	ZipCode       string
}

// IsZero reports whether no criteria were supplied.
func (s ClientSearch) IsZero() bool {
	return s.FullName == "" && s.Address == "" && s.Email == "" &&
		s.ContactNumber == "" && s.ZipCode == ""
}

// ClientRepository persists clients.
type ClientRepository interface {
	// Create stores a new client.
	Create(ctx context.Context, client *Client) error

	// Get retrieves a client by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id ulid.ULID) (*Client, error)

	// List returns all clients ordered by ID ascending.
	List(ctx context.Context) ([]*Client, error)

	// Update overwrites an existing client. Returns ErrNotFound if absent.
	Update(ctx context.Context, client *Client) error

	// Delete removes a client by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id ulid.ULID) error

	// Search returns clients matching the criteria, ordered by ID
	// ascending. Matching is case-insensitive substring per field,
	// multiple fields ANDed.
	Search(ctx context.Context, criteria ClientSearch) ([]*Client, error)

	// Count returns the total number of clients.
	Count(ctx context.Context) (int64, error)
}
