// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package api

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/freightdesk/freightdesk/internal/auth"
	"github.com/freightdesk/freightdesk/internal/shipping"
)

// AuthService is the slice of the auth service the HTTP layer needs.
type AuthService interface {
	Register(ctx context.Context, username, password string, role auth.Role) (*auth.User, error)
	Login(ctx context.Context, username, password string) (*auth.Session, string, error)
	Logout(ctx context.Context, sessionID ulid.ULID) error
	CurrentIdentity(ctx context.Context, token string) (*auth.User, *auth.Session, error)
	ListUsers(ctx context.Context) ([]*auth.User, error)
}

// ShippingService is the slice of the shipping service the HTTP layer needs.
type ShippingService interface {
	ListClients(ctx context.Context) ([]*shipping.Client, error)
	UpdateClient(ctx context.Context, id ulid.ULID, patch shipping.ClientPatch) (*shipping.Client, error)
	DeleteClient(ctx context.Context, id ulid.ULID) error
	SearchClients(ctx context.Context, criteria shipping.ClientSearch) ([]*shipping.Client, error)
	ListPackages(ctx context.Context) ([]*shipping.Package, error)
	CreateShipment(ctx context.Context, client shipping.ClientInput, recipient shipping.RecipientInput, pkg shipping.PackageInput) (*shipping.Shipment, error)
	CreateLocation(ctx context.Context, name, address, agencyID string) (*shipping.Location, error)
	Metrics(ctx context.Context) (shipping.DashboardMetrics, error)
}

var (
	_ AuthService     = (*auth.Service)(nil)
	_ ShippingService = (*shipping.Service)(nil)
)
