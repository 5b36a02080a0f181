// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// ClientInput carries the fields for creating a client.
type ClientInput struct {
	FullName      string
	DateOfBirth   *time.Time
	ContactNumber string
	Address       string
	ZipCode       string
	Email         string
}

// RecipientInput carries the fields for creating a recipient.
type RecipientInput struct {
	FullName       string
	DateOfBirth    *time.Time
	ContactDetails string
	Neighborhood   string
	Municipality   string
	Province       string
	ProvinceCode   string
}

// PackageInput carries the fields for creating a package. Client and
// recipient IDs are supplied separately.
type PackageInput struct {
	Description        string
	Quantity           int
	Weight             *float64
	Category           string
	CustomsDeclaration string
	AdditionalServices string
	Miscellaneous      string
}

// Shipment is the result of the composite create: one client, one
// recipient, and one package linking them, persisted atomically.
type Shipment struct {
	Client    *Client
	Recipient *Recipient
	Package   *Package
}

// DashboardMetrics holds the figures shown on the metrics dashboard.
type DashboardMetrics struct {
	TotalClients int64
}

// Service implements the shipping business operations.
type Service struct {
	clients    ClientRepository
	recipients RecipientRepository
	packages   PackageRepository
	locations  LocationRepository
	history    HistoryRepository
	tx         Transactor
}

// NewService creates a Service. All dependencies are required.
func NewService(
	clients ClientRepository,
	recipients RecipientRepository,
	packages PackageRepository,
	locations LocationRepository,
	history HistoryRepository,
	tx Transactor,
) (*Service, error) {
	if clients == nil || recipients == nil || packages == nil ||
		locations == nil || history == nil || tx == nil {
		return nil, oops.Code("SHIPPING_CONFIG_INVALID").
			New("all repositories and the transactor are required")
	}
	return &Service{
		clients:    clients,
		recipients: recipients,
		packages:   packages,
		locations:  locations,
		history:    history,
		tx:         tx,
	}, nil
}

// CreateClient validates and persists a new client.
func (s *Service) CreateClient(ctx context.Context, in ClientInput) (*Client, error) {
	client, err := NewClient(in.FullName, in.Address)
	if err != nil {
		return nil, err
	}
	client.DateOfBirth = in.DateOfBirth
	client.ContactNumber = in.ContactNumber
	client.ZipCode = in.ZipCode
	client.Email = in.Email

	if err := s.clients.Create(ctx, client); err != nil {
		return nil, oops.Code("CLIENT_CREATE_FAILED").
			With("full_name", in.FullName).
			Wrap(err)
	}
	return client, nil
}

// GetClient retrieves a client by ID.
func (s *Service) GetClient(ctx context.Context, id ulid.ULID) (*Client, error) {
	return s.clients.Get(ctx, id)
}

// ListClients returns all clients ordered by ID ascending.
func (s *Service) ListClients(ctx context.Context) ([]*Client, error) {
	return s.clients.List(ctx)
}

// UpdateClient applies a merge patch to a client. Only non-nil patch
// fields overwrite; an audit record is written in the same transaction.
func (s *Service) UpdateClient(ctx context.Context, id ulid.ULID, patch ClientPatch) (*Client, error) {
	var updated *Client
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		client, err := s.clients.Get(ctx, id)
		if err != nil {
			return err
		}

		patch.Apply(client)
		client.UpdatedAt = time.Now().UTC()

		if err := s.clients.Update(ctx, client); err != nil {
			return err
		}
		entry := NewClientHistory(id, describePatch(patch))
		if err := s.history.Create(ctx, entry); err != nil {
			return err
		}
		updated = client
		return nil
	})
	if err != nil {
		return nil, oops.Code("CLIENT_UPDATE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return updated, nil
}

// DeleteClient removes a client and all its packages in one
// transaction, recording the deletion in the audit history.
func (s *Service) DeleteClient(ctx context.Context, id ulid.ULID) error {
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		client, err := s.clients.Get(ctx, id)
		if err != nil {
			return err
		}

		removed, err := s.packages.DeleteByClient(ctx, id)
		if err != nil {
			return err
		}
		entry := NewClientHistory(id,
			fmt.Sprintf("deleted client %q and %d package(s)", client.FullName, removed))
		if err := s.history.Create(ctx, entry); err != nil {
			return err
		}
		return s.clients.Delete(ctx, id)
	})
	if err != nil {
		return oops.Code("CLIENT_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return nil
}

// SearchClients returns clients matching the supplied criteria. At
// least one criterion is required.
func (s *Service) SearchClients(ctx context.Context, criteria ClientSearch) ([]*Client, error) {
	if criteria.IsZero() {
		return nil, oops.Code("SEARCH_CRITERIA_MISSING").
			New("at least one search criterion is required")
	}
	return s.clients.Search(ctx, criteria)
}

// CreateRecipient validates and persists a new recipient.
func (s *Service) CreateRecipient(ctx context.Context, in RecipientInput) (*Recipient, error) {
	recipient, err := NewRecipient(in.FullName)
	if err != nil {
		return nil, err
	}
	recipient.DateOfBirth = in.DateOfBirth
	recipient.ContactDetails = in.ContactDetails
	recipient.Neighborhood = in.Neighborhood
	recipient.Municipality = in.Municipality
	recipient.Province = in.Province
	recipient.ProvinceCode = in.ProvinceCode

	if err := s.recipients.Create(ctx, recipient); err != nil {
		return nil, oops.Code("RECIPIENT_CREATE_FAILED").
			With("full_name", in.FullName).
			Wrap(err)
	}
	return recipient, nil
}

// GetRecipient retrieves a recipient by ID.
func (s *Service) GetRecipient(ctx context.Context, id ulid.ULID) (*Recipient, error) {
	return s.recipients.Get(ctx, id)
}

// ListRecipients returns all recipients ordered by ID ascending.
func (s *Service) ListRecipients(ctx context.Context) ([]*Recipient, error) {
	return s.recipients.List(ctx)
}

// UpdateRecipient applies a merge patch to a recipient.
func (s *Service) UpdateRecipient(ctx context.Context, id ulid.ULID, patch RecipientPatch) (*Recipient, error) {
	recipient, err := s.recipients.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(recipient)
	recipient.UpdatedAt = time.Now().UTC()

	if err := s.recipients.Update(ctx, recipient); err != nil {
		return nil, oops.Code("RECIPIENT_UPDATE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	return recipient, nil
}

// DeleteRecipient removes a recipient. Deletion is refused with
// ErrHasPackages while packages still reference the recipient.
func (s *Service) DeleteRecipient(ctx context.Context, id ulid.ULID) error {
	count, err := s.packages.CountByRecipient(ctx, id)
	if err != nil {
		return oops.Code("RECIPIENT_DELETE_FAILED").
			With("id", id.String()).
			Wrap(err)
	}
	if count > 0 {
		return oops.Code("RECIPIENT_HAS_PACKAGES").
			With("id", id.String()).
			With("package_count", count).
			Wrap(ErrHasPackages)
	}
	return s.recipients.Delete(ctx, id)
}

// CreatePackage validates and persists a new package. Both the client
// and the recipient must exist.
func (s *Service) CreatePackage(ctx context.Context, clientID, recipientID ulid.ULID, in PackageInput) (*Package, error) {
	if _, err := s.clients.Get(ctx, clientID); err != nil {
		return nil, err
	}
	if _, err := s.recipients.Get(ctx, recipientID); err != nil {
		return nil, err
	}

	pkg, err := NewPackage(in.Description, in.Quantity, clientID, recipientID)
	if err != nil {
		return nil, err
	}
	pkg.Weight = in.Weight
	pkg.Category = in.Category
	pkg.CustomsDeclaration = in.CustomsDeclaration
	pkg.AdditionalServices = in.AdditionalServices
	pkg.Miscellaneous = in.Miscellaneous

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, oops.Code("PACKAGE_CREATE_FAILED").
			With("client_id", clientID.String()).
			With("recipient_id", recipientID.String()).
			Wrap(err)
	}
	return pkg, nil
}

// GetPackage retrieves a package by ID.
func (s *Service) GetPackage(ctx context.Context, id ulid.ULID) (*Package, error) {
	return s.packages.Get(ctx, id)
}

// ListPackages returns all packages ordered by ID ascending.
func (s *Service) ListPackages(ctx context.Context) ([]*Package, error) {
	return s.packages.List(ctx)
}

// DeletePackage removes a package by ID.
func (s *Service) DeletePackage(ctx context.Context, id ulid.ULID) error {
	return s.packages.Delete(ctx, id)
}

// CreateLocation validates and persists a new agency location.
func (s *Service) CreateLocation(ctx context.Context, name, address, agencyID string) (*Location, error) {
	location, err := NewLocation(name, address, agencyID)
	if err != nil {
		return nil, err
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, oops.Code("LOCATION_CREATE_FAILED").
			With("name", name).
			Wrap(err)
	}
	return location, nil
}

// GetLocation retrieves a location by ID.
func (s *Service) GetLocation(ctx context.Context, id ulid.ULID) (*Location, error) {
	return s.locations.Get(ctx, id)
}

// ListLocations returns all locations ordered by ID ascending.
func (s *Service) ListLocations(ctx context.Context) ([]*Location, error) {
	return s.locations.List(ctx)
}

// CreateShipment creates a client, a recipient, and a package linking
// them in a single transaction. Any validation or persistence failure
// rolls back all three.
func (s *Service) CreateShipment(ctx context.Context, client ClientInput, recipient RecipientInput, pkg PackageInput) (*Shipment, error) {
	var shipment *Shipment
	err := s.tx.InTransaction(ctx, func(ctx context.Context) error {
		c, err := s.CreateClient(ctx, client)
		if err != nil {
			return err
		}
		r, err := s.CreateRecipient(ctx, recipient)
		if err != nil {
			return err
		}
		p, err := s.CreatePackage(ctx, c.ID, r.ID, pkg)
		if err != nil {
			return err
		}
		shipment = &Shipment{Client: c, Recipient: r, Package: p}
		return nil
	})
	if err != nil {
		return nil, oops.Code("SHIPMENT_CREATE_FAILED").Wrap(err)
	}
	return shipment, nil
}

// ClientAuditTrail returns a client's audit records, newest first.
func (s *Service) ClientAuditTrail(ctx context.Context, clientID ulid.ULID) ([]*ClientHistory, error) {
	return s.history.ListByClient(ctx, clientID)
}

// Metrics returns the dashboard figures. Counts are computed on every
// call, never cached.
func (s *Service) Metrics(ctx context.Context) (DashboardMetrics, error) {
	total, err := s.clients.Count(ctx)
	if err != nil {
		return DashboardMetrics{}, oops.Code("METRICS_FAILED").Wrap(err)
	}
	return DashboardMetrics{TotalClients: total}, nil
}

// describePatch summarizes which fields a patch touches, for the audit
// trail.
func describePatch(p ClientPatch) string {
	fields := make([]string, 0, 6)
	if p.FullName != nil {
		fields = append(fields, "full_name")
	}
	if p.DateOfBirth != nil {
		fields = append(fields, "date_of_birth")
	}
	if p.ContactNumber != nil {
		fields = append(fields, "contact_number")
	}
	if p.Address != nil {
		fields = append(fields, "address")
	}
	if p.ZipCode != nil {
		fields = append(fields, "zip_code")
	}
	if p.Email != nil {
		fields = append(fields, "email")
	}
	if len(fields) == 0 {
		return "updated client (no fields changed)"
	}
	return "updated client fields: " + strings.Join(fields, ", ")
}
