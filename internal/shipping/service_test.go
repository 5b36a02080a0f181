// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package shipping

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClientRepo struct {
	byID     map[ulid.ULID]*Client
	failWith error
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{byID: make(map[ulid.ULID]*Client)}
}

func (f *fakeClientRepo) Create(_ context.Context, c *Client) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) Get(_ context.Context, id ulid.ULID) (*Client, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	c, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) List(_ context.Context) ([]*Client, error) {
	out := make([]*Client, 0, len(f.byID))
	for _, c := range f.byID {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *Client) error {
	if _, ok := f.byID[c.ID]; !ok {
		return ErrNotFound
	}
	cp := *c
	f.byID[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeClientRepo) Search(_ context.Context, criteria ClientSearch) ([]*Client, error) {
	contains := func(haystack, needle string) bool {
		return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
	}
	out := make([]*Client, 0)
	for _, c := range f.byID {
		if contains(c.FullName, criteria.FullName) &&
			contains(c.Address, criteria.Address) &&
			contains(c.Email, criteria.Email) &&
			contains(c.ContactNumber, criteria.ContactNumber) &&
			contains(c.ZipCode, criteria.ZipCode) {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeClientRepo) Count(_ context.Context) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	return int64(len(f.byID)), nil
}

type fakeRecipientRepo struct {
	byID map[ulid.ULID]*Recipient
}

func newFakeRecipientRepo() *fakeRecipientRepo {
	return &fakeRecipientRepo{byID: make(map[ulid.ULID]*Recipient)}
}

func (f *fakeRecipientRepo) Create(_ context.Context, r *Recipient) error {
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRecipientRepo) Get(_ context.Context, id ulid.ULID) (*Recipient, error) {
	r, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRecipientRepo) List(_ context.Context) ([]*Recipient, error) {
	out := make([]*Recipient, 0, len(f.byID))
	for _, r := range f.byID {
		cp := *r
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakeRecipientRepo) Update(_ context.Context, r *Recipient) error {
	if _, ok := f.byID[r.ID]; !ok {
		return ErrNotFound
	}
	cp := *r
	f.byID[r.ID] = &cp
	return nil
}

func (f *fakeRecipientRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakePackageRepo struct {
	byID map[ulid.ULID]*Package
}

func newFakePackageRepo() *fakePackageRepo {
	return &fakePackageRepo{byID: make(map[ulid.ULID]*Package)}
}

func (f *fakePackageRepo) Create(_ context.Context, p *Package) error {
	cp := *p
	f.byID[p.ID] = &cp
	return nil
}

func (f *fakePackageRepo) Get(_ context.Context, id ulid.ULID) (*Package, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePackageRepo) List(_ context.Context) ([]*Package, error) {
	out := make([]*Package, 0, len(f.byID))
	for _, p := range f.byID {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

func (f *fakePackageRepo) Delete(_ context.Context, id ulid.ULID) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakePackageRepo) DeleteByClient(_ context.Context, clientID ulid.ULID) (int64, error) {
	var n int64
	for id, p := range f.byID {
		if p.ClientID == clientID {
			delete(f.byID, id)
			n++
		}
	}
	return n, nil
}

func (f *fakePackageRepo) CountByRecipient(_ context.Context, recipientID ulid.ULID) (int64, error) {
	var n int64
	for _, p := range f.byID {
		if p.RecipientID == recipientID {
			n++
		}
	}
	return n, nil
}

type fakeLocationRepo struct {
	byID map[ulid.ULID]*Location
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{byID: make(map[ulid.ULID]*Location)}
}

func (f *fakeLocationRepo) Create(_ context.Context, l *Location) error {
	cp := *l
	f.byID[l.ID] = &cp
	return nil
}

func (f *fakeLocationRepo) Get(_ context.Context, id ulid.ULID) (*Location, error) {
	l, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]*Location, error) {
	out := make([]*Location, 0, len(f.byID))
	for _, l := range f.byID {
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out, nil
}

type fakeHistoryRepo struct {
	entries  []*ClientHistory
	failWith error
}

func (f *fakeHistoryRepo) Create(_ context.Context, e *ClientHistory) error {
	if f.failWith != nil {
		return f.failWith
	}
	cp := *e
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeHistoryRepo) ListByClient(_ context.Context, clientID ulid.ULID) ([]*ClientHistory, error) {
	out := make([]*ClientHistory, 0)
	for _, e := range f.entries {
		if e.ClientID == clientID {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	return out, nil
}

// snapshotTransactor restores the fake repositories to their pre-fn
// state when fn fails, mimicking a rollback.
type snapshotTransactor struct {
	clients    *fakeClientRepo
	recipients *fakeRecipientRepo
	packages   *fakePackageRepo
	history    *fakeHistoryRepo
}

func (t *snapshotTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	savedClients := make(map[ulid.ULID]*Client, len(t.clients.byID))
	for k, v := range t.clients.byID {
		cp := *v
		savedClients[k] = &cp
	}
	savedRecipients := make(map[ulid.ULID]*Recipient, len(t.recipients.byID))
	for k, v := range t.recipients.byID {
		cp := *v
		savedRecipients[k] = &cp
	}
	savedPackages := make(map[ulid.ULID]*Package, len(t.packages.byID))
	for k, v := range t.packages.byID {
		cp := *v
		savedPackages[k] = &cp
	}
	savedHistory := make([]*ClientHistory, len(t.history.entries))
	copy(savedHistory, t.history.entries)

	if err := fn(ctx); err != nil {
		t.clients.byID = savedClients
		t.recipients.byID = savedRecipients
		t.packages.byID = savedPackages
		t.history.entries = savedHistory
		return err
	}
	return nil
}

type serviceFixture struct {
	svc        *Service
	clients    *fakeClientRepo
	recipients *fakeRecipientRepo
	packages   *fakePackageRepo
	locations  *fakeLocationRepo
	history    *fakeHistoryRepo
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	clients := newFakeClientRepo()
	recipients := newFakeRecipientRepo()
	packages := newFakePackageRepo()
	locations := newFakeLocationRepo()
	history := &fakeHistoryRepo{}
	tx := &snapshotTransactor{
		clients:    clients,
		recipients: recipients,
		packages:   packages,
		history:    history,
	}
	svc, err := NewService(clients, recipients, packages, locations, history, tx)
	require.NoError(t, err)
	return &serviceFixture{
		svc:        svc,
		clients:    clients,
		recipients: recipients,
		packages:   packages,
		locations:  locations,
		history:    history,
	}
}

func TestNewService_RequiresDependencies(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil, nil, nil)
	require.Error(t, err)
}

func TestService_CreateClient(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	t.Run("valid input", func(t *testing.T) {
		client, err := f.svc.CreateClient(ctx, ClientInput{
			FullName: "Ana Morales",
			Address:  "12 Harbor Way",
			Email:    "ana@example.com",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana Morales", client.FullName)
		assert.NotZero(t, client.ID)

		stored, err := f.svc.GetClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "ana@example.com", stored.Email)
	})

	t.Run("missing full name", func(t *testing.T) {
		_, err := f.svc.CreateClient(ctx, ClientInput{Address: "12 Harbor Way"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "full name")
	})

	t.Run("missing address", func(t *testing.T) {
		_, err := f.svc.CreateClient(ctx, ClientInput{FullName: "Ana"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "address")
	})
}

func TestService_UpdateClient(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	client, err := f.svc.CreateClient(ctx, ClientInput{
		FullName:    "Ana Morales",
		Address:     "12 Harbor Way",
		DateOfBirth: &dob,
		Email:       "ana@example.com",
	})
	require.NoError(t, err)

	t.Run("merge patch leaves omitted fields intact", func(t *testing.T) {
		newAddr := "99 Dockside Ave"
		updated, err := f.svc.UpdateClient(ctx, client.ID, ClientPatch{Address: &newAddr})
		require.NoError(t, err)
		assert.Equal(t, "99 Dockside Ave", updated.Address)
		assert.Equal(t, "Ana Morales", updated.FullName)
		assert.Equal(t, "ana@example.com", updated.Email)
		require.NotNil(t, updated.DateOfBirth)
		assert.True(t, dob.Equal(*updated.DateOfBirth))
	})

	t.Run("writes audit history", func(t *testing.T) {
		trail, err := f.svc.ClientAuditTrail(ctx, client.ID)
		require.NoError(t, err)
		require.NotEmpty(t, trail)
		assert.Contains(t, trail[0].ChangeDetails, "address")
	})

	t.Run("unknown client", func(t *testing.T) {
		name := "Nobody"
		_, err := f.svc.UpdateClient(ctx, ulid.Make(), ClientPatch{FullName: &name})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update rolls back when history write fails", func(t *testing.T) {
		f.history.failWith = errors.New("disk full")
		defer func() { f.history.failWith = nil }()

		name := "Renamed"
		_, err := f.svc.UpdateClient(ctx, client.ID, ClientPatch{FullName: &name})
		require.Error(t, err)

		stored, err := f.svc.GetClient(ctx, client.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Morales", stored.FullName)
	})
}

func TestService_DeleteClient(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	client, err := f.svc.CreateClient(ctx, ClientInput{FullName: "Ana", Address: "12 Harbor Way"})
	require.NoError(t, err)
	recipient, err := f.svc.CreateRecipient(ctx, RecipientInput{FullName: "Luis"})
	require.NoError(t, err)

	var pkgIDs []ulid.ULID
	for range 3 {
		pkg, err := f.svc.CreatePackage(ctx, client.ID, recipient.ID, PackageInput{
			Description: "books", Quantity: 2,
		})
		require.NoError(t, err)
		pkgIDs = append(pkgIDs, pkg.ID)
	}

	t.Run("removes client and all its packages", func(t *testing.T) {
		require.NoError(t, f.svc.DeleteClient(ctx, client.ID))

		_, err := f.svc.GetClient(ctx, client.ID)
		assert.ErrorIs(t, err, ErrNotFound)
		for _, id := range pkgIDs {
			_, err := f.svc.GetPackage(ctx, id)
			assert.ErrorIs(t, err, ErrNotFound)
		}
	})

	t.Run("unknown client", func(t *testing.T) {
		err := f.svc.DeleteClient(ctx, ulid.Make())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_SearchClients(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	seed := []ClientInput{
		{FullName: "Ana Morales", Address: "12 Main Street", Email: "ana@example.com"},
		{FullName: "Boris Chen", Address: "7 MAIN PLAZA", Email: "boris@corp.test"},
		{FullName: "Carla Ruiz", Address: "3 Elm Road", Email: "carla@example.com"},
	}
	for _, in := range seed {
		_, err := f.svc.CreateClient(ctx, in)
		require.NoError(t, err)
	}

	t.Run("case-insensitive substring match", func(t *testing.T) {
		got, err := f.svc.SearchClients(ctx, ClientSearch{Address: "main"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("multiple criteria intersect", func(t *testing.T) {
		got, err := f.svc.SearchClients(ctx, ClientSearch{Address: "main", Email: "example.com"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Ana Morales", got[0].FullName)
	})

	t.Run("no criteria is an error", func(t *testing.T) {
		_, err := f.svc.SearchClients(ctx, ClientSearch{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "criterion")
	})

	t.Run("no matches yields empty slice", func(t *testing.T) {
		got, err := f.svc.SearchClients(ctx, ClientSearch{Address: "nowhere"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestService_DeleteRecipient(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	client, err := f.svc.CreateClient(ctx, ClientInput{FullName: "Ana", Address: "12 Harbor Way"})
	require.NoError(t, err)
	recipient, err := f.svc.CreateRecipient(ctx, RecipientInput{FullName: "Luis"})
	require.NoError(t, err)

	pkg, err := f.svc.CreatePackage(ctx, client.ID, recipient.ID, PackageInput{
		Description: "books", Quantity: 1,
	})
	require.NoError(t, err)

	t.Run("refused while packages reference it", func(t *testing.T) {
		err := f.svc.DeleteRecipient(ctx, recipient.ID)
		assert.ErrorIs(t, err, ErrHasPackages)
	})

	t.Run("allowed once packages are gone", func(t *testing.T) {
		require.NoError(t, f.svc.DeletePackage(ctx, pkg.ID))
		require.NoError(t, f.svc.DeleteRecipient(ctx, recipient.ID))

		_, err := f.svc.GetRecipient(ctx, recipient.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_CreatePackage(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	client, err := f.svc.CreateClient(ctx, ClientInput{FullName: "Ana", Address: "12 Harbor Way"})
	require.NoError(t, err)
	recipient, err := f.svc.CreateRecipient(ctx, RecipientInput{FullName: "Luis"})
	require.NoError(t, err)

	t.Run("valid package", func(t *testing.T) {
		weight := 2.5
		pkg, err := f.svc.CreatePackage(ctx, client.ID, recipient.ID, PackageInput{
			Description: "electronics",
			Quantity:    3,
			Weight:      &weight,
			Category:    "fragile",
		})
		require.NoError(t, err)
		assert.Equal(t, client.ID, pkg.ClientID)
		assert.Equal(t, recipient.ID, pkg.RecipientID)
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := f.svc.CreatePackage(ctx, client.ID, recipient.ID, PackageInput{
			Description: "electronics", Quantity: 0,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("unknown client rejected", func(t *testing.T) {
		_, err := f.svc.CreatePackage(ctx, ulid.Make(), recipient.ID, PackageInput{
			Description: "electronics", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown recipient rejected", func(t *testing.T) {
		_, err := f.svc.CreatePackage(ctx, client.ID, ulid.Make(), PackageInput{
			Description: "electronics", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestService_CreateShipment(t *testing.T) {
	ctx := context.Background()

	t.Run("persists all three linked rows", func(t *testing.T) {
		f := newServiceFixture(t)

		shipment, err := f.svc.CreateShipment(ctx,
			ClientInput{FullName: "Ana", Address: "12 Harbor Way"},
			RecipientInput{FullName: "Luis", Municipality: "Holguin"},
			PackageInput{Description: "books", Quantity: 2},
		)
		require.NoError(t, err)
		assert.Equal(t, shipment.Client.ID, shipment.Package.ClientID)
		assert.Equal(t, shipment.Recipient.ID, shipment.Package.RecipientID)

		clients, err := f.svc.ListClients(ctx)
		require.NoError(t, err)
		assert.Len(t, clients, 1)
		packages, err := f.svc.ListPackages(ctx)
		require.NoError(t, err)
		assert.Len(t, packages, 1)
	})

	t.Run("invalid quantity persists nothing", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.CreateShipment(ctx,
			ClientInput{FullName: "Ana", Address: "12 Harbor Way"},
			RecipientInput{FullName: "Luis"},
			PackageInput{Description: "books", Quantity: -1},
		)
		require.Error(t, err)

		clients, err := f.svc.ListClients(ctx)
		require.NoError(t, err)
		assert.Empty(t, clients)
		recipients, err := f.svc.ListRecipients(ctx)
		require.NoError(t, err)
		assert.Empty(t, recipients)
		packages, err := f.svc.ListPackages(ctx)
		require.NoError(t, err)
		assert.Empty(t, packages)
	})

	t.Run("missing client fields persist nothing", func(t *testing.T) {
		f := newServiceFixture(t)

		_, err := f.svc.CreateShipment(ctx,
			ClientInput{},
			RecipientInput{FullName: "Luis"},
			PackageInput{Description: "books", Quantity: 1},
		)
		require.Error(t, err)

		recipients, err := f.svc.ListRecipients(ctx)
		require.NoError(t, err)
		assert.Empty(t, recipients)
	})
}

func TestService_Locations(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	t.Run("create and list", func(t *testing.T) {
		loc, err := f.svc.CreateLocation(ctx, "Central Depot", "1 Port Road", "agency-7")
		require.NoError(t, err)

		got, err := f.svc.GetLocation(ctx, loc.ID)
		require.NoError(t, err)
		assert.Equal(t, "Central Depot", got.Name)

		all, err := f.svc.ListLocations(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("missing name", func(t *testing.T) {
		_, err := f.svc.CreateLocation(ctx, "", "1 Port Road", "")
		require.Error(t, err)
	})
}

func TestService_Metrics(t *testing.T) {
	ctx := context.Background()
	f := newServiceFixture(t)

	m, err := f.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Zero(t, m.TotalClients)

	for range 4 {
		_, err := f.svc.CreateClient(ctx, ClientInput{FullName: "C", Address: "A"})
		require.NoError(t, err)
	}

	m, err = f.svc.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), m.TotalClients)

	t.Run("count failure surfaces", func(t *testing.T) {
		f.clients.failWith = errors.New("connection reset")
		defer func() { f.clients.failWith = nil }()

		_, err := f.svc.Metrics(ctx)
		require.Error(t, err)
	})
}
