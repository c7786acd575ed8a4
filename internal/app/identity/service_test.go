package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/adapter/logger"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/domain"
	"github.com/DungeonCodes/PI2026-1SEMESTRE/internal/interfaces"
)

type fakeProfiles struct {
	rows    map[string]domain.Profile
	err     error
	lookups int
}

func (f *fakeProfiles) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	f.lookups++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeProfiles) List(ctx context.Context) ([]domain.Profile, error) {
	var out []domain.Profile
	for _, p := range f.rows {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfiles) UpdateRole(ctx context.Context, id string, role domain.Role) error {
	p, ok := f.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Role = role
	f.rows[id] = p
	return nil
}

type fakePublisher struct{ events []interfaces.StoreEvent }

func (f *fakePublisher) PublishStoreEvent(ctx context.Context, event interfaces.StoreEvent) error {
	f.events = append(f.events, event)
	return nil
}

func newService(profiles *fakeProfiles) (*Service, *fakePublisher) {
	pub := &fakePublisher{}
	return NewService(profiles, pub, logger.NewNop(), "https://auth/authorize", "node-1"), pub
}

func TestResolveGuestWithoutSubject(t *testing.T) {
	svc, _ := newService(&fakeProfiles{})
	id := svc.Resolve(context.Background(), "", "")
	assert.True(t, id.IsGuest())
	assert.Equal(t, domain.RoleGuest, id.Role)
}

func TestResolveFallsBackToCustomer(t *testing.T) {
	ctx := context.Background()

	t.Run("no profile row", func(t *testing.T) {
		svc, _ := newService(&fakeProfiles{rows: map[string]domain.Profile{}})
		assert.Equal(t, domain.RoleCustomer, svc.Resolve(ctx, "u-1", "a@b.c").Role)
	})

	t.Run("lookup error", func(t *testing.T) {
		svc, _ := newService(&fakeProfiles{err: errors.New("timeout")})
		assert.Equal(t, domain.RoleCustomer, svc.Resolve(ctx, "u-1", "").Role)
	})

	t.Run("empty role", func(t *testing.T) {
		svc, _ := newService(&fakeProfiles{rows: map[string]domain.Profile{"u-1": {ID: "u-1"}}})
		assert.Equal(t, domain.RoleCustomer, svc.Resolve(ctx, "u-1", "").Role)
	})
}

func TestResolveCachesProfiles(t *testing.T) {
	profiles := &fakeProfiles{rows: map[string]domain.Profile{
		"u-1": {ID: "u-1", Email: "chef@burger.com", Role: domain.RoleKitchen},
	}}
	svc, _ := newService(profiles)
	ctx := context.Background()

	id := svc.Resolve(ctx, "u-1", "")
	assert.Equal(t, domain.RoleKitchen, id.Role)
	assert.Equal(t, "chef@burger.com", id.Email)

	svc.Resolve(ctx, "u-1", "")
	assert.Equal(t, 1, profiles.lookups)
}

func TestLookupErrorsAreNotCached(t *testing.T) {
	profiles := &fakeProfiles{err: errors.New("timeout"), rows: map[string]domain.Profile{
		"u-1": {ID: "u-1", Role: domain.RoleAdmin},
	}}
	svc, _ := newService(profiles)
	ctx := context.Background()

	assert.Equal(t, domain.RoleCustomer, svc.Resolve(ctx, "u-1", "").Role)
	profiles.err = nil
	assert.Equal(t, domain.RoleAdmin, svc.Resolve(ctx, "u-1", "").Role)
}

func TestHandleAuthEvent(t *testing.T) {
	profiles := &fakeProfiles{rows: map[string]domain.Profile{"u-1": {ID: "u-1", Role: domain.RoleManager}}}
	svc, _ := newService(profiles)
	ctx := context.Background()

	svc.Resolve(ctx, "u-1", "")
	profiles.rows["u-1"] = domain.Profile{ID: "u-1", Role: domain.RoleAdmin}

	require.NoError(t, svc.HandleAuthEvent(ctx, interfaces.AuthEvent{Event: interfaces.AuthUserUpdated, UserID: "u-1"}))
	assert.Equal(t, domain.RoleAdmin, svc.Resolve(ctx, "u-1", "").Role)

	lookups := profiles.lookups
	require.NoError(t, svc.HandleAuthEvent(ctx, interfaces.AuthEvent{Event: interfaces.AuthSignedOut, UserID: "u-1"}))
	svc.Resolve(ctx, "u-1", "")
	assert.Equal(t, lookups+1, profiles.lookups, "sign-out must drop the cached identity")
}

func TestSetRole(t *testing.T) {
	profiles := &fakeProfiles{rows: map[string]domain.Profile{"u-2": {ID: "u-2", Role: domain.RoleCustomer}}}
	svc, pub := newService(profiles)
	ctx := context.Background()

	svc.Resolve(ctx, "u-2", "")
	require.NoError(t, svc.SetRole(ctx, "u-2", domain.RoleKitchen))

	assert.Equal(t, domain.RoleKitchen, svc.Resolve(ctx, "u-2", "").Role)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "u-2", pub.events[0].EntityID)

	assert.ErrorIs(t, svc.SetRole(ctx, "u-2", domain.RoleGuest), domain.ErrValidation)
	assert.ErrorIs(t, svc.SetRole(ctx, "ghost", domain.RoleAdmin), domain.ErrNotFound)
}
