package user

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	users  map[string]*User
	nextID int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	r.nextID++
	u.ID = fmt.Sprintf("u%d", r.nextID)
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	var out []*User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, u *User) error {
	if _, ok := r.users[u.ID]; !ok {
		return ErrNotFound
	}
	clone := *u
	r.users[u.ID] = &clone
	return nil
}

var (
	adminCaller = Identity{UserID: "adm", Role: RoleAdmin}
	mgrCaller   = Identity{UserID: "mgr", Role: RoleManager}
)

func seedUser(t *testing.T, svc Service) *User {
	t.Helper()
	u, err := svc.Create(context.Background(), adminCaller, CreateRequest{
		Username: "jdoe", Email: "JDoe@Example.com", FullName: "J. Doe",
		Role: RoleEmployee, AllowedResourceTypes: []string{"Room", " vehicle "},
		IsActive: true,
	})
	require.NoError(t, err)
	return u
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates with normalized fields", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u := seedUser(t, svc)

		assert.Equal(t, "jdoe@example.com", u.Email)
		assert.Equal(t, []string{"room", "vehicle"}, u.AllowedResourceTypes)
		assert.Equal(t, PriorityStandard, u.Priority)
	})

	t.Run("only admins may create", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, mgrCaller, CreateRequest{
			Username: "x", Email: "x@x.com", FullName: "X", Role: RoleEmployee,
		})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown role rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		_, err := svc.Create(ctx, adminCaller, CreateRequest{
			Username: "x", Email: "x@x.com", FullName: "X", Role: Role("superuser"),
		})
		assert.ErrorIs(t, err, ErrBadRole)
	})

	t.Run("duplicate username or email", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		seedUser(t, svc)

		_, err := svc.Create(ctx, adminCaller, CreateRequest{
			Username: "jdoe", Email: "other@example.com", FullName: "Other",
			Role: RoleEmployee,
		})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestGetUserVisibility(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	u := seedUser(t, svc)

	// Employees see only themselves.
	_, err := svc.GetByID(ctx, Identity{UserID: u.ID, Role: RoleEmployee}, u.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(ctx, Identity{UserID: "someone", Role: RoleEmployee}, u.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.GetByID(ctx, mgrCaller, u.ID)
	assert.NoError(t, err)
}

func TestListUsers(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	seedUser(t, svc)

	_, total, err := svc.List(ctx, mgrCaller, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	_, _, err = svc.List(ctx, Identity{UserID: "e", Role: RoleEmployee}, Filter{})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	u := seedUser(t, svc)

	dept := "Engineering"
	updated, err := svc.UpdateProfile(ctx, Identity{UserID: u.ID, Role: RoleEmployee}, u.ID, ProfileUpdateRequest{
		Department: &dept,
	})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", updated.Department)
	assert.Equal(t, "J. Doe", updated.FullName)

	// Other employees cannot touch the profile.
	_, err = svc.UpdateProfile(ctx, Identity{UserID: "other", Role: RoleEmployee}, u.ID, ProfileUpdateRequest{
		Department: &dept,
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdatePermissions(t *testing.T) {
	ctx := context.Background()

	t.Run("admin patches role and allowed types", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u := seedUser(t, svc)

		role := RoleManager
		types := []string{"Equipment"}
		updated, err := svc.UpdatePermissions(ctx, adminCaller, u.ID, PermissionsUpdateRequest{
			Role:                 &role,
			AllowedResourceTypes: &types,
		})
		require.NoError(t, err)
		assert.Equal(t, RoleManager, updated.Role)
		assert.Equal(t, []string{"equipment"}, updated.AllowedResourceTypes)
		assert.Equal(t, PriorityStandard, updated.Priority)
	})

	t.Run("reading permissions is admin only", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u := seedUser(t, svc)

		got, err := svc.GetPermissions(ctx, adminCaller, u.ID)
		require.NoError(t, err)
		assert.Equal(t, RoleEmployee, got.Role)

		_, err = svc.GetPermissions(ctx, mgrCaller, u.ID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("managers may not patch permissions", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u := seedUser(t, svc)

		role := RoleAdmin
		_, err := svc.UpdatePermissions(ctx, mgrCaller, u.ID, PermissionsUpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("invalid role value rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo())
		u := seedUser(t, svc)

		role := Role("root")
		_, err := svc.UpdatePermissions(ctx, adminCaller, u.ID, PermissionsUpdateRequest{Role: &role})
		assert.ErrorIs(t, err, ErrBadRole)
	})
}

func TestDeactivateReactivate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	u := seedUser(t, svc)

	deactivated, err := svc.Deactivate(ctx, adminCaller, u.ID)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	reactivated, err := svc.Reactivate(ctx, adminCaller, u.ID)
	require.NoError(t, err)
	assert.True(t, reactivated.IsActive)

	_, err = svc.Deactivate(ctx, mgrCaller, u.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLookupBypassesVisibility(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())
	u := seedUser(t, svc)

	got, err := svc.Lookup(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = svc.Lookup(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
