package resource

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workleaf/resource-booking-backend/internal/user"
)

type fakeRepo struct {
	resources map[string]*Resource
	nextID    int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{resources: make(map[string]*Resource)}
}

func (r *fakeRepo) Create(ctx context.Context, res *Resource) error {
	for _, existing := range r.resources {
		if existing.Name == res.Name && existing.Site == res.Site {
			return ErrNameTaken
		}
	}
	r.nextID++
	res.ID = fmt.Sprintf("r%d", r.nextID)
	clone := *res
	r.resources[res.ID] = &clone
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*Resource, error) {
	res, ok := r.resources[id]
	if !ok || res.IsDeleted {
		return nil, ErrNotFound
	}
	clone := *res
	return &clone, nil
}

func (r *fakeRepo) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	var out []*Resource
	for _, res := range r.resources {
		if res.IsDeleted {
			continue
		}
		if filter.Type != "" && string(res.Type) != filter.Type {
			continue
		}
		clone := *res
		out = append(out, &clone)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Update(ctx context.Context, res *Resource) error {
	if _, ok := r.resources[res.ID]; !ok {
		return ErrNotFound
	}
	clone := *res
	r.resources[res.ID] = &clone
	return nil
}

type fakeStorage struct {
	files   map[string][]byte
	deleted []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) Save(ctx context.Context, path string, content io.Reader) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	s.files[path] = data
	return nil
}

func (s *fakeStorage) Get(ctx context.Context, path string) (io.ReadCloser, error) {
	data, ok := s.files[path]
	if !ok {
		return nil, fmt.Errorf("not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *fakeStorage) Delete(ctx context.Context, path string) error {
	delete(s.files, path)
	s.deleted = append(s.deleted, path)
	return nil
}

var (
	adminCaller = user.Identity{UserID: "adm", Role: user.RoleAdmin}
	mgrCaller   = user.Identity{UserID: "mgr", Role: user.RoleManager}
	empCaller   = user.Identity{UserID: "emp", Role: user.RoleEmployee}
)

func intPtr(v int) *int { return &v }

func TestCreateResource(t *testing.T) {
	ctx := context.Background()

	t.Run("admin creates a room", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Meeting Room A", Type: TypeRoom, CapacityMax: intPtr(8),
			Site: "HQ", Features: []string{" Projector ", "whiteboard"},
		})
		require.NoError(t, err)
		assert.Equal(t, StatusActive, res.Status)
		assert.Equal(t, []string{"projector", "whiteboard"}, res.Features)
	})

	t.Run("only admins may create", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		_, err := svc.Create(ctx, mgrCaller, CreateRequest{Name: "X", Type: TypeRoom, CapacityMax: intPtr(4), Site: "HQ"})
		assert.ErrorIs(t, err, ErrForbidden)

		_, err = svc.Create(ctx, empCaller, CreateRequest{Name: "X", Type: TypeRoom, CapacityMax: intPtr(4), Site: "HQ"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("room without capacity is rejected", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		_, err := svc.Create(ctx, adminCaller, CreateRequest{Name: "X", Type: TypeRoom, Site: "HQ"})
		assert.ErrorIs(t, err, ErrRoomCapacityRequired)
	})

	t.Run("equipment does not need capacity", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		res, err := svc.Create(ctx, adminCaller, CreateRequest{Name: "Camera 1", Type: TypeEquipment, Site: "HQ"})
		require.NoError(t, err)
		assert.Nil(t, res.CapacityMax)
	})

	t.Run("features are validated against the type allow-list", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		_, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Van 1", Type: TypeVehicle, Site: "HQ",
			Features: []string{"projector"},
		})
		assert.ErrorIs(t, err, ErrInvalidFeatures)
	})

	t.Run("duplicate name on the same site", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())

		_, err := svc.Create(ctx, adminCaller, CreateRequest{Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(4), Site: "HQ"})
		require.NoError(t, err)

		_, err = svc.Create(ctx, adminCaller, CreateRequest{Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(6), Site: "HQ"})
		assert.ErrorIs(t, err, ErrNameTaken)
	})
}

func TestUpdateResource(t *testing.T) {
	ctx := context.Background()

	seed := func(t *testing.T, svc Service) *Resource {
		t.Helper()
		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
			Description: "original",
		})
		require.NoError(t, err)
		return res
	}

	t.Run("manager may patch, employee may not", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())
		res := seed(t, svc)

		desc := "patched"
		updated, err := svc.Update(ctx, mgrCaller, res.ID, UpdateRequest{Description: &desc})
		require.NoError(t, err)
		assert.Equal(t, "patched", updated.Description)
		assert.Equal(t, "Room A", updated.Name)

		_, err = svc.Update(ctx, empCaller, res.ID, UpdateRequest{Description: &desc})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("status transition to maintenance", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())
		res := seed(t, svc)

		st := StatusMaintenance
		updated, err := svc.Update(ctx, adminCaller, res.ID, UpdateRequest{Status: &st})
		require.NoError(t, err)
		assert.Equal(t, StatusMaintenance, updated.Status)
		assert.False(t, updated.Status.Bookable())
	})

	t.Run("patched features are re-validated", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())
		res := seed(t, svc)

		bad := []string{"gps"}
		_, err := svc.Update(ctx, adminCaller, res.ID, UpdateRequest{Features: &bad})
		assert.ErrorIs(t, err, ErrInvalidFeatures)
	})
}

func TestSoftDeleteResource(t *testing.T) {
	ctx := context.Background()

	svc := NewService(newFakeRepo(), newFakeStorage())
	res, err := svc.Create(ctx, adminCaller, CreateRequest{
		Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
	})
	require.NoError(t, err)

	_, err = svc.SoftDelete(ctx, mgrCaller, res.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	deleted, err := svc.SoftDelete(ctx, adminCaller, res.ID)
	require.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	// Soft-deleted resources disappear from reads.
	_, err = svc.GetByID(ctx, res.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUploadResourceImage(t *testing.T) {
	ctx := context.Background()

	jpegBytes := func(t *testing.T) []byte {
		t.Helper()
		img := image.NewRGBA(image.Rect(0, 0, 64, 64))
		var buf bytes.Buffer
		require.NoError(t, jpeg.Encode(&buf, img, nil))
		return buf.Bytes()
	}

	t.Run("stores a normalized image and records its URL", func(t *testing.T) {
		store := newFakeStorage()
		svc := NewService(newFakeRepo(), store)
		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
		})
		require.NoError(t, err)

		updated, err := svc.UploadImage(ctx, mgrCaller, res.ID, bytes.NewReader(jpegBytes(t)))
		require.NoError(t, err)
		require.NotNil(t, updated.ImageURL)
		assert.True(t, strings.HasPrefix(*updated.ImageURL, "/uploads/resources/"))
		assert.Len(t, store.files, 1)
	})

	t.Run("replacing an image deletes the old file", func(t *testing.T) {
		store := newFakeStorage()
		svc := NewService(newFakeRepo(), store)
		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
		})
		require.NoError(t, err)

		first, err := svc.UploadImage(ctx, adminCaller, res.ID, bytes.NewReader(jpegBytes(t)))
		require.NoError(t, err)
		oldPath := strings.TrimPrefix(*first.ImageURL, "/uploads/")

		_, err = svc.UploadImage(ctx, adminCaller, res.ID, bytes.NewReader(jpegBytes(t)))
		require.NoError(t, err)

		assert.Contains(t, store.deleted, oldPath)
		assert.Len(t, store.files, 1)
	})

	t.Run("employees may not upload", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())
		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
		})
		require.NoError(t, err)

		_, err = svc.UploadImage(ctx, empCaller, res.ID, bytes.NewReader(jpegBytes(t)))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("garbage input is rejected as an invalid image", func(t *testing.T) {
		svc := NewService(newFakeRepo(), newFakeStorage())
		res, err := svc.Create(ctx, adminCaller, CreateRequest{
			Name: "Room A", Type: TypeRoom, CapacityMax: intPtr(8), Site: "HQ",
		})
		require.NoError(t, err)

		_, err = svc.UploadImage(ctx, adminCaller, res.ID, strings.NewReader("not an image"))
		assert.ErrorIs(t, err, ErrInvalidImage)
	})
}
