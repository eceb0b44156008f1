package resource

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/workleaf/resource-booking-backend/internal/pkg/storage"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

// CreateRequest carries the fields for registering a new resource.
type CreateRequest struct {
	Name               string
	Type               Type
	CapacityMax        *int
	Description        string
	Features           []string
	Site               string
	Building           string
	Floor              string
	RoomNumber         string
	OpenTime           *string
	CloseTime          *string
	Status             Status
	HourlyRateInternal *int
}

// UpdateRequest patches resource fields. Only supplied fields are applied.
type UpdateRequest struct {
	Name               *string
	CapacityMax        *int
	Description        *string
	Features           *[]string
	Site               *string
	Building           *string
	Floor              *string
	RoomNumber         *string
	OpenTime           *string
	CloseTime          *string
	Status             *Status
	HourlyRateInternal *int
}

type Service interface {
	List(ctx context.Context, filter Filter) ([]*Resource, int, error)
	GetByID(ctx context.Context, id string) (*Resource, error)
	Create(ctx context.Context, caller user.Identity, req CreateRequest) (*Resource, error)
	Update(ctx context.Context, caller user.Identity, id string, req UpdateRequest) (*Resource, error)
	SoftDelete(ctx context.Context, caller user.Identity, id string) (*Resource, error)

	// UploadImage stores a normalized resource photo and records its public
	// URL on the resource.
	UploadImage(ctx context.Context, caller user.Identity, id string, content io.Reader) (*Resource, error)
}

type service struct {
	repo    Repository
	store   storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		store:   store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Resource, int, error) {
	// Listing is readable by every authenticated caller.
	return s.repo.List(ctx, filter)
}

func (s *service) GetByID(ctx context.Context, id string) (*Resource, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, caller user.Identity, req CreateRequest) (*Resource, error) {
	if caller.Role != user.RoleAdmin {
		return nil, ErrForbidden
	}
	if !req.Type.Valid() {
		return nil, ErrInvalidType
	}
	if req.Status == "" {
		req.Status = StatusActive
	}
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	// Capacity required for rooms
	if req.Type == TypeRoom && req.CapacityMax == nil {
		return nil, ErrRoomCapacityRequired
	}

	features := normalizeFeatures(req.Features)
	if err := validateFeatures(req.Type, features); err != nil {
		return nil, err
	}

	res := &Resource{
		Name:               strings.TrimSpace(req.Name),
		Type:               req.Type,
		CapacityMax:        req.CapacityMax,
		Description:        req.Description,
		Features:           features,
		Site:               strings.TrimSpace(req.Site),
		Building:           req.Building,
		Floor:              req.Floor,
		RoomNumber:         req.RoomNumber,
		OpenTime:           req.OpenTime,
		CloseTime:          req.CloseTime,
		Status:             req.Status,
		HourlyRateInternal: req.HourlyRateInternal,
	}

	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) Update(ctx context.Context, caller user.Identity, id string, req UpdateRequest) (*Resource, error) {
	if caller.Role != user.RoleAdmin && caller.Role != user.RoleManager {
		return nil, ErrForbidden
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		res.Name = strings.TrimSpace(*req.Name)
	}
	if req.CapacityMax != nil {
		res.CapacityMax = req.CapacityMax
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Features != nil {
		res.Features = normalizeFeatures(*req.Features)
	}
	if req.Site != nil {
		res.Site = strings.TrimSpace(*req.Site)
	}
	if req.Building != nil {
		res.Building = *req.Building
	}
	if req.Floor != nil {
		res.Floor = *req.Floor
	}
	if req.RoomNumber != nil {
		res.RoomNumber = *req.RoomNumber
	}
	if req.OpenTime != nil {
		res.OpenTime = req.OpenTime
	}
	if req.CloseTime != nil {
		res.CloseTime = req.CloseTime
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		res.Status = *req.Status
	}
	if req.HourlyRateInternal != nil {
		res.HourlyRateInternal = req.HourlyRateInternal
	}

	// Keep the room rule consistent after the patch.
	if res.Type == TypeRoom && res.CapacityMax == nil {
		return nil, ErrRoomCapacityRequired
	}
	if req.Features != nil {
		if err := validateFeatures(res.Type, res.Features); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) SoftDelete(ctx context.Context, caller user.Identity, id string) (*Resource, error) {
	if caller.Role != user.RoleAdmin {
		return nil, ErrForbidden
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res.IsDeleted = true
	if err := s.repo.Update(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *service) UploadImage(ctx context.Context, caller user.Identity, id string, content io.Reader) (*Resource, error) {
	if caller.Role != user.RoleAdmin && caller.Role != user.RoleManager {
		return nil, ErrForbidden
	}

	res, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	normalized, err := s.imgProc.Normalize(content, 1280, 1280)
	if err != nil {
		return nil, ErrInvalidImage
	}

	// Sharded path: resources/ab/<uuid>.jpg
	imageID := uuid.New().String()
	path := fmt.Sprintf("resources/%s/%s.jpg", imageID[:2], imageID)

	if err := s.store.Save(ctx, path, normalized); err != nil {
		return nil, fmt.Errorf("failed to save resource image: %w", err)
	}

	// Replace any previous image; best-effort cleanup of the old file.
	oldURL := res.ImageURL

	url := "/uploads/" + path
	res.ImageURL = &url
	if err := s.repo.Update(ctx, res); err != nil {
		_ = s.store.Delete(ctx, path)
		return nil, err
	}

	if oldURL != nil {
		if old, ok := strings.CutPrefix(*oldURL, "/uploads/"); ok {
			_ = s.store.Delete(ctx, old)
		}
	}

	return res, nil
}

// normalizeFeatures trims and lowercases feature tags, dropping empties.
func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validateFeatures checks every tag against the allow-list for the type.
func validateFeatures(t Type, features []string) error {
	allowed := FeaturesByType[t]
	for _, f := range features {
		if !slices.Contains(allowed, f) {
			return ErrInvalidFeatures
		}
	}
	return nil
}
