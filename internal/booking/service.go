package booking

import (
	"context"
	"slices"
	"time"

	"github.com/workleaf/resource-booking-backend/internal/resource"
	"github.com/workleaf/resource-booking-backend/internal/timeslot"
	"github.com/workleaf/resource-booking-backend/internal/user"
)

// UserDirectory resolves the target user of a booking operation.
// Satisfied by user.Service.
type UserDirectory interface {
	Lookup(ctx context.Context, id string) (*user.User, error)
}

// ResourceCatalog resolves the resource a booking targets.
// Satisfied by resource.Service.
type ResourceCatalog interface {
	GetByID(ctx context.Context, id string) (*resource.Resource, error)
}

// CreateRequest carries the fields for placing a new booking.
type CreateRequest struct {
	UserID     string
	ResourceID string
	StartAt    time.Time
	EndAt      time.Time

	Title        string
	Participants int
	Notes        string
}

// UpdateRequest patches a booking. Only supplied fields are applied; the
// time window is re-validated (and re-checked for conflicts) only when
// StartAt or EndAt is present.
type UpdateRequest struct {
	StartAt      *time.Time
	EndAt        *time.Time
	Title        *string
	Participants *int
	Notes        *string
}

type Service interface {
	Create(ctx context.Context, caller user.Identity, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, caller user.Identity, id string) (*Booking, error)
	List(ctx context.Context, caller user.Identity, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, caller user.Identity, id string, req UpdateRequest) (*Booking, error)
	Cancel(ctx context.Context, caller user.Identity, id string) (*Booking, error)
}

type service struct {
	repo      Repository
	users     UserDirectory
	resources ResourceCatalog

	// now is swappable so tests can pin the clock.
	now func() time.Time
}

func NewService(repo Repository, users UserDirectory, resources ResourceCatalog) Service {
	return &service{
		repo:      repo,
		users:     users,
		resources: resources,
		now:       timeslot.NowUTC,
	}
}

func (s *service) Create(ctx context.Context, caller user.Identity, req CreateRequest) (*Booking, error) {
	// 1. Target user must exist and be active.
	target, err := s.users.Lookup(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, ErrUserDisabled
	}

	// 2. Employees may only book for themselves.
	if !canCreateFor(caller, req.UserID) {
		return nil, ErrForbidden
	}

	// 3. Target resource must exist and be bookable.
	res, err := s.resources.GetByID(ctx, req.ResourceID)
	if err != nil {
		return nil, err
	}
	if !res.Status.Bookable() {
		return nil, ErrResourceNotBookable
	}

	// 4. Align the window to the grid and validate it.
	start, end, err := normalizeSlot(req.StartAt, req.EndAt, caller.Role, true, s.now())
	if err != nil {
		return nil, err
	}

	// 5. The target user must be allowed this resource type (admin bypasses).
	if !bypassesTypeRestriction(caller.Role) &&
		!slices.Contains(target.AllowedResourceTypes, string(res.Type)) {
		return nil, ErrForbidden
	}

	// 6. Room capacity.
	participants := req.Participants
	if participants < 1 {
		participants = 1
	}
	if res.Type == resource.TypeRoom && res.CapacityMax != nil && participants > *res.CapacityMax {
		return nil, ErrCapacityExceeded
	}

	// 7. Conflict detection over active bookings.
	conflict, err := s.repo.HasConflict(ctx, res.ID, start, end, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, ErrConflict
	}

	b := &Booking{
		ResourceID:   res.ID,
		UserID:       target.ID,
		StartAt:      start,
		EndAt:        end,
		Status:       initialStatus(caller.Role),
		Title:        req.Title,
		Participants: participants,
		Notes:        req.Notes,
		CreatedAt:    s.now(),
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) GetByID(ctx context.Context, caller user.Identity, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(caller, b.UserID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *service) List(ctx context.Context, caller user.Identity, filter Filter) ([]*Booking, int, error) {
	// Employees only ever see their own bookings; manager/admin may filter
	// by any user (or none, to see all).
	if caller.Role == user.RoleEmployee {
		filter.UserID = caller.UserID
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, caller user.Identity, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(caller, b.UserID) {
		return nil, ErrForbidden
	}

	// Effective window: supplied values, otherwise the stored ones.
	start := b.StartAt
	end := b.EndAt
	timeChanged := false
	if req.StartAt != nil {
		start = *req.StartAt
		timeChanged = true
	}
	if req.EndAt != nil {
		end = *req.EndAt
		timeChanged = true
	}

	// Ordering and duration are always re-validated; the past-start check
	// applies only when the window is actually being moved.
	start, end, err = normalizeSlot(start, end, caller.Role, timeChanged, s.now())
	if err != nil {
		return nil, err
	}

	if timeChanged {
		// A booking never conflicts with itself.
		conflict, err := s.repo.HasConflict(ctx, b.ResourceID, start, end, b.ID)
		if err != nil {
			return nil, err
		}
		if conflict {
			return nil, ErrConflict
		}
		b.StartAt = start
		b.EndAt = end
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Participants != nil {
		b.Participants = *req.Participants
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *service) Cancel(ctx context.Context, caller user.Identity, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !canModify(caller, b.UserID) {
		return nil, ErrForbidden
	}

	// Unconditional: cancelling an already-cancelled or completed booking
	// succeeds and leaves it cancelled.
	b.Status = StatusCancelled

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}
