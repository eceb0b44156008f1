package user

import (
	"context"
	"strings"
)

// CreateRequest carries the fields for provisioning a new account.
type CreateRequest struct {
	Username             string
	Email                string
	FullName             string
	Role                 Role
	Department           string
	MainSite             string
	AllowedResourceTypes []string
	Priority             Priority
	IsActive             bool
}

// ProfileUpdateRequest patches self-service profile fields. Only supplied
// fields are applied.
type ProfileUpdateRequest struct {
	FullName   *string
	Department *string
	MainSite   *string
}

// PermissionsUpdateRequest patches the authorization-relevant fields.
// Admin only; only supplied fields are applied.
type PermissionsUpdateRequest struct {
	Role                 *Role
	AllowedResourceTypes *[]string
	Priority             *Priority
	IsActive             *bool
}

// Service defines business logic related to users.
type Service interface {
	List(ctx context.Context, caller Identity, filter Filter) ([]*User, int, error)
	Create(ctx context.Context, caller Identity, req CreateRequest) (*User, error)
	GetByID(ctx context.Context, caller Identity, id string) (*User, error)
	UpdateProfile(ctx context.Context, caller Identity, id string, req ProfileUpdateRequest) (*User, error)
	GetPermissions(ctx context.Context, caller Identity, id string) (*User, error)
	UpdatePermissions(ctx context.Context, caller Identity, id string, req PermissionsUpdateRequest) (*User, error)
	Deactivate(ctx context.Context, caller Identity, id string) (*User, error)
	Reactivate(ctx context.Context, caller Identity, id string) (*User, error)

	// Lookup fetches a user without visibility checks. It exists for internal
	// collaborators (the booking engine) that must resolve the target user of
	// an operation regardless of who the caller is.
	Lookup(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo Repository
}

// NewService creates a new user Service.
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, caller Identity, filter Filter) ([]*User, int, error) {
	if caller.Role != RoleAdmin && caller.Role != RoleManager {
		return nil, 0, ErrForbidden
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Create(ctx context.Context, caller Identity, req CreateRequest) (*User, error) {
	if caller.Role != RoleAdmin {
		return nil, ErrForbidden
	}
	if !req.Role.Valid() {
		return nil, ErrBadRole
	}
	if req.Priority == "" {
		req.Priority = PriorityStandard
	}
	if !req.Priority.Valid() {
		return nil, ErrBadRole
	}

	u := &User{
		Username:             strings.TrimSpace(req.Username),
		Email:                strings.ToLower(strings.TrimSpace(req.Email)),
		FullName:             req.FullName,
		Role:                 req.Role,
		Department:           req.Department,
		MainSite:             req.MainSite,
		AllowedResourceTypes: normalizeTypes(req.AllowedResourceTypes),
		Priority:             req.Priority,
		IsActive:             req.IsActive,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetByID(ctx context.Context, caller Identity, id string) (*User, error) {
	// admin/manager can view anyone, employee can view self
	if caller.Role == RoleEmployee && caller.UserID != id {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, caller Identity, id string, req ProfileUpdateRequest) (*User, error) {
	if caller.Role == RoleEmployee && caller.UserID != id {
		return nil, ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = *req.FullName
	}
	if req.Department != nil {
		u.Department = *req.Department
	}
	if req.MainSite != nil {
		u.MainSite = *req.MainSite
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) GetPermissions(ctx context.Context, caller Identity, id string) (*User, error) {
	if caller.Role != RoleAdmin {
		return nil, ErrForbidden
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdatePermissions(ctx context.Context, caller Identity, id string, req PermissionsUpdateRequest) (*User, error) {
	if caller.Role != RoleAdmin {
		return nil, ErrForbidden
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, ErrBadRole
		}
		u.Role = *req.Role
	}
	if req.AllowedResourceTypes != nil {
		u.AllowedResourceTypes = normalizeTypes(*req.AllowedResourceTypes)
	}
	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, ErrBadRole
		}
		u.Priority = *req.Priority
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Deactivate(ctx context.Context, caller Identity, id string) (*User, error) {
	return s.setActive(ctx, caller, id, false)
}

func (s *service) Reactivate(ctx context.Context, caller Identity, id string) (*User, error) {
	return s.setActive(ctx, caller, id, true)
}

func (s *service) setActive(ctx context.Context, caller Identity, id string, active bool) (*User, error) {
	if caller.Role != RoleAdmin {
		return nil, ErrForbidden
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.IsActive = active
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Lookup(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// normalizeTypes trims and lowercases type names, dropping empties.
func normalizeTypes(types []string) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
