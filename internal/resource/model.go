package resource

import (
	"net/http"
	"time"

	"github.com/workleaf/resource-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "RESOURCE_NOT_FOUND", "resource not found")
	ErrForbidden            = apperror.New(http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "forbidden")
	ErrNameTaken            = apperror.New(http.StatusConflict, "RESOURCE_NAME_ALREADY_USED", "a resource with the same name already exists on this site")
	ErrRoomCapacityRequired = apperror.New(http.StatusBadRequest, "ROOM_CAPACITY_REQUIRED", "capacity_max is required for rooms")
	ErrInvalidFeatures      = apperror.New(http.StatusBadRequest, "INVALID_FEATURES", "features are not valid for this resource type")
	ErrInvalidType          = apperror.New(http.StatusBadRequest, "INVALID_RESOURCE_TYPE", "invalid resource type")
	ErrInvalidStatus        = apperror.New(http.StatusBadRequest, "INVALID_RESOURCE_STATUS", "invalid resource status")
	ErrInvalidImage         = apperror.New(http.StatusBadRequest, "INVALID_IMAGE", "uploaded file is not a valid image")
)

// Type classifies what kind of asset a resource is.
type Type string

const (
	TypeRoom      Type = "room"
	TypeEquipment Type = "equipment"
	TypeVehicle   Type = "vehicle"
)

// Valid reports whether t is a known resource type.
func (t Type) Valid() bool {
	switch t {
	case TypeRoom, TypeEquipment, TypeVehicle:
		return true
	}
	return false
}

// Status tells whether a resource can currently be booked.
type Status string

const (
	StatusActive       Status = "active"
	StatusMaintenance  Status = "maintenance"
	StatusOutOfService Status = "out_of_service"
)

// Valid reports whether s is a known resource status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusMaintenance, StatusOutOfService:
		return true
	}
	return false
}

// Bookable reports whether bookings may target a resource in this status.
func (s Status) Bookable() bool {
	return s == StatusActive
}

// FeaturesByType is the allow-list of feature tags per resource type.
var FeaturesByType = map[Type][]string{
	TypeRoom:      {"projector", "whiteboard", "tv", "conference_phone"},
	TypeEquipment: {"laptop", "camera", "microphone"},
	TypeVehicle:   {"electric", "van", "gps"},
}

// Resource represents a bookable asset (room, equipment or vehicle).
type Resource struct {
	ID   string // UUID
	Name string
	Type Type

	// CapacityMax is required for rooms and nil for other types.
	CapacityMax *int

	Description string
	Features    []string

	Site       string
	Building   string
	Floor      string
	RoomNumber string

	// Daily availability window as "HH:MM" local wall-clock strings. Stored
	// for display and downstream tooling; nil means always available.
	OpenTime  *string
	CloseTime *string

	Status Status

	ImageURL           *string
	HourlyRateInternal *int

	IsDeleted bool
	CreatedAt time.Time
}

// Filter defines parameters for listing resources.
type Filter struct {
	Type        string
	Site        string
	Status      string
	MinCapacity int
	Feature     string
	Sort        string // one of name|capacity|type
	Page        int
	PageSize    int
}
