package http

import (
	"time"

	"github.com/workleaf/resource-booking-backend/internal/pkg/request"
	"github.com/workleaf/resource-booking-backend/internal/resource"
)

// ListResourcesRequest defines query parameters for listing resources.
type ListResourcesRequest struct {
	request.ListParams
	Type        string `form:"type" binding:"omitempty,oneof=room equipment vehicle"`
	Site        string `form:"site"`
	Status      string `form:"status" binding:"omitempty,oneof=active maintenance out_of_service"`
	MinCapacity int    `form:"min_capacity" binding:"omitempty,min=1,max=500"`
	Feature     string `form:"feature"`
	Sort        string `form:"sort" binding:"omitempty,oneof=name capacity type"`
}

// CreateResourceRequest is the payload for registering a resource.
type CreateResourceRequest struct {
	Name               string   `json:"name" binding:"required,min=2,max=120"`
	Type               string   `json:"type" binding:"required,oneof=room equipment vehicle"`
	CapacityMax        *int     `json:"capacity_max" binding:"omitempty,min=1,max=500"`
	Description        string   `json:"description" binding:"omitempty,max=1000"`
	Features           []string `json:"features"`
	Site               string   `json:"site" binding:"required,min=2,max=120"`
	Building           string   `json:"building" binding:"omitempty,max=120"`
	Floor              string   `json:"floor" binding:"omitempty,max=50"`
	RoomNumber         string   `json:"room_number" binding:"omitempty,max=50"`
	OpenTime           *string  `json:"open_time" binding:"omitempty,datetime=15:04"`
	CloseTime          *string  `json:"close_time" binding:"omitempty,datetime=15:04"`
	Status             string   `json:"status" binding:"omitempty,oneof=active maintenance out_of_service"`
	HourlyRateInternal *int     `json:"hourly_rate_internal" binding:"omitempty,min=0"`
}

// UpdateResourceRequest patches a resource; absent fields are left untouched.
type UpdateResourceRequest struct {
	Name               *string   `json:"name" binding:"omitempty,min=2,max=120"`
	CapacityMax        *int      `json:"capacity_max" binding:"omitempty,min=1,max=500"`
	Description        *string   `json:"description" binding:"omitempty,max=1000"`
	Features           *[]string `json:"features"`
	Site               *string   `json:"site" binding:"omitempty,min=2,max=120"`
	Building           *string   `json:"building" binding:"omitempty,max=120"`
	Floor              *string   `json:"floor" binding:"omitempty,max=50"`
	RoomNumber         *string   `json:"room_number" binding:"omitempty,max=50"`
	OpenTime           *string   `json:"open_time" binding:"omitempty,datetime=15:04"`
	CloseTime          *string   `json:"close_time" binding:"omitempty,datetime=15:04"`
	Status             *string   `json:"status" binding:"omitempty,oneof=active maintenance out_of_service"`
	HourlyRateInternal *int      `json:"hourly_rate_internal" binding:"omitempty,min=0"`
}

type ResourceResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Type               string    `json:"type"`
	CapacityMax        *int      `json:"capacity_max"`
	Description        string    `json:"description"`
	Features           []string  `json:"features"`
	Site               string    `json:"site"`
	Building           string    `json:"building"`
	Floor              string    `json:"floor"`
	RoomNumber         string    `json:"room_number"`
	OpenTime           *string   `json:"open_time"`
	CloseTime          *string   `json:"close_time"`
	Status             string    `json:"status"`
	ImageURL           *string   `json:"image_url"`
	HourlyRateInternal *int      `json:"hourly_rate_internal"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewResourceResponse(res *resource.Resource) ResourceResponse {
	features := res.Features
	if features == nil {
		features = make([]string, 0)
	}
	return ResourceResponse{
		ID:                 res.ID,
		Name:               res.Name,
		Type:               string(res.Type),
		CapacityMax:        res.CapacityMax,
		Description:        res.Description,
		Features:           features,
		Site:               res.Site,
		Building:           res.Building,
		Floor:              res.Floor,
		RoomNumber:         res.RoomNumber,
		OpenTime:           res.OpenTime,
		CloseTime:          res.CloseTime,
		Status:             string(res.Status),
		ImageURL:           res.ImageURL,
		HourlyRateInternal: res.HourlyRateInternal,
		CreatedAt:          res.CreatedAt,
	}
}
