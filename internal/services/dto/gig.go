package dto

import "gigflow_backend/internal/models"

// ---------------- Requests ----------------

type CreateGigRequest struct {
	Title       string  `json:"title" validate:"required,min=5,max=100"`
	Description string  `json:"description" validate:"required,min=10,max=1000"`
	Budget      float64 `json:"budget" validate:"money"`
	Deadline    Date    `json:"deadline" validate:"required,not_past_date"`
}

// ListGigsRequest is bound from the query string. Out-of-range paging and
// unknown sort values are normalised by the service, not rejected.
type ListGigsRequest struct {
	Search    string   `form:"search" json:"search,omitempty"`
	Status    string   `form:"status" json:"status,omitempty" validate:"omitempty,gig_status"`
	OwnerOnly bool     `form:"ownerOnly" json:"ownerOnly,omitempty"`
	Ownership bool     `form:"ownership" json:"-"` // alias of ownerOnly sent by the browser client
	MinBudget *float64 `form:"minBudget" json:"minBudget,omitempty"`
	MaxBudget *float64 `form:"maxBudget" json:"maxBudget,omitempty"`
	SortBy    string   `form:"sortBy" json:"sortBy,omitempty"`
	SortOrder string   `form:"sortOrder" json:"sortOrder,omitempty"`
	Page      int      `form:"page" json:"page,omitempty"`
	Limit     int      `form:"limit" json:"limit,omitempty"`
}

// MineOnly reports whether either spelling of the owner filter was set.
func (r *ListGigsRequest) MineOnly() bool {
	return r.OwnerOnly || r.Ownership
}

type UpdateGigStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ---------------- Responses ----------------

type GigListResponse struct {
	Gigs       []models.Gig `json:"gigs"`
	Pagination Pagination   `json:"pagination"`
}
