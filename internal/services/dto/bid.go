package dto

type CreateBidRequest struct {
	GigID   string  `json:"gigId" validate:"required"`
	Price   float64 `json:"price" validate:"money"`
	Message string  `json:"message" validate:"required,max=500"`
}
