package services

import (
	"errors"

	"gigflow_backend/internal/repositories"
	"gigflow_backend/internal/validator"
	"gigflow_backend/pkg/apperrors"

	"gorm.io/gorm"
)

// validate runs the struct rules and converts failures to a 400 AppError
// carrying the per-field messages.
func validate(v *validator.Validator, req interface{}) error {
	err := v.Validate(req)
	if err == nil {
		return nil
	}

	var vErr *validator.ValidationError
	if errors.As(err, &vErr) {
		return apperrors.ValidationError(vErr.Errors)
	}
	return apperrors.InternalError(err)
}

func handleGigError(err error) error {
	if errors.Is(err, repositories.ErrGigNotFound) {
		return apperrors.ErrNotFoundIn(err, "gig", "Gig not found")
	}
	return apperrors.DatabaseError(err)
}

func handleBidError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrBidNotFound):
		return apperrors.ErrNotFoundIn(err, "bid", "Bid not found")
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperrors.Conflict("hire", "Gig already has a hired bidder").WithError(err)
	}
	return apperrors.DatabaseError(err)
}
