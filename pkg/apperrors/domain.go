package apperrors

import (
	"net/http"
)

// ErrNotFoundIn wraps a repository miss (gorm.ErrRecordNotFound) for a domain.
func ErrNotFoundIn(err error, domain, message string) *AppError {
	return Wrap(err, CodeNotFound, domain, message, http.StatusNotFound)
}

func NotFound(domain, message string) *AppError {
	return New(CodeNotFound, domain, message, http.StatusNotFound)
}

func Conflict(domain, message string) *AppError {
	return New(CodeConflict, domain, message, http.StatusConflict)
}

func Forbidden(domain, message string) *AppError {
	return New(CodeForbidden, domain, message, http.StatusForbidden)
}

// ErrInvalidStatus is a validation-family error for unknown status values.
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

func Validation(domain, message string) *AppError {
	return New(CodeValidationFailed, domain, message, http.StatusBadRequest)
}

// --- Gigs ---

var ErrGigNotOpen = New(
	CodeConflict,
	"gig",
	"Gig is not open",
	http.StatusConflict,
)

var ErrNoAssignee = New(
	CodeConflict,
	"gig",
	"Gig has no assignee for this status",
	http.StatusConflict,
)

var ErrNotGigOwner = New(
	CodeForbidden,
	"gig",
	"Only the gig owner can perform this action",
	http.StatusForbidden,
)

// --- Bids ---

var ErrSelfBid = New(
	CodeForbidden,
	"bid",
	"You cannot bid on your own gig",
	http.StatusForbidden,
)

var ErrBidNotPending = New(
	CodeConflict,
	"bid",
	"Bid is no longer pending",
	http.StatusConflict,
)

var ErrGigAlreadyHired = New(
	CodeConflict,
	"hire",
	"Gig already has a hired bidder",
	http.StatusConflict,
)

// --- Auth ---

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrMissingToken = New(
	CodeUnauthorized,
	"auth",
	"Authentication token is required",
	http.StatusUnauthorized,
)
