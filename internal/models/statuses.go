package models

type GigStatus string
type BidStatus string

const (
	GigStatusOpen      GigStatus = "open"
	GigStatusAssigned  GigStatus = "assigned"
	GigStatusCompleted GigStatus = "completed"
	GigStatusCancelled GigStatus = "cancelled"

	BidStatusPending  BidStatus = "pending"
	BidStatusAccepted BidStatus = "accepted"
	BidStatusRejected BidStatus = "rejected"
)

// GigStatuses lists every gig status in lifecycle order.
var GigStatuses = []GigStatus{
	GigStatusOpen,
	GigStatusAssigned,
	GigStatusCompleted,
	GigStatusCancelled,
}

func (s GigStatus) Valid() bool {
	switch s {
	case GigStatusOpen, GigStatusAssigned, GigStatusCompleted, GigStatusCancelled:
		return true
	}
	return false
}

// RequiresAssignee reports whether a gig in this status must carry assignedTo.
func (s GigStatus) RequiresAssignee() bool {
	return s == GigStatusAssigned || s == GigStatusCompleted
}
