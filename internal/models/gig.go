package models

import "time"

type Gig struct {
	BaseModel
	OwnerID     string    `gorm:"type:uuid;not null;index" json:"ownerId"`
	Title       string    `gorm:"size:100;not null" json:"title"`
	Description string    `gorm:"size:1000;not null" json:"description"`
	Budget      float64   `gorm:"not null" json:"budget"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Status      GigStatus `gorm:"type:varchar(20);not null;default:'open';index" json:"status"`
	AssignedTo  *string   `gorm:"type:uuid" json:"assignedTo,omitempty"`

	Owner *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// HasConsistentAssignee checks the assignedTo/status invariant.
func (g *Gig) HasConsistentAssignee() bool {
	assigned := g.AssignedTo != nil && *g.AssignedTo != ""
	return assigned == g.Status.RequiresAssignee()
}
