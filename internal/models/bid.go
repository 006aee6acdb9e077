package models

type Bid struct {
	BaseModel
	GigID    string    `gorm:"type:uuid;not null;index" json:"gigId"`
	BidderID string    `gorm:"type:uuid;not null;index" json:"bidderId"`
	Price    float64   `gorm:"not null" json:"price"`
	Message  string    `gorm:"size:500;not null" json:"message"`
	Status   BidStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	Gig    *Gig  `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	Bidder *User `gorm:"foreignKey:BidderID" json:"bidder,omitempty"`
}
