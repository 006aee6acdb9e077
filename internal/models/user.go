package models

// User is the public profile of an account. Accounts are owned by the
// external identity service; this table only backs display joins.
type User struct {
	BaseModel
	Name  string `gorm:"not null" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
}
