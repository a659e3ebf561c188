package models

// User ids come from the identity provider, so they are opaque text rather
// than generated UUIDs.
type User struct {
	ID        string `gorm:"column:id;type:text;primaryKey" json:"id"`
	Email     string `gorm:"column:email;type:text;not null;uniqueIndex" json:"email"`
	FirstName string `gorm:"column:firstName;type:text;not null;default:''" json:"firstName"`
	LastName  string `gorm:"column:lastName;type:text;not null;default:''" json:"lastName"`
	ImageURL  string `gorm:"column:imageUrl;type:text;not null;default:''" json:"imageUrl"`
}

func (User) TableName() string {
	return "User"
}
