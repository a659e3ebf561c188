package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Chat struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time  `gorm:"column:createdAt;type:timestamp;not null" json:"createdAt"`
	Title          string     `gorm:"column:title;type:text;not null" json:"title"`
	UserID         *string    `gorm:"column:userId;type:text;index" json:"userId,omitempty"`
	OrganizationID string     `gorm:"column:organizationId;type:text;not null;index" json:"organizationId"`
	IsAdmin        bool       `gorm:"column:isAdmin;not null;default:false" json:"isAdmin"`
	Visibility     Visibility `gorm:"column:visibility;type:varchar;not null;default:'private';check:chk_chat_visibility,visibility IN ('public','private')" json:"visibility"`

	// Relationships
	User         *User         `gorm:"foreignKey:UserID;references:ID" json:"-"`
	Organization *Organization `gorm:"foreignKey:OrganizationID;references:ID" json:"-"`
}

func (Chat) TableName() string {
	return "Chat"
}

func (c *Chat) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	ensureCreatedAt(&c.CreatedAt)
	return nil
}

// Message content is the structured part list produced by the model SDK,
// stored verbatim as JSON.
type Message struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	ChatID    uuid.UUID      `gorm:"column:chatId;type:uuid;not null;index" json:"chatId"`
	Role      string         `gorm:"column:role;type:varchar;not null" json:"role"`
	Content   datatypes.JSON `gorm:"column:content;type:json;not null" json:"content"`
	CreatedAt time.Time      `gorm:"column:createdAt;type:timestamp;not null" json:"createdAt"`

	// Relationships
	Chat *Chat `gorm:"foreignKey:ChatID;references:ID" json:"-"`
}

func (Message) TableName() string {
	return "Message"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	ensureID(&m.ID)
	ensureCreatedAt(&m.CreatedAt)
	return nil
}

// Vote is keyed by (chatId, messageId): a message carries at most one vote.
type Vote struct {
	ChatID    uuid.UUID `gorm:"column:chatId;type:uuid;primaryKey" json:"chatId"`
	MessageID uuid.UUID `gorm:"column:messageId;type:uuid;primaryKey" json:"messageId"`
	IsUpvoted bool      `gorm:"column:isUpvoted;not null" json:"isUpvoted"`

	// Relationships
	Chat    *Chat    `gorm:"foreignKey:ChatID;references:ID" json:"-"`
	Message *Message `gorm:"foreignKey:MessageID;references:ID" json:"-"`
}

func (Vote) TableName() string {
	return "Vote"
}
