package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is versioned by creation time: every save inserts a new row with
// the same id, so the key is (id, createdAt).
type Document struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"column:createdAt;type:timestamp;primaryKey" json:"createdAt"`
	Title     string    `gorm:"column:title;type:text;not null" json:"title"`
	Content   *string   `gorm:"column:content;type:text" json:"content,omitempty"`
	// The kind column is named "text" in deployed databases.
	Kind   DocumentKind `gorm:"column:text;type:varchar;not null;default:'text';check:chk_document_kind,\"text\" IN ('text','sheet')" json:"kind"`
	UserID string       `gorm:"column:userId;type:text;not null;index" json:"userId"`

	// Relationships
	User *User `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Document) TableName() string {
	return "Document"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	ensureCreatedAt(&d.CreatedAt)
	return nil
}

// Suggestion points at one specific version of a document.
type Suggestion struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	DocumentID        uuid.UUID `gorm:"column:documentId;type:uuid;not null;index:idx_suggestion_document" json:"documentId"`
	DocumentCreatedAt time.Time `gorm:"column:documentCreatedAt;type:timestamp;not null;index:idx_suggestion_document" json:"documentCreatedAt"`
	OriginalText      string    `gorm:"column:originalText;type:text;not null" json:"originalText"`
	SuggestedText     string    `gorm:"column:suggestedText;type:text;not null" json:"suggestedText"`
	Description       *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	IsResolved        bool      `gorm:"column:isResolved;not null;default:false" json:"isResolved"`
	UserID            string    `gorm:"column:userId;type:text;not null;index" json:"userId"`
	CreatedAt         time.Time `gorm:"column:createdAt;type:timestamp;not null" json:"createdAt"`

	// Relationships
	Document *Document `gorm:"foreignKey:DocumentID,DocumentCreatedAt;references:ID,CreatedAt" json:"-"`
	User     *User     `gorm:"foreignKey:UserID;references:ID" json:"-"`
}

func (Suggestion) TableName() string {
	return "Suggestion"
}

func (s *Suggestion) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	ensureCreatedAt(&s.CreatedAt)
	return nil
}
