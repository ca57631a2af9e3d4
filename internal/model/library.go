package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Library struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null;index"`
	Books     []Book    `json:"books,omitempty" gorm:"many2many:library_books"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Library) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}

// Librarian is staff assigned to a single library. The unique index on
// LibraryID keeps the assignment one-to-one.
type Librarian struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	LibraryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Library   Library
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (l *Librarian) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
