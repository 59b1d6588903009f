// Package gorm provides GORM model definitions for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/weemeal/server/internal/domain/recipe"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey"`
	Name         string    `gorm:"type:varchar(255);not null;index"`
	RecipeYield  int       `gorm:"not null;default:1"`
	Instructions string    `gorm:"type:text"`

	// The ordered content list and the source are stored as JSON
	// documents; the domain layer owns their structure.
	Content ContentList `gorm:"type:json"`
	Source  SourceField `gorm:"type:json"`

	ImageURL    string      `gorm:"type:text"`
	ImageSource string      `gorm:"type:varchar(20)"`
	Tags        StringSlice `gorm:"type:json"`
	Notes       string      `gorm:"type:text"`
	UserID      string      `gorm:"type:varchar(64);index"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

func (RecipeModel) TableName() string {
	return "recipes"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}

// ContentList stores the ordered content items as a JSON document
type ContentList []recipe.ContentItem

// Scan implements the sql.Scanner interface
func (c *ContentList) Scan(value interface{}) error {
	if value == nil {
		*c = ContentList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("cannot scan %T into ContentList", value)
	}
}

// Value implements the driver.Valuer interface
func (c ContentList) Value() (driver.Value, error) {
	if len(c) == 0 {
		return "[]", nil
	}
	return json.Marshal(c)
}

// SourceField stores the optional recipe source as a JSON document.
// A nil field maps to SQL NULL.
type SourceField struct {
	Source *recipe.Source
}

// Scan implements the sql.Scanner interface
func (s *SourceField) Scan(value interface{}) error {
	if value == nil {
		s.Source = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SourceField", value)
	}
	if len(data) == 0 || string(data) == "null" {
		s.Source = nil
		return nil
	}

	var src recipe.Source
	if err := json.Unmarshal(data, &src); err != nil {
		return err
	}
	s.Source = &src
	return nil
}

// Value implements the driver.Valuer interface
func (s SourceField) Value() (driver.Value, error) {
	if s.Source == nil {
		return nil, nil
	}
	return json.Marshal(s.Source)
}
