package model

import "github.com/google/uuid"

// Category is the top level of the taxonomy. Managed by ADMIN only.
type Category struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Image    string `gorm:"type:text" json:"image"`
	URL      string `gorm:"type:varchar(255);uniqueIndex;not null" json:"url" validate:"required"`
	Featured bool   `gorm:"default:false" json:"featured"`

	SubCategories []SubCategory `json:"sub_categories,omitempty"`
}

// SubCategory belongs to exactly one Category.
type SubCategory struct {
	BaseModel
	Name       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Image      string    `gorm:"type:text" json:"image"`
	URL        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"url" validate:"required"`
	Featured   bool      `gorm:"default:false" json:"featured"`
	CategoryID uuid.UUID `gorm:"type:uuid;index;not null" json:"category_id" validate:"uuid_required"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}
