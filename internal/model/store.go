package model

import "github.com/google/uuid"

// Store is a seller-owned namespace that owns products. The owner id points
// at the external identity provider's subject, no local user table exists.
type Store struct {
	BaseModel
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"url" validate:"required"`
	Logo        string    `gorm:"type:text" json:"logo"`
	Cover       string    `gorm:"type:text" json:"cover"`
	OwnerUserID uuid.UUID `gorm:"type:uuid;index;not null" json:"owner_user_id"`

	Products []Product `json:"products,omitempty"`
}
