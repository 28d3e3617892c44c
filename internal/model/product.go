package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// KeywordSeparator joins variant keywords at rest.
const KeywordSeparator = ","

// MaxKeywords caps the logical keyword list per variant.
const MaxKeywords = 10

// Product is the abstract item a seller lists. Concrete sellable
// configurations live on its variants.
type Product struct {
	BaseModel
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text;not null" json:"description"`
	Slug        string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	Brand       string  `gorm:"type:varchar(255)" json:"brand"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	Sales       int     `gorm:"default:0" json:"sales"`

	StoreID       uuid.UUID    `gorm:"type:uuid;index;not null" json:"store_id"`
	Store         *Store       `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CategoryID    uuid.UUID    `gorm:"type:uuid;index;not null" json:"category_id"`
	Category      *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	SubCategoryID uuid.UUID    `gorm:"type:uuid;index;not null" json:"sub_category_id"`
	SubCategory   *SubCategory `gorm:"foreignKey:SubCategoryID" json:"sub_category,omitempty"`

	Variants  []ProductVariant `gorm:"foreignKey:ProductID" json:"variants,omitempty"`
	Specs     []ProductSpec    `gorm:"foreignKey:ProductID" json:"specs,omitempty"`
	Questions []Question       `gorm:"foreignKey:ProductID" json:"questions,omitempty"`
}

// ProductVariant is one sellable configuration of a product with its own
// slug, images, colors and sizes. The slug namespace is independent from
// product slugs but still globally unique.
type ProductVariant struct {
	BaseModel
	VariantName        string `gorm:"type:varchar(255);not null" json:"variant_name"`
	VariantDescription string `gorm:"type:text" json:"variant_description"`
	Slug               string `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"`
	SKU                string `gorm:"type:varchar(100)" json:"sku"`
	IsSale             bool   `gorm:"default:false" json:"is_sale"`
	SaleEndDate        string `gorm:"type:varchar(64)" json:"sale_end_date"`
	Keywords           string `gorm:"type:text" json:"keywords"`
	// Denormalized display image, derived from the first image at write time
	// when the uploader does not override it.
	VariantImage string `gorm:"type:text" json:"variant_image"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`

	Images []ProductVariantImage `gorm:"foreignKey:ProductVariantID" json:"images,omitempty"`
	Colors []Color               `gorm:"foreignKey:ProductVariantID" json:"colors,omitempty"`
	Sizes  []Size                `gorm:"foreignKey:ProductVariantID" json:"sizes,omitempty"`
	Specs  []VariantSpec         `gorm:"foreignKey:ProductVariantID" json:"specs,omitempty"`
}

// KeywordList splits the stored keywords back into the logical list.
func (v *ProductVariant) KeywordList() []string {
	if v.Keywords == "" {
		return nil
	}
	return strings.Split(v.Keywords, KeywordSeparator)
}

type ProductVariantImage struct {
	BaseModel
	URL string `gorm:"type:text;not null" json:"url"`
	Alt string `gorm:"type:varchar(255)" json:"alt"`

	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_variant_id"`
}

// Color name doubles as label and CSS swatch value.
type Color struct {
	BaseModel
	Name string `gorm:"type:varchar(100);not null" json:"name"`

	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_variant_id"`
}

// Size is a purchasable unit within a variant. Price keeps full precision at
// rest; rounding to two decimals happens only at presentation time.
type Size struct {
	BaseModel
	Size     string          `gorm:"type:varchar(100);not null" json:"size"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(16,2);not null" json:"price"`
	Discount decimal.Decimal `gorm:"type:decimal(5,2);default:0" json:"discount"`

	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_variant_id"`
}

type ProductSpec struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Value string `gorm:"type:text;not null" json:"value"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
}

type VariantSpec struct {
	BaseModel
	Name  string `gorm:"type:varchar(255);not null" json:"name"`
	Value string `gorm:"type:text;not null" json:"value"`

	ProductVariantID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_variant_id"`
}

type Question struct {
	BaseModel
	Question string `gorm:"type:text;not null" json:"question"`
	Answer   string `gorm:"type:text;not null" json:"answer"`

	ProductID uuid.UUID `gorm:"type:uuid;index;not null" json:"product_id"`
}
