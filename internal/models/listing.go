package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// DefaultImageFilename and DefaultImageURL are used whenever a listing
	// is created or updated without an uploaded file.
	DefaultImageFilename = "defaultimage"
	DefaultImageURL      = "https://assets-news.housing.com/news/wp-content/uploads/2022/03/31010142/Luxury-house-design-Top-10-tips-to-add-luxury-to-your-house-FEATURE-compressed.jpg"

	GeometryTypePoint = "Point"
)

// Image is the stored upload reference for a listing.
type Image struct {
	Filename string `bson:"filename" json:"filename"`
	URL      string `bson:"url" json:"url"`
}

// Geometry is a GeoJSON point. Coordinates are [longitude, latitude].
type Geometry struct {
	Type        string     `bson:"type" json:"type" validate:"required,eq=Point"`
	Coordinates [2]float64 `bson:"coordinates" json:"coordinates" validate:"required"`
}

type Listing struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title       string               `bson:"title" json:"title"`
	Description string               `bson:"description" json:"description"`
	Price       float64              `bson:"price" json:"price"`
	Location    string               `bson:"location" json:"location"`
	Country     string               `bson:"country" json:"country"`
	Image       Image                `bson:"image" json:"image"`
	Geometry    Geometry             `bson:"geometry" json:"geometry"`
	Owner       primitive.ObjectID   `bson:"owner" json:"owner"`
	Reviews     []primitive.ObjectID `bson:"reviews" json:"reviews"`
}

// ListingInput is the bindable payload for create and update requests.
type ListingInput struct {
	Title       string  `form:"title" json:"title" validate:"required"`
	Description string  `form:"description" json:"description"`
	Price       float64 `form:"price" json:"price" validate:"gte=0"`
	Location    string  `form:"location" json:"location"`
	Country     string  `form:"country" json:"country"`
}

// BeforeCreate assigns an id and fills the image defaults.
func (l *Listing) BeforeCreate() error {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	l.ApplyImageDefaults()
	return nil
}

// ApplyImageDefaults resolves the image to a (filename, url) pair,
// falling back to the placeholder when either half is missing.
func (l *Listing) ApplyImageDefaults() {
	if l.Image.Filename == "" {
		l.Image.Filename = DefaultImageFilename
	}
	if l.Image.URL == "" {
		l.Image.URL = DefaultImageURL
	}
}

// ListingOwner is the populated owner projection on a listing detail view.
type ListingOwner struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
}

// ListingDetail is a listing with its reviews and owner populated.
type ListingDetail struct {
	Listing `bson:",inline"`

	OwnerDetail   *ListingOwner   `bson:"owner_detail,omitempty" json:"owner_detail,omitempty"`
	ReviewDetails []*ReviewDetail `bson:"review_details" json:"review_details"`
}
