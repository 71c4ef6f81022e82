package models

import "time"

// Listing statuses.
const (
	ListingDraft     = "draft"
	ListingPublished = "published"
	ListingSuspended = "suspended"
)

// Media kinds.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

// ServicePackage is one purchasable tier of a listing.
type ServicePackage struct {
	Name         string   `bson:"name" json:"name"`
	Description  string   `bson:"description,omitempty" json:"description,omitempty"`
	Price        float64  `bson:"price" json:"price"`
	DeliveryDays int      `bson:"deliveryDays" json:"deliveryDays"`
	Features     []string `bson:"features,omitempty" json:"features,omitempty"`
}

type Media struct {
	PublicID string `bson:"publicId" json:"publicId"`
	URL      string `bson:"url" json:"url"`
	Kind     string `bson:"kind" json:"kind"`
}

// ServiceListing is a professional's published offering.
type ServiceListing struct {
	ID               string           `bson:"id" json:"id"`
	ProfessionalID   string           `bson:"professionalId" json:"professionalId"`
	ProfessionalName string           `bson:"professionalName" json:"professionalName"`
	Title            string           `bson:"title" json:"title"`
	Description      string           `bson:"description" json:"description"`
	SectorID         string           `bson:"sectorId" json:"sectorId"`
	CategoryID       string           `bson:"categoryId" json:"categoryId"`
	SubCategoryID    string           `bson:"subCategoryId,omitempty" json:"subCategoryId,omitempty"`
	Packages         []ServicePackage `bson:"packages" json:"packages"`
	StartingPrice    float64          `bson:"startingPrice" json:"startingPrice"`
	Currency         string           `bson:"currency" json:"currency"`
	Media            []Media          `bson:"media,omitempty" json:"media,omitempty"`
	Tags             []string         `bson:"tags,omitempty" json:"tags,omitempty"`
	Location         string           `bson:"location,omitempty" json:"location,omitempty"`
	Rating           float64          `bson:"rating" json:"rating"`
	ReviewCount      int              `bson:"reviewCount" json:"reviewCount"`
	Verified         bool             `bson:"verified" json:"verified"`
	Status           string           `bson:"status" json:"status"`
	CreatedAt        time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time        `bson:"updatedAt" json:"updatedAt"`
	PublishedAt      *time.Time       `bson:"publishedAt,omitempty" json:"publishedAt,omitempty"`
}

// StartingDelivery is the delivery time of the cheapest package, the one
// StartingPrice advertises. Equal prices pick the faster package.
func (l *ServiceListing) StartingDelivery() int {
	if len(l.Packages) == 0 {
		return 0
	}
	best := l.Packages[0]
	for _, p := range l.Packages[1:] {
		if p.Price < best.Price || (p.Price == best.Price && p.DeliveryDays < best.DeliveryDays) {
			best = p
		}
	}
	return best.DeliveryDays
}

// ListedAt is the publication time, or the creation time for listings never published.
func (l *ServiceListing) ListedAt() time.Time {
	if l.PublishedAt != nil {
		return *l.PublishedAt
	}
	return l.CreatedAt
}

// MinPackagePrice returns the cheapest package price.
func MinPackagePrice(pkgs []ServicePackage) float64 {
	if len(pkgs) == 0 {
		return 0
	}
	lowest := pkgs[0].Price
	for _, p := range pkgs[1:] {
		if p.Price < lowest {
			lowest = p.Price
		}
	}
	return lowest
}

// ListingInput is the editable part of a listing.
type ListingInput struct {
	Title         string           `json:"title" binding:"required"`
	Description   string           `json:"description"`
	SectorID      string           `json:"sectorId" binding:"required"`
	CategoryID    string           `json:"categoryId" binding:"required"`
	SubCategoryID string           `json:"subCategoryId"`
	Packages      []ServicePackage `json:"packages"`
	Currency      string           `json:"currency"`
	Tags          []string         `json:"tags"`
	Location      string           `json:"location"`
}
