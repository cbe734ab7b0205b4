package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gosimple/slug"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/geocode"
	"github.com/wanderlust-travel/api/internal/helpers"
	"github.com/wanderlust-travel/api/internal/models"
)

// PopularPanelSize is how many listings the search view shows as its
// secondary "popular" panel.
const PopularPanelSize = 12

// Geocoder resolves free-text locations into geometry.
type Geocoder interface {
	Forward(ctx context.Context, query string, limit int) ([]geocode.Feature, error)
}

// ImageUploader stores a file stream and returns its (url, filename) pair.
type ImageUploader interface {
	Upload(ctx context.Context, file io.Reader) (url, filename string, err error)
	Destroy(ctx context.Context, filename string) error
}

// PopularPlace is one entry of the de-duplicated-by-country projection on
// the index view.
type PopularPlace struct {
	Country     string `json:"country"`
	CountrySlug string `json:"country_slug"`
	Title       string `json:"title"`
	Category    string `json:"category"`
}

// CountryView is the country landing page model.
type CountryView struct {
	Country    string            `json:"country"`
	HeroImage  string            `json:"hero_image"`
	Listings   []*models.Listing `json:"listings"`
	NoListings bool              `json:"no_listings"`
}

type ListingService struct {
	listings models.ListingRepo
	reviews  models.ReviewRepo
	geocoder Geocoder
	uploader ImageUploader
}

func NewListingService(listings models.ListingRepo, reviews models.ReviewRepo, geocoder Geocoder, uploader ImageUploader) *ListingService {
	return &ListingService{
		listings: listings,
		reviews:  reviews,
		geocoder: geocoder,
		uploader: uploader,
	}
}

// ListListings returns every listing plus the popular projection: the
// first-seen title per distinct country, annotated with a category label.
func (ls *ListingService) ListListings(ctx context.Context) ([]*models.Listing, []PopularPlace, error) {
	all, err := ls.listings.ListListings(ctx)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	popular := []PopularPlace{}
	seen := map[string]bool{}
	for _, l := range all {
		if seen[l.Country] {
			continue
		}
		seen[l.Country] = true
		popular = append(popular, PopularPlace{
			Country:     l.Country,
			CountrySlug: slug.Make(l.Country),
			Title:       l.Title,
			Category:    detectCategory(l.Title, l.Description),
		})
	}
	return all, popular, nil
}

// detectCategory classifies a listing by keyword matching over its title
// and description. Checks run in priority order.
func detectCategory(title, description string) string {
	text := strings.ToLower(title + " " + description)

	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("beach", "sea", "ocean"):
		return "beach"
	case contains("mountain", "cabin"):
		return "mountain"
	case contains("museum", "history"):
		return "arts"
	case contains("hike", "forest"):
		return "outdoors"
	default:
		return "popular"
	}
}

// SearchListings matches the query against title, description, location
// and country, and also returns a fixed-size popular panel.
func (ls *ListingService) SearchListings(ctx context.Context, query string) ([]*models.Listing, []*models.Listing, error) {
	results, err := ls.listings.SearchListings(ctx, query)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}

	popular, err := ls.listings.SampleListings(ctx, PopularPanelSize)
	if err != nil {
		return nil, nil, apperr.Internal(err)
	}
	return results, popular, nil
}

// CountryListings normalizes a hyphenated country slug to its stored
// title-case form and returns the matching listings with a hero image.
func (ls *ListingService) CountryListings(ctx context.Context, countrySlug string) (*CountryView, error) {
	country := helpers.TitleCaseCountry(countrySlug)

	listings, err := ls.listings.ListListingsByCountry(ctx, country)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &CountryView{
		Country:    country,
		HeroImage:  helpers.HeroImageFor(country),
		Listings:   listings,
		NoListings: len(listings) == 0,
	}, nil
}

// CreateListing validates the payload, geocodes "location, country",
// resolves the image, and persists the listing owned by ownerID.
func (ls *ListingService) CreateListing(ctx context.Context, input models.ListingInput, file io.Reader, ownerID primitive.ObjectID) (*models.Listing, error) {
	// Validation short-circuits before any external-service call.
	if msg, ok := models.ValidateStruct(&input); !ok {
		return nil, apperr.Validation(msg)
	}

	features, err := ls.geocoder.Forward(ctx, fmt.Sprintf("%s, %s", input.Location, input.Country), 1)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if len(features) == 0 {
		return nil, apperr.Upstream("Could not find location on map")
	}

	image := models.Image{}
	if file != nil {
		url, filename, err := ls.uploader.Upload(ctx, file)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		image = models.Image{Filename: filename, URL: url}
	}

	listing := &models.Listing{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		Location:    input.Location,
		Country:     input.Country,
		Image:       image,
		Geometry: models.Geometry{
			Type:        features[0].Geometry.Type,
			Coordinates: features[0].Geometry.Coordinates,
		},
		Owner:   ownerID,
		Reviews: []primitive.ObjectID{},
	}

	created, err := ls.listings.CreateListing(ctx, listing)
	if err != nil {
		// The listing never made it in, clean up the orphaned upload.
		if image.Filename != "" {
			_ = ls.uploader.Destroy(ctx, image.Filename)
		}
		return nil, apperr.Internal(err)
	}
	return created, nil
}

// GetListing loads a listing by id for edit forms and gating checks.
func (ls *ListingService) GetListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	listing, err := ls.listings.GetListingByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if listing == nil {
		return nil, apperr.NotFound("Listing not found")
	}
	return listing, nil
}

// GetListingDetail loads a listing with reviews, review authors and owner
// populated for the detail view.
func (ls *ListingService) GetListingDetail(ctx context.Context, id primitive.ObjectID) (*models.ListingDetail, error) {
	detail, err := ls.listings.GetListingDetail(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if detail == nil {
		return nil, apperr.NotFound("Listing not found")
	}
	return detail, nil
}

// UpdateListing merges the submitted fields into the listing and replaces
// the image when a new file was uploaded. The acting principal must own
// the listing.
func (ls *ListingService) UpdateListing(ctx context.Context, id primitive.ObjectID, actorID primitive.ObjectID, input models.ListingInput, file io.Reader) (*models.Listing, error) {
	if msg, ok := models.ValidateStruct(&input); !ok {
		return nil, apperr.Validation(msg)
	}

	existing, err := ls.listings.GetListingByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if existing == nil {
		return nil, apperr.NotFound("Listing not found")
	}
	if existing.Owner != actorID {
		return nil, apperr.Forbidden("You do not have permission to edit this listing")
	}

	updated, err := ls.listings.UpdateListing(ctx, id, input)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if updated == nil {
		return nil, apperr.NotFound("Listing not found")
	}

	if file != nil {
		url, filename, err := ls.uploader.Upload(ctx, file)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		image := models.Image{Filename: filename, URL: url}
		if err := ls.listings.ReplaceListingImage(ctx, id, image); err != nil {
			return nil, apperr.Internal(err)
		}
		updated.Image = image
	}
	return updated, nil
}

// DeleteListing removes the listing and cascades to every review it
// referenced.
func (ls *ListingService) DeleteListing(ctx context.Context, id primitive.ObjectID) error {
	deleted, err := ls.listings.DeleteListing(ctx, id)
	if err != nil {
		return apperr.Internal(err)
	}
	if deleted == nil {
		return apperr.NotFound("Cannot delete: Listing not found")
	}

	if _, err := ls.reviews.DeleteReviewsByIDs(ctx, deleted.Reviews); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
