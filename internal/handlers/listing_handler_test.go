package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/models"
	"github.com/wanderlust-travel/api/internal/services"
)

// brokenListingRepo fails every retrieval with the same error.
type brokenListingRepo struct{ err error }

func (r *brokenListingRepo) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) GetListingByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) GetListingDetail(ctx context.Context, id primitive.ObjectID) (*models.ListingDetail, error) {
	return nil, r.err
}

func (r *brokenListingRepo) ListListings(ctx context.Context) ([]*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) SearchListings(ctx context.Context, query string) ([]*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) SampleListings(ctx context.Context, limit int64) ([]*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) ListListingsByCountry(ctx context.Context, country string) ([]*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) UpdateListing(ctx context.Context, id primitive.ObjectID, input models.ListingInput) (*models.Listing, error) {
	return nil, r.err
}

func (r *brokenListingRepo) ReplaceListingImage(ctx context.Context, id primitive.ObjectID, image models.Image) error {
	return r.err
}

func (r *brokenListingRepo) PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	return r.err
}

func (r *brokenListingRepo) PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	return r.err
}

func (r *brokenListingRepo) DeleteListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	return nil, r.err
}

func newSearchEngine(ls *services.ListingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	fl := flash.NewStore("test-secret", false)
	r := gin.New()
	r.GET("/listings/search", SearchListings(ls, fl))
	return r
}

func TestSearchListingsEmptyQueryRedirects(t *testing.T) {
	r := newSearchEngine(nil)

	for _, target := range []string{"/listings/search", "/listings/search?q=", "/listings/search?q=%20%20"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))

		if w.Code != http.StatusFound {
			t.Errorf("%s: status = %d, want 302", target, w.Code)
		}
		if got := w.Header().Get("Location"); got != "/listings" {
			t.Errorf("%s: Location = %q, want /listings", target, got)
		}
	}
}

func TestSearchListingsRetrievalErrorRendersEmpty(t *testing.T) {
	repo := &brokenListingRepo{err: errors.New("cursor timeout")}
	ls := services.NewListingService(repo, nil, nil, nil)
	r := newSearchEngine(ls)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/listings/search?q=beach", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Listings  []json.RawMessage `json:"listings"`
			Popular   []json.RawMessage `json:"popular"`
			NoResults bool              `json:"no_results"`
			Query     string            `json:"query"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if !body.Success {
		t.Error("success = false, a failed search should still render")
	}
	if !body.Data.NoResults {
		t.Error("no_results not set")
	}
	if len(body.Data.Listings) != 0 || len(body.Data.Popular) != 0 {
		t.Errorf("listings = %d, popular = %d, want empty sets", len(body.Data.Listings), len(body.Data.Popular))
	}
}
