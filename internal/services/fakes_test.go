package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/geocode"
	"github.com/wanderlust-travel/api/internal/models"
)

// In-memory doubles for the repository and collaborator interfaces.

var errInsert = fmt.Errorf("insert failed")

type fakeListingRepo struct {
	listings map[primitive.ObjectID]*models.Listing
	order    []primitive.ObjectID

	createErr error
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: map[primitive.ObjectID]*models.Listing{}}
}

func (r *fakeListingRepo) add(l *models.Listing) *models.Listing {
	if l.ID.IsZero() {
		l.ID = primitive.NewObjectID()
	}
	if l.Reviews == nil {
		l.Reviews = []primitive.ObjectID{}
	}
	r.listings[l.ID] = l
	r.order = append(r.order, l.ID)
	return l
}

func (r *fakeListingRepo) CreateListing(ctx context.Context, listing *models.Listing) (*models.Listing, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if err := listing.BeforeCreate(); err != nil {
		return nil, err
	}
	return r.add(listing), nil
}

func (r *fakeListingRepo) GetListingByID(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	return r.listings[id], nil
}

func (r *fakeListingRepo) GetListingDetail(ctx context.Context, id primitive.ObjectID) (*models.ListingDetail, error) {
	l := r.listings[id]
	if l == nil {
		return nil, nil
	}
	return &models.ListingDetail{Listing: *l, ReviewDetails: []*models.ReviewDetail{}}, nil
}

func (r *fakeListingRepo) ListListings(ctx context.Context) ([]*models.Listing, error) {
	out := make([]*models.Listing, 0, len(r.order))
	for _, id := range r.order {
		if l, ok := r.listings[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) SearchListings(ctx context.Context, query string) ([]*models.Listing, error) {
	all, _ := r.ListListings(ctx)
	out := []*models.Listing{}
	for _, l := range all {
		if containsFold(l.Title, query) || containsFold(l.Description, query) ||
			containsFold(l.Location, query) || containsFold(l.Country, query) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) SampleListings(ctx context.Context, limit int64) ([]*models.Listing, error) {
	all, _ := r.ListListings(ctx)
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *fakeListingRepo) ListListingsByCountry(ctx context.Context, country string) ([]*models.Listing, error) {
	all, _ := r.ListListings(ctx)
	out := []*models.Listing{}
	for _, l := range all {
		if l.Country == country {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeListingRepo) UpdateListing(ctx context.Context, id primitive.ObjectID, input models.ListingInput) (*models.Listing, error) {
	l := r.listings[id]
	if l == nil {
		return nil, nil
	}
	l.Title = input.Title
	l.Description = input.Description
	l.Price = input.Price
	l.Location = input.Location
	l.Country = input.Country
	return l, nil
}

func (r *fakeListingRepo) ReplaceListingImage(ctx context.Context, id primitive.ObjectID, image models.Image) error {
	l := r.listings[id]
	if l == nil {
		return fmt.Errorf("listing %s not found", id.Hex())
	}
	l.Image = image
	return nil
}

func (r *fakeListingRepo) PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	l := r.listings[listingID]
	if l == nil {
		return fmt.Errorf("listing %s not found", listingID.Hex())
	}
	l.Reviews = append(l.Reviews, reviewID)
	return nil
}

func (r *fakeListingRepo) PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	l := r.listings[listingID]
	if l == nil {
		return fmt.Errorf("listing %s not found", listingID.Hex())
	}
	kept := l.Reviews[:0]
	for _, id := range l.Reviews {
		if id != reviewID {
			kept = append(kept, id)
		}
	}
	l.Reviews = kept
	return nil
}

func (r *fakeListingRepo) DeleteListing(ctx context.Context, id primitive.ObjectID) (*models.Listing, error) {
	l := r.listings[id]
	if l == nil {
		return nil, nil
	}
	delete(r.listings, id)
	return l, nil
}

type fakeReviewRepo struct {
	reviews map[primitive.ObjectID]*models.Review

	deletedByIDs [][]primitive.ObjectID
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: map[primitive.ObjectID]*models.Review{}}
}

func (r *fakeReviewRepo) CreateReview(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := review.BeforeCreate(); err != nil {
		return nil, err
	}
	r.reviews[review.ID] = review
	return review, nil
}

func (r *fakeReviewRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	return r.reviews[id], nil
}

func (r *fakeReviewRepo) GetReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*models.Review, error) {
	out := []*models.Review{}
	for _, id := range ids {
		if rv, ok := r.reviews[id]; ok {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	delete(r.reviews, id)
	return nil
}

func (r *fakeReviewRepo) DeleteReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	r.deletedByIDs = append(r.deletedByIDs, ids)
	var n int64
	for _, id := range ids {
		if _, ok := r.reviews[id]; ok {
			delete(r.reviews, id)
			n++
		}
	}
	return n, nil
}

type fakeGeocoder struct {
	features []geocode.Feature
	err      error

	calls   int
	queries []string
}

func (g *fakeGeocoder) Forward(ctx context.Context, query string, limit int) ([]geocode.Feature, error) {
	g.calls++
	g.queries = append(g.queries, query)
	if g.err != nil {
		return nil, g.err
	}
	return g.features, nil
}

type fakeUploader struct {
	url      string
	filename string
	err      error

	uploads   int
	destroyed []string
}

func (u *fakeUploader) Upload(ctx context.Context, file io.Reader) (string, string, error) {
	u.uploads++
	if u.err != nil {
		return "", "", u.err
	}
	return u.url, u.filename, nil
}

func (u *fakeUploader) Destroy(ctx context.Context, filename string) error {
	u.destroyed = append(u.destroyed, filename)
	return nil
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
