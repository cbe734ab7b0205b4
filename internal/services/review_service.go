package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/models"
)

type ReviewService struct {
	listings models.ListingRepo
	reviews  models.ReviewRepo
}

func NewReviewService(listings models.ListingRepo, reviews models.ReviewRepo) *ReviewService {
	return &ReviewService{
		listings: listings,
		reviews:  reviews,
	}
}

// CreateReview persists a review authored by authorID and appends its
// reference to the parent listing's review set.
func (rs *ReviewService) CreateReview(ctx context.Context, listingID primitive.ObjectID, authorID primitive.ObjectID, input models.ReviewInput) (*models.Review, error) {
	if msg, ok := models.ValidateStruct(&input); !ok {
		return nil, apperr.Validation(msg)
	}

	listing, err := rs.listings.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if listing == nil {
		return nil, apperr.NotFound("Listing not found")
	}

	review := &models.Review{
		Rating:  input.Rating,
		Comment: input.Comment,
		Author:  authorID,
	}

	created, err := rs.reviews.CreateReview(ctx, review)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	if err := rs.listings.PushReview(ctx, listingID, created.ID); err != nil {
		return nil, apperr.Internal(err)
	}
	return created, nil
}

// GetReview loads a review by id for authorship gating.
func (rs *ReviewService) GetReview(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	review, err := rs.reviews.GetReviewByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if review == nil {
		return nil, apperr.NotFound("Review not found")
	}
	return review, nil
}

// DeleteReview detaches the review from its parent listing and removes
// the review record. Authorship gating happens in middleware first.
func (rs *ReviewService) DeleteReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	if err := rs.listings.PullReview(ctx, listingID, reviewID); err != nil {
		return apperr.Internal(err)
	}
	if err := rs.reviews.DeleteReview(ctx, reviewID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
