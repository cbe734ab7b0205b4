package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/middleware"
	"github.com/wanderlust-travel/api/internal/services"
)

// CreateReview appends a review authored by the current principal to a
// listing. A missing parent listing redirects back to the list view with
// an error notice.
func CreateReview(rs *services.ReviewService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			fl.Add(c, flash.NoticeError, "Listing not found!")
			c.Redirect(http.StatusSeeOther, "/listings")
			return
		}

		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Error(apperr.Unauthorized("Unauthorized"))
			return
		}

		input, ok := middleware.ReviewInput(c)
		if !ok {
			c.Error(apperr.Validation("missing review payload"))
			return
		}

		if _, err := rs.CreateReview(c.Request.Context(), listingID, userID, input); err != nil {
			if apperr.IsNotFound(err) {
				fl.Add(c, flash.NoticeError, "Listing not found!")
				c.Redirect(http.StatusSeeOther, "/listings")
				return
			}
			c.Error(err)
			return
		}

		fl.Add(c, flash.NoticeSuccess, "Review added successfully")
		c.Redirect(http.StatusSeeOther, "/listings/"+listingID.Hex())
	}
}

// DeleteReview detaches a review from its listing and removes it.
// Authorship gating happens in middleware.
func DeleteReview(rs *services.ReviewService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Listing not found"))
			return
		}

		reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
		if err != nil {
			c.Error(apperr.NotFound("Review not found"))
			return
		}

		if err := rs.DeleteReview(c.Request.Context(), listingID, reviewID); err != nil {
			c.Error(err)
			return
		}

		fl.Add(c, flash.NoticeSuccess, "Review deleted successfully")
		c.Redirect(http.StatusSeeOther, "/listings/"+listingID.Hex())
	}
}
