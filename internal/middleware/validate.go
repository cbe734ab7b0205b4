package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/models"
)

const (
	listingInputKey = "listing_input"
	reviewInputKey  = "review_input"
)

// ValidateListing binds and validates a listing payload before the
// handler runs. Failures short-circuit with a 400-class error carrying
// the aggregated field messages.
func ValidateListing() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ListingInput
		if err := c.ShouldBind(&input); err != nil {
			c.Error(apperr.Validation(err.Error()))
			c.Abort()
			return
		}

		if msg, ok := models.ValidateStruct(&input); !ok {
			c.Error(apperr.Validation(msg))
			c.Abort()
			return
		}

		c.Set(listingInputKey, input)
		c.Next()
	}
}

// ValidateReview binds and validates a review payload the same way.
func ValidateReview() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.ReviewInput
		if err := c.ShouldBind(&input); err != nil {
			c.Error(apperr.Validation(err.Error()))
			c.Abort()
			return
		}

		if msg, ok := models.ValidateStruct(&input); !ok {
			c.Error(apperr.Validation(msg))
			c.Abort()
			return
		}

		c.Set(reviewInputKey, input)
		c.Next()
	}
}

// ListingInput returns the payload bound by ValidateListing.
func ListingInput(c *gin.Context) (models.ListingInput, bool) {
	v, exists := c.Get(listingInputKey)
	if !exists {
		return models.ListingInput{}, false
	}
	input, ok := v.(models.ListingInput)
	return input, ok
}

// ReviewInput returns the payload bound by ValidateReview.
func ReviewInput(c *gin.Context) (models.ReviewInput, bool) {
	v, exists := c.Get(reviewInputKey)
	if !exists {
		return models.ReviewInput{}, false
	}
	input, ok := v.(models.ReviewInput)
	return input, ok
}
