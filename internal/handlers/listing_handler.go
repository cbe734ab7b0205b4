package handlers

import (
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/middleware"
	"github.com/wanderlust-travel/api/internal/models"
	"github.com/wanderlust-travel/api/internal/services"
)

// formFile opens the single uploaded file, when one was submitted.
// The caller owns the returned closer.
func formFile(c *gin.Context, field string) (multipart.File, func(), error) {
	header, err := c.FormFile(field)
	if err != nil {
		// No file is a valid input.
		return nil, func() {}, nil
	}
	file, err := header.Open()
	if err != nil {
		return nil, func() {}, err
	}
	return file, func() { file.Close() }, nil
}

// ListListings renders the listing collection plus the popular projection.
func ListListings(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, popular, err := ls.ListListings(c.Request.Context())
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"listings": all,
			"popular":  popular,
		}, fl.Pop(c)))
	}
}

// SearchListings matches a free-text query across title, description,
// location and country. An empty query redirects to the unfiltered list;
// retrieval errors render empty result sets instead of propagating.
func SearchListings(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.Redirect(http.StatusFound, "/listings")
			return
		}

		results, popular, err := ls.SearchListings(c.Request.Context(), query)
		if err != nil {
			c.JSON(http.StatusOK, models.ViewResponse(gin.H{
				"listings":   []*models.Listing{},
				"popular":    []*models.Listing{},
				"no_results": true,
				"query":      "",
			}, fl.Pop(c)))
			return
		}

		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"listings":   results,
			"popular":    popular,
			"no_results": len(results) == 0,
			"query":      query,
		}, fl.Pop(c)))
	}
}

// CountryPage renders listings for one country with its hero image.
func CountryPage(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := ls.CountryListings(c.Request.Context(), c.Param("country"))
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.ViewResponse(view, fl.Pop(c)))
	}
}

// NewListingForm renders the create form context.
func NewListingForm(fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"view": "listings/new",
		}, fl.Pop(c)))
	}
}

// CreateListing runs the creation workflow: geocode, image resolution,
// validation, persistence, then a redirect to the new detail view.
func CreateListing(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Error(apperr.Unauthorized("Unauthorized"))
			return
		}

		var input models.ListingInput
		if err := c.ShouldBind(&input); err != nil {
			c.Error(apperr.Validation(err.Error()))
			return
		}

		file, closeFile, err := formFile(c, "image")
		if err != nil {
			c.Error(apperr.Internal(err))
			return
		}
		defer closeFile()

		listing, err := ls.CreateListing(c.Request.Context(), input, file, userID)
		if err != nil {
			c.Error(err)
			return
		}

		fl.Add(c, flash.NoticeSuccess, "Successfully made a new listing!")
		c.Redirect(http.StatusSeeOther, "/listings/"+listing.ID.Hex())
	}
}

// ShowListing renders one listing with reviews, their authors and the
// owner populated.
func ShowListing(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Listing not found"))
			return
		}

		detail, err := ls.GetListingDetail(c.Request.Context(), id)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"listing": detail,
		}, fl.Pop(c)))
	}
}

// EditListingForm renders the edit form pre-filled. Ownership gating has
// already happened in middleware.
func EditListingForm(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Cannot edit: Listing not found"))
			return
		}

		listing, err := ls.GetListing(c.Request.Context(), id)
		if err != nil {
			c.Error(err)
			return
		}

		c.JSON(http.StatusOK, models.ViewResponse(gin.H{
			"view":    "listings/edit",
			"listing": listing,
		}, fl.Pop(c)))
	}
}

// UpdateListing merges the validated payload into the listing and
// replaces the image when a new file was uploaded.
func UpdateListing(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Listing not found"))
			return
		}

		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.Error(apperr.Unauthorized("Unauthorized"))
			return
		}

		input, ok := middleware.ListingInput(c)
		if !ok {
			c.Error(apperr.Validation("missing listing payload"))
			return
		}

		file, closeFile, err := formFile(c, "image")
		if err != nil {
			c.Error(apperr.Internal(err))
			return
		}
		defer closeFile()

		if _, err := ls.UpdateListing(c.Request.Context(), id, userID, input, file); err != nil {
			if apperr.KindOf(err) == apperr.KindForbidden {
				fl.Add(c, flash.NoticeError, apperr.MessageOf(err))
				c.Redirect(http.StatusSeeOther, "/listings/"+id.Hex())
				return
			}
			c.Error(err)
			return
		}

		fl.Add(c, flash.NoticeSuccess, "Listing updated successfully!")
		c.Redirect(http.StatusSeeOther, "/listings/"+id.Hex())
	}
}

// DeleteListing removes a listing and cascades to its reviews.
func DeleteListing(ls *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Cannot delete: Listing not found"))
			return
		}

		if err := ls.DeleteListing(c.Request.Context(), id); err != nil {
			c.Error(err)
			return
		}

		fl.Add(c, flash.NoticeSuccess, "Listing deleted successfully")
		c.Redirect(http.StatusSeeOther, "/listings")
	}
}
