package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/helpers"
	"github.com/wanderlust-travel/api/internal/services"
)

const userContextKey = "user"

// RequestID middleware adds a unique request ID to each request
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}

// StructuredLogger provides structured logging middleware
func StructuredLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		if raw != "" {
			path = path + "?" + raw
		}
		requestID, _ := c.Get("request_id")

		logger.Info("HTTP Request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", latency,
			"client_ip", c.ClientIP(),
		)
	}
}

// ErrorHandler surfaces errors attached to the context as one JSON error
// response, mapping the error kind to a status code. Internal details are
// logged, never returned.
func ErrorHandler(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		requestID, _ := c.Get("request_id")
		status := apperr.StatusOf(err)

		logger.Error("Request error",
			"request_id", requestID,
			"error", err.Error(),
			"status", status,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
		)

		if c.Writer.Written() {
			return
		}
		c.JSON(status, gin.H{
			"error":      apperr.MessageOf(err),
			"request_id": requestID,
		})
	}
}

// RequireAuth gates a route on an authenticated principal. Without one,
// the originally requested path is saved for redirect-after-login, a
// notice is flashed, and the request is redirected to the login entry
// point.
func RequireAuth(userService *services.UserService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		redirectToLogin := func() {
			fl.SaveRedirectURL(c, c.Request.URL.RequestURI())
			fl.Add(c, flash.NoticeError, "You must be signed in first!")
			c.Redirect(http.StatusFound, "/users/login")
			c.Abort()
		}

		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			redirectToLogin()
			return
		}

		claims, err := userService.ValidateToken(token)
		if err != nil {
			redirectToLogin()
			return
		}

		if userService.IsTokenBlacklisted(c.Request.Context(), token) {
			redirectToLogin()
			return
		}

		c.Set(userContextKey, claims)
		c.Next()
	}
}

// SaveRedirectURL exposes a pending post-login redirect path to the
// current request without clearing it.
func SaveRedirectURL(fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if url := fl.PeekRedirectURL(c); url != "" {
			c.Set("redirect_url", url)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated principal's claims, when present.
func CurrentUser(c *gin.Context) (*helpers.AuthClaims, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := v.(*helpers.AuthClaims)
	return claims, ok
}

// CurrentUserID returns the authenticated principal's id, when present.
func CurrentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	claims, ok := CurrentUser(c)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := claims.UserID()
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// RequireListingOwner gates a listing route on ownership. A missing
// listing is an explicit not-found outcome, checked before the ownership
// comparison.
func RequireListingOwner(listingService *services.ListingService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.Error(apperr.NotFound("Listing not found"))
			c.Abort()
			return
		}

		listing, err := listingService.GetListing(c.Request.Context(), listingID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		userID, ok := CurrentUserID(c)
		if !ok || listing.Owner != userID {
			fl.Add(c, flash.NoticeError, "You do not have permission to edit this listing")
			c.Redirect(http.StatusFound, "/listings/"+listingID.Hex())
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireReviewAuthor gates a review route on authorship, with the same
// explicit not-found handling as RequireListingOwner.
func RequireReviewAuthor(reviewService *services.ReviewService, fl *flash.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		listingID := c.Param("id")

		reviewID, err := primitive.ObjectIDFromHex(c.Param("reviewId"))
		if err != nil {
			c.Error(apperr.NotFound("Review not found"))
			c.Abort()
			return
		}

		review, err := reviewService.GetReview(c.Request.Context(), reviewID)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		userID, ok := CurrentUserID(c)
		if !ok || review.Author != userID {
			fl.Add(c, flash.NoticeError, "You do not have permission to delete this review")
			c.Redirect(http.StatusFound, "/listings/"+listingID)
			c.Abort()
			return
		}
		c.Next()
	}
}
