package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/wanderlust-travel/api/internal/container"
	"github.com/wanderlust-travel/api/internal/handlers"
	"github.com/wanderlust-travel/api/internal/middleware"
)

const authRateLimit = 5

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(c *container.Container) *gin.Engine {
	if c.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(c.Logger))
	r.Use(middleware.ErrorHandler(c.Logger))
	r.Use(gin.Recovery())

	r.GET("/", func(ctx *gin.Context) {
		ctx.Redirect(302, "/listings")
	})

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{
			"status":  "OK",
			"service": "wanderlust-api",
		})
	})

	requireAuth := middleware.RequireAuth(c.UserService, c.Flash)
	requireOwner := middleware.RequireListingOwner(c.ListingService, c.Flash)
	requireAuthor := middleware.RequireReviewAuthor(c.ReviewService, c.Flash)
	authLimiter := middleware.RateLimiter(c.RedisClient, authRateLimit)
	secure := c.Config.IsProduction()

	users := r.Group("/users")
	{
		users.GET("/signup", handlers.SignupForm(c.Flash))
		users.POST("/signup", authLimiter, handlers.Signup(c.UserService, c.Flash, secure))
		users.GET("/login", middleware.SaveRedirectURL(c.Flash), handlers.LoginForm(c.Flash))
		users.POST("/login", authLimiter, handlers.Login(c.UserService, c.Flash, secure))
		users.POST("/logout", handlers.Logout(c.UserService, c.Flash, secure))
		users.GET("/profile", requireAuth, handlers.Profile(c.UserService))
	}

	listings := r.Group("/listings")
	{
		listings.GET("", handlers.ListListings(c.ListingService, c.Flash))
		listings.GET("/search", handlers.SearchListings(c.ListingService, c.Flash))
		listings.GET("/country/:country", handlers.CountryPage(c.ListingService, c.Flash))
		listings.GET("/new", requireAuth, handlers.NewListingForm(c.Flash))
		listings.POST("", requireAuth, handlers.CreateListing(c.ListingService, c.Flash))
		listings.GET("/:id", handlers.ShowListing(c.ListingService, c.Flash))
		listings.GET("/:id/edit", requireAuth, requireOwner, handlers.EditListingForm(c.ListingService, c.Flash))
		listings.PUT("/:id", requireAuth, requireOwner, middleware.ValidateListing(), handlers.UpdateListing(c.ListingService, c.Flash))
		listings.DELETE("/:id", requireAuth, requireOwner, handlers.DeleteListing(c.ListingService, c.Flash))

		listings.POST("/:id/reviews", requireAuth, middleware.ValidateReview(), handlers.CreateReview(c.ReviewService, c.Flash))
		listings.DELETE("/:id/reviews/:reviewId", requireAuth, requireAuthor, handlers.DeleteReview(c.ReviewService, c.Flash))
	}

	payment := r.Group("/payment")
	payment.Use(requireAuth, middleware.RateLimiter(c.RedisClient, authRateLimit))
	{
		payment.POST("/create-order", handlers.CreateOrder(c.PaymentService))
	}

	return r
}
