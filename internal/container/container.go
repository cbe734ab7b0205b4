package container

import (
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/wanderlust-travel/api/internal/config"
	"github.com/wanderlust-travel/api/internal/flash"
	"github.com/wanderlust-travel/api/internal/geocode"
	"github.com/wanderlust-travel/api/internal/models"
	"github.com/wanderlust-travel/api/internal/services"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *slog.Logger
	Cloudinary *cloudinary.Cloudinary
	// Database clients
	MongoDBClient *mongo.Client
	RedisClient   *redis.Client

	Flash          *flash.Store
	ListingService *services.ListingService
	ReviewService  *services.ReviewService
	UserService    *services.UserService
	PaymentService *services.PaymentService
}

// NewContainer creates a new dependency injection container
func NewContainer(
	cfg *config.Config,
	logger *slog.Logger,
	cld *cloudinary.Cloudinary,
	mongoDBClient *mongo.Client,
	redisClient *redis.Client,
) (*Container, error) {
	geocoder, err := geocode.NewClient(cfg.MapboxToken)
	if err != nil {
		return nil, err
	}

	// Initialize repositories
	repo := models.MongodbNewRepo(mongoDBClient)

	uploader := services.NewCloudinaryUploader(cld)
	listingService := services.NewListingService(repo, repo, geocoder, uploader)
	reviewService := services.NewReviewService(repo, repo)
	userService := services.NewUserService(repo, redisClient, cfg.JWTSecret)
	paymentService := services.NewPaymentService(cfg.StripeKey)

	return &Container{
		Config:         cfg,
		Logger:         logger,
		Cloudinary:     cld,
		MongoDBClient:  mongoDBClient,
		RedisClient:    redisClient,
		Flash:          flash.NewStore(cfg.SessionSecret, cfg.IsProduction()),
		ListingService: listingService,
		ReviewService:  reviewService,
		UserService:    userService,
		PaymentService: paymentService,
	}, nil
}
