package services

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust-travel/api/internal/apperr"
	"github.com/wanderlust-travel/api/internal/helpers"
	"github.com/wanderlust-travel/api/internal/models"
)

const (
	// TokenTTL is how long an access token stays valid.
	TokenTTL = 7 * 24 * time.Hour

	bcryptCost = 12
)

type UserService struct {
	users       models.UserRepo
	redisClient *redis.Client
	tokenSecret string
}

func NewUserService(users models.UserRepo, redisClient *redis.Client, tokenSecret string) *UserService {
	return &UserService{
		users:       users,
		redisClient: redisClient,
		tokenSecret: tokenSecret,
	}
}

// Signup creates a local account and mints an access token so the user is
// signed in immediately.
func (us *UserService) Signup(ctx context.Context, input models.SignupInput) (*models.User, string, error) {
	if msg, ok := models.ValidateStruct(&input); !ok {
		return nil, "", apperr.Validation(msg)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}

	created, err := us.users.CreateUser(ctx, user)
	if errors.Is(err, models.ErrDuplicateEmail) {
		return nil, "", apperr.Validation("A user with that email already exists")
	}
	if err != nil {
		return nil, "", apperr.Internal(err)
	}

	token, err := helpers.GenerateToken(us.tokenSecret, created.ID, created.Username, created.Email, TokenTTL)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return created, token, nil
}

// Login authenticates by email and password and mints an access token.
func (us *UserService) Login(ctx context.Context, input models.LoginInput) (*models.User, string, error) {
	if msg, ok := models.ValidateStruct(&input); !ok {
		return nil, "", apperr.Validation(msg)
	}

	user, err := us.users.GetUserByEmail(ctx, input.Email)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	if user == nil {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperr.Unauthorized("Invalid email or password")
	}

	token, err := helpers.GenerateToken(us.tokenSecret, user.ID, user.Username, user.Email, TokenTTL)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return user, token, nil
}

// Logout blacklists the presented token until it would have expired.
func (us *UserService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := us.redisClient.Set(ctx, token, true, TokenTTL).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// IsTokenBlacklisted reports whether a token was invalidated by logout.
// Redis errors fail closed.
func (us *UserService) IsTokenBlacklisted(ctx context.Context, token string) bool {
	_, err := us.redisClient.Get(ctx, token).Result()
	if err == redis.Nil {
		return false
	}
	return true
}

// GetUser loads a user by id.
func (us *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := us.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

// ValidateToken verifies an access token against the configured secret.
func (us *UserService) ValidateToken(token string) (*helpers.AuthClaims, error) {
	return helpers.ValidateToken(us.tokenSecret, token)
}
