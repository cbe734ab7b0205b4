// Command seed wipes the listings collection and loads the sample data
// set, stamping every listing with the given owner.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/wanderlust-travel/api/internal/config"
	"github.com/wanderlust-travel/api/internal/connect"
	"github.com/wanderlust-travel/api/internal/models"
)

func main() {
	dataPath := flag.String("data", "data/listings.json", "path to the sample listings file")
	ownerHex := flag.String("owner", "", "object id of the user who will own the seeded listings")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	_ = godotenv.Load(".env.local")
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	owner, err := primitive.ObjectIDFromHex(*ownerHex)
	if err != nil {
		logger.Error("A valid -owner object id is required", "error", err)
		os.Exit(1)
	}

	raw, err := os.ReadFile(*dataPath)
	if err != nil {
		logger.Error("Failed to read sample data", "path", *dataPath, "error", err)
		os.Exit(1)
	}

	var listings []models.Listing
	if err := json.Unmarshal(raw, &listings); err != nil {
		logger.Error("Failed to parse sample data", "error", err)
		os.Exit(1)
	}

	client, err := connect.MongoDBConnect(cfg.MongoDBURI)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := connect.MongoDBDisconnect(); err != nil {
			logger.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	col := client.Database(models.DbName).Collection(models.ListingColName)

	deleted, err := col.DeleteMany(ctx, bson.M{})
	if err != nil {
		logger.Error("Failed to clear listings", "error", err)
		os.Exit(1)
	}

	docs := make([]interface{}, 0, len(listings))
	for i := range listings {
		l := &listings[i]
		l.Owner = owner
		if l.Reviews == nil {
			l.Reviews = []primitive.ObjectID{}
		}
		if err := l.BeforeCreate(); err != nil {
			logger.Error("Failed to prepare listing", "title", l.Title, "error", err)
			os.Exit(1)
		}
		docs = append(docs, l)
	}

	if _, err := col.InsertMany(ctx, docs); err != nil {
		logger.Error("Failed to insert listings", "error", err)
		os.Exit(1)
	}

	logger.Info("Seed complete", "removed", deleted.DeletedCount, "inserted", len(docs))
}
