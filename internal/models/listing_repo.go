package models

import (
	"context"
	"regexp"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ListingRepo interface {
	CreateListing(ctx context.Context, listing *Listing) (*Listing, error)
	GetListingByID(ctx context.Context, id primitive.ObjectID) (*Listing, error)
	GetListingDetail(ctx context.Context, id primitive.ObjectID) (*ListingDetail, error)
	ListListings(ctx context.Context) ([]*Listing, error)
	SearchListings(ctx context.Context, query string) ([]*Listing, error)
	SampleListings(ctx context.Context, limit int64) ([]*Listing, error)
	ListListingsByCountry(ctx context.Context, country string) ([]*Listing, error)
	UpdateListing(ctx context.Context, id primitive.ObjectID, input ListingInput) (*Listing, error)
	ReplaceListingImage(ctx context.Context, id primitive.ObjectID, image Image) error
	PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
	PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error
	DeleteListing(ctx context.Context, id primitive.ObjectID) (*Listing, error)
}

func (mdb *MongodbRepo) CreateListing(ctx context.Context, listing *Listing) (*Listing, error) {
	if err := listing.BeforeCreate(); err != nil {
		return nil, errors.Wrap(err, "failed to prepare listing for creation")
	}

	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	if _, err := col.InsertOne(ctx, listing); err != nil {
		return nil, errors.Wrap(err, "failed to insert listing")
	}
	return listing, nil
}

func (mdb *MongodbRepo) GetListingByID(ctx context.Context, id primitive.ObjectID) (*Listing, error) {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var listing Listing
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&listing)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error finding listing")
	}
	return &listing, nil
}

// GetListingDetail loads a listing with its reviews, the review authors
// and the owner populated.
func (mdb *MongodbRepo) GetListingDetail(ctx context.Context, id primitive.ObjectID) (*ListingDetail, error) {
	listing, err := mdb.GetListingByID(ctx, id)
	if err != nil || listing == nil {
		return nil, err
	}

	detail := &ListingDetail{Listing: *listing, ReviewDetails: []*ReviewDetail{}}

	reviews, err := mdb.GetReviewsByIDs(ctx, listing.Reviews)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]primitive.ObjectID, 0, len(reviews)+1)
	authorIDs = append(authorIDs, listing.Owner)
	for _, r := range reviews {
		authorIDs = append(authorIDs, r.Author)
	}

	users, err := mdb.getUsersByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*ListingOwner, len(users))
	for _, u := range users {
		byID[u.ID] = &ListingOwner{ID: u.ID, Username: u.Username, Email: u.Email}
	}

	detail.OwnerDetail = byID[listing.Owner]
	for _, r := range reviews {
		detail.ReviewDetails = append(detail.ReviewDetails, &ReviewDetail{
			Review:       *r,
			AuthorDetail: byID[r.Author],
		})
	}
	return detail, nil
}

func (mdb *MongodbRepo) ListListings(ctx context.Context) ([]*Listing, error) {
	return mdb.findListings(ctx, bson.M{}, nil)
}

// SearchListings matches the query case-insensitively against title,
// description, location and country.
func (mdb *MongodbRepo) SearchListings(ctx context.Context, query string) ([]*Listing, error) {
	regex := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{
		"$or": []bson.M{
			{"title": regex},
			{"description": regex},
			{"location": regex},
			{"country": regex},
		},
	}
	return mdb.findListings(ctx, filter, nil)
}

func (mdb *MongodbRepo) SampleListings(ctx context.Context, limit int64) ([]*Listing, error) {
	opts := options.Find().SetLimit(limit)
	return mdb.findListings(ctx, bson.M{}, opts)
}

func (mdb *MongodbRepo) ListListingsByCountry(ctx context.Context, country string) ([]*Listing, error) {
	return mdb.findListings(ctx, bson.M{"country": country}, nil)
}

func (mdb *MongodbRepo) findListings(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Listing, error) {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var cursor *mongo.Cursor
	if opts != nil {
		cursor, err = col.Find(ctx, filter, opts)
	} else {
		cursor, err = col.Find(ctx, filter)
	}
	if err != nil {
		return nil, errors.Wrap(err, "error finding listings")
	}
	defer cursor.Close(ctx)

	listings := []*Listing{}
	if err := cursor.All(ctx, &listings); err != nil {
		return nil, errors.Wrap(err, "error decoding listings")
	}
	return listings, nil
}

// UpdateListing overwrites the submitted fields and returns the updated
// document, or nil when no listing matched.
func (mdb *MongodbRepo) UpdateListing(ctx context.Context, id primitive.ObjectID, input ListingInput) (*Listing, error) {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	update := bson.M{"$set": bson.M{
		"title":       input.Title,
		"description": input.Description,
		"price":       input.Price,
		"location":    input.Location,
		"country":     input.Country,
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated Listing
	err = col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error updating listing")
	}
	return &updated, nil
}

func (mdb *MongodbRepo) ReplaceListingImage(ctx context.Context, id primitive.ObjectID, image Image) error {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return errors.Wrap(err, "error getting collection")
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"image": image}})
	return errors.Wrap(err, "error replacing listing image")
}

func (mdb *MongodbRepo) PushReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return errors.Wrap(err, "error getting collection")
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$push": bson.M{"reviews": reviewID}})
	return errors.Wrap(err, "error pushing review onto listing")
}

func (mdb *MongodbRepo) PullReview(ctx context.Context, listingID, reviewID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return errors.Wrap(err, "error getting collection")
	}

	_, err = col.UpdateOne(ctx, bson.M{"_id": listingID}, bson.M{"$pull": bson.M{"reviews": reviewID}})
	return errors.Wrap(err, "error pulling review from listing")
}

// DeleteListing removes the listing and returns the deleted document so
// the caller can cascade-delete its reviews. Returns nil when no listing
// matched.
func (mdb *MongodbRepo) DeleteListing(ctx context.Context, id primitive.ObjectID) (*Listing, error) {
	col, err := mdb.GetCollection(ctx, DbName, ListingColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var deleted Listing
	err = col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error deleting listing")
	}
	return &deleted, nil
}

