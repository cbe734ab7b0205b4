package models

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type ReviewRepo interface {
	CreateReview(ctx context.Context, review *Review) (*Review, error)
	GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error)
	GetReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Review, error)
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
	DeleteReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error)
}

func (mdb *MongodbRepo) CreateReview(ctx context.Context, review *Review) (*Review, error) {
	if err := review.BeforeCreate(); err != nil {
		return nil, errors.Wrap(err, "failed to prepare review for creation")
	}

	col, err := mdb.GetCollection(ctx, DbName, ReviewColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	if _, err := col.InsertOne(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to insert review")
	}
	return review, nil
}

func (mdb *MongodbRepo) GetReviewByID(ctx context.Context, id primitive.ObjectID) (*Review, error) {
	col, err := mdb.GetCollection(ctx, DbName, ReviewColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var review Review
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error finding review")
	}
	return &review, nil
}

func (mdb *MongodbRepo) GetReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*Review, error) {
	if len(ids) == 0 {
		return []*Review{}, nil
	}

	col, err := mdb.GetCollection(ctx, DbName, ReviewColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "error finding reviews")
	}
	defer cursor.Close(ctx)

	reviews := []*Review{}
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, errors.Wrap(err, "error decoding reviews")
	}
	return reviews, nil
}

func (mdb *MongodbRepo) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, DbName, ReviewColName)
	if err != nil {
		return errors.Wrap(err, "error getting collection")
	}

	_, err = col.DeleteOne(ctx, bson.M{"_id": id})
	return errors.Wrap(err, "error deleting review")
}

// DeleteReviewsByIDs removes every review referenced by a deleted listing.
func (mdb *MongodbRepo) DeleteReviewsByIDs(ctx context.Context, ids []primitive.ObjectID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	col, err := mdb.GetCollection(ctx, DbName, ReviewColName)
	if err != nil {
		return 0, errors.Wrap(err, "error getting collection")
	}

	res, err := col.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return 0, errors.Wrap(err, "error deleting reviews")
	}
	return res.DeletedCount, nil
}
