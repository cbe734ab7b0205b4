package models

import (
	"context"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicateEmail reports a signup against an already registered email.
var ErrDuplicateEmail = errors.New("a user with that email already exists")

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	if err := user.BeforeCreate(); err != nil {
		return nil, errors.Wrap(err, "failed to prepare user for creation")
	}

	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	existing := col.FindOne(ctx, bson.M{"email": user.Email})
	if existing.Err() == nil {
		return nil, ErrDuplicateEmail
	}
	if existing.Err() != mongo.ErrNoDocuments {
		return nil, errors.Wrap(existing.Err(), "error checking for existing user")
	}

	if _, err := col.InsertOne(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to insert user")
	}
	return user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var user User
	err = col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error finding user")
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	var user User
	err = col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "error finding user")
	}
	return &user, nil
}

func (mdb *MongodbRepo) getUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*User, error) {
	if len(ids) == 0 {
		return []*User{}, nil
	}

	col, err := mdb.GetCollection(ctx, DbName, UserColName)
	if err != nil {
		return nil, errors.Wrap(err, "error getting collection")
	}

	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, errors.Wrap(err, "error finding users")
	}
	defer cursor.Close(ctx)

	users := []*User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, errors.Wrap(err, "error decoding users")
	}
	return users, nil
}
