package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

var Validate = validator.New()

const (
	DbName         = "wanderlust"
	ListingColName = "listings"
	ReviewColName  = "reviews"
	UserColName    = "users"
)

// ValidateStruct runs the schema validators over v and aggregates every
// field failure into one comma-joined message.
func ValidateStruct(v interface{}) (string, bool) {
	err := Validate.Struct(v)
	if err == nil {
		return "", true
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error(), false
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("%q is required", strings.ToLower(fe.Field())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%q must be at least %s", strings.ToLower(fe.Field()), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%q must be at most %s", strings.ToLower(fe.Field()), fe.Param()))
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%q must be greater than or equal to %s", strings.ToLower(fe.Field()), fe.Param()))
		case "email":
			msgs = append(msgs, fmt.Sprintf("%q must be a valid email address", strings.ToLower(fe.Field())))
		default:
			msgs = append(msgs, fmt.Sprintf("%q failed on %q", strings.ToLower(fe.Field()), fe.Tag()))
		}
	}
	return strings.Join(msgs, ", "), false
}

type MongodbRepo struct {
	mongodbClient *mongo.Client
}

func MongodbNewRepo(mongodbClient *mongo.Client) *MongodbRepo {
	return &MongodbRepo{
		mongodbClient: mongodbClient,
	}
}

func (mdb *MongodbRepo) GetCollection(ctx context.Context, dbName, colName string) (*mongo.Collection, error) {
	if mdb.mongodbClient == nil {
		return nil, fmt.Errorf("mongodb client is not initialized")
	}
	col := mdb.mongodbClient.Database(dbName).Collection(colName)
	return col, nil
}
