package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Rating    int                `bson:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment   string             `bson:"comment" json:"comment" validate:"required"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Author    primitive.ObjectID `bson:"author" json:"author"`
}

// ReviewInput is the bindable payload for review submission.
type ReviewInput struct {
	Rating  int    `form:"rating" json:"rating" validate:"required,min=1,max=5"`
	Comment string `form:"comment" json:"comment" validate:"required"`
}

// ReviewDetail is a review with its author populated.
type ReviewDetail struct {
	Review `bson:",inline"`

	AuthorDetail *ListingOwner `bson:"author_detail,omitempty" json:"author_detail,omitempty"`
}

func (r *Review) BeforeCreate() error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	return nil
}
