package models

import "time"

const (
	UGCKindReview  = "review"
	UGCKindComment = "comment"
)

// UGContent is a review or comment a user attached to a spot.
type UGContent struct {
	ID        string    `bson:"id" json:"id"`
	Spot      string    `bson:"spot" json:"spot"`
	User      string    `bson:"user" json:"user"`
	Kind      string    `bson:"kind" json:"kind"`
	Text      string    `bson:"text" json:"text"`
	Rating    int       `bson:"rating,omitempty" json:"rating,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

type UGCCreateRequest struct {
	Spot   string `json:"spot" binding:"required"`
	Kind   string `json:"kind" binding:"required,oneof=review comment"`
	Text   string `json:"text" binding:"required"`
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
}
