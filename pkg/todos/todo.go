package todos

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Todo statuses
const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// Todo is the model for a to-do item
type Todo struct {
	ID              primitive.ObjectID `json:"id" bson:"_id"`
	UserID          string             `json:"userId" bson:"userId" validate:"required"`
	WorkName        string             `json:"workName" bson:"workName" validate:"required"`
	Time            time.Time          `json:"time" bson:"time" validate:"required"`
	OtherMemberName []string           `json:"otherMemberName" bson:"otherMemberName"`
	Type            string             `json:"type" bson:"type" validate:"required,oneof=personal group academic"`
	Other           string             `json:"other" bson:"other"`
	Status          string             `json:"status" bson:"status"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
}
