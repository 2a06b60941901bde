package selfimprove

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal is the model for a self-improvement goal
type Goal struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	UserID         string             `json:"userId" bson:"userId" validate:"required"`
	SkillName      string             `json:"skillName" bson:"skillName" validate:"required"`
	Subtopic       string             `json:"subtopic" bson:"subtopic" validate:"required"`
	SuggestiveTime float64            `json:"suggestiveTime" bson:"suggestiveTime" validate:"required,gt=0"`
	InstructorName string             `json:"instructorName" bson:"instructorName" validate:"required"`
	SponsorBy      string             `json:"sponsorBy" bson:"sponsorBy" validate:"required"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
}
