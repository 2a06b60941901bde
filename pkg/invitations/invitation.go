package invitations

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Invitation statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

// Invitation links an inviter, an invitee and a goal
type Invitation struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`
	InviterUserID string             `json:"inviterUserId" bson:"inviterUserId" validate:"required"`
	InviteeUserID string             `json:"inviteeUserId" bson:"inviteeUserId" validate:"required"`
	InviteeEmail  string             `json:"inviteeEmail" bson:"inviteeEmail" validate:"required,email"`
	GoalID        string             `json:"goalId" bson:"goalId" validate:"required"`
	Status        string             `json:"status" bson:"status"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}
