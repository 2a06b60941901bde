package invitations

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/relife-app/relife-backend/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InvitationRepositoryInterface is the interface for an InvitationRepository
type InvitationRepositoryInterface interface {
	Add(ctx context.Context, invitation *Invitation) error
	FindByID(ctx context.Context, invitationID string) (*Invitation, error)
	FindAllByInvitee(ctx context.Context, inviteeUserID string) ([]Invitation, error)
	FindAcceptedGoalIDs(ctx context.Context, inviteeUserID string) ([]string, error)
	Update(ctx context.Context, invitation *Invitation) error
	Remove(ctx context.Context, invitationID string) error
}

// InvitationRepository does everything related to invitation storing
type InvitationRepository struct {
	DB     *mongo.Collection
	Logger logger.Interface
}

// Add adds an invitation
func (s InvitationRepository) Add(ctx context.Context, invitation *Invitation) error {
	invitation.ID = primitive.NewObjectID()
	invitation.CreatedAt = time.Now()
	_, err := s.DB.InsertOne(ctx, invitation)
	if err != nil {
		return errors.Wrap(err, "problem inserting invitation")
	}

	return nil
}

// FindByID finds an invitation by its id
func (s InvitationRepository) FindByID(ctx context.Context, invitationID string) (*Invitation, error) {
	objectID, err := primitive.ObjectIDFromHex(invitationID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid invitation id %s", invitationID)
	}

	var invitation = Invitation{}
	result := s.DB.FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&invitation)
	if err != nil {
		return nil, err
	}
	return &invitation, nil
}

// FindAllByInvitee finds all invitations addressed to a user, newest first
func (s InvitationRepository) FindAllByInvitee(ctx context.Context, inviteeUserID string) ([]Invitation, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})

	cursor, err := s.DB.Find(ctx, bson.M{"inviteeUserId": inviteeUserID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "problem querying invitations")
	}

	invitations := []Invitation{}
	err = cursor.All(ctx, &invitations)
	if err != nil {
		return nil, err
	}
	return invitations, nil
}

// FindAcceptedGoalIDs finds the goal ids of all accepted invitations of a user
func (s InvitationRepository) FindAcceptedGoalIDs(ctx context.Context, inviteeUserID string) ([]string, error) {
	cursor, err := s.DB.Find(ctx, bson.M{"inviteeUserId": inviteeUserID, "status": StatusAccepted})
	if err != nil {
		return nil, errors.Wrap(err, "problem querying accepted invitations")
	}

	invitations := []Invitation{}
	err = cursor.All(ctx, &invitations)
	if err != nil {
		return nil, err
	}

	goalIDs := make([]string, 0, len(invitations))
	for _, invitation := range invitations {
		goalIDs = append(goalIDs, invitation.GoalID)
	}
	return goalIDs, nil
}

// Update rewrites an invitation document
func (s InvitationRepository) Update(ctx context.Context, invitation *Invitation) error {
	result, err := s.DB.UpdateOne(ctx, bson.M{"_id": invitation.ID}, bson.M{"$set": invitation})
	if err != nil {
		return errors.Wrap(err, "problem updating invitation")
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	return nil
}

// Remove deletes an invitation
func (s InvitationRepository) Remove(ctx context.Context, invitationID string) error {
	objectID, err := primitive.ObjectIDFromHex(invitationID)
	if err != nil {
		return errors.Wrapf(err, "invalid invitation id %s", invitationID)
	}

	result, err := s.DB.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return errors.Wrap(err, "problem deleting invitation")
	}

	if result.DeletedCount != 1 {
		return errors.New("no invitation deleted")
	}

	return nil
}
