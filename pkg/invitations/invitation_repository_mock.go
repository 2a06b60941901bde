package invitations

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockInvitationRepository is an in memory InvitationRepositoryInterface for tests
type MockInvitationRepository struct {
	Invitations []*Invitation
}

// Add adds an invitation
func (r *MockInvitationRepository) Add(ctx context.Context, invitation *Invitation) error {
	invitation.ID = primitive.NewObjectID()
	invitation.CreatedAt = time.Now()
	r.Invitations = append(r.Invitations, invitation)
	return nil
}

// FindByID finds an invitation by its id
func (r *MockInvitationRepository) FindByID(ctx context.Context, invitationID string) (*Invitation, error) {
	for _, invitation := range r.Invitations {
		if invitation.ID.Hex() == invitationID {
			return invitation, nil
		}
	}

	return nil, errors.New("invitation not found")
}

// FindAllByInvitee finds all invitations addressed to a user
func (r *MockInvitationRepository) FindAllByInvitee(ctx context.Context, inviteeUserID string) ([]Invitation, error) {
	invitations := []Invitation{}
	for _, invitation := range r.Invitations {
		if invitation.InviteeUserID == inviteeUserID {
			invitations = append(invitations, *invitation)
		}
	}

	return invitations, nil
}

// FindAcceptedGoalIDs finds the goal ids of all accepted invitations of a user
func (r *MockInvitationRepository) FindAcceptedGoalIDs(ctx context.Context, inviteeUserID string) ([]string, error) {
	goalIDs := []string{}
	for _, invitation := range r.Invitations {
		if invitation.InviteeUserID == inviteeUserID && invitation.Status == StatusAccepted {
			goalIDs = append(goalIDs, invitation.GoalID)
		}
	}

	return goalIDs, nil
}

// Update rewrites an invitation
func (r *MockInvitationRepository) Update(ctx context.Context, invitation *Invitation) error {
	for i, inv := range r.Invitations {
		if inv.ID == invitation.ID {
			r.Invitations[i] = invitation
			return nil
		}
	}

	return errors.New("invitation not found")
}

// Remove deletes an invitation
func (r *MockInvitationRepository) Remove(ctx context.Context, invitationID string) error {
	for i, inv := range r.Invitations {
		if inv.ID.Hex() == invitationID {
			r.Invitations = append(r.Invitations[:i], r.Invitations[i+1:]...)
			return nil
		}
	}

	return errors.New("invitation not found")
}
