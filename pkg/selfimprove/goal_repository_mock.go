package selfimprove

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockGoalRepository is an in memory GoalRepositoryInterface for tests
type MockGoalRepository struct {
	Goals []*Goal
}

// Add adds a goal
func (r *MockGoalRepository) Add(ctx context.Context, goal *Goal) error {
	goal.ID = primitive.NewObjectID()
	goal.CreatedAt = time.Now()
	r.Goals = append(r.Goals, goal)
	return nil
}

// FindAllByUser finds all goals of a user
func (r *MockGoalRepository) FindAllByUser(ctx context.Context, userID string) ([]Goal, error) {
	goals := []Goal{}
	for _, goal := range r.Goals {
		if goal.UserID == userID {
			goals = append(goals, *goal)
		}
	}

	return goals, nil
}
