package goals

import (
	"context"
	"errors"
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

// FindByID finds a goal by its id
func (r *MockGoalRepository) FindByID(ctx context.Context, goalID string) (*Goal, error) {
	for _, goal := range r.Goals {
		if goal.ID.Hex() == goalID {
			return goal, nil
		}
	}

	return nil, errors.New("goal not found")
}

// FindByOwner finds a goal by its id scoped to its owning user
func (r *MockGoalRepository) FindByOwner(ctx context.Context, goalID string, userID string) (*Goal, error) {
	for _, goal := range r.Goals {
		if goal.ID.Hex() == goalID && goal.UserID == userID {
			return goal, nil
		}
	}

	return nil, errors.New("goal not found")
}

// FindAllByOwner finds all goals of a user
func (r *MockGoalRepository) FindAllByOwner(ctx context.Context, userID string) ([]Goal, error) {
	goals := []Goal{}
	for _, goal := range r.Goals {
		if goal.UserID == userID {
			goals = append(goals, *goal)
		}
	}

	return goals, nil
}

// FindAllByIDs finds all goals with the given ids, skipping goals owned by excludeUserID
func (r *MockGoalRepository) FindAllByIDs(ctx context.Context, goalIDs []string, excludeUserID string) ([]Goal, error) {
	goals := []Goal{}
	for _, goal := range r.Goals {
		if goal.UserID == excludeUserID {
			continue
		}
		for _, goalID := range goalIDs {
			if goal.ID.Hex() == goalID {
				goals = append(goals, *goal)
				break
			}
		}
	}

	return goals, nil
}

// Update rewrites a goal
func (r *MockGoalRepository) Update(ctx context.Context, goal *Goal) error {
	for i, g := range r.Goals {
		if g.ID == goal.ID {
			r.Goals[i] = goal
			return nil
		}
	}

	return errors.New("goal not found")
}

// Delete deletes a goal scoped to its owning user
func (r *MockGoalRepository) Delete(ctx context.Context, goalID string, userID string) error {
	for i, g := range r.Goals {
		if g.ID.Hex() == goalID && g.UserID == userID {
			r.Goals = append(r.Goals[:i], r.Goals[i+1:]...)
			return nil
		}
	}

	return errors.New("goal not found")
}
