package goals

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

// GoalRepositoryInterface is the interface for a GoalRepository
type GoalRepositoryInterface interface {
	Add(ctx context.Context, goal *Goal) error
	FindByID(ctx context.Context, goalID string) (*Goal, error)
	FindByOwner(ctx context.Context, goalID string, userID string) (*Goal, error)
	FindAllByOwner(ctx context.Context, userID string) ([]Goal, error)
	FindAllByIDs(ctx context.Context, goalIDs []string, excludeUserID string) ([]Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, goalID string, userID string) error
}

// GoalRepository does everything related to goal storing
type GoalRepository struct {
	DB     *mongo.Collection
	Logger logger.Interface
}

// Add adds a goal
func (s GoalRepository) Add(ctx context.Context, goal *Goal) error {
	goal.ID = primitive.NewObjectID()
	goal.CreatedAt = time.Now()
	_, err := s.DB.InsertOne(ctx, goal)
	if err != nil {
		return errors.Wrap(err, "problem inserting goal")
	}

	return nil
}

// FindByID finds a goal by its id
func (s GoalRepository) FindByID(ctx context.Context, goalID string) (*Goal, error) {
	objectID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid goal id %s", goalID)
	}

	var goal = Goal{}
	result := s.DB.FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindByOwner finds a goal by its id scoped to its owning user
func (s GoalRepository) FindByOwner(ctx context.Context, goalID string, userID string) (*Goal, error) {
	objectID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid goal id %s", goalID)
	}

	var goal = Goal{}
	result := s.DB.FindOne(ctx, bson.M{"_id": objectID, "userId": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&goal)
	if err != nil {
		return nil, err
	}
	return &goal, nil
}

// FindAllByOwner finds all goals of a user, newest first
func (s GoalRepository) FindAllByOwner(ctx context.Context, userID string) ([]Goal, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})

	cursor, err := s.DB.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "problem querying goals")
	}

	goals := []Goal{}
	err = cursor.All(ctx, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// FindAllByIDs finds all goals with the given ids, skipping goals owned by excludeUserID
func (s GoalRepository) FindAllByIDs(ctx context.Context, goalIDs []string, excludeUserID string) ([]Goal, error) {
	objectIDs := make([]primitive.ObjectID, 0, len(goalIDs))
	for _, goalID := range goalIDs {
		objectID, err := primitive.ObjectIDFromHex(goalID)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}

	if len(objectIDs) == 0 {
		return []Goal{}, nil
	}

	cursor, err := s.DB.Find(ctx, bson.M{
		"_id":    bson.M{"$in": objectIDs},
		"userId": bson.M{"$ne": excludeUserID},
	})
	if err != nil {
		return nil, errors.Wrap(err, "problem querying goals")
	}

	goals := []Goal{}
	err = cursor.All(ctx, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}

// Update rewrites a goal document
func (s GoalRepository) Update(ctx context.Context, goal *Goal) error {
	result, err := s.DB.UpdateOne(ctx, bson.M{"_id": goal.ID}, bson.M{"$set": goal})
	if err != nil {
		return errors.Wrap(err, "problem updating goal")
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	return nil
}

// Delete deletes a goal scoped to its owning user
func (s GoalRepository) Delete(ctx context.Context, goalID string, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return errors.Wrapf(err, "invalid goal id %s", goalID)
	}

	result, err := s.DB.DeleteOne(ctx, bson.M{"_id": objectID, "userId": userID})
	if err != nil {
		return errors.Wrap(err, "problem deleting goal")
	}

	if result.DeletedCount != 1 {
		return errors.New("no goal deleted")
	}

	return nil
}
