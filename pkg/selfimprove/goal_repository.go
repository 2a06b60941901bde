package selfimprove

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

// GoalRepositoryInterface is the interface for a self-improvement GoalRepository
type GoalRepositoryInterface interface {
	Add(ctx context.Context, goal *Goal) error
	FindAllByUser(ctx context.Context, userID string) ([]Goal, error)
}

// GoalRepository does everything related to self-improvement goal storing
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
		return errors.Wrap(err, "problem inserting self-improvement goal")
	}

	return nil
}

// FindAllByUser finds all goals of a user, newest first
func (s GoalRepository) FindAllByUser(ctx context.Context, userID string) ([]Goal, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})

	cursor, err := s.DB.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "problem querying self-improvement goals")
	}

	goals := []Goal{}
	err = cursor.All(ctx, &goals)
	if err != nil {
		return nil, err
	}
	return goals, nil
}
