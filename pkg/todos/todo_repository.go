package todos

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

// TodoRepositoryInterface is the interface for a TodoRepository
type TodoRepositoryInterface interface {
	Add(ctx context.Context, todo *Todo) error
	FindByID(ctx context.Context, todoID string, userID string) (*Todo, error)
	FindAllByUser(ctx context.Context, userID string) ([]Todo, error)
	Update(ctx context.Context, todo *Todo) error
	Remove(ctx context.Context, todoID string, userID string) error
}

// TodoRepository does everything related to todo storing
type TodoRepository struct {
	DB     *mongo.Collection
	Logger logger.Interface
}

// Add adds a todo
func (s TodoRepository) Add(ctx context.Context, todo *Todo) error {
	todo.ID = primitive.NewObjectID()
	todo.CreatedAt = time.Now()
	_, err := s.DB.InsertOne(ctx, todo)
	if err != nil {
		return errors.Wrap(err, "problem inserting todo")
	}

	return nil
}

// FindByID finds a todo by its id scoped to its owning user
func (s TodoRepository) FindByID(ctx context.Context, todoID string, userID string) (*Todo, error) {
	objectID, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid todo id %s", todoID)
	}

	var todo = Todo{}
	result := s.DB.FindOne(ctx, bson.M{"_id": objectID, "userId": userID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	err = result.Decode(&todo)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// FindAllByUser finds all todos of a user, newest first
func (s TodoRepository) FindAllByUser(ctx context.Context, userID string) ([]Todo, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"createdAt": -1})

	cursor, err := s.DB.Find(ctx, bson.M{"userId": userID}, findOptions)
	if err != nil {
		return nil, errors.Wrap(err, "problem querying todos")
	}

	todos := []Todo{}
	err = cursor.All(ctx, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// Update rewrites a todo document
func (s TodoRepository) Update(ctx context.Context, todo *Todo) error {
	result, err := s.DB.UpdateOne(ctx, bson.M{"_id": todo.ID, "userId": todo.UserID}, bson.M{"$set": todo})
	if err != nil {
		return errors.Wrap(err, "problem updating todo")
	}

	if result.MatchedCount != 1 {
		return errors.New("updated count != 1")
	}

	return nil
}

// Remove deletes a todo scoped to its owning user
func (s TodoRepository) Remove(ctx context.Context, todoID string, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(todoID)
	if err != nil {
		return errors.Wrapf(err, "invalid todo id %s", todoID)
	}

	result, err := s.DB.DeleteOne(ctx, bson.M{"_id": objectID, "userId": userID})
	if err != nil {
		return errors.Wrap(err, "problem deleting todo")
	}

	if result.DeletedCount != 1 {
		return errors.New("no todo deleted")
	}

	return nil
}
