package todos

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MockTodoRepository is an in memory TodoRepositoryInterface for tests
type MockTodoRepository struct {
	Todos []*Todo
}

// Add adds a todo
func (r *MockTodoRepository) Add(ctx context.Context, todo *Todo) error {
	todo.ID = primitive.NewObjectID()
	todo.CreatedAt = time.Now()
	r.Todos = append(r.Todos, todo)
	return nil
}

// FindByID finds a todo by its id scoped to its owning user
func (r *MockTodoRepository) FindByID(ctx context.Context, todoID string, userID string) (*Todo, error) {
	for _, todo := range r.Todos {
		if todo.ID.Hex() == todoID && todo.UserID == userID {
			return todo, nil
		}
	}

	return nil, errors.New("todo not found")
}

// FindAllByUser finds all todos of a user
func (r *MockTodoRepository) FindAllByUser(ctx context.Context, userID string) ([]Todo, error) {
	todos := []Todo{}
	for _, todo := range r.Todos {
		if todo.UserID == userID {
			todos = append(todos, *todo)
		}
	}

	return todos, nil
}

// Update rewrites a todo
func (r *MockTodoRepository) Update(ctx context.Context, todo *Todo) error {
	for i, t := range r.Todos {
		if t.ID == todo.ID {
			r.Todos[i] = todo
			return nil
		}
	}

	return errors.New("todo not found")
}

// Remove deletes a todo scoped to its owning user
func (r *MockTodoRepository) Remove(ctx context.Context, todoID string, userID string) error {
	for i, t := range r.Todos {
		if t.ID.Hex() == todoID && t.UserID == userID {
			r.Todos = append(r.Todos[:i], r.Todos[i+1:]...)
			return nil
		}
	}

	return errors.New("todo not found")
}
