package todos

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/logger"
)

func newTestHandler(repository *MockTodoRepository) *Handler {
	logging := logger.Logger{}
	return &Handler{
		TodoRepository:  repository,
		Logger:          logging,
		ResponseManager: &communication.ResponseManager{Logger: logging},
	}
}

func authenticatedRequest(method string, target string, body string, userID string, vars map[string]string) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request = request.WithContext(context.WithValue(request.Context(), auth.KeyUserID, userID))
	if vars != nil {
		request = mux.SetURLVars(request, vars)
	}
	return request
}

func TestHandler_TodoAdd(t *testing.T) {
	repository := &MockTodoRepository{}
	handler := newTestHandler(repository)

	body := `{"workName": "Write report", "time": "2026-09-01T10:00:00Z", "type": "group", "otherMemberName": ["Bob"]}`

	recorder := httptest.NewRecorder()
	handler.TodoAdd(recorder, authenticatedRequest(http.MethodPost, "/v1/todos", body, "owner", nil))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	if len(repository.Todos) != 1 {
		t.Fatalf("stored %d todos, want 1", len(repository.Todos))
	}

	todo := repository.Todos[0]
	if todo.Status != StatusPending {
		t.Errorf("status = %q, want pending", todo.Status)
	}
	if todo.UserID != "owner" {
		t.Errorf("user id = %q, want owner", todo.UserID)
	}
}

func TestHandler_TodoAdd_InvalidType(t *testing.T) {
	handler := newTestHandler(&MockTodoRepository{})

	body := `{"workName": "Write report", "time": "2026-09-01T10:00:00Z", "type": "invalid"}`

	recorder := httptest.NewRecorder()
	handler.TodoAdd(recorder, authenticatedRequest(http.MethodPost, "/v1/todos", body, "owner", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestHandler_TodosGet(t *testing.T) {
	repository := &MockTodoRepository{}
	_ = repository.Add(context.Background(), &Todo{UserID: "owner", WorkName: "Mine", Time: time.Now(), Type: "personal", Status: StatusPending})
	_ = repository.Add(context.Background(), &Todo{UserID: "other", WorkName: "Not mine", Time: time.Now(), Type: "personal", Status: StatusPending})

	handler := newTestHandler(repository)

	recorder := httptest.NewRecorder()
	handler.TodosGet(recorder, authenticatedRequest(http.MethodGet, "/v1/todos", "", "owner", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	response := struct {
		Todos []Todo `json:"todos"`
	}{}
	err := json.NewDecoder(recorder.Body).Decode(&response)
	if err != nil {
		t.Fatal(err)
	}

	if len(response.Todos) != 1 || response.Todos[0].WorkName != "Mine" {
		t.Errorf("todos = %v, want only the owner's todo", response.Todos)
	}
}

func TestHandler_TodoUpdate(t *testing.T) {
	repository := &MockTodoRepository{}
	todo := &Todo{UserID: "owner", WorkName: "Write report", Time: time.Now(), Type: "personal", Status: StatusPending}
	_ = repository.Add(context.Background(), todo)

	handler := newTestHandler(repository)

	recorder := httptest.NewRecorder()
	handler.TodoUpdate(recorder, authenticatedRequest(http.MethodPut, "/v1/todos/"+todo.ID.Hex(),
		`{"status": "done"}`, "owner", map[string]string{"todoID": todo.ID.Hex()}))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	if todo.Status != StatusDone {
		t.Errorf("status = %q, want done", todo.Status)
	}
}

func TestHandler_TodoUpdate_InvalidStatus(t *testing.T) {
	repository := &MockTodoRepository{}
	todo := &Todo{UserID: "owner", WorkName: "Write report", Time: time.Now(), Type: "personal", Status: StatusPending}
	_ = repository.Add(context.Background(), todo)

	handler := newTestHandler(repository)

	recorder := httptest.NewRecorder()
	handler.TodoUpdate(recorder, authenticatedRequest(http.MethodPut, "/v1/todos/"+todo.ID.Hex(),
		`{"status": "archived"}`, "owner", map[string]string{"todoID": todo.ID.Hex()}))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
	if todo.Status != StatusPending {
		t.Errorf("status = %q, want untouched pending", todo.Status)
	}
}

func TestHandler_TodoDelete(t *testing.T) {
	repository := &MockTodoRepository{}
	todo := &Todo{UserID: "owner", WorkName: "Write report", Time: time.Now(), Type: "personal", Status: StatusPending}
	_ = repository.Add(context.Background(), todo)

	handler := newTestHandler(repository)

	recorder := httptest.NewRecorder()
	handler.TodoDelete(recorder, authenticatedRequest(http.MethodDelete, "/v1/todos/"+todo.ID.Hex(), "",
		"somebody-else", map[string]string{"todoID": todo.ID.Hex()}))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 for foreign user", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.TodoDelete(recorder, authenticatedRequest(http.MethodDelete, "/v1/todos/"+todo.ID.Hex(), "",
		"owner", map[string]string{"todoID": todo.ID.Hex()}))

	if recorder.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", recorder.Code)
	}
	if len(repository.Todos) != 0 {
		t.Errorf("repository still holds %d todos, want 0", len(repository.Todos))
	}
}
