package todos

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/logger"
)

// Handler is the handler for todo API calls
type Handler struct {
	TodoRepository  TodoRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// TodoAdd is the request body for creating a todo
type TodoAdd struct {
	WorkName        string    `json:"workName" validate:"required"`
	Time            time.Time `json:"time" validate:"required"`
	OtherMemberName []string  `json:"otherMemberName"`
	Type            string    `json:"type" validate:"required,oneof=personal group academic"`
	Other           string    `json:"other"`
}

// TodoAdd creates a new todo
func (handler *Handler) TodoAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	todoAdd := TodoAdd{}
	err := json.NewDecoder(request.Body).Decode(&todoAdd)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(todoAdd)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	otherMembers := todoAdd.OtherMemberName
	if otherMembers == nil {
		otherMembers = []string{}
	}

	todo := Todo{
		UserID:          userID,
		WorkName:        todoAdd.WorkName,
		Time:            todoAdd.Time,
		OtherMemberName: otherMembers,
		Type:            todoAdd.Type,
		Other:           todoAdd.Other,
		Status:          StatusPending,
	}

	err = handler.TodoRepository.Add(request.Context(), &todo)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Todo couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, map[string]interface{}{"todo": todo}, http.StatusCreated)
}

// TodosGet lists the authenticated user's todos
func (handler *Handler) TodosGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	todos, err := handler.TodoRepository.FindAllByUser(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem querying todos", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"todos": todos})
}

// TodoUpdate flips a todo's status
func (handler *Handler) TodoUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	todoID := mux.Vars(request)["todoID"]

	body := struct {
		Status string `json:"status" validate:"required,oneof=pending done"`
	}{}

	err := json.NewDecoder(request.Body).Decode(&body)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(body)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	todo, err := handler.TodoRepository.FindByID(request.Context(), todoID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Todo not found", err)
		return
	}

	todo.Status = body.Status

	err = handler.TodoRepository.Update(request.Context(), todo)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist todo", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"todo": todo})
}

// TodoDelete deletes a todo
func (handler *Handler) TodoDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	todoID := mux.Vars(request)["todoID"]

	err := handler.TodoRepository.Remove(request.Context(), todoID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Todo not found", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
