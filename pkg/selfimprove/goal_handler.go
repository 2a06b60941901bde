package selfimprove

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/logger"
)

// Handler is the handler for self-improvement goal API calls
type Handler struct {
	GoalRepository  GoalRepositoryInterface
	Logger          logger.Interface
	ResponseManager *communication.ResponseManager
}

// GoalAdd is the request body for creating a self-improvement goal
type GoalAdd struct {
	SkillName      string  `json:"skillName" validate:"required"`
	Subtopic       string  `json:"subtopic" validate:"required"`
	SuggestiveTime float64 `json:"suggestiveTime" validate:"required,gt=0"`
	InstructorName string  `json:"instructorName" validate:"required"`
	SponsorBy      string  `json:"sponsorBy" validate:"required"`
}

// GoalAdd creates a new self-improvement goal
func (handler *Handler) GoalAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	goalAdd := GoalAdd{}
	err := json.NewDecoder(request.Body).Decode(&goalAdd)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(goalAdd)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	goal := Goal{
		UserID:         userID,
		SkillName:      goalAdd.SkillName,
		Subtopic:       goalAdd.Subtopic,
		SuggestiveTime: goalAdd.SuggestiveTime,
		InstructorName: goalAdd.InstructorName,
		SponsorBy:      goalAdd.SponsorBy,
	}

	err = handler.GoalRepository.Add(request.Context(), &goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Goal couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, map[string]interface{}{"goal": goal}, http.StatusCreated)
}

// GoalsGet lists the authenticated user's self-improvement goals
func (handler *Handler) GoalsGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	goals, err := handler.GoalRepository.FindAllByUser(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem querying self-improvement goals", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"goals": goals})
}
