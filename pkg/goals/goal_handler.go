package goals

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/logger"
	"github.com/relife-app/relife-backend/pkg/users"
)

// AcceptedInvitationFinder yields the goal ids a user gained access to by accepting invitations
type AcceptedInvitationFinder interface {
	FindAcceptedGoalIDs(ctx context.Context, inviteeUserID string) ([]string, error)
}

// Handler is the handler for goal API calls
type Handler struct {
	GoalRepository   GoalRepositoryInterface
	UserRepository   users.UserRepositoryInterface
	InvitationFinder AcceptedInvitationFinder
	Logger           logger.Interface
	ResponseManager  *communication.ResponseManager
}

// GoalAdd is the request body for creating a goal
type GoalAdd struct {
	Category    string           `json:"category" validate:"required,oneof='Academic' 'Non-Academic'"`
	Type        string           `json:"type" validate:"required,oneof=Single Group"`
	Title       string           `json:"title" validate:"required"`
	Weeks       int              `json:"weeks" validate:"required,gt=0"`
	SubGoalType string           `json:"subGoalType" validate:"required,oneof=Daily Weekly"`
	DailyHours  *float64         `json:"dailyHours"`
	WeeklyHours *float64         `json:"weeklyHours"`
	WeeksData   []WeekSubGoalAdd `json:"weeksData" validate:"required,dive"`
	CoWorkers   []CoWorkerAdd    `json:"coWorkers" validate:"dive"`
}

// WeekSubGoalAdd is one week's sub-goal in a goal creation request
type WeekSubGoalAdd struct {
	WeekNumber   int     `json:"weekNumber"`
	SubGoalTitle string  `json:"subGoalTitle" validate:"required"`
	HoursPlanned float64 `json:"hoursPlanned" validate:"required,gt=0"`
}

// CoWorkerAdd is one coworker in a goal creation request
type CoWorkerAdd struct {
	Email string `json:"email"`
}

// GoalUpdate is the request body for a partial goal update
type GoalUpdate struct {
	Title       *string             `json:"title"`
	Category    *string             `json:"category"`
	Type        *string             `json:"type"`
	Weeks       *int                `json:"weeks"`
	SubGoalType *string             `json:"subGoalType"`
	DailyHours  *float64            `json:"dailyHours"`
	WeeklyHours *float64            `json:"weeklyHours"`
	WeeksData   []WeekSubGoalUpdate `json:"weeksData"`
}

// WeekSubGoalUpdate is one week's sub-goal in a goal update request
type WeekSubGoalUpdate struct {
	WeekNumber   int        `json:"weekNumber"`
	SubGoalTitle string     `json:"subGoalTitle"`
	HoursPlanned float64    `json:"hoursPlanned"`
	WeekStartAt  *time.Time `json:"weekStartAt"`
	WeekEndAt    *time.Time `json:"weekEndAt"`
}

// GoalAdd creates a new goal
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

	if goalAdd.SubGoalType == "Daily" && (goalAdd.DailyHours == nil || *goalAdd.DailyHours <= 0) {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Missing or invalid planned hours", nil)
		return
	}

	if goalAdd.SubGoalType == "Weekly" && (goalAdd.WeeklyHours == nil || *goalAdd.WeeklyHours <= 0) {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Missing or invalid planned hours", nil)
		return
	}

	if len(goalAdd.WeeksData) != goalAdd.Weeks {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Invalid or mismatched weeksData format", nil)
		return
	}

	weeksData := make([]WeekSubGoal, 0, len(goalAdd.WeeksData))
	for index, week := range goalAdd.WeeksData {
		weekNumber := week.WeekNumber
		if weekNumber == 0 {
			weekNumber = index + 1
		}

		weeksData = append(weeksData, WeekSubGoal{
			WeekNumber:   weekNumber,
			SubGoalTitle: week.SubGoalTitle,
			HoursPlanned: week.HoursPlanned,
			Status:       WeekStatusNotStarted,
		})
	}

	coWorkers := []CoWorker{}
	for _, coWorker := range goalAdd.CoWorkers {
		coWorkerEmail := strings.TrimSpace(coWorker.Email)
		if coWorkerEmail == "" {
			continue
		}

		entry := CoWorker{Email: coWorkerEmail, Status: CoWorkerStatusPending}

		coWorkerUser, err := handler.UserRepository.FindByEmail(request.Context(), coWorkerEmail)
		if err == nil && coWorkerUser != nil {
			entry.UserID = coWorkerUser.ID.Hex()
		}

		coWorkers = append(coWorkers, entry)
	}

	goal := Goal{
		UserID:      userID,
		Category:    goalAdd.Category,
		Type:        goalAdd.Type,
		Title:       goalAdd.Title,
		Weeks:       goalAdd.Weeks,
		SubGoalType: goalAdd.SubGoalType,
		Phase:       PhaseNotStarted,
		WeeksData:   weeksData,
		CoWorkers:   coWorkers,
	}

	if goalAdd.SubGoalType == "Daily" {
		goal.DailyHours = goalAdd.DailyHours
	} else {
		goal.WeeklyHours = goalAdd.WeeklyHours
	}

	err = handler.GoalRepository.Add(request.Context(), &goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Goal couldn't be persisted in the database", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, map[string]interface{}{"goal": goal}, http.StatusCreated)
}

// GoalsGet retrieves the user's own goals plus the goals shared with them through accepted invitations
func (handler *Handler) GoalsGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	ownGoals, err := handler.GoalRepository.FindAllByOwner(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem querying goals", err)
		return
	}

	invitedGoalIDs, err := handler.InvitationFinder.FindAcceptedGoalIDs(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem querying invitations", err)
		return
	}

	invitedGoals := []Goal{}
	if len(invitedGoalIDs) > 0 {
		invitedGoals, err = handler.GoalRepository.FindAllByIDs(request.Context(), invitedGoalIDs, userID)
		if err != nil {
			handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
				"Problem querying shared goals", err)
			return
		}
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{
		"goals": append(ownGoals, invitedGoals...),
	})
}

// GoalGet retrieves a single goal of the authenticated user
func (handler *Handler) GoalGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	goalID := mux.Vars(request)["goalID"]

	goal, err := handler.GoalRepository.FindByOwner(request.Context(), goalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"goal": goal})
}

// GoalUpdate partially updates a goal. Week statuses are preserved and the
// phase is re-derived from the merged week list, so an edit can never leave
// the phase out of sync with the week data.
func (handler *Handler) GoalUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	goalID := mux.Vars(request)["goalID"]

	goal, err := handler.GoalRepository.FindByOwner(request.Context(), goalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	goalUpdate := GoalUpdate{}
	err = json.NewDecoder(request.Body).Decode(&goalUpdate)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	if goalUpdate.Title != nil {
		goal.Title = *goalUpdate.Title
	}
	if goalUpdate.Category != nil {
		goal.Category = *goalUpdate.Category
	}
	if goalUpdate.Type != nil {
		goal.Type = *goalUpdate.Type
	}
	if goalUpdate.Weeks != nil {
		goal.Weeks = *goalUpdate.Weeks
	}
	if goalUpdate.SubGoalType != nil {
		goal.SubGoalType = *goalUpdate.SubGoalType
	}
	if goal.SubGoalType == "Daily" {
		if goalUpdate.DailyHours != nil {
			goal.DailyHours = goalUpdate.DailyHours
		}
		goal.WeeklyHours = nil
	} else {
		if goalUpdate.WeeklyHours != nil {
			goal.WeeklyHours = goalUpdate.WeeklyHours
		}
		goal.DailyHours = nil
	}

	if goalUpdate.WeeksData != nil {
		goal.WeeksData = mergeWeeksData(goal.WeeksData, goalUpdate.WeeksData)
		goal.Phase = ComputePhase(goal.WeeksData)
	}

	v := validator.New()
	err = v.Struct(goal)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	err = handler.GoalRepository.Update(request.Context(), goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist goal", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"goal": goal})
}

// mergeWeeksData rewrites the week list from an update request while keeping
// each existing week's status
func mergeWeeksData(existing []WeekSubGoal, update []WeekSubGoalUpdate) []WeekSubGoal {
	merged := make([]WeekSubGoal, 0, len(update))
	for index, week := range update {
		weekNumber := week.WeekNumber
		if weekNumber == 0 {
			weekNumber = index + 1
		}

		var existingWeek *WeekSubGoal
		for i := range existing {
			if existing[i].WeekNumber == weekNumber {
				existingWeek = &existing[i]
				break
			}
		}

		mergedWeek := WeekSubGoal{
			WeekNumber:   weekNumber,
			SubGoalTitle: week.SubGoalTitle,
			HoursPlanned: week.HoursPlanned,
			Status:       WeekStatusNotStarted,
			WeekStartAt:  week.WeekStartAt,
			WeekEndAt:    week.WeekEndAt,
		}

		if existingWeek != nil {
			mergedWeek.Status = existingWeek.Status
			if mergedWeek.SubGoalTitle == "" {
				mergedWeek.SubGoalTitle = existingWeek.SubGoalTitle
			}
			if mergedWeek.HoursPlanned == 0 {
				mergedWeek.HoursPlanned = existingWeek.HoursPlanned
			}
			if mergedWeek.WeekStartAt == nil {
				mergedWeek.WeekStartAt = existingWeek.WeekStartAt
			}
			if mergedWeek.WeekEndAt == nil {
				mergedWeek.WeekEndAt = existingWeek.WeekEndAt
			}
		}

		merged = append(merged, mergedWeek)
	}

	return merged
}

// GoalDelete deletes a goal of the authenticated user
func (handler *Handler) GoalDelete(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	goalID := mux.Vars(request)["goalID"]

	err := handler.GoalRepository.Delete(request.Context(), goalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}

// GoalStart starts a goal
func (handler *Handler) GoalStart(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	goalID := mux.Vars(request)["goalID"]

	goal, err := handler.GoalRepository.FindByOwner(request.Context(), goalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	err = Start(goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err = handler.GoalRepository.Update(request.Context(), goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist goal", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{"goal": goal})
}

// GoalWeekStatusUpdate completes a week of a goal and unlocks the next one
func (handler *Handler) GoalWeekStatusUpdate(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	goalID := mux.Vars(request)["goalID"]

	body := struct {
		WeekIndex *int   `json:"weekIndex"`
		Status    string `json:"status"`
	}{}

	err := json.NewDecoder(request.Body).Decode(&body)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	if body.WeekIndex == nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest,
			"Must provide weekIndex", nil)
		return
	}

	goal, err := handler.GoalRepository.FindByOwner(request.Context(), goalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	err = CompleteWeek(goal, *body.WeekIndex, body.Status)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, err.Error(), nil)
		return
	}

	err = handler.GoalRepository.Update(request.Context(), goal)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist goal", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{
		"goal":         goal,
		"nextWeekData": NextWeek(goal, *body.WeekIndex),
	})
}
