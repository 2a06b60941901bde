package goals

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/logger"
	"github.com/relife-app/relife-backend/pkg/users"
)

type stubInvitationFinder struct {
	GoalIDs []string
}

func (s stubInvitationFinder) FindAcceptedGoalIDs(ctx context.Context, inviteeUserID string) ([]string, error) {
	return s.GoalIDs, nil
}

func newTestHandler(goalRepository *MockGoalRepository, finder AcceptedInvitationFinder) *Handler {
	logging := logger.Logger{}
	if finder == nil {
		finder = stubInvitationFinder{}
	}

	return &Handler{
		GoalRepository:   goalRepository,
		UserRepository:   &users.MockUserRepository{},
		InvitationFinder: finder,
		Logger:           logging,
		ResponseManager:  &communication.ResponseManager{Logger: logging},
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

func TestHandler_GoalAdd(t *testing.T) {
	repository := &MockGoalRepository{}
	handler := newTestHandler(repository, nil)

	body := `{
		"category": "Academic",
		"type": "Single",
		"title": "Learn Go",
		"weeks": 2,
		"subGoalType": "Weekly",
		"weeklyHours": 10,
		"weeksData": [
			{"subGoalTitle": "Basics", "hoursPlanned": 10},
			{"subGoalTitle": "Concurrency", "hoursPlanned": 10}
		]
	}`

	recorder := httptest.NewRecorder()
	handler.GoalAdd(recorder, authenticatedRequest(http.MethodPost, "/v1/goals", body, "owner", nil))

	if recorder.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	if len(repository.Goals) != 1 {
		t.Fatalf("stored %d goals, want 1", len(repository.Goals))
	}

	goal := repository.Goals[0]
	if goal.Phase != PhaseNotStarted {
		t.Errorf("phase = %q, want Not Started", goal.Phase)
	}
	if len(goal.WeeksData) != 2 {
		t.Fatalf("stored %d weeks, want 2", len(goal.WeeksData))
	}
	for i, week := range goal.WeeksData {
		if week.Status != WeekStatusNotStarted {
			t.Errorf("week %d status = %q, want Not Started", i, week.Status)
		}
		if week.WeekNumber != i+1 {
			t.Errorf("week %d number = %d, want %d", i, week.WeekNumber, i+1)
		}
	}
}

func TestHandler_GoalAdd_MismatchedWeeksData(t *testing.T) {
	handler := newTestHandler(&MockGoalRepository{}, nil)

	body := `{
		"category": "Academic",
		"type": "Single",
		"title": "Learn Go",
		"weeks": 3,
		"subGoalType": "Weekly",
		"weeklyHours": 10,
		"weeksData": [{"subGoalTitle": "Basics", "hoursPlanned": 10}]
	}`

	recorder := httptest.NewRecorder()
	handler.GoalAdd(recorder, authenticatedRequest(http.MethodPost, "/v1/goals", body, "owner", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestHandler_GoalAdd_MissingHours(t *testing.T) {
	handler := newTestHandler(&MockGoalRepository{}, nil)

	body := `{
		"category": "Academic",
		"type": "Single",
		"title": "Learn Go",
		"weeks": 1,
		"subGoalType": "Daily",
		"weeksData": [{"subGoalTitle": "Basics", "hoursPlanned": 2}]
	}`

	recorder := httptest.NewRecorder()
	handler.GoalAdd(recorder, authenticatedRequest(http.MethodPost, "/v1/goals", body, "owner", nil))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestHandler_GoalsGet_IncludesInvitedGoals(t *testing.T) {
	repository := &MockGoalRepository{}

	ownGoal := &Goal{UserID: "owner", Title: "Own", Category: "Academic", Type: "Single", Weeks: 1, SubGoalType: "Weekly", Phase: PhaseNotStarted}
	_ = repository.Add(context.Background(), ownGoal)

	sharedGoal := &Goal{UserID: "other", Title: "Shared", Category: "Academic", Type: "Group", Weeks: 1, SubGoalType: "Weekly", Phase: PhaseNotStarted}
	_ = repository.Add(context.Background(), sharedGoal)

	handler := newTestHandler(repository, stubInvitationFinder{GoalIDs: []string{sharedGoal.ID.Hex()}})

	recorder := httptest.NewRecorder()
	handler.GoalsGet(recorder, authenticatedRequest(http.MethodGet, "/v1/goals", "", "owner", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d", recorder.Code)
	}

	response := struct {
		Goals []Goal `json:"goals"`
	}{}
	err := json.NewDecoder(recorder.Body).Decode(&response)
	if err != nil {
		t.Fatal(err)
	}

	if len(response.Goals) != 2 {
		t.Fatalf("got %d goals, want 2", len(response.Goals))
	}
}

func TestHandler_GoalStart(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 1, SubGoalType: "Weekly", Phase: PhaseNotStarted,
		WeeksData: weeksWithStatuses(WeekStatusNotStarted),
	}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalStart(recorder, authenticatedRequest(http.MethodPut, "/v1/goals/"+goal.ID.Hex()+"/start", "",
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	if goal.Phase != PhaseInProgress || goal.WeeksData[0].Status != WeekStatusPending {
		t.Errorf("phase = %q, week 0 = %q", goal.Phase, goal.WeeksData[0].Status)
	}
}

func TestHandler_GoalStart_AlreadyStarted(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 1, SubGoalType: "Weekly", Phase: PhaseInProgress,
		WeeksData: weeksWithStatuses(WeekStatusPending),
	}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalStart(recorder, authenticatedRequest(http.MethodPut, "/v1/goals/"+goal.ID.Hex()+"/start", "",
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestHandler_GoalStart_NotOwner(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 1, SubGoalType: "Weekly", Phase: PhaseNotStarted,
		WeeksData: weeksWithStatuses(WeekStatusNotStarted),
	}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalStart(recorder, authenticatedRequest(http.MethodPut, "/v1/goals/"+goal.ID.Hex()+"/start", "",
		"someone-else", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", recorder.Code)
	}
}

func TestHandler_GoalWeekStatusUpdate(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 2, SubGoalType: "Weekly", Phase: PhaseInProgress,
		WeeksData: weeksWithStatuses(WeekStatusPending, WeekStatusNotStarted),
	}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalWeekStatusUpdate(recorder, authenticatedRequest(http.MethodPut,
		"/v1/goals/"+goal.ID.Hex()+"/week-status",
		`{"weekIndex": 0, "status": "Completed"}`,
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	response := struct {
		Goal         Goal          `json:"goal"`
		NextWeekData []WeekSubGoal `json:"nextWeekData"`
	}{}
	err := json.NewDecoder(recorder.Body).Decode(&response)
	if err != nil {
		t.Fatal(err)
	}

	if response.Goal.WeeksData[0].Status != WeekStatusCompleted {
		t.Errorf("week 0 status = %q, want Completed", response.Goal.WeeksData[0].Status)
	}
	if len(response.NextWeekData) != 1 || response.NextWeekData[0].Status != WeekStatusPending {
		t.Errorf("nextWeekData = %v, want singleton pending week", response.NextWeekData)
	}
}

func TestHandler_GoalWeekStatusUpdate_InvalidTransition(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 1, SubGoalType: "Weekly", Phase: PhaseNotStarted,
		WeeksData: weeksWithStatuses(WeekStatusNotStarted),
	}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalWeekStatusUpdate(recorder, authenticatedRequest(http.MethodPut,
		"/v1/goals/"+goal.ID.Hex()+"/week-status",
		`{"weekIndex": 0, "status": "Completed"}`,
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", recorder.Code)
	}
}

func TestHandler_GoalUpdate_RederivesPhase(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{
		UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single",
		Weeks: 2, SubGoalType: "Weekly", Phase: PhaseNotStarted,
		WeeksData: []WeekSubGoal{
			{WeekNumber: 1, SubGoalTitle: "Basics", HoursPlanned: 5, Status: WeekStatusCompleted},
			{WeekNumber: 2, SubGoalTitle: "Concurrency", HoursPlanned: 5, Status: WeekStatusPending},
		},
	}
	weeklyHours := 10.0
	goal.WeeklyHours = &weeklyHours
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	body := `{"weeksData": [
		{"weekNumber": 1, "subGoalTitle": "Fundamentals", "hoursPlanned": 6},
		{"weekNumber": 2, "subGoalTitle": "Concurrency", "hoursPlanned": 5}
	]}`

	recorder := httptest.NewRecorder()
	handler.GoalUpdate(recorder, authenticatedRequest(http.MethodPut, "/v1/goals/"+goal.ID.Hex(), body,
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	response := struct {
		Goal Goal `json:"goal"`
	}{}
	err := json.NewDecoder(recorder.Body).Decode(&response)
	if err != nil {
		t.Fatal(err)
	}

	if response.Goal.WeeksData[0].Status != WeekStatusCompleted {
		t.Errorf("week 1 status = %q, want preserved Completed", response.Goal.WeeksData[0].Status)
	}
	if response.Goal.WeeksData[0].SubGoalTitle != "Fundamentals" {
		t.Errorf("week 1 title = %q, want Fundamentals", response.Goal.WeeksData[0].SubGoalTitle)
	}
	if response.Goal.Phase != PhaseInProgress {
		t.Errorf("phase = %q, want re-derived In Progress", response.Goal.Phase)
	}
}

func TestHandler_GoalDelete(t *testing.T) {
	repository := &MockGoalRepository{}
	goal := &Goal{UserID: "owner", Title: "Learn Go", Category: "Academic", Type: "Single", Weeks: 1, SubGoalType: "Weekly"}
	_ = repository.Add(context.Background(), goal)

	handler := newTestHandler(repository, nil)

	recorder := httptest.NewRecorder()
	handler.GoalDelete(recorder, authenticatedRequest(http.MethodDelete, "/v1/goals/"+goal.ID.Hex(), "",
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	handler.GoalDelete(recorder, authenticatedRequest(http.MethodDelete, "/v1/goals/"+goal.ID.Hex(), "",
		"owner", map[string]string{"goalID": goal.ID.Hex()}))

	if recorder.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 on second delete", recorder.Code)
	}
}
