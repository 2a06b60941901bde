package invitations

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/relife-app/relife-backend/pkg/auth"
	"github.com/relife-app/relife-backend/pkg/communication"
	"github.com/relife-app/relife-backend/pkg/email"
	"github.com/relife-app/relife-backend/pkg/environment"
	"github.com/relife-app/relife-backend/pkg/goals"
	"github.com/relife-app/relife-backend/pkg/logger"
	"github.com/relife-app/relife-backend/pkg/users"
	"golang.org/x/sync/errgroup"
)

// Handler is the handler for invitation API calls
type Handler struct {
	InvitationRepository InvitationRepositoryInterface
	GoalRepository       goals.GoalRepositoryInterface
	UserRepository       users.UserRepositoryInterface
	Resolver             *users.Resolver
	EmailService         email.Mailer
	Logger               logger.Interface
	ResponseManager      *communication.ResponseManager
}

// InvitationAdd is the request body for inviting a coworker
type InvitationAdd struct {
	Email  string `json:"email" validate:"required,email"`
	GoalID string `json:"goalId" validate:"required"`
}

// InvitationDetails is one invitation decorated with its goal and inviter
type InvitationDetails struct {
	Invitation Invitation  `json:"invitation"`
	Goal       *goals.Goal `json:"goal"`
	Inviter    *users.User `json:"inviter"`
}

// InvitationAdd invites a registered user to collaborate on a goal
func (handler *Handler) InvitationAdd(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	invitationAdd := InvitationAdd{}
	err := json.NewDecoder(request.Body).Decode(&invitationAdd)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, "Wrong format", err)
		return
	}

	v := validator.New()
	err = v.Struct(invitationAdd)
	if err != nil {
		for _, e := range err.(validator.ValidationErrors) {
			handler.ResponseManager.RespondWithError(writer, http.StatusBadRequest, e.Error(), e)
			return
		}
	}

	inviter, err := handler.Resolver.Resolve(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"User wasn't found", err)
		return
	}

	inviteeEmail := strings.ToLower(strings.TrimSpace(invitationAdd.Email))

	invitee, err := handler.UserRepository.FindByEmail(request.Context(), inviteeEmail)
	if err != nil || invitee == nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"This email is not registered in the system", err)
		return
	}

	goal, err := handler.GoalRepository.FindByOwner(request.Context(), invitationAdd.GoalID, userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound, "Goal not found", err)
		return
	}

	invitation := Invitation{
		InviterUserID: inviter.ID.Hex(),
		InviteeUserID: invitee.ID.Hex(),
		InviteeEmail:  inviteeEmail,
		GoalID:        goal.ID.Hex(),
		Status:        StatusPending,
	}

	err = handler.InvitationRepository.Add(request.Context(), &invitation)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Invitation couldn't be persisted in the database", err)
		return
	}

	subGoals := make([]map[string]interface{}, 0, len(goal.WeeksData))
	for _, week := range goal.WeeksData {
		subGoals = append(subGoals, map[string]interface{}{
			"weekNumber":   week.WeekNumber,
			"subGoalTitle": week.SubGoalTitle,
			"hoursPlanned": week.HoursPlanned,
		})
	}

	parameters := map[string]interface{}{
		"inviterName": inviter.Name,
		"goalTitle":   goal.Title,
		"category":    goal.Category,
		"type":        goal.Type,
		"weeks":       goal.Weeks,
		"subGoalType": goal.SubGoalType,
		"subGoals":    subGoals,
		"acceptLink":  fmt.Sprintf("%s/dashboard/invitations", environment.Global.FrontendBaseUrl),
	}
	if goal.DailyHours != nil {
		parameters["dailyHours"] = *goal.DailyHours
	}
	if goal.WeeklyHours != nil {
		parameters["weeklyHours"] = *goal.WeeklyHours
	}

	err = handler.EmailService.SendEmail(request.Context(), &email.Email{
		ReceiverName:    invitee.Name,
		ReceiverAddress: invitee.Email,
		Template:        email.TemplateGoalInvitation,
		Parameters:      parameters,
	})
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not send invitation mail", err)
		return
	}

	handler.ResponseManager.RespondWithStatus(writer, map[string]interface{}{
		"invitation": invitation,
	}, http.StatusCreated)
}

// InvitationsGet lists the authenticated user's invitations with goal and inviter details.
// Goal or inviter references that no longer resolve come back as null.
func (handler *Handler) InvitationsGet(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)

	invitations, err := handler.InvitationRepository.FindAllByInvitee(request.Context(), userID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem querying invitations", err)
		return
	}

	details := make([]InvitationDetails, len(invitations))

	group, groupContext := errgroup.WithContext(request.Context())
	for i, invitation := range invitations {
		i, invitation := i, invitation
		group.Go(func() error {
			entry := InvitationDetails{Invitation: invitation}

			goal, err := handler.GoalRepository.FindByID(groupContext, invitation.GoalID)
			if err == nil {
				entry.Goal = goal
			}

			inviter, err := handler.UserRepository.FindByID(groupContext, invitation.InviterUserID)
			if err == nil {
				entry.Inviter = inviter
			}

			details[i] = entry
			return nil
		})
	}

	err = group.Wait()
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Problem loading invitation details", err)
		return
	}

	handler.ResponseManager.Respond(writer, map[string]interface{}{
		"invitations": details,
	})
}

// InvitationAccept accepts an invitation and marks the invitee as an accepted
// coworker on the goal
func (handler *Handler) InvitationAccept(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	invitationID := mux.Vars(request)["invitationID"]

	invitation, err := handler.InvitationRepository.FindByID(request.Context(), invitationID)
	if err != nil || invitation.InviteeUserID != userID {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"Invitation not found", err)
		return
	}

	invitation.Status = StatusAccepted
	err = handler.InvitationRepository.Update(request.Context(), invitation)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not persist invitation", err)
		return
	}

	handler.syncGoalCoWorker(request, invitation)

	handler.ResponseManager.Respond(writer, map[string]interface{}{
		"invitation": invitation,
	})
}

// syncGoalCoWorker marks the invitee's coworker entry on the goal as accepted,
// appending one when the owner never listed the invitee. A dangling goal
// reference only logs a warning, the acceptance itself stands.
func (handler *Handler) syncGoalCoWorker(request *http.Request, invitation *Invitation) {
	goal, err := handler.GoalRepository.FindByID(request.Context(), invitation.GoalID)
	if err != nil {
		handler.Logger.Warning("invitation "+invitation.ID.Hex()+" references missing goal "+invitation.GoalID, err)
		return
	}

	found := false
	for i, coWorker := range goal.CoWorkers {
		if coWorker.Email == invitation.InviteeEmail {
			goal.CoWorkers[i].Status = goals.CoWorkerStatusAccepted
			goal.CoWorkers[i].UserID = invitation.InviteeUserID
			found = true
			break
		}
	}

	if !found {
		goal.CoWorkers = append(goal.CoWorkers, goals.CoWorker{
			Email:  invitation.InviteeEmail,
			UserID: invitation.InviteeUserID,
			Status: goals.CoWorkerStatusAccepted,
		})
	}

	err = handler.GoalRepository.Update(request.Context(), goal)
	if err != nil {
		handler.Logger.Error("could not sync coworker on goal "+invitation.GoalID, err)
	}
}

// InvitationDeny denies an invitation by deleting it
func (handler *Handler) InvitationDeny(writer http.ResponseWriter, request *http.Request) {
	userID := request.Context().Value(auth.KeyUserID).(string)
	invitationID := mux.Vars(request)["invitationID"]

	invitation, err := handler.InvitationRepository.FindByID(request.Context(), invitationID)
	if err != nil || invitation.InviteeUserID != userID {
		handler.ResponseManager.RespondWithError(writer, http.StatusNotFound,
			"Invitation not found", err)
		return
	}

	err = handler.InvitationRepository.Remove(request.Context(), invitationID)
	if err != nil {
		handler.ResponseManager.RespondWithError(writer, http.StatusInternalServerError,
			"Could not delete invitation", err)
		return
	}

	handler.ResponseManager.RespondWithNoContent(writer)
}
