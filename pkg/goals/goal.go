package goals

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal phases
const (
	PhaseNotStarted = "Not Started"
	PhaseInProgress = "In Progress"
	PhaseCompleted  = "Completed"
)

// Week sub-goal statuses
const (
	WeekStatusNotStarted = "Not Started"
	WeekStatusPending    = "pending"
	WeekStatusCompleted  = "Completed"
)

// Coworker statuses
const (
	CoWorkerStatusPending  = "pending"
	CoWorkerStatusAccepted = "accepted"
)

// WeekSubGoal is one week's sub-goal, embedded in its parent goal
type WeekSubGoal struct {
	WeekNumber   int        `json:"weekNumber" bson:"weekNumber"`
	SubGoalTitle string     `json:"subGoalTitle" bson:"subGoalTitle"`
	HoursPlanned float64    `json:"hoursPlanned" bson:"hoursPlanned"`
	Status       string     `json:"status" bson:"status"`
	WeekStartAt  *time.Time `json:"weekStartAt,omitempty" bson:"weekStartAt,omitempty"`
	WeekEndAt    *time.Time `json:"weekEndAt,omitempty" bson:"weekEndAt,omitempty"`
}

// CoWorker is a collaborator on a goal
type CoWorker struct {
	Email  string `json:"email" bson:"email" validate:"required,email"`
	UserID string `json:"userId,omitempty" bson:"userId,omitempty"`
	Status string `json:"status" bson:"status"`
}

// Goal is the model for a multi-week goal
type Goal struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	UserID      string             `json:"userId" bson:"userId" validate:"required"`
	Category    string             `json:"category" bson:"category" validate:"required,oneof='Academic' 'Non-Academic'"`
	Type        string             `json:"type" bson:"type" validate:"required,oneof=Single Group"`
	Title       string             `json:"title" bson:"title" validate:"required"`
	Weeks       int                `json:"weeks" bson:"weeks" validate:"required,gt=0"`
	SubGoalType string             `json:"subGoalType" bson:"subGoalType" validate:"required,oneof=Daily Weekly"`
	DailyHours  *float64           `json:"dailyHours,omitempty" bson:"dailyHours,omitempty"`
	WeeklyHours *float64           `json:"weeklyHours,omitempty" bson:"weeklyHours,omitempty"`
	Phase       string             `json:"phase" bson:"phase"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	WeeksData   []WeekSubGoal      `json:"weeksData" bson:"weeksData"`
	CoWorkers   []CoWorker         `json:"coWorkers" bson:"coWorkers"`
}
