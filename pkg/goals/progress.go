package goals

import "errors"

// ErrNotStartable is returned when a goal cannot be started
var ErrNotStartable = errors.New("goal already started or no weeks data")

// ErrInvalidWeekIndex is returned when a week index does not address a week
var ErrInvalidWeekIndex = errors.New("invalid week index")

// ErrInvalidTransition is returned for a week status transition that is not allowed
var ErrInvalidTransition = errors.New("invalid status transition")

// Start moves a goal out of its "Not Started" phase.
// Only a goal with at least one week that has not been started yet qualifies.
// A goal whose weeks are somehow all completed already goes straight to
// "Completed"; otherwise the goal becomes "In Progress" and week 0 is
// unlocked.
func Start(goal *Goal) error {
	if goal.Phase != PhaseNotStarted || len(goal.WeeksData) == 0 {
		return ErrNotStartable
	}

	if allWeeksCompleted(goal.WeeksData) {
		goal.Phase = PhaseCompleted
		return nil
	}

	goal.Phase = PhaseInProgress
	if goal.WeeksData[0].Status == WeekStatusNotStarted {
		goal.WeeksData[0].Status = WeekStatusPending
	}

	return nil
}

// CompleteWeek completes the week at weekIndex.
// The only legal transition is pending -> Completed; weeks are strictly
// sequential gates, so completing a week unlocks at most the week directly
// after it. The goal phase is re-derived from the full week list afterwards.
func CompleteWeek(goal *Goal, weekIndex int, requestedStatus string) error {
	if weekIndex < 0 || weekIndex >= len(goal.WeeksData) {
		return ErrInvalidWeekIndex
	}

	if goal.WeeksData[weekIndex].Status != WeekStatusPending || requestedStatus != WeekStatusCompleted {
		return ErrInvalidTransition
	}

	goal.WeeksData[weekIndex].Status = WeekStatusCompleted

	if weekIndex+1 < len(goal.WeeksData) && goal.WeeksData[weekIndex+1].Status == WeekStatusNotStarted {
		goal.WeeksData[weekIndex+1].Status = WeekStatusPending
	}

	goal.Phase = ComputePhase(goal.WeeksData)

	return nil
}

// ComputePhase derives the goal phase from its week statuses
func ComputePhase(weeks []WeekSubGoal) string {
	if len(weeks) == 0 {
		return PhaseNotStarted
	}

	if allWeeksCompleted(weeks) {
		return PhaseCompleted
	}

	for _, week := range weeks {
		if week.Status == WeekStatusCompleted {
			return PhaseInProgress
		}
	}

	return PhaseNotStarted
}

// NextWeek returns the week after weekIndex as a singleton slice, or an empty
// slice when weekIndex addresses the last week
func NextWeek(goal *Goal, weekIndex int) []WeekSubGoal {
	if weekIndex+1 < len(goal.WeeksData) {
		return []WeekSubGoal{goal.WeeksData[weekIndex+1]}
	}

	return []WeekSubGoal{}
}

func allWeeksCompleted(weeks []WeekSubGoal) bool {
	for _, week := range weeks {
		if week.Status != WeekStatusCompleted {
			return false
		}
	}

	return true
}
