package model

import "time"

// Well-known ids of the placeholder entities that orphaned references are
// re-homed to. Compare against these; never detect placeholders by name.
const (
	UnassignedGoalID    = "unassigned-goal"
	UnassignedProjectID = "unassigned-project"
	UnassignedTopicID   = "unassigned-topic"

	UnassignedName  = "Unassigned"
	UnassignedColor = "#6C757D"
)

// IsUnassigned reports whether id names one of the placeholder entities.
func IsUnassigned(id string) bool {
	switch id {
	case UnassignedGoalID, UnassignedProjectID, UnassignedTopicID:
		return true
	}
	return false
}

// UnassignedGoal returns a fresh placeholder goal.
func UnassignedGoal(now time.Time) Goal {
	return Goal{
		ID:          UnassignedGoalID,
		Name:        UnassignedName,
		Description: "Holds projects whose goal no longer exists",
		CreatedAt:   now,
	}
}

// UnassignedProject returns a fresh placeholder project under the placeholder goal.
func UnassignedProject(now time.Time) Project {
	return Project{
		ID:          UnassignedProjectID,
		GoalID:      UnassignedGoalID,
		Name:        UnassignedName,
		Description: "Holds topics whose project no longer exists",
		Color:       UnassignedColor,
		CreatedAt:   now,
	}
}

// UnassignedTopic returns a fresh placeholder topic under the placeholder project.
func UnassignedTopic(now time.Time) Topic {
	return Topic{
		ID:        UnassignedTopicID,
		ProjectID: UnassignedProjectID,
		Name:      UnassignedName,
		Color:     UnassignedColor,
		CreatedAt: now,
	}
}
