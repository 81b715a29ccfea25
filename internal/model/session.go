package model

import "time"

// SessionType distinguishes focus intervals from breaks.
type SessionType string

const (
	SessionFocus SessionType = "focus"
	SessionBreak SessionType = "break"
)

// Valid reports whether t is a known session type.
func (t SessionType) Valid() bool {
	return t == SessionFocus || t == SessionBreak
}

// Session is one completed focus or break interval. GoalID, ProjectID and
// TopicName are derived from TopicID and are never authored directly.
type Session struct {
	ID              string      `json:"id"`
	Type            SessionType `json:"type"`
	GoalID          *string     `json:"goalId"`
	ProjectID       *string     `json:"projectId"`
	TopicID         *string     `json:"topicId"`
	TopicName       *string     `json:"topicName"`
	Note            string      `json:"note"`
	Rating          *int        `json:"rating"`
	StartTime       time.Time   `json:"startTime"`
	EndTime         time.Time   `json:"endTime"`
	DurationSeconds int         `json:"durationSeconds"`
	CreatedAt       time.Time   `json:"createdAt"`
}

func (s Session) Validate() error {
	if err := requireID("session", s.ID); err != nil {
		return err
	}
	if !s.Type.Valid() {
		return schemaErr("session", s.ID, "type", "must be focus or break")
	}
	if !validRating(s.Rating) {
		return schemaErr("session", s.ID, "rating", "must be between 1 and 5")
	}
	if s.DurationSeconds < 1 {
		return schemaErr("session", s.ID, "durationSeconds", "must be at least 1")
	}
	if err := requireTime("session", s.ID, "startTime", s.StartTime); err != nil {
		return err
	}
	if err := requireTime("session", s.ID, "endTime", s.EndTime); err != nil {
		return err
	}
	if s.EndTime.Before(s.StartTime) {
		return schemaErr("session", s.ID, "endTime", "must not be before startTime")
	}
	return nil
}
