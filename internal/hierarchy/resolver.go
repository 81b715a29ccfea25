package hierarchy

import (
	"fmt"
	"strings"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

// Policy decides what happens when a client sends projectId/goalId values
// that disagree with the topic's real ancestry.
type Policy int

const (
	// PolicyReject fails the write with a ValidationError.
	PolicyReject Policy = iota
	// PolicyOverride replaces the client values with the derived ones.
	PolicyOverride
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyOverride:
		return "override"
	default:
		return "unknown"
	}
}

// ParsePolicy converts a config value to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "override":
		return PolicyOverride, nil
	default:
		return PolicyReject, fmt.Errorf("unknown conflict policy %q (want reject or override)", s)
	}
}

// SessionRequest is the hierarchy part of a session create or update.
type SessionRequest struct {
	Type      model.SessionType
	TopicID   *string
	ProjectID *string
	GoalID    *string
	TopicName *string

	// CurrentTopicID is the topic the session is already tagged with, set on
	// updates only. Keeping that tag is allowed even after it was archived.
	CurrentTopicID *string
}

// Assignment is the authoritative hierarchy to persist on a session.
type Assignment struct {
	TopicID   *string
	TopicName *string
	ProjectID *string
	GoalID    *string
}

// Apply copies the assignment onto a session.
func (a Assignment) Apply(s *model.Session) {
	s.TopicID = a.TopicID
	s.TopicName = a.TopicName
	s.ProjectID = a.ProjectID
	s.GoalID = a.GoalID
}

// Resolver derives session hierarchy fields from a topic reference.
// The zero value rejects conflicting references.
type Resolver struct {
	Policy Policy
}

// Resolve returns the hierarchy to store for req, or a *ValidationError.
// It has no side effects.
func (r Resolver) Resolve(req SessionRequest, ix *Index) (Assignment, error) {
	topicID, hasTopic := given(req.TopicID)
	if !hasTopic {
		if req.Type == model.SessionFocus {
			return Assignment{}, invalid(MsgFocusRequiresTopic)
		}
		// A break without a topic never joins the hierarchy, whatever
		// project or goal the client sent.
		var name *string
		if n, ok := given(req.TopicName); ok {
			name = model.Ptr(n)
		}
		return Assignment{TopicName: name}, nil
	}

	keeping := false
	if cur, ok := given(req.CurrentTopicID); ok && cur == topicID {
		keeping = true
	}

	topic, ok := ix.Topic(topicID)
	if !ok || (topic.Archived && !keeping) {
		return Assignment{}, invalid(MsgTopicNotFound)
	}
	project, ok := ix.Project(topic.ProjectID)
	if !ok || (project.Archived && !keeping) {
		return Assignment{}, invalid(MsgTopicProjectNotFound)
	}

	if r.Policy == PolicyReject {
		if pid, ok := given(req.ProjectID); ok && pid != project.ID {
			return Assignment{}, invalid(MsgProjectMismatch)
		}
		if gid, ok := given(req.GoalID); ok && gid != project.GoalID {
			return Assignment{}, invalid(MsgGoalMismatch)
		}
	}

	return Assignment{
		TopicID:   model.Ptr(topic.ID),
		TopicName: model.Ptr(topic.Name),
		ProjectID: model.Ptr(project.ID),
		GoalID:    model.Ptr(project.GoalID),
	}, nil
}

// given treats nil and blank strings as absent.
func given(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	s := strings.TrimSpace(*p)
	return s, s != ""
}
