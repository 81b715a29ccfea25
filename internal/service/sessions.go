package service

import (
	"context"
	"slices"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
)

// SessionInput is a session as written by a client. ProjectID and GoalID
// are only checked against the topic; the stored values are always derived.
type SessionInput struct {
	Type            model.SessionType `json:"type"`
	TopicID         *string           `json:"topicId"`
	ProjectID       *string           `json:"projectId"`
	GoalID          *string           `json:"goalId"`
	TopicName       *string           `json:"topicName"`
	Note            string            `json:"note"`
	Rating          *int              `json:"rating"`
	StartTime       time.Time         `json:"startTime"`
	EndTime         time.Time         `json:"endTime"`
	DurationSeconds int               `json:"durationSeconds"`
}

func (in SessionInput) request(current *string) hierarchy.SessionRequest {
	return hierarchy.SessionRequest{
		Type:           in.Type,
		TopicID:        in.TopicID,
		ProjectID:      in.ProjectID,
		GoalID:         in.GoalID,
		TopicName:      in.TopicName,
		CurrentTopicID: current,
	}
}

func (in SessionInput) duration() int {
	if in.DurationSeconds > 0 {
		return in.DurationSeconds
	}
	return int(in.EndTime.Sub(in.StartTime) / time.Second)
}

// SessionFilter narrows ListSessions. Zero fields match everything.
type SessionFilter struct {
	From    time.Time // start time at or after
	To      time.Time // start time before
	Type    model.SessionType
	TopicID string
	GoalID  string
}

func (f SessionFilter) match(s model.Session) bool {
	if !f.From.IsZero() && s.StartTime.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !s.StartTime.Before(f.To) {
		return false
	}
	if f.Type != "" && s.Type != f.Type {
		return false
	}
	if f.TopicID != "" && model.Deref(s.TopicID) != f.TopicID {
		return false
	}
	if f.GoalID != "" && model.Deref(s.GoalID) != f.GoalID {
		return false
	}
	return true
}

// ListSessions returns matching sessions ordered by start time.
func (s *Service) ListSessions(ctx context.Context, f SessionFilter) ([]model.Session, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Session, 0, len(ds.Sessions))
	for _, sess := range ds.Sessions {
		if f.match(sess) {
			out = append(out, sess)
		}
	}
	slices.SortStableFunc(out, func(a, b model.Session) int {
		return a.StartTime.Compare(b.StartTime)
	})
	return out, nil
}

func (s *Service) GetSession(ctx context.Context, id string) (model.Session, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return model.Session{}, err
	}
	i := indexOf(ds.Sessions, id, sessionKey)
	if i < 0 {
		return model.Session{}, notFound("session", id)
	}
	return ds.Sessions[i], nil
}

// CreateSession records a session. Its hierarchy fields come from the
// resolver, never from the input directly.
func (s *Service) CreateSession(ctx context.Context, in SessionInput) (model.Session, error) {
	sess := model.Session{
		ID:              s.newID(),
		Type:            in.Type,
		Note:            in.Note,
		Rating:          in.Rating,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		DurationSeconds: in.duration(),
		CreatedAt:       s.now().UTC(),
	}
	if err := sess.Validate(); err != nil {
		return model.Session{}, err
	}
	err := s.mutate(ctx, "create session", func(ds *model.Dataset) error {
		a, err := s.resolver.Resolve(in.request(nil), hierarchy.IndexOf(ds))
		if err != nil {
			return err
		}
		a.Apply(&sess)
		ds.Sessions = append(ds.Sessions, sess)
		return nil
	})
	if err != nil {
		return model.Session{}, err
	}
	logger.Info("session recorded",
		logger.F("id", sess.ID),
		logger.F("type", sess.Type),
		logger.F("topic", model.Deref(sess.TopicID)),
		logger.F("seconds", sess.DurationSeconds))
	return sess, nil
}

// UpdateSession replaces a session's editable fields and derives its
// hierarchy again. A session may keep a topic that has since been archived.
func (s *Service) UpdateSession(ctx context.Context, id string, in SessionInput) (model.Session, error) {
	var out model.Session
	err := s.mutate(ctx, "update session", func(ds *model.Dataset) error {
		i := indexOf(ds.Sessions, id, sessionKey)
		if i < 0 {
			return notFound("session", id)
		}
		sess := ds.Sessions[i]
		wasBreak := sess.Type == model.SessionBreak
		sess.Type = in.Type
		sess.Note = in.Note
		sess.Rating = in.Rating
		sess.StartTime = in.StartTime
		sess.EndTime = in.EndTime
		sess.DurationSeconds = in.duration()
		if err := sess.Validate(); err != nil {
			return err
		}

		req := in.request(ds.Sessions[i].TopicID)
		// A break keeps its label unless the client sends one; "" clears it.
		// A focus session turned break does not inherit its topic's name.
		if wasBreak && req.TopicName == nil && in.TopicID == nil {
			req.TopicName = sess.TopicName
		}
		a, err := s.resolver.Resolve(req, hierarchy.IndexOf(ds))
		if err != nil {
			return err
		}
		a.Apply(&sess)
		ds.Sessions[i] = sess
		out = sess
		return nil
	})
	if err == nil {
		logger.Info("session updated", logger.F("id", id))
	}
	return out, err
}

// DeleteSession removes a session for good.
func (s *Service) DeleteSession(ctx context.Context, id string) error {
	err := s.mutate(ctx, "delete session", func(ds *model.Dataset) error {
		i := indexOf(ds.Sessions, id, sessionKey)
		if i < 0 {
			return notFound("session", id)
		}
		ds.Sessions = slices.Delete(ds.Sessions, i, i+1)
		return nil
	})
	if err == nil {
		logger.Info("session deleted", logger.F("id", id))
	}
	return err
}
