package service

import (
	"context"

	"github.com/Testeur1337/myPomodoro/internal/hierarchy"
	"github.com/Testeur1337/myPomodoro/internal/logger"
	"github.com/Testeur1337/myPomodoro/internal/model"
)

type GoalInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProjectInput struct {
	GoalID      string `json:"goalId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type TopicInput struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
	Color     string `json:"color"`
}

// ListGoals returns goals in stored order. Archived goals are included only
// when archived is set.
func (s *Service) ListGoals(ctx context.Context, archived bool) ([]model.Goal, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Goal, 0, len(ds.Goals))
	for _, g := range ds.Goals {
		if g.Archived && !archived {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

func (s *Service) CreateGoal(ctx context.Context, in GoalInput) (model.Goal, error) {
	g := model.Goal{
		ID:          s.newID(),
		Name:        in.Name,
		Description: in.Description,
		CreatedAt:   s.now().UTC(),
	}
	if err := g.Validate(); err != nil {
		return model.Goal{}, err
	}
	err := s.mutate(ctx, "create goal", func(ds *model.Dataset) error {
		ds.Goals = append(ds.Goals, g)
		return nil
	})
	if err != nil {
		return model.Goal{}, err
	}
	logger.Info("goal created", logger.F("id", g.ID), logger.F("name", g.Name))
	return g, nil
}

func (s *Service) UpdateGoal(ctx context.Context, id string, in GoalInput) (model.Goal, error) {
	var out model.Goal
	err := s.mutate(ctx, "update goal", func(ds *model.Dataset) error {
		i := indexOf(ds.Goals, id, goalKey)
		if i < 0 {
			return notFound("goal", id)
		}
		g := ds.Goals[i]
		g.Name = in.Name
		g.Description = in.Description
		if err := g.Validate(); err != nil {
			return err
		}
		ds.Goals[i] = g
		out = g
		return nil
	})
	return out, err
}

func (s *Service) SetGoalArchived(ctx context.Context, id string, archived bool) (model.Goal, error) {
	if archived && model.IsUnassigned(id) {
		return model.Goal{}, invalid(MsgPlaceholderArchive)
	}
	var out model.Goal
	err := s.mutate(ctx, "archive goal", func(ds *model.Dataset) error {
		i := indexOf(ds.Goals, id, goalKey)
		if i < 0 {
			return notFound("goal", id)
		}
		ds.Goals[i].Archived = archived
		out = ds.Goals[i]
		return nil
	})
	if err == nil {
		logger.Info("goal archived flag changed", logger.F("id", id), logger.F("archived", archived))
	}
	return out, err
}

// ListProjects returns projects, optionally only those of goalID.
func (s *Service) ListProjects(ctx context.Context, goalID string, archived bool) ([]model.Project, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Project, 0, len(ds.Projects))
	for _, p := range ds.Projects {
		if (p.Archived && !archived) || (goalID != "" && p.GoalID != goalID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) CreateProject(ctx context.Context, in ProjectInput) (model.Project, error) {
	p := model.Project{
		ID:          s.newID(),
		GoalID:      in.GoalID,
		Name:        in.Name,
		Description: in.Description,
		Color:       colorOr(in.Color),
		CreatedAt:   s.now().UTC(),
	}
	if err := p.Validate(); err != nil {
		return model.Project{}, err
	}
	err := s.mutate(ctx, "create project", func(ds *model.Dataset) error {
		if _, ok := hierarchy.IndexOf(ds).LiveGoal(p.GoalID); !ok {
			return invalid(hierarchy.MsgGoalNotFound)
		}
		ds.Projects = append(ds.Projects, p)
		return nil
	})
	if err != nil {
		return model.Project{}, err
	}
	logger.Info("project created", logger.F("id", p.ID), logger.F("goal", p.GoalID))
	return p, nil
}

// UpdateProject replaces the editable fields. Moving to another goal needs a
// live goal; keeping the current one is allowed even if it was archived.
func (s *Service) UpdateProject(ctx context.Context, id string, in ProjectInput) (model.Project, error) {
	var out model.Project
	err := s.mutate(ctx, "update project", func(ds *model.Dataset) error {
		i := indexOf(ds.Projects, id, projectKey)
		if i < 0 {
			return notFound("project", id)
		}
		p := ds.Projects[i]
		if in.GoalID != "" && in.GoalID != p.GoalID {
			if model.IsUnassigned(p.ID) {
				return invalid(MsgPlaceholderMove)
			}
			if _, ok := hierarchy.IndexOf(ds).LiveGoal(in.GoalID); !ok {
				return invalid(hierarchy.MsgGoalNotFound)
			}
			p.GoalID = in.GoalID
		}
		p.Name = in.Name
		p.Description = in.Description
		if in.Color != "" {
			p.Color = in.Color
		}
		if err := p.Validate(); err != nil {
			return err
		}
		ds.Projects[i] = p
		out = p
		return nil
	})
	return out, err
}

func (s *Service) SetProjectArchived(ctx context.Context, id string, archived bool) (model.Project, error) {
	if archived && model.IsUnassigned(id) {
		return model.Project{}, invalid(MsgPlaceholderArchive)
	}
	var out model.Project
	err := s.mutate(ctx, "archive project", func(ds *model.Dataset) error {
		i := indexOf(ds.Projects, id, projectKey)
		if i < 0 {
			return notFound("project", id)
		}
		ds.Projects[i].Archived = archived
		out = ds.Projects[i]
		return nil
	})
	if err == nil {
		logger.Info("project archived flag changed", logger.F("id", id), logger.F("archived", archived))
	}
	return out, err
}

// ListTopics returns topics, optionally only those of projectID.
func (s *Service) ListTopics(ctx context.Context, projectID string, archived bool) ([]model.Topic, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.Topic, 0, len(ds.Topics))
	for _, t := range ds.Topics {
		if (t.Archived && !archived) || (projectID != "" && t.ProjectID != projectID) {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) CreateTopic(ctx context.Context, in TopicInput) (model.Topic, error) {
	t := model.Topic{
		ID:        s.newID(),
		ProjectID: in.ProjectID,
		Name:      in.Name,
		Color:     colorOr(in.Color),
		CreatedAt: s.now().UTC(),
	}
	if err := t.Validate(); err != nil {
		return model.Topic{}, err
	}
	err := s.mutate(ctx, "create topic", func(ds *model.Dataset) error {
		if _, ok := hierarchy.IndexOf(ds).LiveProject(t.ProjectID); !ok {
			return invalid(hierarchy.MsgProjectNotFound)
		}
		ds.Topics = append(ds.Topics, t)
		return nil
	})
	if err != nil {
		return model.Topic{}, err
	}
	logger.Info("topic created", logger.F("id", t.ID), logger.F("project", t.ProjectID))
	return t, nil
}

// UpdateTopic replaces the editable fields. Renaming a topic does not touch
// the topic name snapshot stored on earlier sessions.
func (s *Service) UpdateTopic(ctx context.Context, id string, in TopicInput) (model.Topic, error) {
	var out model.Topic
	err := s.mutate(ctx, "update topic", func(ds *model.Dataset) error {
		i := indexOf(ds.Topics, id, topicKey)
		if i < 0 {
			return notFound("topic", id)
		}
		t := ds.Topics[i]
		if in.ProjectID != "" && in.ProjectID != t.ProjectID {
			if model.IsUnassigned(t.ID) {
				return invalid(MsgPlaceholderMove)
			}
			if _, ok := hierarchy.IndexOf(ds).LiveProject(in.ProjectID); !ok {
				return invalid(hierarchy.MsgProjectNotFound)
			}
			t.ProjectID = in.ProjectID
		}
		t.Name = in.Name
		if in.Color != "" {
			t.Color = in.Color
		}
		if err := t.Validate(); err != nil {
			return err
		}
		ds.Topics[i] = t
		out = t
		return nil
	})
	return out, err
}

func (s *Service) SetTopicArchived(ctx context.Context, id string, archived bool) (model.Topic, error) {
	if archived && model.IsUnassigned(id) {
		return model.Topic{}, invalid(MsgPlaceholderArchive)
	}
	var out model.Topic
	err := s.mutate(ctx, "archive topic", func(ds *model.Dataset) error {
		i := indexOf(ds.Topics, id, topicKey)
		if i < 0 {
			return notFound("topic", id)
		}
		ds.Topics[i].Archived = archived
		out = ds.Topics[i]
		return nil
	})
	if err == nil {
		logger.Info("topic archived flag changed", logger.F("id", id), logger.F("archived", archived))
	}
	return out, err
}

// GoalNode is a goal with its projects and their topics.
type GoalNode struct {
	Goal     model.Goal    `json:"goal"`
	Projects []ProjectNode `json:"projects"`
}

type ProjectNode struct {
	Project model.Project `json:"project"`
	Topics  []model.Topic `json:"topics"`
}

// Tree returns the whole hierarchy in stored order.
func (s *Service) Tree(ctx context.Context, archived bool) ([]GoalNode, error) {
	ds, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	topics := make(map[string][]model.Topic)
	for _, t := range ds.Topics {
		if t.Archived && !archived {
			continue
		}
		topics[t.ProjectID] = append(topics[t.ProjectID], t)
	}
	projects := make(map[string][]ProjectNode)
	for _, p := range ds.Projects {
		if p.Archived && !archived {
			continue
		}
		projects[p.GoalID] = append(projects[p.GoalID], ProjectNode{Project: p, Topics: topics[p.ID]})
	}
	nodes := make([]GoalNode, 0, len(ds.Goals))
	for _, g := range ds.Goals {
		if g.Archived && !archived {
			continue
		}
		nodes = append(nodes, GoalNode{Goal: g, Projects: projects[g.ID]})
	}
	return nodes, nil
}

func colorOr(c string) string {
	if c == "" {
		return model.DefaultColor
	}
	return c
}
