package hierarchy

import "github.com/Testeur1337/myPomodoro/internal/model"

// Index is a read-only, id-keyed snapshot of the goal/project/topic
// collections. Archived entities are included.
type Index struct {
	goals    map[string]model.Goal
	projects map[string]model.Project
	topics   map[string]model.Topic
}

// NewIndex builds an index over the given collections.
func NewIndex(goals []model.Goal, projects []model.Project, topics []model.Topic) *Index {
	ix := &Index{
		goals:    make(map[string]model.Goal, len(goals)),
		projects: make(map[string]model.Project, len(projects)),
		topics:   make(map[string]model.Topic, len(topics)),
	}
	for _, g := range goals {
		ix.goals[g.ID] = g
	}
	for _, p := range projects {
		ix.projects[p.ID] = p
	}
	for _, t := range topics {
		ix.topics[t.ID] = t
	}
	return ix
}

// IndexOf indexes a dataset.
func IndexOf(d *model.Dataset) *Index {
	return NewIndex(d.Goals, d.Projects, d.Topics)
}

func (ix *Index) Goal(id string) (model.Goal, bool) {
	g, ok := ix.goals[id]
	return g, ok
}

func (ix *Index) Project(id string) (model.Project, bool) {
	p, ok := ix.projects[id]
	return p, ok
}

func (ix *Index) Topic(id string) (model.Topic, bool) {
	t, ok := ix.topics[id]
	return t, ok
}

// LiveGoal returns the goal only if it exists and is not archived.
func (ix *Index) LiveGoal(id string) (model.Goal, bool) {
	g, ok := ix.Goal(id)
	return g, ok && !g.Archived
}

// LiveProject returns the project only if it exists and is not archived.
func (ix *Index) LiveProject(id string) (model.Project, bool) {
	p, ok := ix.Project(id)
	return p, ok && !p.Archived
}
