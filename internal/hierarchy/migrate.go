package hierarchy

import (
	"slices"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

// Collections is the part of the dataset the migrator repairs.
type Collections struct {
	Goals    []model.Goal
	Projects []model.Project
	Topics   []model.Topic
	Sessions []model.Session
}

// CollectionsOf extracts the hierarchy collections of a dataset.
func CollectionsOf(d *model.Dataset) Collections {
	return Collections{
		Goals:    d.Goals,
		Projects: d.Projects,
		Topics:   d.Topics,
		Sessions: d.Sessions,
	}
}

// ApplyTo writes the collections back into a dataset.
func (c Collections) ApplyTo(d *model.Dataset) {
	d.Goals = c.Goals
	d.Projects = c.Projects
	d.Topics = c.Topics
	d.Sessions = c.Sessions
}

// Report describes what a migration pass changed.
type Report struct {
	Created  []string // placeholder ids that had to be created
	Adopted  []string // legacy placeholders re-keyed to the well-known id
	Restored []string // placeholders that were un-archived

	ReboundProjects   int // projects moved to the Unassigned goal
	ReboundTopics     int // topics moved to the Unassigned project
	ReboundSessions   int // sessions moved to the Unassigned topic
	RewrittenSessions int // sessions whose derived hierarchy fields changed
}

// Changed reports whether the pass altered anything.
func (r Report) Changed() bool {
	return len(r.Created) > 0 || len(r.Adopted) > 0 || len(r.Restored) > 0 ||
		r.ReboundProjects > 0 || r.ReboundTopics > 0 ||
		r.ReboundSessions > 0 || r.RewrittenSessions > 0
}

// Migrate repairs dangling references top-down, re-homing orphans onto the
// Unassigned placeholders. It never fails and never mutates its input.
// Running it on its own output changes nothing.
func Migrate(in Collections, now time.Time) (Collections, Report) {
	var rep Report
	out := Collections{
		Goals:    slices.Clone(in.Goals),
		Projects: slices.Clone(in.Projects),
		Topics:   slices.Clone(in.Topics),
		Sessions: slices.Clone(in.Sessions),
	}
	if out.Goals == nil {
		out.Goals = []model.Goal{}
	}
	if out.Projects == nil {
		out.Projects = []model.Project{}
	}
	if out.Topics == nil {
		out.Topics = []model.Topic{}
	}
	if out.Sessions == nil {
		out.Sessions = []model.Session{}
	}

	// 1. Unassigned goal.
	goalRemap := ""
	out.Goals, goalRemap = ensureGoal(out.Goals, now, &rep)
	goalIDs := make(map[string]struct{}, len(out.Goals))
	for _, g := range out.Goals {
		goalIDs[g.ID] = struct{}{}
	}

	// 2. Projects pointing at unknown goals.
	for i := range out.Projects {
		p := &out.Projects[i]
		if goalRemap != "" && p.GoalID == goalRemap {
			p.GoalID = model.UnassignedGoalID
		}
		if _, ok := goalIDs[p.GoalID]; !ok {
			p.GoalID = model.UnassignedGoalID
			rep.ReboundProjects++
		}
	}

	// 3. Unassigned project, always under the Unassigned goal.
	projectRemap := ""
	out.Projects, projectRemap = ensureProject(out.Projects, now, &rep)
	projects := make(map[string]model.Project, len(out.Projects))
	for _, p := range out.Projects {
		projects[p.ID] = p
	}

	// 4. Topics pointing at unknown projects.
	for i := range out.Topics {
		t := &out.Topics[i]
		if projectRemap != "" && t.ProjectID == projectRemap {
			t.ProjectID = model.UnassignedProjectID
		}
		if _, ok := projects[t.ProjectID]; !ok {
			t.ProjectID = model.UnassignedProjectID
			rep.ReboundTopics++
		}
	}

	// 5. Unassigned topic, always under the Unassigned project.
	topicRemap := ""
	out.Topics, topicRemap = ensureTopic(out.Topics, now, &rep)
	topics := make(map[string]model.Topic, len(out.Topics))
	for _, t := range out.Topics {
		topics[t.ID] = t
	}

	// 6. Sessions: re-home, then re-derive from the live topic chain.
	for i, s := range out.Sessions {
		before := s
		topicID := model.Deref(s.TopicID)
		if topicRemap != "" && topicID == topicRemap {
			topicID = model.UnassignedTopicID
		}
		_, resolves := topics[topicID]
		switch {
		case topicID == "" && s.Type == model.SessionFocus:
			topicID = model.UnassignedTopicID
			rep.ReboundSessions++
		case topicID != "" && !resolves:
			topicID = model.UnassignedTopicID
			rep.ReboundSessions++
		}

		if topicID == "" {
			s.TopicID = nil
			s.ProjectID = nil
			s.GoalID = nil
		} else {
			topic := topics[topicID]
			project := projects[topic.ProjectID]
			s.TopicID = model.Ptr(topic.ID)
			s.TopicName = model.Ptr(topic.Name)
			s.ProjectID = model.Ptr(project.ID)
			s.GoalID = model.Ptr(project.GoalID)
		}
		if !sameHierarchy(before, s) {
			rep.RewrittenSessions++
		}
		out.Sessions[i] = s
	}

	return out, rep
}

// MigrateDataset runs Migrate over a dataset in place.
func MigrateDataset(d *model.Dataset, now time.Time) Report {
	out, rep := Migrate(CollectionsOf(d), now)
	out.ApplyTo(d)
	return rep
}

func ensureGoal(goals []model.Goal, now time.Time, rep *Report) ([]model.Goal, string) {
	remap := ""
	idx := slices.IndexFunc(goals, func(g model.Goal) bool { return g.ID == model.UnassignedGoalID })
	if idx < 0 {
		// Compatibility with data written before the well-known ids existed.
		idx = slices.IndexFunc(goals, func(g model.Goal) bool { return g.Name == model.UnassignedName })
		if idx >= 0 {
			remap = goals[idx].ID
			goals[idx].ID = model.UnassignedGoalID
			rep.Adopted = append(rep.Adopted, model.UnassignedGoalID)
		}
	}
	if idx < 0 {
		rep.Created = append(rep.Created, model.UnassignedGoalID)
		return append(goals, model.UnassignedGoal(now)), remap
	}
	if goals[idx].Archived {
		goals[idx].Archived = false
		rep.Restored = append(rep.Restored, model.UnassignedGoalID)
	}
	return goals, remap
}

func ensureProject(projects []model.Project, now time.Time, rep *Report) ([]model.Project, string) {
	remap := ""
	idx := slices.IndexFunc(projects, func(p model.Project) bool { return p.ID == model.UnassignedProjectID })
	if idx < 0 {
		idx = slices.IndexFunc(projects, func(p model.Project) bool {
			return p.Name == model.UnassignedName && p.GoalID == model.UnassignedGoalID
		})
		if idx >= 0 {
			remap = projects[idx].ID
			projects[idx].ID = model.UnassignedProjectID
			rep.Adopted = append(rep.Adopted, model.UnassignedProjectID)
		}
	}
	if idx < 0 {
		rep.Created = append(rep.Created, model.UnassignedProjectID)
		return append(projects, model.UnassignedProject(now)), remap
	}
	p := &projects[idx]
	if p.GoalID != model.UnassignedGoalID {
		p.GoalID = model.UnassignedGoalID
		rep.ReboundProjects++
	}
	if p.Archived {
		p.Archived = false
		rep.Restored = append(rep.Restored, model.UnassignedProjectID)
	}
	return projects, remap
}

func ensureTopic(topics []model.Topic, now time.Time, rep *Report) ([]model.Topic, string) {
	remap := ""
	idx := slices.IndexFunc(topics, func(t model.Topic) bool { return t.ID == model.UnassignedTopicID })
	if idx < 0 {
		idx = slices.IndexFunc(topics, func(t model.Topic) bool {
			return t.Name == model.UnassignedName && t.ProjectID == model.UnassignedProjectID
		})
		if idx >= 0 {
			remap = topics[idx].ID
			topics[idx].ID = model.UnassignedTopicID
			rep.Adopted = append(rep.Adopted, model.UnassignedTopicID)
		}
	}
	if idx < 0 {
		rep.Created = append(rep.Created, model.UnassignedTopicID)
		return append(topics, model.UnassignedTopic(now)), remap
	}
	t := &topics[idx]
	if t.ProjectID != model.UnassignedProjectID {
		t.ProjectID = model.UnassignedProjectID
		rep.ReboundTopics++
	}
	if t.Archived {
		t.Archived = false
		rep.Restored = append(rep.Restored, model.UnassignedTopicID)
	}
	return topics, remap
}

func sameHierarchy(a, b model.Session) bool {
	return equalRef(a.TopicID, b.TopicID) &&
		equalRef(a.TopicName, b.TopicName) &&
		equalRef(a.ProjectID, b.ProjectID) &&
		equalRef(a.GoalID, b.GoalID)
}

func equalRef(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
