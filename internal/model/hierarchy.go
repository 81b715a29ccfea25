package model

import "time"

// Goal is the top of the hierarchy and groups projects.
type Goal struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	Archived    bool      `json:"archived"`
}

// Project is a body of work under a goal.
type Project struct {
	ID          string    `json:"id"`
	GoalID      string    `json:"goalId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	CreatedAt   time.Time `json:"createdAt"`
	Archived    bool      `json:"archived"`
}

// Topic is the unit a focus session is tagged with.
type Topic struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"projectId"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	Archived  bool      `json:"archived"`
}

// DefaultColor is used for projects and topics created without one.
const DefaultColor = "#4ECDC4"

func (g Goal) Validate() error {
	if err := requireID("goal", g.ID); err != nil {
		return err
	}
	if !nonEmpty(g.Name) {
		return schemaErr("goal", g.ID, "name", "must not be empty")
	}
	return nil
}

// Validate checks the shape of a project. A missing goalId is a dangling
// reference for the migrator to re-home, not a shape error.
func (p Project) Validate() error {
	if err := requireID("project", p.ID); err != nil {
		return err
	}
	if !nonEmpty(p.Name) {
		return schemaErr("project", p.ID, "name", "must not be empty")
	}
	return nil
}

// Validate checks the shape of a topic. An empty projectId is left to the
// migrator, like any other dangling parent.
func (t Topic) Validate() error {
	if err := requireID("topic", t.ID); err != nil {
		return err
	}
	if !nonEmpty(t.Name) {
		return schemaErr("topic", t.ID, "name", "must not be empty")
	}
	return nil
}
