package model

// DatasetVersion is the document format written by this module.
const DatasetVersion = 1

// Dataset is the whole persisted document. It is always read and written
// as one unit.
type Dataset struct {
	Version        int                    `json:"version"`
	Goals          []Goal                 `json:"goals"`
	Projects       []Project              `json:"projects"`
	Topics         []Topic                `json:"topics"`
	Sessions       []Session              `json:"sessions"`
	RecurringTasks []RecurringTask        `json:"recurringTasks"`
	Templates      []TimeBlockingTemplate `json:"templates"`
	Planner        map[string]PlannerDay  `json:"planner"`
}

// NewDataset returns an empty dataset at the current version.
func NewDataset() *Dataset {
	d := &Dataset{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so the encoded
// document never carries nulls.
func (d *Dataset) Normalize() {
	if d.Version == 0 {
		d.Version = DatasetVersion
	}
	if d.Goals == nil {
		d.Goals = []Goal{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	if d.Topics == nil {
		d.Topics = []Topic{}
	}
	if d.Sessions == nil {
		d.Sessions = []Session{}
	}
	if d.RecurringTasks == nil {
		d.RecurringTasks = []RecurringTask{}
	}
	if d.Templates == nil {
		d.Templates = []TimeBlockingTemplate{}
	}
	if d.Planner == nil {
		d.Planner = map[string]PlannerDay{}
	}
	for key, day := range d.Planner {
		if day.Tasks == nil {
			day.Tasks = []PlannerTask{}
			d.Planner[key] = day
		}
	}
}

// Validate checks the shape of every entity and id uniqueness per type.
func (d *Dataset) Validate() error {
	ids := newIDSet()
	for _, g := range d.Goals {
		if err := g.Validate(); err != nil {
			return err
		}
		if err := ids.add("goal", g.ID); err != nil {
			return err
		}
	}
	for _, p := range d.Projects {
		if err := p.Validate(); err != nil {
			return err
		}
		if err := ids.add("project", p.ID); err != nil {
			return err
		}
	}
	for _, t := range d.Topics {
		if err := t.Validate(); err != nil {
			return err
		}
		if err := ids.add("topic", t.ID); err != nil {
			return err
		}
	}
	for _, s := range d.Sessions {
		if err := s.Validate(); err != nil {
			return err
		}
		if err := ids.add("session", s.ID); err != nil {
			return err
		}
	}
	for _, r := range d.RecurringTasks {
		if err := r.Validate(); err != nil {
			return err
		}
		if err := ids.add("recurring task", r.ID); err != nil {
			return err
		}
	}
	for _, t := range d.Templates {
		if err := t.Validate(); err != nil {
			return err
		}
		if err := ids.add("template", t.ID); err != nil {
			return err
		}
	}
	for key, day := range d.Planner {
		if key != day.Date {
			return schemaErr("planner day", key, "date", "does not match its key")
		}
		if err := day.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type idSet map[string]map[string]struct{}

func newIDSet() idSet {
	return idSet{}
}

func (s idSet) add(entity, id string) error {
	seen, ok := s[entity]
	if !ok {
		seen = map[string]struct{}{}
		s[entity] = seen
	}
	if _, dup := seen[id]; dup {
		return schemaErr(entity, id, "id", "is not unique")
	}
	seen[id] = struct{}{}
	return nil
}
