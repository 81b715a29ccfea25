package planner

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

func mustDate(t *testing.T, s string) model.Date {
	t.Helper()
	d, err := model.ParseDate(s)
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return d
}

// weeklyThursday is due every Thursday from 2024-01-04 on.
func weeklyThursday() model.RecurringTask {
	return model.RecurringTask{
		ID:              "R1",
		Title:           "Review",
		Priority:        model.PriorityHigh,
		Note:            "weekly review",
		Recurrence:      model.RecurrenceRule{Type: model.RecurWeekly, Interval: 1, Weekdays: []int{4}},
		DefaultSchedule: &model.Schedule{StartMin: 540, EndMin: 600},
		CreatedAt:       time.Date(2024, 1, 4, 9, 0, 0, 0, time.UTC),
	}
}

func countSource(day model.PlannerDay, id string) int {
	n := 0
	for _, t := range day.Tasks {
		if t.SourceRecurringID == id {
			n++
		}
	}
	return n
}

func TestExpandTombstoneSuppressesOnlyThatDate(t *testing.T) {
	rec := []model.RecurringTask{weeklyThursday()}
	feb1 := mustDate(t, "2024-02-01")

	got := Expand(feb1, model.PlannerDay{}, rec)
	if len(got.Tasks) != 1 || got.Tasks[0].SourceRecurringID != "R1" {
		t.Fatalf("expected a single R1 instance, got %+v", got.Tasks)
	}
	v := got.Tasks[0]
	if !v.Virtual || v.Completed || v.ID != "rec-R1-2024-02-01" {
		t.Fatalf("unexpected virtual task %+v", v)
	}
	if v.StartMin == nil || *v.StartMin != 540 || *v.EndMin != 600 {
		t.Fatalf("expected default schedule to be copied, got %v-%v", v.StartMin, v.EndMin)
	}
	if !got.GeneratedFromRecurring {
		t.Fatalf("expected generatedFromRecurring")
	}

	v.Deleted = true
	saved := Promote(feb1, model.PlannerDay{}, []model.PlannerTask{v})
	again := Expand(feb1, saved, rec)
	if n := countSource(again, "R1"); n != 0 {
		t.Fatalf("expected no R1 instance after tombstone, got %d", n)
	}
	if !again.GeneratedFromRecurring {
		t.Fatalf("expected generatedFromRecurring to stay set")
	}

	next := Expand(mustDate(t, "2024-02-08"), model.PlannerDay{}, rec)
	if n := countSource(next, "R1"); n != 1 {
		t.Fatalf("expected R1 on the following week, got %d", n)
	}
}

func TestExpandIsIdempotent(t *testing.T) {
	rec := []model.RecurringTask{
		weeklyThursday(),
		{
			ID:         "R2",
			Title:      "Stretch",
			Priority:   model.PriorityLow,
			Recurrence: model.RecurrenceRule{Type: model.RecurDaily, Interval: 1},
			CreatedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	date := mustDate(t, "2024-02-01")
	day := model.PlannerDay{
		Date: "2024-02-01",
		Tasks: []model.PlannerTask{
			{ID: "a", Title: "Write", Priority: model.PriorityMedium},
		},
	}

	first := Expand(date, day, rec)
	second := Expand(date, day, rec)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical expansions\nfirst:  %+v\nsecond: %+v", first, second)
	}
	if len(first.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(first.Tasks))
	}

	// Expanding the promoted result must not add anything new.
	promoted := Promote(date, day, first.Tasks)
	third := Expand(date, promoted, rec)
	if len(third.Tasks) != 3 {
		t.Fatalf("expected promoted day to expand to 3 tasks, got %+v", third.Tasks)
	}
	for _, task := range third.Tasks {
		if task.Virtual {
			t.Fatalf("expected promoted task %s not to be virtual", task.ID)
		}
	}
}

func TestExpandRespectsPersistedInstance(t *testing.T) {
	rec := []model.RecurringTask{weeklyThursday()}
	date := mustDate(t, "2024-02-01")
	day := model.PlannerDay{
		Date: "2024-02-01",
		Tasks: []model.PlannerTask{
			{ID: "rec-R1-2024-02-01", Title: "Review (moved)", Priority: model.PriorityHigh,
				Completed: true, StartMin: model.Ptr(900), EndMin: model.Ptr(960), SourceRecurringID: "R1"},
		},
	}
	got := Expand(date, day, rec)
	if len(got.Tasks) != 1 {
		t.Fatalf("expected only the persisted instance, got %+v", got.Tasks)
	}
	if !got.Tasks[0].Completed || *got.Tasks[0].StartMin != 900 {
		t.Fatalf("expected persisted overrides to win, got %+v", got.Tasks[0])
	}
	if got.GeneratedFromRecurring {
		t.Fatalf("expected flag to stay false when nothing was synthesized")
	}
}

func TestExpandDeduplicatesPersistedTasks(t *testing.T) {
	date := mustDate(t, "2024-02-01")
	day := model.PlannerDay{
		Date: "2024-02-01",
		Tasks: []model.PlannerTask{
			{ID: "a", Title: "one", Priority: model.PriorityLow},
			{ID: "a", Title: "one again", Priority: model.PriorityLow},
			{ID: "b", Title: "r", Priority: model.PriorityLow, SourceRecurringID: "R9"},
			{ID: "c", Title: "r again", Priority: model.PriorityLow, SourceRecurringID: "R9"},
			{ID: "d", Title: "gone", Priority: model.PriorityLow, Deleted: true},
		},
	}
	got := Expand(date, day, nil)
	var ids []string
	for _, task := range got.Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", ids)
	}
}

func TestExpandSkipsArchivedAndUnmatched(t *testing.T) {
	archived := weeklyThursday()
	archived.Archived = true
	got := Expand(mustDate(t, "2024-02-01"), model.PlannerDay{}, []model.RecurringTask{archived})
	if len(got.Tasks) != 0 {
		t.Fatalf("expected archived definition to be skipped, got %+v", got.Tasks)
	}
	got = Expand(mustDate(t, "2024-02-02"), model.PlannerDay{}, []model.RecurringTask{weeklyThursday()})
	if len(got.Tasks) != 0 {
		t.Fatalf("expected Friday to have no instance, got %+v", got.Tasks)
	}
}

func TestExpandDoesNotModifyInput(t *testing.T) {
	day := model.PlannerDay{
		Date:  "2024-02-01",
		Tasks: []model.PlannerTask{{ID: "x", Title: "x", Priority: model.PriorityLow, Deleted: true, SourceRecurringID: "R1"}},
	}
	before := fmt.Sprintf("%+v", day)
	Expand(mustDate(t, "2024-02-01"), day, []model.RecurringTask{weeklyThursday()})
	if after := fmt.Sprintf("%+v", day); after != before {
		t.Fatalf("expected input unchanged\nbefore: %s\nafter:  %s", before, after)
	}
}

func TestPromoteKeepsTombstones(t *testing.T) {
	date := mustDate(t, "2024-02-01")
	persisted := model.PlannerDay{
		Date: "2024-02-01",
		Tasks: []model.PlannerTask{
			{ID: "rec-R1-2024-02-01", Title: "Review", Priority: model.PriorityHigh, SourceRecurringID: "R1", Deleted: true},
			{ID: "old", Title: "old", Priority: model.PriorityLow},
		},
	}
	// The client only ever sees the expanded view, which has no tombstones.
	saved := Promote(date, persisted, []model.PlannerTask{{ID: "new", Title: "new", Priority: model.PriorityLow}})
	if len(saved.Tasks) != 2 || saved.Tasks[1].ID != "rec-R1-2024-02-01" || !saved.Tasks[1].Deleted {
		t.Fatalf("expected tombstone to be carried over, got %+v", saved.Tasks)
	}
	if saved.Date != "2024-02-01" {
		t.Fatalf("expected date key, got %q", saved.Date)
	}

	// Sending a live task from the same source replaces the tombstone.
	revived := Promote(date, persisted, []model.PlannerTask{
		{ID: "rec-R1-2024-02-01", Title: "Review", Priority: model.PriorityHigh, SourceRecurringID: "R1", Virtual: true},
	})
	if len(revived.Tasks) != 1 || revived.Tasks[0].Deleted || revived.Tasks[0].Virtual {
		t.Fatalf("expected revived instance only, got %+v", revived.Tasks)
	}
	if !revived.GeneratedFromRecurring {
		t.Fatalf("expected generatedFromRecurring for a saved recurring instance")
	}
}

func TestApplyTemplate(t *testing.T) {
	day := model.PlannerDay{
		Date: "2024-02-01",
		Tasks: []model.PlannerTask{
			{ID: "keep", Title: "r", Priority: model.PriorityLow, SourceRecurringID: "R1"},
			{ID: "drop", Title: "plain", Priority: model.PriorityLow},
		},
	}
	tpl := model.TimeBlockingTemplate{
		ID:   "tpl",
		Name: "Deep work",
		Blocks: []model.TemplateBlock{
			{Title: "Focus", StartMin: 480, EndMin: 600, Priority: model.PriorityHigh},
			{Title: "Email", StartMin: 600, EndMin: 630, Priority: model.PriorityLow},
		},
	}
	n := 0
	newID := func() string { n++; return fmt.Sprintf("t%d", n) }

	appended := ApplyTemplate(day, tpl, false, newID)
	if len(appended.Tasks) != 4 {
		t.Fatalf("expected 4 tasks, got %d", len(appended.Tasks))
	}

	replaced := ApplyTemplate(day, tpl, true, newID)
	var ids []string
	for _, task := range replaced.Tasks {
		ids = append(ids, task.ID)
	}
	if !reflect.DeepEqual(ids, []string{"keep", "t3", "t4"}) {
		t.Fatalf("expected [keep t3 t4], got %v", ids)
	}
	if *replaced.Tasks[1].StartMin != 480 || *replaced.Tasks[1].EndMin != 600 {
		t.Fatalf("expected block schedule, got %+v", replaced.Tasks[1])
	}
	if len(day.Tasks) != 2 {
		t.Fatalf("expected input day untouched")
	}
}

func TestMoveRecurringInstanceLeavesTombstone(t *testing.T) {
	rec := []model.RecurringTask{weeklyThursday()}
	feb1 := mustDate(t, "2024-02-01")
	feb2 := mustDate(t, "2024-02-02")

	view := Expand(feb1, model.PlannerDay{}, rec)
	task, ok := Find(view, "rec-R1-2024-02-01")
	if !ok {
		t.Fatalf("expected virtual task in view")
	}
	src, dst := Move(model.PlannerDay{Date: "2024-02-01"}, model.PlannerDay{Date: "2024-02-02"}, task, "moved")

	if n := countSource(Expand(feb1, src, rec), "R1"); n != 0 {
		t.Fatalf("expected no regeneration on source date, got %d", n)
	}
	moved := Expand(feb2, dst, rec)
	if len(moved.Tasks) != 1 || moved.Tasks[0].ID != "moved" || moved.Tasks[0].SourceRecurringID != "" {
		t.Fatalf("expected plain moved task on target, got %+v", moved.Tasks)
	}
}

func TestMovePlainTask(t *testing.T) {
	src := model.PlannerDay{Date: "2024-02-01", Tasks: []model.PlannerTask{
		{ID: "a", Title: "a", Priority: model.PriorityLow},
		{ID: "b", Title: "b", Priority: model.PriorityLow},
	}}
	dst := model.PlannerDay{Date: "2024-02-03"}
	from, to := Move(src, dst, src.Tasks[0], "a2")
	if len(from.Tasks) != 1 || from.Tasks[0].ID != "b" {
		t.Fatalf("expected a removed from source, got %+v", from.Tasks)
	}
	if len(to.Tasks) != 1 || to.Tasks[0].ID != "a2" || to.Tasks[0].Title != "a" {
		t.Fatalf("expected a2 on target, got %+v", to.Tasks)
	}
}

func TestExpandInstanceSurvivesIDCollision(t *testing.T) {
	rec := []model.RecurringTask{weeklyThursday()}
	feb1 := mustDate(t, "2024-02-01")
	day := model.PlannerDay{Date: "2024-02-01", Tasks: []model.PlannerTask{
		{ID: VirtualID("R1", feb1), Title: "Plain task", Priority: model.PriorityLow},
		{ID: VirtualID("R1", feb1) + "-v1", Title: "Old tombstone", Priority: model.PriorityLow, Deleted: true},
	}}

	got := Expand(feb1, day, rec)
	if len(got.Tasks) != 2 {
		t.Fatalf("expected plain task and R1 instance, got %+v", got.Tasks)
	}
	if got.Tasks[0].Title != "Plain task" || got.Tasks[0].SourceRecurringID != "" {
		t.Fatalf("expected plain task untouched, got %+v", got.Tasks[0])
	}
	v := got.Tasks[1]
	if v.SourceRecurringID != "R1" || !v.Virtual {
		t.Fatalf("expected R1 instance, got %+v", v)
	}
	if v.ID != VirtualID("R1", feb1)+"-v2" {
		t.Fatalf("expected instance to skip every persisted id, got %q", v.ID)
	}
	if again := Expand(feb1, day, rec); again.Tasks[1].ID != v.ID {
		t.Fatalf("expected stable id across expansions, got %q then %q", v.ID, again.Tasks[1].ID)
	}
}
