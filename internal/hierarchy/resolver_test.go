package hierarchy

import (
	"errors"
	"strings"
	"testing"

	"github.com/Testeur1337/myPomodoro/internal/model"
)

func testIndex() *Index {
	goals := []model.Goal{{ID: "G1", Name: "Career"}, {ID: "G2", Name: "Health"}}
	projects := []model.Project{
		{ID: "P1", GoalID: "G1", Name: "Go"},
		{ID: "P2", GoalID: "G2", Name: "Running"},
		{ID: "P3", GoalID: "G1", Name: "Old", Archived: true},
	}
	topics := []model.Topic{
		{ID: "T1", ProjectID: "P1", Name: "Generics"},
		{ID: "T2", ProjectID: "P2", Name: "Intervals"},
		{ID: "T3", ProjectID: "P1", Name: "Retired", Archived: true},
		{ID: "T4", ProjectID: "P3", Name: "Under archived"},
		{ID: "T5", ProjectID: "missing", Name: "Orphan"},
	}
	return NewIndex(goals, projects, topics)
}

func ref(s string) *string { return &s }

func expectValidation(t *testing.T, err error, contains string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(ve.Message, contains) {
		t.Fatalf("expected message containing %q, got %q", contains, ve.Message)
	}
}

func TestResolveFocusOverridesClientIDs(t *testing.T) {
	r := Resolver{Policy: PolicyOverride}
	got, err := r.Resolve(SessionRequest{
		Type:      model.SessionFocus,
		TopicID:   ref("T1"),
		ProjectID: ref("WRONG"),
		GoalID:    ref("WRONG"),
	}, testIndex())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if *got.TopicID != "T1" || *got.ProjectID != "P1" || *got.GoalID != "G1" {
		t.Fatalf("unexpected assignment: topic=%s project=%s goal=%s", *got.TopicID, *got.ProjectID, *got.GoalID)
	}
	if *got.TopicName != "Generics" {
		t.Fatalf("expected topic name from topic, got %q", *got.TopicName)
	}
}

func TestResolveFocusRejectsConflicts(t *testing.T) {
	r := Resolver{}
	ix := testIndex()

	_, err := r.Resolve(SessionRequest{Type: model.SessionFocus, TopicID: ref("T1"), ProjectID: ref("P2")}, ix)
	expectValidation(t, err, MsgProjectMismatch)

	_, err = r.Resolve(SessionRequest{Type: model.SessionFocus, TopicID: ref("T1"), GoalID: ref("G2")}, ix)
	expectValidation(t, err, MsgGoalMismatch)

	got, err := r.Resolve(SessionRequest{
		Type:      model.SessionFocus,
		TopicID:   ref("T1"),
		ProjectID: ref("P1"),
		GoalID:    ref("G1"),
	}, ix)
	if err != nil {
		t.Fatalf("matching ids should resolve: %v", err)
	}
	if *got.GoalID != "G1" {
		t.Fatalf("expected G1, got %s", *got.GoalID)
	}

	// Blank values count as absent.
	if _, err := r.Resolve(SessionRequest{Type: model.SessionFocus, TopicID: ref("T1"), ProjectID: ref("")}, ix); err != nil {
		t.Fatalf("blank projectId should be ignored: %v", err)
	}
}

func TestResolveFocusRequiresTopic(t *testing.T) {
	for _, topic := range []*string{nil, ref(""), ref("   ")} {
		_, err := Resolver{}.Resolve(SessionRequest{Type: model.SessionFocus, TopicID: topic}, testIndex())
		expectValidation(t, err, "require topicId")
	}
}

func TestResolveMissingOrArchivedReferences(t *testing.T) {
	tests := []struct {
		name  string
		topic string
		want  string
	}{
		{"unknown topic", "nope", MsgTopicNotFound},
		{"archived topic", "T3", MsgTopicNotFound},
		{"archived project", "T4", MsgTopicProjectNotFound},
		{"missing project", "T5", MsgTopicProjectNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolver{}.Resolve(SessionRequest{Type: model.SessionFocus, TopicID: ref(tt.topic)}, testIndex())
			expectValidation(t, err, tt.want)
		})
	}
}

func TestResolveKeepsArchivedTopicOnUpdate(t *testing.T) {
	ix := testIndex()
	got, err := Resolver{}.Resolve(SessionRequest{
		Type:           model.SessionFocus,
		TopicID:        ref("T3"),
		CurrentTopicID: ref("T3"),
	}, ix)
	if err != nil {
		t.Fatalf("keeping an archived topic should resolve: %v", err)
	}
	if *got.ProjectID != "P1" {
		t.Fatalf("expected P1, got %s", *got.ProjectID)
	}

	// Switching to an archived topic is still rejected.
	_, err = Resolver{}.Resolve(SessionRequest{
		Type:           model.SessionFocus,
		TopicID:        ref("T3"),
		CurrentTopicID: ref("T1"),
	}, ix)
	expectValidation(t, err, MsgTopicNotFound)
}

func TestResolveBreakWithoutTopic(t *testing.T) {
	for _, policy := range []Policy{PolicyReject, PolicyOverride} {
		got, err := Resolver{Policy: policy}.Resolve(SessionRequest{
			Type:      model.SessionBreak,
			ProjectID: ref("P1"),
			GoalID:    ref("G1"),
			TopicName: ref("Coffee"),
		}, testIndex())
		if err != nil {
			t.Fatalf("%s: resolve: %v", policy, err)
		}
		if got.TopicID != nil || got.ProjectID != nil || got.GoalID != nil {
			t.Fatalf("%s: expected no hierarchy on a topic-less break, got %+v", policy, got)
		}
		if got.TopicName == nil || *got.TopicName != "Coffee" {
			t.Fatalf("%s: expected topic name to be kept", policy)
		}
	}
}

func TestResolveBreakWithTopic(t *testing.T) {
	got, err := Resolver{}.Resolve(SessionRequest{Type: model.SessionBreak, TopicID: ref("T2")}, testIndex())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if *got.ProjectID != "P2" || *got.GoalID != "G2" {
		t.Fatalf("expected P2/G2, got %s/%s", *got.ProjectID, *got.GoalID)
	}
}

func TestResolveFocusAlwaysDerivesAncestry(t *testing.T) {
	ix := testIndex()
	for _, topic := range []string{"T1", "T2"} {
		tp, _ := ix.Topic(topic)
		p, _ := ix.Project(tp.ProjectID)
		got, err := Resolver{Policy: PolicyOverride}.Resolve(SessionRequest{
			Type:      model.SessionFocus,
			TopicID:   ref(topic),
			ProjectID: ref("client-project"),
			GoalID:    ref("client-goal"),
		}, ix)
		if err != nil {
			t.Fatalf("resolve %s: %v", topic, err)
		}
		if got.ProjectID == nil || *got.ProjectID != p.ID {
			t.Fatalf("topic %s: expected project %s", topic, p.ID)
		}
		if got.GoalID == nil || *got.GoalID != p.GoalID {
			t.Fatalf("topic %s: expected goal %s", topic, p.GoalID)
		}
	}
}

func TestParsePolicy(t *testing.T) {
	tests := map[string]Policy{"": PolicyReject, "reject": PolicyReject, "Override": PolicyOverride}
	for in, want := range tests {
		got, err := ParsePolicy(in)
		if err != nil || got != want {
			t.Errorf("ParsePolicy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParsePolicy("lenient"); err == nil {
		t.Errorf("expected unknown policy to fail")
	}
}
