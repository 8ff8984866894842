package content

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	if c.Version() != "v1.0.0" {
		t.Errorf("Version() = %q, want %q", c.Version(), "v1.0.0")
	}
	if got := len(c.ListQuestions()); got != 23 {
		t.Errorf("len(ListQuestions()) = %d, want 23", got)
	}
	if got := len(c.Tracks()); got != 2 {
		t.Errorf("len(Tracks()) = %d, want 2", got)
	}
	if got := len(c.Scenarios(TrackSOC)); got != 2 {
		t.Errorf("len(Scenarios(soc)) = %d, want 2", got)
	}
	if got := len(c.Scenarios(TrackGeneral)); got != 0 {
		t.Errorf("len(Scenarios(general)) = %d, want 0", got)
	}
}

func TestDefaultCatalog_SeedOffsets(t *testing.T) {
	c := Default()
	tests := []struct {
		track Track
		want  int
	}{
		{TrackSOC, 7},
		{TrackGeneral, 13},
	}
	for _, tt := range tests {
		ti, ok := c.Track(tt.track)
		if !ok {
			t.Fatalf("track %q missing", tt.track)
		}
		if ti.SeedOffset != tt.want {
			t.Errorf("%s SeedOffset = %d, want %d", tt.track, ti.SeedOffset, tt.want)
		}
		if len(ti.Learn.Bullets) != 3 {
			t.Errorf("%s learn bullets = %d, want 3", tt.track, len(ti.Learn.Bullets))
		}
	}
}

func TestQuestionVariants(t *testing.T) {
	c := Default()

	q, ok := c.Question("quiz-1")
	if !ok {
		t.Fatal("quiz-1 missing")
	}
	quiz, ok := q.(*Quiz)
	if !ok {
		t.Fatalf("quiz-1 is %T, want *Quiz", q)
	}
	if quiz.AnswerIndex() != 1 {
		t.Errorf("AnswerIndex() = %d, want 1", quiz.AnswerIndex())
	}
	if quiz.QuestionTrack() != TrackBoth {
		t.Errorf("track = %q, want both", quiz.QuestionTrack())
	}

	q, _ = c.Question("int-3")
	if _, ok := q.(*Interview); !ok {
		t.Fatalf("int-3 is %T, want *Interview", q)
	}
	if len(Rubric(q)) != 5 {
		t.Errorf("len(Rubric(int-3)) = %d, want 5", len(Rubric(q)))
	}

	q, _ = c.Question("gen-q4")
	if _, ok := q.(*Short); !ok {
		t.Fatalf("gen-q4 is %T, want *Short", q)
	}
	if !strings.HasPrefix(AnswerKey(q), "Hashing is one-way") {
		t.Errorf("AnswerKey(gen-q4) = %q", AnswerKey(q))
	}

	q, _ = c.Question("soc-s5")
	if _, ok := q.(*ScenarioPrompt); !ok {
		t.Fatalf("soc-s5 is %T, want *ScenarioPrompt", q)
	}
	if AnswerKey(q) != "" {
		t.Error("scenario prompts have no answer key")
	}

	if _, ok := c.Question("nope"); ok {
		t.Error("expected lookup miss for unknown id")
	}
}

func TestFilter(t *testing.T) {
	qs := Default().ListQuestions()

	practice := Filter(qs, TrackSOC, KindQuiz, KindShort)
	var ids []string
	for _, q := range practice {
		ids = append(ids, q.QuestionID())
	}
	want := "gen-q2,gen-q6,quiz-1,quiz-4,quiz-5"
	if got := strings.Join(ids, ","); got != want {
		t.Errorf("Filter(soc, quiz|short) = %s, want %s", got, want)
	}

	drill := Filter(qs, TrackGeneral, KindInterview)
	if len(drill) != 3 {
		t.Errorf("len(Filter(general, interview)) = %d, want 3", len(drill))
	}

	// only content tagged "both" matches an unknown track
	if got := Filter(qs, Track("unknown"), KindQuiz); len(got) != 1 {
		t.Errorf("len(Filter(unknown, quiz)) = %d, want 1", len(got))
	}
}

func TestTrackMatches(t *testing.T) {
	tests := []struct {
		tag, requested Track
		want           bool
	}{
		{TrackSOC, TrackSOC, true},
		{TrackSOC, TrackGeneral, false},
		{TrackBoth, TrackSOC, true},
		{TrackBoth, TrackGeneral, true},
		{TrackGeneral, TrackBoth, false},
	}
	for _, tt := range tests {
		if got := tt.tag.Matches(tt.requested); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.tag, tt.requested, got, tt.want)
		}
	}
}

func TestResolveTrack(t *testing.T) {
	c := Default()
	ti, err := c.ResolveTrack("soc")
	if err != nil {
		t.Fatalf("resolve soc: %v", err)
	}
	if ti.Name != "SOC Analyst" {
		t.Errorf("Name = %q", ti.Name)
	}
	for _, id := range []string{"both", "red-team", ""} {
		if _, err := c.ResolveTrack(id); !errors.Is(err, ErrUnknownTrack) {
			t.Errorf("ResolveTrack(%q) err = %v, want ErrUnknownTrack", id, err)
		}
	}
}

func TestScenarioData(t *testing.T) {
	s, ok := Default().Scenario("soc-impossible-travel")
	if !ok {
		t.Fatal("scenario missing")
	}
	if s.MaxScore() != 9 {
		t.Errorf("MaxScore() = %d, want 9", s.MaxScore())
	}
	if len(s.TicketFields) != 6 {
		t.Errorf("ticket fields = %d, want 6", len(s.TicketFields))
	}
	st, ok := s.Step("s1")
	if !ok {
		t.Fatal("step s1 missing")
	}
	if len(st.Artifacts) != 3 {
		t.Fatalf("artifacts = %d, want 3", len(st.Artifacts))
	}
	if !strings.Contains(st.Artifacts[1].Body, "MFA: NOT CHALLENGED\nAuth method: Password") {
		t.Errorf("artifact body lines not joined with newlines: %q", st.Artifacts[1].Body)
	}
	o, ok := st.Option("a")
	if !ok || o.Score != 3 {
		t.Errorf("option a = %+v, %v", o, ok)
	}
}

// testFS returns a copy of the embedded data with overrides applied.
func testFS(t *testing.T, overrides map[string]string) fs.FS {
	t.Helper()
	m := fstest.MapFS{}
	for _, name := range []string{tracksFile, questionsFile, scenariosFile} {
		b, err := dataFS.ReadFile("data/" + name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		m[name] = &fstest.MapFile{Data: b}
	}
	for name, data := range overrides {
		m[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return m
}

const minimalTracks = `{"tracks":[{"id":"soc","name":"SOC","seedOffset":7,"learn":{"title":"t","bullets":[]}}]}`

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		overrides map[string]string
		wantErr   string
	}{
		{
			name:      "malformed json",
			overrides: map[string]string{questionsFile: `{"version":`},
			wantErr:   "invalid JSON",
		},
		{
			name:      "schema violation",
			overrides: map[string]string{questionsFile: `{"version":"v1.0.0","questions":[{"id":"x","track":"soc","kind":"essay","prompt":"p"}]}`},
			wantErr:   "schema validation failed",
		},
		{
			name:      "bad version",
			overrides: map[string]string{questionsFile: `{"version":"1.0","questions":[]}`},
			wantErr:   "not a valid semantic version",
		},
		{
			name: "duplicate question",
			overrides: map[string]string{questionsFile: `{"version":"v1.0.0","questions":[
				{"id":"a","track":"soc","kind":"short","prompt":"p"},
				{"id":"a","track":"soc","kind":"short","prompt":"q"}]}`},
			wantErr: `duplicate question ID: "a"`,
		},
		{
			name: "quiz answer not a choice",
			overrides: map[string]string{questionsFile: `{"version":"v1.0.0","questions":[
				{"id":"q","track":"soc","kind":"quiz","prompt":"p","choices":["x","y"],"answer":"z"}]}`},
			wantErr: `answer "z" is not one of its choices`,
		},
		{
			name: "unknown question track",
			overrides: map[string]string{
				tracksFile:    minimalTracks,
				scenariosFile: `{"scenarios":[]}`,
				questionsFile: `{"version":"v1.0.0","questions":[{"id":"q","track":"general","kind":"short","prompt":"p"}]}`,
			},
			wantErr: `references unknown track "general"`,
		},
		{
			name: "option score out of range",
			overrides: map[string]string{scenariosFile: `{"scenarios":[{"id":"x","track":"soc","title":"t","severity":"Low","context":"c",
				"steps":[{"id":"s1","title":"t","prompt":"p","options":[{"id":"a","label":"l","score":4,"feedback":"f"}]}],
				"ticketTemplate":{"fields":[]}}]}`},
			wantErr: "schema validation failed",
		},
		{
			name:      "missing file",
			overrides: nil,
			wantErr:   "read scenarios.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := testFS(t, tt.overrides)
			if tt.name == "missing file" {
				delete(fsys.(fstest.MapFS), scenariosFile)
			}
			_, err := Load(fsys)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_ReportsAllProblems(t *testing.T) {
	fsys := testFS(t, map[string]string{questionsFile: `{"version":"bad","questions":[
		{"id":"a","track":"soc","kind":"interview","prompt":"p"},
		{"id":"a","track":"soc","kind":"short","prompt":"q"}]}`})
	_, err := Load(fsys)
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"semantic version", "duplicate question ID", "has no rubric"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error missing %q: %v", want, err)
		}
	}
}
