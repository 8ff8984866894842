package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/secjobcoach/internal/content"
	"github.com/abhisek/secjobcoach/internal/spacedrep"
)

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	for _, k := range []string{"SECJOBCOACH_DB", "SECJOBCOACH_LOG_FILE", "SECJOBCOACH_DUE_LIMIT"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("SECJOBCOACH_TZ", "UTC")
	t.Setenv("SECJOBCOACH_LOG_LEVEL", "error")
	return &harness{t: t, db: filepath.Join(t.TempDir(), "coach.db")}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--db", h.db, "--env-file="}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	require.NoError(h.t, err, "secjobcoach %s", strings.Join(args, " "))
	return out
}

func TestVersion(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("version")
	assert.Contains(t, out, "secjobcoach")
	assert.Contains(t, out, "content v1.0.0")
}

func TestContentValidate(t *testing.T) {
	h := newHarness(t)
	out := h.mustRun("content", "validate")
	assert.Contains(t, out, "2 track(s), 23 question(s), 2 scenario(s)")

	_, err := h.run("content", "validate", t.TempDir())
	assert.Error(t, err)
}

func TestTrack(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("track")
	assert.Contains(t, out, "soc")
	assert.Contains(t, out, "general")
	assert.NotContains(t, out, "*")

	out = h.mustRun("track", "soc")
	assert.Contains(t, out, "Track set to SOC Analyst")

	out = h.mustRun("track")
	assert.Contains(t, out, "* soc")

	_, err := h.run("track", "blue-team")
	assert.ErrorIs(t, err, content.ErrUnknownTrack)
}

func TestMission(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("mission")
	assert.ErrorIs(t, err, errNoTrack)

	out := h.mustRun("mission", "--track", "soc", "--date", "2026-03-10")
	assert.Contains(t, out, "SOC Analyst · 2026-03-10")

	order := []string{"gen-q6", "quiz-5", "quiz-4", "gen-q2", "quiz-1", "int-3", "int-2", "int-1"}
	last := -1
	for _, id := range order {
		i := strings.Index(out, id)
		require.GreaterOrEqual(t, i, 0, "missing %s", id)
		assert.Greater(t, i, last, "%s out of order", id)
		last = i
	}

	again := h.mustRun("mission", "--track", "soc", "--date", "2026-03-10")
	assert.Equal(t, out, again)

	_, err = h.run("mission", "--track", "soc", "--date", "03/10/2026")
	assert.Error(t, err)
}

func TestCards(t *testing.T) {
	h := newHarness(t)
	h.mustRun("track", "soc")

	out := h.mustRun("cards", "due")
	assert.Contains(t, out, "5 card(s)")
	assert.Contains(t, out, "gen-q2")

	out = h.mustRun("cards", "review", "gen-q2", "5")
	assert.Contains(t, out, "interval 1 day(s)")
	assert.Contains(t, out, "repetitions 1")

	out = h.mustRun("cards", "stats")
	assert.Contains(t, out, "4 due of 5")

	out = h.mustRun("cards", "due", "--limit", "2")
	assert.Contains(t, out, "2 card(s)")
	assert.NotContains(t, out, "gen-q2")

	_, err := h.run("cards", "review", "gen-q6", "9")
	assert.ErrorIs(t, err, spacedrep.ErrInvalidGrade)

	_, err = h.run("cards", "review", "nope", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown card")

	out = h.mustRun("cards", "prune")
	assert.Contains(t, out, "Removed 0 orphaned card(s)")
}

func TestScenarios(t *testing.T) {
	h := newHarness(t)
	h.mustRun("track", "soc")

	out := h.mustRun("scenarios", "list")
	assert.Contains(t, out, "soc-impossible-travel")
	assert.Contains(t, out, "soc-bruteforce-success")
	assert.Contains(t, out, "2 scenario(s)")

	out = h.mustRun("scenarios", "history")
	assert.Contains(t, out, "No scenario runs recorded.")
}

func TestStatsAndReset(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("stats")
	assert.Contains(t, out, "none selected")

	h.mustRun("track", "soc")
	h.mustRun("cards", "review", "quiz-4", "4")

	out = h.mustRun("stats")
	assert.Contains(t, out, "SOC Analyst (soc)")
	assert.Contains(t, out, "4 due of 5")
	assert.Contains(t, out, "Streak:    1 day(s)")

	_, err := h.run("reset")
	assert.Error(t, err)

	out = h.mustRun("reset", "--yes")
	assert.Contains(t, out, "Learner data reset.")

	out = h.mustRun("stats")
	assert.Contains(t, out, "none selected")
	assert.Contains(t, out, "Attempts:  0")
}
