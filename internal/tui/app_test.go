package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/store"
)

var testNow = time.Date(2026, time.March, 10, 9, 0, 0, 0, time.Local)

type fakeAI struct {
	strategy model.Strategy
	script   string
	shots    []model.Shot
	items    []string
	err      error
	calls    int
}

func (f *fakeAI) GenerateStrategy(context.Context, string, string, model.ContentType, model.Platform) (model.Strategy, error) {
	f.calls++
	return f.strategy, f.err
}

func (f *fakeAI) RefineScript(_ context.Context, _, _ string, _ ai.ScriptForm) (string, error) {
	f.calls++
	return f.script, f.err
}

func (f *fakeAI) AnalyzeScriptForShots(context.Context, string) ([]model.Shot, error) {
	f.calls++
	return f.shots, f.err
}

func (f *fakeAI) GenerateTitles(context.Context, string) ([]string, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeAI) GenerateHashtags(context.Context, string) ([]string, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeAI) GeneratePromptIdeas(context.Context, string) ([]string, error) {
	f.calls++
	return f.items, f.err
}

func testProject(id, title string) model.Project {
	in := mutate.ProjectInput{Title: title, Idea: title + " idea", ContentType: model.ContentVlog, Platform: model.PlatformYouTube}
	return mutate.BuildProject(id, in, model.Strategy{Script: "HOOK: hello"}, testNow.Add(-time.Hour))
}

// newTestApp builds a sized model over a fresh workspace. client may be nil.
func newTestApp(t *testing.T, client ai.StrategyClient, ps ...model.Project) (appModel, store.Store) {
	t.Helper()
	t.Setenv("FRAMEFLOW_CONFIG_DIR", t.TempDir())
	t.Setenv("FRAMEFLOW_TUI_GLYPHS", "ascii")
	applyGlyphPreference("")
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	s := store.Store{Dir: t.TempDir()}
	db := &store.DB{Version: 1, Projects: ps, Theme: model.DefaultTheme(), TutorialCompleted: true}
	require.NoError(t, s.Save(db))

	m := newAppModel(Options{Store: s, DB: db, AI: client})
	m.now = func() time.Time { return testNow }
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(appModel), s
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends each key in order and returns the model with the last command.
func press(t *testing.T, m appModel, keys ...string) (appModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(appModel)
	}
	return m, cmd
}

// typeText sends s as a single runes message, the way a paste arrives.
func typeText(m appModel, s string) appModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(appModel)
}

// runCmd executes cmd and returns the messages it produced. Batches are flattened, spinner ticks
// dropped, and commands that block (timers, cursor blink) are abandoned.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(300 * time.Millisecond):
		return nil
	}
	switch msg := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// deliver feeds every message cmd produces back into the model.
func deliver(m appModel, cmd tea.Cmd) appModel {
	for _, msg := range runCmd(cmd) {
		next, _ := m.Update(msg)
		m = next.(appModel)
	}
	return m
}

func TestDashboard_NavigatesToViews(t *testing.T) {
	m, _ := newTestApp(t, nil)
	tests := []struct {
		key  string
		want view
	}{
		{"n", viewNewProject},
		{"a", viewQuickAdd},
		{"s", viewSettings},
		{"t", viewTools},
		{"v", viewArchive},
		{"c", viewCalendar},
	}
	for _, tt := range tests {
		got, _ := press(t, m, tt.key)
		assert.Equal(t, tt.want, got.nav.view, "key %q", tt.key)
		back, _ := press(t, got, "esc")
		assert.Equal(t, viewDashboard, back.nav.view, "esc from %v", tt.want)
	}
}

func TestNewProject_RequiresTitleAndIdeaBeforeAI(t *testing.T) {
	fake := &fakeAI{}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "n", "ctrl+s")
	assert.Equal(t, viewNewProject, m.nav.view)
	assert.Equal(t, "Title and Idea are required.", m.newForm.form.err)
	assert.False(t, m.newForm.pending)
	assert.Zero(t, fake.calls)
}

func TestNewProject_GeneratesStrategyAndCreates(t *testing.T) {
	fake := &fakeAI{strategy: model.Strategy{
		Script: "HOOK: generated",
		Shots:  []model.Shot{{Scene: "Intro"}},
	}}
	m, s := newTestApp(t, fake)

	m, _ = press(t, m, "n")
	m = typeText(m, "Morning routine")
	m, _ = press(t, m, "tab")
	m = typeText(m, "A calm morning at home")
	m, cmd := press(t, m, "ctrl+s")
	require.True(t, m.newForm.pending)

	m = deliver(m, cmd)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, viewDashboard, m.nav.view)
	require.Len(t, m.db.Projects, 1)
	p := m.db.Projects[0]
	assert.Equal(t, "Morning routine", p.Title)
	assert.Equal(t, "HOOK: generated", p.Strategy.Script)
	assert.NotEmpty(t, p.Strategy.Shots[0].ID)
	assert.Equal(t, orig.Progress.Percent, p.Progress.Percent)
	assert.Equal(t, orig.UpdatedAt, p.UpdatedAt)

	reloaded, err := s.Load()
	require.NoError(t, err)
	require.Len(t, reloaded.Projects, 1)
	assert.Equal(t, p.ID, reloaded.Projects[0].ID)

	events, err := s.ReadEventsForEntity(p.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, events)
	assert.Equal(t, "project.create", events[0].Type)
}

func TestNewProject_StartEmptySkipsAI(t *testing.T) {
	fake := &fakeAI{}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "n")
	m = typeText(m, "Quick one")
	m, _ = press(t, m, "tab")
	m = typeText(m, "No plan yet")
	m, _ = press(t, m, "tab", "tab", "tab", "tab", "right", "ctrl+s")

	assert.Zero(t, fake.calls)
	require.Len(t, m.db.Projects, 1)
	assert.Equal(t, "", m.db.Projects[0].Strategy.Script)
}

func TestNewProject_AIFailureKeepsForm(t *testing.T) {
	fake := &fakeAI{err: &ai.GenerationError{Op: ai.OpGenerateStrategy, Err: errors.New("503")}}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "n")
	m = typeText(m, "Morning routine")
	m, _ = press(t, m, "tab")
	m = typeText(m, "A calm morning")
	m, cmd := press(t, m, "ctrl+s")
	m = deliver(m, cmd)

	assert.Equal(t, viewNewProject, m.nav.view)
	assert.False(t, m.newForm.pending)
	assert.Contains(t, m.newForm.form.err, "Failed to generate AI strategy")
	assert.Equal(t, "Morning routine", m.newForm.form.value("title"))
	assert.Empty(t, m.db.Projects)
}

func TestNewProject_LateResultIgnoredAfterLeaving(t *testing.T) {
	fake := &fakeAI{strategy: model.Strategy{Script: "late"}}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "n")
	m = typeText(m, "Morning routine")
	m, _ = press(t, m, "tab")
	m = typeText(m, "A calm morning")
	m, cmd := press(t, m, "ctrl+s")
	m, _ = press(t, m, "esc")
	require.Equal(t, viewDashboard, m.nav.view)

	m = deliver(m, cmd)
	assert.Equal(t, 1, fake.calls)
	assert.Empty(t, m.db.Projects)
}

func TestDetails_ToggleMilestonePersists(t *testing.T) {
	m, s := newTestApp(t, nil, testProject("proj-1", "Vlog"))

	m, _ = press(t, m, "enter")
	require.Equal(t, viewProjectDetails, m.nav.view)
	require.Equal(t, "proj-1", m.nav.projectID)

	m, _ = press(t, m, "2")
	p, ok := m.db.FindProject("proj-1")
	require.True(t, ok)
	assert.True(t, p.Progress.Script)
	assert.Equal(t, 40, p.Progress.Percent)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 40, reloaded.Projects[0].Progress.Percent)

	m, _ = press(t, m, "2")
	p, _ = m.db.FindProject("proj-1")
	assert.False(t, p.Progress.Script)
	assert.Equal(t, orig.Progress.Percent, p.Progress.Percent)
	assert.Equal(t, orig.UpdatedAt, p.UpdatedAt)
}

func TestDetails_DeleteNeedsConfirmation(t *testing.T) {
	m, s := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter", "D")
	require.NotNil(t, m.confirm)
	assert.Contains(t, m.View(), "Delete project?")

	m, _ = press(t, m, "esc")
	assert.Nil(t, m.confirm)
	assert.Len(t, m.db.Projects, 1)

	m, _ = press(t, m, "D", "enter")
	assert.Len(t, m.db.Projects, 1, "enter on the default cancel focus keeps the project")

	m, _ = press(t, m, "D", "y")
	assert.Empty(t, m.db.Projects)
	assert.Equal(t, viewDashboard, m.nav.view)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, reloaded.Projects)
}

func TestDetails_ArchiveAndRestore(t *testing.T) {
	m, _ := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter", "a")

	assert.Equal(t, viewDashboard, m.nav.view)
	assert.Empty(t, m.projectsList.Items())
	p, _ := m.db.FindProject("proj-1")
	assert.True(t, p.Archived)

	m, _ = press(t, m, "v")
	require.Len(t, m.archiveList.Items(), 1)
	m, _ = press(t, m, "u")
	p, _ = m.db.FindProject("proj-1")
	assert.False(t, p.Archived)
	assert.Empty(t, m.archiveList.Items())
}

func TestDetails_RefineNeedsInstruction(t *testing.T) {
	fake := &fakeAI{script: "HOOK: refined"}
	m, _ := newTestApp(t, fake, testProject("proj-1", "Vlog"))

	m, _ = press(t, m, "enter", "r", "enter")
	assert.Equal(t, "Tell the AI how to refine the script.", m.details.err)
	assert.Zero(t, fake.calls)

	m = typeText(m, "shorter")
	m, cmd := press(t, m, "enter")
	require.Equal(t, pendingRefine, m.details.pending)
	m = deliver(m, cmd)

	assert.Empty(t, m.details.pending)
	p, _ := m.db.FindProject("proj-1")
	assert.Equal(t, "HOOK: refined", p.Strategy.Script)
}

func TestDetails_AnalyzeShotsReplacesList(t *testing.T) {
	fake := &fakeAI{shots: []model.Shot{{Scene: "Intro"}, {Scene: "Outro"}}}
	m, _ := newTestApp(t, fake, testProject("proj-1", "Vlog"))

	m, cmd := press(t, m, "enter", "S")
	m = deliver(m, cmd)

	assert.Equal(t, tabShots, m.details.tab)
	p, _ := m.db.FindProject("proj-1")
	require.Len(t, p.Strategy.Shots, 2)
	assert.NotEqual(t, p.Strategy.Shots[0].ID, p.Strategy.Shots[1].ID)
}

func TestDetails_AddAndRemoveScheduleItem(t *testing.T) {
	m, _ := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter", "tab", "tab", "tab")
	require.Equal(t, tabSchedule, m.details.tab)

	m, _ = press(t, m, "n")
	require.NotNil(t, m.details.item)
	m, _ = press(t, m, "tab")
	m = typeText(m, "B-roll downtown")
	m, _ = press(t, m, "tab")
	m = typeText(m, "2026-03-12 14:00")
	m, _ = press(t, m, "tab")
	m = typeText(m, "90")
	m, _ = press(t, m, "ctrl+s")

	require.Nil(t, m.details.item)
	p, _ := m.db.FindProject("proj-1")
	require.Len(t, p.Schedule.Filming, 1)
	it := p.Schedule.Filming[0]
	assert.Equal(t, "B-roll downtown", it.Segment)
	require.NotNil(t, it.Date)
	assert.Equal(t, 12, it.Date.Day())
	require.NotNil(t, it.DurationMin)
	assert.Equal(t, 90, *it.DurationMin)

	m, _ = press(t, m, "x")
	p, _ = m.db.FindProject("proj-1")
	assert.Empty(t, p.Schedule.Filming)
}

func TestDetails_EditShotKeepsIDAndOrder(t *testing.T) {
	p := testProject("proj-1", "Vlog")
	p.Strategy.Shots = []model.Shot{{ID: "shot-1", Scene: "Intro", Gear: []string{}}, {ID: "shot-2", Scene: "Outro", Gear: []string{"Phone"}}}
	m, s := newTestApp(t, nil, p)

	m, _ = press(t, m, "enter", "tab", "down", "enter")
	require.NotNil(t, m.details.item)
	assert.Equal(t, "shot-2", m.details.itemRef.id)
	assert.Equal(t, "Outro", m.details.item.value("scene"))

	m.details.item.fields[0].input.SetValue("Final shot")
	m.details.item.fields[3].input.SetValue("Phone, Gimbal")
	m, _ = press(t, m, "ctrl+s")
	require.Nil(t, m.details.item)

	got, _ := m.db.FindProject("proj-1")
	require.Len(t, got.Strategy.Shots, 2)
	assert.Equal(t, "shot-1", got.Strategy.Shots[0].ID)
	assert.Equal(t, "shot-2", got.Strategy.Shots[1].ID)
	assert.Equal(t, "Final shot", got.Strategy.Shots[1].Scene)
	assert.Equal(t, []string{"Phone", "Gimbal"}, got.Strategy.Shots[1].Gear)
	assert.True(t, got.UpdatedAt.After(p.UpdatedAt))

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "Final shot", reloaded.Projects[0].Strategy.Shots[1].Scene)
}

func TestDetails_RescheduleItemKeepsID(t *testing.T) {
	p := testProject("proj-1", "Vlog")
	day := time.Date(2026, time.March, 12, 14, 0, 0, 0, time.Local)
	p.Schedule.Filming = []model.ScheduleItem{{ID: "film-1", Segment: "B-roll", Date: &day}}
	m, _ := newTestApp(t, nil, p)

	m, _ = press(t, m, "enter", "tab", "tab", "tab", "enter")
	require.NotNil(t, m.details.item)
	assert.Equal(t, itemRef{id: "film-1", phase: model.PhaseFilming}, m.details.itemRef)
	assert.Equal(t, "2026-03-12 14:00", m.details.item.value("date"))

	m.details.item.fields[1].input.SetValue("2026-03-14 10:00")
	m, _ = press(t, m, "ctrl+s")
	require.Nil(t, m.details.item)

	got, _ := m.db.FindProject("proj-1")
	require.Len(t, got.Schedule.Filming, 1)
	it := got.Schedule.Filming[0]
	assert.Equal(t, "film-1", it.ID)
	assert.Equal(t, "B-roll", it.Segment)
	require.NotNil(t, it.Date)
	assert.Equal(t, 14, it.Date.Local().Day())
	assert.Equal(t, 10, it.Date.Local().Hour())
}

func TestDetails_EditItemRejectsBlankSegment(t *testing.T) {
	p := testProject("proj-1", "Vlog")
	p.Schedule.Editing = []model.ScheduleItem{{ID: "cut-1", Segment: "Rough cut"}}
	m, _ := newTestApp(t, nil, p)

	m, _ = press(t, m, "enter", "tab", "tab", "tab", "enter")
	require.NotNil(t, m.details.item)
	m.details.item.fields[0].input.SetValue("  ")
	m, _ = press(t, m, "ctrl+s")
	require.NotNil(t, m.details.item)
	assert.NotEmpty(t, m.details.item.err)

	got, _ := m.db.FindProject("proj-1")
	assert.Equal(t, "Rough cut", got.Schedule.Editing[0].Segment)
}

func TestDetails_FailedSaveKeepsMemoryInSync(t *testing.T) {
	orig := testProject("proj-1", "Vlog")
	m, _ := newTestApp(t, nil, orig)
	m, _ = press(t, m, "enter")

	broken := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(broken, "frameflow.sqlite"), 0o755))
	m.store = store.Store{Dir: broken}

	m, _ = press(t, m, "2")
	assert.True(t, m.statusErr)
	assert.Contains(t, m.statusText, "Save failed")

	p, _ := m.db.FindProject("proj-1")
	assert.False(t, p.Progress.Script)
	assert.Equal(t, orig.Progress.Percent, p.Progress.Percent)
	assert.Equal(t, orig.UpdatedAt, p.UpdatedAt)
}

func TestDetails_EditRejectsBlankTitle(t *testing.T) {
	m, _ := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter", "e")
	require.NotNil(t, m.details.edit)

	m.details.edit.fields[0].input.SetValue("   ")
	m, _ = press(t, m, "ctrl+s")
	require.NotNil(t, m.details.edit)
	assert.Contains(t, strings.ToLower(m.details.edit.err), "title")

	p, _ := m.db.FindProject("proj-1")
	assert.Equal(t, "Vlog", p.Title)
}

func TestDetails_MissingProjectShowsNotFound(t *testing.T) {
	m, _ := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter")
	m.db.Projects = nil

	assert.Contains(t, m.View(), "project not found: proj-1")
	m, _ = press(t, m, "esc")
	assert.Equal(t, viewDashboard, m.nav.view)
}

func TestQuickAdd_CreatesProject(t *testing.T) {
	fake := &fakeAI{strategy: model.Strategy{Script: "HOOK: quick"}}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "a")
	m = typeText(m, "Touring a tiny cabin in the woods")
	m, _ = press(t, m, "enter")
	m = typeText(m, "vlog")
	m, _ = press(t, m, "enter")
	m = typeText(m, "youtube")
	m, cmd := press(t, m, "enter")
	require.True(t, m.busy())

	m = deliver(m, cmd)
	require.NotNil(t, m.quick.project)
	require.Len(t, m.db.Projects, 1)
	p := m.db.Projects[0]
	assert.Equal(t, model.ContentVlog, p.ContentType)
	assert.Equal(t, model.PlatformYouTube, p.Platform)
	assert.Equal(t, "HOOK: quick", p.Strategy.Script)

	m, _ = press(t, m, "enter")
	assert.Equal(t, viewProjectDetails, m.nav.view)
	assert.Equal(t, p.ID, m.nav.projectID)
}

func TestTools_GeneratesTitles(t *testing.T) {
	fake := &fakeAI{items: []string{"First title", " ", "Second title"}}
	m, _ := newTestApp(t, fake)

	m, _ = press(t, m, "t", "enter")
	assert.Equal(t, "Enter a topic first.", m.tools.err)

	m = typeText(m, "budget travel")
	m, cmd := press(t, m, "enter")
	m = deliver(m, cmd)

	assert.False(t, m.tools.pending)
	assert.Len(t, m.tools.results.Items(), 2)
	assert.Contains(t, m.View(), "Second title")
}

func TestTools_AspectRatio(t *testing.T) {
	m, _ := newTestApp(t, nil)
	m, _ = press(t, m, "t", "shift+tab")
	require.Equal(t, toolAspect, m.tools.kind)

	m = typeText(m, "1920")
	m, _ = press(t, m, "enter")
	assert.Equal(t, "1920 x 1080", m.tools.aspect)

	m, _ = press(t, m, "down")
	assert.Equal(t, "1920 x 3413", m.tools.aspect)
}

func TestSettings_PaletteChangePersists(t *testing.T) {
	m, s := newTestApp(t, nil)
	t.Cleanup(func() { applyTheme(model.DefaultTheme()) })

	m, _ = press(t, m, "s", "down", "right")
	assert.Equal(t, model.PaletteSlate, m.db.Theme.Palette)
	assert.Equal(t, paletteAccents[model.PaletteSlate], colorAccent)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, model.PaletteSlate, reloaded.Theme.Palette)

	m, _ = press(t, m, "up", "left")
	assert.Equal(t, model.ThemeLight, m.db.Theme.Mode)
}

func TestSettings_GlyphToggleSavesConfig(t *testing.T) {
	m, _ := newTestApp(t, nil)
	require.Equal(t, glyphSetASCII, glyphs())

	_, _ = press(t, m, "s", "g")
	assert.Equal(t, glyphSetUnicode, glyphs())
	cfg, err := store.LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.TUI)
	assert.Equal(t, "unicode", cfg.TUI.Glyphs)
}

func TestTutorial_SkipMarksCompleted(t *testing.T) {
	m, s := newTestApp(t, nil)
	m, _ = press(t, m, "?")
	require.True(t, m.tutorial.open)

	m, _ = press(t, m, "enter")
	assert.Equal(t, 1, m.tutorial.step)
	m, _ = press(t, m, "esc")
	assert.False(t, m.tutorial.open)
	assert.True(t, m.db.TutorialCompleted)

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.True(t, reloaded.TutorialCompleted)
}

func TestRestoresLastView(t *testing.T) {
	m, s := newTestApp(t, nil, testProject("proj-1", "Vlog"))
	m, _ = press(t, m, "enter", "tab")
	require.Equal(t, tabShots, m.details.tab)

	restored := newAppModel(Options{Store: s, DB: m.db})
	assert.Equal(t, viewProjectDetails, restored.nav.view)
	assert.Equal(t, "proj-1", restored.nav.projectID)
	assert.Equal(t, tabShots, restored.details.tab)
}

func TestCalendar_OpensProjectFromSelectedDay(t *testing.T) {
	p := testProject("proj-1", "Vlog")
	at := time.Date(2026, time.March, 12, 14, 0, 0, 0, time.Local)
	p.Schedule.Filming = []model.ScheduleItem{{ID: "sch-f-1", Date: &at, Segment: "Downtown"}}
	m, _ := newTestApp(t, nil, p)

	m, _ = press(t, m, "c")
	require.Equal(t, 10, m.cal.day)
	m, _ = press(t, m, "enter")
	assert.Equal(t, viewCalendar, m.nav.view, "no events on the 10th")

	m, _ = press(t, m, "l", "l")
	assert.True(t, strings.Contains(m.View(), "Downtown"))
	m, _ = press(t, m, "enter")
	assert.Equal(t, viewProjectDetails, m.nav.view)
	assert.Equal(t, "proj-1", m.nav.projectID)
}
