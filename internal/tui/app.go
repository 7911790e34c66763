package tui

import (
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/store"
)

type reloadTickMsg struct{}

type statusDoneMsg struct{ seq int }

type appModel struct {
	store     store.Store
	db        *store.DB
	workspace string
	ai        ai.StrategyClient
	now       func() time.Time

	width  int
	height int

	nav navState
	// seq is bumped on every navigation; AI results carry the seq they were issued under.
	seq int

	dashboardTab dashboardTab
	projectsList list.Model
	archiveList  list.Model

	details  detailsState
	newForm  newProjectState
	quick    quickAddState
	settings settingsState
	tools    toolsState
	cal      calendarState
	tutorial tutorialState

	confirm *confirmState
	spinner spinner.Model

	statusText string
	statusErr  bool
	statusSeq  int

	modTimes map[string]time.Time
}

func newAppModel(opts Options) appModel {
	db := opts.DB
	if db == nil {
		db = &store.DB{}
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := appModel{
		store:     opts.Store,
		db:        db,
		workspace: strings.TrimSpace(opts.Workspace),
		ai:        opts.AI,
		now:       time.Now,
		nav:       navState{view: viewDashboard},
		spinner:   sp,
	}
	m.projectsList = newList(nil, newProjectCardDelegate())
	m.archiveList = newList(nil, newCompactItemDelegate())
	m.cal = newCalendarState(m.now())
	m.newForm = newNewProjectState()
	m.quick = newQuickAddState()
	m.settings = newSettingsState(db.Theme)
	m.tools = newToolsState()
	applyTheme(db.Theme)

	m.restoreTUIState()
	m.refreshProjects()
	m.refreshArchive()
	m.captureStoreModTimes()
	if !db.TutorialCompleted {
		m.tutorial.open = true
	}
	return m
}

func (m *appModel) restoreTUIState() {
	st, err := m.store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	v, ok := parseView(st.View)
	if !ok {
		return
	}
	switch v {
	case viewProjectDetails:
		m.nav = transition(m.nav, openProject(st.SelectedProjectID))
		m.details = newDetailsState(parseDetailsTab(st.DetailsTab))
	case viewSettings:
		m.nav = transition(m.nav, navEvent{kind: navOpenSettings})
		m.settings = newSettingsState(m.db.Theme)
	case viewTools:
		m.nav = transition(m.nav, navEvent{kind: navOpenTools})
		m.tools = newToolsState()
	case viewArchive:
		m.nav = transition(m.nav, navEvent{kind: navOpenArchive})
	case viewCalendar:
		m.nav = transition(m.nav, navEvent{kind: navOpenCalendar})
	}
	if t, err := time.ParseInLocation("2006-01", st.CalendarMonth, time.Local); err == nil {
		m.cal.year, m.cal.month = t.Year(), t.Month()
		m.cal.day = 1
	}
}

func (m appModel) saveTUIState() {
	st := &store.TUIState{
		View:          m.nav.view.String(),
		CalendarMonth: time.Date(m.cal.year, m.cal.month, 1, 0, 0, 0, 0, time.Local).Format("2006-01"),
	}
	if m.nav.view == viewProjectDetails {
		st.SelectedProjectID = m.nav.projectID
		st.DetailsTab = m.details.tab.String()
	}
	if err := m.store.SaveTUIState(st); err != nil {
		logger.Get("tui").WithError(err).Warn("save tui state failed")
	}
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadTickMsg:
		if !m.busy() && m.storeChanged() {
			m.reloadFromDisk()
		}
		return m, tickReload()

	case statusDoneMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
			m.statusErr = false
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case strategyMsg:
		return m.handleStrategyMsg(msg)
	case regenerateMsg:
		return m.handleRegenerateMsg(msg)
	case refineMsg:
		return m.handleRefineMsg(msg)
	case shotsMsg:
		return m.handleShotsMsg(msg)
	case quickAddMsg:
		return m.handleQuickAddMsg(msg)
	case toolResultMsg:
		return m.handleToolResultMsg(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.tutorial.open {
			return m.updateTutorial(msg)
		}
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		switch m.nav.view {
		case viewDashboard:
			return m.updateDashboard(msg)
		case viewProjectDetails:
			return m.updateDetails(msg)
		case viewNewProject:
			return m.updateNewProject(msg)
		case viewQuickAdd:
			return m.updateQuickAdd(msg)
		case viewSettings:
			return m.updateSettings(msg)
		case viewTools:
			return m.updateTools(msg)
		case viewArchive:
			return m.updateArchive(msg)
		case viewCalendar:
			return m.updateCalendar(msg)
		}
	}

	// Cursor blinks and other widget messages go to whichever input is focused.
	return m.forwardToInputs(msg)
}

func (m appModel) forwardToInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.nav.view {
	case viewNewProject:
		_, cmd = m.newForm.form.update(msg)
	case viewQuickAdd:
		m.quick.input, cmd = m.quick.input.Update(msg)
	case viewTools:
		m.tools.topic, cmd = m.tools.topic.Update(msg)
	case viewProjectDetails:
		switch {
		case m.details.edit != nil:
			_, cmd = m.details.edit.update(msg)
		case m.details.item != nil:
			_, cmd = m.details.item.update(msg)
		case m.details.refining:
			m.details.refine, cmd = m.details.refine.Update(msg)
		}
	}
	return m, cmd
}

// navigate applies ev to the navigation state and prepares the destination view.
func (m *appModel) navigate(ev navEvent) tea.Cmd {
	prev := m.nav
	m.nav = transition(m.nav, ev)
	m.seq++
	m.confirm = nil

	var cmd tea.Cmd
	switch m.nav.view {
	case viewDashboard:
		m.refreshProjects()
	case viewProjectDetails:
		tab := tabScript
		if prev.view == viewProjectDetails && prev.projectID == m.nav.projectID {
			tab = m.details.tab
		}
		m.details = newDetailsState(tab)
	case viewNewProject:
		m.newForm = newNewProjectState()
		cmd = m.newForm.form.fields[0].input.Focus()
	case viewQuickAdd:
		m.quick = newQuickAddState()
		cmd = m.quick.input.Focus()
	case viewSettings:
		m.settings = newSettingsState(m.db.Theme)
	case viewTools:
		m.tools = newToolsState()
		cmd = m.tools.topic.Focus()
	case viewArchive:
		m.refreshArchive()
	case viewCalendar:
		m.cal.selectToday(m.now())
	}
	m.resize()
	m.saveTUIState()
	return cmd
}

// busy reports whether any AI request of the current view is in flight.
func (m appModel) busy() bool {
	switch m.nav.view {
	case viewProjectDetails:
		return m.details.pending != ""
	case viewNewProject:
		return m.newForm.pending
	case viewQuickAdd:
		return !m.quick.session.Accepting() && m.quick.project == nil
	case viewTools:
		return m.tools.pending
	}
	return false
}

// commit persists a mutation and records it in the activity log.
func (m *appModel) commit(res mutate.Result) error {
	if !res.Changed || res.Project == nil {
		return nil
	}
	if _, err := m.store.UpdateProject(m.db, *res.Project); err != nil {
		logger.Get("tui").WithError(err).WithField("project", res.Project.ID).Error("save project failed")
		return err
	}
	m.appendEvent(res.EventType, res.Project.ID, res.EventPayload)
	return nil
}

func (m *appModel) appendEvent(typ, entityID string, payload any) {
	if err := m.store.AppendEvent(typ, entityID, payload); err != nil {
		logger.Get("tui").WithError(err).WithField("type", typ).Warn("append event failed")
	}
	m.captureStoreModTimes()
}

// setStatus shows a one-line message in the footer for a few seconds.
func (m *appModel) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.statusText = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg { return statusDoneMsg{seq: seq} })
}

func (m *appModel) resize() {
	bodyW, bodyH := m.bodySize()
	listW := bodyW
	if bodyW >= 90 {
		listW = bodyW * 3 / 5
	}
	m.projectsList.SetSize(listW, bodyH-2)
	m.archiveList.SetSize(bodyW, bodyH-2)
	m.tools.results.SetSize(bodyW, bodyH-8)
}

// bodySize is the space left for a view between header and footer.
func (m appModel) bodySize() (int, int) {
	w := m.width
	if w < 40 {
		w = 40
	}
	h := m.height - 5
	if h < 10 {
		h = 10
	}
	return w, h
}

func (m appModel) View() string {
	if m.tutorial.open {
		return placeCentered(m.width, m.height, m.tutorial.view(m.width))
	}
	if m.confirm != nil {
		a := m.confirm.action
		return placeCentered(m.width, m.height, renderConfirmModal(m.width, a.title, a.body, a.label, "Cancel", m.confirm.focus))
	}

	var body string
	switch m.nav.view {
	case viewDashboard:
		body = m.viewDashboard()
	case viewProjectDetails:
		body = m.viewDetails()
	case viewNewProject:
		body = m.viewNewProject()
	case viewQuickAdd:
		body = m.viewQuickAdd()
	case viewSettings:
		body = m.viewSettings()
	case viewTools:
		body = m.viewTools()
	case viewArchive:
		body = m.viewArchive()
	case viewCalendar:
		body = m.viewCalendar()
	}
	bodyW, bodyH := m.bodySize()
	return strings.Join([]string{
		m.viewHeader(),
		normalizePane(body, bodyW, bodyH),
		m.viewFooter(),
	}, "\n")
}

func (m appModel) viewHeader() string {
	w, _ := m.bodySize()
	brand := styleAccent().Render("FrameFlow")
	crumb := styleMuted().Render(" " + glyphArrow() + " " + viewTitle(m.nav.view))
	ws := ""
	if m.workspace != "" {
		ws = styleMuted().Render("  [" + m.workspace + "]")
	}
	line := brand + crumb + ws
	rule := styleMuted().Render(strings.Repeat(glyphHRule(), w))
	return line + "\n" + rule
}

func (m appModel) viewFooter() string {
	w, _ := m.bodySize()
	status := ""
	if m.statusText != "" {
		st := lipgloss.NewStyle().Foreground(colorSuccessFg)
		if m.statusErr {
			st = styleError()
		}
		status = st.Render(truncateToWidth(m.statusText, w))
	}
	help := styleMuted().Render(truncateToWidth(m.helpText(), w))
	return status + "\n" + help
}

func viewTitle(v view) string {
	switch v {
	case viewProjectDetails:
		return "Project"
	case viewNewProject:
		return "New project"
	case viewQuickAdd:
		return "AI quick add"
	case viewSettings:
		return "Settings"
	case viewTools:
		return "Creator tools"
	case viewArchive:
		return "Archive"
	case viewCalendar:
		return "Calendar"
	}
	return "Dashboard"
}

func (m appModel) helpText() string {
	switch m.nav.view {
	case viewDashboard:
		return "enter: open  n: new  a: ai quick add  tab: active/completed  c: calendar  v: archive  t: tools  s: settings  ?: tutorial  q: quit"
	case viewProjectDetails:
		return m.detailsHelp()
	case viewNewProject:
		return "tab: next field  ←/→: choose  ctrl+s: create  esc: cancel"
	case viewQuickAdd:
		return "enter: send  esc: back"
	case viewSettings:
		return "↑/↓: setting  ←/→: change  g: glyphs  t: replay tutorial  esc: back"
	case viewTools:
		return m.toolsHelp()
	case viewArchive:
		return "enter: open  u: unarchive  D: delete  esc: back"
	case viewCalendar:
		return "←/→: day  ↑/↓: week  [/]: month  .: today  enter: open project  esc: back"
	}
	return ""
}

func tickReload() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTimes() {
	m.modTimes = map[string]time.Time{}
	for _, p := range m.store.StateFiles() {
		m.modTimes[p] = fileModTime(p)
	}
}

func (m appModel) storeChanged() bool {
	for _, p := range m.store.StateFiles() {
		if fileModTime(p).After(m.modTimes[p]) {
			return true
		}
	}
	return false
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}

// reloadFromDisk picks up writes made by CLI commands in another terminal.
func (m *appModel) reloadFromDisk() {
	db, err := m.store.Load()
	if err != nil {
		logger.Get("tui").WithError(err).Warn("reload failed")
		return
	}
	m.db = db
	applyTheme(db.Theme)
	resetMarkdownRenderers()
	m.captureStoreModTimes()
	m.refreshProjects()
	m.refreshArchive()
}

func (m *appModel) refreshProjects() {
	curID := ""
	if it, ok := m.projectsList.SelectedItem().(projectItem); ok {
		curID = it.project.ID
	}
	views := model.Partition(m.db.Projects)
	src := views.Active
	if m.dashboardTab == dashboardCompleted {
		src = views.Completed
	}
	items := make([]list.Item, 0, len(src))
	for _, p := range src {
		items = append(items, projectItem{project: p})
	}
	m.projectsList.SetItems(items)
	selectProjectByID(&m.projectsList, curID)
}

func (m *appModel) refreshArchive() {
	curID := ""
	if it, ok := m.archiveList.SelectedItem().(projectItem); ok {
		curID = it.project.ID
	}
	archived := model.Partition(m.db.Projects).Archived
	items := make([]list.Item, 0, len(archived))
	for _, p := range archived {
		items = append(items, projectItem{project: p})
	}
	m.archiveList.SetItems(items)
	selectProjectByID(&m.archiveList, curID)
}

func selectProjectByID(l *list.Model, id string) {
	if id == "" {
		return
	}
	for i, it := range l.Items() {
		if pi, ok := it.(projectItem); ok && pi.project.ID == id {
			l.Select(i)
			return
		}
	}
}
