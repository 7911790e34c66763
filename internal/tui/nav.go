package tui

import "strings"

type view int

const (
	viewDashboard view = iota
	viewProjectDetails
	viewNewProject
	viewQuickAdd
	viewSettings
	viewTools
	viewArchive
	viewCalendar
)

var viewNames = map[view]string{
	viewDashboard:      "dashboard",
	viewProjectDetails: "project-details",
	viewNewProject:     "new-project",
	viewQuickAdd:       "ai-quick-add",
	viewSettings:       "settings",
	viewTools:          "tools",
	viewArchive:        "archive",
	viewCalendar:       "calendar",
}

func (v view) String() string {
	if s, ok := viewNames[v]; ok {
		return s
	}
	return "dashboard"
}

// parseView maps a persisted view name back. Form views are not restored.
func parseView(s string) (view, bool) {
	s = strings.TrimSpace(s)
	for v, name := range viewNames {
		if name == s {
			if v == viewNewProject || v == viewQuickAdd {
				return viewDashboard, true
			}
			return v, true
		}
	}
	return viewDashboard, false
}

type navEventKind int

const (
	navOpenProject navEventKind = iota
	navNewProject
	navQuickAdd
	navOpenSettings
	navOpenTools
	navOpenArchive
	navOpenCalendar
	navBack
	navCreated
	navDeleted
	navArchived
)

type navEvent struct {
	kind      navEventKind
	projectID string
}

func openProject(id string) navEvent { return navEvent{kind: navOpenProject, projectID: id} }

// navState is the current screen. ProjectID is only meaningful for project-details.
type navState struct {
	view      view
	projectID string
}

// transition is the whole navigation graph. It never looks at the collection: opening
// an id that does not exist still lands on project-details, which renders a not-found panel.
func transition(s navState, ev navEvent) navState {
	switch ev.kind {
	case navOpenProject:
		return navState{view: viewProjectDetails, projectID: strings.TrimSpace(ev.projectID)}
	case navNewProject:
		return navState{view: viewNewProject}
	case navQuickAdd:
		return navState{view: viewQuickAdd}
	case navOpenSettings:
		return navState{view: viewSettings}
	case navOpenTools:
		return navState{view: viewTools}
	case navOpenArchive:
		return navState{view: viewArchive}
	case navOpenCalendar:
		return navState{view: viewCalendar}
	case navBack, navCreated, navDeleted, navArchived:
		return navState{view: viewDashboard}
	}
	return s
}
