package mutate

import (
	"time"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// NewProject validates in and builds a fresh project with a collection-unique id.
// It does not insert the project; callers pass it to store.CreateProject.
func NewProject(db *store.DB, in ProjectInput, strategy model.Strategy) (model.Project, error) {
	if err := in.Validate(); err != nil {
		return model.Project{}, err
	}
	id := store.NewID(store.PrefixProject, nil)
	if db != nil {
		id = db.NextProjectID()
	}
	return BuildProject(id, in, strategy, now()), nil
}

// BuildProject assembles a new project: idea done (20%), empty schedule, no badges.
func BuildProject(id string, in ProjectInput, strategy model.Strategy, at time.Time) model.Project {
	p := model.Project{
		ID:          id,
		Title:       in.Title,
		Idea:        in.Idea,
		ContentType: in.ContentType,
		Platform:    in.Platform,
		Deadline:    in.Deadline,
		Strategy:    strategy,
		Progress:    model.NewProgress(),
		CreatedAt:   at,
		UpdatedAt:   at,
	}
	EnsureChildIDs(&p)
	p.Normalize()
	return p
}

// CreatedPayload is the activity-log payload for project.create.
func CreatedPayload(p model.Project) map[string]any {
	return map[string]any{
		"title":       p.Title,
		"contentType": string(p.ContentType),
		"platform":    string(p.Platform),
		"shots":       len(p.Strategy.Shots),
		"editingPlan": len(p.Strategy.EditingPlan),
	}
}

// EnsureChildIDs gives every shot, editing step and schedule item an id that is unique in its list.
// Existing unique ids are kept.
func EnsureChildIDs(p *model.Project) {
	shotIDs := map[string]bool{}
	for i := range p.Strategy.Shots {
		sh := &p.Strategy.Shots[i]
		if sh.ID == "" || shotIDs[sh.ID] {
			sh.ID = store.NewID(store.PrefixShot, func(id string) bool { return shotIDs[id] || hasShot(p.Strategy.Shots, id) })
		}
		shotIDs[sh.ID] = true
	}
	stepIDs := map[string]bool{}
	for i := range p.Strategy.EditingPlan {
		st := &p.Strategy.EditingPlan[i]
		if st.ID == "" || stepIDs[st.ID] {
			st.ID = store.NewID(store.PrefixEdit, func(id string) bool { return stepIDs[id] || hasStep(p.Strategy.EditingPlan, id) })
		}
		stepIDs[st.ID] = true
	}
	for _, ph := range model.Phases {
		items := *p.Schedule.List(ph)
		seen := map[string]bool{}
		for i := range items {
			it := &items[i]
			if it.ID == "" || seen[it.ID] {
				it.ID = store.NewID(store.SchedulePrefix(ph), func(id string) bool { return seen[id] || hasItem(items, id) })
			}
			seen[it.ID] = true
		}
	}
}

func hasShot(xs []model.Shot, id string) bool {
	for _, x := range xs {
		if x.ID == id {
			return true
		}
	}
	return false
}

func hasStep(xs []model.EditingStep, id string) bool {
	for _, x := range xs {
		if x.ID == id {
			return true
		}
	}
	return false
}

func hasItem(xs []model.ScheduleItem, id string) bool {
	for _, x := range xs {
		if x.ID == id {
			return true
		}
	}
	return false
}
