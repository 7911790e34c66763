package mutate

import (
	"strings"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// AddShot appends a shot, minting an id that is unique within the shot list.
func AddShot(db *store.DB, projectID string, sh model.Shot) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	sh.Scene = strings.TrimSpace(sh.Scene)
	if sh.Scene == "" {
		return Result{}, ValidationError{Field: "scene", Message: "is required"}
	}
	if sh.Gear == nil {
		sh.Gear = []string{}
	}
	shots := p.Strategy.Shots
	sh.ID = store.NewID(store.PrefixShot, func(id string) bool { return hasShot(shots, id) })
	p.Strategy.Shots = append(p.Strategy.Shots, sh)
	touch(p)
	return Result{Project: p, Changed: true, EventType: "shot.add", EventPayload: map[string]any{"shotId": sh.ID, "scene": sh.Scene}}, nil
}

// UpdateShot replaces the shot with sh.ID in place. The id and list position are kept.
func UpdateShot(db *store.DB, projectID string, sh model.Shot) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	sh.ID = strings.TrimSpace(sh.ID)
	sh.Scene = strings.TrimSpace(sh.Scene)
	if sh.Scene == "" {
		return Result{}, ValidationError{Field: "scene", Message: "is required"}
	}
	if sh.Gear == nil {
		sh.Gear = []string{}
	}
	for i := range p.Strategy.Shots {
		if p.Strategy.Shots[i].ID == sh.ID {
			p.Strategy.Shots[i] = sh
			touch(p)
			return Result{Project: p, Changed: true, EventType: "shot.update", EventPayload: map[string]any{"shotId": sh.ID, "scene": sh.Scene}}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "shot", ID: sh.ID}
}

func RemoveShot(db *store.DB, projectID, shotID string) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	shotID = strings.TrimSpace(shotID)
	for i := range p.Strategy.Shots {
		if p.Strategy.Shots[i].ID == shotID {
			p.Strategy.Shots = append(p.Strategy.Shots[:i:i], p.Strategy.Shots[i+1:]...)
			touch(p)
			return Result{Project: p, Changed: true, EventType: "shot.remove", EventPayload: map[string]any{"shotId": shotID}}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "shot", ID: shotID}
}

// ReplaceShots swaps in a generated shot list. Ids are re-minted where they would collide.
func ReplaceShots(db *store.DB, projectID string, shots []model.Shot) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	p.Strategy.Shots = append([]model.Shot{}, shots...)
	EnsureChildIDs(p)
	p.Normalize()
	touch(p)
	return Result{Project: p, Changed: true, EventType: "shots.generate", EventPayload: map[string]any{"shots": len(p.Strategy.Shots)}}, nil
}

func AddEditingStep(db *store.DB, projectID string, st model.EditingStep) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	st.Step = strings.TrimSpace(st.Step)
	if st.Step == "" {
		return Result{}, ValidationError{Field: "step", Message: "is required"}
	}
	if st.Tools == nil {
		st.Tools = []string{}
	}
	steps := p.Strategy.EditingPlan
	st.ID = store.NewID(store.PrefixEdit, func(id string) bool { return hasStep(steps, id) })
	p.Strategy.EditingPlan = append(p.Strategy.EditingPlan, st)
	touch(p)
	return Result{Project: p, Changed: true, EventType: "editing.add", EventPayload: map[string]any{"stepId": st.ID, "step": st.Step}}, nil
}

// UpdateEditingStep replaces the step with st.ID in place. The id and order are kept.
func UpdateEditingStep(db *store.DB, projectID string, st model.EditingStep) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	st.ID = strings.TrimSpace(st.ID)
	st.Step = strings.TrimSpace(st.Step)
	if st.Step == "" {
		return Result{}, ValidationError{Field: "step", Message: "is required"}
	}
	if st.Tools == nil {
		st.Tools = []string{}
	}
	for i := range p.Strategy.EditingPlan {
		if p.Strategy.EditingPlan[i].ID == st.ID {
			p.Strategy.EditingPlan[i] = st
			touch(p)
			return Result{Project: p, Changed: true, EventType: "editing.update", EventPayload: map[string]any{"stepId": st.ID, "step": st.Step}}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "editing step", ID: st.ID}
}

func RemoveEditingStep(db *store.DB, projectID, stepID string) (Result, error) {
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	stepID = strings.TrimSpace(stepID)
	for i := range p.Strategy.EditingPlan {
		if p.Strategy.EditingPlan[i].ID == stepID {
			p.Strategy.EditingPlan = append(p.Strategy.EditingPlan[:i:i], p.Strategy.EditingPlan[i+1:]...)
			touch(p)
			return Result{Project: p, Changed: true, EventType: "editing.remove", EventPayload: map[string]any{"stepId": stepID}}, nil
		}
	}
	return Result{}, NotFoundError{Kind: "editing step", ID: stepID}
}
