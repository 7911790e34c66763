package mutate

import (
	"fmt"
	"strings"
	"time"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

// AddScheduleItem appends item to the phase list with a fresh phase-prefixed id.
func AddScheduleItem(db *store.DB, projectID string, phase model.Phase, item model.ScheduleItem) (Result, error) {
	if !phase.Valid() {
		return Result{}, ValidationError{Field: "phase", Message: fmt.Sprintf("must be one of: filming editing publishing (got %q)", phase)}
	}
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	item.Segment = strings.TrimSpace(item.Segment)
	item.Platform = strings.TrimSpace(item.Platform)
	if err := asValidationError(validate.Struct(scheduleInput{Segment: item.Segment, DurationMin: item.DurationMin, Platform: item.Platform})); err != nil {
		return Result{}, err
	}

	list := p.Schedule.List(phase)
	existing := *list
	item.ID = store.NewID(store.SchedulePrefix(phase), func(id string) bool { return hasItem(existing, id) })
	*list = append(*list, item)
	touch(p)

	payload := map[string]any{"phase": string(phase), "itemId": item.ID, "segment": item.Segment}
	if item.Date != nil {
		payload["date"] = item.Date.UTC().Format(time.RFC3339)
	}
	return Result{Project: p, Changed: true, EventType: "schedule.add", EventPayload: payload}, nil
}

// UpdateScheduleItem replaces item.ID within phase, e.g. to reschedule it. The id is kept,
// so the item stays the same calendar entry.
func UpdateScheduleItem(db *store.DB, projectID string, phase model.Phase, item model.ScheduleItem) (Result, error) {
	if !phase.Valid() {
		return Result{}, ValidationError{Field: "phase", Message: fmt.Sprintf("must be one of: filming editing publishing (got %q)", phase)}
	}
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	item.ID = strings.TrimSpace(item.ID)
	item.Segment = strings.TrimSpace(item.Segment)
	item.Platform = strings.TrimSpace(item.Platform)
	if err := asValidationError(validate.Struct(scheduleInput{Segment: item.Segment, DurationMin: item.DurationMin, Platform: item.Platform})); err != nil {
		return Result{}, err
	}

	list := p.Schedule.List(phase)
	for i := range *list {
		if (*list)[i].ID != item.ID {
			continue
		}
		(*list)[i] = item
		touch(p)
		payload := map[string]any{"phase": string(phase), "itemId": item.ID, "segment": item.Segment}
		if item.Date != nil {
			payload["date"] = item.Date.UTC().Format(time.RFC3339)
		}
		return Result{Project: p, Changed: true, EventType: "schedule.update", EventPayload: payload}, nil
	}
	return Result{}, NotFoundError{Kind: string(phase) + " item", ID: item.ID}
}

func RemoveScheduleItem(db *store.DB, projectID string, phase model.Phase, itemID string) (Result, error) {
	if !phase.Valid() {
		return Result{}, ValidationError{Field: "phase", Message: fmt.Sprintf("must be one of: filming editing publishing (got %q)", phase)}
	}
	p, err := findProject(db, projectID)
	if err != nil {
		return Result{}, err
	}
	itemID = strings.TrimSpace(itemID)
	list := p.Schedule.List(phase)
	for i := range *list {
		if (*list)[i].ID == itemID {
			*list = append((*list)[:i:i], (*list)[i+1:]...)
			touch(p)
			return Result{Project: p, Changed: true, EventType: "schedule.remove", EventPayload: map[string]any{"phase": string(phase), "itemId": itemID}}, nil
		}
	}
	return Result{}, NotFoundError{Kind: string(phase) + " item", ID: itemID}
}
