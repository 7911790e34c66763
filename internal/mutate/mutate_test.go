package mutate

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"frameflow-cli/internal/model"
	"frameflow-cli/internal/store"
)

func strPtr(s string) *string { return &s }

// fixedClock pins now() and advances it by one second per call.
func fixedClock(t *testing.T, start time.Time) {
	t.Helper()
	cur := start
	prev := now
	now = func() time.Time {
		cur = cur.Add(time.Second)
		return cur
	}
	t.Cleanup(func() { now = prev })
}

func testDB() *store.DB {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id string) model.Project {
		p := model.Project{ID: id, Title: id, Idea: "idea", ContentType: model.ContentVlog, Platform: model.PlatformYouTube,
			Progress: model.NewProgress(), CreatedAt: at, UpdatedAt: at}
		p.Normalize()
		return p
	}
	return &store.DB{Projects: []model.Project{mk("proj-a"), mk("proj-b"), mk("proj-c")}, Theme: model.DefaultTheme()}
}

// apply stores res.Project back into db the way store.UpdateProject does, minus the disk write.
func apply(t *testing.T, db *store.DB, res Result) {
	t.Helper()
	for i := range db.Projects {
		if db.Projects[i].ID == res.Project.ID {
			db.Projects[i] = *res.Project
			return
		}
	}
	t.Fatalf("project %s not in db", res.Project.ID)
}

func TestNewProject_ValidatesBeforeBuilding(t *testing.T) {
	cases := map[string]struct {
		in    ProjectInput
		field string
	}{
		"missing title": {ProjectInput{Idea: "x", ContentType: model.ContentVlog, Platform: model.PlatformX}, "title"},
		"blank idea":    {ProjectInput{Title: "T", Idea: "   ", ContentType: model.ContentVlog, Platform: model.PlatformX}, "idea"},
		"bad type":      {ProjectInput{Title: "T", Idea: "x", ContentType: "podcast", Platform: model.PlatformX}, "contentType"},
		"bad platform":  {ProjectInput{Title: "T", Idea: "x", ContentType: model.ContentVlog, Platform: "myspace"}, "platform"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewProject(testDB(), tc.in, model.Strategy{})
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Field != tc.field {
				t.Fatalf("expected field %q, got %q (%v)", tc.field, ve.Field, ve)
			}
		})
	}
}

func TestNewProject_StartsAtIdea(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	p, err := NewProject(db, ProjectInput{Title: "  Desk tour ", Idea: "show the desk", ContentType: model.ContentShort, Platform: model.PlatformTikTok},
		model.Strategy{Script: "HOOK", Shots: []model.Shot{{Scene: "a"}, {Scene: "b"}}})
	if err != nil {
		t.Fatalf("NewProject: %v", err)
	}
	if p.Title != "Desk tour" || !p.Progress.Idea || p.Progress.Percent != 20 {
		t.Fatalf("unexpected project: %+v", p)
	}
	if !strings.HasPrefix(p.ID, "proj-") {
		t.Fatalf("unexpected id %q", p.ID)
	}
	if len(p.Schedule.Filming) != 0 || p.Schedule.Filming == nil {
		t.Fatalf("expected empty schedule lists")
	}
	if p.Strategy.Shots[0].ID == "" || p.Strategy.Shots[0].ID == p.Strategy.Shots[1].ID {
		t.Fatalf("expected distinct shot ids: %+v", p.Strategy.Shots)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt on creation")
	}
}

func TestSetMilestone_RecomputesPercentAndTouches(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	created := db.Projects[0].CreatedAt

	res, err := SetMilestone(db, "proj-a", model.MilestoneFilming, true)
	if err != nil {
		t.Fatalf("SetMilestone: %v", err)
	}
	if !res.Changed || res.Project.Progress.Percent != 40 || !res.Project.Progress.Filming {
		t.Fatalf("unexpected result: %+v", res.Project.Progress)
	}
	if !res.Project.UpdatedAt.After(created) || !res.Project.CreatedAt.Equal(created) {
		t.Fatalf("expected updatedAt refreshed and createdAt unchanged")
	}
	if res.EventType != "project.progress" || res.EventPayload["percent"] != 40 {
		t.Fatalf("unexpected event: %s %#v", res.EventType, res.EventPayload)
	}
	apply(t, db, res)

	res, err = SetMilestone(db, "proj-a", model.MilestoneFilming, true)
	if err != nil || res.Changed {
		t.Fatalf("expected no-op, got changed=%v err=%v", res.Changed, err)
	}

	if _, err := SetMilestone(db, "proj-missing", model.MilestoneIdea, true); !errors.As(err, new(NotFoundError)) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestArchiveUnarchive_RestoresPartition(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	before := model.Partition(db.Projects)
	t0 := db.Projects[1].UpdatedAt

	res, err := SetProjectArchived(db, "proj-b", true)
	if err != nil || !res.Changed || !res.Project.Archived {
		t.Fatalf("archive: %+v %v", res, err)
	}
	t1 := res.Project.UpdatedAt
	if !t1.After(t0) {
		t.Fatalf("archive must advance updatedAt")
	}
	apply(t, db, res)
	if got := model.Archived(db.Projects); len(got) != 1 || got[0].ID != "proj-b" {
		t.Fatalf("unexpected archived view: %+v", got)
	}

	res, err = SetProjectArchived(db, "proj-b", false)
	if err != nil || !res.Changed || res.Project.Archived {
		t.Fatalf("unarchive: %+v %v", res, err)
	}
	if !res.Project.UpdatedAt.After(t1) {
		t.Fatalf("unarchive must advance updatedAt")
	}
	if res.EventType != "project.unarchive" {
		t.Fatalf("unexpected event type %q", res.EventType)
	}
	apply(t, db, res)

	after := model.Partition(db.Projects)
	ids := func(ps []model.Project) []string {
		out := []string{}
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	if !reflect.DeepEqual(ids(before.Active), ids(after.Active)) || len(after.Archived) != 0 || len(after.Completed) != len(before.Completed) {
		t.Fatalf("partition not restored: before=%v after=%v", ids(before.Active), ids(after.Active))
	}
}

func TestTouch_NeverStandsStill(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })

	p := model.Project{UpdatedAt: at}
	touch(&p)
	if !p.UpdatedAt.After(at) {
		t.Fatalf("expected updatedAt to advance past %v, got %v", at, p.UpdatedAt)
	}
}

func TestUpdateFields_ValidatesMergedResult(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()

	if _, err := UpdateFields(db, "proj-a", ProjectPatch{Title: strPtr("  ")}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if db.Projects[0].Title != "proj-a" {
		t.Fatalf("failed update must not change the project")
	}

	deadline := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	short := model.ContentShort
	res, err := UpdateFields(db, "proj-a", ProjectPatch{Title: strPtr("Renamed"), ContentType: &short, Deadline: &deadline, Script: strPtr("HOOK: hi")})
	if err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	p := res.Project
	if p.Title != "Renamed" || p.ContentType != model.ContentShort || p.Deadline == nil || !p.Deadline.Equal(deadline) || p.Strategy.Script != "HOOK: hi" {
		t.Fatalf("unexpected project: %+v", p)
	}
	if res.EventPayload["fields"] != "title,contentType,deadline,script" {
		t.Fatalf("unexpected fields payload: %#v", res.EventPayload)
	}

	res, err = UpdateFields(db, "proj-a", ProjectPatch{ClearDeadline: true})
	if err != nil || res.Project.Deadline != nil {
		t.Fatalf("expected cleared deadline, got %+v %v", res.Project.Deadline, err)
	}

	res, err = UpdateFields(db, "proj-a", ProjectPatch{})
	if err != nil || res.Changed {
		t.Fatalf("empty patch should be a no-op")
	}
}

func TestShotsAndEditingSteps(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()

	if _, err := AddShot(db, "proj-a", model.Shot{Scene: " "}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	r1, err := AddShot(db, "proj-a", model.Shot{Scene: "Intro", Angle: "Wide"})
	if err != nil {
		t.Fatalf("AddShot: %v", err)
	}
	apply(t, db, r1)
	r2, err := AddShot(db, "proj-a", model.Shot{Scene: "Outro"})
	if err != nil {
		t.Fatalf("AddShot: %v", err)
	}
	apply(t, db, r2)
	shots := r2.Project.Strategy.Shots
	if len(shots) != 2 || shots[0].ID == shots[1].ID || !strings.HasPrefix(shots[0].ID, "shot-") {
		t.Fatalf("unexpected shots: %+v", shots)
	}
	if shots[1].Gear == nil {
		t.Fatalf("expected non-nil gear")
	}
	rm, err := RemoveShot(db, "proj-a", r1.EventPayload["shotId"].(string))
	if err != nil {
		t.Fatalf("RemoveShot: %v", err)
	}
	apply(t, db, rm)
	if got := db.Projects[0].Strategy.Shots; len(got) != 1 || got[0].Scene != "Outro" {
		t.Fatalf("unexpected shots after remove: %+v", got)
	}
	if _, err := RemoveShot(db, "proj-a", "shot-nope"); !errors.As(err, new(NotFoundError)) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}

	res, err := ReplaceShots(db, "proj-a", []model.Shot{{ID: "dup", Scene: "1"}, {ID: "dup", Scene: "2"}})
	if err != nil {
		t.Fatalf("ReplaceShots: %v", err)
	}
	if s := res.Project.Strategy.Shots; len(s) != 2 || s[0].ID != "dup" || s[1].ID == "dup" {
		t.Fatalf("expected duplicate id re-minted: %+v", s)
	}

	st, err := AddEditingStep(db, "proj-a", model.EditingStep{Step: "Rough cut", Tools: []string{"Resolve"}})
	if err != nil {
		t.Fatalf("AddEditingStep: %v", err)
	}
	apply(t, db, st)
	stepID := st.EventPayload["stepId"].(string)
	if !strings.HasPrefix(stepID, "edit-") {
		t.Fatalf("unexpected step id %q", stepID)
	}
	rmStep, err := RemoveEditingStep(db, "proj-a", stepID)
	if err != nil {
		t.Fatalf("RemoveEditingStep: %v", err)
	}
	apply(t, db, rmStep)
	if len(db.Projects[0].Strategy.EditingPlan) != 0 {
		t.Fatalf("expected empty editing plan")
	}
}

func TestScheduleItems(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	if _, err := AddScheduleItem(db, "proj-b", "rendering", model.ScheduleItem{Segment: "x"}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError for phase, got %v", err)
	}
	if _, err := AddScheduleItem(db, "proj-b", model.PhasePublishing, model.ScheduleItem{Segment: "Upload", Platform: "myspace"}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError for platform, got %v", err)
	}

	res, err := AddScheduleItem(db, "proj-b", model.PhaseFilming, model.ScheduleItem{Segment: "B-roll", Date: &day})
	if err != nil {
		t.Fatalf("AddScheduleItem: %v", err)
	}
	apply(t, db, res)
	items := res.Project.Schedule.Filming
	if len(items) != 1 || !strings.HasPrefix(items[0].ID, "film-") {
		t.Fatalf("unexpected filming items: %+v", items)
	}
	if _, err := RemoveScheduleItem(db, "proj-b", model.PhaseEditing, items[0].ID); !errors.As(err, new(NotFoundError)) {
		t.Fatalf("expected NotFoundError in the wrong phase, got %v", err)
	}
	rm, err := RemoveScheduleItem(db, "proj-b", model.PhaseFilming, items[0].ID)
	if err != nil {
		t.Fatalf("RemoveScheduleItem: %v", err)
	}
	apply(t, db, rm)
	if len(db.Projects[1].Schedule.Filming) != 0 {
		t.Fatalf("expected item removed")
	}
}

func TestApplyStrategy_ReplacesPlan(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	res, err := ApplyStrategy(db, "proj-c", model.Strategy{Script: "new", EditingPlan: []model.EditingStep{{Step: "Cut"}}})
	if err != nil {
		t.Fatalf("ApplyStrategy: %v", err)
	}
	s := res.Project.Strategy
	if s.Script != "new" || s.Shots == nil || len(s.EditingPlan) != 1 || s.EditingPlan[0].ID == "" || s.EditingPlan[0].Tools == nil {
		t.Fatalf("unexpected strategy: %+v", s)
	}
}

func TestValidateTheme(t *testing.T) {
	if err := ValidateTheme(model.DefaultTheme()); err != nil {
		t.Fatalf("default theme should validate: %v", err)
	}
	err := ValidateTheme(model.ThemeSettings{Mode: model.ThemeDark, Palette: "neon", Darkness: model.DarknessDim})
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Field != "palette" {
		t.Fatalf("expected palette ValidationError, got %v", err)
	}
}

func TestMutations_LeaveDBUntouchedUntilApplied(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	before := db.Projects[0].Clone()

	res, err := AddShot(db, "proj-a", model.Shot{Scene: "Intro", Gear: []string{"Cam"}})
	if err != nil {
		t.Fatalf("AddShot: %v", err)
	}
	if _, err := SetMilestone(db, "proj-a", model.MilestoneScript, true); err != nil {
		t.Fatalf("SetMilestone: %v", err)
	}
	if !reflect.DeepEqual(db.Projects[0], before) {
		t.Fatalf("db changed before the result was persisted: %+v", db.Projects[0])
	}

	apply(t, db, res)
	if len(db.Projects[0].Strategy.Shots) != 1 {
		t.Fatalf("expected the applied shot, got %+v", db.Projects[0].Strategy.Shots)
	}
	// the milestone result was never applied
	if db.Projects[0].Progress.Script {
		t.Fatalf("unapplied milestone leaked into db")
	}
}

func TestUpdateChildren_KeepIDsAndTouch(t *testing.T) {
	fixedClock(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	db := testDB()
	day := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	add, err := AddShot(db, "proj-a", model.Shot{Scene: "Intro"})
	if err != nil {
		t.Fatalf("AddShot: %v", err)
	}
	apply(t, db, add)
	shotID := add.Project.Strategy.Shots[0].ID
	t0 := add.Project.UpdatedAt

	if _, err := UpdateShot(db, "proj-a", model.Shot{ID: shotID, Scene: "  "}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, err := UpdateShot(db, "proj-a", model.Shot{ID: "shot-nope", Scene: "x"}); !errors.As(err, new(NotFoundError)) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	res, err := UpdateShot(db, "proj-a", model.Shot{ID: shotID, Scene: " Cold open ", Angle: "Low", Gear: []string{"Gimbal"}})
	if err != nil {
		t.Fatalf("UpdateShot: %v", err)
	}
	sh := res.Project.Strategy.Shots
	if len(sh) != 1 || sh[0].ID != shotID || sh[0].Scene != "Cold open" || sh[0].Angle != "Low" {
		t.Fatalf("unexpected shots: %+v", sh)
	}
	if !res.Project.UpdatedAt.After(t0) || res.EventType != "shot.update" {
		t.Fatalf("expected touched project and shot.update, got %v %q", res.Project.UpdatedAt, res.EventType)
	}
	apply(t, db, res)

	stepAdd, err := AddEditingStep(db, "proj-a", model.EditingStep{Step: "Rough cut"})
	if err != nil {
		t.Fatalf("AddEditingStep: %v", err)
	}
	apply(t, db, stepAdd)
	stepID := stepAdd.Project.Strategy.EditingPlan[0].ID
	stepRes, err := UpdateEditingStep(db, "proj-a", model.EditingStep{ID: stepID, Step: "Fine cut", Tools: []string{"Resolve"}})
	if err != nil {
		t.Fatalf("UpdateEditingStep: %v", err)
	}
	if st := stepRes.Project.Strategy.EditingPlan[0]; st.ID != stepID || st.Step != "Fine cut" || len(st.Tools) != 1 {
		t.Fatalf("unexpected step: %+v", st)
	}
	if !stepRes.Project.UpdatedAt.After(stepAdd.Project.UpdatedAt) {
		t.Fatalf("expected updatedAt to advance")
	}
	if _, err := UpdateEditingStep(db, "proj-a", model.EditingStep{ID: stepID}); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	itemAdd, err := AddScheduleItem(db, "proj-b", model.PhasePublishing, model.ScheduleItem{Segment: "Upload", Date: &day})
	if err != nil {
		t.Fatalf("AddScheduleItem: %v", err)
	}
	apply(t, db, itemAdd)
	item := itemAdd.Project.Schedule.Publishing[0]
	later := day.AddDate(0, 0, 2)
	item.Date = &later
	item.Platform = "youtube"
	moved, err := UpdateScheduleItem(db, "proj-b", model.PhasePublishing, item)
	if err != nil {
		t.Fatalf("UpdateScheduleItem: %v", err)
	}
	got := moved.Project.Schedule.Publishing
	if len(got) != 1 || got[0].ID != item.ID || !got[0].Date.Equal(later) || got[0].Platform != "youtube" {
		t.Fatalf("unexpected publishing items: %+v", got)
	}
	if !moved.Project.UpdatedAt.After(itemAdd.Project.UpdatedAt) || moved.EventType != "schedule.update" {
		t.Fatalf("expected touched project and schedule.update")
	}
	item.Platform = "myspace"
	if _, err := UpdateScheduleItem(db, "proj-b", model.PhasePublishing, item); !errors.As(err, new(ValidationError)) {
		t.Fatalf("expected ValidationError for platform, got %v", err)
	}
	if _, err := UpdateScheduleItem(db, "proj-b", model.PhaseFilming, got[0]); !errors.As(err, new(NotFoundError)) {
		t.Fatalf("expected NotFoundError in the wrong phase, got %v", err)
	}
}
