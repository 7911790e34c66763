package store

import (
	"time"

	"frameflow-cli/internal/model"
)

// SeedProjects is the collection a brand-new workspace starts with.
// Dates are relative to now so the sample always shows upcoming work.
func SeedProjects(now time.Time) []model.Project {
	day := 24 * time.Hour
	deadline := now.Add(14 * day)
	filmAt := now.Add(2 * day)
	editAt := now.Add(5 * day)
	pubAt := now.Add(7 * day)
	filmMin, editMin := 120, 240

	p := model.Project{
		ID:          "proj-seed0001",
		Title:       "My First Vlog",
		Idea:        "A day in the life of a developer, showing my setup, a coding session, and how I relax.",
		ContentType: model.ContentVlog,
		Platform:    model.PlatformYouTube,
		Deadline:    &deadline,
		Strategy: model.Strategy{
			Script: "HOOK: Ever wondered what a developer REALLY does all day?\n\n" +
				"SELLING THE SOLUTION: It's not just code! I'll show you how I structure my day for maximum productivity and fun.\n\n" +
				"GIVING THE PRINCIPLE: We'll cover my morning routine, deep work setup, and how I decompress.\n\n" +
				"MAKING IT APPLICABLE: You can steal these exact techniques to improve your own work-from-home life.\n\n" +
				"CTA: If you found this helpful, hit the subscribe button for more!",
			Shots: []model.Shot{
				{ID: "shot-seed0001", Scene: "Intro", Angle: "Medium Close-up", Location: "Office", Gear: []string{"iPhone 15", "Ring Light"}, Notes: "Speak directly to camera."},
				{ID: "shot-seed0002", Scene: "Workspace Tour", Angle: "Wide Angle", Location: "Office", Gear: []string{"iPhone 15"}, Notes: "Use smooth panning shots."},
			},
			EditingPlan: []model.EditingStep{
				{ID: "edit-seed0001", Step: "Rough Cut", Tools: []string{"DaVinci Resolve"}, Notes: "Assemble all clips in order."},
				{ID: "edit-seed0002", Step: "Color Grading", Tools: []string{"DaVinci Resolve"}, Notes: "Apply a consistent LUT."},
			},
		},
		Schedule: model.Schedule{
			Filming:    []model.ScheduleItem{{ID: "film-seed0001", Date: &filmAt, Segment: "Intro & Office shots", DurationMin: &filmMin}},
			Editing:    []model.ScheduleItem{{ID: "cut-seed0001", Date: &editAt, Segment: "Full Edit", DurationMin: &editMin}},
			Publishing: []model.ScheduleItem{{ID: "pub-seed0001", Date: &pubAt, Segment: "Final Upload", Platform: string(model.PlatformYouTube)}},
		},
		Progress:  model.NewProgress().With(model.MilestoneScript, true),
		Badges:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	p.Normalize()
	return []model.Project{p}
}
