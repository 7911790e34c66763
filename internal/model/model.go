package model

import (
	"fmt"
	"strings"
	"time"
)

type ContentType string

const (
	ContentShort     ContentType = "short"
	ContentVlog      ContentType = "vlog"
	ContentCinematic ContentType = "cinematic"
	ContentTutorial  ContentType = "tutorial"
)

var ContentTypes = []ContentType{ContentShort, ContentVlog, ContentCinematic, ContentTutorial}

func (c ContentType) Valid() bool {
	for _, v := range ContentTypes {
		if v == c {
			return true
		}
	}
	return false
}

func ParseContentType(s string) (ContentType, error) {
	c := ContentType(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown content type: %q (expected short|vlog|cinematic|tutorial)", s)
	}
	return c, nil
}

type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformX         Platform = "x"
	PlatformFacebook  Platform = "facebook"
	PlatformOther     Platform = "other"
)

var Platforms = []Platform{PlatformYouTube, PlatformInstagram, PlatformTikTok, PlatformX, PlatformFacebook, PlatformOther}

func (p Platform) Valid() bool {
	for _, v := range Platforms {
		if v == p {
			return true
		}
	}
	return false
}

func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform: %q (expected youtube|instagram|tiktok|x|facebook|other)", s)
	}
	return p, nil
}

type Shot struct {
	ID       string   `json:"id"`
	Scene    string   `json:"scene"`
	Angle    string   `json:"angle"`
	Location string   `json:"location"`
	Gear     []string `json:"gear"`
	Notes    string   `json:"notes"`
}

type EditingStep struct {
	ID    string   `json:"id"`
	Step  string   `json:"step"`
	Tools []string `json:"tools"`
	Notes string   `json:"notes"`
}

// ScheduleItem is a dated unit of work inside one schedule phase.
// Date is optional; undated items are listed but never appear on the calendar.
type ScheduleItem struct {
	ID          string     `json:"id"`
	Date        *time.Time `json:"date,omitempty"`
	Segment     string     `json:"segment"`
	DurationMin *int       `json:"durationMin,omitempty"`
	Platform    string     `json:"platform,omitempty"`
}

type Strategy struct {
	Script      string        `json:"script"`
	Shots       []Shot        `json:"shots"`
	EditingPlan []EditingStep `json:"editingPlan"`
}

type Phase string

const (
	PhaseFilming    Phase = "filming"
	PhaseEditing    Phase = "editing"
	PhasePublishing Phase = "publishing"
)

var Phases = []Phase{PhaseFilming, PhaseEditing, PhasePublishing}

func (p Phase) Valid() bool {
	switch p {
	case PhaseFilming, PhaseEditing, PhasePublishing:
		return true
	}
	return false
}

func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase: %q (expected filming|editing|publishing)", s)
	}
	return p, nil
}

type Schedule struct {
	Filming    []ScheduleItem `json:"filming"`
	Editing    []ScheduleItem `json:"editing"`
	Publishing []ScheduleItem `json:"publishing"`
}

// Items returns the list for phase (nil for an unknown phase).
func (s Schedule) Items(p Phase) []ScheduleItem {
	switch p {
	case PhaseFilming:
		return s.Filming
	case PhaseEditing:
		return s.Editing
	case PhasePublishing:
		return s.Publishing
	}
	return nil
}

// List returns a pointer to the phase list so callers can edit it in place.
func (s *Schedule) List(p Phase) *[]ScheduleItem {
	switch p {
	case PhaseFilming:
		return &s.Filming
	case PhaseEditing:
		return &s.Editing
	case PhasePublishing:
		return &s.Publishing
	}
	return nil
}

type Project struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Idea        string      `json:"idea"`
	ContentType ContentType `json:"contentType"`
	Platform    Platform    `json:"platform"`
	Deadline    *time.Time  `json:"deadline"`
	Strategy    Strategy    `json:"strategy"`
	Schedule    Schedule    `json:"schedule"`
	Progress    Progress    `json:"progress"`
	Badges      []string    `json:"badges"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	Archived    bool        `json:"archived"`
}

// Normalize replaces nil slices with empty ones so JSON output always carries arrays.
func (p *Project) Normalize() {
	if p.Strategy.Shots == nil {
		p.Strategy.Shots = []Shot{}
	}
	if p.Strategy.EditingPlan == nil {
		p.Strategy.EditingPlan = []EditingStep{}
	}
	for i := range p.Strategy.Shots {
		if p.Strategy.Shots[i].Gear == nil {
			p.Strategy.Shots[i].Gear = []string{}
		}
	}
	for i := range p.Strategy.EditingPlan {
		if p.Strategy.EditingPlan[i].Tools == nil {
			p.Strategy.EditingPlan[i].Tools = []string{}
		}
	}
	for _, ph := range Phases {
		if l := p.Schedule.List(ph); *l == nil {
			*l = []ScheduleItem{}
		}
	}
	if p.Badges == nil {
		p.Badges = []string{}
	}
}

// Clone returns a deep copy, so edits to the copy never reach the original's slices or pointers.
func (p Project) Clone() Project {
	out := p
	out.Deadline = cloneTime(p.Deadline)
	out.Strategy.Shots = cloneSlice(p.Strategy.Shots)
	for i := range out.Strategy.Shots {
		out.Strategy.Shots[i].Gear = cloneSlice(out.Strategy.Shots[i].Gear)
	}
	out.Strategy.EditingPlan = cloneSlice(p.Strategy.EditingPlan)
	for i := range out.Strategy.EditingPlan {
		out.Strategy.EditingPlan[i].Tools = cloneSlice(out.Strategy.EditingPlan[i].Tools)
	}
	for _, ph := range Phases {
		l := out.Schedule.List(ph)
		*l = cloneSlice(*l)
		for i := range *l {
			(*l)[i].Date = cloneTime((*l)[i].Date)
			if d := (*l)[i].DurationMin; d != nil {
				n := *d
				(*l)[i].DurationMin = &n
			}
		}
	}
	out.Badges = cloneSlice(p.Badges)
	return out
}

func cloneSlice[T any](xs []T) []T {
	if xs == nil {
		return nil
	}
	return append(make([]T, 0, len(xs)), xs...)
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

type ThemePalette string

const (
	PaletteIndigo   ThemePalette = "indigo"
	PaletteSlate    ThemePalette = "slate"
	PaletteRosePine ThemePalette = "rose-pine"
	PaletteForest   ThemePalette = "forest"
	PaletteCrimson  ThemePalette = "crimson"
	PaletteBlue     ThemePalette = "blue"
)

var Palettes = []ThemePalette{PaletteIndigo, PaletteSlate, PaletteRosePine, PaletteForest, PaletteCrimson, PaletteBlue}

type ThemeDarkness string

const (
	DarknessDim       ThemeDarkness = "dim"
	DarknessLightsOut ThemeDarkness = "lights-out"
)

type ThemeSettings struct {
	Mode     ThemeMode     `json:"mode" validate:"oneof=light dark"`
	Palette  ThemePalette  `json:"palette" validate:"oneof=indigo slate rose-pine forest crimson blue"`
	Darkness ThemeDarkness `json:"darkness" validate:"oneof=dim lights-out"`
}

func DefaultTheme() ThemeSettings {
	return ThemeSettings{Mode: ThemeDark, Palette: PaletteIndigo, Darkness: DarknessDim}
}
