package model

import "fmt"

type Milestone string

const (
	MilestoneIdea       Milestone = "idea"
	MilestoneScript     Milestone = "script"
	MilestoneFilming    Milestone = "filming"
	MilestoneEditing    Milestone = "editing"
	MilestonePublishing Milestone = "publishing"
)

// Milestones is the single source of truth for the progress denominator.
var Milestones = []Milestone{MilestoneIdea, MilestoneScript, MilestoneFilming, MilestoneEditing, MilestonePublishing}

func ParseMilestone(s string) (Milestone, error) {
	for _, m := range Milestones {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown milestone: %q (expected idea|script|filming|editing|publishing)", s)
}

type Progress struct {
	Idea       bool `json:"idea"`
	Script     bool `json:"script"`
	Filming    bool `json:"filming"`
	Editing    bool `json:"editing"`
	Publishing bool `json:"publishing"`
	Percent    int  `json:"percent"`
}

func (p Progress) Done(m Milestone) bool {
	switch m {
	case MilestoneIdea:
		return p.Idea
	case MilestoneScript:
		return p.Script
	case MilestoneFilming:
		return p.Filming
	case MilestoneEditing:
		return p.Editing
	case MilestonePublishing:
		return p.Publishing
	}
	return false
}

// With returns a copy with milestone m set to done and Percent recomputed.
func (p Progress) With(m Milestone, done bool) Progress {
	switch m {
	case MilestoneIdea:
		p.Idea = done
	case MilestoneScript:
		p.Script = done
	case MilestoneFilming:
		p.Filming = done
	case MilestoneEditing:
		p.Editing = done
	case MilestonePublishing:
		p.Publishing = done
	}
	p.Percent = ComputePercent(p)
	return p
}

func (p Progress) CountDone() int {
	n := 0
	for _, m := range Milestones {
		if p.Done(m) {
			n++
		}
	}
	return n
}

// ComputePercent rounds half-up using integer math so 0..5 done map exactly to 0,20,..,100.
func ComputePercent(p Progress) int {
	total := len(Milestones)
	if total == 0 {
		return 0
	}
	pct := (100*p.CountDone()*2 + total) / (2 * total)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// NewProgress is the state of a freshly created project: the idea exists.
func NewProgress() Progress {
	return Progress{}.With(MilestoneIdea, true)
}
