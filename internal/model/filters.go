package model

// Views is the dashboard partition of a project list.
// A project whose percent is in 0..100 lands in exactly one of the three slices.
type Views struct {
	Active    []Project `json:"active"`
	Completed []Project `json:"completed"`
	Archived  []Project `json:"archived"`
}

func IsActive(p Project) bool    { return !p.Archived && p.Progress.Percent < 100 }
func IsCompleted(p Project) bool { return !p.Archived && p.Progress.Percent == 100 }
func IsArchived(p Project) bool  { return p.Archived }

func Active(ps []Project) []Project    { return filter(ps, IsActive) }
func Completed(ps []Project) []Project { return filter(ps, IsCompleted) }
func Archived(ps []Project) []Project  { return filter(ps, IsArchived) }

func Partition(ps []Project) Views {
	return Views{Active: Active(ps), Completed: Completed(ps), Archived: Archived(ps)}
}

func filter(ps []Project, keep func(Project) bool) []Project {
	out := []Project{}
	for _, p := range ps {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
