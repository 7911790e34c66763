package mutate

import (
	"time"

	"frameflow-cli/internal/model"
)

var now = func() time.Time { return time.Now().UTC() }

// touch refreshes UpdatedAt, never moving it backwards or leaving it unchanged.
func touch(p *model.Project) {
	t := now()
	if !t.After(p.UpdatedAt) {
		t = p.UpdatedAt.Add(time.Millisecond)
	}
	p.UpdatedAt = t
}
