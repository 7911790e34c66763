package store

import (
	"strings"
	"testing"

	"frameflow-cli/internal/model"
)

func TestNewRandomID_ProjectIDsStayStableLength(t *testing.T) {
	id, err := newRandomID("proj")
	if err != nil {
		t.Fatalf("newRandomID: %v", err)
	}
	if !strings.HasPrefix(id, "proj-") {
		t.Fatalf("expected proj prefix, got %q", id)
	}
	suffix := strings.TrimPrefix(id, "proj-")
	if got, want := len(suffix), 8; got != want {
		t.Fatalf("expected proj id suffix len %d, got %d (%q)", want, got, suffix)
	}
}

func TestNewID_RerollsOnCollision(t *testing.T) {
	calls := 0
	id := NewID("shot", func(string) bool {
		calls++
		return calls < 3
	})
	if calls != 3 {
		t.Fatalf("expected 3 taken checks, got %d", calls)
	}
	if !strings.HasPrefix(id, "shot-") {
		t.Fatalf("unexpected id %q", id)
	}
}

func TestNewID_FallsBackWhenEverythingCollides(t *testing.T) {
	id := NewID("edit", func(id string) bool {
		return len(strings.TrimPrefix(id, "edit-")) == 8
	})
	if !strings.HasPrefix(id, "edit-") || len(strings.TrimPrefix(id, "edit-")) == 8 {
		t.Fatalf("expected sequential fallback id, got %q", id)
	}
}

func TestSchedulePrefix(t *testing.T) {
	cases := map[model.Phase]string{
		model.PhaseFilming:    "film",
		model.PhaseEditing:    "cut",
		model.PhasePublishing: "pub",
	}
	for ph, want := range cases {
		if got := SchedulePrefix(ph); got != want {
			t.Fatalf("SchedulePrefix(%s) = %q, want %q", ph, got, want)
		}
	}
}
