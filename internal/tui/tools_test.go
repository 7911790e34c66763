package tui

import (
	"testing"
	"time"
)

func TestAspectSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ratio         aspectRatio
		width, height int
		wantW, wantH  int
	}{
		{aspectRatios[0], 1920, 0, 1920, 1080},
		{aspectRatios[0], 0, 720, 1280, 720},
		{aspectRatios[1], 1080, 0, 1080, 1920},
		{aspectRatios[2], 0, 500, 500, 500},
		{aspectRatios[3], 1080, 0, 1080, 1350},
		{aspectRatios[5], 0, 1080, 2520, 1080},
		{aspectRatios[4], 0, 0, 0, 0},
	}
	for _, tt := range tests {
		w, h := aspectSize(tt.ratio, tt.width, tt.height)
		if w != tt.wantW || h != tt.wantH {
			t.Fatalf("aspectSize(%s, %d, %d) = %dx%d; want %dx%d", tt.ratio.name, tt.width, tt.height, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestParseAspectInput(t *testing.T) {
	t.Parallel()

	if w, h, err := parseAspectInput(" 1920 "); err != nil || w != 1920 || h != 0 {
		t.Fatalf("width input: got %d, %d, %v", w, h, err)
	}
	if w, h, err := parseAspectInput("X1080"); err != nil || w != 0 || h != 1080 {
		t.Fatalf("height input: got %d, %d, %v", w, h, err)
	}
	for _, bad := range []string{"", "abc", "-5", "0", "x"} {
		if _, _, err := parseAspectInput(bad); err == nil {
			t.Fatalf("parseAspectInput(%q): expected error", bad)
		}
	}
}

func TestCalendarState_Moves(t *testing.T) {
	t.Parallel()

	c := newCalendarState(time.Date(2026, time.January, 31, 12, 0, 0, 0, time.Local))
	c.moveMonths(1)
	if c.year != 2026 || c.month != time.February || c.day != 28 {
		t.Fatalf("Jan 31 + 1 month = %d-%02d-%02d; want 2026-02-28", c.year, c.month, c.day)
	}
	c.moveDays(1)
	if c.month != time.March || c.day != 1 {
		t.Fatalf("Feb 28 + 1 day = %v %d; want March 1", c.month, c.day)
	}
	c.moveDays(-7)
	if c.month != time.February || c.day != 22 {
		t.Fatalf("March 1 - 7 days = %v %d; want February 22", c.month, c.day)
	}
	c.moveMonths(-2)
	if c.year != 2025 || c.month != time.December || c.day != 22 {
		t.Fatalf("Feb 22 - 2 months = %d-%v-%d; want 2025-December-22", c.year, c.month, c.day)
	}
}

func TestParseDetailsTab(t *testing.T) {
	t.Parallel()

	for _, tab := range []detailsTab{tabScript, tabShots, tabEditing, tabSchedule} {
		if got := parseDetailsTab(tab.String()); got != tab {
			t.Fatalf("parseDetailsTab(%q) = %v", tab.String(), got)
		}
	}
	if got := parseDetailsTab("overview"); got != tabScript {
		t.Fatalf("unknown tab should fall back to script, got %v", got)
	}
}
