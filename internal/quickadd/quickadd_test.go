package quickadd

import (
	"errors"
	"strings"
	"testing"
	"time"

	"frameflow-cli/internal/model"
)

func walkToGenerating(t *testing.T, s *Session) *Request {
	t.Helper()
	for _, in := range []string{"Morning routine with my cat", "it's a vlog"} {
		if req, err := s.Submit(in); err != nil || req != nil {
			t.Fatalf("Submit(%q) = %v, %v", in, req, err)
		}
	}
	req, err := s.Submit("for YouTube please")
	if err != nil {
		t.Fatalf("Submit platform: %v", err)
	}
	if req == nil {
		t.Fatalf("expected a generation request")
	}
	return req
}

func TestSession_HappyPath(t *testing.T) {
	s := New()
	if s.State() != CollectingIdea {
		t.Fatalf("unexpected initial state %v", s.State())
	}
	req := walkToGenerating(t, s)
	if s.State() != Generating {
		t.Fatalf("expected generating, got %v", s.State())
	}
	if req.ContentType != model.ContentVlog || req.Platform != model.PlatformYouTube {
		t.Fatalf("unexpected request %+v", req)
	}
	if req.Title != "Morning routine with my cat" {
		t.Fatalf("unexpected title %q", req.Title)
	}

	at := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	strategy := model.Strategy{Script: "HOOK: meow", Shots: []model.Shot{{ID: "shot-1", Scene: "Bed"}}}
	p, err := s.Complete(strategy, "proj-quick01", at)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if s.State() != Done {
		t.Fatalf("expected done, got %v", s.State())
	}
	if p.ID != "proj-quick01" || p.Title != req.Title || p.Idea != req.Idea {
		t.Fatalf("unexpected project %+v", p)
	}
	if !p.Progress.Idea || p.Progress.Percent != 20 {
		t.Fatalf("expected idea done at 20%%, got %+v", p.Progress)
	}
	if len(p.Schedule.Filming)+len(p.Schedule.Editing)+len(p.Schedule.Publishing) != 0 {
		t.Fatalf("expected empty schedule")
	}
	if !p.CreatedAt.Equal(at) || p.Strategy.Script != "HOOK: meow" {
		t.Fatalf("unexpected project fields %+v", p)
	}
	msgs := s.Messages()
	if msgs[len(msgs)-1].Text != MsgDone {
		t.Fatalf("expected final message %q, got %q", MsgDone, msgs[len(msgs)-1].Text)
	}
}

func TestSession_EmptyInputIgnored(t *testing.T) {
	s := New()
	before := len(s.Messages())
	req, err := s.Submit("   ")
	if err != nil || req != nil {
		t.Fatalf("expected no-op, got %v %v", req, err)
	}
	if s.State() != CollectingIdea || len(s.Messages()) != before {
		t.Fatalf("empty input changed the session")
	}
}

func TestSession_UnmatchedTypeReprompts(t *testing.T) {
	s := New()
	_, _ = s.Submit("idea")
	_, _ = s.Submit("a podcast episode")
	if s.State() != CollectingType {
		t.Fatalf("expected to stay in collecting-type, got %v", s.State())
	}
	msgs := s.Messages()
	if msgs[len(msgs)-1].Text != MsgTypeUnknown {
		t.Fatalf("expected re-prompt, got %q", msgs[len(msgs)-1].Text)
	}
}

func TestSession_BusyWhileGenerating(t *testing.T) {
	s := New()
	walkToGenerating(t, s)
	if _, err := s.Submit("tiktok"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestSession_FailReturnsToPlatform(t *testing.T) {
	s := New()
	walkToGenerating(t, s)
	if err := s.Fail(errors.New("boom")); err != nil {
		t.Fatalf("Fail: %v", err)
	}
	if s.State() != CollectingPlatform {
		t.Fatalf("expected collecting-platform, got %v", s.State())
	}
	msgs := s.Messages()
	if msgs[len(msgs)-1].Text != MsgFailed {
		t.Fatalf("expected failure message, got %q", msgs[len(msgs)-1].Text)
	}
	req, err := s.Submit("tiktok")
	if err != nil || req == nil || req.Platform != model.PlatformTikTok {
		t.Fatalf("expected resubmission to succeed, got %v %v", req, err)
	}
}

func TestSession_CompleteOutsideGenerating(t *testing.T) {
	s := New()
	if _, err := s.Complete(model.Strategy{}, "proj-x", time.Now()); !errors.Is(err, ErrNotGenerating) {
		t.Fatalf("expected ErrNotGenerating, got %v", err)
	}
	if err := s.Fail(errors.New("x")); !errors.Is(err, ErrNotGenerating) {
		t.Fatalf("expected ErrNotGenerating, got %v", err)
	}
}

func TestMatchPlatform(t *testing.T) {
	cases := []struct {
		in   string
		want model.Platform
		ok   bool
	}{
		{"YouTube", model.PlatformYouTube, true},
		{"posting on twitter", model.PlatformX, true},
		{"ig reels", model.PlatformInstagram, true},
		{"yt", model.PlatformYouTube, true},
		{"FB page", model.PlatformFacebook, true},
		{"X!", model.PlatformX, true},
		{"next week", "", false},
		{"somewhere else", "", false},
	}
	for _, tc := range cases {
		got, ok := MatchPlatform(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("MatchPlatform(%q) = %q,%v want %q,%v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestMatchContentType(t *testing.T) {
	if ct, ok := MatchContentType("A cinematic short"); !ok || ct != model.ContentCinematic {
		t.Fatalf("expected first matching word to win, got %q %v", ct, ok)
	}
	if _, ok := MatchContentType("shortcut"); ok {
		t.Fatalf("substring must not match")
	}
}

func TestTitle_TruncatesRunes(t *testing.T) {
	idea := strings.Repeat("é", 60)
	if got := []rune(Title(idea)); len(got) != 50 {
		t.Fatalf("expected 50 runes, got %d", len(got))
	}
}
