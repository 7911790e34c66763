// Package quickadd is the conversational "describe your idea" flow that collects an idea,
// a content type and a platform, then hands a generation request to the AI client.
package quickadd

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
)

type State int

const (
	CollectingIdea State = iota
	CollectingType
	CollectingPlatform
	Generating
	Done
)

func (s State) String() string {
	switch s {
	case CollectingIdea:
		return "collecting-idea"
	case CollectingType:
		return "collecting-type"
	case CollectingPlatform:
		return "collecting-platform"
	case Generating:
		return "generating"
	case Done:
		return "done"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const titleRunes = 50

const (
	MsgGreeting        = "Hello! Just give me your video idea, and I'll handle the rest."
	MsgAskType         = "Great idea! What type of content is this? (e.g., vlog, tutorial, short)"
	MsgTypeUnknown     = "Sorry, I didn't catch that. Please choose from: vlog, tutorial, short, or cinematic."
	MsgPlatformUnknown = "Sorry, I didn't recognize that platform. Try YouTube, TikTok, etc."
	MsgDone            = "All done! Your project has been created."
	MsgFailed          = "I'm sorry, there was an error generating the plan. Please try again later."
)

var (
	// ErrBusy is returned by Submit while a generation is in flight or after completion.
	ErrBusy = errors.New("quick add is busy")
	// ErrNotGenerating is returned by Complete/Fail outside the generating state.
	ErrNotGenerating = errors.New("quick add has no generation in flight")
)

type Message struct {
	Text     string `json:"text"`
	FromUser bool   `json:"fromUser,omitempty"`
}

// Request is what the caller sends to StrategyClient.GenerateStrategy.
type Request struct {
	Title       string
	Idea        string
	ContentType model.ContentType
	Platform    model.Platform
}

type Session struct {
	state       State
	idea        string
	contentType model.ContentType
	platform    model.Platform
	messages    []Message
}

func New() *Session {
	return &Session{messages: []Message{{Text: MsgGreeting}}}
}

func (s *Session) State() State { return s.state }

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	return append([]Message(nil), s.messages...)
}

// Accepting reports whether the input box should be enabled.
func (s *Session) Accepting() bool {
	return s.state != Generating && s.state != Done
}

// Submit feeds one line of user input. It returns a non-nil Request exactly when the
// platform was recognized and generation should start.
func (s *Session) Submit(text string) (*Request, error) {
	if !s.Accepting() {
		return nil, ErrBusy
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	switch s.state {
	case CollectingIdea:
		s.idea = text
		s.say(text, true)
		s.say(MsgAskType, false)
		s.state = CollectingType
		return nil, nil

	case CollectingType:
		ct, ok := MatchContentType(text)
		if !ok {
			s.say(MsgTypeUnknown, false)
			return nil, nil
		}
		s.contentType = ct
		s.say(text, true)
		s.say(fmt.Sprintf("Got it, a %s. Which platform is this for? (e.g., YouTube, TikTok)", ct), false)
		s.state = CollectingPlatform
		return nil, nil

	case CollectingPlatform:
		pl, ok := MatchPlatform(text)
		if !ok {
			s.say(MsgPlatformUnknown, false)
			return nil, nil
		}
		s.platform = pl
		s.say(text, true)
		s.say(fmt.Sprintf("Perfect. Generating a full project plan for a %s on %s. One moment...", s.contentType, pl), false)
		s.state = Generating
		return &Request{
			Title:       Title(s.idea),
			Idea:        s.idea,
			ContentType: s.contentType,
			Platform:    s.platform,
		}, nil
	}
	return nil, ErrBusy
}

// Complete turns a successful generation into a new project and finishes the session.
func (s *Session) Complete(strategy model.Strategy, id string, at time.Time) (model.Project, error) {
	if s.state != Generating {
		return model.Project{}, ErrNotGenerating
	}
	in := mutate.ProjectInput{
		Title:       Title(s.idea),
		Idea:        s.idea,
		ContentType: s.contentType,
		Platform:    s.platform,
	}
	p := mutate.BuildProject(id, in, strategy, at)
	s.say(MsgDone, false)
	s.state = Done
	return p, nil
}

// Fail records a generation error and lets the user resubmit the platform.
func (s *Session) Fail(err error) error {
	if s.state != Generating {
		return ErrNotGenerating
	}
	logger.Get("quickadd").WithError(err).Warn("quick add generation failed")
	s.say(MsgFailed, false)
	s.state = CollectingPlatform
	return nil
}

func (s *Session) say(text string, user bool) {
	s.messages = append(s.messages, Message{Text: text, FromUser: user})
}

// Title is the first 50 runes of the idea.
func Title(idea string) string {
	r := []rune(strings.TrimSpace(idea))
	if len(r) > titleRunes {
		r = r[:titleRunes]
	}
	return strings.TrimSpace(string(r))
}

var platformAliases = map[string]model.Platform{
	"twitter": model.PlatformX,
	"yt":      model.PlatformYouTube,
	"ig":      model.PlatformInstagram,
	"insta":   model.PlatformInstagram,
	"reels":   model.PlatformInstagram,
	"fb":      model.PlatformFacebook,
}

var contentAliases = map[string]model.ContentType{
	"shorts":    model.ContentShort,
	"vlogs":     model.ContentVlog,
	"tutorials": model.ContentTutorial,
	"howto":     model.ContentTutorial,
}

// MatchContentType finds the first word of text that names a content type.
func MatchContentType(text string) (model.ContentType, bool) {
	for _, w := range words(text) {
		if ct := model.ContentType(w); ct.Valid() {
			return ct, true
		}
		if ct, ok := contentAliases[w]; ok {
			return ct, true
		}
	}
	return "", false
}

// MatchPlatform finds the first word of text that names a platform. Matching is per word,
// so "next" does not select x.
func MatchPlatform(text string) (model.Platform, bool) {
	for _, w := range words(text) {
		if pl := model.Platform(w); pl.Valid() {
			return pl, true
		}
		if pl, ok := platformAliases[w]; ok {
			return pl, true
		}
	}
	return "", false
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
