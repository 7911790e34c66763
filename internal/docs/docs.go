package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed content/*.md
var contentFS embed.FS

func Topics() []string {
	entries, err := fs.Glob(contentFS, "content/*.md")
	if err != nil {
		return []string{}
	}
	var topics []string
	for _, p := range entries {
		base := path.Base(p)
		topic := strings.TrimSuffix(base, path.Ext(base))
		if topic != "" {
			topics = append(topics, topic)
		}
	}
	sort.Strings(topics)
	return topics
}

func Get(topic string) (string, bool) {
	topic = strings.ToLower(strings.TrimSpace(topic))
	if topic == "" {
		return "", false
	}
	b, err := contentFS.ReadFile(path.Join("content", topic+".md"))
	if err != nil {
		return "", false
	}
	return string(b), true
}

// TutorialStep is one card of the first-run tour.
type TutorialStep struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var tutorialSteps = []TutorialStep{
	{
		Title:   "Welcome to FrameFlow!",
		Content: "This quick tour will guide you through the main features. Let's get you started on creating your next masterpiece.",
	},
	{
		Title:   "The Dashboard",
		Content: "This is your command center. All your active projects will appear here. You can create new projects using the keys shown in the footer.",
	},
	{
		Title:   "Project Details",
		Content: "Opening a project brings you here. You can manage your script, shot list, and schedule. Press 'e' to edit the project.",
	},
	{
		Title:   "AI-Powered Tools",
		Content: "FrameFlow has a suite of powerful tools, like an AI Title Generator and a Teleprompter. Press 't' from the dashboard to open them.",
	},
	{
		Title:   "You're All Set!",
		Content: "That's it for the basics. Feel free to explore and start creating. Happy filming!",
	},
}

func TutorialSteps() []TutorialStep {
	return append([]TutorialStep(nil), tutorialSteps...)
}
