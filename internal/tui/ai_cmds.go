package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"frameflow-cli/internal/ai"
	"frameflow-cli/internal/model"
	"frameflow-cli/internal/mutate"
	"frameflow-cli/internal/quickadd"
)

// Every AI call runs as a tea.Cmd and reports back with the nav seq it was issued under.
// Results whose seq no longer matches the model's are dropped: the user has left that view.

type strategyMsg struct {
	seq      int
	input    mutate.ProjectInput
	strategy model.Strategy
	err      error
}

type regenerateMsg struct {
	seq       int
	projectID string
	strategy  model.Strategy
	err       error
}

type refineMsg struct {
	seq       int
	projectID string
	script    string
	err       error
}

type shotsMsg struct {
	seq       int
	projectID string
	shots     []model.Shot
	err       error
}

type quickAddMsg struct {
	seq      int
	req      quickadd.Request
	strategy model.Strategy
	err      error
}

type toolResultMsg struct {
	seq   int
	kind  toolKind
	items []string
	err   error
}

func generateStrategyCmd(client ai.StrategyClient, seq int, in mutate.ProjectInput) tea.Cmd {
	return func() tea.Msg {
		s, err := client.GenerateStrategy(context.Background(), in.Title, in.Idea, in.ContentType, in.Platform)
		return strategyMsg{seq: seq, input: in, strategy: s, err: err}
	}
}

func regenerateCmd(client ai.StrategyClient, seq int, p model.Project) tea.Cmd {
	return func() tea.Msg {
		s, err := client.GenerateStrategy(context.Background(), p.Title, p.Idea, p.ContentType, p.Platform)
		return regenerateMsg{seq: seq, projectID: p.ID, strategy: s, err: err}
	}
}

func refineCmd(client ai.StrategyClient, seq int, projectID, script, instruction string, form ai.ScriptForm) tea.Cmd {
	return func() tea.Msg {
		out, err := client.RefineScript(context.Background(), script, instruction, form)
		return refineMsg{seq: seq, projectID: projectID, script: out, err: err}
	}
}

func analyzeShotsCmd(client ai.StrategyClient, seq int, projectID, script string) tea.Cmd {
	return func() tea.Msg {
		shots, err := client.AnalyzeScriptForShots(context.Background(), script)
		return shotsMsg{seq: seq, projectID: projectID, shots: shots, err: err}
	}
}

func quickAddCmd(client ai.StrategyClient, seq int, req quickadd.Request) tea.Cmd {
	return func() tea.Msg {
		s, err := client.GenerateStrategy(context.Background(), req.Title, req.Idea, req.ContentType, req.Platform)
		return quickAddMsg{seq: seq, req: req, strategy: s, err: err}
	}
}

func toolCmd(client ai.StrategyClient, seq int, kind toolKind, topic string) tea.Cmd {
	return func() tea.Msg {
		var (
			items []string
			err   error
		)
		ctx := context.Background()
		switch kind {
		case toolTitles:
			items, err = client.GenerateTitles(ctx, topic)
		case toolHashtags:
			items, err = client.GenerateHashtags(ctx, topic)
		case toolIdeas:
			items, err = client.GeneratePromptIdeas(ctx, topic)
		default:
			err = errors.New("not an ai tool")
		}
		return toolResultMsg{seq: seq, kind: kind, items: items, err: err}
	}
}

const errNoAI = "AI is not available. Set GEMINI_API_KEY to enable it."

// aiErrorText is the message shown for a failed AI call.
func aiErrorText(err error) string {
	var ge *ai.GenerationError
	if errors.As(err, &ge) {
		return ge.UserMessage()
	}
	return err.Error()
}
