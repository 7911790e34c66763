package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type toolKind int

const (
	toolTitles toolKind = iota
	toolHashtags
	toolIdeas
	toolAspect
	toolCount
)

func (k toolKind) label() string {
	switch k {
	case toolTitles:
		return "Title generator"
	case toolHashtags:
		return "Hashtags"
	case toolIdeas:
		return "Prompt ideas"
	case toolAspect:
		return "Aspect ratio"
	}
	return ""
}

func (k toolKind) placeholder() string {
	switch k {
	case toolTitles:
		return "Video topic, e.g. budget travel in Japan"
	case toolHashtags:
		return "Video topic or description"
	case toolIdeas:
		return "A niche or theme, e.g. home coffee"
	}
	return "Width (1920) or height (x1080)"
}

type aspectRatio struct {
	name string
	w, h int
}

var aspectRatios = []aspectRatio{
	{"16:9", 16, 9},
	{"9:16", 9, 16},
	{"1:1", 1, 1},
	{"4:5", 4, 5},
	{"4:3", 4, 3},
	{"21:9", 21, 9},
}

// aspectSize fills in the missing side for ratio r. Exactly one of width and height should be set.
func aspectSize(r aspectRatio, width, height int) (int, int) {
	switch {
	case width > 0:
		return width, int(math.Round(float64(width) * float64(r.h) / float64(r.w)))
	case height > 0:
		return int(math.Round(float64(height) * float64(r.w) / float64(r.h))), height
	}
	return 0, 0
}

// parseAspectInput reads "1920" as a width and "x1080" as a height.
func parseAspectInput(s string) (width, height int, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	isHeight := strings.HasPrefix(s, "x")
	n, err := strconv.Atoi(strings.TrimPrefix(s, "x"))
	if err != nil || n <= 0 {
		return 0, 0, fmt.Errorf("enter a positive width like 1920 or a height like x1080")
	}
	if isHeight {
		return 0, n, nil
	}
	return n, 0, nil
}

type toolsState struct {
	kind    toolKind
	topic   textinput.Model
	results list.Model
	pending bool
	err     string

	ratio  int
	aspect string
}

func newToolsState() toolsState {
	in := textinput.New()
	in.Prompt = "Topic: "
	in.CharLimit = 300
	in.Placeholder = toolTitles.placeholder()
	return toolsState{topic: in, results: newList(nil, newCompactItemDelegate())}
}

func (m *appModel) switchTool(k toolKind) {
	m.tools.kind = k
	m.tools.err = ""
	m.tools.aspect = ""
	m.tools.pending = false
	m.tools.results.SetItems(nil)
	m.tools.topic.SetValue("")
	m.tools.topic.Placeholder = k.placeholder()
	if k == toolAspect {
		m.tools.topic.Prompt = "Size: "
	} else {
		m.tools.topic.Prompt = "Topic: "
	}
	// Results of the previous tool are no longer wanted.
	m.seq++
}

func (m appModel) updateTools(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, m.navigate(navEvent{kind: navBack})
	case "tab":
		m.switchTool((m.tools.kind + 1) % toolCount)
		return m, nil
	case "shift+tab":
		m.switchTool((m.tools.kind + toolCount - 1) % toolCount)
		return m, nil
	case "up", "down", "pgup", "pgdown":
		if m.tools.kind == toolAspect {
			delta := 1
			if msg.String() == "up" || msg.String() == "pgup" {
				delta = -1
			}
			m.tools.ratio = (m.tools.ratio + delta + len(aspectRatios)) % len(aspectRatios)
			m.tools.aspect = ""
			return m.computeAspect()
		}
		var cmd tea.Cmd
		m.tools.results, cmd = m.tools.results.Update(msg)
		return m, cmd
	case "enter":
		if m.tools.kind == toolAspect {
			return m.computeAspect()
		}
		if m.tools.pending {
			return m, nil
		}
		topic := strings.TrimSpace(m.tools.topic.Value())
		if topic == "" {
			m.tools.err = "Enter a topic first."
			return m, nil
		}
		if m.ai == nil {
			m.tools.err = errNoAI
			return m, nil
		}
		m.tools.err = ""
		m.tools.pending = true
		return m, tea.Batch(m.spinner.Tick, toolCmd(m.ai, m.seq, m.tools.kind, topic))
	}
	var cmd tea.Cmd
	m.tools.topic, cmd = m.tools.topic.Update(msg)
	return m, cmd
}

func (m appModel) computeAspect() (tea.Model, tea.Cmd) {
	if strings.TrimSpace(m.tools.topic.Value()) == "" {
		return m, nil
	}
	w, h, err := parseAspectInput(m.tools.topic.Value())
	if err != nil {
		m.tools.err = err.Error()
		m.tools.aspect = ""
		return m, nil
	}
	w, h = aspectSize(aspectRatios[m.tools.ratio], w, h)
	m.tools.err = ""
	m.tools.aspect = fmt.Sprintf("%d x %d", w, h)
	return m, nil
}

func (m appModel) handleToolResultMsg(msg toolResultMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.seq || m.nav.view != viewTools || msg.kind != m.tools.kind {
		return m, nil
	}
	m.tools.pending = false
	if msg.err != nil {
		m.tools.err = aiErrorText(msg.err)
		return m, nil
	}
	items := make([]list.Item, 0, len(msg.items))
	for _, s := range msg.items {
		if s = strings.TrimSpace(s); s != "" {
			items = append(items, textItem(s))
		}
	}
	m.tools.results.SetItems(items)
	m.tools.results.Select(0)
	return m, nil
}

func (m appModel) toolsHelp() string {
	if m.tools.kind == toolAspect {
		return "tab: next tool  ↑/↓: ratio  enter: calculate  esc: back"
	}
	return "tab: next tool  enter: generate  ↑/↓: browse results  esc: back"
}

func (m appModel) viewTools() string {
	labels := make([]string, 0, toolCount)
	for k := toolKind(0); k < toolCount; k++ {
		labels = append(labels, k.label())
	}
	var b strings.Builder
	b.WriteString(renderTabs(labels, int(m.tools.kind)))
	b.WriteString("\n\n")

	if m.tools.kind == toolAspect {
		names := make([]string, 0, len(aspectRatios))
		for _, r := range aspectRatios {
			names = append(names, r.name)
		}
		b.WriteString(renderChoices(names, m.tools.ratio, true))
		b.WriteString("\n\n")
	}
	b.WriteString(m.tools.topic.View())
	b.WriteString("\n\n")

	switch {
	case m.tools.err != "":
		b.WriteString(styleError().Render(m.tools.err))
	case m.tools.pending:
		b.WriteString(m.spinner.View() + " Generating...")
	case m.tools.kind == toolAspect:
		if m.tools.aspect != "" {
			b.WriteString(styleAccent().Render(aspectRatios[m.tools.ratio].name + "  " + glyphArrow() + "  " + m.tools.aspect))
		}
	case len(m.tools.results.Items()) > 0:
		b.WriteString(m.tools.results.View())
	default:
		b.WriteString(styleMuted().Render("Results appear here."))
	}
	return b.String()
}
