package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render box and block glyphs badly, so every affordance has an
// ASCII fallback. The set comes from config.json (tui.glyphs) or FRAMEFLOW_TUI_GLYPHS.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

func parseGlyphSet(v string) (glyphSet, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "unicode", "utf8":
		return glyphSetUnicode, true
	case "ascii":
		return glyphSetASCII, true
	}
	return glyphSetUnicode, false
}

// applyGlyphPreference applies the configured value, then the env override. Unknown values are ignored.
func applyGlyphPreference(configured string) {
	if gs, ok := parseGlyphSet(configured); ok {
		setGlyphs(gs)
	}
	if v, set := os.LookupEnv("FRAMEFLOW_TUI_GLYPHS"); set && strings.TrimSpace(v) != "" {
		if gs, ok := parseGlyphSet(v); ok {
			setGlyphs(gs)
		}
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphsName(gs glyphSet) string {
	if gs == glyphSetASCII {
		return "ascii"
	}
	return "unicode"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return "->"
	}
	return "→"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

func glyphCheck(done bool) string {
	if glyphs() == glyphSetASCII {
		if done {
			return "[x]"
		}
		return "[ ]"
	}
	if done {
		return "☑"
	}
	return "☐"
}

// glyphBar returns the filled and empty cells of a progress bar.
func glyphBar() (string, string) {
	if glyphs() == glyphSetASCII {
		return "#", "."
	}
	return "█", "░"
}

func glyphCursor() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "▸"
}
