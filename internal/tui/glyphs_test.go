package tui

import "testing"

func TestGlyphs_ConfigThenEnv(t *testing.T) {
	t.Setenv("FRAMEFLOW_TUI_GLYPHS", "")
	setGlyphs(glyphSetUnicode)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected ascii glyphs from config; got %v", got)
	}

	t.Setenv("FRAMEFLOW_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected env to override config; got %v", got)
	}

	// Unknown values keep the current set.
	setGlyphs(glyphSetASCII)
	t.Setenv("FRAMEFLOW_TUI_GLYPHS", "bogus")
	applyGlyphPreference("wingdings")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
}

func TestGlyphCheck_ASCII(t *testing.T) {
	setGlyphs(glyphSetASCII)
	t.Cleanup(func() { setGlyphs(glyphSetUnicode) })

	if got := glyphCheck(true); got != "[x]" {
		t.Fatalf("glyphCheck(true) = %q", got)
	}
	if got := glyphCheck(false); got != "[ ]" {
		t.Fatalf("glyphCheck(false) = %q", got)
	}
	full, empty := glyphBar()
	if full != "#" || empty != "." {
		t.Fatalf("glyphBar = %q %q", full, empty)
	}
}
