package store

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWorkspaceDir_UnderConfigDir(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("FRAMEFLOW_CONFIG_DIR", cfgDir)

	dir, err := WorkspaceDir("studio")
	if err != nil {
		t.Fatalf("WorkspaceDir: %v", err)
	}
	if want := filepath.Join(cfgDir, "workspaces", "studio"); dir != want {
		t.Fatalf("expected %q, got %q", want, dir)
	}
	if _, err := WorkspaceDir("../escape"); err == nil {
		t.Fatalf("expected error for path-like workspace name")
	}
}

func TestListWorkspaces_SortedDirNames(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("FRAMEFLOW_CONFIG_DIR", cfgDir)

	ws, err := ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if len(ws) != 0 {
		t.Fatalf("expected no workspaces, got %#v", ws)
	}

	for _, name := range []string{"travel", "default"} {
		if err := os.MkdirAll(filepath.Join(cfgDir, "workspaces", name), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}
	ws, err = ListWorkspaces()
	if err != nil {
		t.Fatalf("ListWorkspaces: %v", err)
	}
	if !reflect.DeepEqual(ws, []string{"default", "travel"}) {
		t.Fatalf("unexpected workspaces: %#v", ws)
	}
}

func TestSaveConfig_KeepsBackup(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("FRAMEFLOW_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{CurrentWorkspace: "first"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	if err := SaveConfig(&GlobalConfig{CurrentWorkspace: "second", TUI: &TUIConfig{Glyphs: "ascii"}}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.CurrentWorkspace != "second" || cfg.TUI == nil || cfg.TUI.Glyphs != "ascii" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	b, err := os.ReadFile(filepath.Join(cfgDir, "config.json.bak"))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(b) == 0 {
		t.Fatalf("expected non-empty backup")
	}
}
