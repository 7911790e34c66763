package format

import (
	"bytes"
	"strings"
	"testing"
)

type sample struct {
	ProjectID string   `json:"projectId"`
	Percent   int      `json:"percent"`
	Tags      []string `json:"tags"`
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]any{"data": sample{ProjectID: "proj-1", Percent: 40, Tags: []string{}}}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != `{"data":{"projectId":"proj-1","percent":40,"tags":[]}}` {
		t.Fatalf("unexpected json: %s", got)
	}
}

func TestWrite_YAMLUsesJSONFieldNames(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, sample{ProjectID: "proj-1", Percent: 40, Tags: []string{"a"}}, YAML, false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"projectId: proj-1", "percent: 40", "- a"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in yaml output:\n%s", want, out)
		}
	}
}

func TestWrite_UnknownFormat(t *testing.T) {
	if err := Write(&bytes.Buffer{}, 1, "edn", false); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}
