package store

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestExportImport_RoundTrip(t *testing.T) {
	db := &DB{Projects: SeedProjects(time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC))}
	b, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(b)), "[") {
		t.Fatalf("expected a bare JSON array, got %s", b[:20])
	}
	got, err := ImportJSON(b)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if !reflect.DeepEqual(got, db.Projects) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", db.Projects, got)
	}
}

func TestImportJSON_AcceptsCLIEnvelopeAndRecomputesPercent(t *testing.T) {
	in := `{"data":[{"id":"proj-a","title":"A","contentType":"short","platform":"x",
	  "progress":{"idea":true,"script":false,"filming":false,"editing":false,"publishing":false,"percent":77}}]}`
	got, err := ImportJSON([]byte(in))
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(got) != 1 || got[0].Progress.Percent != 20 {
		t.Fatalf("expected recomputed percent 20, got %+v", got)
	}
	if got[0].Strategy.Shots == nil || got[0].Badges == nil {
		t.Fatalf("expected normalized empty lists")
	}
}

func TestImportJSON_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"not json":     "{nope",
		"missing id":   `[{"title":"x"}]`,
		"duplicate id": `[{"id":"proj-a"},{"id":"proj-a"}]`,
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ImportJSON([]byte(in)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	if _, err := ImportJSON([]byte(`[]`)); err != nil {
		t.Fatalf("empty array should import: %v", err)
	}
}
