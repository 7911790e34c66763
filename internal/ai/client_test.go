package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frameflow-cli/internal/model"
)

// fakeGemini answers every generateContent call with text as the first candidate.
func fakeGemini(t *testing.T, text string, calls *int32, seen *GeminiRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/test-model:generateContent", r.URL.Path)
		assert.Equal(t, "k-123", r.Header.Get("x-goog-api-key"))
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(b, seen)
		}
		resp := GeminiResponse{Candidates: []GeminiCandidate{{
			Content: GeminiContent{Role: "model", Parts: []GeminiPart{{Text: text}}},
		}}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(srv *httptest.Server, key string) *Client {
	return New(Options{APIKey: key, Model: "test-model", BaseURL: srv.URL, HTTPClient: srv.Client()})
}

func TestGenerateStrategy_DecodesAndAssignsIDs(t *testing.T) {
	body := `{"script":"HOOK: hi","shots":[
		{"scene":"Intro","angle":"Wide","location":"Desk","gear":["phone"],"notes":""},
		{"scene":"Close","angle":"Close-up","location":"Desk","gear":[],"notes":"smile"}],
		"editingPlan":[{"step":"Cut","tools":["CapCut"],"notes":""}]}`
	var seen GeminiRequest
	srv := fakeGemini(t, body, nil, &seen)
	defer srv.Close()

	s, err := newTestClient(srv, "k-123").GenerateStrategy(context.Background(), "Title", "Idea", model.ContentVlog, model.PlatformYouTube)
	require.NoError(t, err)
	assert.Equal(t, "HOOK: hi", s.Script)
	require.Len(t, s.Shots, 2)
	require.Len(t, s.EditingPlan, 1)
	assert.NotEmpty(t, s.Shots[0].ID)
	assert.NotEqual(t, s.Shots[0].ID, s.Shots[1].ID)
	assert.True(t, strings.HasPrefix(s.Shots[0].ID, "shot-"))
	assert.True(t, strings.HasPrefix(s.EditingPlan[0].ID, "edit-"))

	require.NotNil(t, seen.GenerationConfig)
	assert.Equal(t, "application/json", seen.GenerationConfig.ResponseMimeType)
	require.NotNil(t, seen.SystemInstruction)
	require.Len(t, seen.Contents, 1)
	assert.Contains(t, seen.Contents[0].Parts[0].Text, "Title: Title")
}

func TestGenerateStrategy_IDsDifferAcrossCalls(t *testing.T) {
	body := `{"script":"","shots":[{"scene":"a","angle":"b","location":"c","gear":[],"notes":""}],"editingPlan":[]}`
	srv := fakeGemini(t, body, nil, nil)
	defer srv.Close()
	c := newTestClient(srv, "k-123")

	a, err := c.GenerateStrategy(context.Background(), "t", "i", model.ContentVlog, model.PlatformYouTube)
	require.NoError(t, err)
	b, err := c.GenerateStrategy(context.Background(), "t", "i", model.ContentVlog, model.PlatformYouTube)
	require.NoError(t, err)
	assert.NotEqual(t, a.Shots[0].ID, b.Shots[0].ID)
	assert.NotNil(t, a.EditingPlan)
}

func TestMissingKey_NoNetworkCall(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, `[]`, &calls, nil)
	defer srv.Close()
	c := newTestClient(srv, "")

	_, err := c.GenerateTitles(context.Background(), "coffee")
	require.Error(t, err)
	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, OpGenerateTitles, ge.Op)
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
	assert.Contains(t, ge.UserMessage(), "GEMINI_API_KEY")
}

func TestSchemaMismatch_IsGenerationError(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"missing field", `{"script":"x","shots":[]}`},
		{"unknown field", `{"script":"x","shots":[],"editingPlan":[],"extra":1}`},
		{"wrong type", `{"script":5,"shots":[],"editingPlan":[]}`},
		{"not json", `sorry, I can't help`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := fakeGemini(t, tc.body, nil, nil)
			defer srv.Close()
			_, err := newTestClient(srv, "k-123").GenerateStrategy(context.Background(), "t", "i", model.ContentVlog, model.PlatformYouTube)
			var ge *GenerationError
			require.True(t, errors.As(err, &ge), "got %v", err)
			assert.Equal(t, OpGenerateStrategy, ge.Op)
			assert.Equal(t, "Failed to generate AI strategy. Please check your API key and try again.", ge.UserMessage())
		})
	}
}

func TestHTTPError_IsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "k-123").GenerateHashtags(context.Background(), "coffee")
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "API key not valid", se.Message)
}

func TestEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	_, err := newTestClient(srv, "k-123").GeneratePromptIdeas(context.Background(), "coffee")
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestRefineScript(t *testing.T) {
	var seen GeminiRequest
	srv := fakeGemini(t, "  HOOK: better\n", nil, &seen)
	defer srv.Close()
	c := newTestClient(srv, "k-123")

	out, err := c.RefineScript(context.Background(), "HOOK: hi", "make it punchier", FormLong)
	require.NoError(t, err)
	assert.Equal(t, "HOOK: better", out)
	assert.Nil(t, seen.GenerationConfig)
	assert.Contains(t, seen.Contents[0].Parts[0].Text, `"long"`)
}

func TestRefineScript_RejectsUnknownFormWithoutCalling(t *testing.T) {
	var calls int32
	srv := fakeGemini(t, "x", &calls, nil)
	defer srv.Close()

	_, err := newTestClient(srv, "k-123").RefineScript(context.Background(), "s", "do it", ScriptForm("medium"))
	var ge *GenerationError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "Failed to refine script.", ge.UserMessage())
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestAnalyzeScriptForShots(t *testing.T) {
	srv := fakeGemini(t, "```json\n[{\"scene\":\"A\",\"angle\":\"B\",\"location\":\"C\",\"gear\":[\"tripod\"],\"notes\":\"\"}]\n```", nil, nil)
	defer srv.Close()

	shots, err := newTestClient(srv, "k-123").AnalyzeScriptForShots(context.Background(), "HOOK: x")
	require.NoError(t, err)
	require.Len(t, shots, 1)
	assert.Equal(t, "A", shots[0].Scene)
	assert.Equal(t, []string{"tripod"}, shots[0].Gear)
	assert.NotEmpty(t, shots[0].ID)
}

func TestGenerateHashtags_AddsHashPrefix(t *testing.T) {
	srv := fakeGemini(t, `["#coffee","latteart"," "]`, nil, nil)
	defer srv.Close()

	tags, err := newTestClient(srv, "k-123").GenerateHashtags(context.Background(), "coffee")
	require.NoError(t, err)
	assert.Equal(t, []string{"#coffee", "#latteart"}, tags)
}

func TestParseScriptForm(t *testing.T) {
	f, err := ParseScriptForm(" LONG ")
	require.NoError(t, err)
	assert.Equal(t, FormLong, f)
	_, err = ParseScriptForm("epic")
	assert.Error(t, err)
}
