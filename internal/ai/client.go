// Package ai talks to the hosted language model that drafts production strategies,
// refines scripts and brainstorms titles, hashtags and ideas.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"frameflow-cli/internal/config"
	"frameflow-cli/internal/logger"
	"frameflow-cli/internal/model"
)

const (
	OpGenerateStrategy    = "generate strategy"
	OpRefineScript        = "refine script"
	OpAnalyzeScript       = "analyze script for shots"
	OpGenerateTitles      = "generate titles"
	OpGenerateHashtags    = "generate hashtags"
	OpGeneratePromptIdeas = "generate prompt ideas"
)

type ScriptForm string

const (
	FormShort ScriptForm = "short"
	FormLong  ScriptForm = "long"
)

func ParseScriptForm(s string) (ScriptForm, error) {
	switch ScriptForm(strings.ToLower(strings.TrimSpace(s))) {
	case FormShort:
		return FormShort, nil
	case FormLong:
		return FormLong, nil
	}
	return "", fmt.Errorf("unknown script form: %q (expected short|long)", s)
}

// StrategyClient is what the UI layers depend on. Every failure is a *GenerationError.
type StrategyClient interface {
	GenerateStrategy(ctx context.Context, title, idea string, ct model.ContentType, pl model.Platform) (model.Strategy, error)
	RefineScript(ctx context.Context, script, instruction string, form ScriptForm) (string, error)
	AnalyzeScriptForShots(ctx context.Context, script string) ([]model.Shot, error)
	GenerateTitles(ctx context.Context, topic string) ([]string, error)
	GenerateHashtags(ctx context.Context, topic string) ([]string, error)
	GeneratePromptIdeas(ctx context.Context, topic string) ([]string, error)
}

type Options struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a Gemini REST client. It runs at most one request at a time.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client

	mu sync.Mutex
}

var _ StrategyClient = (*Client)(nil)

func New(opts Options) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   strings.TrimSpace(opts.Model),
		baseURL: strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		http:    opts.HTTPClient,
	}
	if c.model == "" {
		c.model = "gemini-2.5-flash"
	}
	if c.baseURL == "" {
		c.baseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if c.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 120 * time.Second
		}
		c.http = &http.Client{Timeout: timeout}
	}
	return c
}

func NewFromConfig(cfg *config.Configuration) *Client {
	if cfg == nil {
		return New(Options{})
	}
	return New(Options{
		APIKey:  cfg.APIKey(),
		Model:   cfg.AIModel,
		BaseURL: cfg.AIBaseURL,
		Timeout: cfg.AITimeout,
	})
}

func (c *Client) Configured() bool { return c != nil && c.apiKey != "" }

func (c *Client) GenerateStrategy(ctx context.Context, title, idea string, ct model.ContentType, pl model.Platform) (model.Strategy, error) {
	var out struct {
		Script      string              `json:"script"`
		Shots       []model.Shot        `json:"shots"`
		EditingPlan []model.EditingStep `json:"editingPlan"`
	}
	err := c.generateJSON(ctx, OpGenerateStrategy, strategistInstruction, strategyPrompt(title, idea, ct, pl), strategySchema, &out)
	if err != nil {
		return model.Strategy{}, err
	}
	batch := newBatchID()
	for i := range out.Shots {
		out.Shots[i].ID = fmt.Sprintf("shot-%s-%d", batch, i)
	}
	for i := range out.EditingPlan {
		out.EditingPlan[i].ID = fmt.Sprintf("edit-%s-%d", batch, i)
	}
	s := model.Strategy{Script: out.Script, Shots: out.Shots, EditingPlan: out.EditingPlan}
	if s.Shots == nil {
		s.Shots = []model.Shot{}
	}
	if s.EditingPlan == nil {
		s.EditingPlan = []model.EditingStep{}
	}
	return s, nil
}

func (c *Client) RefineScript(ctx context.Context, script, instruction string, form ScriptForm) (string, error) {
	if form != FormShort && form != FormLong {
		return "", &GenerationError{Op: OpRefineScript, Err: fmt.Errorf("unknown script form %q", form)}
	}
	if strings.TrimSpace(instruction) == "" {
		return "", &GenerationError{Op: OpRefineScript, Err: errors.New("refinement instruction is empty")}
	}
	text, err := c.generate(ctx, OpRefineScript, strategistInstruction, refinePrompt(script, instruction, form), nil)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", c.fail(OpRefineScript, ErrEmptyResponse)
	}
	return text, nil
}

func (c *Client) AnalyzeScriptForShots(ctx context.Context, script string) ([]model.Shot, error) {
	var shots []model.Shot
	if err := c.generateJSON(ctx, OpAnalyzeScript, strategistInstruction, shotsPrompt(script), shotListSchema, &shots); err != nil {
		return nil, err
	}
	batch := newBatchID()
	for i := range shots {
		shots[i].ID = fmt.Sprintf("shot-%s-%d", batch, i)
	}
	if shots == nil {
		shots = []model.Shot{}
	}
	return shots, nil
}

func (c *Client) GenerateTitles(ctx context.Context, topic string) ([]string, error) {
	return c.generateStrings(ctx, OpGenerateTitles, titlesInstruction, titlesPrompt(topic))
}

func (c *Client) GenerateHashtags(ctx context.Context, topic string) ([]string, error) {
	tags, err := c.generateStrings(ctx, OpGenerateHashtags, hashtagsInstruction, hashtagsPrompt(topic))
	if err != nil {
		return nil, err
	}
	for i, t := range tags {
		if !strings.HasPrefix(t, "#") {
			tags[i] = "#" + t
		}
	}
	return tags, nil
}

func (c *Client) GeneratePromptIdeas(ctx context.Context, topic string) ([]string, error) {
	return c.generateStrings(ctx, OpGeneratePromptIdeas, ideasInstruction, ideasPrompt(topic))
}

func (c *Client) generateStrings(ctx context.Context, op, instruction, prompt string) ([]string, error) {
	var out []string
	if err := c.generateJSON(ctx, op, instruction, prompt, stringArraySchema, &out); err != nil {
		return nil, err
	}
	clean := make([]string, 0, len(out))
	for _, s := range out {
		if s = strings.TrimSpace(s); s != "" {
			clean = append(clean, s)
		}
	}
	return clean, nil
}

func (c *Client) generateJSON(ctx context.Context, op, instruction, prompt string, schema *Schema, out any) error {
	text, err := c.generate(ctx, op, instruction, prompt, schema)
	if err != nil {
		return err
	}
	if err := decodeStructured(text, schema, out); err != nil {
		return c.fail(op, err)
	}
	return nil
}

// generate performs one generateContent call and returns the first candidate's text.
func (c *Client) generate(ctx context.Context, op, instruction, prompt string, schema *Schema) (string, error) {
	if !c.Configured() {
		return "", &GenerationError{Op: op, Err: ErrNotConfigured}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	req := GeminiRequest{
		Contents: []GeminiContent{{Role: "user", Parts: []GeminiPart{{Text: prompt}}}},
	}
	if instruction != "" {
		req.SystemInstruction = &GeminiContent{Parts: []GeminiPart{{Text: instruction}}}
	}
	if schema != nil {
		req.GenerationConfig = &GenerationConfig{ResponseMimeType: "application/json", ResponseSchema: schema}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", c.fail(op, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", c.fail(op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", c.apiKey)

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", c.fail(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.fail(op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		var eb geminiErrorBody
		if json.Unmarshal(raw, &eb) == nil {
			se.Message = eb.Error.Message
		}
		return "", c.fail(op, se)
	}

	var gr GeminiResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", c.fail(op, fmt.Errorf("decode response: %w", err))
	}
	if len(gr.Candidates) == 0 {
		if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
			return "", c.fail(op, fmt.Errorf("prompt blocked: %s", gr.PromptFeedback.BlockReason))
		}
		return "", c.fail(op, ErrEmptyResponse)
	}

	logger.Get("ai").WithFields(map[string]any{
		"op":         op,
		"model":      c.model,
		"durationMs": time.Since(started).Milliseconds(),
	}).Debug("generateContent ok")
	return gr.text(), nil
}

func (c *Client) fail(op string, err error) error {
	logger.Get("ai").WithError(err).WithField("op", op).Warn("generation failed")
	return &GenerationError{Op: op, Err: err}
}

// newBatchID namespaces the ids minted for one response.
func newBatchID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}
