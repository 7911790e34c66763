package ai

import (
	"errors"
	"fmt"
)

// ErrNotConfigured means no API key is set; no request was made.
var ErrNotConfigured = errors.New("gemini api key is not configured (set GEMINI_API_KEY)")

var ErrEmptyResponse = errors.New("empty response from model")

// GenerationError is the single error kind the client returns for any upstream fault.
type GenerationError struct {
	Op  string
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage is the short text shown in the UI.
func (e *GenerationError) UserMessage() string {
	if errors.Is(e.Err, ErrNotConfigured) {
		return "AI is not configured. Set GEMINI_API_KEY and try again."
	}
	switch e.Op {
	case OpGenerateStrategy:
		return "Failed to generate AI strategy. Please check your API key and try again."
	case OpRefineScript:
		return "Failed to refine script."
	case OpAnalyzeScript:
		return "Failed to generate new shots from script."
	case OpGenerateTitles:
		return "Failed to generate titles."
	case OpGenerateHashtags:
		return "Failed to generate hashtags."
	case OpGeneratePromptIdeas:
		return "Failed to generate prompt ideas."
	}
	return "AI request failed."
}

// StatusError is a non-2xx reply from the API.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("gemini returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("gemini returned HTTP %d: %s", e.StatusCode, e.Message)
}

// SchemaError is a structured response that does not match the declared schema.
type SchemaError struct {
	Path string
	Msg  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("response does not match schema at %s: %s", e.Path, e.Msg)
}
