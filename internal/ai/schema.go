package ai

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Schema is the OpenAPI subset Gemini accepts as responseSchema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

const (
	typeObject = "OBJECT"
	typeArray  = "ARRAY"
	typeString = "STRING"
)

var stringArraySchema = &Schema{Type: typeArray, Items: &Schema{Type: typeString}}

var shotSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"scene":    {Type: typeString},
		"angle":    {Type: typeString},
		"location": {Type: typeString},
		"gear":     stringArraySchema,
		"notes":    {Type: typeString},
	},
	Required: []string{"scene", "angle", "location", "gear", "notes"},
}

var editingStepSchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"step":  {Type: typeString},
		"tools": stringArraySchema,
		"notes": {Type: typeString},
	},
	Required: []string{"step", "tools", "notes"},
}

var strategySchema = &Schema{
	Type: typeObject,
	Properties: map[string]*Schema{
		"script":      {Type: typeString, Description: "A beat-by-beat script in concise Markdown format, following the required 5-part structure."},
		"shots":       {Type: typeArray, Description: "A detailed list of shots required for the video.", Items: shotSchema},
		"editingPlan": {Type: typeArray, Description: "A step-by-step plan for editing the video.", Items: editingStepSchema},
	},
	Required: []string{"script", "shots", "editingPlan"},
}

var shotListSchema = &Schema{Type: typeArray, Items: shotSchema}

// decodeStructured parses text, checks it against s (no unknown fields, no missing
// required fields, matching types) and only then decodes it into out.
func decodeStructured(text string, s *Schema, out any) error {
	text = stripFences(text)
	if text == "" {
		return ErrEmptyResponse
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return fmt.Errorf("parse model output: %w", err)
	}
	if err := checkValue(v, s, "$"); err != nil {
		return err
	}
	return json.Unmarshal([]byte(text), out)
}

// stripFences removes a ```json ... ``` wrapper some models add despite the mime type.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.Trim(text, "`")
	text = strings.TrimPrefix(text, "json")
	return strings.TrimSpace(text)
}

func checkValue(v any, s *Schema, path string) error {
	if s == nil {
		return nil
	}
	switch s.Type {
	case typeString:
		if _, ok := v.(string); !ok {
			return &SchemaError{Path: path, Msg: fmt.Sprintf("expected string, got %s", jsonKind(v))}
		}
	case typeArray:
		xs, ok := v.([]any)
		if !ok {
			return &SchemaError{Path: path, Msg: fmt.Sprintf("expected array, got %s", jsonKind(v))}
		}
		for i, x := range xs {
			if err := checkValue(x, s.Items, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	case typeObject:
		m, ok := v.(map[string]any)
		if !ok {
			return &SchemaError{Path: path, Msg: fmt.Sprintf("expected object, got %s", jsonKind(v))}
		}
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			ps, ok := s.Properties[k]
			if !ok {
				return &SchemaError{Path: path + "." + k, Msg: "unexpected field"}
			}
			if err := checkValue(m[k], ps, path+"."+k); err != nil {
				return err
			}
		}
		for _, k := range s.Required {
			if _, ok := m[k]; !ok {
				return &SchemaError{Path: path + "." + k, Msg: "missing required field"}
			}
		}
	}
	return nil
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
