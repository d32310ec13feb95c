package chat

import (
	"encoding/json"
	"fmt"
)

// Tool is a capability offered to the model. The set of implementations is
// closed: WebSearchTool, RetrievalTool and FunctionTool.
type Tool interface {
	Type() ToolType
	isTool()
}

type WebSearchTool struct {
	Enable      *bool  `json:"enable,omitempty"`
	SearchQuery string `json:"search_query,omitempty"`
}

type RetrievalTool struct {
	KnowledgeID    string `json:"knowledge_id"`
	PromptTemplate string `json:"prompt_template,omitempty"`
}

type FunctionTool struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Parameters  *Schema `json:"parameters,omitempty"`
}

func (WebSearchTool) Type() ToolType { return ToolWebSearch }
func (RetrievalTool) Type() ToolType { return ToolRetrieval }
func (FunctionTool) Type() ToolType  { return ToolFunction }

func (WebSearchTool) isTool() {}
func (RetrievalTool) isTool() {}
func (FunctionTool) isTool()  {}

// Tools are encoded as {"type": kind, kind: body}.
func (t WebSearchTool) MarshalJSON() ([]byte, error) {
	type alias WebSearchTool
	return marshalTool(t.Type(), alias(t))
}

func (t RetrievalTool) MarshalJSON() ([]byte, error) {
	type alias RetrievalTool
	return marshalTool(t.Type(), alias(t))
}

func (t FunctionTool) MarshalJSON() ([]byte, error) {
	type alias FunctionTool
	return marshalTool(t.Type(), alias(t))
}

func marshalTool(kind ToolType, body any) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":       kind,
		string(kind): body,
	})
}

// Schema is the subset of JSON Schema used to describe function parameters.
type Schema struct {
	Type        string             `json:"type,omitempty"`
	Description string             `json:"description,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Object returns an object schema with the given properties.
func Object(properties map[string]*Schema, required ...string) *Schema {
	return &Schema{Type: "object", Properties: properties, Required: required}
}

func String(description string) *Schema {
	return &Schema{Type: "string", Description: description}
}

func Number(description string) *Schema {
	return &Schema{Type: "number", Description: description}
}

func Boolean(description string) *Schema {
	return &Schema{Type: "boolean", Description: description}
}

// Enum returns a string schema restricted to values.
func Enum(description string, values ...string) *Schema {
	return &Schema{Type: "string", Description: description, Enum: values}
}

func Array(description string, items *Schema) *Schema {
	return &Schema{Type: "array", Description: description, Items: items}
}

// Validate checks that every required name is a declared property, recursively.
func (s *Schema) Validate() error {
	if s == nil {
		return nil
	}
	for _, name := range s.Required {
		if _, ok := s.Properties[name]; !ok {
			return fmt.Errorf("%w: required property %q is not declared", ErrInvalidSchema, name)
		}
	}
	for name, p := range s.Properties {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return s.Items.Validate()
}
