package chat

import "encoding/json"

type Model string

const (
	GLM3Turbo Model = "glm-3-turbo"
	GLM4      Model = "glm-4"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one entry of a conversation. The set of implementations is
// closed: SystemMessage, UserMessage, AssistantMessage and ToolMessage.
type Message interface {
	Role() Role
	isMessage()
}

type SystemMessage struct {
	Content string `json:"content"`
}

type UserMessage struct {
	Content string `json:"content"`
}

// AssistantMessage is a model reply. Content is empty when the model only
// requested tool calls.
type AssistantMessage struct {
	Content   string     `json:"content,omitempty"`
	ToolCalls []ToolCall `json:"tool_calls,omitempty"`
}

// ToolMessage returns the result of a tool call to the model.
type ToolMessage struct {
	Content    string `json:"content"`
	ToolCallID string `json:"tool_call_id"`
}

func (SystemMessage) Role() Role    { return RoleSystem }
func (UserMessage) Role() Role      { return RoleUser }
func (AssistantMessage) Role() Role { return RoleAssistant }
func (ToolMessage) Role() Role      { return RoleTool }

func (SystemMessage) isMessage()    {}
func (UserMessage) isMessage()      {}
func (AssistantMessage) isMessage() {}
func (ToolMessage) isMessage()      {}

func (m SystemMessage) MarshalJSON() ([]byte, error) {
	type alias SystemMessage
	return json.Marshal(struct {
		Role Role `json:"role"`
		alias
	}{m.Role(), alias(m)})
}

func (m UserMessage) MarshalJSON() ([]byte, error) {
	type alias UserMessage
	return json.Marshal(struct {
		Role Role `json:"role"`
		alias
	}{m.Role(), alias(m)})
}

func (m AssistantMessage) MarshalJSON() ([]byte, error) {
	type alias AssistantMessage
	return json.Marshal(struct {
		Role Role `json:"role"`
		alias
	}{m.Role(), alias(m)})
}

func (m ToolMessage) MarshalJSON() ([]byte, error) {
	type alias ToolMessage
	return json.Marshal(struct {
		Role Role `json:"role"`
		alias
	}{m.Role(), alias(m)})
}

type ToolType string

const (
	ToolWebSearch ToolType = "web_search"
	ToolRetrieval ToolType = "retrieval"
	ToolFunction  ToolType = "function"
)

// ToolCall is a tool invocation requested by the model. Function is only
// set for function calls.
type ToolCall struct {
	ID       string        `json:"id"`
	Type     ToolType      `json:"type"`
	Function *FunctionCall `json:"function,omitempty"`
}

type FunctionCall struct {
	Name string `json:"name"`
	// Arguments is the JSON-encoded argument object.
	Arguments string `json:"arguments"`
}

// DecodeArguments unmarshals the call arguments into v.
func (f FunctionCall) DecodeArguments(v any) error {
	return json.Unmarshal([]byte(f.Arguments), v)
}
