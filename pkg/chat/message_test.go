package chat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestMessageJSON(t *testing.T) {
	tests := []struct {
		name string
		msg  Message
		want string
	}{
		{name: "system", msg: SystemMessage{Content: "be brief"}, want: `{"role":"system","content":"be brief"}`},
		{name: "user", msg: UserMessage{Content: "hello"}, want: `{"role":"user","content":"hello"}`},
		{name: "assistant", msg: AssistantMessage{Content: "hi"}, want: `{"role":"assistant","content":"hi"}`},
		{
			name: "assistant tool call",
			msg: AssistantMessage{ToolCalls: []ToolCall{{
				ID: "aaa", Type: ToolFunction,
				Function: &FunctionCall{Name: "bbb", Arguments: "ccc"},
			}}},
			want: `{"role":"assistant","tool_calls":[{"id":"aaa","type":"function","function":{"name":"bbb","arguments":"ccc"}}]}`,
		},
		{name: "tool", msg: ToolMessage{Content: "22C", ToolCallID: "aaa"}, want: `{"role":"tool","content":"22C","tool_call_id":"aaa"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.JSONEq(t, tt.want, marshal(t, tt.msg))
		})
	}
}

func TestToolJSON(t *testing.T) {
	weather := FunctionTool{
		Name:        "get_weather",
		Description: "current weather for a city",
		Parameters: Object(map[string]*Schema{
			"location": String("city, e.g. Beijing"),
			"unit":     Enum("temperature unit, c or f", "c", "f"),
		}, "location", "unit"),
	}
	assert.JSONEq(t, `{
		"type": "function",
		"function": {
			"name": "get_weather",
			"description": "current weather for a city",
			"parameters": {
				"type": "object",
				"properties": {
					"location": {"type": "string", "description": "city, e.g. Beijing"},
					"unit": {"type": "string", "description": "temperature unit, c or f", "enum": ["c", "f"]}
				},
				"required": ["location", "unit"]
			}
		}
	}`, marshal(t, weather))

	assert.JSONEq(t, `{"type":"web_search","web_search":{"enable":true,"search_query":"hotels"}}`,
		marshal(t, WebSearchTool{Enable: Bool(true), SearchQuery: "hotels"}))
	assert.JSONEq(t, `{"type":"retrieval","retrieval":{"knowledge_id":"kb1"}}`,
		marshal(t, RetrievalTool{KnowledgeID: "kb1"}))
}

func TestSchemaValidate(t *testing.T) {
	assert.NoError(t, (*Schema)(nil).Validate())
	assert.NoError(t, Object(map[string]*Schema{"a": String("")}, "a").Validate())
	assert.ErrorIs(t, Object(map[string]*Schema{"a": String("")}, "b").Validate(), ErrInvalidSchema)

	nested := Object(map[string]*Schema{
		"items": Array("", Object(map[string]*Schema{}, "missing")),
	})
	assert.ErrorIs(t, nested.Validate(), ErrInvalidSchema)
}

func TestRequestJSONOmitsUnset(t *testing.T) {
	req := Request{Model: GLM3Turbo, Messages: []Message{UserMessage{Content: "hi"}}}
	assert.JSONEq(t, `{"model":"glm-3-turbo","messages":[{"role":"user","content":"hi"}],"stream":false}`, marshal(t, req))

	req.Temperature = Float(0.5)
	req.Stop = []string{"\n"}
	req.Tools = []Tool{RetrievalTool{KnowledgeID: "kb"}}
	req.ToolChoice = "auto"
	got := marshal(t, req)
	assert.Contains(t, got, `"tool_choice":"auto"`)
	assert.Contains(t, got, `"temperature":0.5`)
	assert.Contains(t, got, `"stop":["\n"]`)
	assert.Contains(t, got, `"knowledge_id":"kb"`)
}

func TestResponseDecode(t *testing.T) {
	body := `{
		"id": "8231",
		"request_id": "r1",
		"created": 1700000000,
		"model": "glm-4",
		"choices": [{
			"index": 0,
			"finish_reason": "tool_calls",
			"message": {
				"role": "assistant",
				"content": "",
				"tool_calls": [{"id": "call_1", "type": "function", "function": {"name": "get_weather", "arguments": "{\"location\":\"Beijing\"}"}}]
			}
		}],
		"usage": {"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15}
	}`
	var resp Response
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	reply, err := resp.Reply()
	require.NoError(t, err)
	require.Len(t, reply.ToolCalls, 1)
	call := reply.ToolCalls[0]
	assert.Equal(t, ToolFunction, call.Type)

	var args struct {
		Location string `json:"location"`
	}
	require.NoError(t, call.Function.DecodeArguments(&args))
	assert.Equal(t, "Beijing", args.Location)
	assert.Equal(t, 15, resp.Usage.TotalTokens)

	_, err = (&Response{}).Reply()
	assert.ErrorIs(t, err, ErrEmptyResponse)
}
