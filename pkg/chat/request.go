package chat

// Request is the body of a chat completion call. Unset optional fields are
// left out so the server applies its defaults.
type Request struct {
	Model       Model     `json:"model"`
	Messages    []Message `json:"messages"`
	RequestID   string    `json:"request_id,omitempty"`
	DoSample    *bool     `json:"do_sample,omitempty"`
	Stream      bool      `json:"stream"`
	Temperature *float64  `json:"temperature,omitempty"`
	TopP        *float64  `json:"top_p,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
	Tools       []Tool    `json:"tools,omitempty"`
	ToolChoice  string    `json:"tool_choice,omitempty"`
}

type Response struct {
	ID        string   `json:"id"`
	RequestID string   `json:"request_id"`
	Created   int64    `json:"created"`
	Model     string   `json:"model"`
	Choices   []Choice `json:"choices"`
	Usage     Usage    `json:"usage"`
}

type Choice struct {
	Index        int              `json:"index"`
	FinishReason string           `json:"finish_reason"`
	Message      AssistantMessage `json:"message"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Reply returns the message of the first choice.
func (r *Response) Reply() (AssistantMessage, error) {
	if len(r.Choices) == 0 {
		return AssistantMessage{}, ErrEmptyResponse
	}
	return r.Choices[0].Message, nil
}

func Float(f float64) *float64 { return &f }

func Bool(b bool) *bool { return &b }
