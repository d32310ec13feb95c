package chat

import "context"

// Conversation accumulates messages across turns. It is not safe for
// concurrent use.
type Conversation struct {
	client   *Client
	Messages []Message
	Tools    []Tool
}

// NewConversation starts a conversation, optionally primed with a system
// prompt.
func (c *Client) NewConversation(system string) *Conversation {
	conv := &Conversation{client: c}
	if system != "" {
		conv.Messages = append(conv.Messages, SystemMessage{Content: system})
	}
	return conv
}

// Send appends prompt as a user message, asks the model and appends its
// reply. On error the conversation is left unchanged.
func (conv *Conversation) Send(ctx context.Context, prompt string) (AssistantMessage, error) {
	reply, msgs, err := conv.client.Ask(ctx, conv.Messages, prompt, conv.Tools...)
	if err != nil {
		return AssistantMessage{}, err
	}
	conv.Messages = msgs
	return reply, nil
}
