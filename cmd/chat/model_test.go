package main

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domino14/bigmodel/pkg/chat"
)

type fakeConversation struct {
	prompts []string
	reply   string
	err     error
}

func (f *fakeConversation) Send(ctx context.Context, prompt string) (chat.AssistantMessage, error) {
	f.prompts = append(f.prompts, prompt)
	if err := ctx.Err(); err != nil {
		return chat.AssistantMessage{}, err
	}
	if f.err != nil {
		return chat.AssistantMessage{}, f.err
	}
	return chat.AssistantMessage{Content: f.reply}, nil
}

func typeAndSubmit(t *testing.T, m model, text string) (model, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(text)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(model), cmd
}

func TestSubmitSendsPrompt(t *testing.T) {
	conv := &fakeConversation{reply: "hi back"}
	m, cmd := typeAndSubmit(t, initialModel(context.Background(), conv, "glm-4"), "  hello  ")
	require.NotNil(t, cmd)
	assert.True(t, m.waiting)
	assert.Empty(t, m.textInput.Value())
	assert.Equal(t, []string{"you: hello"}, m.transcript)
	assert.Contains(t, m.View(), "waiting for glm-4")

	msg := m.send("hello")()
	assert.Equal(t, replyMsg{"hi back"}, msg)
	assert.Equal(t, []string{"hello"}, conv.prompts)

	next, _ := m.Update(msg)
	m = next.(model)
	assert.False(t, m.waiting)
	assert.Equal(t, []string{"you: hello", "glm-4: hi back"}, m.transcript)
	assert.Contains(t, m.View(), "glm-4: hi back")
}

func TestSubmitIgnoredWhileWaitingOrEmpty(t *testing.T) {
	m := initialModel(context.Background(), &fakeConversation{}, "glm-4")

	m, cmd := typeAndSubmit(t, m, "   ")
	assert.Nil(t, cmd)
	assert.Empty(t, m.transcript)

	m.waiting = true
	m, cmd = typeAndSubmit(t, m, "hello")
	assert.Nil(t, cmd)
	assert.Empty(t, m.transcript)
}

func TestErrorShown(t *testing.T) {
	conv := &fakeConversation{err: errors.New("status 401")}
	m := initialModel(context.Background(), conv, "glm-4")
	m.waiting = true

	next, _ := m.Update(m.send("hello")())
	m = next.(model)
	assert.False(t, m.waiting)
	assert.Contains(t, m.View(), "error: status 401")
}

func TestQuitCancelsPendingRequest(t *testing.T) {
	conv := &fakeConversation{reply: "too late"}
	m, cmd := typeAndSubmit(t, initialModel(context.Background(), conv, "glm-4"), "hello")
	require.NotNil(t, cmd)

	next, quit := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	require.NotNil(t, quit)
	assert.Equal(t, tea.QuitMsg{}, quit())
	assert.ErrorIs(t, m.ctx.Err(), context.Canceled)

	msg := m.send("hello")()
	errResult, ok := msg.(errMsg)
	require.True(t, ok)
	assert.ErrorIs(t, errResult.err, context.Canceled)
}
