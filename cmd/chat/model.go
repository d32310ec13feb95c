package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/domino14/bigmodel/pkg/chat"
)

type sender interface {
	Send(ctx context.Context, prompt string) (chat.AssistantMessage, error)
}

type model struct {
	textInput  textinput.Model
	spinner    spinner.Model
	conv       sender
	ctx        context.Context
	cancel     context.CancelFunc
	modelName  string
	transcript []string
	waiting    bool
	err        error
}

type replyMsg struct {
	content string
}

type errMsg struct {
	err error
}

// initialModel returns the UI model. Requests it sends are bound to a
// context derived from ctx and canceled when the user quits.
func initialModel(ctx context.Context, conv sender, modelName string) model {
	ti := textinput.New()
	ti.Placeholder = "Ask something"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 80

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	ctx, cancel := context.WithCancel(ctx)
	return model{
		textInput: ti,
		spinner:   sp,
		conv:      conv,
		ctx:       ctx,
		cancel:    cancel,
		modelName: modelName,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) send(prompt string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.conv.Send(m.ctx, prompt)
		if err != nil {
			return errMsg{err}
		}
		return replyMsg{reply.Content}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancel()
			return m, tea.Quit

		case tea.KeyEnter:
			prompt := strings.TrimSpace(m.textInput.Value())
			if prompt == "" || m.waiting {
				return m, nil
			}
			m.textInput.Reset()
			m.transcript = append(m.transcript, "you: "+prompt)
			m.waiting = true
			m.err = nil
			return m, tea.Batch(m.send(prompt), m.spinner.Tick)
		}

	case replyMsg:
		m.waiting = false
		m.transcript = append(m.transcript, m.modelName+": "+msg.content)
		return m, nil

	case errMsg:
		m.waiting = false
		m.err = msg.err
		return m, nil

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

func (m model) View() string {
	var b strings.Builder
	for _, line := range m.transcript {
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	if m.waiting {
		fmt.Fprintf(&b, "%s waiting for %s\n\n", m.spinner.View(), m.modelName)
	}
	if m.err != nil {
		fmt.Fprintf(&b, "error: %v\n\n", m.err)
	}
	fmt.Fprintf(&b, "%s\n\n(esc to quit)\n", m.textInput.View())
	return b.String()
}
