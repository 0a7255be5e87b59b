// Package tui implements the interactive first-run form that collects the
// Tenable.io access and secret keys.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	fieldAccess = iota
	fieldSecret
)

// KeysModel is the view model for API key entry.
type KeysModel struct {
	inputs  [2]textinput.Model
	focused int
	err     string
	done    bool
	aborted bool
}

// NewKeysModel creates the two-field key entry form with the access key
// focused.
func NewKeysModel() KeysModel {
	access := textinput.New()
	access.Placeholder = "Tenable.io access key"
	access.CharLimit = 128
	access.Width = 64
	access.PromptStyle = cursorStyle
	access.Focus()

	secret := textinput.New()
	secret.Placeholder = "Tenable.io secret key"
	secret.CharLimit = 128
	secret.Width = 64
	secret.PromptStyle = cursorStyle
	secret.EchoMode = textinput.EchoPassword
	secret.EchoCharacter = '•'

	return KeysModel{inputs: [2]textinput.Model{access, secret}}
}

// Init returns the text input blink command.
func (m KeysModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m KeysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		case "tab", "down":
			return m.focusField((m.focused + 1) % len(m.inputs)), nil
		case "shift+tab", "up":
			return m.focusField((m.focused + len(m.inputs) - 1) % len(m.inputs)), nil
		case "enter":
			if m.focused == fieldAccess {
				return m.focusField(fieldSecret), nil
			}
			if _, _, err := m.Keys(); err != nil {
				m.err = err.Error()
				return m, nil
			}
			m.done = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	m.err = ""
	return m, cmd
}

// View renders the key entry form.
func (m KeysModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("tio — Tenable.io API keys"))
	b.WriteString("\n\n")
	b.WriteString("No credential file was found; keys are required for all endpoints.\n")
	b.WriteString("Reference: https://developer.tenable.com/\n\n")
	b.WriteString(labelStyle.Render("Access key"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldAccess].View())
	b.WriteString("\n\n")
	b.WriteString(labelStyle.Render("Secret key"))
	b.WriteString("\n")
	b.WriteString(m.inputs[fieldSecret].View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field • enter submit • esc abort"))

	return b.String()
}

// Keys returns the entered key pair, or an error if either is empty.
func (m KeysModel) Keys() (string, string, error) {
	access := strings.TrimSpace(m.inputs[fieldAccess].Value())
	secret := strings.TrimSpace(m.inputs[fieldSecret].Value())
	if access == "" || secret == "" {
		return "", "", fmt.Errorf("both keys are required")
	}
	return access, secret, nil
}

// Done reports whether the form was submitted with both keys present.
func (m KeysModel) Done() bool { return m.done }

// Aborted reports whether the operator backed out of the form.
func (m KeysModel) Aborted() bool { return m.aborted }

func (m KeysModel) focusField(i int) KeysModel {
	m.inputs[m.focused].Blur()
	m.focused = i
	m.inputs[m.focused].Focus()
	return m
}

// Prompter runs the form as a full bubbletea program. It satisfies
// creds.Prompter and is used when stdin is a terminal.
type Prompter struct{}

// Ask runs the key entry form and returns the submitted pair.
func (Prompter) Ask() (string, string, error) {
	final, err := tea.NewProgram(NewKeysModel()).Run()
	if err != nil {
		return "", "", fmt.Errorf("running key entry form: %w", err)
	}

	m, ok := final.(KeysModel)
	if !ok || !m.Done() {
		return "", "", fmt.Errorf("key entry aborted")
	}
	return m.Keys()
}
