package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nofan/internal/core"
)

const fieldLayout = " %s\n %s\n\n"

var (
	focusedButton = focusedStyle.Render("[ Save ]")
	blurredButton = fmt.Sprintf("[ %s ]", blurredStyle.Render("Save"))
)

// FormModel edits a list of fields. Tab and arrows move between fields,
// enter on the button submits, esc cancels.
type FormModel struct {
	title      string
	labels     []string
	focusIndex int
	inputs     []textinput.Model

	Submitted bool
	Cancelled bool
}

// NewForm creates a form prefilled with the fields' current values.
func NewForm(title string, fields []core.Field) *FormModel {
	m := &FormModel{
		title:  title,
		labels: make([]string, len(fields)),
		inputs: make([]textinput.Model, len(fields)),
	}

	for i, f := range fields {
		t := textinput.New()
		t.Cursor.Style = cursorStyle
		t.CharLimit = 256
		t.Placeholder = f.Placeholder
		t.SetValue(f.Value)

		if f.Secret {
			t.EchoMode = textinput.EchoPassword
			t.EchoCharacter = '•'
		}

		if i == 0 {
			t.Focus()
			t.PromptStyle = focusedStyle
			t.TextStyle = focusedStyle
		}

		m.labels[i] = f.Label
		m.inputs[i] = t
	}

	return m
}

func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				m.Submitted = true
				return m, tea.Quit
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.refocus()
		}
	}

	return m, m.updateInputs(msg)
}

func (m *FormModel) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle

			continue
		}

		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = noStyle
		m.inputs[i].TextStyle = noStyle
	}

	return tea.Batch(cmds...)
}

func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))

	// Only text inputs with Focus() set will respond, so it's safe to simply
	// update all of them here without any further logic.
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return tea.Batch(cmds...)
}

func (m *FormModel) View() string {
	if m.Submitted || m.Cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title) + "\n")
	b.WriteString(blurredStyle.Render("Edit the fields below and press Tab to navigate") + "\n\n")

	for i := range m.inputs {
		fmt.Fprintf(&b, fieldLayout, blurredStyle.Render(m.labels[i]+":"), m.inputs[i].View())
	}

	button := blurredButton
	if m.focusIndex == len(m.inputs) {
		button = focusedButton
	}

	fmt.Fprintf(&b, "\n %s\n\n", button)
	b.WriteString(blurredStyle.Render(" tab/shift+tab: navigate • enter: save • esc: cancel"))

	return b.String()
}

// Values returns the current field values in order.
func (m *FormModel) Values() []string {
	out := make([]string, len(m.inputs))
	for i := range m.inputs {
		out[i] = strings.TrimSpace(m.inputs[i].Value())
	}

	return out
}
