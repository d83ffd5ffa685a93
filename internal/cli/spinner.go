package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/render"
)

type spinnerModel struct {
	spinner spinner.Model
	text    string
	final   string
	done    bool
}

// finishMsg ends the spinner. An empty line clears it without output.
type finishMsg struct {
	line string
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case finishMsg:
		m.done = true
		m.final = msg.line

		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		if m.final == "" {
			return ""
		}

		return m.final + "\n"
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.text)
}

// Spinner is a core.Indicator. The animation runs on its own goroutine
// until the first of Succeed, Fail or Stop.
type Spinner struct {
	out  io.Writer
	prog *tea.Program
	done chan struct{}
	once sync.Once
}

var _ core.Indicator = (*Spinner)(nil)

// NewSpinner starts a spinner on out. When out is not a terminal no
// animation is drawn and only the final line is written.
func NewSpinner(out io.Writer, text string) *Spinner {
	s := &Spinner{out: out, done: make(chan struct{})}

	if !render.IsTerminal(out) {
		close(s.done)
		return s
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	s.prog = tea.NewProgram(spinnerModel{spinner: sp, text: text},
		tea.WithOutput(out),
		tea.WithInput(nil),
	)

	go func() {
		defer close(s.done)

		_, _ = s.prog.Run()
	}()

	return s
}

// SpinnerFactory returns a core.IndicatorFactory writing to out.
func SpinnerFactory(out io.Writer) core.IndicatorFactory {
	return func(text string) core.Indicator {
		return NewSpinner(out, text)
	}
}

func (s *Spinner) Succeed(msg string) {
	s.finish(symbolSuccess+" "+msg, successStyle)
}

func (s *Spinner) Fail(msg string) {
	s.finish(symbolFailure+" "+msg, errorStyle)
}

func (s *Spinner) Stop() {
	s.finish("", noStyle)
}

func (s *Spinner) finish(line string, style lipgloss.Style) {
	s.once.Do(func() {
		if s.prog == nil {
			if line != "" {
				_, _ = fmt.Fprintln(s.out, line)
			}

			return
		}

		if line != "" {
			line = style.Render(line)
		}

		s.prog.Send(finishMsg{line: line})
		<-s.done
	})
}
