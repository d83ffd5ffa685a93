package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/model"
	"golang.org/x/term"
)

// TerminalPrompter implements core.Prompter on the controlling terminal.
type TerminalPrompter struct {
	in  *os.File
	out io.Writer

	reader *bufio.Reader
}

var _ core.Prompter = (*TerminalPrompter)(nil)

// NewTerminalPrompter prompts on stdin, writing prompts to stderr.
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:     os.Stdin,
		out:    os.Stderr,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (p *TerminalPrompter) interactive() bool {
	return term.IsTerminal(int(p.in.Fd()))
}

// ChooseAccount shows the account selector.
func (p *TerminalPrompter) ChooseAccount(accounts []model.Account, active int) (string, error) {
	if !p.interactive() {
		return "", errors.New("switch needs an account id when stdin is not a terminal")
	}

	final, err := tea.NewProgram(NewAccountSelector(accounts, active), tea.WithOutput(p.out)).Run()
	if err != nil {
		return "", err
	}

	m, ok := final.(AccountSelectorModel)
	if !ok || m.Selected() == nil {
		return "", core.ErrCancelled
	}

	return m.Selected().ID, nil
}

// Input reads one line, returning def when the answer is empty.
func (p *TerminalPrompter) Input(label, def string) (string, error) {
	if def != "" {
		_, _ = fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	} else {
		_, _ = fmt.Fprintf(p.out, "%s: ", label)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", core.ErrCancelled
		}

		return "", err
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return def, nil
	}

	return line, nil
}

// Password reads a line without echo.
func (p *TerminalPrompter) Password(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)

	fd := int(p.in.Fd())
	if !term.IsTerminal(fd) {
		line, err := p.reader.ReadString('\n')
		if err != nil && line == "" {
			return "", core.ErrCancelled
		}

		return strings.TrimRight(line, "\r\n"), nil
	}

	bytePassword, err := term.ReadPassword(fd)

	_, _ = fmt.Fprintln(p.out)

	if err != nil {
		return "", err
	}

	return string(bytePassword), nil
}

// Form shows a multi-field form. Without a terminal each field is asked
// for on its own line.
func (p *TerminalPrompter) Form(title string, fields []core.Field) ([]string, error) {
	if !p.interactive() {
		values := make([]string, len(fields))

		for i, f := range fields {
			var err error

			if f.Secret {
				values[i], err = p.Password(f.Label)
				if err == nil && values[i] == "" {
					values[i] = f.Value
				}
			} else {
				values[i], err = p.Input(f.Label, f.Value)
			}

			if err != nil {
				return nil, err
			}
		}

		return values, nil
	}

	form := NewForm(title, fields)

	if _, err := tea.NewProgram(form, tea.WithOutput(p.out)).Run(); err != nil {
		return nil, err
	}

	if !form.Submitted {
		return nil, core.ErrCancelled
	}

	return form.Values(), nil
}
