// Package render prints statuses and config to the terminal.
package render

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/nofan/internal/model"
	"github.com/mattn/go-isatty"
)

var colorNames = map[string]string{
	"black":         "0",
	"red":           "1",
	"green":         "2",
	"yellow":        "3",
	"blue":          "4",
	"magenta":       "5",
	"cyan":          "6",
	"white":         "7",
	"gray":          "8",
	"grey":          "8",
	"brightred":     "9",
	"brightgreen":   "10",
	"brightyellow":  "11",
	"brightblue":    "12",
	"brightmagenta": "13",
	"brightcyan":    "14",
	"brightwhite":   "15",
}

// ParseStyle turns a color token such as "cyan.bold", "205.underline",
// "#ff8800" or "bg:blue.white" into a lipgloss style. The empty token is
// the plain style.
func ParseStyle(r *lipgloss.Renderer, token string) (lipgloss.Style, error) {
	style := r.NewStyle()

	for _, part := range strings.Split(strings.TrimSpace(token), ".") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}

		switch part {
		case "bold":
			style = style.Bold(true)
			continue
		case "italic":
			style = style.Italic(true)
			continue
		case "underline":
			style = style.Underline(true)
			continue
		case "dim", "faint":
			style = style.Faint(true)
			continue
		case "inverse", "reverse":
			style = style.Reverse(true)
			continue
		case "strikethrough":
			style = style.Strikethrough(true)
			continue
		}

		background := false
		if rest, ok := strings.CutPrefix(part, "bg:"); ok {
			background = true
			part = rest
		}

		color, err := parseColor(part)
		if err != nil {
			return style, fmt.Errorf("invalid style %q: %w", token, err)
		}

		if background {
			style = style.Background(color)
		} else {
			style = style.Foreground(color)
		}
	}

	return style, nil
}

func parseColor(s string) (lipgloss.Color, error) {
	if ansi, ok := colorNames[s]; ok {
		return lipgloss.Color(ansi), nil
	}

	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return "", fmt.Errorf("bad hex color %q", s)
		}

		if _, err := strconv.ParseUint(s[1:], 16, 32); err != nil {
			return "", fmt.Errorf("bad hex color %q", s)
		}

		return lipgloss.Color(s), nil
	}

	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n <= 255 {
		return lipgloss.Color(s), nil
	}

	return "", fmt.Errorf("unknown color %q", s)
}

// ValidateStyle reports whether token parses.
func ValidateStyle(token string) error {
	_, err := ParseStyle(lipgloss.NewRenderer(io.Discard), token)
	return err
}

// Styles holds the resolved style for every named style.
type Styles map[string]lipgloss.Style

// NewStyles resolves a color scheme for the given renderer. Invalid tokens
// fall back to the plain style.
func NewStyles(r *lipgloss.Renderer, scheme model.ColorScheme) Styles {
	styles := make(Styles, len(scheme))

	for _, name := range model.StyleNames() {
		style, err := ParseStyle(r, scheme[name])
		if err != nil {
			style = r.NewStyle()
		}

		styles[name] = style
	}

	return styles
}

// Get returns the named style, or a zero style when missing.
func (s Styles) Get(name string) lipgloss.Style {
	return s[name]
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
