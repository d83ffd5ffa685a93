package render

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/inovacc/nofan/internal/model"
)

// PhotoTag marks statuses carrying a photo.
const PhotoTag = "[photo]"

// Options are the merged display options for one invocation.
type Options struct {
	TimeAgo  bool
	PhotoTag bool

	// Me is the active account's display name, highlighted in mentions
	Me string
}

// entity matches links, @mentions and #tags# in status text.
var entity = regexp.MustCompile(`https?://[^\s]+|@[^\s@#:：,，]+|#[^#\s][^#]*#`)

// Printer writes statuses using a color scheme.
type Printer struct {
	out    io.Writer
	styles Styles
	opts   Options
	now    func() time.Time
}

// NewPrinter creates a printer. Colors are emitted only when out is a
// terminal that supports them.
func NewPrinter(out io.Writer, scheme model.ColorScheme, opts Options) *Printer {
	return &Printer{
		out:    out,
		styles: NewStyles(lipgloss.NewRenderer(out), scheme),
		opts:   opts,
		now:    time.Now,
	}
}

// Statuses prints a timeline oldest last, as returned by the API.
func (p *Printer) Statuses(statuses []model.Status) error {
	if len(statuses) == 0 {
		_, err := fmt.Fprintln(p.out, "No statuses")
		return err
	}

	for i := range statuses {
		if err := p.Status(&statuses[i]); err != nil {
			return err
		}
	}

	return nil
}

// Status prints one status on a single line.
func (p *Printer) Status(s *model.Status) error {
	_, err := fmt.Fprintln(p.out, p.Format(s))
	return err
}

// Format renders one status without a trailing newline.
func (p *Printer) Format(s *model.Status) string {
	var b strings.Builder

	name := s.User.Name
	if name == "" {
		name = s.User.ID
	}

	b.WriteString(p.styles.Get(model.StyleName).Render(name))
	b.WriteString(" ")
	b.WriteString(p.highlight(s.Text))

	if p.opts.PhotoTag && s.HasPhoto() {
		b.WriteString(" ")
		b.WriteString(p.styles.Get(model.StylePhoto).Render(PhotoTag))
	}

	if p.opts.TimeAgo && !s.CreatedAt.IsZero() {
		b.WriteString(" ")
		b.WriteString(p.styles.Get(model.StyleTimeAgo).Render("(" + humanize.RelTime(s.CreatedAt.Time, p.now(), "ago", "from now") + ")"))
	}

	return b.String()
}

func (p *Printer) highlight(text string) string {
	textStyle := p.styles.Get(model.StyleText)

	var b strings.Builder

	last := 0
	for _, loc := range entity.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			b.WriteString(textStyle.Render(text[last:loc[0]]))
		}

		b.WriteString(p.entityStyle(text[loc[0]:loc[1]]).Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}

	if last < len(text) {
		b.WriteString(textStyle.Render(text[last:]))
	}

	return b.String()
}

func (p *Printer) entityStyle(token string) lipgloss.Style {
	switch {
	case strings.HasPrefix(token, "@"):
		if p.opts.Me != "" && strings.TrimPrefix(token, "@") == p.opts.Me {
			return p.styles.Get(model.StyleHighlight)
		}

		return p.styles.Get(model.StyleAt)
	case strings.HasPrefix(token, "#"):
		return p.styles.Get(model.StyleTag)
	default:
		return p.styles.Get(model.StyleLink)
	}
}
