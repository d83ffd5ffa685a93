package render

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/nofan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)

	valid := []string{"", "cyan", "cyan.bold", "205.underline", "#ff8800", "#f80.italic", "bg:blue.white", "GRAY.dim", "reverse"}
	for _, token := range valid {
		_, err := ParseStyle(r, token)
		assert.NoError(t, err, token)
	}

	invalid := []string{"purplish", "300", "#gg0000", "#12345", "bg:nope"}
	for _, token := range invalid {
		_, err := ParseStyle(r, token)
		assert.Error(t, err, token)
	}

	assert.Error(t, ValidateStyle("nope.bold"))
}

func TestParseStyle_Attributes(t *testing.T) {
	r := lipgloss.NewRenderer(io.Discard)

	style, err := ParseStyle(r, "red.bold.underline")
	require.NoError(t, err)

	assert.True(t, style.GetBold())
	assert.True(t, style.GetUnderline())
	assert.Equal(t, lipgloss.Color("1"), style.GetForeground())
}

func sampleStatus() model.Status {
	return model.Status{
		ID:        "s1",
		Text:      "hi @Bob see http://example.com #tag#",
		CreatedAt: model.Time{Time: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)},
		User:      model.User{ID: "alice", Name: "Alice"},
		Photo:     &model.Photo{LargeURL: "http://photo/large.jpg"},
	}
}

func newTestPrinter(opts Options) (*Printer, *bytes.Buffer) {
	var buf bytes.Buffer

	p := NewPrinter(&buf, model.DefaultColorScheme(), opts)
	p.now = func() time.Time { return time.Date(2026, 1, 1, 12, 3, 0, 0, time.UTC) }

	return p, &buf
}

func TestPrinter_Plain(t *testing.T) {
	p, buf := newTestPrinter(Options{})
	s := sampleStatus()

	require.NoError(t, p.Status(&s))
	assert.Equal(t, "Alice hi @Bob see http://example.com #tag#\n", buf.String())
}

func TestPrinter_Decorations(t *testing.T) {
	p, _ := newTestPrinter(Options{TimeAgo: true, PhotoTag: true})
	s := sampleStatus()

	line := p.Format(&s)
	assert.Contains(t, line, PhotoTag)
	assert.Contains(t, line, "(3 minutes ago)")
}

func TestPrinter_PhotoTagOnlyWithPhoto(t *testing.T) {
	p, _ := newTestPrinter(Options{PhotoTag: true})
	s := sampleStatus()
	s.Photo = nil

	assert.NotContains(t, p.Format(&s), PhotoTag)
}

func TestPrinter_Empty(t *testing.T) {
	p, buf := newTestPrinter(Options{})

	require.NoError(t, p.Statuses(nil))
	assert.Equal(t, "No statuses\n", buf.String())
}

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "***", Mask("abc"))
	assert.Equal(t, "****cdef", Mask("abcdcdef"))
}

func TestConfigTable(t *testing.T) {
	cfg := model.DefaultConfig()
	cfg.ConsumerKey = "key"
	cfg.ConsumerSecret = "supersecret"
	cfg.AddAccount(model.Account{ID: "alice", Username: "Alice", Token: model.OAuthToken{Token: "tokentoken", Secret: "s"}})

	var buf bytes.Buffer
	require.NoError(t, ConfigTable(&buf, &cfg))

	out := buf.String()
	assert.Contains(t, out, "consumer_key")
	assert.Contains(t, out, "*******cret")
	assert.NotContains(t, out, "supersecret")
	assert.NotContains(t, out, "tokentoken")
	assert.Contains(t, out, "alice Alice (active)")
	assert.Contains(t, out, "notifier.supervisor")
}
