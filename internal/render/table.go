package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inovacc/nofan/internal/model"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Mask hides all but the last four characters of a secret.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}

	r := []rune(secret)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}

	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}

func renderTable(headers []string, rows [][]string) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, len(headers))
	for i, h := range headers {
		header[i] = h
	}

	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, len(headers))
		for i := range headers {
			if i < len(row) {
				r[i] = row[i]
			}
		}

		tw.AppendRow(r)
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}

// ConfigTable writes the full config with secrets masked.
func ConfigTable(w io.Writer, cfg *model.Config) error {
	rows := [][]string{
		{"consumer_key", cfg.ConsumerKey},
		{"consumer_secret", Mask(cfg.ConsumerSecret)},
	}

	for i, acc := range cfg.Accounts {
		marker := ""
		if i == cfg.Active {
			marker = " (active)"
		}

		rows = append(rows,
			[]string{fmt.Sprintf("account[%d]", i), acc.ID + " " + acc.Username + marker},
			[]string{fmt.Sprintf("account[%d].token", i), Mask(acc.Token.Token)},
		)
	}

	for _, name := range model.StyleNames() {
		rows = append(rows, []string{"color." + name, cfg.ColorScheme[name]})
	}

	rows = append(rows,
		[]string{"display.show_time_ago", strconv.FormatBool(cfg.Display.ShowTimeAgo)},
		[]string{"display.show_photo_tag", strconv.FormatBool(cfg.Display.ShowPhotoTag)},
		[]string{"notifier.interval", strconv.Itoa(cfg.Notifier.Interval) + "s"},
		[]string{"notifier.mentions", strconv.FormatBool(cfg.Notifier.Mentions)},
		[]string{"notifier.home", strconv.FormatBool(cfg.Notifier.Home)},
		[]string{"notifier.supervisor", cfg.Notifier.Supervisor},
	)

	_, err := fmt.Fprintln(w, renderTable([]string{"Key", "Value"}, rows))

	return err
}

// AccountsTable writes the logged-in accounts, marking the active one.
func AccountsTable(w io.Writer, cfg *model.Config) error {
	rows := make([][]string, 0, len(cfg.Accounts))

	for i, acc := range cfg.Accounts {
		active := ""
		if i == cfg.Active {
			active = "*"
		}

		rows = append(rows, []string{active + acc.ID, acc.Username})
	}

	_, err := fmt.Fprintln(w, renderTable([]string{"ID", "Name"}, rows))

	return err
}
