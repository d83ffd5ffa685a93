package cli

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/nofan/internal/model"
)

// AccountItem implements list.Item for account selection
type AccountItem struct {
	account model.Account
	active  bool
}

func (i AccountItem) Title() string {
	active := ""
	if i.active {
		active = accountActiveStyle.Render(" (active)")
	}

	return accountNameStyle.Render(i.account.Username) + active
}

func (i AccountItem) Description() string {
	return accountIDStyle.Render("@" + i.account.ID)
}

func (i AccountItem) FilterValue() string {
	return i.account.ID + " " + i.account.Username
}

// AccountSelectorModel is the TUI model for account selection
type AccountSelectorModel struct {
	list     list.Model
	selected *model.Account
	quitting bool
}

// NewAccountSelector creates a selector with the active account preselected.
func NewAccountSelector(accounts []model.Account, active int) AccountSelectorModel {
	items := make([]list.Item, len(accounts))
	for i, acc := range accounts {
		items[i] = AccountItem{account: acc, active: i == active}
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Switch Account"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(len(accounts) > 5)

	if active >= 0 && active < len(items) {
		l.Select(active)
	}

	return AccountSelectorModel{list: l}
}

func (m AccountSelectorModel) Init() tea.Cmd {
	return nil
}

func (m AccountSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// resizing changes the page size, keep the cursor on the same account
		idx := m.list.Index()
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.list.Select(idx)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(AccountItem)
			if ok {
				m.selected = &i.account

				return m, tea.Quit
			}
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m AccountSelectorModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	return docStyle.Render(m.list.View())
}

// Selected returns the chosen account, or nil when the user cancelled
func (m AccountSelectorModel) Selected() *model.Account {
	return m.selected
}
