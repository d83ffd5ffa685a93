// Package cli provides the terminal user interface components for nofan.
//
// The package uses [Bubbletea] for building interactive terminal UIs and
// [Lipgloss] for styling. All UI components follow the standard Bubbletea
// Model-View-Update (MVU) architecture.
//
// # Components
//
//   - Spinner: the progress indicator shown while a command talks to the API
//   - AccountSelector: filterable list used by "nofan switch"
//   - Form: multi-field text input used by "nofan config" and "nofan colors"
//   - TerminalPrompter: the core.Prompter built from the components above
//
// When stderr is not a terminal the spinner degrades to plain lines, so
// output stays readable in pipes and logs.
//
// [Bubbletea]: https://github.com/charmbracelet/bubbletea
// [Lipgloss]: https://github.com/charmbracelet/lipgloss
package cli
