// Package core provides the command handlers for nofan.
//
// Every handler is a method on [App], which carries the collaborators the
// handlers need: the config store, the Fanfou API factory, the notifier
// manager factory, the prompt and the progress indicator factory.
//
// # Design Principles
//
//   - Handlers receive a parsed intent and never look at raw arguments
//   - A handler that blocks on the network owns its [Indicator] and ends it
//     on every return path
//   - Failures already shown through the indicator are wrapped with
//     [Reported] so the caller only picks an exit code
//   - UI-specific logic belongs in the cli package, not here
//
// # Accounts
//
// The active account is changed only through [AccountSwitcher] and the
// login and logout handlers. Every mutation goes through [ConfigStore],
// which persists before returning.
package core
