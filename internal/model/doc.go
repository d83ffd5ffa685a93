// Package model defines the data structures shared across nofan.
//
// # Config
//
// The [Config] struct is the persisted client state: consumer credentials,
// the ordered list of logged-in accounts and which one is active, the color
// scheme used when printing statuses, and display and notifier defaults.
//
//	type Config struct {
//	    ConsumerKey    string
//	    ConsumerSecret string
//	    Accounts       []Account // insertion order is preserved
//	    Active         int       // index into Accounts, meaningful when non-empty
//	    ColorScheme    ColorScheme
//	    Display        DisplayOptions
//	    Notifier       NotifierOptions
//	}
//
// Mutations that touch the account list ([Config.AddAccount],
// [Config.RemoveAccount], [Config.SetActive]) keep Active in range.
//
// # Status
//
// [Status] and [User] are the subset of the Fanfou JSON payloads the client
// reads. Timestamps are decoded from Fanfou's Ruby-style date format.
package model
