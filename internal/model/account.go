package model

// OAuthToken is the access token pair issued by the XAuth exchange.
type OAuthToken struct {
	Token  string `json:"token"`
	Secret string `json:"secret"`
}

// Account represents a logged-in Fanfou account
type Account struct {
	// ID is the Fanfou user id, unique within Config.Accounts
	ID string `json:"id"`

	// Username is the display name reported by verify_credentials
	Username string `json:"username"`

	// Token holds the access credentials for this account
	Token OAuthToken `json:"token"`
}

// Consumer is the application's OAuth consumer key pair.
type Consumer struct {
	Key    string
	Secret string
}
