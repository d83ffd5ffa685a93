package fanfou

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/go-resty/resty/v2"
	"github.com/inovacc/nofan/internal/model"
)

// Authenticator exchanges a username and password for an access token.
type Authenticator struct {
	http     *resty.Client
	oauthURL string
	logger   *slog.Logger
}

// NewAuthenticator creates an XAuth authenticator for the consumer.
func NewAuthenticator(consumer Consumer, opts ...Option) *Authenticator {
	o := buildOptions(opts)

	return &Authenticator{
		http:     newHTTP(o, consumer, model.OAuthToken{}),
		oauthURL: o.oauthURL,
		logger:   o.logger,
	}
}

// AccessToken performs the XAuth exchange.
func (a *Authenticator) AccessToken(ctx context.Context, username, password string) (model.OAuthToken, error) {
	endpoint := a.oauthURL + "/access_token"
	form := url.Values{
		"x_auth_username": {username},
		"x_auth_password": {password},
		"x_auth_mode":     {"client_auth"},
	}

	resp, err := a.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(endpoint)
	if err != nil {
		return model.OAuthToken{}, fmt.Errorf("access token request: %w", err)
	}

	a.logger.Debug("xauth response", "status", resp.StatusCode())

	if err := mapHTTPError(resp); err != nil {
		return model.OAuthToken{}, err
	}

	values, err := url.ParseQuery(string(resp.Body()))
	if err != nil {
		return model.OAuthToken{}, fmt.Errorf("parse access token: %w", err)
	}

	token := model.OAuthToken{
		Token:  values.Get("oauth_token"),
		Secret: values.Get("oauth_token_secret"),
	}

	if token.Token == "" || token.Secret == "" {
		return model.OAuthToken{}, errors.New("parse access token: missing oauth_token in response")
	}

	return token, nil
}
