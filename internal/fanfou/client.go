// Package fanfou is a small client for the Fanfou REST API.
//
// Only the endpoints nofan needs are covered. Requests are signed with
// OAuth 1.0a HMAC-SHA1; access tokens are obtained through XAuth, see
// [Authenticator].
package fanfou

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/inovacc/nofan/internal/application"
	"github.com/inovacc/nofan/internal/model"
)

const (
	DefaultBaseURL  = "http://api.fanfou.com"
	DefaultOAuthURL = "http://fanfou.com/oauth"

	defaultTimeout = 30 * time.Second
)

type options struct {
	baseURL  string
	oauthURL string
	timeout  time.Duration
	logger   *slog.Logger
}

// Option configures a Client or Authenticator.
type Option func(*options)

// WithBaseURL overrides the REST base URL.
func WithBaseURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithOAuthURL overrides the OAuth base URL.
func WithOAuthURL(u string) Option {
	return func(o *options) {
		if u != "" {
			o.oauthURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{
		baseURL:  DefaultBaseURL,
		oauthURL: DefaultOAuthURL,
		timeout:  defaultTimeout,
		logger:   slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func newHTTP(o options, consumer Consumer, token model.OAuthToken) *resty.Client {
	return resty.NewWithClient(signedHTTP(consumer, token)).
		SetTimeout(o.timeout).
		SetHeader("User-Agent", application.AppName+"/"+application.Version)
}

// Client calls the REST API on behalf of one account.
type Client struct {
	http    *resty.Client
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a client for the account identified by token.
func NewClient(consumer Consumer, token model.OAuthToken, opts ...Option) *Client {
	o := buildOptions(opts)

	return &Client{
		http:    newHTTP(o, consumer, token),
		baseURL: o.baseURL,
		logger:  o.logger,
	}
}

// VerifyCredentials returns the authenticated user.
func (c *Client) VerifyCredentials(ctx context.Context) (model.User, error) {
	var user model.User
	err := c.get(ctx, "/account/verify_credentials.json", nil, &user)

	return user, err
}

// HomeTimeline returns the home timeline.
func (c *Client) HomeTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.timeline(ctx, "/statuses/home_timeline.json", q)
}

// Mentions returns statuses mentioning the user.
func (c *Client) Mentions(ctx context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.timeline(ctx, "/statuses/mentions.json", q)
}

// UserTimeline returns the authenticated user's own statuses.
func (c *Client) UserTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.timeline(ctx, "/statuses/user_timeline.json", q)
}

// PublicTimeline returns the public timeline.
func (c *Client) PublicTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.timeline(ctx, "/statuses/public_timeline.json", q)
}

// PostStatus publishes a text status.
func (c *Client) PostStatus(ctx context.Context, text string) (model.Status, error) {
	var status model.Status
	err := c.postForm(ctx, "/statuses/update.json", url.Values{"status": {text}}, &status)

	return status, err
}

// UploadPhoto publishes a photo read from path with text as its caption.
func (c *Client) UploadPhoto(ctx context.Context, path, text string) (model.Status, error) {
	endpoint := c.baseURL + "/photos/upload.json"

	resp, err := c.http.R().
		SetContext(ctx).
		SetFile("photo", path).
		SetMultipartFormData(map[string]string{"status": text}).
		Post(endpoint)
	if err != nil {
		return model.Status{}, fmt.Errorf("upload photo: %w", err)
	}

	var status model.Status
	if err := c.decode(resp, &status); err != nil {
		return model.Status{}, err
	}

	return status, nil
}

// DeleteStatus deletes the status with the given id.
func (c *Client) DeleteStatus(ctx context.Context, id string) (model.Status, error) {
	var status model.Status
	err := c.postForm(ctx, "/statuses/destroy.json", url.Values{"id": {id}}, &status)

	return status, err
}

// DeleteLastStatus deletes the user's most recent status and returns it.
func (c *Client) DeleteLastStatus(ctx context.Context) (model.Status, error) {
	statuses, err := c.UserTimeline(ctx, model.TimelineQuery{Count: 1})
	if err != nil {
		return model.Status{}, err
	}

	if len(statuses) == 0 {
		return model.Status{}, ErrNoStatus
	}

	return c.DeleteStatus(ctx, statuses[0].ID)
}

func (c *Client) timeline(ctx context.Context, path string, q model.TimelineQuery) ([]model.Status, error) {
	params := url.Values{}
	if q.Count > 0 {
		params.Set("count", strconv.Itoa(q.Count))
	}

	if q.SinceID != "" {
		params.Set("since_id", q.SinceID)
	}

	var statuses []model.Status
	if err := c.get(ctx, path, params, &statuses); err != nil {
		return nil, err
	}

	return statuses, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	endpoint := c.baseURL + path

	req := c.http.R().SetContext(ctx)

	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}

	return c.decode(resp, out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	endpoint := c.baseURL + path

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(form).
		Post(endpoint)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}

	return c.decode(resp, out)
}

func (c *Client) decode(resp *resty.Response, out any) error {
	c.logger.Debug("fanfou response",
		"method", resp.Request.Method,
		"url", resp.Request.URL,
		"status", resp.StatusCode(),
		"duration", resp.Time(),
	)

	if err := mapHTTPError(resp); err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
