package core

import (
	"bytes"
	"context"
	"errors"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/notifier"
)

// memStore is an in-memory ConfigStore. A nil cfg behaves like a missing
// config file.
type memStore struct {
	cfg   *model.Config
	saves int
}

func (m *memStore) Path() string { return "/tmp/nofan/config.json" }

func (m *memStore) Load() (*model.Config, error) {
	if m.cfg == nil {
		return nil, &ConfigMissingError{Path: m.Path()}
	}

	c := *m.cfg
	c.Accounts = append([]model.Account(nil), m.cfg.Accounts...)
	c.ColorScheme = m.cfg.ColorScheme.Clone()

	return &c, nil
}

func (m *memStore) LoadOrDefault() (*model.Config, error) {
	cfg, err := m.Load()
	if IsConfigMissing(err) {
		def := model.DefaultConfig()
		return &def, nil
	}

	return cfg, err
}

func (m *memStore) Update(fn func(cfg *model.Config) error) (*model.Config, error) {
	cfg, err := m.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	if err := fn(cfg); err != nil {
		return nil, err
	}

	m.cfg = cfg
	m.saves++

	return m.Load()
}

func (m *memStore) SetConsumerCredentials(key, secret string) (*model.Config, error) {
	return m.Update(func(cfg *model.Config) error {
		cfg.ConsumerKey, cfg.ConsumerSecret = key, secret
		return nil
	})
}

func (m *memStore) AddAccount(acc model.Account) (*model.Config, error) {
	return m.Update(func(cfg *model.Config) error {
		cfg.AddAccount(acc)
		return nil
	})
}

func (m *memStore) RemoveAccount(id string) (*model.Config, error) {
	return m.Update(func(cfg *model.Config) error {
		if err := cfg.RemoveAccount(id); err != nil {
			return &UnknownAccountError{ID: id}
		}

		return nil
	})
}

func (m *memStore) SetActive(id string) (*model.Config, error) {
	return m.Update(func(cfg *model.Config) error {
		if err := cfg.SetActive(id); err != nil {
			return &UnknownAccountError{ID: id}
		}

		return nil
	})
}

func loggedIn(ids ...string) *model.Config {
	cfg := model.DefaultConfig()
	cfg.ConsumerKey, cfg.ConsumerSecret = "ck", "cs"

	for _, id := range ids {
		cfg.AddAccount(model.Account{ID: id, Username: id + "-name", Token: model.OAuthToken{Token: id + "-t", Secret: id + "-s"}})
	}

	return &cfg
}

type fakeClient struct {
	token model.OAuthToken

	statuses []model.Status
	err      error
	calls    []string
	queries  []model.TimelineQuery
	posted   []string
	uploaded []string
}

func (c *fakeClient) record(name string, q model.TimelineQuery) ([]model.Status, error) {
	c.calls = append(c.calls, name)
	c.queries = append(c.queries, q)

	return c.statuses, c.err
}

func (c *fakeClient) VerifyCredentials(context.Context) (model.User, error) {
	c.calls = append(c.calls, "verify")
	if c.err != nil {
		return model.User{}, c.err
	}

	return model.User{ID: "alice", Name: "Alice"}, nil
}

func (c *fakeClient) PostStatus(_ context.Context, text string) (model.Status, error) {
	c.calls = append(c.calls, "post")
	c.posted = append(c.posted, text)

	return model.Status{ID: "s1", Text: text}, c.err
}

func (c *fakeClient) UploadPhoto(_ context.Context, path, text string) (model.Status, error) {
	c.calls = append(c.calls, "upload")
	c.uploaded = append(c.uploaded, path)

	return model.Status{ID: "s2", Text: text}, c.err
}

func (c *fakeClient) HomeTimeline(_ context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.record("home", q)
}

func (c *fakeClient) Mentions(_ context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.record("mentions", q)
}

func (c *fakeClient) UserTimeline(_ context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.record("me", q)
}

func (c *fakeClient) PublicTimeline(_ context.Context, q model.TimelineQuery) ([]model.Status, error) {
	return c.record("public", q)
}

func (c *fakeClient) DeleteLastStatus(context.Context) (model.Status, error) {
	c.calls = append(c.calls, "undo")
	return model.Status{ID: "s0", Text: "oops"}, c.err
}

type fakeAuth struct {
	err   error
	users []string
}

func (f *fakeAuth) AccessToken(_ context.Context, username, _ string) (model.OAuthToken, error) {
	f.users = append(f.users, username)
	if f.err != nil {
		return model.OAuthToken{}, f.err
	}

	return model.OAuthToken{Token: "new-t", Secret: "new-s"}, nil
}

type fakeAPI struct {
	client    *fakeClient
	auth      *fakeAuth
	consumers []model.Consumer
}

func (f *fakeAPI) NewClient(consumer model.Consumer, token model.OAuthToken) APIClient {
	f.consumers = append(f.consumers, consumer)
	f.client.token = token

	return f.client
}

func (f *fakeAPI) NewAuthenticator(consumer model.Consumer) Authenticator {
	f.consumers = append(f.consumers, consumer)
	return f.auth
}

type fakePrompt struct {
	choose    string
	chooseErr error
	inputs    map[string]string
	password  string
	form      []string
	formErr   error
	forms     [][]Field
	asked     []string
}

func (p *fakePrompt) ChooseAccount(_ []model.Account, _ int) (string, error) {
	p.asked = append(p.asked, "choose")
	return p.choose, p.chooseErr
}

func (p *fakePrompt) Input(label, def string) (string, error) {
	p.asked = append(p.asked, label)
	if v, ok := p.inputs[label]; ok {
		return v, nil
	}

	return def, nil
}

func (p *fakePrompt) Password(label string) (string, error) {
	p.asked = append(p.asked, label)
	return p.password, nil
}

func (p *fakePrompt) Form(_ string, fields []Field) ([]string, error) {
	p.forms = append(p.forms, fields)
	if p.formErr != nil {
		return nil, p.formErr
	}

	if p.form != nil {
		return p.form, nil
	}

	values := make([]string, len(fields))
	for i, f := range fields {
		values[i] = f.Value
	}

	return values, nil
}

// fakeIndicator records the first terminal call like the real spinner.
type fakeIndicator struct {
	text   string
	result string
	msg    string
}

func (f *fakeIndicator) end(result, msg string) {
	if f.result == "" {
		f.result, f.msg = result, msg
	}
}

func (f *fakeIndicator) Succeed(msg string) { f.end("succeed", msg) }
func (f *fakeIndicator) Fail(msg string)    { f.end("fail", msg) }
func (f *fakeIndicator) Stop()              { f.end("stop", "") }

type fakeManager struct {
	ops []intent.NotifierOp
	err error
}

func (m *fakeManager) Do(_ context.Context, op intent.NotifierOp) (notifier.Result, error) {
	m.ops = append(m.ops, op)
	if m.err != nil {
		return notifier.Result{}, m.err
	}

	return notifier.Result{Op: op, Before: notifier.StateStopped, After: notifier.StateRunning, Changed: true}, nil
}

type testApp struct {
	*App

	store      *memStore
	api        *fakeAPI
	prompt     *fakePrompt
	manager    *fakeManager
	indicators []*fakeIndicator
	out        *bytes.Buffer
}

func newTestApp(cfg *model.Config) *testApp {
	t := &testApp{
		store:   &memStore{cfg: cfg},
		api:     &fakeAPI{client: &fakeClient{}, auth: &fakeAuth{}},
		prompt:  &fakePrompt{inputs: map[string]string{}},
		manager: &fakeManager{},
		out:     &bytes.Buffer{},
	}

	t.App = &App{
		Store:  t.store,
		API:    t.api,
		Prompt: t.prompt,
		Manager: func(*model.Config) (NotifierManager, error) {
			return t.manager, nil
		},
		Indicate: func(text string) Indicator {
			ind := &fakeIndicator{text: text}
			t.indicators = append(t.indicators, ind)

			return ind
		},
		Out: t.out,
	}

	return t
}

func (t *testApp) lastIndicator() *fakeIndicator {
	if len(t.indicators) == 0 {
		return nil
	}

	return t.indicators[len(t.indicators)-1]
}

var errBoom = errors.New("boom")
