package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/notifier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayOptions(t *testing.T) {
	tests := []struct {
		name  string
		flags intent.Display
		cfg   model.DisplayOptions
		time  bool
		photo bool
	}{
		{"defaults", intent.Display{}, model.DisplayOptions{ShowPhotoTag: true}, false, true},
		{"time flag", intent.Display{TimeAgo: true}, model.DisplayOptions{ShowPhotoTag: true}, true, true},
		{"time from config", intent.Display{}, model.DisplayOptions{ShowTimeAgo: true}, true, false},
		{"no photo tag flag", intent.Display{NoPhotoTag: true}, model.DisplayOptions{ShowPhotoTag: true}, false, false},
		{"photo tag off in config", intent.Display{}, model.DisplayOptions{}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayOptions(tt.flags, tt.cfg)
			assert.Equal(t, tt.time, got.TimeAgo)
			assert.Equal(t, tt.photo, got.PhotoTag)
		})
	}
}

func TestTimeline(t *testing.T) {
	kinds := map[intent.TimelineKind]string{
		intent.Home:     "home",
		intent.Mentions: "mentions",
		intent.Me:       "me",
		intent.Public:   "public",
	}

	for kind, call := range kinds {
		t.Run(call, func(t *testing.T) {
			app := newTestApp(loggedIn("alice"))
			app.api.client.statuses = []model.Status{{ID: "1", Text: "hello", User: model.User{Name: "bob"}}}

			err := app.Timeline(context.Background(), intent.Timeline{Kind: kind, Count: 3})
			require.NoError(t, err)

			assert.Equal(t, []string{call}, app.api.client.calls)
			assert.Equal(t, 3, app.api.client.queries[0].Count)
			assert.Equal(t, "alice-t", app.api.client.token.Token)
			assert.Contains(t, app.out.String(), "hello")
			assert.Equal(t, "Fetching", app.lastIndicator().text)
			assert.Equal(t, "stop", app.lastIndicator().result)
		})
	}
}

func TestTimeline_NotLoggedIn(t *testing.T) {
	app := newTestApp(nil)

	err := app.Timeline(context.Background(), intent.Timeline{Kind: intent.Home})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.True(t, IsReported(err))
	assert.Equal(t, "fail", app.lastIndicator().result)
	assert.Empty(t, app.api.client.calls)
}

func TestTimeline_APIError(t *testing.T) {
	app := newTestApp(loggedIn("alice"))
	app.api.client.err = errBoom

	err := app.Timeline(context.Background(), intent.Timeline{Kind: intent.Mentions})
	require.ErrorIs(t, err, errBoom)
	assert.True(t, IsReported(err))
	assert.Equal(t, "fail", app.lastIndicator().result)
	assert.Equal(t, "boom", app.lastIndicator().msg)
}

func TestPost(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	err := app.Post(context.Background(), intent.Post{Text: "foo bar"})
	require.NoError(t, err)
	assert.Equal(t, []string{"foo bar"}, app.api.client.posted)
	assert.Equal(t, "Sending", app.lastIndicator().text)
	assert.Equal(t, "succeed", app.lastIndicator().result)
	assert.Contains(t, app.out.String(), "foo bar")
}

func TestPost_Photo(t *testing.T) {
	photo := filepath.Join(t.TempDir(), "pic.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg"), 0o600))

	app := newTestApp(loggedIn("alice"))

	err := app.Post(context.Background(), intent.Post{Text: "caption", PhotoPath: photo})
	require.NoError(t, err)
	assert.Equal(t, []string{"upload"}, app.api.client.calls)
	assert.Equal(t, []string{photo}, app.api.client.uploaded)
}

func TestPost_MissingPhoto(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	err := app.Post(context.Background(), intent.Post{Text: "caption", PhotoPath: "/does/not/exist.jpg"})
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, app.api.client.calls)
	assert.Equal(t, "fail", app.lastIndicator().result)
}

func TestUndo(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	require.NoError(t, app.Undo(context.Background()))
	assert.Equal(t, []string{"undo"}, app.api.client.calls)
	assert.Equal(t, "Deleting", app.lastIndicator().text)
	assert.Contains(t, app.out.String(), "oops")
}

func TestLogin(t *testing.T) {
	app := newTestApp(loggedIn("bob"))
	app.prompt.inputs["Username"] = "alice@example.com"
	app.prompt.password = "secret"

	require.NoError(t, app.Login(context.Background(), intent.Login{}))

	assert.Equal(t, []string{"alice@example.com"}, app.api.auth.users)
	assert.Equal(t, []string{"verify"}, app.api.client.calls)
	assert.Equal(t, "new-t", app.api.client.token.Token)
	assert.Equal(t, model.Consumer{Key: "ck", Secret: "cs"}, app.api.consumers[0])

	cfg := app.store.cfg
	require.Len(t, cfg.Accounts, 2)
	assert.Equal(t, 1, cfg.Active)
	assert.Equal(t, "alice", cfg.Accounts[1].ID)
	assert.Equal(t, "Alice", cfg.Accounts[1].Username)
	assert.Equal(t, "succeed", app.lastIndicator().result)
	assert.Contains(t, app.lastIndicator().msg, "Alice")
}

func TestLogin_ReplacesExistingAccount(t *testing.T) {
	cfg := loggedIn("alice", "bob")
	cfg.Active = 1
	app := newTestApp(cfg)

	require.NoError(t, app.Login(context.Background(), intent.Login{Username: "alice", Password: "pw"}))

	require.Len(t, app.store.cfg.Accounts, 2)
	assert.Equal(t, 0, app.store.cfg.Active)
	assert.Equal(t, "new-t", app.store.cfg.Accounts[0].Token.Token)
	assert.Empty(t, app.prompt.asked)
}

func TestLogin_MissingConfigRunsSetup(t *testing.T) {
	app := newTestApp(nil)
	app.prompt.form = []string{"key", "secret"}

	require.NoError(t, app.Login(context.Background(), intent.Login{Username: "alice", Password: "pw"}))

	require.Len(t, app.prompt.forms, 1)
	assert.Equal(t, "key", app.store.cfg.ConsumerKey)
	assert.Equal(t, "secret", app.store.cfg.ConsumerSecret)
	assert.Len(t, app.store.cfg.Accounts, 1)
}

func TestLogin_AuthFailureKeepsConfig(t *testing.T) {
	app := newTestApp(loggedIn("bob"))
	app.api.auth.err = errBoom

	err := app.Login(context.Background(), intent.Login{Username: "alice", Password: "pw"})
	require.ErrorIs(t, err, errBoom)
	assert.True(t, IsReported(err))
	assert.Len(t, app.store.cfg.Accounts, 1)
	assert.Zero(t, app.store.saves)
}

func TestLogout(t *testing.T) {
	cfg := loggedIn("alice", "bob", "carol")
	cfg.Active = 1
	app := newTestApp(cfg)

	require.NoError(t, app.Logout(context.Background()))

	require.Len(t, app.store.cfg.Accounts, 2)
	assert.Equal(t, "carol", app.store.cfg.Accounts[app.store.cfg.Active].ID)
	assert.Contains(t, app.out.String(), "Logged out bob-name")
	assert.Contains(t, app.out.String(), "carol-name")
}

func TestLogout_LastAccount(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	require.NoError(t, app.Logout(context.Background()))
	assert.Empty(t, app.store.cfg.Accounts)
	assert.Equal(t, 0, app.store.cfg.Active)

	assert.ErrorIs(t, app.Logout(context.Background()), ErrNotLoggedIn)
}

func TestSwitchHandler(t *testing.T) {
	app := newTestApp(loggedIn("alice", "bob"))

	require.NoError(t, app.Switch(context.Background(), intent.Switch{ID: "bob"}))
	assert.Contains(t, app.out.String(), "Switched to bob-name")

	app.out.Reset()
	app.prompt.chooseErr = ErrCancelled

	require.NoError(t, app.Switch(context.Background(), intent.Switch{}))
	assert.Empty(t, app.out.String())
}

func TestConfig_SetCredentials(t *testing.T) {
	app := newTestApp(nil)

	require.NoError(t, app.Config(context.Background(), intent.Config{Key: "k", Secret: "s"}))
	assert.Equal(t, "k", app.store.cfg.ConsumerKey)
	assert.Equal(t, "s", app.store.cfg.ConsumerSecret)
	assert.Empty(t, app.prompt.forms)
	assert.Contains(t, app.out.String(), "Config saved")
}

func TestConfig_PromptsForMissing(t *testing.T) {
	app := newTestApp(loggedIn("alice"))
	app.prompt.form = []string{"k2", "cs"}

	require.NoError(t, app.Config(context.Background(), intent.Config{Key: "k2"}))
	require.Len(t, app.prompt.forms, 1)
	assert.Equal(t, "k2", app.prompt.forms[0][0].Value)
	assert.Equal(t, "cs", app.prompt.forms[0][1].Value)
	assert.Equal(t, "k2", app.store.cfg.ConsumerKey)
}

func TestConfig_EmptyIsUsageError(t *testing.T) {
	app := newTestApp(nil)
	app.prompt.form = []string{"", ""}

	err := app.Config(context.Background(), intent.Config{})
	assert.True(t, IsUsage(err))
	require.ErrorIs(t, err, ErrNoConsumer)
	assert.Nil(t, app.store.cfg)
}

func TestConfig_ShowAll(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	require.NoError(t, app.Config(context.Background(), intent.Config{ShowAll: true}))
	assert.Contains(t, app.out.String(), "consumer_key")
	assert.NotContains(t, app.out.String(), "alice-t")
}

func TestColors(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	values := make([]string, len(model.StyleNames()))
	for i := range values {
		values[i] = "red"
	}

	app.prompt.form = values

	require.NoError(t, app.Colors(context.Background()))
	assert.Equal(t, "red", app.store.cfg.ColorScheme[model.StyleLink])
	assert.Len(t, app.prompt.forms[0], len(model.StyleNames()))
}

func TestColors_InvalidToken(t *testing.T) {
	app := newTestApp(loggedIn("alice"))

	values := make([]string, len(model.StyleNames()))
	values[0] = "notacolor"
	app.prompt.form = values

	err := app.Colors(context.Background())
	assert.True(t, IsUsage(err))
	assert.Zero(t, app.store.saves)
}

func TestNotifierHandler(t *testing.T) {
	ops := []intent.NotifierOp{
		intent.NotifierStart,
		intent.NotifierStop,
		intent.NotifierRestart,
		intent.NotifierDelete,
	}

	for _, op := range ops {
		t.Run(string(op), func(t *testing.T) {
			app := newTestApp(loggedIn("alice"))

			require.NoError(t, app.Notifier(context.Background(), intent.Notifier{Op: op}))
			assert.Equal(t, []intent.NotifierOp{op}, app.manager.ops)
			assert.Equal(t, "Setting Notifier", app.lastIndicator().text)
			assert.Equal(t, "succeed", app.lastIndicator().result)
		})
	}
}

func TestNotifierHandler_StartNeedsAccount(t *testing.T) {
	app := newTestApp(nil)

	err := app.Notifier(context.Background(), intent.Notifier{Op: intent.NotifierStart})
	require.ErrorIs(t, err, ErrNotLoggedIn)
	assert.Empty(t, app.manager.ops)

	// stop and delete work without an account
	require.NoError(t, app.Notifier(context.Background(), intent.Notifier{Op: intent.NotifierStop}))
}

func TestNotifierHandler_Failure(t *testing.T) {
	app := newTestApp(loggedIn("alice"))
	app.manager.err = &notifier.UnavailableError{Supervisor: "service", Hint: "try NOFAN_SUPERVISOR=detached"}

	err := app.Notifier(context.Background(), intent.Notifier{Op: intent.NotifierStart})

	var unavailable *notifier.UnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.True(t, IsReported(err))
	assert.Equal(t, "fail", app.lastIndicator().result)
	assert.Contains(t, app.lastIndicator().msg, "NOFAN_SUPERVISOR")
}

func TestRunNotifier(t *testing.T) {
	app := newTestApp(loggedIn("alice"))
	assert.Error(t, app.RunNotifier(context.Background()))

	ran := false
	app.Daemon = func(context.Context) error {
		ran = true
		return nil
	}

	require.NoError(t, app.RunNotifier(context.Background()))
	assert.True(t, ran)
}
