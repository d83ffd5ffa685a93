package notifier

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProcesses plays both launcher and process table.
type fakeProcesses struct {
	nextPID int
	running map[int]bool

	// ignoreTerm keeps a process alive after a graceful terminate
	ignoreTerm bool

	Launched []ServiceConfig
	Signals  []string
}

func newFakeProcesses() *fakeProcesses {
	return &fakeProcesses{nextPID: 4242, running: map[int]bool{}}
}

func (f *fakeProcesses) Launch(cfg ServiceConfig, _ string) (int, error) {
	f.Launched = append(f.Launched, cfg)
	pid := f.nextPID
	f.nextPID++
	f.running[pid] = true

	return pid, nil
}

func (f *fakeProcesses) alive(pid int) bool {
	return f.running[pid]
}

func (f *fakeProcesses) terminate(pid int, force bool) error {
	if force {
		f.Signals = append(f.Signals, "kill")
		delete(f.running, pid)

		return nil
	}

	f.Signals = append(f.Signals, "term")
	if !f.ignoreTerm {
		delete(f.running, pid)
	}

	return nil
}

func newTestDetached(t *testing.T, procs *fakeProcesses) *DetachedSupervisor {
	t.Helper()

	dir := t.TempDir()
	cfg := ServiceConfig{Executable: "/usr/bin/nofan", Arguments: []string{"notifier", "run"}}

	return NewDetachedSupervisor(
		filepath.Join(dir, "notifier.json"),
		filepath.Join(dir, "notifier.log"),
		cfg,
		WithLauncher(procs),
		WithProcessControl(procs.alive, procs.terminate),
		WithStopTimeout(50*time.Millisecond),
	)
}

func TestDetached_Lifecycle(t *testing.T) {
	ctx := context.Background()
	procs := newFakeProcesses()
	d := newTestDetached(t, procs)

	state, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateNotRegistered, state)

	require.ErrorIs(t, d.Start(ctx), ErrNotRegistered)

	require.NoError(t, d.Register(ctx))

	state, err = d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, state)

	require.NoError(t, d.Start(ctx))

	state, err = d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, state)

	reg, err := d.load()
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Equal(t, 4242, reg.PID)
	assert.False(t, reg.StartedAt.IsZero())

	require.Len(t, procs.Launched, 1)
	assert.Equal(t, []string{"notifier", "run"}, procs.Launched[0].Arguments)

	require.NoError(t, d.Stop(ctx))

	state, err = d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, state)
	assert.Equal(t, []string{"term"}, procs.Signals)

	require.NoError(t, d.Deregister(ctx))

	state, err = d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateNotRegistered, state)
}

func TestDetached_StartWhileRunningDoesNotRelaunch(t *testing.T) {
	ctx := context.Background()
	procs := newFakeProcesses()
	d := newTestDetached(t, procs)

	require.NoError(t, d.Register(ctx))
	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Start(ctx))

	assert.Len(t, procs.Launched, 1)
}

func TestDetached_StalePIDIsStopped(t *testing.T) {
	ctx := context.Background()
	procs := newFakeProcesses()
	d := newTestDetached(t, procs)

	require.NoError(t, d.Register(ctx))
	require.NoError(t, d.Start(ctx))

	// the daemon crashed
	procs.running = map[int]bool{}

	state, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, state)

	require.NoError(t, d.Stop(ctx))
	assert.Empty(t, procs.Signals)
}

func TestDetached_StopKillsAfterTimeout(t *testing.T) {
	ctx := context.Background()
	procs := newFakeProcesses()
	procs.ignoreTerm = true
	d := newTestDetached(t, procs)

	require.NoError(t, d.Register(ctx))
	require.NoError(t, d.Start(ctx))
	require.NoError(t, d.Stop(ctx))

	assert.Equal(t, []string{"term", "kill"}, procs.Signals)

	state, err := d.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateStopped, state)
}

func TestDetached_WithManager(t *testing.T) {
	ctx := context.Background()
	procs := newFakeProcesses()
	d := newTestDetached(t, procs)
	m := NewManager(d)

	res, err := m.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateNotRegistered, res.Before)
	assert.Equal(t, StateRunning, res.After)

	res, err = m.Start(ctx)
	require.NoError(t, err)
	assert.False(t, res.Changed)

	res, err = m.Delete(ctx)
	require.NoError(t, err)
	assert.Equal(t, StateNotRegistered, res.After)
	assert.Len(t, procs.Launched, 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "not registered", StateNotRegistered.String())
	assert.Equal(t, "unknown", StateUnknown.String())
	assert.True(t, StateStopped.Registered())
	assert.False(t, StateNotRegistered.Registered())
}
