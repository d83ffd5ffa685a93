package notifier

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_StopsWithParentContext(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())

	exited := make(chan error, 1)
	prg := &program{
		parent: parent,
		runner: RunnerFunc(func(ctx context.Context) error {
			<-ctx.Done()
			exited <- ctx.Err()

			return ctx.Err()
		}),
		logger: slog.New(slog.DiscardHandler),
	}

	require.NoError(t, prg.Start(nil))

	cancel()

	select {
	case err := <-exited:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not see the parent cancellation")
	}

	assert.NoError(t, prg.Stop(nil), "a canceled runner is a clean exit")
}

func TestProgram_StopReturnsRunnerError(t *testing.T) {
	boom := errors.New("auth revoked")

	prg := &program{
		parent: context.Background(),
		runner: RunnerFunc(func(context.Context) error { return boom }),
		logger: slog.New(slog.DiscardHandler),
	}

	require.NoError(t, prg.Start(nil))
	require.ErrorIs(t, prg.Stop(nil), boom)
}
