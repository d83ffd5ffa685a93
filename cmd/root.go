package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/inovacc/nofan/internal/application"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/intent"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// router builds one command tree and records the intent its matched
// command produced. Flags are bound to the router, not to package state.
type router struct {
	result intent.Intent
	out    bytes.Buffer

	version bool
	display intent.Display
	photo   string
}

// Parse turns the argument vector (without the program name) into exactly
// one intent. It never performs side effects.
func Parse(args []string) (intent.Intent, error) {
	r := &router{}

	root := r.rootCommand()
	root.SetArgs(args)
	root.SetOut(&r.out)
	root.SetErr(io.Discard)

	if err := root.Execute(); err != nil {
		if core.IsUsage(err) {
			return nil, err
		}

		return nil, &core.UsageError{Err: err}
	}

	if r.result == nil {
		// cobra rendered help instead of running a command
		return intent.Help{Text: r.out.String()}, nil
	}

	return r.result, nil
}

// set records in, unless --version was given.
func (r *router) set(in intent.Intent) error {
	if r.version {
		r.result = intent.Version{}
		return nil
	}

	r.result = in

	return nil
}

func (r *router) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   application.AppName + " [status...]",
		Short: "A command-line client for fanfou",
		Long: `nofan reads and posts fanfou statuses from the terminal.

Words that are not a command are posted as a status. Without arguments the
home timeline is shown.

Examples:
  nofan                        # show the home timeline
  nofan hello fanfou           # post "hello fanfou"
  nofan look at this -p a.jpg  # post a photo with a caption
  nofan mentions 20            # show 20 mentions`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          r.runRoot,
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().BoolVarP(&r.version, "version", "v", false, "Output the version info")
	root.PersistentFlags().BoolVarP(&r.display.TimeAgo, "time", "t", false, "Show time ago tag")
	root.PersistentFlags().BoolVar(&r.display.NoPhotoTag, "no-photo-tag", false, "Hide photo tag")
	root.Flags().StringVarP(&r.photo, "photo", "p", "", "Attach a photo")

	root.AddCommand(
		r.configCommand(),
		r.colorsCommand(),
		r.loginCommand(),
		r.logoutCommand(),
		r.switchCommand(),
		r.timelineCommand(intent.Home, []string{"h"}, "Show home timeline"),
		r.timelineCommand(intent.Mentions, []string{"m"}, "Show mentions"),
		r.timelineCommand(intent.Me, nil, "Show my statuses"),
		r.timelineCommand(intent.Public, []string{"p"}, "Show public timeline"),
		r.undoCommand(),
		r.notifierCommand(),
	)

	return root
}

func (r *router) runRoot(_ *cobra.Command, args []string) error {
	if len(args) == 0 {
		if r.photo != "" {
			return core.Usagef("--photo needs a status text")
		}

		return r.set(intent.Timeline{Kind: intent.Home, Display: r.display})
	}

	return r.set(intent.Post{
		Text:      strings.Join(args, " "),
		PhotoPath: r.photo,
	})
}

// Execute runs nofan with the process arguments and exits.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}

// Run parses args, dispatches the intent and returns the exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	in, err := Parse(args)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\nRun '%s --help' for usage.\n", err, application.AppName)
		return ExitUsage
	}

	app, err := newApp(stdout, stderr)
	if err != nil {
		return exitCode(err, stderr)
	}

	return exitCode(Dispatch(ctx, app, in), stderr)
}

// exitCode maps err to an exit code, printing it unless the indicator
// already showed it.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}

	if !core.IsReported(err) {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}

	if core.IsUsage(err) {
		return ExitUsage
	}

	return ExitError
}
