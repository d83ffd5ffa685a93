package cmd

import (
	"strconv"

	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/intent"
	"github.com/spf13/cobra"
)

func (r *router) configCommand() *cobra.Command {
	var all bool

	c := &cobra.Command{
		Use:   "config [consumer_key] [consumer_secret]",
		Short: "Config consumer key and consumer secret",
		Long: `Store the consumer key and secret of your fanfou application.

Missing values are asked for. With --all the whole config is printed with
secrets masked.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			in := intent.Config{ShowAll: all}
			if len(args) > 0 {
				in.Key = args[0]
			}

			if len(args) > 1 {
				in.Secret = args[1]
			}

			return r.set(in)
		},
	}

	c.Flags().BoolVarP(&all, "all", "a", false, "Show all config")

	return c
}

func (r *router) colorsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "colors",
		Aliases: []string{"color"},
		Short:   "Customize color style",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return r.set(intent.Colors{})
		},
	}
}

func (r *router) loginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login [username] [password]",
		Short: "Login nofan",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			var in intent.Login
			if len(args) > 0 {
				in.Username = args[0]
			}

			if len(args) > 1 {
				in.Password = args[1]
			}

			return r.set(in)
		},
	}
}

func (r *router) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout nofan",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return r.set(intent.Logout{})
		},
	}
}

func (r *router) switchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "switch [id]",
		Aliases: []string{"s"},
		Short:   "Switch account",
		Long:    "Switch the active account. Without an id the accounts are listed to choose from.",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			var in intent.Switch
			if len(args) == 1 {
				in.ID = args[0]
			}

			return r.set(in)
		},
	}
}

func (r *router) timelineCommand(kind intent.TimelineKind, aliases []string, short string) *cobra.Command {
	return &cobra.Command{
		Use:     kind.String() + " [count]",
		Aliases: aliases,
		Short:   short,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			in := intent.Timeline{Kind: kind, Display: r.display}

			if len(args) == 1 {
				count, err := parseCount(args[0])
				if err != nil {
					return err
				}

				in.Count = count
			}

			return r.set(in)
		},
	}
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, &core.UsageError{Message: "count must be a positive number, got " + strconv.Quote(s), Err: err}
	}

	return n, nil
}

func (r *router) undoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Delete last status",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return r.set(intent.Undo{})
		},
	}
}

func (r *router) notifierCommand() *cobra.Command {
	c := &cobra.Command{
		Use:     "notifier [start|stop|restart|delete]",
		Aliases: []string{"n"},
		Short:   "Nofan Notifier",
		Long: `Manage the background notifier that shows desktop notifications for
new mentions and home timeline statuses.

  start    start the notifier (default), a no-op when it already runs
  stop     stop the notifier
  restart  stop and start the notifier
  delete   stop and unregister the notifier and forget its state`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			token := ""
			if len(args) == 1 {
				token = args[0]
			}

			op, ok := intent.ParseNotifierOp(token)
			if !ok {
				return &core.UsageError{Message: "Invalid Notifier command"}
			}

			return r.set(intent.Notifier{Op: op})
		},
	}

	c.AddCommand(&cobra.Command{
		Use:    "run",
		Short:  "Run the notifier in the foreground",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return r.set(intent.NotifierRun{})
		},
	})

	return c
}
