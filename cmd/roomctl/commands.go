package main

import (
	"chat-rooms/domain"
	"chat-rooms/repositories"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

// cli carries what every command needs once the configuration is read.
type cli struct {
	config Config
	log    *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "roomctl",
		Short: "Join, leave and remove chat rooms from a terminal",
		Long: `roomctl keeps a list of chat rooms and runs join, leave and remove
actions in the background, reporting failures as they happen.

Configuration is read from the environment and an optional .env file
(BADGER_FILEPATH is required).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			config, err := loadConfig()
			if err != nil {
				return err
			}
			c.config = config
			c.log = logs.GetLoggerFromString(config.LogLevel)
			return nil
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(c.newRunCmd(), c.newListCmd(), c.newHistoryCmd(), c.newInspectCmd())
	return root
}

func (c *cli) newRunCmd() *cobra.Command {
	var register bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the dispatcher and an interactive shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.run(cmd, register)
		},
	}
	cmd.Flags().BoolVar(&register, "register", true, "register the provider at start-up")
	return cmd
}

func (c *cli) run(cmd *cobra.Command, register bool) error {
	ctx := cmd.Context()
	out := &lockedWriter{w: cmd.OutOrStdout()}

	a, err := newApp(c.log, c.config, out)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.start(ctx); err != nil {
		return err
	}
	if register {
		a.provider.Register()
	}
	count, err := a.service.AutoJoin(ctx)
	if err != nil {
		c.log.Warn("Some chat rooms could not be auto-joined", "error", err)
	}
	if count > 0 {
		_, _ = fmt.Fprintln(out, a.localizer.Text("cli.autoJoined", count))
	}

	if c.config.HealthAddr != "" {
		health, err := startHealthServer(c.log, c.config.HealthAddr)
		if err != nil {
			return err
		}
		defer health.stop()
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- newShell(a, cmd.InOrStdin(), out).run(ctx)
	}()

	select {
	case <-ctx.Done():
		c.log.Info("Shutting down gracefully...")
		return nil
	case err := <-errChan:
		return err
	}
}

func (c *cli) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the tracked chat rooms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withReadOnlyDB(func(db *badger.DB) error {
				rooms, err := repositories.NewRoomRepository(db, c.log).List()
				if err != nil {
					return err
				}
				renderDiskRooms(cmd.OutOrStdout(), rooms)
				return nil
			})
		},
	}
}

func (c *cli) newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <room>",
		Short: "Print the last actions dispatched on a chat room, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withReadOnlyDB(func(db *badger.DB) error {
				outcomes, err := repositories.NewOutcomeRepository(db, c.log).Last(domain.NewRoomID(args[0]), limit)
				if err != nil {
					return err
				}
				renderOutcomes(cmd.OutOrStdout(), outcomes)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", historyLimit, "number of actions to print, 0 for all")
	return cmd
}

func (c *cli) newInspectCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the raw stored records as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withReadOnlyDB(func(db *badger.DB) error {
				records, err := repositories.Inspect(db, prefix)
				if err != nil {
					return err
				}
				renderRecords(cmd.OutOrStdout(), records)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "room:", `key prefix to scan ("room:", "outcome:", "" for all)`)
	return cmd
}

// withReadOnlyDB opens the database even while a running instance holds the lock.
func (c *cli) withReadOnlyDB(fn func(db *badger.DB) error) error {
	db, err := badger.Open(badger.DefaultOptions(c.config.BadgerFilepath).
		WithReadOnly(true).
		WithBypassLockGuard(true).
		WithLogger(repositories.NewBadgerLogger(c.log)).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() { _ = db.Close() }()
	return fn(db)
}

func execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
