package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rezmoss/taskit/internal/command"
	"github.com/rezmoss/taskit/internal/config"
	"github.com/rezmoss/taskit/internal/dashboard"
	"github.com/rezmoss/taskit/internal/journal"
	"github.com/rezmoss/taskit/internal/logging"
	"github.com/rezmoss/taskit/internal/prompt"
	"github.com/rezmoss/taskit/internal/store"
)

var saveFile string

// app is what every subcommand needs once the store has been opened.
type app struct {
	cfg    config.Config
	logger *logging.Logger
	file   *store.File
	data   journal.SaveData
	term   *prompt.Terminal
}

var current *app

func main() {
	rootCmd := &cobra.Command{
		Use:           "taskit",
		Short:         "Keep a journal of where your time goes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := setup(cmd)
			if err != nil {
				return err
			}
			current = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if current != nil {
				current.logger.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&saveFile, "file", "", "save file path (default is save.json in the data directory)")

	rootCmd.AddCommand(recordCmd())
	rootCmd.AddCommand(stopwatchCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(amendCmd())
	rootCmd.AddCommand(archiveCmd())
	rootCmd.AddCommand(tagCmd())
	rootCmd.AddCommand(noteCmd())
	rootCmd.AddCommand(renameCmd())

	if err := rootCmd.Execute(); err != nil {
		if current != nil {
			current.logger.Printf("command failed: %v", err)
			current.logger.Close()
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// setup loads the config, opens the log and loads the store, upgrading it
// on disk when it was written by an older version.
func setup(cmd *cobra.Command) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if saveFile != "" {
		cfg.UseSaveFile(saveFile)
	}
	created, err := cfg.EnsureDataDir()
	if err != nil {
		return nil, err
	}
	if created {
		cmd.PrintErrln("data directory does not exist. created", cfg.DataDir)
	}

	logger := logging.New(cfg)
	logger.Printf("taskit %s, save file %s", cmd.Name(), cfg.SaveFile)

	file := store.New(cfg.SaveFile, logger.Logger)
	data, err := file.Open()
	if err != nil {
		logger.Printf("open failed: %v", err)
		logger.Close()
		return nil, err
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		file:   file,
		data:   data,
		term:   prompt.NewTerminal(),
	}, nil
}

// commit persists the deltas a flow produced. A cancelled prompt aborts the
// command without writing anything.
func (a *app) commit(cmd *cobra.Command, deltas []journal.Delta, err error) error {
	if errors.Is(err, prompt.ErrCancelled) {
		a.logger.Printf("%s cancelled", cmd.Name())
		cmd.PrintErrln("Cancelled, nothing saved.")
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := a.file.Commit(deltas); err != nil {
		return err
	}
	return nil
}

// flowCmd builds a subcommand that runs an interactive flow and commits
// its deltas.
func flowCmd(use, short string, aliases []string, flow func(a *app) ([]journal.Delta, error)) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Aliases: aliases,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			deltas, err := flow(current)
			return current.commit(cmd, deltas, err)
		},
	}
}

func recordCmd() *cobra.Command {
	return flowCmd("record", "Add a new event, entering all of its fields", []string{"add"},
		func(a *app) ([]journal.Delta, error) {
			return command.Record(a.data, a.term)
		})
}

func stopwatchCmd() *cobra.Command {
	return flowCmd("stopwatch", "Time an activity and record it once stopped", []string{"time", "start"},
		func(a *app) ([]journal.Delta, error) {
			return command.Stopwatch(a.data, a.term, time.Now)
		})
}

func tagCmd() *cobra.Command {
	return flowCmd("tag", "Tag a category for larger aggregation", nil,
		func(a *app) ([]journal.Delta, error) {
			return command.Tag(a.data, a.term)
		})
}

func noteCmd() *cobra.Command {
	return flowCmd("note", "Write the note of a day", nil,
		func(a *app) ([]journal.Delta, error) {
			return command.Note(a.data, a.term)
		})
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Short:   "Browse and filter recorded time",
		Aliases: []string{"list"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return dashboard.Run(current.data, current.term, tea.WithAltScreen())
		},
	}
}

func amendCmd() *cobra.Command {
	var latest bool

	cmd := &cobra.Command{
		Use:   "amend",
		Short: "Modify a previously recorded event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				deltas []journal.Delta
				err    error
			)
			if latest {
				deltas, err = command.AmendAt(current.data, current.term, 0)
			} else {
				deltas, err = command.Amend(current.data, current.term)
			}
			return current.commit(cmd, deltas, err)
		},
	}

	cmd.Flags().BoolVar(&latest, "latest", false, "amend the most recently recorded event")
	return cmd
}

func archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [category]",
		Short: "Archive a category so no new events use it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deltas, err := command.Archive(current.data, args[0])
			return current.commit(cmd, deltas, err)
		},
	}
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename [old] [new]",
		Short: "Rename a category everywhere it is used",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deltas, err := command.Rename(current.data, args[0], args[1])
			return current.commit(cmd, deltas, err)
		},
	}
}
