package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ZombieAlex/MFCLogger/internal/config"
	"github.com/ZombieAlex/MFCLogger/internal/logger"
	"github.com/ZombieAlex/MFCLogger/internal/mfc"
	"github.com/ZombieAlex/MFCLogger/internal/namedb"
	"github.com/ZombieAlex/MFCLogger/internal/replay"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Config  string
	Events  string
	NamesDB string
	LogDir  string

	// Rooms overrides the room client (for testing). Defaults to a
	// client that only logs the calls it would make.
	Rooms logger.RoomClient
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay an event log through the configured selectors",
		Long: `Run the logging engine over a recorded NDJSON event log.

Selectors come from the --config file. Pass "-" as --events to stream
from stdin. Flags fall back to MFCLOGGER_* environment variables
(loaded from .env when present).

Example:
  mfclogger run --config selectors.yaml --events session.ndjson
  mfclogger run --config selectors.yaml --events - --db names.db`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEngine(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Config, "config", "", "path to selector config YAML (required)")
	cmd.Flags().StringVar(&opts.Events, "events", "", "path to NDJSON event log, or - for stdin (required)")
	cmd.Flags().StringVar(&opts.NamesDB, "db", "", "SQLite path for identity reconciliation (overrides config)")
	cmd.Flags().StringVar(&opts.LogDir, "log-dir", "", "directory for per-destination files (overrides config)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("events")

	return cmd
}

// loggedRooms is the default room client: the engine has no live
// connection when replaying, so join/leave calls are only recorded in
// the diagnostic log.
type loggedRooms struct{}

func (loggedRooms) JoinRoom(uid int)  { slog.Debug("would join room", "uid", uid) }
func (loggedRooms) LeaveRoom(uid int) { slog.Debug("would leave room", "uid", uid) }

func runEngine(opts *RunOptions, cmd *cobra.Command) error {
	setupLogging(opts.Verbose)

	// .env supplies defaults for flags the caller omitted.
	_ = config.LoadEnv()
	if opts.NamesDB == "" {
		opts.NamesDB = config.Env("MFCLOGGER_DB", "")
	}
	if opts.LogDir == "" {
		opts.LogDir = config.Env("MFCLOGGER_LOG_DIR", "")
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load config", err)
	}
	selectors, err := cfg.Compile()
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid selector config", err)
	}
	slog.Info("config loaded", "selectors", len(selectors))

	logDir := cfg.LogDir
	if opts.LogDir != "" {
		logDir = opts.LogDir
	}
	namesPath := cfg.NamesDB
	if opts.NamesDB != "" {
		namesPath = opts.NamesDB
	}

	var names *namedb.DB
	if namesPath != "" {
		names, err = namedb.Open(namesPath)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open names database", err)
		}
		defer names.Close()
		slog.Info("identity reconciliation enabled", "path", namesPath)
	}

	rooms := opts.Rooms
	if rooms == nil {
		rooms = loggedRooms{}
	}

	feed := mfc.NewFeed()
	eng, err := logger.New(feed, rooms, selectors, logger.Options{
		Console: cmd.OutOrStdout(),
		Dir:     logDir,
		NameDB:  names,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to build logger", err)
	}
	defer eng.Close()

	var events io.ReadCloser
	if opts.Events == "-" {
		events = io.NopCloser(cmd.InOrStdin())
	} else {
		events, err = os.Open(opts.Events)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open event log", err)
		}
	}
	defer events.Close()

	slog.Info("replaying events", "source", opts.Events)
	n, err := replay.Stream(events, feed)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("replay stopped after %d events", n), err)
	}
	slog.Info("replay complete", "events", n)

	return nil
}

// setupLogging configures the process-wide slog handler. Diagnostics go
// to stderr so they never interleave with the console sink on stdout.
func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
