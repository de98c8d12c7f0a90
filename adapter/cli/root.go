// Package cli is the cobra-based command-line surface: a single "solve"
// subcommand that reads a request and prints a response.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application/commands"
)

var (
	verbose bool
	logger  *slog.Logger
	handler *commands.SolveScheduleHandler
)

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

var rootCmd = &cobra.Command{
	Use:   "clinicsolve",
	Short: "Constraint-based clinic visit scheduler",
	Long: `clinicsolve assigns clinic visits to time-grid cells subject to
per-patient non-overlap and per-schedulable capacity, minimizing a
weighted objective of idle time, makespan, and priority preference.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if logger == nil {
			logger = slog.Default()
		}
		info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
		cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
		logger.Info("command start", "command", cmd.CommandPath(), "correlation_id", info.correlationID.String())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
		if !ok {
			return
		}
		logger.Info("command end",
			"command", cmd.CommandPath(),
			"correlation_id", info.correlationID.String(),
			"duration_ms", time.Since(info.startedAt).Milliseconds(),
		)
	},
}

// Execute runs the root command under ctx and exits the process on error.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// SetLogger sets the CLI logger used for command lifecycle events.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetHandler wires the solve command handler the solve subcommand invokes.
func SetHandler(h *commands.SolveScheduleHandler) {
	handler = h
}

// Handler returns the wired solve command handler, or nil if none was set.
func Handler() *commands.SolveScheduleHandler {
	return handler
}

// AddCommand registers a subcommand under the root command.
func AddCommand(cmd *cobra.Command) {
	rootCmd.AddCommand(cmd)
}
