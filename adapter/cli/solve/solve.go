// Package solve implements the "solve" subcommand: read a request as
// JSON, run it through the solve command handler, and print the result.
package solve

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilgorjn/patient-scheduling/adapter/cli"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application"
	"github.com/kilgorjn/patient-scheduling/internal/scheduling/application/commands"
)

var (
	inputFile string
	pretty    bool
)

var Cmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve a clinic visit schedule",
	Long: `Reads a schedule request as JSON (from --file or stdin) and prints
the solved schedule. By default the response is printed as JSON; pass
--pretty for a human-readable table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		handler := cli.Handler()
		if handler == nil {
			return fmt.Errorf("solve: command handler not wired")
		}

		raw, err := readInput(inputFile)
		if err != nil {
			return fmt.Errorf("solve: read input: %w", err)
		}

		var req application.SolveRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("solve: decode request: %w", err)
		}

		resp, err := handler.Handle(cmd.Context(), commands.SolveScheduleCommand{Request: req})
		if err != nil {
			return fmt.Errorf("solve: %w", err)
		}

		if pretty {
			return printTable(cmd.OutOrStdout(), resp)
		}
		return printJSON(cmd.OutOrStdout(), resp)
	},
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "file", "f", "", "path to a JSON request file (defaults to stdin)")
	Cmd.Flags().BoolVar(&pretty, "pretty", false, "print a human-readable table instead of JSON")
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func printJSON(w io.Writer, resp application.SolveResponse) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}

func printTable(w io.Writer, resp application.SolveResponse) error {
	fmt.Fprintf(w, "status: %s\n", resp.Status)
	if resp.Message != "" {
		fmt.Fprintf(w, "message: %s\n", resp.Message)
	}
	if resp.Objective != nil {
		fmt.Fprintf(w, "objective: %d\n", *resp.Objective)
	}
	fmt.Fprintf(w, "solve time: %dms\n", resp.SolveTimeMs)

	if len(resp.Slots) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATIENT\tSLOT\tSCHEDULABLE\tPINNED")
	for _, s := range resp.Slots {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", s.PatientName, s.TimeSlot, s.SchedulableID, s.Pinned)
	}
	return tw.Flush()
}
