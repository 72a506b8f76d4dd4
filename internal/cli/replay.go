package cli

import (
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/brunoga/fieldarray"
)

var (
	replayFormat  string
	replayClone   string
	replayVerbose bool
	replayDump    bool
)

var (
	opColor   = color.New(color.FgCyan, color.Bold)
	pathColor = color.New(color.FgBlue)
	oldColor  = color.New(color.FgRed)
	newColor  = color.New(color.FgGreen)
	keysColor = color.New(color.FgHiBlack)
)

var replayCmd = &cobra.Command{
	Use:   "replay <script>",
	Short: "Apply the operations of a script and print what they changed",
	Long: `Replay loads a YAML, JSON or TOML script, binds a field array controller to
its path and applies every step in order.

Supported ops: push, prepend, insert, remove, swap, move, update, replace,
set (write the array without the controller), flush and reset.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		script, err := LoadScript(args[0])
		if err != nil {
			return err
		}

		logger := zap.NewNop()
		if replayVerbose {
			if logger, err = zap.NewDevelopment(); err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
		}

		report, err := Run(script, logger, fieldarray.CloneStrategy(replayClone), replayVerbose)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch replayFormat {
		case "yaml":
			if err := writeYAML(out, report); err != nil {
				return err
			}
		case "text":
			writeText(out, report)
		default:
			return fmt.Errorf("unknown format %q", replayFormat)
		}

		if replayDump {
			spew.Fdump(out, report.Values)
		}
		return nil
	},
}

func init() {
	replayCmd.Flags().StringVarP(&replayFormat, "format", "f", "yaml", "output format (yaml or text)")
	replayCmd.Flags().StringVar(&replayClone, "clone", string(fieldarray.CloneGoClone), "deep copy strategy (go-clone, copystructure or deepcopy)")
	replayCmd.Flags().BoolVarP(&replayVerbose, "verbose", "v", false, "log diagnostics to stderr")
	replayCmd.Flags().BoolVar(&replayDump, "dump", false, "dump the final values with go-spew")
}

func writeYAML(w io.Writer, report *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}

func writeText(w io.Writer, report *Report) {
	for i, step := range report.Steps {
		_, _ = opColor.Fprintf(w, "%d %s", i, step.Op)
		_, _ = keysColor.Fprintf(w, " keys=%v\n", step.Keys)
		for _, change := range step.Changes {
			_, _ = pathColor.Fprintf(w, "  %s ", change.Path)
			_, _ = oldColor.Fprintf(w, "%v", change.OldValue)
			fmt.Fprint(w, " -> ")
			_, _ = newColor.Fprintf(w, "%v\n", change.NewValue)
		}
	}
}
