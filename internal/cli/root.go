package cli

import (
	"github.com/spf13/cobra"
)

// rootCmd is the root command for fieldarray.
var rootCmd = &cobra.Command{
	Use:     "fieldarray",
	Version: "dev",
	Short:   "Replay field array operations against an in-memory form",
	Long: `fieldarray drives a field array controller from a script.

Each step reports the changes the controller emitted and the entry keys
after the step, so reorders and external writes can be inspected.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func Execute() error {
	return rootCmd.Execute()
}
