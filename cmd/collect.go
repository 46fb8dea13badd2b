package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

var collectIncludeFlag []string
var collectMarkerFlag string
var collectEngineFlag string
var collectParallelFlag int
var collectFileTimeoutFlag string
var collectStyleFlag string

// collectCmd represents the collect command.
var collectCmd = newCollectCmd()

func newCollectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "collect <commit-url>",
		Short:  "Collect property-based tests from one commit",
		Long:   collectLongDescription,
		Args:   cobra.ExactArgs(1),
		PreRun: bindFlags(collectFlagBindings()),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Collect(cmd.Context(), domain.CollectArgs{
				ScanArgs:  scanArgsFromConfig(),
				Reference: args[0],
				Output:    m.Path(viper.GetString(outputFlagName)),
				Cache:     m.Path(viper.GetString(cacheFlagName)),
				Style:     viper.GetString(styleConfigKey),
			})
		},
	}

	configureScanFlags(cmd, &collectIncludeFlag, &collectMarkerFlag, &collectEngineFlag, &collectParallelFlag)

	cmd.Flags().StringVar(&collectFileTimeoutFlag, fileTimeoutFlagName, viper.GetString(fileTimeoutKey), "time budget for extracting one file")

	cmd.Flags().StringVar(&collectStyleFlag, styleFlagName, viper.GetString(styleConfigKey), "syntax highlighting style for the LaTeX document")

	return cmd
}

func collectFlagBindings() map[string]string {
	bindings := map[string]string{
		fileTimeoutFlagName: fileTimeoutKey,
		styleFlagName:       styleConfigKey,
	}

	for name, key := range scanFlagBindings {
		bindings[name] = key
	}

	return bindings
}

func init() {
	rootCmd.AddCommand(collectCmd)
}
