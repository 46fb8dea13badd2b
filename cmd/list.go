package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
)

var listIncludeFlag []string
var listMarkerFlag string
var listEngineFlag string
var listParallelFlag int

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "list [paths...]",
		Short:  "List source files and property-based test counts",
		Long:   listLongDescription,
		PreRun: bindFlags(scanFlagBindings),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.List(cmd.Context(), domain.ListArgs{
				ScanArgs: scanArgsFromConfig(),
				Paths:    parsePaths(args),
			})
		},
	}

	configureScanFlags(cmd, &listIncludeFlag, &listMarkerFlag, &listEngineFlag, &listParallelFlag)

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}

var scanFlagBindings = map[string]string{
	includeFlagName:  includeConfigKey,
	markerFlagName:   markerConfigKey,
	engineFlagName:   engineConfigKey,
	parallelFlagName: parallelConfigKey,
}

// configureScanFlags registers the extraction flags shared by list and collect.
func configureScanFlags(cmd *cobra.Command, include *[]string, marker, engine *string, parallel *int) {
	cmd.Flags().StringArrayVarP(include, includeFlagName, "i", viper.GetStringSlice(includeConfigKey), "include files matching glob (can be repeated)")

	cmd.Flags().StringVarP(marker, markerFlagName, "m", viper.GetString(markerConfigKey), "decorator name that marks property-based tests")

	cmd.Flags().StringVar(engine, engineFlagName, viper.GetString(engineConfigKey), "extraction engine: regex or syntax")

	cmd.Flags().IntVarP(parallel, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of parallel extraction workers (0 = all CPUs)")
}

func scanArgsFromConfig() domain.ScanArgs {
	matchTimeout := configDuration(matchTimeoutKey, domain.DefaultMatchTimeout)

	return domain.ScanArgs{
		Discovery: domain.DiscoveryOptions{
			Include:          viper.GetStringSlice(includeConfigKey),
			Exclude:          viper.GetStringSlice(excludeConfigKey),
			RespectGitignore: viper.GetBool(gitignoreConfigKey),
			MatchTimeout:     matchTimeout,
		},
		Engine: viper.GetString(engineConfigKey),
		Extractor: domain.ExtractorOptions{
			Marker:       viper.GetString(markerConfigKey),
			MatchTimeout: matchTimeout,
		},
		Parallel:    viper.GetInt(parallelConfigKey),
		FileTimeout: configDuration(fileTimeoutKey, domain.DefaultFileTimeout),
	}
}
