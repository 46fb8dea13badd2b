package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

const filterLongDescription = `Build the catalog of repositories that use property-based tests.

Candidates are read from the dependents file (the JSON written by
github-dependents-info, key "all_public_dependent_repos"). Every repository
not yet present in the results file is shallow-cloned, its decorators
counted and the clone removed. Repositories with at least --min-tests tests
are recorded; the results file is rewritten after every repository so an
interrupted run resumes where it stopped.`

var filterInputFlag string
var filterResultsFlag string
var filterWorkersFlag int
var filterTimeoutFlag string
var filterMinTestsFlag int
var filterMarkerFlag string

// filterCmd represents the filter command.
var filterCmd = newFilterCmd()

func newFilterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Build the ranked repository catalog",
		Long:  filterLongDescription,
		Args:  cobra.NoArgs,
		PreRun: bindFlags(map[string]string{
			inputFlagName:    catalogInputKey,
			resultsFlagName:  catalogResultsKey,
			workersFlagName:  catalogWorkersKey,
			timeoutFlagName:  catalogTimeoutKey,
			minTestsFlagName: catalogMinTestsKey,
			markerFlagName:   markerConfigKey,
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Filter(cmd.Context(), domain.FilterArgs{
				Input:        m.Path(viper.GetString(catalogInputKey)),
				Results:      m.Path(viper.GetString(catalogResultsKey)),
				Cache:        m.Path(viper.GetString(cacheFlagName)),
				Workers:      viper.GetInt(catalogWorkersKey),
				Timeout:      configDuration(catalogTimeoutKey, domain.DefaultCatalogTimeout),
				MinTests:     viper.GetInt(catalogMinTestsKey),
				Marker:       viper.GetString(markerConfigKey),
				MatchTimeout: configDuration(matchTimeoutKey, domain.DefaultMatchTimeout),
			})
		},
	}

	configureFilterFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(filterCmd)
}

func configureFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&filterInputFlag, inputFlagName, viper.GetString(catalogInputKey), "dependents JSON file listing candidate repositories")

	cmd.Flags().StringVarP(&filterResultsFlag, resultsFlagName, "r", viper.GetString(catalogResultsKey), "catalog results file")

	cmd.Flags().IntVarP(&filterWorkersFlag, workersFlagName, "w", viper.GetInt(catalogWorkersKey), "number of repositories analyzed in parallel")

	cmd.Flags().StringVar(&filterTimeoutFlag, timeoutFlagName, viper.GetString(catalogTimeoutKey), "time budget for one repository")

	cmd.Flags().IntVar(&filterMinTestsFlag, minTestsFlagName, viper.GetInt(catalogMinTestsKey), "minimum property-based tests for a repository to be recorded")

	cmd.Flags().StringVarP(&filterMarkerFlag, markerFlagName, "m", viper.GetString(markerConfigKey), "decorator name that marks property-based tests")
}
