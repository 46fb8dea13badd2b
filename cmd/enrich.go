package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

var enrichResultsFlag string
var enrichTokenFlag string
var enrichRPSFlag float64

// enrichCmd represents the enrich command.
var enrichCmd = newEnrichCmd()

func newEnrichCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Refresh stars and avatars of catalog entries from GitHub",
		Long: `Query the GitHub API for every recorded repository and update its star
count and owner avatar. Requires a token (--token, PBTSCAN_GITHUB_TOKEN or
GITHUB_TOKEN). Entries whose lookup fails keep their stored values.`,
		Args: cobra.NoArgs,
		PreRun: bindFlags(map[string]string{
			resultsFlagName: catalogResultsKey,
			tokenFlagName:   githubTokenKey,
			rpsFlagName:     githubRPSKey,
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Enrich(cmd.Context(), domain.EnrichArgs{
				Results: m.Path(viper.GetString(catalogResultsKey)),
				Token:   viper.GetString(githubTokenKey),
				RPS:     viper.GetFloat64(githubRPSKey),
			})
		},
	}

	cmd.Flags().StringVarP(&enrichResultsFlag, resultsFlagName, "r", viper.GetString(catalogResultsKey), "catalog results file")

	cmd.Flags().StringVar(&enrichTokenFlag, tokenFlagName, "", "GitHub API token")

	cmd.Flags().Float64Var(&enrichRPSFlag, rpsFlagName, viper.GetFloat64(githubRPSKey), "maximum GitHub API requests per second")

	return cmd
}

func init() {
	rootCmd.AddCommand(enrichCmd)
}
