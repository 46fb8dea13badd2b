package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

var tableResultsFlag string
var tableOutputFlag string

// tableCmd represents the table command.
var tableCmd = newTableCmd()

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Render the catalog as a Markdown table",
		Args:  cobra.NoArgs,
		PreRun: bindFlags(map[string]string{
			resultsFlagName:  catalogResultsKey,
			markdownFlagName: tableOutputKey,
		}),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return workflow.Table(cmd.Context(), domain.TableArgs{
				Results: m.Path(viper.GetString(catalogResultsKey)),
				Output:  m.Path(viper.GetString(tableOutputKey)),
			})
		},
	}

	cmd.Flags().StringVarP(&tableResultsFlag, resultsFlagName, "r", viper.GetString(catalogResultsKey), "catalog results file")

	cmd.Flags().StringVar(&tableOutputFlag, markdownFlagName, viper.GetString(tableOutputKey), "Markdown file to write")

	return cmd
}

func init() {
	rootCmd.AddCommand(tableCmd)
}
