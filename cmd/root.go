// Package cmd provides the root command and CLI setup for pbtscan.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pbtscan.dev/pkg/pbtscan/internal/adapter"
	"pbtscan.dev/pkg/pbtscan/internal/controller"
	"pbtscan.dev/pkg/pbtscan/internal/domain"
	m "pbtscan.dev/pkg/pbtscan/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var vcsAdapter adapter.VCSAdapter
var typesetter adapter.TypesetterAdapter
var catalogStore adapter.CatalogStore
var syntaxAdapter adapter.PythonSyntaxAdapter
var workflow domain.Workflow
var ui controller.UI

// outputDirFlag is a root-level flag shared by commands that write documents.
var outputDirFlag string

// cacheDirFlag is the root-level repository cache directory.
var cacheDirFlag string

// verboseFlag switches the log file to debug level.
var verboseFlag bool

// excludePatterns is a root-level flag that filters files for applicable commands.
var excludePatterns []string

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	vcsAdapter = adapter.NewGoGitAdapter()
	typesetter = adapter.NewLocalTypesetterAdapter(viper.GetString(typesetterConfigKey))
	catalogStore = adapter.NewJSONCatalogStore()
	syntaxAdapter = adapter.NewTreeSitterPythonAdapter()
	workflow = domain.NewWorkflow(
		fsAdapter,
		vcsAdapter,
		typesetter,
		catalogStore,
		syntaxAdapter,
		newHostingAdapter,
		ui,
	)
}

func newHostingAdapter(token string, rps float64) (adapter.HostingAdapter, error) {
	return adapter.NewGitHubAdapter(token, rps)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...          recursively scan current directory
  - ./tests/...    recursively scan tests directory
  - ./a ./b        scan the top level of multiple directories`

const rootLongDescription = `pbtscan finds property-based tests (Python functions decorated with
@given) in source repositories, renders them into readable documents and
maintains a ranked catalog of repositories that use them.

` + pathPatternsHelp

const listLongDescription = `List source files and the number of property-based tests they contain.

` + pathPatternsHelp

const collectLongDescription = `Collect the property-based tests of one commit.

The reference must link to a commit, e.g.
  https://github.com/owner/repo/commit/<sha>

The repository is cloned (or fetched) into the cache directory and the
revision checked out. Test files are scanned and the results written to
<output>/<owner_repo>/ as a text aggregation, a YAML manifest and a LaTeX
document, which is typeset into <output>/<owner_repo>.pdf.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pbtscan",
		Short: "Property-based test scanner",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&outputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for collected documents",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringVar(&cacheDirFlag, cacheFlagName, viper.GetString(cacheFlagName), "directory for cloned repositories")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(cacheFlagName), cacheFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// bindFlags returns a PreRun hook binding the running command's flags to config keys.
func bindFlags(bindings map[string]string) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, _ []string) {
		for name, key := range bindings {
			bindFlagToConfig(cmd.Flags().Lookup(name), key)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func parsePaths(args []string) []m.Path {
	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
