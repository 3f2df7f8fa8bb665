// Package cmd provides the root command and CLI setup for manimcells.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"manimcells.dev/pkg/manimcells/internal/adapter"
	"manimcells.dev/pkg/manimcells/internal/controller"
	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// workflow is built on first use unless a test has injected one.
var workflow domain.Workflow
var detector domain.Detector

var formatFlag string
var verboseFlag bool

// excludePatterns and includePatterns are root-level flags that filter the
// scanned files.
var excludePatterns []string
var includePatterns []string

func init() {
	configureRootFlags(rootCmd)
}

const pathPatternsHelp = `Supports Go-style path patterns:
  - ./...            recursively scan current directory
  - ./scenes/...     recursively scan the scenes directory
  - ./scenes         scan only the top level of scenes
  - intro.py         scan a single file`

const rootLongDescription = `manimcells finds the construct methods of Manim scenes in Python sources
and splits their bodies into cells delimited by "##" comment markers, so
that each cell can be re-run on its own in an interactive session.

` + pathPatternsHelp

const scanLongDescription = `Scan Python sources and list every scene construct method with its cells
(default: ./...).

` + pathPatternsHelp

const watchLongDescription = `Scan Python sources, then watch them and print how the cell layout of a
file changes whenever it is saved (default: ./...).

` + pathPatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manimcells",
		Short: "Manim cell detector for Python scenes",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if detector != nil {
				detector.Close()
				detector, workflow = nil, nil
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

// newRootCmd returns a fresh root command with the persistent flags attached.
func newRootCmd() *cobra.Command {
	cmd := baseRootCmd()
	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&formatFlag, formatFlagName, "f", viper.GetString(formatConfigKey), "output format: auto, table, json or yaml")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(formatFlagName), formatConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)

	cmd.PersistentFlags().StringArrayVarP(&excludePatterns, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude files matching regex (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().StringArrayVar(&includePatterns, includeFlagName, viper.GetStringSlice(includeConfigKey), "include files matching glob (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(includeFlagName), includeConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// resolveWorkflow returns the shared workflow, building it for cmd on first use.
func resolveWorkflow(cmd *cobra.Command) (domain.Workflow, error) {
	if workflow != nil {
		return workflow, nil
	}

	ui, err := controller.NewUI(cmd, viper.GetString(formatConfigKey), controller.IsTTY(cmd.OutOrStdout()))
	if err != nil {
		return nil, err
	}

	detector, err = domain.NewDetector(viper.GetInt(tabWidthConfigKey), viper.GetInt(cacheSizeConfigKey))
	if err != nil {
		return nil, err
	}

	workflow = domain.NewWorkflow(
		adapter.NewLocalSourceFSAdapter(),
		adapter.NewReportStore(),
		ui,
		detector,
		adapter.NewWatcher,
	)

	return workflow, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parsePaths converts CLI arguments to paths, defaulting to a recursive scan
// of the working directory.
func parsePaths(args []string) []m.Path {
	if len(args) == 0 {
		return []m.Path{"./..."}
	}

	paths := make([]m.Path, 0, len(args))
	for _, arg := range args {
		paths = append(paths, m.Path(arg))
	}

	return paths
}
