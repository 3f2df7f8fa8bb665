package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

var scanParallelFlag int
var scanReportFlag string

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "List scenes and their cells",
		Long:  scanLongDescription,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Scan(cmd.Context(), domain.ScanArgs{
				Paths:   parsePaths(args),
				Include: viper.GetStringSlice(includeConfigKey),
				Exclude: viper.GetStringSlice(excludeConfigKey),
				Threads: viper.GetInt(parallelConfigKey),
				Report:  m.Path(scanReportFlag),
			})
		},
	}

	configureScanFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func configureScanFlags(cmd *cobra.Command) {
	// --parallel is shared with watch, so it is bound to the config key only
	// for the command that runs.
	cmd.Flags().IntVarP(&scanParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files scanned in parallel")
	cmd.Flags().StringVarP(&scanReportFlag, reportFlagName, "r", "", "write the scan report to this YAML file")
}
