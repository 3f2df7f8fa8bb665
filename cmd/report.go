package cmd

import (
	"github.com/spf13/cobra"

	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

// reportCmd represents the report command.
var reportCmd = newReportCmd()

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report FILE",
		Short: "Display a saved scan report",
		Long: `Load a report written by "manimcells scan --report FILE" and render it in
the selected output format.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.ShowReport(cmd.Context(), domain.ReportArgs{Path: m.Path(args[0])})
		},
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
