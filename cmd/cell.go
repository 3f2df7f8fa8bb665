package cmd

import (
	"github.com/spf13/cobra"

	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

var cellLineFlag int
var cellDedentFlag bool

// cellCmd represents the cell command.
var cellCmd = newCellCmd()

func newCellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cell FILE",
		Short: "Print the cell covering a line",
		Long: `Print the content of the cell whose marker or body covers the given
1-based line of FILE. Trailing blank lines of the cell are left out.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Cell(cmd.Context(), domain.CellArgs{
				Path:   m.Path(args[0]),
				Line:   cellLineFlag,
				Dedent: cellDedentFlag,
			})
		},
	}

	cmd.Flags().IntVarP(&cellLineFlag, lineFlagName, "l", 0, "1-based line number inside the cell")
	cobra.CheckErr(cmd.MarkFlagRequired(lineFlagName))
	cmd.Flags().BoolVarP(&cellDedentFlag, dedentFlagName, "d", false, "strip the construct body indentation")

	return cmd
}

func init() {
	rootCmd.AddCommand(cellCmd)
}
