package cmd

import (
	"github.com/spf13/cobra"

	"manimcells.dev/pkg/manimcells/internal/domain"
	m "manimcells.dev/pkg/manimcells/internal/model"
)

var sceneLineFlag int

// sceneCmd represents the scene command.
var sceneCmd = newSceneCmd()

func newSceneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scene FILE",
		Short: "Print the scene enclosing a line",
		Long: `Print the name of the last class with a base list declared at or before
the given 1-based line of FILE.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			return wf.Scene(cmd.Context(), domain.SceneArgs{
				Path: m.Path(args[0]),
				Line: sceneLineFlag,
			})
		},
	}

	cmd.Flags().IntVarP(&sceneLineFlag, lineFlagName, "l", 0, "1-based cursor line")
	cobra.CheckErr(cmd.MarkFlagRequired(lineFlagName))

	return cmd
}

func init() {
	rootCmd.AddCommand(sceneCmd)
}
