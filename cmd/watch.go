package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"manimcells.dev/pkg/manimcells/internal/domain"
)

var watchParallelFlag int
var watchDebounceFlag int

// watchCmd represents the watch command.
var watchCmd = newWatchCmd()

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Report cell layout changes as files are saved",
		Long:  watchLongDescription,
		PreRun: func(cmd *cobra.Command, _ []string) {
			bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			wf, err := resolveWorkflow(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return wf.Watch(ctx, domain.WatchArgs{
				Paths:    parsePaths(args),
				Include:  viper.GetStringSlice(includeConfigKey),
				Exclude:  viper.GetStringSlice(excludeConfigKey),
				Threads:  viper.GetInt(parallelConfigKey),
				Debounce: time.Duration(viper.GetInt(debounceConfigKey)) * time.Millisecond,
			})
		},
	}

	cmd.Flags().IntVarP(&watchParallelFlag, parallelFlagName, "p", viper.GetInt(parallelConfigKey), "number of files scanned in parallel")
	cmd.Flags().IntVar(&watchDebounceFlag, debounceFlagName, viper.GetInt(debounceConfigKey), "quiet period in milliseconds before changes are reported")
	bindFlagToConfig(cmd.Flags().Lookup(debounceFlagName), debounceConfigKey)

	return cmd
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
