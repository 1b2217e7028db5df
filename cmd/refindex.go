package cmd

import (
	"errors"
	"time"

	"refcheck/feature/refindex/refresh"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// refindexCmd groups reference index maintenance commands.
var refindexCmd = &cobra.Command{
	Use:   "refindex",
	Short: "Maintain the reference index",
}

// refindexUpdateCmd rebuilds the index through the configured refresh command.
var refindexUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Rebuild the reference index",
	Long:  `Runs the command configured in REFRESH_COMMAND and waits for it to finish.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		start := time.Now()
		rt.logger.Info("Updating reference index...")
		if err := rt.refresher.Refresh(cmd.Context()); err != nil {
			if errors.Is(err, refresh.ErrNotConfigured) {
				rt.logger.Warn("Set REFRESH_COMMAND to the command rebuilding the index")
			}
			return err
		}
		rt.logger.Info("Reference index updated", zap.Duration("execution_time", time.Since(start)))
		return nil
	},
}

func init() {
	refindexCmd.AddCommand(refindexUpdateCmd)
	RootCmd.AddCommand(refindexCmd)
}
