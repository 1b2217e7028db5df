package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the reference index",
}

// schemaCmd checks the reference index table layout.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Check the reference index table has every mapped column",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		defer rt.close()

		p := rt.store.Profile()
		rt.logger.Info("Checking reference index schema...",
			zap.String("profile", p.Name),
			zap.String("table", p.TableName),
		)

		missing, err := rt.store.CheckSchema()
		if err != nil {
			return fmt.Errorf("schema check failed: %w", err)
		}
		if len(missing) > 0 {
			rt.logger.Warn("Missing Columns", zap.String("table", p.TableName), zap.Strings("columns", missing))
			return fmt.Errorf("table %s is missing %d column(s)", p.TableName, len(missing))
		}
		rt.logger.Info("Reference index schema matches profile.")
		return nil
	},
}

func init() {
	integrityCmd.AddCommand(schemaCmd)
	RootCmd.AddCommand(integrityCmd)
}
