// Package cli implements the connprops command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/koustreak/sqlconnect/internal/logger"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var logLevel, logFormat string

	root := &cobra.Command{
		Use:   "connprops",
		Short: "Inspect and test database client options",
		Long: `connprops reads a database config file, shows the connection and pool
properties its client options translate to, and can open a pool with them.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			log := logger.New(&logger.Config{
				Level:  logLevel,
				Format: logFormat,
				Output: cmd.ErrOrStderr(),
			})
			logger.SetDefault(log)
			cmd.SetContext(log.WithContext(cmd.Context()))
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "console", "log format (json, console)")

	root.AddCommand(newShowCmd(), newPingCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

func addConfigFlag(cmd *cobra.Command, path *string) {
	cmd.Flags().StringVarP(path, "file", "f", "sqlconnect.yaml", "path to the database config file")
}
