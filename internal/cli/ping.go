package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koustreak/sqlconnect/internal/database"
	"github.com/koustreak/sqlconnect/internal/database/mysql"
	"github.com/koustreak/sqlconnect/internal/database/postgres"
	"github.com/koustreak/sqlconnect/internal/errs"
	"github.com/koustreak/sqlconnect/internal/logger"
)

func newPingCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Open a pool with the configured options and ping the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := database.LoadConfig(path)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			db, err := open(ctx, cfg)
			if err != nil {
				logger.FromContext(ctx).ErrorWith("ping failed", err, map[string]any{
					"driver": string(cfg.Driver),
					"kind":   errs.KindOf(err).String(),
				})
				return err
			}
			defer db.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", cfg.Driver)
			return nil
		},
	}
	addConfigFlag(cmd, &path)
	return cmd
}

// open picks the connection factory for cfg.Driver.
func open(ctx context.Context, cfg *database.Config) (database.DB, error) {
	switch cfg.Driver {
	case database.DriverPostgres:
		d, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	case database.DriverMySQL:
		d, err := mysql.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, errs.Newf(errs.ErrKindInvalidInput, "unsupported driver %q", cfg.Driver)
	}
}
