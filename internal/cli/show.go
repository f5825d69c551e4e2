package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/koustreak/sqlconnect/internal/connector"
	"github.com/koustreak/sqlconnect/internal/database"
)

func newShowCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the properties derived from the client options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := database.LoadConfig(path)
			if err != nil {
				return err
			}
			printProperties(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
	addConfigFlag(cmd, &path)
	return cmd
}

func printProperties(w io.Writer, cfg *database.Config) {
	fmt.Fprintf(w, "driver: %s\n", cfg.Driver)

	co := connector.BuildConnectorOptions(cfg.Options)
	if ms, ok := co.LoginTimeout.Get(); ok {
		fmt.Fprintf(w, "%s: %d\n", connector.KeyLoginTimeout, ms)
	}

	fmt.Fprintln(w, "connection:")
	if props, ok := co.Properties.Get(); ok {
		printSet(w, props)
	} else {
		fmt.Fprintln(w, "  (driver defaults)")
	}

	fmt.Fprintln(w, "pool:")
	if props, ok := connector.BuildPoolProperties(cfg.Options).Get(); ok {
		printSet(w, props)
	} else {
		fmt.Fprintln(w, "  (driver defaults)")
	}
}

func printSet(w io.Writer, props *connector.Properties) {
	for _, p := range props.Redacted() {
		fmt.Fprintf(w, "  %s: %v\n", p.Key, p.Value)
	}
}
