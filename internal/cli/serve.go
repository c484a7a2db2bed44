package cli

import (
	"fmt"

	"github.com/pgschema-labs/pgschema/internal/httpapi"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	addr := ":8085"

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP tooling API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := GetConfig(cmd.Context())
			logger := GetLogger(cmd.Context())
			fmt.Fprintf(cmd.OutOrStdout(), "pgschema tooling API listening on %s\n", addr)
			return httpapi.Serve(cmd.Context(), addr, cfg.SchemasRoot, logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", addr, "listen address")
	return cmd
}
