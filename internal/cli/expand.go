package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newExpandCommand() *cobra.Command {
	var attrs []string
	var versionOverride string

	cmd := &cobra.Command{
		Use:   "expand <file>",
		Short: "Expand a schema template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseAttrFlags(attrs)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			p, err := newParserFromConfig(cfg, versionOverride)
			if err != nil {
				return err
			}

			out, err := p.ExpandFile(cmd.Context(), args[0], env)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "attribute assignment key=value (repeatable)")
	cmd.Flags().StringVar(&versionOverride, "pgsql-version", "", "target PostgreSQL version for this expansion")
	return cmd
}
