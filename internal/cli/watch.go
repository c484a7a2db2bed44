package cli

import (
	"fmt"

	"github.com/pgschema-labs/pgschema/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var attrs []string

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-expand a schema template file whenever it changes on disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseAttrFlags(attrs)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			p, err := newParserFromConfig(cfg, "")
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			return watch.Run(cmd.Context(), args[0], GetLogger(cmd.Context()), func() error {
				result, err := p.ExpandFile(cmd.Context(), args[0], env)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, result)
				return err
			})
		},
	}

	cmd.Flags().StringArrayVar(&attrs, "attr", nil, "attribute assignment key=value (repeatable)")
	return cmd
}
