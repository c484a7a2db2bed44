package cli

import (
	"fmt"

	"github.com/pgschema-labs/pgschema/pkg/schema"
	"github.com/pgschema-labs/pgschema/pkg/schema/resolver"
	"github.com/pgschema-labs/pgschema/pkg/schema/xmlentity"
	"github.com/spf13/cobra"
)

func newExpandObjectCommand() *cobra.Command {
	var attrs []string
	var versionOverride string

	cmd := &cobra.Command{
		Use:   "expand-object <kind> <name>",
		Short: "Resolve and expand a schema object by kind and name",
		Long:  "kind is sql or xml; the template is resolved at <schemas-root>/<kind>/<name>.sch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseAttrFlags(attrs)
			if err != nil {
				return err
			}

			var kind schema.Kind
			switch args[0] {
			case "sql":
				kind = schema.SQL
			case "xml":
				kind = schema.XML
			default:
				return fmt.Errorf("unknown kind %q: expected sql or xml", args[0])
			}

			cfg := GetConfig(cmd.Context())
			p, err := newParserFromConfig(cfg, versionOverride)
			if err != nil {
				return err
			}

			res := resolver.New(cfg.SchemasRoot)
			out, err := p.ExpandFromObject(cmd.Context(), res, xmlentity.Escaper{}, args[1], kind, env)
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
