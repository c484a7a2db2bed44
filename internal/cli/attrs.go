package cli

import (
	"encoding/json"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pgschema-labs/pgschema/pkg/schema"
	"github.com/spf13/cobra"
)

func newAttrsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "attrs <file>",
		Short: "List the attribute names a schema template references",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := schema.NewParser()
			names, err := p.ExtractAttributeNamesFromFile(args[0])
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			if cfg.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(struct {
					File  string   `json:"file"`
					Names []string `json:"names"`
				}{args[0], names})
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Attribute"})
			for i, name := range names {
				t.AppendRow(table.Row{i + 1, name})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}
