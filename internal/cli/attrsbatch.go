package cli

import (
	"encoding/json"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pgschema-labs/pgschema/pkg/schema/batch"
	"github.com/spf13/cobra"
)

func newAttrsBatchCommand() *cobra.Command {
	var pattern string
	var limit int

	cmd := &cobra.Command{
		Use:   "attrs-batch <dir>",
		Short: "Concurrently extract attribute names for every schema file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := batch.ExtractDir(args[0], pattern, limit)
			if err != nil {
				return err
			}

			cfg := GetConfig(cmd.Context())
			if cfg.Output == "json" {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"File", "Attributes", "Error"})
			for _, r := range results {
				errStr := ""
				if r.Err != nil {
					errStr = r.Err.Error()
				}
				t.AppendRow(table.Row{r.Path, strings.Join(r.Names, ", "), errStr})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "glob pattern for schema files (default *.sch)")
	cmd.Flags().IntVar(&limit, "concurrency", 0, "max concurrent extractions (0 = unbounded)")
	return cmd
}
