package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"pgtypegen/internal/generator"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the enums and tables found in the catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			doc, err := rt.service(rt.cfg.Schema).Render(commandContext(cmd))
			if err != nil {
				return err
			}

			renderList(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func renderList(w io.Writer, doc generator.Document) {
	enums := table.NewWriter()
	enums.SetOutputMirror(w)
	enums.SetStyle(table.StyleLight)
	enums.SetTitle(fmt.Sprintf("Enums (%d)", len(doc.Enums)))
	enums.AppendHeader(table.Row{"Type", "Declaration", "Members"})
	for _, def := range doc.Enums {
		values := make([]string, 0, len(def.Members))
		for _, m := range def.Members {
			values = append(values, m.RawValue)
		}
		enums.AppendRow(table.Row{def.TypeKey, def.DisplayName, strings.Join(values, ", ")})
	}
	enums.Render()

	fmt.Fprintln(w)

	records := table.NewWriter()
	records.SetOutputMirror(w)
	records.SetStyle(table.StyleLight)
	records.SetTitle(fmt.Sprintf("Tables (%d)", len(doc.Records)))
	records.AppendHeader(table.Row{"Table", "Declaration", "Fields"})
	for _, rec := range doc.Records {
		records.AppendRow(table.Row{rec.Table, rec.Name, len(rec.Fields)})
	}
	records.Render()
}
