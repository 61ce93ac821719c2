package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewGenerateCommand creates the generate command.
func NewGenerateCommand() *cobra.Command {
	var toStdout bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the declarations in the target file",
		Long: `Read the catalog, render enum and record declarations, and replace everything
after the anchor line of the target file with them.

The target file is left untouched when the catalog cannot be read or the
anchor line is missing.`,
		Example: `  # Regenerate the configured target
  pgtypegen generate

  # Write into a specific file
  pgtypegen generate --target web/src/db.ts

  # Print the declarations instead of writing them
  pgtypegen generate --stdout`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			svc := rt.service(rt.cfg.Schema)

			if toStdout {
				doc, err := svc.Render(commandContext(cmd))
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), doc.Text)
				return err
			}

			res, err := svc.Generate(commandContext(cmd), rt.cfg.Target)
			if err != nil {
				return err
			}

			status := "unchanged"
			if res.Changed {
				status = "updated"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d enums, %d records)\n", res.Target, status, res.Enums, res.Records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print generated declarations instead of writing the target")

	return cmd
}
