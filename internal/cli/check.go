package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"pgtypegen/internal/services"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail if the target file is out of date",
		Long: `Render the declarations in memory and compare the merged result with the
target file. Exits non-zero when running generate would change the file.`,
		Example: `  # In CI, after migrations ran
  pgtypegen check --target web/src/db.ts`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := newRuntime(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.service(rt.cfg.Schema).Check(commandContext(cmd), rt.cfg.Target); err != nil {
				return checkError(err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", rt.cfg.Target)
			return nil
		},
	}
}

// checkError suggests generate only when regenerating would fix the failure.
func checkError(err error) error {
	if errors.Is(err, services.ErrStale) {
		return fmt.Errorf("%w\nHint: run 'pgtypegen generate'", err)
	}
	return err
}
