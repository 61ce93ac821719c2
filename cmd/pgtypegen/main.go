// Command pgtypegen keeps TypeScript declarations in sync with a PostgreSQL
// schema.
package main

import (
	"os"

	"pgtypegen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
