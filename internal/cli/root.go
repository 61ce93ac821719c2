// Package cli provides the command-line interface for pgtypegen.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"pgtypegen/internal/config"
	"pgtypegen/internal/database"
	"pgtypegen/internal/generator"
	"pgtypegen/internal/merge"
	"pgtypegen/internal/naming"
	"pgtypegen/internal/repositories"
	"pgtypegen/internal/services"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

var (
	cfgFile string
	envFile string
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pgtypegen",
		Short: "Generate TypeScript declarations from a PostgreSQL catalog",
		Long: `pgtypegen reads the enum types and table columns of a PostgreSQL schema and
writes matching TypeScript declarations into a target file, below a fixed
anchor line. Everything above the anchor is left untouched.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./pgtypegen.yaml)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file loaded before reading the environment")
	pf.String("database-url", "", "PostgreSQL connection URL (overrides DB_* variables)")
	pf.String("schema", "", "Schema whose tables are inspected (default: public)")
	pf.String("target", "", "File that receives the generated declarations")
	pf.String("anchor", "", "Line after which generated content starts")
	pf.StringSlice("exclude-table", nil, "Table to skip (repeatable)")
	pf.String("singularizer", "", "Table name singularization: legacy or inflect")
	pf.BoolP("verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("singularizer", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{naming.ModeLegacy, naming.ModeInflect}, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewListCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// runtime is everything a command needs for one run.
type runtime struct {
	cfg     *config.Config
	logger  *slog.Logger
	session *database.Session
}

// Close releases the database session.
func (r *runtime) Close() {
	r.session.Close()
}

// newRuntime loads configuration, builds the logger and opens the database
// session. Callers must defer Close on success.
func newRuntime(cmd *cobra.Command) (*runtime, error) {
	cfg, err := config.Load(config.Options{
		ConfigFile: cfgFile,
		EnvFile:    envFile,
		Flags:      cmd.Flags(),
	})
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose).With(slog.String("run_id", uuid.NewString()))

	session, err := database.Connect(commandContext(cmd), cfg.Database(), logger)
	if err != nil {
		return nil, err
	}

	return &runtime{cfg: cfg, logger: logger, session: session}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// service builds the pipeline for schema.
func (r *runtime) service(schema string) *services.TypegenService {
	singular, _ := naming.SingularizerFor(r.cfg.Singularizer)
	repo := repositories.NewCatalogRepository(r.session.DB, schema, r.cfg.ExcludeTables)
	return services.NewTypegenService(
		repo,
		generator.New(r.logger, singular),
		merge.New(r.cfg.Anchor),
		services.OSFileStore{},
		r.logger,
	)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
