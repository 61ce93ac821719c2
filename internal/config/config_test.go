package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(Options{EnvFile: missingEnvFile(t), ConfigFile: writeFile(t, "empty.yaml", "")})
	require.NoError(t, err)

	assert.Equal(t, DefaultSchema, cfg.Schema)
	assert.Equal(t, DefaultTarget, cfg.Target)
	assert.Equal(t, "export {};", cfg.Anchor)
	assert.Equal(t, DefaultExcludedTables, cfg.ExcludeTables)
	assert.Equal(t, "legacy", cfg.Singularizer)
	assert.Equal(t, 5432, cfg.DBPort)
}

func TestLoad_Precedence(t *testing.T) {
	cfgFile := writeFile(t, "pgtypegen.yaml", `
schema: from_file
target: file.ts
exclude_tables:
  - audit_log
db_host: filehost
`)
	t.Setenv("PGTYPEGEN_TARGET", "env.ts")
	t.Setenv("DB_HOST", "envhost")
	t.Setenv("DB_USERNAME", "envuser")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("schema", "", "")
	flags.String("target", "", "")
	flags.StringSlice("exclude-table", nil, "")
	require.NoError(t, flags.Parse([]string{"--schema", "from_flag"}))

	cfg, err := Load(Options{ConfigFile: cfgFile, EnvFile: missingEnvFile(t), Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "from_flag", cfg.Schema)
	assert.Equal(t, "env.ts", cfg.Target)
	assert.Equal(t, []string{"audit_log"}, cfg.ExcludeTables)
	assert.Equal(t, "envhost", cfg.DBHost)
	assert.Equal(t, "envuser", cfg.DBUser)
}

func TestLoad_ExcludeTablesFromEnvAndFlag(t *testing.T) {
	t.Setenv("PGTYPEGEN_EXCLUDE_TABLES", "a, b,,c")

	cfg, err := Load(Options{EnvFile: missingEnvFile(t), ConfigFile: writeFile(t, "empty.yaml", "")})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, cfg.ExcludeTables)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringSlice("exclude-table", nil, "")
	require.NoError(t, flags.Parse([]string{"--exclude-table", "x", "--exclude-table", "y"}))

	cfg, err = Load(Options{EnvFile: missingEnvFile(t), ConfigFile: writeFile(t, "empty.yaml", ""), Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, cfg.ExcludeTables)
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := writeFile(t, ".env", "DB_DATABASE=from_dotenv\nDB_PORT=6543\n")
	t.Cleanup(func() {
		_ = os.Unsetenv("DB_DATABASE")
		_ = os.Unsetenv("DB_PORT")
	})

	cfg, err := Load(Options{EnvFile: envFile, ConfigFile: writeFile(t, "empty.yaml", "")})
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.DBName)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, "from_dotenv", cfg.Database().Name)
}

func TestLoad_BadConfigFile(t *testing.T) {
	_, err := Load(Options{EnvFile: missingEnvFile(t), ConfigFile: filepath.Join(t.TempDir(), "nope.yaml")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		errMsg string
	}{
		{
			name: "valid",
			cfg:  Config{Schema: "public", Singularizer: "legacy", DBHost: "localhost"},
		},
		{
			name: "url only",
			cfg:  Config{Schema: "public", Singularizer: "inflect", DatabaseURL: "postgres://x"},
		},
		{
			name:   "missing schema",
			cfg:    Config{Singularizer: "legacy", DBHost: "localhost"},
			errMsg: "schema is required",
		},
		{
			name:   "bad singularizer",
			cfg:    Config{Schema: "public", Singularizer: "clever", DBHost: "localhost"},
			errMsg: "unknown singularizer",
		},
		{
			name:   "no database",
			cfg:    Config{Schema: "public", Singularizer: "legacy"},
			errMsg: "database_url or DB_HOST is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}
