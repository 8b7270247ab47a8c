package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csv2table/internal/config"
	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

func TestResolveConnection_Precedence(t *testing.T) {
	tests := []struct {
		name        string
		flag        string
		configConn  string
		envConn     string
		databaseURL string
		wantDialect string
		wantDB      string
	}{
		{
			name:        "flag wins",
			flag:        "Server=sql01;Database=FromFlag",
			configConn:  "postgresql://cfg@localhost/from_config",
			envConn:     "env.db",
			wantDialect: dialect.SQLServer,
			wantDB:      "FromFlag",
		},
		{
			name:        "config before environment",
			configConn:  "postgresql://cfg@localhost/from_config",
			envConn:     "env.db",
			wantDialect: dialect.Postgres,
			wantDB:      "from_config",
		},
		{
			name:        "CSV2TABLE_CONNECTION_STRING before DATABASE_URL",
			envConn:     "mysql://loader@localhost/from_env",
			databaseURL: "postgresql://url@localhost/from_url",
			wantDialect: dialect.MySQL,
			wantDB:      "from_env",
		},
		{
			name:        "DATABASE_URL last",
			databaseURL: "postgresql://url@localhost/from_url",
			wantDialect: dialect.Postgres,
			wantDB:      "from_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvConnectionString, tt.envConn)
			t.Setenv(EnvDatabaseURL, tt.databaseURL)

			cfg, err := resolveConnection(tt.flag, "", &config.ProjectConfig{Connection: tt.configConn})
			require.NoError(t, err)
			assert.Equal(t, tt.wantDialect, cfg.Dialect)
			assert.Equal(t, tt.wantDB, cfg.Database)
		})
	}
}

func TestResolveConnection_Missing(t *testing.T) {
	clearConnectionEnv(t)

	_, err := resolveConnection("", "", &config.ProjectConfig{})
	require.Error(t, err)
	assert.ErrorIs(t, err, csv2table.ErrValidation)
	assert.Contains(t, err.Error(), EnvConnectionString)
}

func TestResolveConnection_DialectOverride(t *testing.T) {
	clearConnectionEnv(t)

	cfg, err := resolveConnection("Server=db;Database=imports;User Id=u;Password=p", "postgresql",
		&config.ProjectConfig{Dialect: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, dialect.Postgres, cfg.Dialect)

	cfg, err = resolveConnection("Server=db;Database=imports", "", &config.ProjectConfig{Dialect: "mysql"})
	require.NoError(t, err)
	assert.Equal(t, dialect.MySQL, cfg.Dialect)
}

func TestResolveUserID(t *testing.T) {
	assert.Equal(t, "from-flag", resolveUserID(" from-flag ", &config.ProjectConfig{User: "from-config"}))
	assert.Equal(t, "from-config", resolveUserID("", &config.ProjectConfig{User: "from-config"}))

	generated := resolveUserID("", &config.ProjectConfig{})
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.NotEqual(t, generated, resolveUserID("", &config.ProjectConfig{}))
}

func newTimedCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "t"}
	cmd.Flags().Duration("timeout", csv2table.DefaultTimeout, "")
	cmd.Flags().Int("preview", csv2table.DefaultPreviewRows, "")
	return cmd
}

func TestResolveEffectiveTimeout(t *testing.T) {
	cmd := newTimedCommand()

	got, err := resolveEffectiveTimeout(cmd, &config.ProjectConfig{}, csv2table.DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, csv2table.DefaultTimeout, got)

	got, err = resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: "45s"}, csv2table.DefaultTimeout)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, got)

	require.NoError(t, cmd.Flags().Set("timeout", "10s"))
	got, err = resolveEffectiveTimeout(cmd, &config.ProjectConfig{Timeout: "45s"}, 10*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, got)

	_, err = resolveEffectiveTimeout(newTimedCommand(), &config.ProjectConfig{Timeout: "later"}, csv2table.DefaultTimeout)
	assert.ErrorIs(t, err, csv2table.ErrValidation)

	_, err = resolveEffectiveTimeout(cmd, &config.ProjectConfig{}, 0)
	assert.ErrorIs(t, err, csv2table.ErrValidation)
}

func TestResolvePreviewRows(t *testing.T) {
	cmd := newTimedCommand()

	got, err := resolvePreviewRows(cmd, "preview", csv2table.DefaultPreviewRows, &config.ProjectConfig{PreviewRows: 5})
	require.NoError(t, err)
	assert.Equal(t, 5, got)

	require.NoError(t, cmd.Flags().Set("preview", "0"))
	got, err = resolvePreviewRows(cmd, "preview", 0, &config.ProjectConfig{PreviewRows: 5})
	require.NoError(t, err)
	assert.Zero(t, got)

	_, err = resolvePreviewRows(cmd, "preview", -1, &config.ProjectConfig{})
	assert.ErrorIs(t, err, csv2table.ErrValidation)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := loadProjectConfig(".")
	require.NoError(t, err)
	assert.Empty(t, cfg.Connection)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName),
		[]byte("connection: people.db\ndelimiter: \";\"\n"), 0644))
	cfg, err = loadProjectConfig(".")
	require.NoError(t, err)
	assert.Equal(t, "people.db", cfg.Connection)
	assert.Equal(t, ";", cfg.Delimiter)

	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), []byte("timeout: [\n"), 0644))
	_, err = loadProjectConfig(".")
	assert.ErrorIs(t, err, csv2table.ErrValidation)
}

func TestLoadProjectConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConnectionString, "")
	os.Unsetenv(EnvConnectionString)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte(EnvConnectionString+"=from_dotenv.db\n"), 0644))

	_, err := loadProjectConfig(".")
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv.db", connectionStringFromEnv())
}
