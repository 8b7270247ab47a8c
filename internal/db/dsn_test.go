package db

import (
	"net/url"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

func TestBuildDSN_Postgres(t *testing.T) {
	cfg := &csv2table.ConnectionConfig{
		Dialect:        dialect.Postgres,
		Host:           "pg",
		Port:           5433,
		Database:       "app",
		Username:       "u",
		Password:       "p@ss",
		SSLMode:        "disable",
		ConnectTimeout: 5 * time.Second,
	}

	dsn, err := BuildDSN(cfg)
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgresql", u.Scheme)
	assert.Equal(t, "pg:5433", u.Host)
	assert.Equal(t, "/app", u.Path)
	pass, _ := u.User.Password()
	assert.Equal(t, "p@ss", pass)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
	assert.Equal(t, "5", u.Query().Get("connect_timeout"))
}

func TestBuildDSN_SQLServer(t *testing.T) {
	cfg := &csv2table.ConnectionConfig{
		Dialect:          dialect.SQLServer,
		Host:             "sql01",
		Database:         "Imports",
		Username:         "sa",
		Password:         "pw",
		AppName:          "csv2table",
		AdditionalParams: map[string]string{"instance": "SQLEXPRESS", "TrustServerCertificate": "true"},
	}

	dsn, err := BuildDSN(cfg)
	require.NoError(t, err)

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "sqlserver", u.Scheme)
	assert.Equal(t, "sql01:1433", u.Host)
	assert.Equal(t, "/SQLEXPRESS", u.Path)
	assert.Equal(t, "Imports", u.Query().Get("database"))
	assert.Equal(t, "csv2table", u.Query().Get("app name"))
	assert.Equal(t, "true", u.Query().Get("TrustServerCertificate"))
}

func TestBuildDSN_MySQL(t *testing.T) {
	cfg := &csv2table.ConnectionConfig{
		Dialect:          dialect.MySQL,
		Host:             "my",
		Database:         "app",
		Username:         "root",
		Password:         "pw",
		SSLMode:          "disable",
		AdditionalParams: map[string]string{"charset": "utf8mb4"},
	}

	dsn, err := BuildDSN(cfg)
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", parsed.User)
	assert.Equal(t, "pw", parsed.Passwd)
	assert.Equal(t, "my:3306", parsed.Addr)
	assert.Equal(t, "app", parsed.DBName)
	assert.Equal(t, "false", parsed.TLSConfig)
	assert.Equal(t, "utf8mb4", parsed.Params["charset"])
}

func TestBuildDSN_SQLite(t *testing.T) {
	dsn, err := BuildDSN(&csv2table.ConnectionConfig{Dialect: dialect.SQLite, Database: "file:x.db?mode=rwc"})
	require.NoError(t, err)
	assert.Equal(t, "file:x.db?mode=rwc", dsn)
}

func TestBuildDSN_RoundTripsParsedStrings(t *testing.T) {
	cfg, err := ParseConnectionString("Host=pg;Port=5433;Database=app;Username=u;Password=p")
	require.NoError(t, err)

	dsn, err := BuildDSN(cfg)
	require.NoError(t, err)

	again, err := ParseConnectionString(dsn)
	require.NoError(t, err)
	assert.Equal(t, cfg.Host, again.Host)
	assert.Equal(t, cfg.Port, again.Port)
	assert.Equal(t, cfg.Database, again.Database)
	assert.Equal(t, cfg.Username, again.Username)
	assert.Equal(t, cfg.Password, again.Password)
}

func TestBuildDSN_UnknownDialect(t *testing.T) {
	_, err := BuildDSN(&csv2table.ConnectionConfig{Dialect: "oracle"})
	require.Error(t, err)
	assert.ErrorIs(t, err, csv2table.ErrUnsupportedDialect)
}
