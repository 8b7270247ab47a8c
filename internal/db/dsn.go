package db

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/go-sql-driver/mysql"

	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// BuildDSN renders config as a data source name for the dialect's driver.
func BuildDSN(config *csv2table.ConnectionConfig) (string, error) {
	d, err := dialect.Lookup(config.Dialect)
	if err != nil {
		return "", err
	}

	switch d.Name() {
	case dialect.Postgres:
		return buildPostgresURI(config), nil
	case dialect.MySQL:
		return buildMySQLDSN(config), nil
	case dialect.SQLServer:
		return buildSQLServerURL(config), nil
	case dialect.SQLite:
		return config.Database, nil
	}
	return "", fmt.Errorf("no DSN builder for %s: %w", d.Name(), csv2table.ErrUnsupportedDialect)
}

func hostPort(config *csv2table.ConnectionConfig) string {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	port := config.Port
	if port == 0 {
		port = defaultPorts[config.Dialect]
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func userInfo(config *csv2table.ConnectionConfig) *url.Userinfo {
	switch {
	case config.Username == "":
		return nil
	case config.Password == "":
		return url.User(config.Username)
	default:
		return url.UserPassword(config.Username, config.Password)
	}
}

func buildPostgresURI(config *csv2table.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "postgresql",
		Host:   hostPort(config),
		Path:   "/" + config.Database,
		User:   userInfo(config),
	}

	query := url.Values{}
	if config.SSLMode != "" {
		query.Set("sslmode", config.SSLMode)
	}
	if config.AppName != "" {
		query.Set("application_name", config.AppName)
	}
	if config.ConnectTimeout > 0 {
		query.Set("connect_timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}
	for key, value := range config.AdditionalParams {
		query.Set(key, value)
	}

	u.RawQuery = query.Encode()
	return u.String()
}

func buildSQLServerURL(config *csv2table.ConnectionConfig) string {
	u := &url.URL{
		Scheme: "sqlserver",
		Host:   hostPort(config),
		User:   userInfo(config),
	}

	query := url.Values{}
	for key, value := range config.AdditionalParams {
		if key == "instance" {
			u.Path = "/" + value
			continue
		}
		query.Set(key, value)
	}
	if config.Database != "" {
		query.Set("database", config.Database)
	}
	if config.AppName != "" {
		query.Set("app name", config.AppName)
	}
	if config.ConnectTimeout > 0 {
		query.Set("dial timeout", strconv.Itoa(int(config.ConnectTimeout.Seconds())))
	}
	if config.SSLMode != "" {
		query.Set("encrypt", sqlServerEncrypt(config.SSLMode))
	}

	u.RawQuery = query.Encode()
	return u.String()
}

// sqlServerEncrypt maps libpq sslmode values onto go-mssqldb's encrypt option.
func sqlServerEncrypt(sslmode string) string {
	switch sslmode {
	case "disable":
		return "disable"
	case "allow", "prefer":
		return "false"
	default:
		return "true"
	}
}

func buildMySQLDSN(config *csv2table.ConnectionConfig) string {
	cfg := mysql.NewConfig()
	cfg.User = config.Username
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = hostPort(config)
	cfg.DBName = config.Database
	cfg.Timeout = config.ConnectTimeout

	switch config.SSLMode {
	case "":
	case "disable":
		cfg.TLSConfig = "false"
	case "allow", "prefer":
		cfg.TLSConfig = "preferred"
	case "require":
		cfg.TLSConfig = "skip-verify"
	default:
		cfg.TLSConfig = "true"
	}

	for k, v := range config.AdditionalParams {
		if k == "tls" {
			cfg.TLSConfig = v
			continue
		}
		if cfg.Params == nil {
			cfg.Params = make(map[string]string)
		}
		cfg.Params[k] = v
	}

	return cfg.FormatDSN()
}
