package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

type fakeMSSQLError struct{ number int32 }

func (e fakeMSSQLError) Error() string         { return fmt.Sprintf("mssql: error %d", e.number) }
func (e fakeMSSQLError) SQLErrorNumber() int32 { return e.number }

type fakeSQLiteError struct{ code int }

func (e *fakeSQLiteError) Error() string { return fmt.Sprintf("sqlite: code %d", e.code) }
func (e *fakeSQLiteError) Code() int     { return e.code }

func TestClassifier_IsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"wrapped canceled connection refused", fmt.Errorf("connection refused: %w", context.Canceled), false},

		{"pg connection failure", &pgconn.PgError{Code: "08006"}, true},
		{"pg too many connections", &pgconn.PgError{Code: "53300"}, true},
		{"pg admin shutdown", &pgconn.PgError{Code: "57P01"}, true},
		{"pg deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"pg duplicate table", &pgconn.PgError{Code: "42P07"}, false},
		{"pg auth failed", &pgconn.PgError{Code: "28P01"}, false},
		{"wrapped pg", fmt.Errorf("ping: %w", &pgconn.PgError{Code: "57P03"}), true},

		{"mysql too many connections", &mysql.MySQLError{Number: 1040}, true},
		{"mysql deadlock", &mysql.MySQLError{Number: 1213}, true},
		{"mysql access denied", &mysql.MySQLError{Number: 1045}, false},
		{"mysql table exists", &mysql.MySQLError{Number: 1050}, false},
		{"mysql invalid conn", mysql.ErrInvalidConn, true},

		{"mssql deadlock", fakeMSSQLError{1205}, true},
		{"mssql azure busy", fakeMSSQLError{40501}, true},
		{"mssql login failed", fakeMSSQLError{18456}, false},
		{"mssql object exists", fakeMSSQLError{2714}, false},

		{"sqlite busy", &fakeSQLiteError{5}, true},
		{"sqlite extended busy", &fakeSQLiteError{5 | 1<<8}, true},
		{"sqlite constraint", &fakeSQLiteError{19}, false},

		{"bad conn", driver.ErrBadConn, true},
		{"refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, true},
		{"reset", &net.OpError{Op: "read", Err: syscall.ECONNRESET}, true},
		{"dns temporary", &net.DNSError{Err: "lookup", IsTemporary: true}, true},
		{"dns not found", &net.DNSError{Err: "lookup", IsNotFound: true}, false},
		{"message pattern", errors.New("read tcp: i/o timeout"), true},
		{"plain", errors.New("syntax error"), false},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsTransient(tt.err))
		})
	}
}
