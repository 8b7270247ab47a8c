package retry

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE classes and codes that indicate a transient condition.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
var (
	pgTransientClasses = []string{
		"08", // connection exception
		"53", // insufficient resources
		"57", // operator intervention
	}
	pgTransientCodes = map[string]bool{
		"40001": true, // serialization_failure
		"40P01": true, // deadlock_detected
		"55P03": true, // lock_not_available
	}
)

// MySQL server error numbers.
var mysqlTransient = map[uint16]bool{
	1040: true, // ER_CON_COUNT_ERROR
	1053: true, // ER_SERVER_SHUTDOWN
	1205: true, // ER_LOCK_WAIT_TIMEOUT
	1213: true, // ER_LOCK_DEADLOCK
	1158: true, // ER_NET_READ_ERROR
	1159: true, // ER_NET_READ_INTERRUPTED
	1160: true, // ER_NET_ERROR_ON_WRITE
	1161: true, // ER_NET_WRITE_INTERRUPTED
}

// SQL Server error numbers, including the Azure SQL transient set.
var mssqlTransient = map[int32]bool{
	233:   true,
	1205:  true, // deadlock victim
	4060:  true,
	10053: true,
	10054: true,
	10060: true,
	10928: true,
	10929: true,
	40197: true,
	40501: true,
	40613: true,
	49918: true,
	49919: true,
	49920: true,
}

// SQLite primary result codes.
const (
	sqliteBusy   = 5
	sqliteLocked = 6
)

// sqlServerError matches go-mssqldb's mssql.Error without importing it here.
type sqlServerError interface {
	SQLErrorNumber() int32
}

// sqliteError matches modernc.org/sqlite's *sqlite.Error.
type sqliteError interface {
	Code() int
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"connection timeout",
	"no such host",
	"network is unreachable",
	"i/o timeout",
	"broken pipe",
	"too many connections",
	"server closed the connection",
	"unexpected eof",
	"database is locked",
}

// Classifier reports whether a database error is worth retrying.
// It understands PostgreSQL, MySQL, SQL Server and SQLite errors.
type Classifier struct{}

// NewClassifier returns a Classifier.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsTransient implements csv2table.ErrorClassifier.
// Context cancellation is never transient.
func (c *Classifier) IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgTransient(pgErr.Code)
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return mysqlTransient[myErr.Number]
	}

	var msErr sqlServerError
	if errors.As(err, &msErr) {
		return mssqlTransient[msErr.SQLErrorNumber()]
	}

	var liteErr sqliteError
	if errors.As(err, &liteErr) {
		code := liteErr.Code() & 0xff
		return code == sqliteBusy || code == sqliteLocked
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	return networkError(err) || matchesPattern(err)
}

func pgTransient(code string) bool {
	if pgTransientCodes[code] {
		return true
	}
	for _, class := range pgTransientClasses {
		if strings.HasPrefix(code, class) {
			return true
		}
	}
	return false
}

func networkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		for _, errno := range []syscall.Errno{
			syscall.ECONNREFUSED,
			syscall.ECONNRESET,
			syscall.ENETUNREACH,
			syscall.EHOSTUNREACH,
		} {
			if errors.Is(opErr.Err, errno) {
				return true
			}
		}
	}
	return false
}

func matchesPattern(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
