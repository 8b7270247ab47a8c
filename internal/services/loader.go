package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/vvka-141/csv2table/internal/dialect"
	"github.com/vvka-141/csv2table/internal/schema"
	"github.com/vvka-141/csv2table/pkg/csv2table"
)

// LoaderOption configures a TableLoaderService.
type LoaderOption func(*TableLoaderService)

// WithStatementHook registers fn to receive the CREATE TABLE statement
// before it is executed.
func WithStatementHook(fn func(statement string)) LoaderOption {
	return func(s *TableLoaderService) { s.onStatement = fn }
}

// WithClock replaces time.Now for measuring the load duration.
func WithClock(now func() time.Time) LoaderOption {
	return func(s *TableLoaderService) { s.now = now }
}

// TableLoaderService implements csv2table.TableLoader.
// It is NOT safe for concurrent CreateAndLoad calls on the same instance.
type TableLoaderService struct {
	connectorFactory csv2table.ConnectorFactory
	logger           csv2table.Logger
	onStatement      func(string)
	now              func() time.Time
}

// NewTableLoaderService panics on nil dependencies; those are wiring bugs.
func NewTableLoaderService(
	connectorFactory csv2table.ConnectorFactory,
	logger csv2table.Logger,
	opts ...LoaderOption,
) *TableLoaderService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	s := &TableLoaderService{
		connectorFactory: connectorFactory,
		logger:           logger,
		onStatement:      func(string) {},
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateAndLoad creates req.TableName from the first record's keys and
// inserts every record in one transaction.
//
// Validation failures return before any database call. Any failure after
// the transaction starts rolls it back; on engines without transactional
// DDL the empty table remains.
func (s *TableLoaderService) CreateAndLoad(ctx context.Context, req csv2table.LoadRequest) (*csv2table.LoadResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tableSchema, err := schema.Infer(req.TableName, req.Records)
	if err != nil {
		return nil, err
	}

	d, err := dialect.Lookup(req.Connection.Dialect)
	if err != nil {
		return nil, err
	}

	ddl := schema.CreateTable(d, tableSchema)
	insert := schema.Insert(d, tableSchema)
	s.onStatement(ddl)

	connector, err := s.connectorFactory(req.Connection)
	if err != nil {
		return nil, fmt.Errorf("failed to create connector: %w", err)
	}
	if closer, ok := connector.(io.Closer); ok {
		defer closer.Close()
	}

	start := s.now()

	conn, err := connector.Connect(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	rows, err := s.load(ctx, conn, d, tableSchema, ddl, insert, req)
	if err != nil {
		return nil, err
	}

	result := &csv2table.LoadResult{
		Table:        tableSchema.Table,
		Statement:    ddl,
		RowsInserted: rows,
		Duration:     s.now().Sub(start),
	}
	s.logger.Info("Loaded %d rows into %s in %v", rows, tableSchema.Table, result.Duration.Round(time.Millisecond))
	return result, nil
}

// load runs the DDL and inserts inside one transaction.
func (s *TableLoaderService) load(
	ctx context.Context,
	conn *sql.DB,
	d dialect.Dialect,
	tableSchema *csv2table.Schema,
	ddl, insert string,
	req csv2table.LoadRequest,
) (n int, err error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to begin transaction: %w", csv2table.ErrDatabase, err)
	}
	defer func() {
		if err == nil {
			return
		}
		s.logger.Verbose("Rolling back transaction")
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			err = errors.Join(err, fmt.Errorf("rollback failed: %w", rbErr))
		}
		if !d.TransactionalDDL() {
			s.logger.Info("Warning: %s commits CREATE TABLE immediately; table %s may remain empty",
				d.Name(), tableSchema.Table)
		}
	}()

	s.logger.Verbose("Creating table %s", tableSchema.Table)
	if _, err := tx.ExecContext(ctx, ddl); err != nil {
		return 0, fmt.Errorf("%w: create table %s: %w", csv2table.ErrDatabase, tableSchema.Table, err)
	}

	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare insert: %w", csv2table.ErrDatabase, err)
	}
	defer stmt.Close()

	s.logger.Verbose("Inserting %d rows: %s", len(req.Records), insert)
	for i, rec := range req.Records {
		args := schema.InsertArgs(tableSchema, rec, req.UserID)
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return 0, fmt.Errorf("%w: insert row %d %s: %w",
				csv2table.ErrDatabase, i+1, preview(rec), err)
		}
		n++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %w", csv2table.ErrDatabase, err)
	}
	return n, nil
}

// preview renders a record for error messages, bounded in length.
func preview(rec csv2table.Record) string {
	s := rec.String()
	r := []rune(s)
	if len(r) <= csv2table.MaxErrorPreviewLength {
		return s
	}
	return string(r[:csv2table.MaxErrorPreviewLength]) + "...}"
}
