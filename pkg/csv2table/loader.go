package csv2table

import "context"

// TableLoader creates a table from records and loads them in one transaction.
type TableLoader interface {
	// CreateAndLoad validates the request, executes the generated CREATE TABLE
	// and inserts every record. Either all rows are committed or none are.
	CreateAndLoad(ctx context.Context, req LoadRequest) (*LoadResult, error)
}
