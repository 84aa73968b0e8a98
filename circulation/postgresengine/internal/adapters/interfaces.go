package adapters

import "context"

// DBAdapter defines the interface for database operations needed by the store.
type DBAdapter interface {
	BeginTx(ctx context.Context, opts TxOptions) (DBTx, error)
	Ping(ctx context.Context) error
}

// TxOptions configures a transaction. UseReplica is only honored for read-only transactions.
type TxOptions struct {
	ReadOnly   bool
	UseReplica bool
}

// DBTx defines the interface for statements executed inside one transaction.
type DBTx interface {
	Query(ctx context.Context, query string) (DBRows, error)
	Exec(ctx context.Context, query string) (DBResult, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DBRows defines the interface for query result rows.
type DBRows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
	Err() error
}

// DBResult defines the interface for execution results.
type DBResult interface {
	RowsAffected() (int64, error)
}
