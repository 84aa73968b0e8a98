package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/postgresengine/internal/adapters"
)

// pgTx implements circulation.Tx on top of one database transaction.
// All statements are built with goqu and sent as literal SQL.
type pgTx struct {
	store Store
	db    adapters.DBTx
}

type sqlBuilder interface {
	ToSQL() (string, []any, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func dialect() goqu.DialectWrapper {
	return goqu.Dialect(dialectPostgres)
}

func (t *pgTx) toSQL(ctx context.Context, action string, stmt sqlBuilder) (string, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		t.store.logErrorWithContext(ctx, logMsgBuildQueryFailed, toSQLErr, logAttrOperation, action)
		return "", errors.Join(circulation.ErrBuildingQueryFailed, toSQLErr)
	}

	return sqlQuery, nil
}

// query executes a statement that returns rows and hands every row to scan.
func (t *pgTx) query(ctx context.Context, action string, stmt sqlBuilder, scan func(row rowScanner) error) error {
	sqlQuery, err := t.toSQL(ctx, action, stmt)
	if err != nil {
		return err
	}

	start := time.Now()
	rows, queryErr := t.db.Query(ctx, sqlQuery)
	t.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		t.store.logErrorWithContext(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return errors.Join(circulation.ErrQueryingFailed, classifyDriverError(queryErr), queryErr)
	}
	defer t.closeRows(ctx, rows)

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			t.store.logErrorWithContext(ctx, logMsgScanRowFailed, scanErr, logAttrOperation, action)
			return errors.Join(circulation.ErrScanningDBRowFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		t.store.logErrorWithContext(ctx, logMsgDBQueryFailed, rowsErr, logAttrQuery, sqlQuery)
		return errors.Join(circulation.ErrQueryingFailed, classifyDriverError(rowsErr), rowsErr)
	}

	return nil
}

// queryOne executes a statement and scans the first row with scan. It reports whether a row was found.
func (t *pgTx) queryOne(ctx context.Context, action string, stmt sqlBuilder, scan func(row rowScanner) error) (bool, error) {
	found := false

	err := t.query(ctx, action, stmt, func(row rowScanner) error {
		if found {
			return nil
		}

		found = true

		return scan(row)
	})

	return found, err
}

// exec executes a statement without result rows and returns the number of affected rows.
func (t *pgTx) exec(ctx context.Context, action string, stmt sqlBuilder) (int64, error) {
	sqlQuery, err := t.toSQL(ctx, action, stmt)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	result, execErr := t.db.Exec(ctx, sqlQuery)
	t.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		t.store.logErrorWithContext(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return 0, errors.Join(circulation.ErrExecutingFailed, classifyDriverError(execErr), execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		t.store.logErrorWithContext(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return 0, errors.Join(circulation.ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	return rowsAffected, nil
}

// execRaw executes a plain SQL string, used for the schema migration.
func (t *pgTx) execRaw(ctx context.Context, action string, sqlQuery string) error {
	start := time.Now()
	_, execErr := t.db.Exec(ctx, sqlQuery)
	t.store.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		t.store.logErrorWithContext(ctx, logMsgDBExecFailed, execErr, logAttrOperation, action)
		return errors.Join(circulation.ErrExecutingFailed, classifyDriverError(execErr), execErr)
	}

	return nil
}

// count executes a COUNT(*) statement.
func (t *pgTx) count(ctx context.Context, action string, stmt sqlBuilder) (int, error) {
	var cnt int

	_, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		return row.Scan(&cnt)
	})

	return cnt, err
}

// closeRows safely closes database rows and logs any errors.
func (t *pgTx) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		t.store.logWarnWithContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}

func likePattern(search string) string {
	return "%" + search + "%"
}
