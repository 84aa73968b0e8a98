package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

// ReserveCopy takes one copy out of the shelf with a single conditional update.
// The row lock taken by the update serializes concurrent reservations of the same book.
func (t *pgTx) ReserveCopy(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	stmt := dialect().Update(tableBooks).
		Set(goqu.Record{
			"copies_available": goqu.L(`"copies_available" - 1`),
			"updated_at":       goqu.L("NOW()"),
		}).
		Where(
			goqu.C("id").Eq(bookID.String()),
			goqu.C("copies_available").Gt(0),
		).
		Returning(bookColumns()...)

	var book circulation.Book

	found, err := t.queryOne(ctx, "reserve copy", stmt, func(row rowScanner) error {
		var scanErr error
		book, scanErr = scanBook(row)
		return scanErr
	})
	if err != nil {
		return circulation.Book{}, err
	}

	if !found {
		return circulation.Book{}, circulation.ErrOutOfStock
	}

	t.store.logOperationWithContext(
		ctx,
		logMsgCopyReserved,
		logAttrBookID, bookID.String(),
		logAttrCopiesAvailable, book.CopiesAvailable,
		logAttrCopiesTotal, book.CopiesTotal,
	)
	t.store.recordCopiesAvailable(ctx, "reserve_copy", book.CopiesAvailable)

	return book, nil
}

// ReleaseCopy puts one copy back on the shelf with a single conditional update.
// A release that would push availability above the total is reported, never clamped.
func (t *pgTx) ReleaseCopy(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	stmt := dialect().Update(tableBooks).
		Set(goqu.Record{
			"copies_available": goqu.L(`"copies_available" + 1`),
			"updated_at":       goqu.L("NOW()"),
		}).
		Where(
			goqu.C("id").Eq(bookID.String()),
			goqu.C("copies_available").Lt(goqu.C("copies_total")),
		).
		Returning(bookColumns()...)

	var book circulation.Book

	found, err := t.queryOne(ctx, "release copy", stmt, func(row rowScanner) error {
		var scanErr error
		book, scanErr = scanBook(row)
		return scanErr
	})
	if err != nil {
		return circulation.Book{}, err
	}

	if !found {
		return circulation.Book{}, t.explainFailedRelease(ctx, bookID)
	}

	t.store.logOperationWithContext(
		ctx,
		logMsgCopyReleased,
		logAttrBookID, bookID.String(),
		logAttrCopiesAvailable, book.CopiesAvailable,
		logAttrCopiesTotal, book.CopiesTotal,
	)
	t.store.recordCopiesAvailable(ctx, "release_copy", book.CopiesAvailable)

	return book, nil
}

// explainFailedRelease distinguishes a missing book from an inventory invariant violation.
func (t *pgTx) explainFailedRelease(ctx context.Context, bookID uuid.UUID) error {
	book, err := t.GetBook(ctx, bookID)
	if err != nil {
		return err
	}

	t.store.logErrorWithContext(
		ctx,
		logMsgInvariantViolated,
		circulation.ErrInventoryInvariantViolated,
		logAttrBookID, bookID.String(),
		logAttrCopiesAvailable, book.CopiesAvailable,
		logAttrCopiesTotal, book.CopiesTotal,
	)

	return circulation.ErrInventoryInvariantViolated
}
