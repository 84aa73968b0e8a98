package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const tableLoans = "loans"

func loanColumns() []any {
	return []any{
		goqu.I("loans.id"),
		goqu.I("loans.book_id"),
		goqu.I("loans.user_id"),
		goqu.I("loans.loan_date"),
		goqu.I("loans.due_date"),
		goqu.I("loans.return_date"),
		goqu.I("loans.is_returned"),
		goqu.L(`"loans"."late_fee"::text`),
		goqu.I("loans.notes"),
		goqu.I("loans.created_at"),
		goqu.I("loans.updated_at"),
	}
}

func loanDetailsColumns() []any {
	return append(
		loanColumns(),
		goqu.I("books.title"),
		goqu.I("library_users.name"),
		goqu.I("library_users.member_id"),
	)
}

func loanScanTargets(l *circulation.Loan, rawLateFee *string) []any {
	return []any{
		&l.ID,
		&l.BookID,
		&l.UserID,
		&l.LoanDate,
		&l.DueDate,
		&l.ReturnDate,
		&l.IsReturned,
		rawLateFee,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	}
}

func scanLoan(row rowScanner) (circulation.Loan, error) {
	var l circulation.Loan
	var rawLateFee string

	if err := row.Scan(loanScanTargets(&l, &rawLateFee)...); err != nil {
		return circulation.Loan{}, err
	}

	var err error
	l.LateFee, err = decimal.NewFromString(rawLateFee)

	return l, err
}

func scanLoanDetails(row rowScanner) (circulation.LoanDetails, error) {
	var d circulation.LoanDetails
	var rawLateFee string

	targets := append(loanScanTargets(&d.Loan, &rawLateFee), &d.BookTitle, &d.UserName, &d.MemberID)
	if err := row.Scan(targets...); err != nil {
		return circulation.LoanDetails{}, err
	}

	var err error
	d.LateFee, err = decimal.NewFromString(rawLateFee)

	return d, err
}

func (t *pgTx) scanOneLoan(ctx context.Context, action string, stmt sqlBuilder) (circulation.Loan, error) {
	var loan circulation.Loan

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		var scanErr error
		loan, scanErr = scanLoan(row)
		return scanErr
	})
	if err != nil {
		return circulation.Loan{}, err
	}

	if !found {
		return circulation.Loan{}, circulation.ErrLoanNotFound
	}

	return loan, nil
}

func loansWithDetails() *goqu.SelectDataset {
	return dialect().From(tableLoans).
		Select(loanDetailsColumns()...).
		InnerJoin(goqu.T(tableBooks), goqu.On(goqu.I("books.id").Eq(goqu.I("loans.book_id")))).
		InnerJoin(goqu.T(tableUsers), goqu.On(goqu.I("library_users.id").Eq(goqu.I("loans.user_id"))))
}

// InsertLoan stores a new active loan. The loan date defaults to the current date.
func (t *pgTx) InsertLoan(ctx context.Context, loan circulation.Loan) (circulation.Loan, error) {
	record := goqu.Record{
		"id":          newID(loan.ID).String(),
		"book_id":     loan.BookID.String(),
		"user_id":     loan.UserID.String(),
		"due_date":    dateValue(&loan.DueDate),
		"is_returned": false,
		"late_fee":    goqu.L("CAST(? AS NUMERIC)", decimal.Zero.String()),
		"notes":       loan.Notes,
	}

	if !loan.LoanDate.IsZero() {
		record["loan_date"] = dateValue(&loan.LoanDate)
	}

	stmt := dialect().Insert(tableLoans).
		Rows(record).
		Returning(loanColumns()...)

	return t.scanOneLoan(ctx, "insert loan", stmt)
}

// LockLoan reads one loan FOR UPDATE.
func (t *pgTx) LockLoan(ctx context.Context, loanID uuid.UUID) (circulation.Loan, error) {
	stmt := dialect().From(tableLoans).
		Select(loanColumns()...).
		Where(goqu.I("loans.id").Eq(loanID.String())).
		ForUpdate(exp.Wait)

	return t.scanOneLoan(ctx, "lock loan", stmt)
}

// MarkLoanReturned moves an active loan to returned with a conditional update.
func (t *pgTx) MarkLoanReturned(
	ctx context.Context,
	loanID uuid.UUID,
	returnDate time.Time,
	lateFee decimal.Decimal,
) (circulation.Loan, error) {

	stmt := dialect().Update(tableLoans).
		Set(goqu.Record{
			"is_returned": true,
			"return_date": dateValue(&returnDate),
			"late_fee":    goqu.L("CAST(? AS NUMERIC)", lateFee.String()),
			"updated_at":  goqu.L("NOW()"),
		}).
		Where(
			goqu.C("id").Eq(loanID.String()),
			goqu.C("is_returned").IsFalse(),
		).
		Returning(loanColumns()...)

	loan, err := t.scanOneLoan(ctx, "mark loan returned", stmt)
	if errors.Is(err, circulation.ErrLoanNotFound) {
		return circulation.Loan{}, circulation.ErrConcurrencyConflict
	}

	return loan, err
}

// DeleteLoan removes a loan row.
func (t *pgTx) DeleteLoan(ctx context.Context, loanID uuid.UUID) error {
	stmt := dialect().Delete(tableLoans).Where(goqu.C("id").Eq(loanID.String()))

	rowsAffected, err := t.exec(ctx, "delete loan", stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return circulation.ErrLoanNotFound
	}

	return nil
}

// CountActiveLoansForBook counts the loans of a book that are not returned yet.
func (t *pgTx) CountActiveLoansForBook(ctx context.Context, bookID uuid.UUID) (int, error) {
	stmt := dialect().From(tableLoans).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("book_id").Eq(bookID.String()),
			goqu.C("is_returned").IsFalse(),
		)

	return t.count(ctx, "count active loans for book", stmt)
}

// CountActiveLoansForUser counts the loans of a user that are not returned yet.
func (t *pgTx) CountActiveLoansForUser(ctx context.Context, userID uuid.UUID) (int, error) {
	stmt := dialect().From(tableLoans).
		Select(goqu.COUNT(goqu.Star())).
		Where(
			goqu.C("user_id").Eq(userID.String()),
			goqu.C("is_returned").IsFalse(),
		)

	return t.count(ctx, "count active loans for user", stmt)
}

// GetLoanDetails reads one loan joined with book title, user name and member id.
func (t *pgTx) GetLoanDetails(ctx context.Context, loanID uuid.UUID) (circulation.LoanDetails, error) {
	stmt := loansWithDetails().Where(goqu.I("loans.id").Eq(loanID.String()))

	var details circulation.LoanDetails

	found, err := t.queryOne(ctx, "get loan details", stmt, func(row rowScanner) error {
		var scanErr error
		details, scanErr = scanLoanDetails(row)
		return scanErr
	})
	if err != nil {
		return circulation.LoanDetails{}, err
	}

	if !found {
		return circulation.LoanDetails{}, circulation.ErrLoanNotFound
	}

	return details, nil
}

// ListLoans returns loans with details, newest loan date first.
func (t *pgTx) ListLoans(ctx context.Context, filter circulation.LoanFilter) ([]circulation.LoanDetails, error) {
	stmt := loansWithDetails().
		Order(goqu.I("loans.loan_date").Desc(), goqu.I("loans.created_at").Desc())

	switch filter.Status {
	case circulation.LoanFilterActive:
		stmt = stmt.Where(goqu.I("loans.is_returned").IsFalse())
	case circulation.LoanFilterReturned:
		stmt = stmt.Where(goqu.I("loans.is_returned").IsTrue())
	case circulation.LoanFilterOverdue:
		asOf := filter.AsOf
		if asOf.IsZero() {
			asOf = time.Now()
		}

		stmt = stmt.Where(
			goqu.I("loans.is_returned").IsFalse(),
			goqu.I("loans.due_date").Lt(goqu.L("?::date", circulation.TruncateToDate(asOf).Format(dateLayout))),
		)
	}

	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		stmt = stmt.Where(goqu.Or(
			goqu.I("books.title").ILike(pattern),
			goqu.I("library_users.name").ILike(pattern),
			goqu.I("library_users.member_id").ILike(pattern),
		))
	}

	loans := make([]circulation.LoanDetails, 0)

	err := t.query(ctx, "list loans", stmt, func(row rowScanner) error {
		details, scanErr := scanLoanDetails(row)
		if scanErr != nil {
			return scanErr
		}

		loans = append(loans, details)

		return nil
	})

	return loans, err
}
