package memoryengine

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const moneyPlaces = circulation.MoneyPlaces

// memTx works on a private copy of the state. It is only used by one goroutine at a time.
type memTx struct {
	store *Store
	st    *state
	now   time.Time
}

var _ circulation.Tx = (*memTx)(nil)

func newID(id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}

	return uuid.Must(uuid.NewV7())
}

func dateOf(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	d := circulation.TruncateToDate(*t)

	return &d
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func containsFoldPtr(haystack *string, needle string) bool {
	return haystack != nil && containsFold(*haystack, needle)
}

/***** inventory *****/

func (tx *memTx) ReserveCopy(_ context.Context, bookID uuid.UUID) (circulation.Book, error) {
	book, ok := tx.st.books[bookID]
	if !ok || book.CopiesAvailable <= 0 {
		return circulation.Book{}, circulation.ErrOutOfStock
	}

	book.CopiesAvailable--
	book.UpdatedAt = tx.now
	tx.st.books[bookID] = book

	return tx.withAuthorName(book), nil
}

func (tx *memTx) ReleaseCopy(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	book, ok := tx.st.books[bookID]
	if !ok {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	if book.CopiesAvailable >= book.CopiesTotal {
		tx.store.logError(
			ctx,
			"inventory invariant violated",
			"book_id", bookID.String(),
			"copies_available", book.CopiesAvailable,
			"copies_total", book.CopiesTotal,
		)

		return circulation.Book{}, circulation.ErrInventoryInvariantViolated
	}

	book.CopiesAvailable++
	book.UpdatedAt = tx.now
	tx.st.books[bookID] = book

	return tx.withAuthorName(book), nil
}

/***** balance *****/

func (tx *memTx) CreditBalance(_ context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, circulation.ErrNegativeAmount
	}

	return tx.moveBalance(userID, amount)
}

func (tx *memTx) DebitBalance(_ context.Context, userID uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.IsNegative() {
		return decimal.Zero, circulation.ErrNegativeAmount
	}

	return tx.moveBalance(userID, amount.Neg())
}

func (tx *memTx) moveBalance(userID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	user, ok := tx.st.users[userID]
	if !ok {
		return decimal.Zero, circulation.ErrUserNotFound
	}

	user.OutstandingBalance = user.OutstandingBalance.Add(delta).Round(moneyPlaces)
	user.UpdatedAt = tx.now
	tx.st.users[userID] = user

	return user.OutstandingBalance, nil
}

/***** loans *****/

func (tx *memTx) InsertLoan(_ context.Context, loan circulation.Loan) (circulation.Loan, error) {
	if _, ok := tx.st.books[loan.BookID]; !ok {
		return circulation.Loan{}, errors.Join(circulation.ErrBookNotFound, circulation.ErrForeignKeyViolation)
	}

	if _, ok := tx.st.users[loan.UserID]; !ok {
		return circulation.Loan{}, errors.Join(circulation.ErrUserNotFound, circulation.ErrForeignKeyViolation)
	}

	if loan.LateFee.IsNegative() {
		return circulation.Loan{}, circulation.ErrCheckViolation
	}

	loan.ID = newID(loan.ID)
	if _, exists := tx.st.loans[loan.ID]; exists {
		return circulation.Loan{}, circulation.ErrUniqueViolation
	}

	if loan.LoanDate.IsZero() {
		loan.LoanDate = tx.now
	}

	loan.LoanDate = circulation.TruncateToDate(loan.LoanDate)
	loan.DueDate = circulation.TruncateToDate(loan.DueDate)
	loan.ReturnDate = dateOf(loan.ReturnDate)
	loan.LateFee = loan.LateFee.Round(moneyPlaces)
	loan.CreatedAt = tx.now
	loan.UpdatedAt = tx.now
	tx.st.loans[loan.ID] = loan

	return loan, nil
}

func (tx *memTx) LockLoan(_ context.Context, loanID uuid.UUID) (circulation.Loan, error) {
	loan, ok := tx.st.loans[loanID]
	if !ok {
		return circulation.Loan{}, circulation.ErrLoanNotFound
	}

	return loan, nil
}

func (tx *memTx) MarkLoanReturned(
	_ context.Context,
	loanID uuid.UUID,
	returnDate time.Time,
	lateFee decimal.Decimal,
) (circulation.Loan, error) {

	loan, ok := tx.st.loans[loanID]
	if !ok || loan.IsReturned {
		return circulation.Loan{}, circulation.ErrConcurrencyConflict
	}

	if lateFee.IsNegative() {
		return circulation.Loan{}, circulation.ErrCheckViolation
	}

	loan.IsReturned = true
	loan.ReturnDate = dateOf(&returnDate)
	loan.LateFee = lateFee.Round(moneyPlaces)
	loan.UpdatedAt = tx.now
	tx.st.loans[loanID] = loan

	return loan, nil
}

func (tx *memTx) DeleteLoan(_ context.Context, loanID uuid.UUID) error {
	if _, ok := tx.st.loans[loanID]; !ok {
		return circulation.ErrLoanNotFound
	}

	delete(tx.st.loans, loanID)

	return nil
}

func (tx *memTx) CountActiveLoansForBook(_ context.Context, bookID uuid.UUID) (int, error) {
	return tx.countActiveLoans(func(l circulation.Loan) bool { return l.BookID == bookID }), nil
}

func (tx *memTx) CountActiveLoansForUser(_ context.Context, userID uuid.UUID) (int, error) {
	return tx.countActiveLoans(func(l circulation.Loan) bool { return l.UserID == userID }), nil
}

func (tx *memTx) countActiveLoans(match func(circulation.Loan) bool) int {
	count := 0

	for _, loan := range tx.st.loans {
		if !loan.IsReturned && match(loan) {
			count++
		}
	}

	return count
}

func (tx *memTx) GetLoanDetails(_ context.Context, loanID uuid.UUID) (circulation.LoanDetails, error) {
	loan, ok := tx.st.loans[loanID]
	if !ok {
		return circulation.LoanDetails{}, circulation.ErrLoanNotFound
	}

	return tx.detailsOf(loan), nil
}

func (tx *memTx) detailsOf(loan circulation.Loan) circulation.LoanDetails {
	book := tx.st.books[loan.BookID]
	user := tx.st.users[loan.UserID]

	return circulation.LoanDetails{
		Loan:      loan,
		BookTitle: book.Title,
		UserName:  user.Name,
		MemberID:  user.MemberID,
	}
}

func (tx *memTx) ListLoans(_ context.Context, filter circulation.LoanFilter) ([]circulation.LoanDetails, error) {
	asOf := filter.AsOf
	if asOf.IsZero() {
		asOf = tx.now
	}

	loans := make([]circulation.LoanDetails, 0)

	for _, loan := range tx.st.loans {
		switch filter.Status {
		case circulation.LoanFilterActive:
			if loan.IsReturned {
				continue
			}
		case circulation.LoanFilterReturned:
			if !loan.IsReturned {
				continue
			}
		case circulation.LoanFilterOverdue:
			if !loan.IsOverdue(asOf) {
				continue
			}
		}

		details := tx.detailsOf(loan)

		if filter.Search != "" &&
			!containsFold(details.BookTitle, filter.Search) &&
			!containsFold(details.UserName, filter.Search) &&
			!containsFold(details.MemberID, filter.Search) {

			continue
		}

		loans = append(loans, details)
	}

	slices.SortFunc(loans, func(a, b circulation.LoanDetails) int {
		return cmp.Or(
			b.LoanDate.Compare(a.LoanDate),
			b.CreatedAt.Compare(a.CreatedAt),
			strings.Compare(b.ID.String(), a.ID.String()),
		)
	})

	return loans, nil
}

/***** payments *****/

func (tx *memTx) InsertPayment(_ context.Context, payment circulation.Payment) (circulation.Payment, error) {
	if _, ok := tx.st.users[payment.UserID]; !ok {
		return circulation.Payment{}, errors.Join(circulation.ErrUserNotFound, circulation.ErrForeignKeyViolation)
	}

	payment.Amount = payment.Amount.Round(moneyPlaces)
	if !payment.Amount.IsPositive() || payment.Amount.GreaterThanOrEqual(circulation.MaxMoneyAmount) {
		return circulation.Payment{}, circulation.ErrCheckViolation
	}

	for _, existing := range tx.st.payments {
		if existing.ProviderSessionID == payment.ProviderSessionID {
			return circulation.Payment{}, circulation.ErrUniqueViolation
		}
	}

	if payment.Status == "" {
		payment.Status = circulation.PaymentPending
	}

	payment.ID = newID(payment.ID)
	payment.CreatedAt = tx.now
	payment.UpdatedAt = tx.now
	tx.st.payments[payment.ID] = payment

	return payment, nil
}

func (tx *memTx) LockPaymentBySessionID(_ context.Context, sessionID string) (circulation.Payment, error) {
	for _, payment := range tx.st.payments {
		if payment.ProviderSessionID == sessionID {
			return payment, nil
		}
	}

	return circulation.Payment{}, circulation.ErrPaymentNotFound
}

func (tx *memTx) MarkPaymentCompleted(
	_ context.Context,
	paymentID uuid.UUID,
	paymentIntent *string,
	paidAt time.Time,
) (circulation.Payment, error) {

	return tx.leavePending(paymentID, func(p *circulation.Payment) {
		paid := paidAt.UTC()
		p.Status = circulation.PaymentCompleted
		p.ProviderPaymentIntent = paymentIntent
		p.PaidAt = &paid
	})
}

func (tx *memTx) MarkPaymentFailed(_ context.Context, paymentID uuid.UUID) (circulation.Payment, error) {
	return tx.leavePending(paymentID, func(p *circulation.Payment) {
		p.Status = circulation.PaymentFailed
	})
}

func (tx *memTx) leavePending(paymentID uuid.UUID, apply func(*circulation.Payment)) (circulation.Payment, error) {
	payment, ok := tx.st.payments[paymentID]
	if !ok || payment.Status != circulation.PaymentPending {
		return circulation.Payment{}, circulation.ErrConcurrencyConflict
	}

	apply(&payment)
	payment.UpdatedAt = tx.now
	tx.st.payments[paymentID] = payment

	return payment, nil
}

func (tx *memTx) ListPaymentsForUser(_ context.Context, userID uuid.UUID) ([]circulation.Payment, error) {
	payments := make([]circulation.Payment, 0)

	for _, payment := range tx.st.payments {
		if payment.UserID == userID {
			payments = append(payments, payment)
		}
	}

	slices.SortFunc(payments, func(a, b circulation.Payment) int {
		return cmp.Or(
			b.CreatedAt.Compare(a.CreatedAt),
			strings.Compare(b.ID.String(), a.ID.String()),
		)
	})

	return payments, nil
}

/***** catalog *****/

func (tx *memTx) InsertAuthor(_ context.Context, author circulation.Author) (circulation.Author, error) {
	if author.Name == "" {
		return circulation.Author{}, circulation.ErrCheckViolation
	}

	author.ID = newID(author.ID)
	if _, exists := tx.st.authors[author.ID]; exists {
		return circulation.Author{}, circulation.ErrUniqueViolation
	}

	author.BirthDate = dateOf(author.BirthDate)
	author.CreatedAt = tx.now
	author.UpdatedAt = tx.now
	tx.st.authors[author.ID] = author

	return author, nil
}

func (tx *memTx) UpdateAuthor(_ context.Context, author circulation.Author) (circulation.Author, error) {
	existing, ok := tx.st.authors[author.ID]
	if !ok {
		return circulation.Author{}, circulation.ErrAuthorNotFound
	}

	if author.Name == "" {
		return circulation.Author{}, circulation.ErrCheckViolation
	}

	existing.Name = author.Name
	existing.Biography = author.Biography
	existing.Nationality = author.Nationality
	existing.BirthDate = dateOf(author.BirthDate)
	existing.UpdatedAt = tx.now
	tx.st.authors[author.ID] = existing

	return existing, nil
}

func (tx *memTx) GetAuthor(_ context.Context, authorID uuid.UUID) (circulation.Author, error) {
	author, ok := tx.st.authors[authorID]
	if !ok {
		return circulation.Author{}, circulation.ErrAuthorNotFound
	}

	return author, nil
}

func (tx *memTx) LockAuthor(ctx context.Context, authorID uuid.UUID) (circulation.Author, error) {
	return tx.GetAuthor(ctx, authorID)
}

func (tx *memTx) ListAuthors(_ context.Context, search string) ([]circulation.Author, error) {
	authors := make([]circulation.Author, 0)

	for _, author := range tx.st.authors {
		if search != "" && !containsFold(author.Name, search) && !containsFoldPtr(author.Nationality, search) {
			continue
		}

		authors = append(authors, author)
	}

	slices.SortFunc(authors, func(a, b circulation.Author) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.ID.String(), b.ID.String()))
	})

	return authors, nil
}

func (tx *memTx) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
	if _, ok := tx.st.authors[authorID]; !ok {
		return circulation.ErrAuthorNotFound
	}

	if count, _ := tx.CountBooksForAuthor(ctx, authorID); count > 0 {
		return circulation.ErrForeignKeyViolation
	}

	delete(tx.st.authors, authorID)

	return nil
}

func (tx *memTx) CountBooksForAuthor(_ context.Context, authorID uuid.UUID) (int, error) {
	count := 0

	for _, book := range tx.st.books {
		if book.AuthorID == authorID {
			count++
		}
	}

	return count, nil
}

func (tx *memTx) InsertBook(_ context.Context, book circulation.Book) (circulation.Book, error) {
	if _, ok := tx.st.authors[book.AuthorID]; !ok {
		return circulation.Book{}, errors.Join(circulation.ErrAuthorNotFound, circulation.ErrForeignKeyViolation)
	}

	if err := checkBook(book); err != nil {
		return circulation.Book{}, err
	}

	if book.Language == "" {
		book.Language = circulation.DefaultBookLanguage
	}

	book.ID = newID(book.ID)
	if _, exists := tx.st.books[book.ID]; exists {
		return circulation.Book{}, circulation.ErrUniqueViolation
	}

	book.CreatedAt = tx.now
	book.UpdatedAt = tx.now
	tx.st.books[book.ID] = book

	return tx.withAuthorName(book), nil
}

func (tx *memTx) UpdateBook(_ context.Context, book circulation.Book) (circulation.Book, error) {
	existing, ok := tx.st.books[book.ID]
	if !ok {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	if _, authorExists := tx.st.authors[book.AuthorID]; !authorExists {
		return circulation.Book{}, errors.Join(circulation.ErrAuthorNotFound, circulation.ErrForeignKeyViolation)
	}

	if err := checkBook(book); err != nil {
		return circulation.Book{}, err
	}

	book.CreatedAt = existing.CreatedAt
	book.UpdatedAt = tx.now
	tx.st.books[book.ID] = book

	return tx.withAuthorName(book), nil
}

func checkBook(book circulation.Book) error {
	if book.Title == "" || book.CopiesTotal < 1 || book.CopiesAvailable < 0 || book.CopiesAvailable > book.CopiesTotal {
		return fmt.Errorf("%w: title %q, copies %d/%d",
			circulation.ErrCheckViolation, book.Title, book.CopiesAvailable, book.CopiesTotal)
	}

	return nil
}

func (tx *memTx) withAuthorName(book circulation.Book) circulation.Book {
	book.AuthorName = tx.st.authors[book.AuthorID].Name

	return book
}

func (tx *memTx) GetBook(_ context.Context, bookID uuid.UUID) (circulation.Book, error) {
	book, ok := tx.st.books[bookID]
	if !ok {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	return tx.withAuthorName(book), nil
}

func (tx *memTx) LockBook(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	return tx.GetBook(ctx, bookID)
}

func (tx *memTx) ListBooks(_ context.Context, search string) ([]circulation.Book, error) {
	books := make([]circulation.Book, 0)

	for _, book := range tx.st.books {
		book = tx.withAuthorName(book)

		if search != "" &&
			!containsFold(book.Title, search) &&
			!containsFoldPtr(book.ISBN, search) &&
			!containsFold(book.AuthorName, search) {

			continue
		}

		books = append(books, book)
	}

	slices.SortFunc(books, func(a, b circulation.Book) int {
		return cmp.Or(strings.Compare(a.Title, b.Title), strings.Compare(a.ID.String(), b.ID.String()))
	})

	return books, nil
}

// DeleteBook removes the book and every loan of it, like the cascading foreign key does.
func (tx *memTx) DeleteBook(_ context.Context, bookID uuid.UUID) error {
	if _, ok := tx.st.books[bookID]; !ok {
		return circulation.ErrBookNotFound
	}

	delete(tx.st.books, bookID)

	for id, loan := range tx.st.loans {
		if loan.BookID == bookID {
			delete(tx.st.loans, id)
		}
	}

	return nil
}

/***** users *****/

func (tx *memTx) InsertUser(_ context.Context, user circulation.LibraryUser) (circulation.LibraryUser, error) {
	if user.Name == "" {
		return circulation.LibraryUser{}, circulation.ErrCheckViolation
	}

	user.ID = newID(user.ID)
	if _, exists := tx.st.users[user.ID]; exists {
		return circulation.LibraryUser{}, circulation.ErrUniqueViolation
	}

	tx.st.memberSeq++
	user.MemberID = fmt.Sprintf("U%03d", tx.st.memberSeq)

	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = tx.now
	}

	user.RegistrationDate = circulation.TruncateToDate(user.RegistrationDate)
	user.DateOfBirth = dateOf(user.DateOfBirth)
	user.OutstandingBalance = decimal.Zero
	user.CreatedAt = tx.now
	user.UpdatedAt = tx.now
	tx.st.users[user.ID] = user

	return user, nil
}

func (tx *memTx) UpdateUser(_ context.Context, user circulation.LibraryUser) (circulation.LibraryUser, error) {
	existing, ok := tx.st.users[user.ID]
	if !ok {
		return circulation.LibraryUser{}, circulation.ErrUserNotFound
	}

	if user.Name == "" {
		return circulation.LibraryUser{}, circulation.ErrCheckViolation
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.Phone = user.Phone
	existing.Address = user.Address
	existing.DateOfBirth = dateOf(user.DateOfBirth)
	existing.IsActive = user.IsActive
	existing.UpdatedAt = tx.now
	tx.st.users[user.ID] = existing

	return existing, nil
}

func (tx *memTx) GetUser(_ context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	user, ok := tx.st.users[userID]
	if !ok {
		return circulation.LibraryUser{}, circulation.ErrUserNotFound
	}

	return user, nil
}

func (tx *memTx) LockUserForShare(ctx context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	return tx.GetUser(ctx, userID)
}

func (tx *memTx) LockUserForUpdate(ctx context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	return tx.GetUser(ctx, userID)
}

func (tx *memTx) ListUsers(_ context.Context, search string) ([]circulation.LibraryUser, error) {
	users := make([]circulation.LibraryUser, 0)

	for _, user := range tx.st.users {
		if search != "" &&
			!containsFold(user.Name, search) &&
			!containsFold(user.MemberID, search) &&
			!containsFold(user.Email, search) {

			continue
		}

		users = append(users, user)
	}

	slices.SortFunc(users, func(a, b circulation.LibraryUser) int {
		return cmp.Or(strings.Compare(a.Name, b.Name), strings.Compare(a.MemberID, b.MemberID))
	})

	return users, nil
}

// DeleteUser removes the user with its loans and payments, like the cascading foreign keys do.
func (tx *memTx) DeleteUser(_ context.Context, userID uuid.UUID) error {
	if _, ok := tx.st.users[userID]; !ok {
		return circulation.ErrUserNotFound
	}

	delete(tx.st.users, userID)

	for id, loan := range tx.st.loans {
		if loan.UserID == userID {
			delete(tx.st.loans, id)
		}
	}

	for id, payment := range tx.st.payments {
		if payment.UserID == userID {
			delete(tx.st.payments, id)
		}
	}

	return nil
}

/***** events *****/

func (tx *memTx) AppendEvents(_ context.Context, events ...circulation.StorableEvent) error {
	for _, event := range events {
		event.SequenceNumber = uint64(len(tx.st.events) + 1)
		event.OccurredAt = event.OccurredAt.UTC()
		tx.st.events = append(tx.st.events, event)
	}

	return nil
}

func (tx *memTx) QueryEvents(_ context.Context, eventTypes ...string) (circulation.StorableEvents, error) {
	events := make(circulation.StorableEvents, 0)

	for _, event := range tx.st.events {
		if len(eventTypes) > 0 && !slices.Contains(eventTypes, event.EventType) {
			continue
		}

		events = append(events, event)
	}

	return events, nil
}
