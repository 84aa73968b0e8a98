package postgresengine

import (
	"context"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const (
	tableAuthors = "authors"
	tableBooks   = "books"
	dateLayout   = "2006-01-02"

	authorNameExpr = `COALESCE((SELECT "authors"."name" FROM "authors" WHERE "authors"."id" = "books"."author_id"), '')`
)

func authorColumns() []any {
	return []any{
		goqu.I("authors.id"),
		goqu.I("authors.name"),
		goqu.I("authors.biography"),
		goqu.I("authors.nationality"),
		goqu.I("authors.birth_date"),
		goqu.I("authors.created_at"),
		goqu.I("authors.updated_at"),
	}
}

func scanAuthor(row rowScanner) (circulation.Author, error) {
	var a circulation.Author

	err := row.Scan(&a.ID, &a.Name, &a.Biography, &a.Nationality, &a.BirthDate, &a.CreatedAt, &a.UpdatedAt)

	return a, err
}

func bookColumns() []any {
	return []any{
		goqu.I("books.id"),
		goqu.I("books.title"),
		goqu.I("books.isbn"),
		goqu.I("books.author_id"),
		goqu.L(authorNameExpr).As("author_name"),
		goqu.I("books.genre"),
		goqu.I("books.publication_year"),
		goqu.I("books.publisher"),
		goqu.I("books.pages"),
		goqu.I("books.language"),
		goqu.I("books.description"),
		goqu.I("books.copies_total"),
		goqu.I("books.copies_available"),
		goqu.I("books.created_at"),
		goqu.I("books.updated_at"),
	}
}

func scanBook(row rowScanner) (circulation.Book, error) {
	var b circulation.Book

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.ISBN,
		&b.AuthorID,
		&b.AuthorName,
		&b.Genre,
		&b.PublicationYear,
		&b.Publisher,
		&b.Pages,
		&b.Language,
		&b.Description,
		&b.CopiesTotal,
		&b.CopiesAvailable,
		&b.CreatedAt,
		&b.UpdatedAt,
	)

	return b, err
}

// dateValue renders an optional calendar date as a DATE literal or NULL.
func dateValue(t *time.Time) any {
	if t == nil {
		return nil
	}

	return goqu.L("?::date", t.Format(dateLayout))
}

func newID(id uuid.UUID) uuid.UUID {
	if id != uuid.Nil {
		return id
	}

	return uuid.Must(uuid.NewV7())
}

// InsertAuthor stores a new author.
func (t *pgTx) InsertAuthor(ctx context.Context, author circulation.Author) (circulation.Author, error) {
	stmt := dialect().Insert(tableAuthors).
		Rows(goqu.Record{
			"id":          newID(author.ID).String(),
			"name":        author.Name,
			"biography":   author.Biography,
			"nationality": author.Nationality,
			"birth_date":  dateValue(author.BirthDate),
		}).
		Returning(authorColumns()...)

	var inserted circulation.Author

	_, err := t.queryOne(ctx, "insert author", stmt, func(row rowScanner) error {
		var scanErr error
		inserted, scanErr = scanAuthor(row)
		return scanErr
	})

	return inserted, err
}

// UpdateAuthor overwrites the mutable columns of an author.
func (t *pgTx) UpdateAuthor(ctx context.Context, author circulation.Author) (circulation.Author, error) {
	stmt := dialect().Update(tableAuthors).
		Set(goqu.Record{
			"name":        author.Name,
			"biography":   author.Biography,
			"nationality": author.Nationality,
			"birth_date":  dateValue(author.BirthDate),
			"updated_at":  goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(author.ID.String())).
		Returning(authorColumns()...)

	var updated circulation.Author

	found, err := t.queryOne(ctx, "update author", stmt, func(row rowScanner) error {
		var scanErr error
		updated, scanErr = scanAuthor(row)
		return scanErr
	})
	if err != nil {
		return circulation.Author{}, err
	}

	if !found {
		return circulation.Author{}, circulation.ErrAuthorNotFound
	}

	return updated, nil
}

// GetAuthor reads one author.
func (t *pgTx) GetAuthor(ctx context.Context, authorID uuid.UUID) (circulation.Author, error) {
	return t.selectAuthor(ctx, "get author", authorID, false)
}

// LockAuthor reads one author FOR UPDATE.
func (t *pgTx) LockAuthor(ctx context.Context, authorID uuid.UUID) (circulation.Author, error) {
	return t.selectAuthor(ctx, "lock author", authorID, true)
}

func (t *pgTx) selectAuthor(ctx context.Context, action string, authorID uuid.UUID, lock bool) (circulation.Author, error) {
	stmt := dialect().From(tableAuthors).
		Select(authorColumns()...).
		Where(goqu.I("authors.id").Eq(authorID.String()))

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	var author circulation.Author

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		var scanErr error
		author, scanErr = scanAuthor(row)
		return scanErr
	})
	if err != nil {
		return circulation.Author{}, err
	}

	if !found {
		return circulation.Author{}, circulation.ErrAuthorNotFound
	}

	return author, nil
}

// ListAuthors returns the authors ordered by name, optionally filtered by a case-insensitive name or nationality match.
func (t *pgTx) ListAuthors(ctx context.Context, search string) ([]circulation.Author, error) {
	stmt := dialect().From(tableAuthors).
		Select(authorColumns()...).
		Order(goqu.I("authors.name").Asc())

	if search != "" {
		pattern := likePattern(search)
		stmt = stmt.Where(goqu.Or(
			goqu.I("authors.name").ILike(pattern),
			goqu.I("authors.nationality").ILike(pattern),
		))
	}

	authors := make([]circulation.Author, 0)

	err := t.query(ctx, "list authors", stmt, func(row rowScanner) error {
		author, scanErr := scanAuthor(row)
		if scanErr != nil {
			return scanErr
		}

		authors = append(authors, author)

		return nil
	})

	return authors, err
}

// DeleteAuthor removes an author. The foreign key from books makes this fail while books reference the author.
func (t *pgTx) DeleteAuthor(ctx context.Context, authorID uuid.UUID) error {
	stmt := dialect().Delete(tableAuthors).Where(goqu.C("id").Eq(authorID.String()))

	rowsAffected, err := t.exec(ctx, "delete author", stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return circulation.ErrAuthorNotFound
	}

	return nil
}

// CountBooksForAuthor counts the books referencing an author.
func (t *pgTx) CountBooksForAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	stmt := dialect().From(tableBooks).
		Select(goqu.COUNT(goqu.Star())).
		Where(goqu.C("author_id").Eq(authorID.String()))

	return t.count(ctx, "count books for author", stmt)
}

// InsertBook stores a new book. Language falls back to circulation.DefaultBookLanguage.
func (t *pgTx) InsertBook(ctx context.Context, book circulation.Book) (circulation.Book, error) {
	language := book.Language
	if language == "" {
		language = circulation.DefaultBookLanguage
	}

	stmt := dialect().Insert(tableBooks).
		Rows(goqu.Record{
			"id":               newID(book.ID).String(),
			"title":            book.Title,
			"isbn":             book.ISBN,
			"author_id":        book.AuthorID.String(),
			"genre":            book.Genre,
			"publication_year": book.PublicationYear,
			"publisher":        book.Publisher,
			"pages":            book.Pages,
			"language":         language,
			"description":      book.Description,
			"copies_total":     book.CopiesTotal,
			"copies_available": book.CopiesAvailable,
		}).
		Returning(bookColumns()...)

	var inserted circulation.Book

	_, err := t.queryOne(ctx, "insert book", stmt, func(row rowScanner) error {
		var scanErr error
		inserted, scanErr = scanBook(row)
		return scanErr
	})
	if errors.Is(err, circulation.ErrForeignKeyViolation) {
		return circulation.Book{}, errors.Join(circulation.ErrAuthorNotFound, err)
	}

	return inserted, err
}

// UpdateBook overwrites the mutable columns of a book, including both copy counters.
func (t *pgTx) UpdateBook(ctx context.Context, book circulation.Book) (circulation.Book, error) {
	stmt := dialect().Update(tableBooks).
		Set(goqu.Record{
			"title":            book.Title,
			"isbn":             book.ISBN,
			"author_id":        book.AuthorID.String(),
			"genre":            book.Genre,
			"publication_year": book.PublicationYear,
			"publisher":        book.Publisher,
			"pages":            book.Pages,
			"language":         book.Language,
			"description":      book.Description,
			"copies_total":     book.CopiesTotal,
			"copies_available": book.CopiesAvailable,
			"updated_at":       goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(book.ID.String())).
		Returning(bookColumns()...)

	var updated circulation.Book

	found, err := t.queryOne(ctx, "update book", stmt, func(row rowScanner) error {
		var scanErr error
		updated, scanErr = scanBook(row)
		return scanErr
	})
	if errors.Is(err, circulation.ErrForeignKeyViolation) {
		return circulation.Book{}, errors.Join(circulation.ErrAuthorNotFound, err)
	}

	if err != nil {
		return circulation.Book{}, err
	}

	if !found {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	return updated, nil
}

// GetBook reads one book with its author name.
func (t *pgTx) GetBook(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	return t.selectBook(ctx, "get book", bookID, false)
}

// LockBook reads one book FOR UPDATE.
func (t *pgTx) LockBook(ctx context.Context, bookID uuid.UUID) (circulation.Book, error) {
	return t.selectBook(ctx, "lock book", bookID, true)
}

func (t *pgTx) selectBook(ctx context.Context, action string, bookID uuid.UUID, lock bool) (circulation.Book, error) {
	stmt := dialect().From(tableBooks).
		Select(bookColumns()...).
		Where(goqu.I("books.id").Eq(bookID.String()))

	if lock {
		stmt = stmt.ForUpdate(exp.Wait)
	}

	var book circulation.Book

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		var scanErr error
		book, scanErr = scanBook(row)
		return scanErr
	})
	if err != nil {
		return circulation.Book{}, err
	}

	if !found {
		return circulation.Book{}, circulation.ErrBookNotFound
	}

	return book, nil
}

// ListBooks returns the books ordered by title, optionally filtered over title, isbn and author name.
func (t *pgTx) ListBooks(ctx context.Context, search string) ([]circulation.Book, error) {
	stmt := dialect().From(tableBooks).
		Select(bookColumns()...).
		Order(goqu.I("books.title").Asc())

	if search != "" {
		pattern := likePattern(search)
		stmt = stmt.Where(goqu.Or(
			goqu.I("books.title").ILike(pattern),
			goqu.I("books.isbn").ILike(pattern),
			goqu.L(authorNameExpr+" ILIKE ?", pattern),
		))
	}

	books := make([]circulation.Book, 0)

	err := t.query(ctx, "list books", stmt, func(row rowScanner) error {
		book, scanErr := scanBook(row)
		if scanErr != nil {
			return scanErr
		}

		books = append(books, book)

		return nil
	})

	return books, err
}

// DeleteBook removes a book. Returned loans of the book are removed by the cascading foreign key.
func (t *pgTx) DeleteBook(ctx context.Context, bookID uuid.UUID) error {
	stmt := dialect().Delete(tableBooks).Where(goqu.C("id").Eq(bookID.String()))

	rowsAffected, err := t.exec(ctx, "delete book", stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return circulation.ErrBookNotFound
	}

	return nil
}
