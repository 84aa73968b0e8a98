package httpapi

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/addbook"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/registeruser"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

const dateLayout = "2006-01-02"

type issueLoanRequest struct {
	BookID  string  `json:"book_id"`
	UserID  string  `json:"user_id"`
	DueDate string  `json:"due_date"`
	Notes   *string `json:"notes"`
}

type createCheckoutSessionRequest struct {
	UserID      string          `json:"userId"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type checkoutSessionResponse struct {
	URL string `json:"url"`
}

type authorRequest struct {
	Name        string  `json:"name"`
	Biography   *string `json:"biography"`
	Nationality *string `json:"nationality"`
	BirthDate   *string `json:"birth_date"`
}

type bookRequest struct {
	Title           string  `json:"title"`
	ISBN            *string `json:"isbn"`
	AuthorID        string  `json:"author_id"`
	Genre           *string `json:"genre"`
	PublicationYear *int    `json:"publication_year"`
	Publisher       *string `json:"publisher"`
	Pages           *int    `json:"pages"`
	Language        string  `json:"language"`
	Description     *string `json:"description"`
	CopiesTotal     *int    `json:"copies_total"`
}

func (r bookRequest) details() addbook.BookDetails {
	return addbook.BookDetails{
		ISBN:            r.ISBN,
		Genre:           r.Genre,
		PublicationYear: r.PublicationYear,
		Publisher:       r.Publisher,
		Pages:           r.Pages,
		Language:        r.Language,
		Description:     r.Description,
	}
}

// copiesTotal defaults to a single copy when the field is omitted.
func (r bookRequest) copiesTotal() int {
	if r.CopiesTotal == nil {
		return 1
	}

	return *r.CopiesTotal
}

type userRequest struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	DateOfBirth *string `json:"date_of_birth"`
	IsActive    *bool   `json:"is_active"`
}

func (r userRequest) contact() (registeruser.ContactDetails, error) {
	dateOfBirth, err := parseOptionalDate("date_of_birth", r.DateOfBirth, "Fecha de nacimiento inválida")
	if err != nil {
		return registeruser.ContactDetails{}, err
	}

	return registeruser.ContactDetails{
		Phone:       r.Phone,
		Address:     r.Address,
		DateOfBirth: dateOfBirth,
	}, nil
}

type successResponse struct {
	Success bool `json:"success"`
}

// parseUUIDOrNil returns uuid.Nil for anything that is not a UUID, the command validation reports it.
func parseUUIDOrNil(raw string) uuid.UUID {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil
	}

	return id
}

// parseDate accepts a calendar day or a full RFC 3339 timestamp. It returns the zero time for anything else.
// Timestamps keep the calendar day written by the caller, as midnight UTC like a plain date.
func parseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)

	if day, err := time.Parse(dateLayout, raw); err == nil {
		return day
	}

	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	}

	return time.Time{}
}

func parseOptionalDate(field string, raw *string, message string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil //nolint:nilnil
	}

	day := parseDate(*raw)
	if day.IsZero() {
		return nil, core.ValidationError{Field: field, Message: message}
	}

	return &day, nil
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
