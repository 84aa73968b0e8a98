package circulation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LoanStatus is the lifecycle state of a loan. The only legal transition is LoanActive -> LoanReturned.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
)

// PaymentStatus is the settlement state of a payment. A payment leaves PaymentPending exactly once.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// DefaultBookLanguage is used when a book is added without a language.
const DefaultBookLanguage = "Español"

// Author is a row of the authors table.
type Author struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Biography   *string    `json:"biography"`
	Nationality *string    `json:"nationality"`
	BirthDate   *time.Time `json:"birth_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Book is a row of the books table. AuthorName is joined in on reads.
type Book struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	ISBN            *string   `json:"isbn"`
	AuthorID        uuid.UUID `json:"author_id"`
	AuthorName      string    `json:"author_name"`
	Genre           *string   `json:"genre"`
	PublicationYear *int      `json:"publication_year"`
	Publisher       *string   `json:"publisher"`
	Pages           *int      `json:"pages"`
	Language        string    `json:"language"`
	Description     *string   `json:"description"`
	CopiesTotal     int       `json:"copies_total"`
	CopiesAvailable int       `json:"copies_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// LibraryUser is a row of the library_users table.
// OutstandingBalance may become negative when more is paid than was owed.
type LibraryUser struct {
	ID                 uuid.UUID       `json:"id"`
	MemberID           string          `json:"member_id"`
	Name               string          `json:"name"`
	Email              string          `json:"email"`
	Phone              *string         `json:"phone"`
	Address            *string         `json:"address"`
	DateOfBirth        *time.Time      `json:"date_of_birth"`
	RegistrationDate   time.Time       `json:"registration_date"`
	IsActive           bool            `json:"is_active"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// Loan is a row of the loans table.
type Loan struct {
	ID         uuid.UUID       `json:"id"`
	BookID     uuid.UUID       `json:"book_id"`
	UserID     uuid.UUID       `json:"user_id"`
	LoanDate   time.Time       `json:"loan_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date"`
	IsReturned bool            `json:"is_returned"`
	LateFee    decimal.Decimal `json:"late_fee"`
	Notes      *string         `json:"notes"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Status derives the lifecycle state from the stored flag.
func (l Loan) Status() LoanStatus {
	if l.IsReturned {
		return LoanReturned
	}

	return LoanActive
}

// IsOverdue reports whether an active loan's due date lies before the day of asOf.
func (l Loan) IsOverdue(asOf time.Time) bool {
	if l.IsReturned {
		return false
	}

	return l.DueDate.Before(TruncateToDate(asOf))
}

// LoanDetails is a loan joined with the book title and the borrower's name and member id.
type LoanDetails struct {
	Loan
	BookTitle string `json:"book_title"`
	UserName  string `json:"user_name"`
	MemberID  string `json:"member_id"`
}

// MoneyPlaces is the number of decimal places stored for money columns.
const MoneyPlaces = 2

// MaxMoneyAmount is the exclusive upper bound of a NUMERIC(10,2) money column.
var MaxMoneyAmount = decimal.New(1, 8)

// Payment is a row of the payments table.
type Payment struct {
	ID                    uuid.UUID       `json:"id"`
	UserID                uuid.UUID       `json:"user_id"`
	Amount                decimal.Decimal `json:"amount"`
	Description           string          `json:"description"`
	ProviderSessionID     string          `json:"provider_session_id"`
	ProviderPaymentIntent *string         `json:"provider_payment_intent"`
	Status                PaymentStatus   `json:"status"`
	PaidAt                *time.Time      `json:"paid_at"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// LoanStatusFilter selects loans by lifecycle state. Overdue means active with a due date before today.
type LoanStatusFilter string

const (
	LoanFilterAll      LoanStatusFilter = ""
	LoanFilterActive   LoanStatusFilter = "active"
	LoanFilterReturned LoanStatusFilter = "returned"
	LoanFilterOverdue  LoanStatusFilter = "overdue"
)

// LoanFilter narrows ListLoans. Search matches book title, user name or member id case-insensitively.
type LoanFilter struct {
	Status LoanStatusFilter
	Search string
	AsOf   time.Time
}

// TruncateToDate drops the time of day, keeping the calendar date in UTC.
func TruncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
