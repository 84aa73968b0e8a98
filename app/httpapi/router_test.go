package httpapi_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/httpapi"
	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/circulation"
	"github.com/AntonStoeckl/library-circulation-go/circulation/memoryengine"
	. "github.com/AntonStoeckl/library-circulation-go/testutil/fixtures" //nolint:revive
	"github.com/AntonStoeckl/library-circulation-go/testutil/observability/testdoubles"
)

const webhookSecret = "whsec_test"

var now = time.Date(2024, 1, 4, 12, 0, 0, 0, time.UTC)

type testServer struct {
	router *gin.Engine
	store  *memoryengine.Store
}

func newTestServer(t *testing.T, rateLimitRPS float64, rateLimitBurst int) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := memoryengine.NewStore()
	require.NoError(t, err, "error in arranging test data")

	checkout := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_http", "url": "https://checkout.example.com/cs_test_http"}`))
	}))
	t.Cleanup(checkout.Close)

	provider, err := paymentprovider.NewClient(
		paymentprovider.Config{BaseURL: checkout.URL, SecretKey: "sk_test_key", WebhookSecret: webhookSecret},
		paymentprovider.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err, "error in arranging test data")

	handlers, err := httpapi.BuildHandlers(httpapi.Dependencies{
		Store:           store,
		PaymentProvider: provider,
		FeePerDay:       decimal.NewFromInt(5),
		PublicBaseURL:   "http://localhost:5173",
		Observability: httpapi.Observability{
			ContextualLogger: testdoubles.NewContextualLoggerSpy(false),
			Metrics:          testdoubles.NewMetricsCollectorSpy(false),
		},
	})
	require.NoError(t, err, "error in arranging test data")

	router := httpapi.NewRouter(handlers, httpapi.RouterConfig{
		RateLimitRPS:   rateLimitRPS,
		RateLimitBurst: rateLimitBurst,
		Clock:          func() time.Time { return now },
	})

	return testServer{router: router, store: store}
}

func (s testServer) do(method, path string, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())

	return body
}

func Test_Router_IssueLoan_Created(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 1)
	user := GivenActiveUser(t, ctx, srv.store)
	body := `{"book_id": "` + book.ID.String() + `", "user_id": "` + user.ID.String() + `", "due_date": "2024-01-18"}`

	// act
	rec := srv.do(http.MethodPost, "/loans", body)

	// assert
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	loan := decode(t, rec)
	assert.Equal(t, book.Title, loan["book_title"])
	assert.Equal(t, user.Name, loan["user_name"])
	assert.Equal(t, user.MemberID, loan["member_id"])
	assert.Equal(t, false, loan["is_returned"])
	assert.Equal(t, 0, CurrentBook(t, ctx, srv.store, book.ID).CopiesAvailable)
}

func Test_Router_IssueLoan_OutOfStock(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 1)
	user := GivenActiveUser(t, ctx, srv.store)
	GivenActiveLoan(t, ctx, srv.store, book.ID, GivenActiveUser(t, ctx, srv.store).ID, now.AddDate(0, 0, 14))
	body := `{"book_id": "` + book.ID.String() + `", "user_id": "` + user.ID.String() + `", "due_date": "2024-01-18"}`

	// act
	rec := srv.do(http.MethodPost, "/loans", body)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)
	assert.Equal(t, "OutOfStock", errBody["code"])
	assert.Equal(t, "No hay copias disponibles de este libro", errBody["error"])
}

func Test_Router_IssueLoan_ValidationMessageSurfaced(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodPost, "/loans", `{"book_id": "not-a-uuid", "user_id": "", "due_date": ""}`)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)
	assert.Equal(t, "ValidationFailed", errBody["code"])
	assert.Equal(t, "Debes seleccionar un libro", errBody["error"])
}

func Test_Router_ReturnLoan_AssessesLateFee(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 1)
	user := GivenActiveUser(t, ctx, srv.store)
	loan := GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	// act
	rec := srv.do(http.MethodPost, "/loans/"+loan.ID.String()+"/return", "")

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	returned := decode(t, rec)
	assert.Equal(t, true, returned["is_returned"])
	assert.InDelta(t, 15.0, returned["late_fee"], 0.001)
	assert.True(t, decimal.NewFromInt(15).Equal(CurrentUser(t, ctx, srv.store, user.ID).OutstandingBalance))
}

func Test_Router_ReturnLoan_AlreadyReturned(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 1)
	user := GivenActiveUser(t, ctx, srv.store)
	loan := GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, 7))
	rec := srv.do(http.MethodPost, "/loans/"+loan.ID.String()+"/return", "")
	require.Equal(t, http.StatusOK, rec.Code, "error in arranging test data")

	// act
	rec = srv.do(http.MethodPost, "/loans/"+loan.ID.String()+"/return", "")

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Este préstamo ya fue devuelto", decode(t, rec)["error"])
}

func Test_Router_DeleteLoan(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 1)
	user := GivenActiveUser(t, ctx, srv.store)
	loan := GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, 7))

	// act
	stillActive := srv.do(http.MethodDelete, "/loans/"+loan.ID.String(), "")
	srv.do(http.MethodPost, "/loans/"+loan.ID.String()+"/return", "")
	deleted := srv.do(http.MethodDelete, "/loans/"+loan.ID.String(), "")
	missing := srv.do(http.MethodGet, "/loans/"+loan.ID.String(), "")

	// assert
	assert.Equal(t, http.StatusBadRequest, stillActive.Code)
	assert.Equal(t, "LoanStillActive", decode(t, stillActive)["code"])
	assert.Equal(t, http.StatusOK, deleted.Code)
	assert.Equal(t, true, decode(t, deleted)["success"])
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, "Préstamo no encontrado", decode(t, missing)["error"])
}

func Test_Router_ListLoans_InvalidStatus(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodGet, "/loans?status=lost", "")

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", decode(t, rec)["code"])
}

func Test_Router_ListLoans_Overdue(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 2)
	user := GivenActiveUser(t, ctx, srv.store)
	overdue := GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, -2))
	GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, 5))

	// act
	rec := srv.do(http.MethodGet, "/loans?status=overdue", "")

	// assert
	require.Equal(t, http.StatusOK, rec.Code)
	var loans []circulation.LoanDetails
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &loans))
	require.Len(t, loans, 1)
	assert.Equal(t, overdue.ID, loans[0].ID)
}

func Test_Router_CreateCheckoutSession(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	user := GivenActiveUser(t, ctx, srv.store)

	// act
	rec := srv.do(http.MethodPost, "/payments/create-checkout-session",
		`{"userId": "`+user.ID.String()+`", "amount": 15}`)

	// assert
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "https://checkout.example.com/cs_test_http", decode(t, rec)["url"])

	payments := PaymentsOf(t, ctx, srv.store, user.ID)
	require.Len(t, payments, 1)
	assert.Equal(t, circulation.PaymentPending, payments[0].Status)
	assert.Equal(t, "cs_test_http", payments[0].ProviderSessionID)
}

func Test_Router_CreateCheckoutSession_InvalidAmount(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	user := GivenActiveUser(t, ctx, srv.store)

	// act
	rec := srv.do(http.MethodPost, "/payments/create-checkout-session",
		`{"userId": "`+user.ID.String()+`", "amount": 0}`)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)
	assert.Equal(t, "InvalidAmount", errBody["code"])
	assert.Equal(t, "Datos de pago inválidos", errBody["error"])
	assert.Empty(t, PaymentsOf(t, ctx, srv.store, user.ID))
}

func Test_Router_CreateCheckoutSession_AmountBelowOneCent(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	user := GivenActiveUser(t, ctx, srv.store)

	// act
	rec := srv.do(http.MethodPost, "/payments/create-checkout-session",
		`{"userId": "`+user.ID.String()+`", "amount": 0.004}`)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidAmount", decode(t, rec)["code"])
	assert.Empty(t, PaymentsOf(t, ctx, srv.store, user.ID))
}

func Test_Router_CreateCheckoutSession_MissingUserID(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodPost, "/payments/create-checkout-session", `{"userId": "not-a-uuid", "amount": 10}`)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	errBody := decode(t, rec)
	assert.Equal(t, "ValidationFailed", errBody["code"])
	assert.Equal(t, "Usuario inválido", errBody["error"])
}

func Test_Router_PaymentNotification_SettlesPayment(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	user := GivenActiveUser(t, ctx, srv.store)
	GivenCreditedBalance(t, ctx, srv.store, user.ID, decimal.NewFromInt(15))
	payment := GivenPendingPayment(t, ctx, srv.store, user.ID, decimal.NewFromInt(15))
	payload := `{"id": "evt_1", "type": "checkout.session.completed", "data": {"object": {"id": "` +
		payment.ProviderSessionID + `", "payment_intent": "pi_1", "metadata": {"amount": "15"}}}}`
	signature := paymentprovider.Sign([]byte(payload), webhookSecret, now)

	// act
	first := srv.do(http.MethodPost, "/webhooks/payment-provider", payload, "Stripe-Signature", signature)
	second := srv.do(http.MethodPost, "/webhooks/payment-provider", payload, "Stripe-Signature", signature)

	// assert
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "ok", first.Body.String())
	assert.Equal(t, http.StatusOK, second.Code)
	assert.True(t, CurrentUser(t, ctx, srv.store, user.ID).OutstandingBalance.IsZero())
	assert.Equal(t, circulation.PaymentCompleted, PaymentsOf(t, ctx, srv.store, user.ID)[0].Status)
}

func Test_Router_PaymentNotification_InvalidSignature(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodPost, "/webhooks/payment-provider", `{"type": "checkout.session.completed"}`,
		"Stripe-Signature", "t=1,v1=deadbeef")

	// assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid signature", rec.Body.String())
}

func Test_Router_UserPayments_InvalidID(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodGet, "/payments/user/42", "")

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "ValidationFailed", decode(t, rec)["code"])
}

func Test_Router_Catalog_Lifecycle(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	authorRec := srv.do(http.MethodPost, "/authors", `{"name": "Isabel Allende", "nationality": "Chilena"}`)
	require.Equal(t, http.StatusCreated, authorRec.Code, authorRec.Body.String())
	authorID := decode(t, authorRec)["id"].(string)

	bookRec := srv.do(http.MethodPost, "/books", `{"title": "La casa de los espíritus", "author_id": "`+authorID+`"}`)
	require.Equal(t, http.StatusCreated, bookRec.Code, bookRec.Body.String())
	book := decode(t, bookRec)

	blocked := srv.do(http.MethodDelete, "/authors/"+authorID, "")
	searched := srv.do(http.MethodGet, "/books?search=casa", "")

	// assert
	assert.InDelta(t, 1.0, book["copies_total"], 0)
	assert.InDelta(t, 1.0, book["copies_available"], 0)
	assert.Equal(t, "Isabel Allende", book["author_name"])
	assert.Equal(t, "Español", book["language"])

	assert.Equal(t, http.StatusBadRequest, blocked.Code)
	assert.Equal(t, "No se puede eliminar el autor porque tiene libros asociados", decode(t, blocked)["error"])

	require.Equal(t, http.StatusOK, searched.Code)
	var books []circulation.Book
	require.NoError(t, jsoniter.Unmarshal(searched.Body.Bytes(), &books))
	assert.Len(t, books, 1)
}

func Test_Router_UpdateBook_CopiesOnLoanExceedTotal(t *testing.T) {
	// setup
	ctx := t.Context()
	srv := newTestServer(t, 0, 0)

	// arrange
	book := GivenBook(t, ctx, srv.store, 2)
	user := GivenActiveUser(t, ctx, srv.store)
	GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, 7))
	GivenActiveLoan(t, ctx, srv.store, book.ID, user.ID, now.AddDate(0, 0, 7))
	body := `{"title": "` + book.Title + `", "author_id": "` + book.AuthorID.String() + `", "copies_total": 1}`

	// act
	rec := srv.do(http.MethodPut, "/books/"+book.ID.String(), body)

	// assert
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CopiesOnLoanExceedTotal", decode(t, rec)["code"])
	assert.Equal(t, 2, CurrentBook(t, ctx, srv.store, book.ID).CopiesTotal)
}

func Test_Router_Users_RegisterAndDeactivate(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	invalid := srv.do(http.MethodPost, "/users", `{"name": "Ana", "email": "no-email"}`)
	created := srv.do(http.MethodPost, "/users", `{"name": "Ana Pérez", "email": "ana@example.com"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	user := decode(t, created)
	updated := srv.do(http.MethodPut, "/users/"+user["id"].(string),
		`{"name": "Ana Pérez", "email": "ana@example.com", "is_active": false}`)

	// assert
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "Email inválido", decode(t, invalid)["error"])
	assert.Equal(t, "U001", user["member_id"])
	assert.Equal(t, true, user["is_active"])
	require.Equal(t, http.StatusOK, updated.Code, updated.Body.String())
	assert.Equal(t, false, decode(t, updated)["is_active"])
}

func Test_Router_UnknownIDs_NotFound(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)
	id := uuid.New().String()

	// act
	author := srv.do(http.MethodGet, "/authors/"+id, "")
	book := srv.do(http.MethodGet, "/books/"+id, "")
	user := srv.do(http.MethodGet, "/users/"+id, "")

	// assert
	assert.Equal(t, http.StatusNotFound, author.Code)
	assert.Equal(t, "Autor no encontrado", decode(t, author)["error"])
	assert.Equal(t, http.StatusNotFound, book.Code)
	assert.Equal(t, "Libro no encontrado", decode(t, book)["error"])
	assert.Equal(t, http.StatusNotFound, user.Code)
	assert.Equal(t, "Usuario no encontrado", decode(t, user)["error"])
}

func Test_Router_Healthz(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodGet, "/healthz", "")

	// assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func Test_Router_RequestID_IsEchoed(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)
	requestID := uuid.New().String()

	// act
	given := srv.do(http.MethodGet, "/healthz", "", "X-Request-ID", requestID)
	generated := srv.do(http.MethodGet, "/healthz", "", "X-Request-ID", "garbage")

	// assert
	assert.Equal(t, requestID, given.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(generated.Header().Get("X-Request-ID"))
	assert.NoError(t, err)
}

func Test_Router_RateLimit(t *testing.T) {
	// setup
	srv := newTestServer(t, 0.001, 2)

	// act
	codes := make([]int, 0, 3)
	for range 3 {
		codes = append(codes, srv.do(http.MethodGet, "/healthz", "").Code)
	}

	// assert
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func Test_Router_CORSPreflight(t *testing.T) {
	// setup
	srv := newTestServer(t, 0, 0)

	// act
	rec := srv.do(http.MethodOptions, "/loans", "")

	// assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.True(t, strings.Contains(rec.Header().Get("Access-Control-Allow-Methods"), "DELETE"))
}
