package paymentprovider_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

func Test_Client_CreateCheckoutSession_Success(t *testing.T) {
	// setup
	var gotForm map[string]string
	var gotAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = r.ParseForm()
		gotForm = make(map[string]string)
		for key := range r.PostForm {
			gotForm[key] = r.PostForm.Get(key)
		}

		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_test_123","url":"https://checkout.example.com/c/cs_test_123","object":"checkout.session"}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	// act
	session, err := client.CreateCheckoutSession(t.Context(), paymentprovider.CheckoutSessionRequest{
		Amount:             decimal.RequireFromString("12.345"),
		ProductName:        "Pago de multa de biblioteca",
		ProductDescription: "Usuario: Ana Torres (U001)",
		CustomerEmail:      "ana@example.com",
		SuccessURL:         "http://localhost:5173/payment-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:          "http://localhost:5173/users",
		Metadata:           map[string]string{"userId": "u-1", "amount": "12.345"},
	})

	// assert
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.example.com/c/cs_test_123", session.URL)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "payment", gotForm["mode"])
	assert.Equal(t, "1235", gotForm["line_items[0][price_data][unit_amount]"])
	assert.Equal(t, "mxn", gotForm["line_items[0][price_data][currency]"])
	assert.Equal(t, "Usuario: Ana Torres (U001)", gotForm["line_items[0][price_data][product_data][description]"])
	assert.Equal(t, "u-1", gotForm["metadata[userId]"])
	assert.Equal(t, "ana@example.com", gotForm["customer_email"])
}

func Test_Client_CreateCheckoutSession_Rejected(t *testing.T) {
	// setup
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"Invalid currency"}}`))
	}))
	defer server.Close()

	client := newClient(t, server.URL)

	// act
	_, err := client.CreateCheckoutSession(t.Context(), paymentprovider.CheckoutSessionRequest{Amount: decimal.NewFromInt(10)})

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentProviderRejected)
	assert.Contains(t, err.Error(), "Invalid currency")
}

func Test_Client_CreateCheckoutSession_Unavailable(t *testing.T) {
	testCases := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
		},
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-r.Context().Done():
				case <-time.After(2 * time.Second):
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// setup
			server := httptest.NewServer(tc.handler)
			defer server.Close()

			client, err := paymentprovider.NewClient(paymentprovider.Config{
				BaseURL:   server.URL,
				SecretKey: "sk_test_key",
				Timeout:   50 * time.Millisecond,
			})
			require.NoError(t, err, "error in arranging test data")

			// act
			_, err = client.CreateCheckoutSession(t.Context(), paymentprovider.CheckoutSessionRequest{Amount: decimal.NewFromInt(10)})

			// assert
			assert.ErrorIs(t, err, core.ErrPaymentProviderUnavailable)
		})
	}
}

func Test_Client_CreateCheckoutSession_Unavailable_WhenUnreachable(t *testing.T) {
	// setup
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	client := newClient(t, baseURL)

	// act
	_, err := client.CreateCheckoutSession(t.Context(), paymentprovider.CheckoutSessionRequest{Amount: decimal.NewFromInt(10)})

	// assert
	assert.ErrorIs(t, err, core.ErrPaymentProviderUnavailable)
}

func Test_NewClient_RequiresSecretKey(t *testing.T) {
	_, err := paymentprovider.NewClient(paymentprovider.Config{BaseURL: "https://api.example.com"})

	assert.ErrorIs(t, err, paymentprovider.ErrMissingSecretKey)
}

func Test_ToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(1500), paymentprovider.ToMinorUnits(decimal.NewFromInt(15)))
	assert.Equal(t, int64(1), paymentprovider.ToMinorUnits(decimal.RequireFromString("0.005")))
	assert.Equal(t, int64(1999), paymentprovider.ToMinorUnits(decimal.RequireFromString("19.99")))
}

func newClient(t *testing.T, baseURL string) *paymentprovider.Client {
	t.Helper()

	client, err := paymentprovider.NewClient(paymentprovider.Config{
		BaseURL:       baseURL,
		SecretKey:     "sk_test_key",
		WebhookSecret: "whsec_test",
		Currency:      "MXN",
		Timeout:       time.Second,
	})
	require.NoError(t, err, "error in arranging test data")

	return client
}
