package paymentprovider

import (
	"errors"

	jsoniter "github.com/json-iterator/go"
)

// Notification types the library reacts to.
const (
	EventCheckoutSessionCompleted          = "checkout.session.completed"
	EventCheckoutSessionExpired            = "checkout.session.expired"
	EventCheckoutSessionAsyncPaymentFailed = "checkout.session.async_payment_failed"
)

// ErrMalformedNotification is returned for a correctly signed payload that is not a notification.
var ErrMalformedNotification = errors.New("malformed payment notification")

// Notification is a webhook event whose object is a checkout session.
type Notification struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object SessionObject `json:"object"`
	} `json:"data"`
}

// SessionObject is the checkout session carried by a Notification.
type SessionObject struct {
	ID            string            `json:"id"`
	PaymentIntent *string           `json:"payment_intent"`
	PaymentStatus string            `json:"payment_status"`
	Metadata      map[string]string `json:"metadata"`
}

// Session is a shortcut for n.Data.Object.
func (n Notification) Session() SessionObject {
	return n.Data.Object
}

// ParseNotification decodes payload without checking its signature.
func ParseNotification(payload []byte) (Notification, error) {
	var notification Notification

	if err := jsoniter.ConfigFastest.Unmarshal(payload, &notification); err != nil {
		return Notification{}, errors.Join(ErrMalformedNotification, err)
	}

	if notification.Type == "" {
		return Notification{}, ErrMalformedNotification
	}

	return notification, nil
}

// VerifyNotification checks the signature header with the webhook secret and decodes the payload.
func (c *Client) VerifyNotification(payload []byte, signatureHeader string) (Notification, error) {
	if err := VerifySignature(payload, signatureHeader, c.webhookSecret, c.now(), SignatureTolerance); err != nil {
		return Notification{}, err
	}

	return ParseNotification(payload)
}
