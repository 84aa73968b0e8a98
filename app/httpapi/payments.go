package httpapi

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AntonStoeckl/library-circulation-go/app/features/command/createcheckoutsession"
	"github.com/AntonStoeckl/library-circulation-go/app/features/command/handlepaymentnotification"
	"github.com/AntonStoeckl/library-circulation-go/app/features/query/userpayments"
	"github.com/AntonStoeckl/library-circulation-go/app/paymentprovider"
	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

const headerProviderSignature = "Stripe-Signature"

func (a api) createCheckoutSession(c *gin.Context) {
	var req createCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		respondError(c, core.ErrInvalidAmount)
		return
	}

	command := createcheckoutsession.BuildCommand(
		newID(),
		parseUUIDOrNil(req.UserID),
		req.Amount,
		req.Description,
		a.now(),
	)

	output, _, err := a.h.CreateCheckoutSession.Handle(c.Request.Context(), command)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, checkoutSessionResponse{URL: output.URL})
}

func (a api) userPayments(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	payments, err := a.h.UserPayments.Handle(c.Request.Context(), userpayments.BuildQuery(userID))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, payments)
}

// paymentNotification answers in plain text, the provider only looks at the status code.
func (a api) paymentNotification(c *gin.Context) {
	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookPayloadBytes))
	if err != nil {
		_ = c.Error(err)
		c.String(http.StatusBadRequest, "Invalid payload")
		return
	}

	command := handlepaymentnotification.BuildCommand(payload, c.GetHeader(headerProviderSignature), a.now())

	if _, _, err = a.h.HandlePaymentNotification.Handle(c.Request.Context(), command); err != nil {
		_ = c.Error(err)

		switch {
		case errors.Is(err, core.ErrInvalidSignature):
			c.String(http.StatusBadRequest, "Invalid signature")
		case errors.Is(err, paymentprovider.ErrMalformedNotification):
			c.String(http.StatusBadRequest, "Invalid payload")
		default:
			status, body := errorResponseFor(err)
			c.String(status, body.Error)
		}

		return
	}

	c.String(http.StatusOK, "ok")
}
