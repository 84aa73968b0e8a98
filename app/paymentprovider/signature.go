package paymentprovider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-circulation-go/app/shared/core"
)

// SignatureTolerance is how far the signed timestamp may be from now.
const SignatureTolerance = 5 * time.Minute

var (
	errMalformedSignatureHeader = errors.New("malformed signature header")
	errSignatureTooOld          = errors.New("signature timestamp outside the tolerance")
	errNoMatchingSignature      = errors.New("no matching v1 signature")
	errNoWebhookSecret          = errors.New("no webhook secret configured")
)

// Sign builds a signature header for payload, as the provider sends it.
func Sign(payload []byte, secret string, timestamp time.Time) string {
	ts := strconv.FormatInt(timestamp.Unix(), 10)

	return "t=" + ts + ",v1=" + computeSignature(payload, secret, ts)
}

// VerifySignature checks header against payload. Any failure is core.ErrInvalidSignature joined with the reason.
func VerifySignature(payload []byte, header string, secret string, now time.Time, tolerance time.Duration) error {
	if secret == "" {
		return errors.Join(core.ErrInvalidSignature, errNoWebhookSecret)
	}

	ts, signatures, err := parseSignatureHeader(header)
	if err != nil {
		return errors.Join(core.ErrInvalidSignature, err)
	}

	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return errors.Join(core.ErrInvalidSignature, errMalformedSignatureHeader)
	}

	if age := now.Sub(time.Unix(unix, 0)); age > tolerance || age < -tolerance {
		return errors.Join(core.ErrInvalidSignature, fmt.Errorf("%w: %s", errSignatureTooOld, age))
	}

	expected := []byte(computeSignature(payload, secret, ts))
	for _, signature := range signatures {
		if hmac.Equal(expected, []byte(signature)) {
			return nil
		}
	}

	return errors.Join(core.ErrInvalidSignature, errNoMatchingSignature)
}

func parseSignatureHeader(header string) (string, []string, error) {
	var ts string
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}

		switch key {
		case "t":
			ts = value
		case "v1":
			signatures = append(signatures, value)
		}
	}

	if ts == "" || len(signatures) == 0 {
		return "", nil, errMalformedSignatureHeader
	}

	return ts, signatures, nil
}

func computeSignature(payload []byte, secret string, ts string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil))
}
