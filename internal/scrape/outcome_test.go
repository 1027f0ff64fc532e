package scrape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyCheckout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		finalURL    string
		err         error
		wantOutcome Outcome
		wantLink    string
	}{
		{
			name:        "checkout url is success",
			finalURL:    "https://example.com/12345/checkouts/abc123",
			wantOutcome: OutcomeSuccess,
			wantLink:    "https://example.com/12345/checkouts/abc123",
		},
		{
			name:        "stock problems returns no link",
			finalURL:    "https://example.com/cart?stock_problems=1",
			wantOutcome: OutcomeOutOfStock,
			wantLink:    "",
		},
		{
			name:        "paypal handoff keeps the redirect",
			finalURL:    "https://www.paypal.com/checkoutnow?token=EC-123",
			wantOutcome: OutcomeAlternatePayment,
			wantLink:    "https://www.paypal.com/checkoutnow?token=EC-123",
		},
		{
			name:        "unrecognized redirect returns no link",
			finalURL:    "https://example.com/cart",
			wantOutcome: OutcomeUnexpected,
			wantLink:    "",
		},
		{
			name:        "transport error with redirect keeps best-effort link",
			finalURL:    "https://example.com/12345/checkouts/abc123",
			err:         errors.New("read: connection reset"),
			wantOutcome: OutcomeTransportError,
			wantLink:    "https://example.com/12345/checkouts/abc123",
		},
		{
			name:        "transport error without response yields nothing",
			err:         errors.New("dial tcp: i/o timeout"),
			wantOutcome: OutcomeTransportError,
			wantLink:    "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			outcome, link := ClassifyCheckout(tt.finalURL, tt.err)
			assert.Equal(t, tt.wantOutcome, outcome)
			assert.Equal(t, tt.wantLink, link)
		})
	}
}

func TestOutcomeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "success", OutcomeSuccess.String())
	assert.Equal(t, "out_of_stock", OutcomeOutOfStock.String())
	assert.Equal(t, "alternate_payment", OutcomeAlternatePayment.String())
	assert.Equal(t, "unexpected", OutcomeUnexpected.String())
	assert.Equal(t, "transport_error", OutcomeTransportError.String())
	assert.Equal(t, "unknown", Outcome(42).String())
}
