package scrape

import "strings"

// Outcome classifies a single checkout attempt. The backend signals the
// result only through where it redirects the client, so classification is a
// heuristic over the final URL.
type Outcome int

// Checkout outcomes.
const (
	// OutcomeSuccess means the redirect landed on a /checkouts/ URL.
	OutcomeSuccess Outcome = iota
	// OutcomeOutOfStock means the backend bounced the cart to stock_problems.
	OutcomeOutOfStock
	// OutcomeAlternatePayment means the backend handed off to PayPal; the
	// redirect URL is still a usable checkout link.
	OutcomeAlternatePayment
	// OutcomeUnexpected means the redirect landed somewhere unrecognized.
	OutcomeUnexpected
	// OutcomeTransportError means the request failed outright.
	OutcomeTransportError
)

// String names the outcome for logs and metrics labels.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeOutOfStock:
		return "out_of_stock"
	case OutcomeAlternatePayment:
		return "alternate_payment"
	case OutcomeUnexpected:
		return "unexpected"
	case OutcomeTransportError:
		return "transport_error"
	default:
		return "unknown"
	}
}

// ClassifyCheckout maps the final redirect URL of a checkout attempt, plus
// any transport error, to an outcome and the checkout link to keep (empty
// when the attempt yielded nothing usable).
//
// A transport error that still produced a redirect target returns that URL
// as a best-effort link rather than failing the attempt.
func ClassifyCheckout(finalURL string, err error) (Outcome, string) {
	if err != nil {
		if finalURL != "" {
			return OutcomeTransportError, finalURL
		}
		return OutcomeTransportError, ""
	}
	if strings.Contains(finalURL, "stock_problems") {
		return OutcomeOutOfStock, ""
	}
	if strings.Contains(finalURL, "paypal") {
		return OutcomeAlternatePayment, finalURL
	}
	if !strings.Contains(finalURL, "/checkouts/") {
		return OutcomeUnexpected, ""
	}
	return OutcomeSuccess, finalURL
}
