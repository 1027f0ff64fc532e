// Package scrape defines the normalized product model and the pure matching
// and classification logic shared across subsystems.
package scrape

// Search describes one user-defined search: every keyword must appear in a
// product's title or summary, no exclude keyword may appear, and at least one
// size must match an offer title. A size of "*" accepts any size.
type Search struct {
	Keywords []string `json:"keywords" mapstructure:"keywords"`
	Exclude  []string `json:"exclude" mapstructure:"exclude"`
	Sizes    []string `json:"sizes" mapstructure:"sizes"`
}

// Offer is one purchasable variant (typically a size) of a product.
type Offer struct {
	OfferID string `json:"offer_id"`
	Title   string `json:"title"`
	Price   string `json:"price"`
	InStock bool   `json:"in_stock"`
}

// Product is the normalized representation shared by both feed formats.
// Offers is nil when the feed did not embed them; they are then resolved
// via a per-product lookup.
type Product struct {
	ID          string
	Title       string
	Summary     string
	ProductLink string
	Offers      []Offer
}

// Match pairs a product with the first search that accepted it. Products are
// never annotated in place; the pairing is the matcher's output value.
type Match struct {
	Product Product
	Search  Search
}

// ReservedOffer is an offer that completed the checkout protocol, enriched
// with the checkout link the backend redirected to.
type ReservedOffer struct {
	Offer
	CheckoutLink string
}

// FeedFormat selects the wire format of a product feed.
type FeedFormat string

// Supported feed formats. OEmbed feeds embed offers inline; Atom feeds
// require a per-product offer lookup.
const (
	FormatOEmbed FeedFormat = "oembed"
	FormatAtom   FeedFormat = "atom"
)
