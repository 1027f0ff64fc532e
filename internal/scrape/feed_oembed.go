package scrape

import (
	"encoding/json"
	"fmt"
)

type oEmbedFeed struct {
	Products []oEmbedProduct `json:"products"`
}

type oEmbedProduct struct {
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Offers      []Offer `json:"offers"`
}

// ParseOEmbedFeed decodes a Shopify oEmbed JSON feed. Offers are already
// normalized in this format and are copied through verbatim.
func ParseOEmbedFeed(raw []byte, feedLink string) ([]Product, error) {
	var feed oEmbedFeed
	if err := json.Unmarshal(raw, &feed); err != nil {
		return nil, fmt.Errorf("%w: decode oembed json: %w", ErrFeedParse, err)
	}

	products := make([]Product, 0, len(feed.Products))
	for _, entry := range feed.Products {
		link, err := ProductLink(feedLink, entry.ProductID)
		if err != nil {
			return nil, fmt.Errorf("%w: product %s: %w", ErrFeedParse, entry.ProductID, err)
		}
		products = append(products, Product{
			ID:          entry.ProductID,
			Title:       entry.Title,
			Summary:     entry.Description,
			ProductLink: link,
			Offers:      entry.Offers,
		})
	}
	return products, nil
}
