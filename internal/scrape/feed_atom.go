package scrape

import (
	"bytes"
	"fmt"

	"github.com/antchfx/xmlquery"
)

// ParseAtomFeed decodes an Atom XML feed. Atom entries carry no offer data,
// so Offers is left nil and resolved later via the per-product lookup.
func ParseAtomFeed(raw []byte) ([]Product, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: decode atom xml: %w", ErrFeedParse, err)
	}

	entries := xmlquery.Find(doc, "//entry")
	products := make([]Product, 0, len(entries))
	for _, entry := range entries {
		product := Product{}
		if id := xmlquery.FindOne(entry, "id"); id != nil {
			product.ID = id.InnerText()
		}
		if title := xmlquery.FindOne(entry, "title"); title != nil {
			product.Title = title.InnerText()
		}
		if link := xmlquery.FindOne(entry, "link"); link != nil {
			product.ProductLink = link.SelectAttr("href")
		}
		if summary := xmlquery.FindOne(entry, "summary"); summary != nil {
			// Keep the serialized node, markup included. Matching is a
			// substring scan, so embedded HTML is harmless.
			product.Summary = summary.OutputXML(true)
		}
		products = append(products, product)
	}
	return products, nil
}
