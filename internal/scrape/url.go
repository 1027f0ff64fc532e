package scrape

import (
	"fmt"
	"net/url"
)

// ResolveLink swaps the path of feedLink, keeping only its scheme and host.
// Feed links look like https://shop.example.com/collections/all.oembed; the
// product, cart and checkout paths all hang off the same origin.
func ResolveLink(feedLink, pathname string) (string, error) {
	u, err := url.Parse(feedLink)
	if err != nil {
		return "", fmt.Errorf("parse feed link: %w", err)
	}
	resolved := url.URL{Scheme: u.Scheme, Host: u.Host, Path: pathname}
	return resolved.String(), nil
}

// ProductLink resolves /products/{id} against the feed origin.
func ProductLink(feedLink, productID string) (string, error) {
	return ResolveLink(feedLink, "/products/"+productID)
}

// CartLink resolves the cart-start URL used by checkout attempts.
func CartLink(feedLink string) (string, error) {
	return ResolveLink(feedLink, "/cart")
}

// AddToCartLink builds the one-click add-to-cart URL for an offer.
func AddToCartLink(feedLink, offerID string) (string, error) {
	return ResolveLink(feedLink, fmt.Sprintf("/cart/%s:1/", offerID))
}
