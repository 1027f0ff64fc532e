package scrape

import "strings"

// containsFold reports whether needle appears in haystack, case-insensitively.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// ProductMatchesSearch reports whether every search keyword appears in the
// product's title or summary and no exclude keyword does. An empty keyword
// set is vacuously satisfied and matches everything; callers are expected to
// supply at least one keyword to scope a search meaningfully.
func ProductMatchesSearch(search Search, product Product) bool {
	for _, keyword := range search.Keywords {
		if !containsFold(product.Title, keyword) && !containsFold(product.Summary, keyword) {
			return false
		}
	}
	for _, keyword := range search.Exclude {
		if containsFold(product.Title, keyword) || containsFold(product.Summary, keyword) {
			return false
		}
	}
	return true
}

// MatchProducts filters products against the search list. The first search
// satisfying a product wins and is paired with it; search list order is the
// only tie-break. Products matching no search are dropped.
func MatchProducts(products []Product, searches []Search) []Match {
	var matches []Match
	for _, product := range products {
		for _, search := range searches {
			if ProductMatchesSearch(search, product) {
				matches = append(matches, Match{Product: product, Search: search})
				break
			}
		}
	}
	return matches
}

// TitleMatchesSize reports whether an offer title satisfies one requested
// size. Exclusions are checked first and are case-insensitive; the size test
// itself is a literal substring match, with "*" accepting any title.
func TitleMatchesSize(title, size string, search Search) bool {
	for _, exclude := range search.Exclude {
		if containsFold(title, exclude) {
			return false
		}
	}
	if size == "*" {
		return true
	}
	return strings.Contains(title, size)
}

// MatchingOffers returns the offers eligible for a checkout attempt: in
// stock, matching at least one requested size, and not excluded.
func MatchingOffers(search Search, offers []Offer) []Offer {
	var matching []Offer
	for _, offer := range offers {
		if !offer.InStock {
			continue
		}
		for _, size := range search.Sizes {
			if TitleMatchesSize(offer.Title, size, search) {
				matching = append(matching, offer)
				break
			}
		}
	}
	return matching
}
