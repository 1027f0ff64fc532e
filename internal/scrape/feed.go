package scrape

import "fmt"

// ParseFeed decodes raw feed bytes in the given format into normalized
// products. The feed link supplies the origin that product links are
// resolved against.
func ParseFeed(raw []byte, format FeedFormat, feedLink string) ([]Product, error) {
	switch format {
	case FormatOEmbed:
		return ParseOEmbedFeed(raw, feedLink)
	case FormatAtom:
		return ParseAtomFeed(raw)
	default:
		return nil, fmt.Errorf("%w: unknown feed format %q", ErrFeedParse, format)
	}
}
