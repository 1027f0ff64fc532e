package scrape

import "errors"

// Sentinel errors forming the failure taxonomy. Feed errors abort the whole
// cycle; offer errors are isolated to a single product; checkout and
// notification failures are logged and swallowed by the pipeline.
var (
	ErrFeedFetch  = errors.New("feed fetch failed")
	ErrFeedParse  = errors.New("feed parse failed")
	ErrOfferFetch = errors.New("offer fetch failed")
	ErrNotify     = errors.New("notification delivery failed")
)
