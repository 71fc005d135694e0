// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"encoding/json"
	"os"
	"strings"
)

// DefaultCachePath is the JSON file of previously fetched CrossRef-style
// payloads consulted before any network request.
const DefaultCachePath = "example-publication-response.json"

// CacheIndex maps DOI to a previously fetched raw payload. It is loaded
// once at Fetcher construction and is read-only for the life of the
// process; newly fetched abstracts are not written back.
type CacheIndex map[string]json.RawMessage

// LoadCache reads the cache file at path. A missing, unreadable, or
// malformed file returns a *CacheError so the caller can decide whether
// the run continues without a cache.
func LoadCache(path string) (CacheIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &CacheError{Path: path, Err: err}
	}
	var index CacheIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, &CacheError{Path: path, Err: err}
	}
	return index, nil
}

// crossrefAbstract extracts the message.abstract field, plus the work
// title when present, from a cached or downloaded CrossRef-style
// payload. Returns "" when the abstract field is missing or empty.
func crossrefAbstract(payload []byte) (text, title string) {
	var cr crossrefResponse
	if err := json.Unmarshal(payload, &cr); err != nil {
		return "", ""
	}
	if len(cr.Message.Title) > 0 {
		title = cr.Message.Title[0]
	}
	return strings.TrimSpace(cr.Message.Abstract), title
}
