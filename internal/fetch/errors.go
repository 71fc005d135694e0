// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Sentinel errors for configuration and parse failures.
var (
	// ErrUnknownDomain reports a domain key missing from the URL table.
	ErrUnknownDomain = errors.New("unknown domain key")

	// ErrNoContent reports that markup extraction yielded no usable text.
	ErrNoContent = errors.New("no usable abstract content")
)

// TransportError wraps a network-level failure (connection error,
// timeout, malformed response) with the URL that was being fetched.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure fetching %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// CacheError wraps a failure to read or decode the local cache file.
type CacheError struct {
	Path string
	Err  error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("reading cache %s: %v", e.Path, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// AbstractNotFoundError reports that every cascade stage was exhausted
// without obtaining an abstract for the DOI.
type AbstractNotFoundError struct {
	DOI string
}

func (e *AbstractNotFoundError) Error() string {
	return fmt.Sprintf("no abstract found for DOI %s", e.DOI)
}

// Trap is an injectable error-handling strategy. It receives the error
// and a snapshot of named local values from the failure site. Returning
// nil swallows the error and lets the caller continue to its next
// fallback; returning an error (usually the same one) propagates it.
//
// A nil Trap on the Fetcher means every error propagates immediately.
type Trap func(err error, snapshot map[string]any) error

// RecordingTrap returns a Trap that writes the error and the sorted
// snapshot keys to w, then swallows the error so batch processing can
// continue. When verbose, snapshot values are printed too.
func RecordingTrap(w io.Writer, verbose bool) Trap {
	return func(err error, snapshot map[string]any) error {
		fmt.Fprintf(w, "trapped: %v\n", err)
		keys := make([]string, 0, len(snapshot))
		for k := range snapshot {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		if verbose {
			for _, k := range keys {
				fmt.Fprintf(w, "  %s = %v\n", k, snapshot[k])
			}
		} else {
			fmt.Fprintf(w, "  locals: %v\n", keys)
		}
		return nil
	}
}

// trapOr runs err through the installed trap, if any.
func (f *Fetcher) trapOr(err error, snapshot map[string]any) error {
	if f.trap == nil {
		return err
	}
	return f.trap(err, snapshot)
}
