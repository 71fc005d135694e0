// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch resolves DOIs to parsed abstracts through a cascade of
// data sources: a local cache file, the CrossRef API, and publisher
// landing-page scraping as fallback.
package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/GregConan/knower/pkg/types"
)

// Fetcher resolves DOIs to abstracts. It owns the HTTP session, the
// read-only cache index, and the error-trap strategy for the life of a
// run. Fetchers are not safe for concurrent use; batches process DOIs
// one at a time.
type Fetcher struct {
	cfg    types.FetchConfig
	client *Client
	cache  CacheIndex
	trap   Trap
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTrap installs an error-handling strategy. Without one, every
// error propagates immediately to the caller.
func WithTrap(t Trap) Option {
	return func(f *Fetcher) { f.trap = t }
}

// WithClient substitutes the retrieval layer, for tests.
func WithClient(c *Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// NewFetcher builds a Fetcher and loads the cache file. A cache read
// failure is reported through the trap policy: with a swallowing trap
// installed the Fetcher starts with an empty cache, otherwise the error
// propagates and no Fetcher is returned.
func NewFetcher(cfg types.FetchConfig, opts ...Option) (*Fetcher, error) {
	f := &Fetcher{cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	if f.client == nil {
		f.client = NewClient(cfg.HTTPConfig, cfg.RequestsPerSecond)
	}

	path := cfg.CachePath
	if path == "" {
		path = DefaultCachePath
	}
	cache, err := LoadCache(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read cache %s\n", path)
		if trapped := f.trapOr(err, map[string]any{"path": path}); trapped != nil {
			return nil, trapped
		}
		cache = CacheIndex{}
	}
	f.cache = cache
	return f, nil
}

// Log exposes the session's response log as a read-only diagnostic view.
func (f *Fetcher) Log() []types.ResponseRecord {
	return f.client.Log()
}

func (f *Fetcher) landingTimeout() time.Duration {
	if f.cfg.LandingTimeout > 0 {
		return f.cfg.LandingTimeout
	}
	return defaultLandingTimeout
}

// Fetch resolves one DOI to a parsed abstract. Sources are tried in a
// fixed order, stopping at the first that yields raw abstract text:
//
//  1. the local cache index,
//  2. the CrossRef works API,
//  3. the DOI resolver's landing page, dispatching to the matching
//     publisher scrape when the redirect host is recognized,
//  4. the linking-hub embedded redirect as a last fallback.
//
// A stage that finds nothing moves the cascade along; transport errors
// go through the trap policy, which either fails the DOI or records the
// error and lets the cascade continue. Exhausting every source returns
// an *AbstractNotFoundError.
func (f *Fetcher) Fetch(ctx context.Context, doi string) (*types.Abstract, error) {
	raw, title, source, err := f.rawAbstract(ctx, doi)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		notFound := &AbstractNotFoundError{DOI: doi}
		if trapped := f.trapOr(notFound, map[string]any{"doi": doi, "source": source}); trapped != nil {
			return nil, trapped
		}
		return nil, notFound
	}

	parsed := ParseAbstract(raw)
	if parsed.IsEmpty() {
		parseErr := fmt.Errorf("parsing abstract for DOI %s: %w", doi, ErrNoContent)
		if trapped := f.trapOr(parseErr, map[string]any{"doi": doi, "raw": raw, "source": source}); trapped != nil {
			return nil, trapped
		}
		return nil, parseErr
	}

	return &types.Abstract{
		DOI:       doi,
		Title:     title,
		Source:    source,
		Sections:  parsed,
		Retrieved: time.Now().UTC(),
	}, nil
}

// rawAbstract runs the source cascade and returns the first raw
// abstract text obtained, with the title (when the source reported one)
// and the name of the stage that supplied it. An empty text with a nil
// error means every source was exhausted.
func (f *Fetcher) rawAbstract(ctx context.Context, doi string) (raw, title, source string, err error) {
	// Cache hit short-circuits the network entirely.
	if payload, ok := f.cache[doi]; ok {
		if text, t := crossrefAbstract(payload); text != "" {
			return text, t, "cache", nil
		}
	}

	payload, err := f.downloadCrossref(ctx, doi)
	if err != nil {
		if trapped := f.trapOr(err, map[string]any{"doi": doi, "stage": "crossref"}); trapped != nil {
			return "", "", "", trapped
		}
	} else if payload != nil {
		if text, t := crossrefAbstract(payload); text != "" {
			return text, t, "crossref", nil
		}
	}

	page, err := f.resolveLandingPage(ctx, doi)
	if err != nil {
		if trapped := f.trapOr(err, map[string]any{"doi": doi, "stage": "landing"}); trapped != nil {
			return "", "", "", trapped
		}
		return "", "", "", nil
	}
	if page == nil {
		return "", "", "", nil
	}

	if domain := publisherFor(page.finalURL.Hostname()); domain != "" {
		id := doi
		if domain == "elsevier" {
			id = piiFromURL(redirectTarget(page.body))
			if id == "" {
				id = piiFromURL(page.finalURL.String())
			}
		}
		if id != "" {
			text, err := f.scrapePublisher(ctx, domain, id)
			if err != nil {
				if trapped := f.trapOr(err, map[string]any{"doi": doi, "stage": domain}); trapped != nil {
					return "", "", "", trapped
				}
			} else if text != "" {
				return text, "", domain, nil
			}
		}
	}

	// Last resort: the landing page may embed its real target as an
	// encoded redirect link.
	target := redirectTarget(page.body)
	if target == "" {
		return "", "", "", nil
	}
	resp, err := f.client.get(ctx, target, getOptions{timeout: f.landingTimeout()})
	if err != nil {
		if trapped := f.trapOr(err, map[string]any{"doi": doi, "stage": "linkinghub", "target": target}); trapped != nil {
			return "", "", "", trapped
		}
		return "", "", "", nil
	}
	if resp.StatusCode == 200 {
		if text := firstAbstractText(resp.Body); text != "" {
			return text, "", "linkinghub", nil
		}
	}
	return "", "", "", nil
}

// BatchResult summarizes a batch fetch run.
type BatchResult struct {
	Fetched   int
	Failed    int
	Abstracts []*types.Abstract
	Elapsed   time.Duration
}

// Total returns the total number of DOIs processed.
func (r BatchResult) Total() int {
	return r.Fetched + r.Failed
}

// HasFailures reports whether any DOIs failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FetchBatch resolves DOIs in caller order, printing per-item status
// lines to w and a summary with elapsed time at the end. Individual
// failures do not stop the batch.
func (f *Fetcher) FetchBatch(ctx context.Context, dois []string, w io.Writer) BatchResult {
	var result BatchResult
	start := time.Now()
	for _, doi := range dois {
		abs, err := f.Fetch(ctx, doi)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", doi, err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "fetched: %s (%s)\n", doi, abs.Source)
		if f.cfg.Verbosity > 0 {
			fmt.Fprintf(w, "  %s\n", abs.Sections.FullText())
		}
		result.Fetched++
		result.Abstracts = append(result.Abstracts, abs)
	}
	result.Elapsed = time.Since(start)
	fmt.Fprintf(w, "\nBatch summary: %d fetched, %d failed (total: %d) in %s\n",
		result.Fetched, result.Failed, result.Total(), result.Elapsed.Round(time.Millisecond))
	return result
}
