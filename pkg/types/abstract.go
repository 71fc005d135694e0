// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"net/http"
	"time"
)

// FullTextKey is the ParsedAbstract entry holding the complete abstract
// text, present in every non-empty parse result.
const FullTextKey = "full_text"

// ParsedAbstract maps heuristically derived section labels to section
// text. The FullTextKey entry holds all text fragments joined in their
// original order.
type ParsedAbstract map[string]string

// FullText returns the complete abstract text, or "" if the parse
// produced nothing.
func (a ParsedAbstract) FullText() string {
	return a[FullTextKey]
}

// IsEmpty reports whether the parse yielded no usable content: no
// labeled sections and an empty full text.
func (a ParsedAbstract) IsEmpty() bool {
	if len(a) == 0 {
		return true
	}
	if len(a) == 1 && a[FullTextKey] == "" {
		return true
	}
	return false
}

// Abstract is the record produced for one resolved DOI.
type Abstract struct {
	// DOI is the identifier the record was fetched for.
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work title when the source reported one.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Source identifies which cascade stage supplied the raw text
	// (e.g. "cache", "crossref", "elsevier", "linkinghub").
	Source string `json:"source" yaml:"source"`

	// Sections holds the parsed abstract, including the full text.
	Sections ParsedAbstract `json:"sections" yaml:"sections"`

	// Retrieved is when the abstract was fetched.
	Retrieved time.Time `json:"retrieved" yaml:"retrieved"`
}

// ResponseRecord captures one HTTP response for post-hoc debugging.
// Records are appended in call order and never mutated.
type ResponseRecord struct {
	// Time is when the response was received.
	Time time.Time `json:"time" yaml:"time"`

	// Method is the HTTP method of the request.
	Method string `json:"method" yaml:"method"`

	// URL is the URL the request was issued against.
	URL string `json:"url" yaml:"url"`

	// FinalURL is the URL after redirects, which differs from URL when
	// the resolver bounced the request to a publisher landing page.
	FinalURL string `json:"final_url" yaml:"final_url"`

	// StatusCode is the HTTP status of the final response.
	StatusCode int `json:"status_code" yaml:"status_code"`

	// BodyBytes is the length of the response body.
	BodyBytes int `json:"body_bytes" yaml:"body_bytes"`

	// Header holds the response headers of the final response.
	Header http.Header `json:"-" yaml:"-"`
}
