// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CrossRef API JSON structures. The same shape is stored in the local
// cache file, so cache hits and live responses decode identically.
type crossrefResponse struct {
	Message crossrefWork `json:"message"`
}

type crossrefWork struct {
	Title    []string `json:"title"`
	Abstract string   `json:"abstract"`
}

// downloadCrossref fetches the CrossRef work record for doi and returns
// the raw JSON body. The configured email rides along as the mailto
// parameter per the CrossRef polite-pool convention.
func (f *Fetcher) downloadCrossref(ctx context.Context, doi string) ([]byte, error) {
	u, err := BuildURL("crossref", doi)
	if err != nil {
		return nil, err
	}
	var params []Param
	if f.cfg.Email != "" {
		params = append(params, Param{Key: "mailto", Value: f.cfg.Email})
	}
	resp, err := f.client.get(ctx, u, getOptions{params: params})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return resp.Body, nil
}

// DownloadCitation fetches the BibTeX citation for doi from the DOI
// resolver's content negotiation endpoint and returns the raw BibTeX
// text. Parsing is left to the cite package.
func (f *Fetcher) DownloadCitation(ctx context.Context, doi string) (string, error) {
	u, err := BuildURL("doi", doi)
	if err != nil {
		return "", err
	}
	var params []Param
	if f.cfg.Email != "" {
		params = append(params, Param{Key: "mailto", Value: f.cfg.Email})
	}
	resp, err := f.client.get(ctx, u, getOptions{
		params:  params,
		headers: map[string]string{"Accept": "application/x-bibtex"},
	})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	return strings.TrimSpace(string(resp.Body)), nil
}

// scrapePublisher fetches the publisher content URL for domain and id
// (a DOI, or a PII for the Elsevier API) and walks the returned markup
// for abstract text. It returns "" when the status is not 200 or no
// abstract-bearing element exists; that is a fallback signal, not an
// error.
func (f *Fetcher) scrapePublisher(ctx context.Context, domain, id string) (string, error) {
	u, err := BuildURL(domain, id)
	if err != nil {
		return "", err
	}
	var headers map[string]string
	if domain == "elsevier" && f.cfg.ElsevierAPIKey != "" {
		headers = map[string]string{"X-ELS-APIKey": f.cfg.ElsevierAPIKey}
	}
	resp, err := f.client.get(ctx, u, getOptions{headers: headers})
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil
	}
	return firstAbstractText(resp.Body), nil
}

// landing holds the outcome of resolving a DOI through doi.org.
type landing struct {
	finalURL *url.URL
	body     []byte
}

// resolveLandingPage follows the DOI resolver redirect chain to the
// publisher landing page. Publisher sites are slower than the APIs, so
// the landing timeout applies here.
func (f *Fetcher) resolveLandingPage(ctx context.Context, doi string) (*landing, error) {
	u, err := BuildURL("doi", doi)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.get(ctx, u, getOptions{timeout: f.landingTimeout()})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}
	return &landing{finalURL: resp.FinalURL, body: resp.Body}, nil
}

// publisherFor maps a landing-page host to its domain key in the URL
// table, or "" for an unrecognized host. The Elsevier linking hub and
// ScienceDirect both resolve through the Elsevier article API.
// Declared as a var so tests can substitute httptest hosts.
var publisherFor = func(host string) string {
	host = strings.ToLower(host)
	switch {
	case strings.HasSuffix(host, "linkinghub.elsevier.com"),
		strings.HasSuffix(host, "sciencedirect.com"):
		return "elsevier"
	case strings.HasSuffix(host, "springer.com"):
		return "springer"
	case strings.HasSuffix(host, "wiley.com"):
		return "wiley"
	case strings.HasSuffix(host, "tandfonline.com"):
		return "tandf"
	default:
		return ""
	}
}

// redirectTarget extracts the URL-encoded target from the hidden
// redirectURL input that linking-hub pages embed, decoded back to a
// plain URL. Returns "" when the page has no such element.
func redirectTarget(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	val, ok := doc.Find(`input[name="redirectURL"]`).First().Attr("value")
	if !ok {
		return ""
	}
	decoded, err := url.QueryUnescape(val)
	if err != nil {
		return ""
	}
	return decoded
}

// piiFromURL pulls the article PII out of a ScienceDirect-style URL,
// whose path ends in .../pii/<PII>. Returns "" when no pii segment
// exists.
func piiFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segs := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i, seg := range segs {
		if seg == "pii" && i+1 < len(segs) {
			return segs[i+1]
		}
	}
	return ""
}

// firstAbstractText walks the markup tree for the first element named
// description or abstract (with or without a namespace prefix) and
// returns its trimmed text. The tolerant HTML parser underneath goquery
// accepts the publishers' not-quite-XML payloads.
func firstAbstractText(page []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return ""
	}
	var text string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		name := goquery.NodeName(s)
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[i+1:]
		}
		if name == "description" || name == "abstract" {
			text = strings.TrimSpace(s.Text())
			return false
		}
		return true
	})
	return text
}
