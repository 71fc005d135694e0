// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"strings"
)

// domainTemplates maps a domain key to a URL template with one slot for
// the identifier: a DOI everywhere except sciencedirect and elsevier,
// which take an article PII. Declared as a var so tests can substitute
// httptest servers.
//
// Templates carry no scheme; BuildURL prepends https unless a test
// substitute already includes one.
var domainTemplates = map[string]string{
	"crossref":      "api.crossref.org/v1/works/%s",
	"doi":           "doi.org/%s",
	"springer":      "link.springer.com/article/%s",
	"tandf":         "www.tandfonline.com/doi/abs/%s",
	"wiley":         "onlinelibrary.wiley.com/doi/%s",
	"sciencedirect": "www.sciencedirect.com/science/article/abs/pii/%s",
	"elsevier":      "api.elsevier.com/content/article/pii/%s",
}

// Param is one query parameter. Parameters render in slice order, so
// callers control ordering.
type Param struct {
	Key   string
	Value string
}

// BuildURL expands the template for domain with id and appends params as
// a query string. The domain key is case-insensitive; an unknown key
// returns ErrUnknownDomain. The id is inserted verbatim: DOIs are
// assumed already URL-safe and are never escaped.
func BuildURL(domain, id string, params ...Param) (string, error) {
	tmpl, ok := domainTemplates[strings.ToLower(domain)]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	u := fmt.Sprintf(tmpl, id)
	if !strings.Contains(u, "://") {
		u = "https://" + u
	}

	if len(params) > 0 {
		pairs := make([]string, len(params))
		for i, p := range params {
			pairs[i] = p.Key + "=" + p.Value
		}
		u += "?" + strings.Join(pairs, "&")
	}
	return u, nil
}

// Slug returns a filesystem-safe filename stem for a DOI.
func Slug(doi string) string {
	return strings.NewReplacer("/", "-", ":", "-").Replace(doi)
}
