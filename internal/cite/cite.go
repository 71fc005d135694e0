// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite parses BibTeX citation records fetched from the DOI
// resolver's content negotiation endpoint.
package cite

import (
	"fmt"
	"strings"

	"github.com/nickng/bibtex"
)

// Entry is one parsed citation.
type Entry struct {
	// Key is the citation key (e.g. "Smith_2023").
	Key string `json:"key" yaml:"key"`

	// Type is the entry type (e.g. "article", "inproceedings").
	Type string `json:"type" yaml:"type"`

	// Fields maps field names to their values (title, author, year, ...).
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Title returns the entry's title field, or "" when absent.
func (e Entry) Title() string {
	return e.Fields["title"]
}

// Parse reads one or more BibTeX records from raw.
func Parse(raw string) ([]Entry, error) {
	bib, err := bibtex.Parse(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing BibTeX: %w", err)
	}

	entries := make([]Entry, 0, len(bib.Entries))
	for _, be := range bib.Entries {
		fields := make(map[string]string, len(be.Fields))
		for name, val := range be.Fields {
			fields[name] = val.String()
		}
		entries = append(entries, Entry{
			Key:    be.CiteName,
			Type:   be.Type,
			Fields: fields,
		})
	}
	return entries, nil
}
