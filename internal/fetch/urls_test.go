// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name    string
		domain  string
		id      string
		params  []Param
		want    string
		wantErr error
	}{
		{
			name:   "crossref",
			domain: "crossref",
			id:     "10.1000/xyz",
			want:   "https://api.crossref.org/v1/works/10.1000/xyz",
		},
		{
			name:   "doi resolver",
			domain: "doi",
			id:     "10.1000/xyz",
			want:   "https://doi.org/10.1000/xyz",
		},
		{
			name:   "case insensitive key",
			domain: "CrossRef",
			id:     "10.1000/xyz",
			want:   "https://api.crossref.org/v1/works/10.1000/xyz",
		},
		{
			name:   "params in insertion order",
			domain: "crossref",
			id:     "10.1000/xyz",
			params: []Param{{"mailto", "who@example.org"}, {"rows", "1"}},
			want:   "https://api.crossref.org/v1/works/10.1000/xyz?mailto=who@example.org&rows=1",
		},
		{
			name:   "elsevier takes a pii",
			domain: "elsevier",
			id:     "S0123456789",
			want:   "https://api.elsevier.com/content/article/pii/S0123456789",
		},
		{
			name:    "unknown domain",
			domain:  "nonesuch",
			id:      "10.1000/xyz",
			wantErr: ErrUnknownDomain,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.domain, tt.id, tt.params...)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("BuildURL(%q) error = %v, want %v", tt.domain, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildURL(%q) unexpected error: %v", tt.domain, err)
			}
			if got != tt.want {
				t.Errorf("BuildURL(%q, %q) = %q, want %q", tt.domain, tt.id, got, tt.want)
			}
		})
	}
}

func TestBuildURLContainsDOIVerbatim(t *testing.T) {
	doi := "10.1038/s41586-024-07487-w"
	got, err := BuildURL("crossref", doi)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(got, doi) {
		t.Errorf("BuildURL result %q does not contain DOI %q", got, doi)
	}
	if !strings.HasPrefix(got, "https://") {
		t.Errorf("BuildURL result %q is not https", got)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		doi  string
		want string
	}{
		{"10.1145/1234567.1234568", "10.1145-1234567.1234568"},
		{"10.1000/a:b", "10.1000-a-b"},
	}
	for _, tt := range tests {
		if got := Slug(tt.doi); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.doi, got, tt.want)
		}
	}
}
