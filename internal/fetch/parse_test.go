// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"testing"

	"github.com/GregConan/knower/pkg/types"
)

func TestParseAbstractPlainText(t *testing.T) {
	// With no embedded tags the text passes through untouched and no
	// labeled sections appear.
	text := "This sentence has no markup at all."
	got := ParseAbstract(text)
	if got.FullText() != text {
		t.Errorf("FullText = %q, want %q", got.FullText(), text)
	}
	if len(got) != 1 {
		t.Errorf("got %d entries, want only %s", len(got), types.FullTextKey)
	}
}

func TestParseAbstractStripsNamespacedTags(t *testing.T) {
	raw := `<jats:p>Intro</jats:p> Body text.`
	got := ParseAbstract(raw)
	if want := "Intro Body text."; got.FullText() != want {
		t.Errorf("FullText = %q, want %q", got.FullText(), want)
	}
	// "Intro" has no trailing period, "Body text." does, so the
	// adjacency heuristic records it as a section label.
	if got["Intro"] != "Body text." {
		t.Errorf(`got["Intro"] = %q, want "Body text."`, got["Intro"])
	}
}

func TestParseAbstractSectionLabels(t *testing.T) {
	raw := `<jats:sec><jats:title>Background</jats:title><jats:p>We studied things.</jats:p></jats:sec>` +
		`<jats:sec><jats:title>Results</jats:title><jats:p>Things were found.</jats:p></jats:sec>`
	got := ParseAbstract(raw)

	if got["Background"] != "We studied things." {
		t.Errorf(`got["Background"] = %q`, got["Background"])
	}
	if got["Results"] != "Things were found." {
		t.Errorf(`got["Results"] = %q`, got["Results"])
	}
	if want := "Background We studied things. Results Things were found."; got.FullText() != want {
		t.Errorf("FullText = %q, want %q", got.FullText(), want)
	}
}

func TestParseAbstractConsecutiveHeadings(t *testing.T) {
	// Only the fragment immediately before a period-terminated fragment
	// becomes a label; the earlier heading is dropped as a label.
	raw := `<jats:title>Aims</jats:title><jats:title>Scope</jats:title><jats:p>Covered here.</jats:p>`
	got := ParseAbstract(raw)
	if _, ok := got["Aims"]; ok {
		t.Error(`"Aims" should not be recorded as a label`)
	}
	if got["Scope"] != "Covered here." {
		t.Errorf(`got["Scope"] = %q, want "Covered here."`, got["Scope"])
	}
}

func TestParseAbstractIdempotent(t *testing.T) {
	raw := `<jats:p>Intro</jats:p> Body text.`
	first := ParseAbstract(raw)
	second := ParseAbstract(first.FullText())
	if second.FullText() != first.FullText() {
		t.Errorf("second pass FullText = %q, want %q", second.FullText(), first.FullText())
	}
}

func TestParseAbstractEmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"only tags", `<jats:p></jats:p><jats:sec></jats:sec>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAbstract(tt.raw)
			if !got.IsEmpty() {
				t.Errorf("ParseAbstract(%q) = %v, want empty result", tt.raw, got)
			}
		})
	}
}

func TestParseAbstractNonNamespacedTagsKept(t *testing.T) {
	// Plain tags without a namespace colon are not split points.
	raw := "Text with <b>plain</b> markup."
	got := ParseAbstract(raw)
	if got.FullText() != raw {
		t.Errorf("FullText = %q, want %q", got.FullText(), raw)
	}
}
