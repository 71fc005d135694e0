// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"regexp"
	"strings"

	"github.com/GregConan/knower/pkg/types"
)

// namespacedTag matches runs of whitespace-bounded pseudo-XML tags that
// carry a namespace-style colon, e.g. <jats:p> or </jats:sec>. Source
// abstracts embed these inconsistently (unclosed, mixed namespaces), so
// a structured XML parse is not possible; splitting on the tags strips
// the markup while keeping the text fragments in order.
var namespacedTag = regexp.MustCompile(`(?:\s?<{1}/?.+?:{1}.+?>\s?)+`)

// ParseAbstract converts a raw abstract string with embedded, incompletely
// formed markup into a ParsedAbstract.
//
// The text is split on namespaced tag runs and empty fragments dropped.
// The full_text entry joins the surviving fragments with single spaces.
// A fragment that does not end with a period immediately followed by one
// that does is treated as a section heading and recorded as a label for
// the following fragment. Only the immediately preceding fragment becomes
// a label; earlier consecutive heading-like fragments are not merged.
//
// Callers must check IsEmpty on the result: an input with no text between
// tags parses to an empty result, which the cascade treats as failure.
func ParseAbstract(raw string) types.ParsedAbstract {
	var fragments []string
	for _, frag := range namespacedTag.Split(raw, -1) {
		if frag != "" {
			fragments = append(fragments, frag)
		}
	}

	parsed := types.ParsedAbstract{
		types.FullTextKey: strings.Join(fragments, " "),
	}
	for i := 0; i < len(fragments)-1; i++ {
		if strings.HasSuffix(fragments[i+1], ".") && !strings.HasSuffix(fragments[i], ".") {
			parsed[fragments[i]] = fragments[i+1]
		}
	}
	return parsed
}
