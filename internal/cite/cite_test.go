// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBibTeX = `@article{Conan_2024,
  title   = {On Knowing Things},
  author  = {Conan, Greg},
  journal = {Journal of Examples},
  year    = {2024},
  doi     = {10.1000/demo}
}`

func TestParse(t *testing.T) {
	entries, err := Parse(sampleBibTeX)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "Conan_2024", e.Key)
	assert.Equal(t, "article", e.Type)
	assert.Equal(t, "On Knowing Things", e.Title())
	assert.Equal(t, "10.1000/demo", e.Fields["doi"])
}

func TestParseMultipleEntries(t *testing.T) {
	raw := sampleBibTeX + "\n" + `@book{Other_2020,
  title = {Another Work},
  year  = {2020}
}`
	entries, err := Parse(raw)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Other_2020", entries[1].Key)
	assert.Equal(t, "book", entries[1].Type)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse("@article{broken")
	assert.Error(t, err)
}

func TestParseEmpty(t *testing.T) {
	entries, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
