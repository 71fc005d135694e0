// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleCacheJSON = `{
  "10.1000/demo": {
    "message": {
      "title": ["A Cached Work"],
      "abstract": "<jats:p>Intro</jats:p> Body text."
    }
  }
}`

func writeCacheFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cache.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCache(t *testing.T) {
	path := writeCacheFile(t, sampleCacheJSON)
	cache, err := LoadCache(path)
	if err != nil {
		t.Fatal(err)
	}
	payload, ok := cache["10.1000/demo"]
	if !ok {
		t.Fatal("cached DOI missing from index")
	}
	text, title := crossrefAbstract(payload)
	if text != "<jats:p>Intro</jats:p> Body text." {
		t.Errorf("abstract = %q", text)
	}
	if title != "A Cached Work" {
		t.Errorf("title = %q", title)
	}
}

func TestLoadCacheMissingFile(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "nope.json"))
	var cerr *CacheError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *CacheError", err)
	}
}

func TestLoadCacheMalformed(t *testing.T) {
	path := writeCacheFile(t, "{not json")
	_, err := LoadCache(path)
	var cerr *CacheError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *CacheError", err)
	}
	if cerr.Path != path {
		t.Errorf("CacheError.Path = %q, want %q", cerr.Path, path)
	}
}

func TestCrossrefAbstractMissingField(t *testing.T) {
	text, _ := crossrefAbstract([]byte(`{"message": {}}`))
	if text != "" {
		t.Errorf("abstract = %q, want empty", text)
	}
}
