package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "knower/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// FetchConfig holds settings for abstract retrieval.
type FetchConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto query parameter on CrossRef requests,
	// per the CrossRef polite-pool convention.
	Email string `json:"email" yaml:"email"`

	// ElsevierAPIKey authenticates requests to the Elsevier article API.
	ElsevierAPIKey string `json:"elsevier_api_key,omitempty" yaml:"elsevier_api_key,omitempty"`

	// CachePath is the path to the JSON file of previously fetched
	// CrossRef-style payloads keyed by DOI. Read once at startup,
	// never written back.
	CachePath string `json:"cache_path" yaml:"cache_path"`

	// LandingTimeout is the request timeout for publisher landing pages,
	// which are slower than the APIs (default 20s).
	LandingTimeout time.Duration `json:"landing_timeout" yaml:"landing_timeout"`

	// RequestsPerSecond caps the outbound request rate (default 2).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`

	// OutDir, when set, is the directory where fetched abstract records
	// are written as YAML, one file per DOI.
	OutDir string `json:"out_dir,omitempty" yaml:"out_dir,omitempty"`

	// Verbosity controls how much detail status lines carry. Each
	// repetition of the -v flag increments it.
	Verbosity int `json:"verbosity" yaml:"verbosity"`
}

// CitationConfig holds settings for citation retrieval.
type CitationConfig struct {
	HTTPConfig `yaml:",inline"`

	// Email is sent as the mailto query parameter, as for fetches.
	Email string `json:"email" yaml:"email"`
}
