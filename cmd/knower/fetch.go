// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.yaml.in/yaml/v3"

	"github.com/GregConan/knower/internal/fetch"
	"github.com/GregConan/knower/pkg/types"
)

const (
	defaultTimeout        = 10 * time.Second
	defaultLandingTimeout = 20 * time.Second
	defaultUserAgent      = "knower/0.1 (https://github.com/GregConan/knower)"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [DOIs...]",
	Short: "Resolve DOIs to parsed article abstracts",
	Long: `Fetch resolves each DOI to an abstract: the local cache is consulted
first, then the CrossRef API, then the publisher landing page reached
through the DOI resolver. Abstracts are parsed into labeled sections and
optionally written to an output directory as YAML, one file per DOI.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().BoolP("debug", "d", false, "record errors and continue instead of failing fast")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	fetchCmd.Flags().Duration("landing-timeout", 0, "timeout for publisher landing pages (default 20s)")
	fetchCmd.Flags().String("cache", fetch.DefaultCachePath, "path to the local abstract cache file")
	fetchCmd.Flags().String("email", "", "contact email sent with CrossRef requests")
	fetchCmd.Flags().String("api-key", "", "Elsevier API key for publisher scraping")
	fetchCmd.Flags().StringP("out", "o", "", "directory to write abstract records into")
	fetchCmd.Flags().CountP("verbose", "v", "print more detail while running (repeatable)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	landingTimeout, _ := cmd.Flags().GetDuration("landing-timeout")
	if landingTimeout == 0 {
		landingTimeout = defaultLandingTimeout
	}
	cachePath, _ := cmd.Flags().GetString("cache")
	email, _ := cmd.Flags().GetString("email")
	apiKey, _ := cmd.Flags().GetString("api-key")
	outDir, _ := cmd.Flags().GetString("out")
	verbosity, _ := cmd.Flags().GetCount("verbose")
	debugging, _ := cmd.Flags().GetBool("debug")

	// Flags win over config file values, which win over secrets.
	if email == "" {
		email = viper.GetString("fetch.email")
	}
	if apiKey == "" {
		apiKey = viper.GetString("fetch.elsevier_api_key")
	}
	if !cmd.Flags().Changed("cache") {
		if p := viper.GetString("fetch.cache_path"); p != "" {
			cachePath = p
		}
	}

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email:          secretDefault("crossref-email", email),
		ElsevierAPIKey: secretDefault("elsevier-api-key", apiKey),
		CachePath:      cachePath,
		LandingTimeout: landingTimeout,
		OutDir:         outDir,
		Verbosity:      verbosity,
	}

	var opts []fetch.Option
	if debugging {
		opts = append(opts, fetch.WithTrap(fetch.RecordingTrap(os.Stderr, verbosity > 1)))
	}

	fetcher, err := fetch.NewFetcher(cfg, opts...)
	if err != nil {
		return err
	}

	result := fetcher.FetchBatch(cmd.Context(), args, os.Stdout)

	if outDir != "" {
		if err := writeAbstracts(result.Abstracts, outDir); err != nil {
			return err
		}
	}

	if result.HasFailures() {
		return fmt.Errorf("%d DOI(s) failed to resolve", result.Failed)
	}
	return nil
}

// writeAbstracts writes each record as YAML into dir, one file per DOI,
// creating dir if needed.
func writeAbstracts(abstracts []*types.Abstract, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	for _, abs := range abstracts {
		data, err := yaml.Marshal(abs)
		if err != nil {
			return fmt.Errorf("marshaling abstract for %s: %w", abs.DOI, err)
		}
		path := filepath.Join(dir, fetch.Slug(abs.DOI)+".yaml")
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
