// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/GregConan/knower/internal/cite"
	"github.com/GregConan/knower/internal/fetch"
	"github.com/GregConan/knower/pkg/types"
)

var citeCmd = &cobra.Command{
	Use:   "cite [DOIs...]",
	Short: "Fetch BibTeX citations for DOIs",
	Long: `Cite fetches a BibTeX citation for each DOI through the DOI resolver's
content negotiation and prints the parsed entries.`,
	RunE: runCite,
}

func init() {
	citeCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	citeCmd.Flags().String("email", "", "contact email sent with resolver requests")
	citeCmd.Flags().Bool("raw", false, "print the raw BibTeX instead of parsed entries")

	rootCmd.AddCommand(citeCmd)
}

func runCite(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more DOIs")
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	email, _ := cmd.Flags().GetString("email")
	raw, _ := cmd.Flags().GetBool("raw")

	cfg := types.FetchConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Email: secretDefault("crossref-email", email),
	}
	// The citation path never consults the abstract cache, so a missing
	// cache file must not abort the run; the trap swallows that error.
	fetcher, err := fetch.NewFetcher(cfg, fetch.WithTrap(func(error, map[string]any) error {
		return nil
	}))
	if err != nil {
		return err
	}

	failed := 0
	for _, doi := range args {
		bib, err := fetcher.DownloadCitation(cmd.Context(), doi)
		if err == nil && bib == "" {
			err = fmt.Errorf("no citation returned")
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", doi, err)
			failed++
			continue
		}
		if raw {
			fmt.Println(bib)
			continue
		}
		entries, err := cite.Parse(bib)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed:  %s (%v)\n", doi, err)
			failed++
			continue
		}
		for _, e := range entries {
			fmt.Printf("%s [%s] %s (%s)\n", e.Key, e.Type, e.Title(), e.Fields["year"])
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d DOI(s) failed citation fetch", failed)
	}
	return nil
}
