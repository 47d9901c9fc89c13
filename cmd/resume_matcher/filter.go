package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/filtering"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter match results by keyword presence",
	Long: "Reads results written by 'match --out' (a MatchResponse or a bare result array) " +
		"and keeps those whose text contains at least one of the comma-separated keywords.",
	RunE: runFilterCmd,
}

var (
	filterResults  string
	filterKeywords string
	filterOutput   string
)

func init() {
	filterCmd.Flags().StringVarP(&filterResults, "results", "i", "", "Path to match results JSON file (required)")
	filterCmd.Flags().StringVarP(&filterKeywords, "keywords", "k", "", "Comma-separated keywords (required)")
	filterCmd.Flags().StringVarP(&filterOutput, "out", "o", "", "Path to output FilterResponse JSON file")

	if err := filterCmd.MarkFlagRequired("results"); err != nil {
		panic(fmt.Sprintf("failed to mark results flag as required: %v", err))
	}
	if err := filterCmd.MarkFlagRequired("keywords"); err != nil {
		panic(fmt.Sprintf("failed to mark keywords flag as required: %v", err))
	}

	rootCmd.AddCommand(filterCmd)
}

func runFilterCmd(cmd *cobra.Command, _ []string) error {
	return runFilter(filterResults, filterKeywords, filterOutput, cmd.OutOrStdout())
}

func runFilter(resultsPath, keywords, output string, stdout io.Writer) error {
	results, err := loadResults(resultsPath)
	if err != nil {
		return err
	}

	filtered := filtering.Filter(results, keywords)
	resp := types.FilterResponse{FilteredResults: filtered, TotalMatches: len(filtered)}

	if output != "" {
		if err := writeJSON(output, resp); err != nil {
			return err
		}
		if err := schemas.ValidateValue(schemafiles.FilterResponse, resp); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	observability.NewPrinter(stdout).PrintFilterResults(&resp)
	return nil
}

// loadResults reads a MatchResponse document or a bare JSON array of results.
func loadResults(path string) ([]types.ScoreResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read results file %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		var results []types.ScoreResult
		if err := json.Unmarshal(trimmed, &results); err != nil {
			return nil, fmt.Errorf("failed to unmarshal results JSON: %w", err)
		}
		return results, nil
	}

	var resp types.MatchResponse
	if err := json.Unmarshal(trimmed, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal match response JSON: %w", err)
	}
	return resp.Results, nil
}
