package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

var matchCmd = &cobra.Command{
	Use:   "match RESUME_FILES...",
	Short: "Score and rank resumes against a job description",
	Long: "Scores each plain-text resume (directories are expanded to their .txt/.md files) " +
		"against the job description for the given role and prints the ranking. " +
		"With --out the full MatchResponse JSON is also written to a file.",
	Args: cobra.MinimumNArgs(1),
	RunE: runMatchCmd,
}

var (
	matchJob           string
	matchRole          string
	matchKeywordWeight float64
	matchOutput        string
	matchVerbose       bool
)

func init() {
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job description text file (required)")
	matchCmd.Flags().StringVarP(&matchRole, "role", "r", "", "Job role used to weight keyword sub-scores (required)")
	matchCmd.Flags().Float64VarP(&matchKeywordWeight, "keyword-weight", "w", types.DefaultKeywordWeight, "Keyword share of the final score (0.0-1.0)")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to output MatchResponse JSON file")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Show every result with sub-scores")

	if err := matchCmd.MarkFlagRequired("job"); err != nil {
		panic(fmt.Sprintf("failed to mark job flag as required: %v", err))
	}
	if err := matchCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}

	rootCmd.AddCommand(matchCmd)
}

// matchOptions carries the match command's flags.
type matchOptions struct {
	JobPath string
	Role    string
	// KeywordWeight overrides the configured weight when set.
	KeywordWeight *float64
	Output        string
	Verbose       bool
}

func runMatchCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	opts := matchOptions{
		JobPath: matchJob,
		Role:    matchRole,
		Output:  matchOutput,
		Verbose: matchVerbose,
	}
	if cmd.Flags().Changed("keyword-weight") {
		opts.KeywordWeight = &matchKeywordWeight
	}
	return runMatch(cmd.Context(), a, opts, args, cmd.OutOrStdout())
}

// runMatch loads the inputs, runs the batch and reports the ranking.
func runMatch(ctx context.Context, a *app, opts matchOptions, resumePaths []string, stdout io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	jobDescription, err := ingestion.LoadText(opts.JobPath)
	if err != nil {
		return fmt.Errorf("failed to load job description: %w", err)
	}
	resumes, err := ingestion.LoadResumes(resumePaths)
	if err != nil {
		return fmt.Errorf("failed to load resumes: %w", err)
	}
	if len(resumes) == 0 {
		return fmt.Errorf("no resume files found in %v", resumePaths)
	}

	req := types.MatchRequest{
		Resumes:        resumes,
		JobDescription: jobDescription,
		JobRole:        opts.Role,
		KeywordWeight:  opts.KeywordWeight,
	}
	if req.KeywordWeight == nil {
		req.KeywordWeight = a.cfg.KeywordWeight
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid match request: %w", err)
	}

	resp, err := a.matcher.Match(ctx, req)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := writeJSON(opts.Output, resp); err != nil {
			return err
		}
		// Output validation is a safety check; failures only warn.
		if err := schemas.ValidateValue(schemafiles.MatchResponse, resp); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: Output validation failed: %v\n", err)
		}
	}

	printer := observability.NewPrinter(stdout)
	printer.SetVerbose(opts.Verbose)
	printer.PrintMatchResults(&resp)

	if opts.Output != "" {
		_, _ = fmt.Fprintf(stdout, "Wrote %d results to %s\n", len(resp.Results), opts.Output)
	}
	return nil
}

// writeJSON writes v as indented JSON, creating the parent directory if needed.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
