// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/keyword"
	"github.com/jonathan/resume-matcher/internal/ranking"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for the CLI
type Printer struct {
	out     io.Writer
	verbose bool
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// SetVerbose makes list output show every item and per-score details.
func (p *Printer) SetVerbose(verbose bool) {
	p.verbose = verbose
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate cuts s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func (p *Printer) limit(n int) int {
	if p.verbose {
		return n
	}
	return min(n, maxItemsToShow)
}

// PrintMatchResults outputs the ranked results and summary statistics of a batch.
func (p *Printer) PrintMatchResults(resp *types.MatchResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:     %s\n", resp.JobRole))
	sb.WriteString(fmt.Sprintf("Run:      %s\n", resp.RunID))
	sb.WriteString(fmt.Sprintf("Resumes:  %d scored\n", resp.TotalProcessed))

	if len(resp.Results) == 0 {
		sb.WriteString("\nNo resumes could be scored")
		p.printBox("MATCH RESULTS", sb.String())
		return
	}
	sb.WriteString("\n")

	count := p.limit(len(resp.Results))
	for i := 0; i < count; i++ {
		r := resp.Results[i]
		sb.WriteString(fmt.Sprintf("#%-2d %3d  %-16s %s\n", i+1, r.FinalScore, ranking.Label(r.FinalScore), r.SourceID))
		if p.verbose {
			sb.WriteString(fmt.Sprintf("         keyword %d  semantic %d  [%s]\n", r.KeywordScore, r.SemanticScore, ranking.Band(r.FinalScore)))
		}
		if r.SemanticError != "" {
			sb.WriteString(fmt.Sprintf("         semantic unavailable: %s\n", r.SemanticError))
		}
	}
	if len(resp.Results) > count {
		sb.WriteString(fmt.Sprintf("... and %d more resumes\n", len(resp.Results)-count))
	}

	p.printBox("MATCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
	p.PrintStatistics(resp.Statistics)
}

// PrintStatistics outputs the score summary of a batch.
func (p *Printer) PrintStatistics(stats types.Statistics) {
	if stats.Total == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Average:  %d\n", stats.Average))
	sb.WriteString(fmt.Sprintf("Highest:  %d\n", stats.Highest))
	sb.WriteString(fmt.Sprintf("Lowest:   %d\n", stats.Lowest))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Excellent (80+):  %d\n", stats.Distribution.Excellent))
	sb.WriteString(fmt.Sprintf("Good (60-79):     %d\n", stats.Distribution.Good))
	sb.WriteString(fmt.Sprintf("Fair (40-59):     %d\n", stats.Distribution.Fair))
	sb.WriteString(fmt.Sprintf("Poor (<40):       %d", stats.Distribution.Poor))

	p.printBox("SCORE SUMMARY", sb.String())
}

// PrintFilterResults outputs the results that matched a keyword filter.
func (p *Printer) PrintFilterResults(resp *types.FilterResponse) {
	if resp == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Matches:  %d\n", resp.TotalMatches))

	count := p.limit(len(resp.FilteredResults))
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		r := resp.FilteredResults[i]
		sb.WriteString(fmt.Sprintf("%3d  %s\n", r.FinalScore, r.SourceID))
		sb.WriteString(fmt.Sprintf("     [%s]\n", strings.Join(r.MatchedKeywords, ", ")))
	}
	if len(resp.FilteredResults) > count {
		sb.WriteString(fmt.Sprintf("... and %d more resumes\n", len(resp.FilteredResults)-count))
	}

	p.printBox("KEYWORD FILTER", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoles outputs the known job roles and their weight vectors.
func (p *Printer) PrintRoles(table *keyword.WeightTable) {
	if table == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("exp   kw    cert  comm  proj  role\n")
	for _, role := range table.Roles() {
		w, err := table.Lookup(role)
		if err != nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%.2f  %.2f  %.2f  %.2f  %.2f  %s\n", w[0], w[1], w[2], w[3], w[4], role))
	}

	p.printBox("JOB ROLES", strings.TrimSuffix(sb.String(), "\n"))
}
