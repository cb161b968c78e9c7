// Package observability formats analysis results for the terminal.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resume-ats-checker/internal/db"
	"github.com/jonathan/resume-ats-checker/internal/types"
)

const (
	// boxWidth is the outer width of every box
	boxWidth = 64
	// maxItemsToShow caps list lengths inside a box
	maxItemsToShow = 8
	barWidth       = 30
)

// Printer writes human-readable reports.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

//nolint:errcheck // terminal output; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	inner := boxWidth - 4
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)
	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, inner), inner))
	}
	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintAnalysis prints the full report for one analysis.
func (p *Printer) PrintAnalysis(res *types.AnalysisResult) {
	if res == nil {
		return
	}
	p.printBox("ATS SCORE", scoreSummary(res))
	p.printBox("SCORE BREAKDOWN", breakdown(res.ScoreBreakdown))
	p.printBox("KEYWORDS", keywordSummary(res))
	p.printBox("SKILLS", skillSummary(res.SkillsAnalysis))
	p.printBox("EXPERIENCE & CONTEXT", experienceSummary(res))
	p.printBox("SECTIONS", sectionSummary(res))
	p.printBox("SUGGESTIONS", numbered(res.Suggestions))
}

func scoreSummary(res *types.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %d/100  %s\n", bar(float64(res.ATSScore)), res.ATSScore, Tier(res.ATSScore))
	fmt.Fprintf(&sb, "Keyword match:      %6.2f%%\n", res.KeywordMatchRate)
	if res.SemanticSimilarity != nil {
		fmt.Fprintf(&sb, "Semantic:           %6.2f%%\n", *res.SemanticSimilarity)
	}
	fmt.Fprintf(&sb, "TF-IDF:             %6.2f%%\n", res.TFIDFSimilarity)
	fmt.Fprintf(&sb, "Strategies:         %s / %s\n", res.Strategies.Keywords, res.Strategies.Similarity)
	fmt.Fprintf(&sb, "Analysis ID:        %s", res.AnalysisID)
	return sb.String()
}

// Tier labels a score band.
func Tier(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	}
	return "Needs work"
}

func breakdown(b types.ScoreBreakdown) string {
	rows := []struct {
		name string
		c    types.ComponentScore
	}{
		{"Keyword match", b.KeywordMatch},
		{"Content similarity", b.ContentSimilarity},
		{"Skills coverage", b.SkillsCoverage},
		{"Experience quality", b.ExperienceQuality},
		{"Context alignment", b.ContextAlignment},
		{"Section structure", b.SectionStructure},
	}
	var sb strings.Builder
	for i, r := range rows {
		fmt.Fprintf(&sb, "%-19s %3d%%  score %6.2f  -> %5.2f", r.name, r.c.WeightPercent, r.c.Score, r.c.Contribution)
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func keywordSummary(res *types.AnalysisResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Job keywords: %d   Resume keywords: %d\n", res.TotalJobKeywords, res.TotalResumeKeywords)
	sb.WriteString("Matched: " + list(res.MatchedKeywords) + "\n")
	sb.WriteString("Missing: " + list(res.MissingKeywords))
	return sb.String()
}

func skillSummary(s types.SkillsAnalysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Coverage: %.2f%% exact, %.2f%% total\n", s.ExactCoveragePercent, s.TotalCoveragePercent)
	sb.WriteString("Exact:   " + list(s.ExactMatches) + "\n")
	sb.WriteString("Partial: " + list(s.PartialMatches) + "\n")
	sb.WriteString("Missing: " + list(s.MissingSkills))
	return sb.String()
}

func experienceSummary(res *types.AnalysisResult) string {
	e := res.ExperienceAnalysis
	var sb strings.Builder
	fmt.Fprintf(&sb, "Strength score:     %d/100\n", e.ExperienceStrengthScore)
	fmt.Fprintf(&sb, "Action verbs:       %d\n", e.ActionVerbCount)
	fmt.Fprintf(&sb, "Quantified results: %d\n", e.QuantifiableAchievements)
	fmt.Fprintf(&sb, "Leadership:         %d\n", e.LeadershipIndicators)
	fmt.Fprintf(&sb, "Context match:      %.2f%% (%d well placed)", res.ContextAnalysis.AverageContextMatch, res.ContextAnalysis.WellContextualizedCount)
	return sb.String()
}

func sectionSummary(res *types.AnalysisResult) string {
	title := cases.Title(language.English)
	var sb strings.Builder
	for _, name := range types.SectionNames {
		mark := "✗"
		if res.SectionAnalysis.Get(name) {
			mark = "✓"
		}
		fmt.Fprintf(&sb, "%s %s\n", mark, title.String(name))
	}
	fmt.Fprintf(&sb, "Completeness: %.0f%%", res.SectionCompletenessPercent)
	return sb.String()
}

// PrintHistory prints stored analyses, newest first.
//
//nolint:errcheck // terminal output
func (p *Printer) PrintHistory(items []db.AnalysisSummary) {
	if len(items) == 0 {
		fmt.Fprintln(p.out, "No analyses stored yet.")
		return
	}
	var sb strings.Builder
	for i, s := range items {
		fmt.Fprintf(&sb, "%s  %3d  %6.2f%%  %s", s.CreatedAt.Format("2006-01-02 15:04"), s.ATSScore, s.KeywordMatchRate, s.ID)
		if i < len(items)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("ANALYSIS HISTORY (%d)", len(items)), sb.String())
}

func bar(percent float64) string {
	filled := int(percent / 100 * barWidth)
	filled = max(0, min(barWidth, filled))
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

func list(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	shown := items[:min(len(items), maxItemsToShow)]
	out := strings.Join(shown, ", ")
	if rest := len(items) - len(shown); rest > 0 {
		out += fmt.Sprintf(" ... and %d more", rest)
	}
	return out
}

func numbered(items []string) string {
	lines := make([]string, len(items))
	for i, s := range items {
		lines[i] = fmt.Sprintf("%d. %s", i+1, s)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

func pad(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
