package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/plainterms/plainterms-cli/internal/core/domain"
)

var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	chunkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// renderReport formats a verification report for terminal output.
func renderReport(report *domain.VerificationReport) string {
	var b strings.Builder

	if report.OK {
		b.WriteString(okStyle.Render("GROUNDED"))
	} else {
		b.WriteString(failStyle.Render("NOT GROUNDED"))
	}
	b.WriteString(fmt.Sprintf("  %d/%d segments cited (coverage %.2f)\n",
		report.NumCited, report.NumSegments, report.Coverage))

	if report.CitesRetrieved != nil && !*report.CitesRetrieved {
		b.WriteString(warnStyle.Render("  answer does not use the retrieved context"))
		b.WriteString("\n")
	}
	for _, id := range report.UnknownChunkIDs {
		b.WriteString(failStyle.Render("  unknown citation: "))
		b.WriteString(chunkStyle.Render(id))
		b.WriteString("\n")
	}
	for _, id := range report.MissingSnippetMatches {
		b.WriteString(warnStyle.Render("  citation without textual support: "))
		b.WriteString(chunkStyle.Render(id))
		b.WriteString("\n")
	}
	for _, flag := range report.PotentialHallucinations {
		b.WriteString(warnStyle.Render(fmt.Sprintf("  uncited %q claim: ", flag.Term)))
		b.WriteString(dimStyle.Render(truncate(flag.Sentence, 80)))
		b.WriteString("\n")
	}

	return b.String()
}

// renderSegments formats scored segments as a numbered list.
func renderSegments(scored []domain.ScoredSegment) string {
	var b strings.Builder
	for i := range scored {
		seg := scored[i].Segment
		b.WriteString(fmt.Sprintf("  [%d] %s (%.3f)\n", i+1, chunkStyle.Render(seg.ID), scored[i].Score))
		b.WriteString(fmt.Sprintf("      %s\n", truncate(seg.Text, 120)))
		b.WriteString(dimStyle.Render(fmt.Sprintf("      chars %d-%d", seg.StartOffset, seg.EndOffset)))
		b.WriteString("\n")
	}
	return b.String()
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
