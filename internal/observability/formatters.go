// Package observability provides formatted terminal output for audit results.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/devlens/devlens/internal/analysis"
	"github.com/devlens/devlens/internal/github"
	"github.com/devlens/devlens/internal/ledger"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
	// barWidth is the width of skill score bars
	barWidth = 20
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the fetched GitHub data.
func (p *Printer) PrintProfile(data *github.UserData) {
	if data == nil || data.Profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("User:      %s (@%s)\n", data.Profile.DisplayName(), data.Profile.Login))
	if data.Profile.Company != "" {
		sb.WriteString(fmt.Sprintf("Company:   %s\n", data.Profile.Company))
	}
	if data.Profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location:  %s\n", data.Profile.Location))
	}
	sb.WriteString(fmt.Sprintf("Repos:     %d public, %d followers\n", data.Profile.PublicRepos, data.Profile.Followers))

	if len(data.Repositories) > 0 {
		sb.WriteString("\nRecent Repositories:\n")
		count := min(len(data.Repositories), maxItemsToShow)
		for i := 0; i < count; i++ {
			repo := data.Repositories[i]
			sb.WriteString(fmt.Sprintf("  • %s", repo.Name))
			if repo.Language != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", repo.Language))
			}
			if repo.Stargazers > 0 {
				sb.WriteString(fmt.Sprintf(" ★%d", repo.Stargazers))
			}
			sb.WriteString("\n")
		}
		if len(data.Repositories) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(data.Repositories)-maxItemsToShow))
		}
	}

	p.printBox("GITHUB PROFILE", strings.TrimRight(sb.String(), "\n"))
}

// PrintAnalysis outputs a human-readable summary of a profile audit.
func (p *Printer) PrintAnalysis(a *analysis.Analysis) {
	if a == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seniority: %s\n\n", a.Seniority))
	sb.WriteString(wrapText(a.Summary, boxWidth-4))
	sb.WriteString("\n")

	if len(a.Strengths) > 0 {
		sb.WriteString("\nStrengths:\n")
		for _, s := range a.Strengths {
			sb.WriteString(fmt.Sprintf("  + %s\n", s))
		}
	}
	if len(a.Weaknesses) > 0 {
		sb.WriteString("\nWeaknesses:\n")
		for _, w := range a.Weaknesses {
			sb.WriteString(fmt.Sprintf("  - %s\n", w))
		}
	}
	if len(a.TechStack) > 0 {
		sb.WriteString(fmt.Sprintf("\nTech Stack: %s\n", strings.Join(a.TechStack, ", ")))
	}

	if len(a.SkillMatrix) > 0 {
		sb.WriteString("\nSkill Matrix:\n")
		for _, skill := range a.SkillMatrix {
			sb.WriteString(fmt.Sprintf("  %-16s %s %3.0f\n", truncate(skill.Skill, 16), scoreBar(skill.Score), skill.Score))
		}
	}

	if a.Recommendation != "" {
		sb.WriteString("\nRecommendation:\n")
		sb.WriteString(wrapText(a.Recommendation, boxWidth-4))
		sb.WriteString("\n")
	}

	p.printBox("PROFILE AUDIT", strings.TrimRight(sb.String(), "\n"))
}

// PrintComparison outputs a human-readable head-to-head comparison.
func (p *Printer) PrintComparison(c *analysis.Comparison, user1, user2 string) {
	if c == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Winner:    %s\n\n", c.Winner))
	sb.WriteString(fmt.Sprintf("%-20s %3.0f/100\n", truncate(user1, 20), c.SuitabilityScore1))
	sb.WriteString(fmt.Sprintf("%-20s %3.0f/100\n", truncate(user2, 20), c.SuitabilityScore2))

	if len(c.ComparisonPoints) > 0 {
		sb.WriteString("\nHead to Head:\n")
		for _, point := range c.ComparisonPoints {
			sb.WriteString(fmt.Sprintf("  %s\n", point.Category))
			sb.WriteString(fmt.Sprintf("    %s: %s\n", user1, point.User1Status))
			sb.WriteString(fmt.Sprintf("    %s: %s\n", user2, point.User2Status))
		}
	}

	if c.Rationale != "" {
		sb.WriteString("\nRationale:\n")
		sb.WriteString(wrapText(c.Rationale, boxWidth-4))
		sb.WriteString("\n")
	}

	p.printBox("PROFILE COMPARISON", strings.TrimRight(sb.String(), "\n"))
}

// PrintSubscription outputs the current credit balance.
func (p *Printer) PrintSubscription(sub ledger.Subscription) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tier:      %s\n", sub.Tier))
	if sub.Tier == ledger.TierPro {
		sb.WriteString("Credits:   unlimited\n")
	} else {
		sb.WriteString(fmt.Sprintf("Credits:   %d remaining\n", sub.CreditsRemaining))
	}
	sb.WriteString(fmt.Sprintf("Analyses:  %d total", sub.TotalAnalyses))

	p.printBox("SUBSCRIPTION", sb.String())
}

// scoreBar renders a 0-100 score as a fixed-width bar.
func scoreBar(score float64) string {
	filled := int(score / 100 * barWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
}

// truncate shortens s to at most n characters.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

// wrapText wraps text to the given width at word boundaries.
func wrapText(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
