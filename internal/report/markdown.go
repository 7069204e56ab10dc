// Package report renders collected activity as a Markdown document.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/harukei/github-digest/internal/domain"
)

const (
	nonePlaceholder    = "None"
	noFilesPlaceholder = "No files found"
)

// Render produces the full digest document: a title, the generation date, and
// one section per repository in input order. Output depends only on the
// arguments, so identical input yields byte-identical text.
func Render(reports []domain.RepoReport, generatedAt time.Time) string {
	var b strings.Builder
	b.WriteString("# Daily Activity Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", generatedAt.Format("2006-01-02"))

	for _, r := range reports {
		fmt.Fprintf(&b, "## %s (%s)\n\n", r.Label, r.Name)

		b.WriteString("### Closed Issues\n\n")
		if len(r.Issues) == 0 {
			b.WriteString(nonePlaceholder + "\n\n")
		} else {
			for _, issue := range r.Issues {
				fmt.Fprintf(&b, "- [%s](%s)\n", issue.Title, issue.URL)
			}
			b.WriteString("\n")
		}

		b.WriteString("### Merged Pull Requests\n\n")
		if len(r.Pulls) == 0 {
			b.WriteString(nonePlaceholder + "\n\n")
		} else {
			for _, pr := range r.Pulls {
				fmt.Fprintf(&b, "- [%s](%s)\n", pr.Title, pr.URL)
			}
			b.WriteString("\n")
		}

		b.WriteString("### Commits\n\n")
		if len(r.Commits) == 0 {
			b.WriteString(nonePlaceholder + "\n\n")
		} else {
			for _, c := range r.Commits {
				fmt.Fprintf(&b, "#### %s\n\n", c.Message)
				fmt.Fprintf(&b, "[%s](%s)\n\n", c.ShortSHA(), c.URL)
				if len(c.Files) == 0 {
					b.WriteString(noFilesPlaceholder + "\n\n")
				} else {
					for _, f := range c.Files {
						fmt.Fprintf(&b, "- %s\n", f)
					}
					b.WriteString("\n")
				}
				b.WriteString("---\n\n")
			}
		}
	}

	return b.String()
}
