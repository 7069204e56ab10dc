// Package domain contains the core data structures for the daily digest.
package domain

import "time"

// Repository identifies one configured repository to report on.
// The list of repositories is ordered; the report keeps that order.
type Repository struct {
	Name  string `yaml:"name" json:"name"`
	Label string `yaml:"label" json:"label"`
}

// Issue is a closed issue as returned by the platform, taken verbatim.
type Issue struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// PullRequest carries the fields the merge filter needs: a pull request is
// reported only when MergedAt is non-nil and Author matches the configured
// account.
type PullRequest struct {
	Title    string     `json:"title"`
	URL      string     `json:"url"`
	MergedAt *time.Time `json:"merged_at"`
	Author   string     `json:"author"`
}

// Commit is a single commit with its lazily resolved list of modified files.
type Commit struct {
	SHA     string   `json:"sha"`
	Message string   `json:"message"`
	URL     string   `json:"url"`
	Files   []string `json:"files"`
}

// ShortSHA returns the abbreviated commit identifier used in the report.
func (c Commit) ShortSHA() string {
	if len(c.SHA) > 7 {
		return c.SHA[:7]
	}
	return c.SHA
}

// RepoReport bundles one repository's activity for the renderer. Commits are
// expected to have their file lists resolved before the report is assembled.
type RepoReport struct {
	Repository
	Issues  []Issue
	Pulls   []PullRequest
	Commits []Commit
}
