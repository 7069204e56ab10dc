// Package gateway provides a gateway to the GitHub REST API,
// abstracting away the underlying client.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/harukei/github-digest/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching activity from GitHub.
// Every method is a single best-effort fetch: no retries, no caching, no
// pagination.
type Fetcher interface {
	FetchClosedIssues(ctx context.Context, repo string, since time.Time) ([]domain.Issue, error)
	FetchClosedPulls(ctx context.Context, repo string, since time.Time) ([]domain.PullRequest, error)
	FetchCommits(ctx context.Context, repo string, since time.Time) ([]domain.Commit, error)
	FetchCommitFiles(ctx context.Context, repo, sha string) ([]string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
// All endpoints are scoped to repositories owned by the configured account.
type GitHubGateway struct {
	client *github.Client
	user   string
	logger zerolog.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token, user string, logger zerolog.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		client: github.NewClient(httpClient),
		user:   user,
		logger: logger,
	}, nil
}

// FetchClosedIssues lists issues closed in the window that were created by the
// configured account. The server-side filter is trusted; the result is not
// re-checked against the closure date.
func (g *GitHubGateway) FetchClosedIssues(ctx context.Context, repo string, since time.Time) ([]domain.Issue, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching closed issues")
	opts := &github.IssueListByRepoOptions{
		State:   "closed",
		Creator: g.user,
		Since:   since,
	}
	raw, _, err := g.client.Issues.ListByRepo(ctx, g.user, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed issues for %s: %w", repo, err)
	}
	issues := make([]domain.Issue, 0, len(raw))
	for _, issue := range raw {
		issues = append(issues, domain.Issue{
			Title: issue.GetTitle(),
			URL:   issue.GetHTMLURL(),
		})
	}
	return issues, nil
}

// FetchClosedPulls returns every closed pull request the platform reports for
// the window. go-github has no typed "since" option on the pulls listing, so
// the request is built by hand; merge and author filtering is the caller's job.
func (g *GitHubGateway) FetchClosedPulls(ctx context.Context, repo string, since time.Time) ([]domain.PullRequest, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching closed pull requests")
	q := url.Values{}
	q.Set("state", "closed")
	q.Set("since", since.Format(time.RFC3339))
	u := fmt.Sprintf("repos/%s/%s/pulls?%s", g.user, repo, q.Encode())
	req, err := g.client.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build pull request listing for %s: %w", repo, err)
	}
	var raw []*github.PullRequest
	if _, err := g.client.Do(ctx, req, &raw); err != nil {
		return nil, fmt.Errorf("failed to list closed pull requests for %s: %w", repo, err)
	}
	pulls := make([]domain.PullRequest, 0, len(raw))
	for _, pr := range raw {
		var mergedAt *time.Time
		if ts := pr.MergedAt; ts != nil {
			t := ts.Time
			mergedAt = &t
		}
		pulls = append(pulls, domain.PullRequest{
			Title:    pr.GetTitle(),
			URL:      pr.GetHTMLURL(),
			MergedAt: mergedAt,
			Author:   pr.GetUser().GetLogin(),
		})
	}
	return pulls, nil
}

// FetchCommits lists the commits authored by the configured account in the
// window. File lists are resolved later, one commit at a time.
func (g *GitHubGateway) FetchCommits(ctx context.Context, repo string, since time.Time) ([]domain.Commit, error) {
	g.logger.Debug().Str("repo", repo).Msg("fetching commits")
	opts := &github.CommitsListOptions{
		Author: g.user,
		Since:  since,
	}
	raw, _, err := g.client.Repositories.ListCommits(ctx, g.user, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits for %s: %w", repo, err)
	}
	commits := make([]domain.Commit, 0, len(raw))
	for _, rc := range raw {
		commits = append(commits, domain.Commit{
			SHA:     rc.GetSHA(),
			Message: rc.GetCommit().GetMessage(),
			URL:     rc.GetHTMLURL(),
		})
	}
	return commits, nil
}

// FetchCommitFiles resolves the file paths touched by a single commit, in the
// order the detail payload lists them. A payload without a file list yields an
// empty slice, not an error.
func (g *GitHubGateway) FetchCommitFiles(ctx context.Context, repo, sha string) ([]string, error) {
	g.logger.Debug().Str("repo", repo).Str("sha", sha).Msg("fetching commit files")
	detail, _, err := g.client.Repositories.GetCommit(ctx, g.user, repo, sha, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch commit %s in %s: %w", sha, repo, err)
	}
	files := make([]string, 0, len(detail.Files))
	for _, f := range detail.Files {
		files = append(files, f.GetFilename())
	}
	return files, nil
}
