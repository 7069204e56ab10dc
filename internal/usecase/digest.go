// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/harukei/github-digest/internal/domain"
	"github.com/harukei/github-digest/internal/gateway"
)

// Digest is the use case that collects one day's activity for every
// configured repository.
type Digest struct {
	fetcher gateway.Fetcher
	user    string
	logger  zerolog.Logger
}

// NewDigest creates a new Digest instance.
func NewDigest(fetcher gateway.Fetcher, user string, logger zerolog.Logger) *Digest {
	return &Digest{
		fetcher: fetcher,
		user:    user,
		logger:  logger,
	}
}

// Build fetches activity since the given time for each repository and returns
// one report per repository that fetched cleanly, in input order. A failure
// anywhere in one repository's fetch sequence drops that repository from the
// result and does not affect the others.
//
// concurrency bounds how many repositories are fetched at once; 1 keeps the
// run fully sequential and the log ordering deterministic.
func (d *Digest) Build(ctx context.Context, repos []domain.Repository, since time.Time, concurrency int) []domain.RepoReport {
	if concurrency < 1 {
		concurrency = 1
	}

	// One slot per configured repository; failed ones stay nil so the final
	// report keeps configuration order regardless of completion order.
	results := make([]*domain.RepoReport, len(repos))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			rep, err := d.collect(egCtx, repo, since)
			if err != nil {
				// Recoverable: the repository is omitted from the report.
				d.logger.Error().Err(err).Str("repo", repo.Name).Msg("skipping repository")
				return nil
			}
			results[i] = rep
			return nil
		})
	}
	_ = eg.Wait() // tasks never fail the group

	reports := make([]domain.RepoReport, 0, len(repos))
	for _, r := range results {
		if r != nil {
			reports = append(reports, *r)
		}
	}
	return reports
}

// collect fetches the three activity categories for one repository and
// resolves every commit's file list before the entry is returned, so the
// renderer never sees a partially resolved commit.
func (d *Digest) collect(ctx context.Context, repo domain.Repository, since time.Time) (*domain.RepoReport, error) {
	issues, err := d.fetcher.FetchClosedIssues(ctx, repo.Name, since)
	if err != nil {
		return nil, err
	}

	pulls, err := d.fetcher.FetchClosedPulls(ctx, repo.Name, since)
	if err != nil {
		return nil, err
	}
	// A PR closed without merging, or merged by someone else, is excluded.
	merged := make([]domain.PullRequest, 0, len(pulls))
	for _, pr := range pulls {
		if pr.MergedAt != nil && pr.Author == d.user {
			merged = append(merged, pr)
		}
	}

	commits, err := d.fetcher.FetchCommits(ctx, repo.Name, since)
	if err != nil {
		return nil, err
	}
	for i := range commits {
		files, err := d.fetcher.FetchCommitFiles(ctx, repo.Name, commits[i].SHA)
		if err != nil {
			// Isolated at single-commit granularity: the commit keeps an
			// empty file list and the run continues.
			d.logger.Warn().Err(err).Str("repo", repo.Name).Str("sha", commits[i].SHA).Msg("could not resolve commit files")
			files = nil
		}
		commits[i].Files = files
	}

	return &domain.RepoReport{
		Repository: repo,
		Issues:     issues,
		Pulls:      merged,
		Commits:    commits,
	}, nil
}
