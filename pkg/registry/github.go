package registry

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
)

const (
	// githubPageSize is the fixed number of entries per releases.atom page.
	githubPageSize = 10

	// githubMaxExtraFetches bounds pagination after the first page. A
	// repository with more releases than the ceiling allows is silently
	// truncated.
	githubMaxExtraFetches = 5
)

// githubEntryPattern extracts release tags from entry ids of the form
// "tag:github.com,2008:Repository/<id>/<tag>". The feed-level id does not
// match.
var githubEntryPattern = regexp.MustCompile(`<id>[^<]*Repository/\d+/([^<]+)</id>`)

// fetchGitHubReleases walks a repository's releases Atom feed, newest first.
// Pagination uses the "after" cursor: each follow-up request resumes after
// the last tag seen. The walk stops on a short page, when a page ends with
// an already-known tag (the feed stopped making progress), or at the fetch
// ceiling.
func (r *Resolver) fetchGitHubReleases(ctx context.Context, owner, repo string) ([]string, error) {
	feed := fmt.Sprintf("%s/%s/%s/releases.atom", r.urls.GitHub, owner, repo)

	versions, err := r.fetchFeedEntries(ctx, feed, githubEntryPattern)
	if err != nil {
		return nil, err
	}
	if len(versions) < githubPageSize {
		return versions, nil
	}

	for i := 0; i < githubMaxExtraFetches; i++ {
		last := versions[len(versions)-1]
		page, err := r.fetchFeedEntries(ctx, feed+"?after="+url.QueryEscape(last), githubEntryPattern)
		if err != nil {
			return nil, err
		}
		if len(page) == 0 || page[len(page)-1] == last {
			break
		}
		versions = append(versions, page...)
		if len(page) < githubPageSize {
			break
		}
	}
	return versions, nil
}

// fetchFeedEntries retrieves an Atom feed page and extracts version tokens
// in feed order.
func (r *Resolver) fetchFeedEntries(ctx context.Context, endpoint string, pattern *regexp.Regexp) ([]string, error) {
	body, err := r.client.GetText(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, m := range pattern.FindAllStringSubmatch(body, -1) {
		versions = append(versions, m[1])
	}
	return versions, nil
}
