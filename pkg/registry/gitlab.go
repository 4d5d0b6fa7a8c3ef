package registry

import (
	"context"
	"fmt"
	"regexp"
)

const (
	// gitlabPageSize is the fixed number of entries per tags feed page.
	gitlabPageSize = 20

	// gitlabMaxPages bounds the total number of pages requested.
	gitlabMaxPages = 3
)

// gitlabEntryPattern extracts tag names from entry ids of the form
// "https://gitlab.com/<owner>/<repo>/-/tags/<tag>".
var gitlabEntryPattern = regexp.MustCompile(`<id>[^<]*/tags/([^<]+)</id>`)

// fetchGitLabTags walks a repository's tags Atom feed, newest first, by
// incrementing the page number. The walk stops on an empty or short page,
// when a page repeats the last known tag, or at the page ceiling.
func (r *Resolver) fetchGitLabTags(ctx context.Context, owner, repo string) ([]string, error) {
	base := fmt.Sprintf("%s/%s/%s/-/tags?format=atom", r.urls.GitLab, owner, repo)

	var versions []string
	for page := 1; page <= gitlabMaxPages; page++ {
		entries, err := r.fetchFeedEntries(ctx, fmt.Sprintf("%s&page=%d", base, page), gitlabEntryPattern)
		if err != nil {
			return nil, err
		}
		if len(entries) == 0 {
			break
		}
		if len(versions) > 0 && entries[len(entries)-1] == versions[len(versions)-1] {
			break
		}
		versions = append(versions, entries...)
		if len(entries) < gitlabPageSize {
			break
		}
	}
	return versions, nil
}
