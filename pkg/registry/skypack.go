package registry

import (
	"context"
	"regexp"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// skypackOptionPattern extracts version tokens from the <option> elements of
// the package page's version selector.
var skypackOptionPattern = regexp.MustCompile(`<option[^>]*value="([^"]+)"`)

// fetchSkypack scrapes the Skypack package listing page for version options.
// The page lists versions oldest-first, so the result is reversed.
func (r *Resolver) fetchSkypack(ctx context.Context, name string) ([]string, error) {
	body, err := r.client.GetText(ctx, r.urls.Skypack+"/view/"+name)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "skypack package %s", name)
	}

	var versions []string
	for _, m := range skypackOptionPattern.FindAllStringSubmatch(body, -1) {
		versions = append(versions, m[1])
	}
	if len(versions) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeParse, "no version options in skypack listing for %s", name)
	}
	return reverse(versions), nil
}
