package registry

import (
	"context"
	"fmt"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// fetchJSR reads a jsr.io package meta document and returns its version
// keys sorted newest-first. Yanked versions are excluded.
func (r *Resolver) fetchJSR(ctx context.Context, scope, name string) ([]string, error) {
	var data struct {
		Versions map[string]struct {
			Yanked bool `json:"yanked"`
		} `json:"versions"`
	}
	endpoint := fmt.Sprintf("%s/@%s/%s/meta.json", r.urls.JSR, scope, name)
	if err := r.client.GetJSON(ctx, endpoint, &data); err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "jsr package @%s/%s", scope, name)
	}
	if data.Versions == nil {
		return nil, apperrors.New(apperrors.ErrCodeParse, "versions field missing in jsr response for @%s/%s", scope, name)
	}

	versions := make([]string, 0, len(data.Versions))
	for v, meta := range data.Versions {
		if !meta.Yanked {
			versions = append(versions, v)
		}
	}
	sortDesc(versions)
	return versions, nil
}
