package registry

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// fetchNpm reads the package document from the npm registry and returns its
// version keys sorted newest-first. Serves the npm: scheme and every
// npm-backed CDN dialect (unpkg, esm.sh, jsdelivr/npm).
func (r *Resolver) fetchNpm(ctx context.Context, name string) ([]string, error) {
	var data struct {
		Versions map[string]struct{} `json:"versions"`
	}
	if err := r.client.GetJSON(ctx, r.urls.NPM+"/"+escapeNpmName(name), &data); err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "npm package %s", name)
	}
	if data.Versions == nil {
		return nil, apperrors.New(apperrors.ErrCodeParse, "versions field missing in npm response for %s", name)
	}

	versions := make([]string, 0, len(data.Versions))
	for v := range data.Versions {
		versions = append(versions, v)
	}
	sortDesc(versions)
	return versions, nil
}

// escapeNpmName percent-encodes the slash in scoped package names, as the
// npm registry API requires for path lookups.
func escapeNpmName(name string) string {
	if strings.HasPrefix(name, "@") {
		return strings.Replace(name, "/", url.QueryEscape("/"), 1)
	}
	return name
}
