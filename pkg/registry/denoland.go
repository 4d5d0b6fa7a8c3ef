package registry

import (
	"context"
	"fmt"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// fetchDenoLand reads the deno.land CDN version manifest for a module.
// Serves both deno.land/x and deno.land/std (module name "std"). The
// manifest lists versions oldest-first, so the result is reversed before
// caching.
func (r *Resolver) fetchDenoLand(ctx context.Context, module string) ([]string, error) {
	var data struct {
		Latest   string   `json:"latest"`
		Versions []string `json:"versions"`
	}
	endpoint := fmt.Sprintf("%s/%s/meta/versions.json", r.urls.DenoCDN, module)
	if err := r.client.GetJSON(ctx, endpoint, &data); err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "deno.land module %s", module)
	}
	if data.Versions == nil {
		return nil, apperrors.New(apperrors.ErrCodeParse, "versions field missing in deno.land response for %s", module)
	}
	return reverse(data.Versions), nil
}
