package registry

import (
	"context"
	"strings"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// fetchNestLand reads a nest.land package upload log. Uploads are identified
// as "<name>@<version>" strings, oldest-first; the version half is extracted
// and the list reversed.
func (r *Resolver) fetchNestLand(ctx context.Context, name string) ([]string, error) {
	var data struct {
		PackageUploadNames []string `json:"packageUploadNames"`
	}
	if err := r.client.GetJSON(ctx, r.urls.NestLand+"/api/package/"+name, &data); err != nil {
		return nil, apperrors.Wrap(apperrors.GetCode(err), err, "nest.land package %s", name)
	}
	if len(data.PackageUploadNames) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeParse, "no uploads in nest.land response for %s", name)
	}

	versions := make([]string, 0, len(data.PackageUploadNames))
	for _, upload := range data.PackageUploadNames {
		if i := strings.LastIndex(upload, "@"); i >= 0 {
			versions = append(versions, upload[i+1:])
		}
	}
	return reverse(versions), nil
}
