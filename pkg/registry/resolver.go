package registry

import (
	"context"
	"time"

	"github.com/denoup/denoup/pkg/cache"
	apperrors "github.com/denoup/denoup/pkg/errors"
	"github.com/denoup/denoup/pkg/httputil"
)

// Endpoints holds the base URLs of the upstream registries. Zero-valued
// fields are replaced with the production endpoints; tests point individual
// fields at an httptest server.
type Endpoints struct {
	NPM      string // npm registry API
	JSR      string // jsr.io metadata
	DenoCDN  string // cdn.deno.land metadata
	GitHub   string // github.com (Atom release feeds)
	GitLab   string // gitlab.com (Atom tag feeds)
	Skypack  string // skypack.dev (HTML listing pages)
	NestLand string // nest.land API
}

func (e Endpoints) withDefaults() Endpoints {
	def := func(v *string, fallback string) {
		if *v == "" {
			*v = fallback
		}
	}
	def(&e.NPM, "https://registry.npmjs.org")
	def(&e.JSR, "https://jsr.io")
	def(&e.DenoCDN, "https://cdn.deno.land")
	def(&e.GitHub, "https://github.com")
	def(&e.GitLab, "https://gitlab.com")
	def(&e.Skypack, "https://www.skypack.dev")
	def(&e.NestLand, "https://nest.land")
	return e
}

// Config configures a Resolver.
type Config struct {
	Backend   cache.Cache   // HTTP response cache backend (nil disables caching)
	TTL       time.Duration // TTL for cached responses
	Refresh   bool          // bypass the response cache
	Versions  *VersionCache // in-process version memo (nil creates a private one)
	Endpoints Endpoints     // upstream base URLs (zero fields use production)
}

// Resolver fetches version lists for classified specifiers.
// All methods are safe for concurrent use.
type Resolver struct {
	client   *httputil.Client
	versions *VersionCache
	refresh  bool
	urls     Endpoints
}

// NewResolver creates a Resolver from the given configuration.
func NewResolver(cfg Config) *Resolver {
	versions := cfg.Versions
	if versions == nil {
		versions = NewVersionCache()
	}
	return &Resolver{
		client:   httputil.NewClient(cfg.Backend, cfg.TTL, nil),
		versions: versions,
		refresh:  cfg.Refresh,
		urls:     cfg.Endpoints.withDefaults(),
	}
}

// All returns every published version for the specifier's package, newest
// first. Results are memoized per package key: the first call fetches, every
// later call for the same key returns the memoized list without touching the
// network. An empty upstream list is reported as a version-not-found error.
func (r *Resolver) All(ctx context.Context, u URL) ([]string, error) {
	key := u.cacheKey()
	if vs, ok := r.versions.get(key); ok {
		return vs, nil
	}

	var vs []string
	err := r.client.Cached(ctx, key, r.refresh, &vs, func() error {
		fetched, err := r.fetch(ctx, u)
		if err != nil {
			return err
		}
		vs = fetched
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(vs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeVersionNotFound, "no versions found for %s", u.Name())
	}

	r.versions.put(key, vs)
	return vs, nil
}

func (r *Resolver) fetch(ctx context.Context, u URL) ([]string, error) {
	switch u.fam {
	case famNpm:
		return r.fetchNpm(ctx, u.Name())
	case famJSR:
		return r.fetchJSR(ctx, u.scope, u.name)
	case famDenoLand:
		return r.fetchDenoLand(ctx, u.name)
	case famGitHub:
		return r.fetchGitHubReleases(ctx, u.scope, u.name)
	case famGitLab:
		return r.fetchGitLabTags(ctx, u.scope, u.name)
	case famSkypack:
		return r.fetchSkypack(ctx, u.Name())
	case famNestLand:
		return r.fetchNestLand(ctx, u.name)
	}
	return nil, apperrors.New(apperrors.ErrCodeInternal, "no version source for dialect %s", u.kind)
}
