// Package upgrade rewrites a dependency map to the newest published
// versions. Version lookups fan out concurrently; any lookup error aborts
// the whole batch so the map is never half-upgraded against stale data.
package upgrade

import (
	"context"
	"regexp"
	"slices"
	"sync"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/denoup/denoup/pkg/errors"
	"github.com/denoup/denoup/pkg/registry"
)

// DefaultInclude matches every dependency.
const DefaultInclude = `.+`

// Logger receives progress and skip messages. The engine never formats
// output itself.
type Logger func(format string, args ...any)

// Options configures an Engine.
type Options struct {
	Include    string            // regexp over aliases, selects which entries to upgrade
	Minimums   map[string]string // alias to version floor, applied after the upgrade pass
	Force      bool              // rewrite even when the pinned version is not semver
	Prerelease bool              // allow prerelease versions as upgrade targets
	Logger     Logger
}

// Engine upgrades dependency maps using a shared resolver.
type Engine struct {
	resolver *registry.Resolver
	include  *regexp.Regexp
	opts     Options
}

// New creates an Engine. An empty include pattern selects everything.
func New(resolver *registry.Resolver, opts Options) (*Engine, error) {
	if opts.Include == "" {
		opts.Include = DefaultInclude
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	include, err := regexp.Compile(opts.Include)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "invalid include pattern %q", opts.Include)
	}
	return &Engine{resolver: resolver, include: include, opts: opts}, nil
}

// Run upgrades every selected entry of deps in place and reports whether
// anything changed. Entries whose specifier no dialect recognizes are
// skipped; a failed version fetch aborts the batch and leaves deps in an
// unspecified partially-updated state.
func (e *Engine) Run(ctx context.Context, deps map[string]string) (bool, error) {
	aliases := make([]string, 0, len(deps))
	for alias := range deps {
		if e.include.MatchString(alias) {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)

	var (
		mu      sync.Mutex
		changed bool
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, alias := range aliases {
		alias := alias
		spec := deps[alias]
		g.Go(func() error {
			u, ok := registry.Lookup(spec)
			if !ok {
				e.opts.Logger("skipping %s: unrecognized specifier %s", alias, spec)
				return nil
			}

			versions, err := e.resolver.All(ctx, u)
			if err != nil {
				e.opts.Logger("fetch failed for %s: %v", u.Name(), err)
				return err
			}
			latest, ok := registry.Latest(versions, e.opts.Prerelease)
			if !ok {
				e.opts.Logger("skipping %s: no releasable version of %s", alias, u.Name())
				return nil
			}

			current, err := u.Version()
			if err != nil {
				e.opts.Logger("skipping %s: no pinned version in %s", alias, spec)
				return nil
			}
			if !e.opts.Force {
				if _, err := semver.NewVersion(current); err != nil {
					e.opts.Logger("skipping %s: cannot compare %q, use --force to rewrite anyway", alias, current)
					return nil
				}
			}
			if current == latest {
				return nil
			}

			mu.Lock()
			deps[alias] = u.At(latest).String()
			changed = true
			mu.Unlock()
			e.opts.Logger("%s %s -> %s", alias, current, latest)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false, err
	}

	if e.applyMinimums(deps) {
		changed = true
	}
	if !changed {
		e.opts.Logger("already up to date")
	}
	return changed, nil
}

// applyMinimums raises entries that ended up below their configured floor.
// Runs sequentially after the concurrent pass so a forced minimum always
// wins over a fetched version.
func (e *Engine) applyMinimums(deps map[string]string) bool {
	aliases := make([]string, 0, len(e.opts.Minimums))
	for alias := range e.opts.Minimums {
		if _, ok := deps[alias]; ok {
			aliases = append(aliases, alias)
		}
	}
	slices.Sort(aliases)

	changed := false
	for _, alias := range aliases {
		floor := e.opts.Minimums[alias]
		mv, err := semver.NewVersion(floor)
		if err != nil {
			e.opts.Logger("skipping minimum for %s: invalid version %q", alias, floor)
			continue
		}
		u, ok := registry.Lookup(deps[alias])
		if !ok {
			continue
		}
		current, err := u.Version()
		if err != nil {
			continue
		}
		cv, err := semver.NewVersion(current)
		if err != nil {
			e.opts.Logger("skipping minimum for %s: cannot compare %q", alias, current)
			continue
		}
		if cv.LessThan(mv) {
			deps[alias] = u.At(floor).String()
			changed = true
			e.opts.Logger("%s %s -> %s (forced minimum)", alias, current, floor)
		}
	}
	return changed
}
