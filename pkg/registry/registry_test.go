package registry

import (
	"testing"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		spec    string
		kind    Kind
		name    string
		version string
	}{
		{"jsr:@std/path@1.0.8/posix", KindJSR, "@std/path", "1.0.8"},
		{"jsr:@scope/pkg@^1.0.0", KindJSR, "@scope/pkg", "1.0.0"},
		{"npm:preact@10.5.0", KindNpm, "preact", "10.5.0"},
		{"npm:@tanstack/query-core@~5.0.0", KindNpm, "@tanstack/query-core", "5.0.0"},
		{"https://deno.land/std@0.224.0/path/mod.ts", KindDenoStd, "std", "0.224.0"},
		{"https://deno.land/x/oak@v12.6.1/mod.ts", KindDenoLand, "oak", "v12.6.1"},
		{"https://unpkg.com/@scope/pkg@1.0.0/mod.ts", KindUnpkgScoped, "@scope/pkg", "1.0.0"},
		{"https://unpkg.com/preact@10.5.0/dist/preact.js", KindUnpkg, "preact", "10.5.0"},
		{"https://esm.sh/@scope/pkg@1.0.0", KindEsmScoped, "@scope/pkg", "1.0.0"},
		{"https://esm.sh/react@18.2.0", KindEsm, "react", "18.2.0"},
		{"https://cdn.jsdelivr.net/gh/denoland/deno@v1.40.0/mod.ts", KindJsDelivrGH, "denoland/deno", "v1.40.0"},
		{"https://cdn.jsdelivr.net/npm/lodash@4.17.21/lodash.min.js", KindJsDelivrNpm, "lodash", "4.17.21"},
		{"https://denopkg.com/keroxp/servest@v1.3.1/mod.ts", KindDenopkg, "keroxp/servest", "v1.3.1"},
		{"https://raw.githubusercontent.com/satyarohith/sift/v3.0.3/mod.ts", KindGitHubRaw, "satyarohith/sift", "v3.0.3"},
		{"https://gitlab.com/group/project/-/raw/v1.2.0/mod.ts", KindGitLabRaw, "group/project", "v1.2.0"},
		{"https://cdn.skypack.dev/canvas-confetti@1.4.0", KindSkypack, "canvas-confetti", "1.4.0"},
		{"https://x.nest.land/opine@1.9.1/mod.ts", KindNestLand, "opine", "1.9.1"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			u, ok := Lookup(tt.spec)
			if !ok {
				t.Fatalf("Lookup(%q) did not match", tt.spec)
			}
			if u.Kind() != tt.kind {
				t.Errorf("Kind = %v, want %v", u.Kind(), tt.kind)
			}
			if u.Name() != tt.name {
				t.Errorf("Name = %q, want %q", u.Name(), tt.name)
			}
			v, err := u.Version()
			if err != nil {
				t.Fatalf("Version() error: %v", err)
			}
			if v != tt.version {
				t.Errorf("Version = %q, want %q", v, tt.version)
			}
		})
	}
}

func TestLookup_NoMatch(t *testing.T) {
	specs := []string{
		"",
		"./relative/mod.ts",
		"https://example.com/some/file.ts",
		"node:fs",
	}
	for _, spec := range specs {
		if _, ok := Lookup(spec); ok {
			t.Errorf("Lookup(%q) matched, want no match", spec)
		}
	}
}

// An unscoped CDN pattern also matches scoped specifiers; list order must
// hand them to the scoped variant.
func TestLookup_ScopedBeforeUnscoped(t *testing.T) {
	tests := []struct {
		spec string
		kind Kind
	}{
		{"https://unpkg.com/@scope/pkg@1.0.0/mod.ts", KindUnpkgScoped},
		{"https://esm.sh/@scope/pkg@1.0.0/mod.ts", KindEsmScoped},
	}
	for _, tt := range tests {
		u, ok := Lookup(tt.spec)
		if !ok {
			t.Fatalf("Lookup(%q) did not match", tt.spec)
		}
		if u.Kind() != tt.kind {
			t.Errorf("Lookup(%q).Kind = %v, want scoped variant %v", tt.spec, u.Kind(), tt.kind)
		}
	}
}

func TestString_RoundTrip(t *testing.T) {
	specs := []string{
		"jsr:@std/path@1.0.8/posix",
		"jsr:@scope/pkg@^1.0.0",
		"npm:preact@10.5.0",
		"npm:@tanstack/query-core@~5.0.0/build/modern",
		"https://deno.land/std@0.224.0/path/mod.ts",
		"https://deno.land/x/oak@v12.6.1/mod.ts",
		"https://unpkg.com/@scope/pkg@1.0.0/mod.ts",
		"https://unpkg.com/preact@10.5.0/dist/preact.js",
		"https://esm.sh/react@18.2.0",
		"https://cdn.jsdelivr.net/gh/denoland/deno@v1.40.0/mod.ts",
		"https://cdn.jsdelivr.net/npm/@scope/pkg@1.0.0/mod.js",
		"https://denopkg.com/keroxp/servest@v1.3.1/mod.ts",
		"https://raw.githubusercontent.com/satyarohith/sift/v3.0.3/mod.ts",
		"https://gitlab.com/group/project/-/raw/v1.2.0/mod.ts",
		"https://cdn.skypack.dev/@scope/pkg@1.4.0",
		"https://x.nest.land/opine@1.9.1/mod.ts",
	}
	for _, spec := range specs {
		u, ok := Lookup(spec)
		if !ok {
			t.Errorf("Lookup(%q) did not match", spec)
			continue
		}
		if got := u.String(); got != spec {
			t.Errorf("String() = %q, want %q", got, spec)
		}
	}
}

func TestAt_RoundTrip(t *testing.T) {
	specs := []string{
		"jsr:@std/path@1.0.8/posix",
		"npm:preact@10.5.0",
		"https://deno.land/std@0.224.0/path/mod.ts",
		"https://deno.land/x/oak@v12.6.1/mod.ts",
		"https://unpkg.com/@scope/pkg@1.0.0/mod.ts",
		"https://unpkg.com/preact@10.5.0/dist/preact.js",
		"https://esm.sh/react@18.2.0",
		"https://cdn.jsdelivr.net/gh/denoland/deno@v1.40.0/mod.ts",
		"https://denopkg.com/keroxp/servest@v1.3.1/mod.ts",
		"https://raw.githubusercontent.com/satyarohith/sift/v3.0.3/mod.ts",
		"https://gitlab.com/group/project/-/raw/v1.2.0/mod.ts",
		"https://cdn.skypack.dev/canvas-confetti@1.4.0",
		"https://x.nest.land/opine@1.9.1/mod.ts",
	}
	versions := []string{"2.0.0", "v2.0.0", "0.0.1-alpha.1"}

	for _, spec := range specs {
		u, ok := Lookup(spec)
		if !ok {
			t.Fatalf("Lookup(%q) did not match", spec)
		}
		for _, v := range versions {
			got, err := u.At(v).Version()
			if err != nil {
				t.Fatalf("At(%q).Version() error for %q: %v", v, spec, err)
			}
			if got != v {
				t.Errorf("At(%q).Version() = %q for %q", v, got, spec)
			}
		}
	}
}

func TestAt_DoesNotMutateReceiver(t *testing.T) {
	u, ok := Lookup("jsr:@std/path@1.0.8/posix")
	if !ok {
		t.Fatal("Lookup did not match")
	}

	next := u.At("2.0.0")

	v, err := u.Version()
	if err != nil {
		t.Fatalf("Version() error: %v", err)
	}
	if v != "1.0.8" {
		t.Errorf("receiver version changed to %q after At", v)
	}
	if nv, _ := next.Version(); nv != "2.0.0" {
		t.Errorf("At result version = %q, want 2.0.0", nv)
	}
}

func TestAt_PreservesPrefixAndSubpath(t *testing.T) {
	tests := []struct {
		spec    string
		version string
		want    string
	}{
		{"jsr:@scope/pkg@^1.0.0", "1.2.0", "jsr:@scope/pkg@^1.2.0"},
		{"npm:@tanstack/query-core@~5.0.0/build", "5.1.0", "npm:@tanstack/query-core@~5.1.0/build"},
		{"https://deno.land/std@0.100.0/path/mod.ts", "0.224.0", "https://deno.land/std@0.224.0/path/mod.ts"},
		{"https://raw.githubusercontent.com/o/r/v1.0.0/mod.ts", "v2.0.0", "https://raw.githubusercontent.com/o/r/v2.0.0/mod.ts"},
	}
	for _, tt := range tests {
		u, ok := Lookup(tt.spec)
		if !ok {
			t.Fatalf("Lookup(%q) did not match", tt.spec)
		}
		if got := u.At(tt.version).String(); got != tt.want {
			t.Errorf("At(%q) on %q = %q, want %q", tt.version, tt.spec, got, tt.want)
		}
	}
}

func TestVersion_Missing(t *testing.T) {
	specs := []string{
		"https://deno.land/std/path/mod.ts",
		"https://deno.land/x/oak/mod.ts",
		"jsr:@std/path",
		"npm:preact",
		"https://denopkg.com/keroxp/servest/mod.ts",
	}
	for _, spec := range specs {
		u, ok := Lookup(spec)
		if !ok {
			t.Fatalf("Lookup(%q) did not match", spec)
		}
		_, err := u.Version()
		if !apperrors.Is(err, apperrors.ErrCodeVersionNotFound) {
			t.Errorf("Version() for %q: expected VERSION_NOT_FOUND, got %v", spec, err)
		}
	}
}

func TestCacheKey_SharedAcrossDialects(t *testing.T) {
	a, _ := Lookup("https://unpkg.com/preact@10.5.0/dist/preact.js")
	b, _ := Lookup("https://esm.sh/preact@10.4.0")
	if a.cacheKey() != b.cacheKey() {
		t.Errorf("npm-backed dialects should share a cache key: %q vs %q", a.cacheKey(), b.cacheKey())
	}

	c, _ := Lookup("https://denopkg.com/keroxp/servest@v1.3.1/mod.ts")
	d, _ := Lookup("https://raw.githubusercontent.com/keroxp/servest/v1.2.0/mod.ts")
	if c.cacheKey() != d.cacheKey() {
		t.Errorf("github-backed dialects should share a cache key: %q vs %q", c.cacheKey(), d.cacheKey())
	}
}
