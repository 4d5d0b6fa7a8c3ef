package registry

import (
	"regexp"
	"strings"

	apperrors "github.com/denoup/denoup/pkg/errors"
)

// Kind identifies a supported registry URL dialect.
type Kind int

const (
	KindJSR Kind = iota
	KindNpm
	KindDenoStd
	KindDenoLand
	KindUnpkgScoped
	KindUnpkg
	KindEsmScoped
	KindEsm
	KindJsDelivrGH
	KindJsDelivrNpm
	KindDenopkg
	KindGitHubRaw
	KindGitLabRaw
	KindSkypack
	KindNestLand
)

// String returns the human-readable dialect name.
func (k Kind) String() string {
	switch k {
	case KindJSR:
		return "jsr"
	case KindNpm:
		return "npm"
	case KindDenoStd:
		return "deno.land/std"
	case KindDenoLand:
		return "deno.land/x"
	case KindUnpkgScoped, KindUnpkg:
		return "unpkg"
	case KindEsmScoped, KindEsm:
		return "esm.sh"
	case KindJsDelivrGH, KindJsDelivrNpm:
		return "jsdelivr"
	case KindDenopkg:
		return "denopkg"
	case KindGitHubRaw:
		return "github"
	case KindGitLabRaw:
		return "gitlab"
	case KindSkypack:
		return "skypack"
	case KindNestLand:
		return "nest.land"
	}
	return "unknown"
}

// family selects the version-source algorithm shared by several dialects.
type family int

const (
	famNpm family = iota
	famJSR
	famDenoLand
	famGitHub
	famGitLab
	famSkypack
	famNestLand
)

// URL is a classified dependency specifier. The zero value is invalid;
// construct instances through [Lookup].
//
// URL values are immutable: At returns a new instance and never mutates the
// receiver.
type URL struct {
	kind    Kind
	fam     family
	raw     string
	scope   string // npm/jsr scope without "@", or forge owner
	name    string // package or repository name
	prefix  string // semver range prefix ("^" or "~"), scheme dialects only
	version string // pinned version, without prefix; may be empty
	subpath string // trailing path including leading "/"
}

// variant binds a dialect's classification pattern to its field extraction.
// The table below is walked in order by Lookup; the order is load-bearing.
type variant struct {
	kind    Kind
	fam     family
	pattern *regexp.Regexp
	parse   func(m []string, raw string) URL
}

var variants = []variant{
	{
		kind:    KindJSR,
		fam:     famJSR,
		pattern: regexp.MustCompile(`^jsr:@([^/@]+)/([^/@]+)(?:@([^/]+))?(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return scheme(KindJSR, famJSR, raw, m[1], m[2], m[3], m[4])
		},
	},
	{
		kind:    KindNpm,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^npm:(?:@([^/@]+)/)?([^/@]+)(?:@([^/]+))?(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return scheme(KindNpm, famNpm, raw, m[1], m[2], m[3], m[4])
		},
	},
	{
		kind:    KindDenoStd,
		fam:     famDenoLand,
		pattern: regexp.MustCompile(`^https://deno\.land/std(?:@([^/]+))?(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindDenoStd, fam: famDenoLand, raw: raw, name: "std", version: m[1], subpath: m[2]}
		},
	},
	{
		kind:    KindDenoLand,
		fam:     famDenoLand,
		pattern: regexp.MustCompile(`^https://deno\.land/x/([^/@]+)(?:@([^/]+))?(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindDenoLand, fam: famDenoLand, raw: raw, name: m[1], version: m[2], subpath: m[3]}
		},
	},
	// The scoped unpkg and esm.sh variants must stay ahead of their unscoped
	// counterparts: the unscoped patterns also match scoped specifiers.
	{
		kind:    KindUnpkgScoped,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^https://unpkg\.com/@([^/@]+)/([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindUnpkgScoped, fam: famNpm, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindUnpkg,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^https://unpkg\.com/(.+?)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindUnpkg, fam: famNpm, raw: raw, name: m[1], version: m[2], subpath: m[3]}
		},
	},
	{
		kind:    KindEsmScoped,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^https://esm\.sh/@([^/@]+)/([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindEsmScoped, fam: famNpm, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindEsm,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^https://esm\.sh/(.+?)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindEsm, fam: famNpm, raw: raw, name: m[1], version: m[2], subpath: m[3]}
		},
	},
	{
		kind:    KindJsDelivrGH,
		fam:     famGitHub,
		pattern: regexp.MustCompile(`^https://cdn\.jsdelivr\.net/gh/([^/]+)/([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindJsDelivrGH, fam: famGitHub, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindJsDelivrNpm,
		fam:     famNpm,
		pattern: regexp.MustCompile(`^https://cdn\.jsdelivr\.net/npm/(?:@([^/@]+)/)?([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindJsDelivrNpm, fam: famNpm, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindDenopkg,
		fam:     famGitHub,
		pattern: regexp.MustCompile(`^https://denopkg\.com/([^/]+)/([^/@]+)(?:@([^/]+))?(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindDenopkg, fam: famGitHub, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindGitHubRaw,
		fam:     famGitHub,
		pattern: regexp.MustCompile(`^https://raw\.githubusercontent\.com/([^/]+)/([^/]+)/([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindGitHubRaw, fam: famGitHub, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindGitLabRaw,
		fam:     famGitLab,
		pattern: regexp.MustCompile(`^https://gitlab\.com/([^/]+)/([^/]+)/-/raw/([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindGitLabRaw, fam: famGitLab, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindSkypack,
		fam:     famSkypack,
		pattern: regexp.MustCompile(`^https://cdn\.skypack\.dev/(?:@([^/@]+)/)?([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindSkypack, fam: famSkypack, raw: raw, scope: m[1], name: m[2], version: m[3], subpath: m[4]}
		},
	},
	{
		kind:    KindNestLand,
		fam:     famNestLand,
		pattern: regexp.MustCompile(`^https://x\.nest\.land/([^/@]+)@([^/]+)(/.*)?$`),
		parse: func(m []string, raw string) URL {
			return URL{kind: KindNestLand, fam: famNestLand, raw: raw, name: m[1], version: m[2], subpath: m[3]}
		},
	},
}

// scheme builds a URL for the jsr:/npm: scheme dialects, which may carry a
// semver range prefix ("^" or "~") in front of the pinned version.
func scheme(kind Kind, fam family, raw, scope, name, version, subpath string) URL {
	prefix, bare := splitPrefix(version)
	return URL{kind: kind, fam: fam, raw: raw, scope: scope, name: name, prefix: prefix, version: bare, subpath: subpath}
}

func splitPrefix(v string) (prefix, bare string) {
	if strings.HasPrefix(v, "^") || strings.HasPrefix(v, "~") {
		return v[:1], v[1:]
	}
	return "", v
}

// Lookup classifies a specifier against the variant list in priority order.
// It returns ok=false when no dialect matches; an unrecognized specifier is
// not an error.
func Lookup(spec string) (URL, bool) {
	for _, v := range variants {
		if m := v.pattern.FindStringSubmatch(spec); m != nil {
			return v.parse(m, spec), true
		}
	}
	return URL{}, false
}

// Kind returns the dialect this specifier was classified as.
func (u URL) Kind() Kind { return u.kind }

// Raw returns the specifier string the URL was parsed from. It is not
// updated by At; use String for the current serialized form.
func (u URL) Raw() string { return u.raw }

// Name returns the display name of the package: "@scope/name" for scoped
// packages, "owner/repo" for forge-hosted modules, the bare name otherwise.
func (u URL) Name() string {
	switch {
	case u.scope == "":
		return u.name
	case u.fam == famGitHub || u.fam == famGitLab:
		return u.scope + "/" + u.name
	default:
		return "@" + u.scope + "/" + u.name
	}
}

// Version returns the pinned version, without any range prefix.
// It fails when the specifier carries no version segment.
func (u URL) Version() (string, error) {
	if u.version == "" {
		return "", apperrors.New(apperrors.ErrCodeVersionNotFound, "no version in specifier %q", u.raw)
	}
	return u.version, nil
}

// At returns a copy of the URL pinned to the given version. The range
// prefix and sub-path are preserved; the receiver is never modified.
func (u URL) At(version string) URL {
	next := u
	next.version = version
	next.raw = next.String()
	return next
}

// String serializes the URL back to specifier form.
func (u URL) String() string {
	var b strings.Builder
	switch u.kind {
	case KindJSR:
		b.WriteString("jsr:@" + u.scope + "/" + u.name)
		u.writeVersionSegment(&b)
	case KindNpm:
		b.WriteString("npm:")
		if u.scope != "" {
			b.WriteString("@" + u.scope + "/")
		}
		b.WriteString(u.name)
		u.writeVersionSegment(&b)
	case KindDenoStd:
		b.WriteString("https://deno.land/std")
		u.writeVersionSegment(&b)
	case KindDenoLand:
		b.WriteString("https://deno.land/x/" + u.name)
		u.writeVersionSegment(&b)
	case KindUnpkgScoped:
		b.WriteString("https://unpkg.com/@" + u.scope + "/" + u.name + "@" + u.version)
	case KindUnpkg:
		b.WriteString("https://unpkg.com/" + u.name + "@" + u.version)
	case KindEsmScoped:
		b.WriteString("https://esm.sh/@" + u.scope + "/" + u.name + "@" + u.version)
	case KindEsm:
		b.WriteString("https://esm.sh/" + u.name + "@" + u.version)
	case KindJsDelivrGH:
		b.WriteString("https://cdn.jsdelivr.net/gh/" + u.scope + "/" + u.name + "@" + u.version)
	case KindJsDelivrNpm:
		b.WriteString("https://cdn.jsdelivr.net/npm/")
		if u.scope != "" {
			b.WriteString("@" + u.scope + "/")
		}
		b.WriteString(u.name + "@" + u.version)
	case KindDenopkg:
		b.WriteString("https://denopkg.com/" + u.scope + "/" + u.name)
		u.writeVersionSegment(&b)
	case KindGitHubRaw:
		b.WriteString("https://raw.githubusercontent.com/" + u.scope + "/" + u.name + "/" + u.version)
	case KindGitLabRaw:
		b.WriteString("https://gitlab.com/" + u.scope + "/" + u.name + "/-/raw/" + u.version)
	case KindSkypack:
		b.WriteString("https://cdn.skypack.dev/")
		if u.scope != "" {
			b.WriteString("@" + u.scope + "/")
		}
		b.WriteString(u.name + "@" + u.version)
	case KindNestLand:
		b.WriteString("https://x.nest.land/" + u.name + "@" + u.version)
	}
	b.WriteString(u.subpath)
	return b.String()
}

// writeVersionSegment appends "@<prefix><version>" for dialects where the
// version segment is optional and may carry a range prefix.
func (u URL) writeVersionSegment(b *strings.Builder) {
	if u.version != "" {
		b.WriteString("@" + u.prefix + u.version)
	}
}

// cacheKey namespaces the package key by registry family, so dialects that
// share a version source also share cached results.
func (u URL) cacheKey() string {
	switch u.fam {
	case famNpm:
		return "npm:" + u.Name()
	case famJSR:
		return "jsr:" + u.Name()
	case famDenoLand:
		return "denoland:" + u.name
	case famGitHub:
		return "github:" + u.scope + "/" + u.name
	case famGitLab:
		return "gitlab:" + u.scope + "/" + u.name
	case famSkypack:
		return "skypack:" + u.Name()
	case famNestLand:
		return "nestland:" + u.name
	}
	return "unknown:" + u.raw
}
