package registry

import (
	"reflect"
	"testing"
)

func TestSortDesc(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "plain semver",
			in:   []string{"1.0.0", "2.1.0", "0.9.0", "2.0.0"},
			want: []string{"2.1.0", "2.0.0", "1.0.0", "0.9.0"},
		},
		{
			name: "v prefixes",
			in:   []string{"v1.2.0", "v1.10.0", "v1.3.0"},
			want: []string{"v1.10.0", "v1.3.0", "v1.2.0"},
		},
		{
			name: "prereleases sort below release",
			in:   []string{"1.0.0-rc.1", "1.0.0", "1.0.0-beta"},
			want: []string{"1.0.0", "1.0.0-rc.1", "1.0.0-beta"},
		},
		{
			name: "unparseable entries after semver entries",
			in:   []string{"nightly", "1.0.0", "latest", "2.0.0"},
			want: []string{"2.0.0", "1.0.0", "nightly", "latest"},
		},
		{
			name: "empty",
			in:   []string{},
			want: []string{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.in...)
			sortDesc(got)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("sortDesc(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLatest(t *testing.T) {
	tests := []struct {
		name       string
		versions   []string
		prerelease bool
		want       string
		wantOK     bool
	}{
		{
			name:     "picks newest",
			versions: []string{"2.1.0", "2.0.0", "1.0.0"},
			want:     "2.1.0",
			wantOK:   true,
		},
		{
			name:     "skips prerelease by default",
			versions: []string{"2.0.0-rc.1", "1.9.0", "1.8.0"},
			want:     "1.9.0",
			wantOK:   true,
		},
		{
			name:       "prerelease allowed",
			versions:   []string{"2.0.0-rc.1", "1.9.0"},
			prerelease: true,
			want:       "2.0.0-rc.1",
			wantOK:     true,
		},
		{
			name:     "non-semver tags always eligible",
			versions: []string{"nightly", "latest"},
			want:     "nightly",
			wantOK:   true,
		},
		{
			name:     "all prerelease",
			versions: []string{"1.0.0-alpha", "1.0.0-beta"},
			wantOK:   false,
		},
		{
			name:     "empty",
			versions: nil,
			wantOK:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Latest(tt.versions, tt.prerelease)
			if ok != tt.wantOK {
				t.Fatalf("Latest(%v, %v) ok = %v, want %v", tt.versions, tt.prerelease, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Latest(%v, %v) = %q, want %q", tt.versions, tt.prerelease, got, tt.want)
			}
		})
	}
}
