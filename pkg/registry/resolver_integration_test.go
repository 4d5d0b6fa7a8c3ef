//go:build integration

package registry

import (
	"context"
	"testing"
	"time"
)

func TestAll_Integration(t *testing.T) {
	resolver := NewResolver(Config{})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	tests := []struct {
		name    string
		spec    string
		wantErr bool
	}{
		{"npm", "npm:preact@10.0.0", false},
		{"jsr", "jsr:@std/path@1.0.0", false},
		{"deno.land/x", "https://deno.land/x/oak@v12.6.1/mod.ts", false},
		{"deno.land/std", "https://deno.land/std@0.224.0/path/mod.ts", false},
		{"github releases", "https://raw.githubusercontent.com/denoland/deno/v1.40.0/README.md", false},
		{"nonexistent npm", "npm:this-package-should-not-exist-12345@1.0.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := Lookup(tt.spec)
			if !ok {
				t.Fatalf("Lookup(%q) did not classify", tt.spec)
			}
			versions, err := resolver.All(ctx, u)
			if (err != nil) != tt.wantErr {
				t.Errorf("All(%q) error = %v, wantErr %v", tt.spec, err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(versions) == 0 {
				t.Error("version list should not be empty")
			}
		})
	}
}
