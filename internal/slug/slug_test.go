package slug_test

import (
	"context"
	"strings"
	"testing"

	"github.com/orgstack/orgstack/internal/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Acme", "acme"},
		{"spaces", "Acme School of Music", "acme-school-of-music"},
		{"punctuation", "Bob's Org!", "bob-s-org"},
		{"trailing", "Acme  ", "acme"},
		{"digits", "Org 42", "org-42"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := slug.Make(tc.in); got != tc.want {
				t.Fatalf("Make(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestUniqueReturnsBaseWhenFree(t *testing.T) {
	t.Parallel()

	got, err := slug.Unique(context.Background(), "Acme", func(ctx context.Context, s string) (bool, error) {
		return false, nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "acme" {
		t.Fatalf("unexpected slug: %s", got)
	}
}

func TestUniqueSuffixesOnCollision(t *testing.T) {
	t.Parallel()

	calls := 0
	got, err := slug.Unique(context.Background(), "Acme", func(ctx context.Context, s string) (bool, error) {
		calls++
		return calls == 1, nil
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(got, "acme-") {
		t.Fatalf("expected suffixed slug, got %s", got)
	}
	if len(got) != len("acme-")+9 {
		t.Fatalf("expected 9 char suffix, got %s", got)
	}
}
