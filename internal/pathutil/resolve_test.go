package pathutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir failed: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty is working directory", "", cwd},
		{"relative joins working directory", "library", filepath.Join(cwd, "library")},
		{"tilde expands to home", "~/library", filepath.Join(home, "library")},
		{"absolute passes through", "/work/library", "/work/library"},
		{"dot segments clean", "/work/a/../library", "/work/library"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.in)
			if err != nil {
				t.Fatalf("Resolve(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestResolve_ResultIsAbsolute(t *testing.T) {
	got, err := Resolve("~")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !filepath.IsAbs(got) || strings.HasPrefix(got, "~") {
		t.Errorf("Expected expanded absolute path, got %q", got)
	}
}
