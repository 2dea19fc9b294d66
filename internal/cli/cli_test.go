package cli

import (
	"path/filepath"
	"testing"

	"github.com/matzehuels/dashgrid/pkg/grid"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []grid.Position
		wantErr bool
	}{
		{
			name:  "empty string is an empty path",
			input: "",
			want:  nil,
		},
		{
			name:  "single cell",
			input: "0,0",
			want:  []grid.Position{{X: 0, Y: 0}},
		},
		{
			name:  "multiple cells",
			input: "0,0;1,0;1,1",
			want:  []grid.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		},
		{
			name:  "whitespace tolerated",
			input: " 0, 0 ; 2 ,1",
			want:  []grid.Position{{X: 0, Y: 0}, {X: 2, Y: 1}},
		},
		{
			name:    "missing coordinate",
			input:   "0,0;1",
			wantErr: true,
		},
		{
			name:    "non-numeric coordinate",
			input:   "a,b",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePath(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parsePath() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("parsePath() error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("parsePath() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parsePath()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	got := parseFormats("svg,json")
	if len(got) != 2 || got[0] != "svg" || got[1] != "json" {
		t.Errorf("parseFormats(svg,json) = %v", got)
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		want   string
	}{
		{
			name:  "empty output strips the input extension",
			input: filepath.Join("boards", "ops.json"),
			want:  filepath.Join("boards", "ops"),
		},
		{
			name:   "known format extension stripped from output",
			output: "out.svg",
			input:  "ops.json",
			want:   "out",
		},
		{
			name:   "unknown extension kept",
			output: "out.board",
			input:  "ops.json",
			want:   "out.board",
		},
		{
			name:   "extensionless output kept",
			output: "out",
			input:  "ops.json",
			want:   "out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := basePath(tt.output, tt.input); got != tt.want {
				t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
			}
		})
	}
}

func TestCacheDirRespectsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-test")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if dir != filepath.Join("/tmp/xdg-test", appName) {
		t.Errorf("cacheDir() = %s", dir)
	}
}
