package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunRender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	post := writeFile(t, dir, "limits.md", "---\ntitle: \"Limits\"\n---\nLet $\n  \\delta > 0\n$.\n")

	tests := []struct {
		name         string
		args         []string
		stdin        string
		wantCode     int
		wantInStdout []string
		wantExcludes []string
	}{
		{
			name:         "file to HTML",
			args:         []string{post},
			wantCode:     ExitSuccess,
			wantInStdout: []string{"<p>", `\delta`},
			wantExcludes: []string{"title:", "$\n"},
		},
		{
			name:         "JSON output carries metadata",
			args:         []string{"--json", post},
			wantCode:     ExitSuccess,
			wantInStdout: []string{`"slug": "limits"`, `"title": "Limits"`, `"html":`},
		},
		{
			name:         "stdin with explicit slug",
			args:         []string{"--json", "--slug", "draft", "-"},
			stdin:        "# Draft\n",
			wantCode:     ExitSuccess,
			wantInStdout: []string{`"slug": "draft"`, "\\u003ch1"},
		},
		{
			name:     "wrong extension",
			args:     []string{filepath.Join(dir, "notes.txt")},
			wantCode: ExitUsage,
		},
		{
			name:     "missing file",
			args:     []string{filepath.Join(dir, "missing.md")},
			wantCode: ExitIO,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := newTestEnv()
			env.Stdin = strings.NewReader(tt.stdin)

			code := runMain(append([]string{"mdsite", "render"}, tt.args...), env)
			if code != tt.wantCode {
				t.Fatalf("runMain() = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			for _, want := range tt.wantInStdout {
				if !strings.Contains(stdout.String(), want) {
					t.Errorf("stdout should contain %q, got:\n%s", want, stdout.String())
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(stdout.String(), exclude) {
					t.Errorf("stdout should not contain %q, got:\n%s", exclude, stdout.String())
				}
			}
		})
	}
}

func TestRunRender_JSONDecodes(t *testing.T) {
	t.Parallel()

	post := writeFile(t, t.TempDir(), "a.md", "Plain.\n")
	env, stdout, _ := newTestEnv()

	if code := runMain([]string{"mdsite", "render", "--json", post}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want 0", code)
	}

	var got struct {
		Slug      string `json:"slug"`
		Title     string `json:"title"`
		Published string `json:"published"`
		HTML      string `json:"html"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Slug != "a" || got.Title != "a" {
		t.Errorf("meta = %+v, want slug fallbacks", got)
	}
	if got.Published != "2025-02-03T04:05:06.000Z" {
		t.Errorf("Published = %q, want injected clock", got.Published)
	}
	if got.HTML != "<p>Plain.</p>" {
		t.Errorf("HTML = %q", got.HTML)
	}
}
