package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/yamlutil"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestDecodeStrict - Config decoding
// ---------------------------------------------------------------------------

func TestDecodeStrict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		want    testConfig
		wantErr error
	}{
		{
			name: "all fields",
			data: "name: site\ncount: 3\nenabled: true\n",
			want: testConfig{Name: "site", Count: 3, Enabled: true},
		},
		{
			name: "partial document keeps zero values",
			data: "name: site\n",
			want: testConfig{Name: "site"},
		},
		{
			name:    "empty",
			data:    "",
			wantErr: yamlutil.ErrEmpty,
		},
		{
			name:    "unknown field",
			data:    "name: site\ncolour: red\n",
			wantErr: yamlutil.ErrSyntax,
		},
		{
			name:    "wrong type",
			data:    "count: many\n",
			wantErr: yamlutil.ErrSyntax,
		},
		{
			name:    "broken syntax",
			data:    "name: [unclosed\n",
			wantErr: yamlutil.ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got testConfig
			err := yamlutil.DecodeStrict([]byte(tt.data), &got)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeStrict() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeStrict() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeStrict() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeStrict_ErrorHasPosition(t *testing.T) {
	t.Parallel()

	err := yamlutil.DecodeStrict([]byte("name: ok\ncolour: red\n"), &testConfig{})
	if err == nil || !strings.Contains(err.Error(), "colour") {
		t.Errorf("error = %v, want it to name the unknown field", err)
	}
}

// ---------------------------------------------------------------------------
// TestDecodeMap - Front matter decoding
// ---------------------------------------------------------------------------

func TestDecodeMap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		wantLen int
		wantErr error
	}{
		{"mapping", "title: Limits\ntags: [a, b]\n", 2, nil},
		{"empty input", "", 0, nil},
		{"explicit null", "~\n", 0, nil},
		{"list document", "- a\n- b\n", 0, yamlutil.ErrNotMapping},
		{"scalar document", "just text\n", 0, yamlutil.ErrNotMapping},
		{"broken syntax", "title: [unclosed\n", 0, yamlutil.ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m, err := yamlutil.DecodeMap([]byte(tt.data))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("DecodeMap() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeMap() unexpected error: %v", err)
			}
			if m == nil {
				t.Fatal("DecodeMap() returned nil map")
			}
			if len(m) != tt.wantLen {
				t.Errorf("len = %d, want %d (%v)", len(m), tt.wantLen, m)
			}
		})
	}
}

func TestDecodeMap_Values(t *testing.T) {
	t.Parallel()

	m, err := yamlutil.DecodeMap([]byte("title: \"Groups\"\ndraft: true\ntags:\n  - algebra\n  - 3\n"))
	if err != nil {
		t.Fatalf("DecodeMap() unexpected error: %v", err)
	}
	if m["title"] != "Groups" {
		t.Errorf("title = %#v", m["title"])
	}
	if m["draft"] != true {
		t.Errorf("draft = %#v", m["draft"])
	}
	tags, ok := m["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "algebra" {
		t.Errorf("tags = %#v", m["tags"])
	}
}

// ---------------------------------------------------------------------------
// TestInputSizeLimit - Oversized documents are rejected before parsing
// ---------------------------------------------------------------------------

func TestInputSizeLimit(t *testing.T) {
	t.Parallel()

	big := []byte("a: \"" + strings.Repeat("x", yamlutil.MaxInputSize) + "\"\n")

	if err := yamlutil.DecodeStrict(big, &testConfig{}); !errors.Is(err, yamlutil.ErrTooLarge) {
		t.Errorf("DecodeStrict() error = %v, want ErrTooLarge", err)
	}
	if _, err := yamlutil.DecodeMap(big); !errors.Is(err, yamlutil.ErrTooLarge) {
		t.Errorf("DecodeMap() error = %v, want ErrTooLarge", err)
	}
}
