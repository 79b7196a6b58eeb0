package server

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/alnah/go-mdsite/internal/config"
)

func TestNewMathJaxConfig(t *testing.T) {
	t.Parallel()

	cfg := NewMathJaxConfig(map[string]config.Macro{
		"RR":   {Body: `\mathbb{R}`},
		"bold": {Body: `{\bf #1}`, Args: 1},
	})

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"inlineMath":[["$","$"],["\\(","\\)"]]`,
		`"displayMath":[["$$","$$"],["\\[","\\]"]]`,
		`"processEnvironments":true`,
		`"RR":"\\mathbb{R}"`,
		`"bold":["{\\bf #1}",1]`,
		`"skipHtmlTags":["script","noscript","style","textarea","pre","code"]`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("JSON missing %s\n%s", want, got)
		}
	}
}

func TestNewMathJaxConfig_NilMacros(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewMathJaxConfig(nil))
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"macros":{}`) {
		t.Errorf("JSON = %s, want empty macros object", data)
	}
}
