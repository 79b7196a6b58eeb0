package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// ErrFrontMatter indicates front matter that is unclosed or not a YAML mapping.
var ErrFrontMatter = errors.New("invalid front matter")

const frontMatterDelimiter = "---"

// SplitFrontMatter separates a leading "---" block from the document body.
// A document without an opening delimiter line has no front matter and the
// whole source is the body. A leading UTF-8 BOM is ignored.
func SplitFrontMatter(src string) (front, body string, err error) {
	text := strings.TrimPrefix(src, "\ufeff")

	first, rest, _ := strings.Cut(text, "\n")
	if !isDelimiter(first) {
		return "", src, nil
	}

	pos := 0
	for {
		line, _, found := strings.Cut(rest[pos:], "\n")
		if isDelimiter(line) {
			end := pos + len(line)
			if found {
				end++
			}
			return rest[:pos], rest[end:], nil
		}
		if !found {
			break
		}
		pos += len(line) + 1
	}

	return "", "", fmt.Errorf("%w: missing closing %q", ErrFrontMatter, frontMatterDelimiter)
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == frontMatterDelimiter
}

// ParseDocument splits src and decodes its front matter. Documents without
// front matter return an empty map.
func ParseDocument(src string) (map[string]any, string, error) {
	front, body, err := SplitFrontMatter(src)
	if err != nil {
		return nil, "", err
	}

	data, err := yamlutil.DecodeMap([]byte(front))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFrontMatter, err)
	}
	return data, body, nil
}

// stringField returns fm[key] when it is a string.
func stringField(fm map[string]any, key string) (string, bool) {
	s, ok := fm[key].(string)
	return s, ok
}

// stringsField returns the string entries of a list field; other entries
// are dropped.
func stringsField(fm map[string]any, key string) []string {
	out := []string{}
	switch list := fm[key].(type) {
	case []any:
		for _, v := range list {
			if s, ok := v.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, list...)
	}
	return out
}
