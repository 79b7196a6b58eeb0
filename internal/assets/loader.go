package assets

import "fmt"

// AssetLoader loads stylesheets and page templates by bare name (no
// directory, no extension).
type AssetLoader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// Kind selects where an asset lives and which error reports it missing.
type Kind int

const (
	Style Kind = iota
	Template
)

// Path returns the slash-separated location of name inside an asset tree.
func (k Kind) Path(name string) string {
	if k == Style {
		return "styles/" + name + ".css"
	}
	return "templates/" + name + ".html"
}

func (k Kind) notFound(name string) error {
	if k == Style {
		return fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	return fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
}

// MaxAssetNameLength bounds asset names.
const MaxAssetNameLength = 64

// ValidateAssetName accepts ASCII letters, digits, '-' and '_'. Anything
// else, separators and dots included, could reach outside the asset tree
// or change the extension.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if len(name) > MaxAssetNameLength {
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidAssetName, MaxAssetNameLength)
	}
	for i := 0; i < len(name); i++ {
		switch c := name[i]; {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
		}
	}
	return nil
}
